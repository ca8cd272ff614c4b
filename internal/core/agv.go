package core

// AGV is a single-cell automated guided vehicle: position, heading, load
// status, and its currently planned timed path. Invariant: IsLoaded iff
// LoadedTask is set; when IsLoaded, LoadedTask.AssignedAGV is this AGV's ID
// and LoadedTask.Status is Running.
type AGV struct {
	ID       AGVID
	Name     string
	Position Point
	Heading  Direction

	IsLoaded   bool
	LoadedTask *Task

	// PlannedPath, when non-empty, has PlannedPath[0].Position == Position
	// and every consecutive pair adjacent.
	PlannedPath Path
}

// NewAGV builds an idle AGV at the given pose.
func NewAGV(id AGVID, name string, pos Point, heading Direction) *AGV {
	return &AGV{ID: id, Name: name, Position: pos, Heading: heading}
}

// ShouldMove reports whether the AGV's next planned step continues in its
// current heading.
func (a *AGV) ShouldMove() bool {
	if len(a.PlannedPath) <= 1 {
		return false
	}
	next, err := HeadingTo(a.Position, a.PlannedPath[1].Position)
	if err != nil {
		return false
	}
	return next == a.Heading
}

// ShouldTurn reports whether the AGV's next planned step requires a
// heading change first.
func (a *AGV) ShouldTurn() bool {
	if len(a.PlannedPath) <= 1 {
		return false
	}
	next, err := HeadingTo(a.Position, a.PlannedPath[1].Position)
	if err != nil {
		return false
	}
	return next != a.Heading
}

// CanUnload reports whether the AGV is loaded and adjacent to its task's
// end position.
func (a *AGV) CanUnload() bool {
	return a.IsLoaded && a.LoadedTask != nil && a.Position.Adjacent(a.LoadedTask.EndPosition)
}

// Turn rotates the AGV. If specified is non-nil, the heading is set to that
// value and the planned path is left untouched. Otherwise the heading is
// set to the direction of the next planned step, and every remaining
// waypoint's TimeCost is decremented by one second (the second spent
// turning in place).
func (a *AGV) Turn(specified *Direction) {
	if specified != nil {
		a.Heading = *specified
		return
	}
	if len(a.PlannedPath) <= 1 {
		return
	}
	next, err := HeadingTo(a.Position, a.PlannedPath[1].Position)
	if err != nil {
		return
	}
	a.Heading = next
	decrementRemaining(a.PlannedPath)
}

// Move advances the AGV to the next planned waypoint, decrementing every
// remaining TimeCost by one second and dropping the consumed head of the
// path.
func (a *AGV) Move() {
	if len(a.PlannedPath) <= 1 {
		return
	}
	a.Position = a.PlannedPath[1].Position
	decrementRemaining(a.PlannedPath)
	a.PlannedPath = a.PlannedPath[1:]
}

func decrementRemaining(path Path) {
	for i := range path {
		path[i].TimeCost--
	}
}

// Load binds a task to the AGV and marks it loaded.
func (a *AGV) Load(task *Task, ts int) {
	a.IsLoaded = true
	a.LoadedTask = task
	task.LoadBy(a.ID, ts)
}

// Unload clears the AGV's planned path and loaded task, completing the
// bound task at ts.
func (a *AGV) Unload(ts int) {
	a.PlannedPath = nil
	a.IsLoaded = false
	task := a.LoadedTask
	a.LoadedTask = nil
	if task != nil {
		task.Unload(ts)
	}
}
