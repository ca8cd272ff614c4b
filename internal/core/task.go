package core

// TaskID uniquely identifies a task within a Context.
type TaskID int

// Priority is a task's emergency flag; it affects ordering and scoring but
// never motion rules.
type Priority int

const (
	Normal Priority = iota
	High
)

func (p Priority) String() string {
	if p == High {
		return "High"
	}
	return "Normal"
}

// Status is a task's lifecycle state. It only ever moves forward:
// Pending -> Running -> Completed.
type Status int

const (
	Pending Status = iota
	Running
	Completed
)

func (s Status) String() string {
	switch s {
	case Pending:
		return "Pending"
	case Running:
		return "Running"
	case Completed:
		return "Completed"
	default:
		return "Unknown"
	}
}

// AGVID identifies an AGV within a Context.
type AGVID int

// Task is a transport job: move whatever is at StartPosition to
// EndPosition. Deadline is in simulated seconds and is compared against the
// task's Duration (CompleteTS - StartTS); a nil Deadline means the task has
// none.
type Task struct {
	ID             TaskID
	StartPointName string
	EndPointName   string
	Priority       Priority
	Deadline       *int

	StartPosition Point
	EndPosition   Point

	// PickupPosition is derived once at construction: the left neighbor of
	// StartPosition if the start point's column is > 10, else the right
	// neighbor (spec's pickup rule, §3/§6).
	PickupPosition Point

	Status      Status
	AssignedAGV *AGVID
	StartTS     *int
	CompleteTS  *int

	// seq records this task's position in the original input order, for
	// the stable-FIFO-per-pickup ordering key.
	seq int
}

// NewTask builds a pending task with its pickup position derived from the
// start point's column, per the spec's pickup rule.
func NewTask(id TaskID, startName, endName string, priority Priority, deadline *int, start, end Point, seq int) *Task {
	return &Task{
		ID:             id,
		StartPointName: startName,
		EndPointName:   endName,
		Priority:       priority,
		Deadline:       deadline,
		StartPosition:  start,
		EndPosition:    end,
		PickupPosition: PickupPositionFor(start),
		Status:         Pending,
		seq:            seq,
	}
}

// Seq returns the task's position in the input task list. Comparing Seq
// values orders the tasks that share a start point (the FIFO key of the
// pending-task ordering).
func (t *Task) Seq() int { return t.seq }

// PickupPositionFor implements the column-based pickup-side rule: start
// points with column > 10 pick up to their left, all others to their
// right. Exported so the validator can independently re-derive the same
// pickup cells from a map's start points (spec.md §6's pickup rule).
func PickupPositionFor(start Point) Point {
	if start.X > 10 {
		return Left.Neighbor(start)
	}
	return Right.Neighbor(start)
}

// LoadBy binds the task to an AGV at the given timestamp, transitioning it
// to Running.
func (t *Task) LoadBy(agv AGVID, ts int) {
	t.AssignedAGV = &agv
	start := ts
	t.StartTS = &start
	t.Status = Running
}

// Unload completes the task at the given timestamp.
func (t *Task) Unload(ts int) {
	complete := ts
	t.CompleteTS = &complete
	t.Status = Completed
}

// Duration returns the task's completed duration (CompleteTS - StartTS), or
// false if the task has not completed.
func (t *Task) Duration() (int, bool) {
	if t.StartTS == nil || t.CompleteTS == nil {
		return 0, false
	}
	return *t.CompleteTS - *t.StartTS, true
}
