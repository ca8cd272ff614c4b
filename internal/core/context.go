package core

// Context aggregates everything a single simulated run needs: the parsed
// map, the live AGV and task state, the static obstacle set, and the grid
// bounds. A Context owns all of its mutable state; running two simulations
// concurrently just means constructing two Contexts and never sharing one
// across goroutines (see spec §5).
type Context struct {
	MapElements []MapElement
	AGVs        []*AGV
	Tasks       []*Task

	// FixedObstacles is the union of every start/end point cell plus a
	// one-cell-thick ring immediately outside Bounds, so A* can never plan
	// a path that walks off the map.
	FixedObstacles map[Point]bool
	Bounds         Rect
}

// NewContext builds a Context from parsed map elements and tasks. AGVs are
// constructed from the Agv-kind map elements; fixed obstacles and bounds are
// derived as specified in §3.
func NewContext(elements []MapElement, tasks []*Task) *Context {
	ctx := &Context{
		MapElements: elements,
		Tasks:       tasks,
	}

	var allPoints []Point
	var agvID AGVID
	for _, e := range elements {
		allPoints = append(allPoints, e.Position())
		if e.Kind == AgvElement {
			heading := Right
			if e.Pitch != nil {
				heading = *e.Pitch
			}
			ctx.AGVs = append(ctx.AGVs, NewAGV(agvID, e.Name, e.Position(), heading))
			agvID++
		}
	}

	ctx.Bounds = BoundsOf(allPoints)
	ctx.FixedObstacles = computeFixedObstacles(elements, ctx.Bounds)
	return ctx
}

// computeFixedObstacles unions every start/end point cell with a ring one
// cell outside the bounds on every side.
func computeFixedObstacles(elements []MapElement, bounds Rect) map[Point]bool {
	obstacles := make(map[Point]bool)
	for _, e := range elements {
		if e.Kind == StartPoint || e.Kind == EndPoint {
			obstacles[e.Position()] = true
		}
	}

	for x := bounds.Left - 1; x <= bounds.Right+1; x++ {
		obstacles[Point{X: x, Y: bounds.Top + 1}] = true
		obstacles[Point{X: x, Y: bounds.Bottom - 1}] = true
	}
	for y := bounds.Bottom - 1; y <= bounds.Top+1; y++ {
		obstacles[Point{X: bounds.Left - 1, Y: y}] = true
		obstacles[Point{X: bounds.Right + 1, Y: y}] = true
	}
	return obstacles
}

// AGVByID returns the AGV with the given ID, or nil.
func (c *Context) AGVByID(id AGVID) *AGV {
	for _, a := range c.AGVs {
		if a.ID == id {
			return a
		}
	}
	return nil
}

// PendingTasks returns every task still in Pending status, in original
// input order.
func (c *Context) PendingTasks() []*Task {
	var pending []*Task
	for _, t := range c.Tasks {
		if t.Status == Pending {
			pending = append(pending, t)
		}
	}
	return pending
}

// AllCompleted reports whether every task has reached Completed status.
func (c *Context) AllCompleted() bool {
	for _, t := range c.Tasks {
		if t.Status != Completed {
			return false
		}
	}
	return true
}

// MapElementByName finds a start/end point element by name.
func (c *Context) MapElementByName(name string) (MapElement, bool) {
	for _, e := range c.MapElements {
		if e.Name == name {
			return e, true
		}
	}
	return MapElement{}, false
}
