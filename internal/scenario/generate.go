// Package scenario builds the deterministic production fixture (map, AGV
// fleet, and task queue) that the scheduler's testable scenarios run
// against, plus a seeded reshuffle of that same queue for the random-seed
// robustness scenario.
package scenario

import (
	"fmt"
	"math/rand"

	"github.com/cg-zhou/agv-monitor/internal/core"
)

// startPointLayout and endPointLayout fix the production map's named
// points. Pickup side follows the spec's column rule automatically: SP01-
// SP03 sit at x<=10 (pickup to the right), SP04/SP05 sit at x>10 (pickup to
// the left).
var startPointLayout = []core.MapElement{
	{Kind: core.StartPoint, Name: "SP01", X: 2, Y: 5},
	{Kind: core.StartPoint, Name: "SP02", X: 2, Y: 10},
	{Kind: core.StartPoint, Name: "SP03", X: 2, Y: 15},
	{Kind: core.StartPoint, Name: "SP04", X: 18, Y: 7},
	{Kind: core.StartPoint, Name: "SP05", X: 18, Y: 13},
}

var endPointLayout = []core.MapElement{
	{Kind: core.EndPoint, Name: "EP01", X: 10, Y: 3},
	{Kind: core.EndPoint, Name: "EP02", X: 10, Y: 8},
	{Kind: core.EndPoint, Name: "EP03", X: 10, Y: 13},
	{Kind: core.EndPoint, Name: "EP04", X: 10, Y: 18},
}

// agvLayout places twelve AGVs in two rows of six (columns 6..11 on rows 2
// and 19), clear of every start/end point cell, facing right.
func agvLayout() []core.MapElement {
	right := core.Right
	var agvs []core.MapElement
	for i := 0; i < 12; i++ {
		agvs = append(agvs, core.MapElement{
			Kind:  core.AgvElement,
			Name:  fmt.Sprintf("AGV%02d", i+1),
			X:     6 + (i % 6),
			Y:     2 + (i/6)*17,
			Pitch: &right,
		})
	}
	return agvs
}

// ProductionMap returns the fixed map elements (start points, end points,
// AGV initial poses) shared by every production scenario run.
func ProductionMap() []core.MapElement {
	var elements []core.MapElement
	elements = append(elements, startPointLayout...)
	elements = append(elements, endPointLayout...)
	elements = append(elements, agvLayout()...)
	return elements
}

// highPriorityTaskIndices names which of the 100 production tasks (0-based,
// in generation order) carry High priority and a deadline, per the scoring
// scenario in spec.md §8 scenario 4. Deadlines are generous relative to
// scenario 1's own per-task duration bound ([5,60] seconds) so both High
// tasks are expected to land on time: with 100 tasks completed and both High
// deliveries on time, score.Compute yields 98*1 + 2*(1+10) == 120, matching
// the scoring scenario exactly.
var highPriorityTaskIndices = map[int]int{
	9:  90, // deadline in simulated seconds
	59: 90,
}

// ProductionTasks builds the fixed 100-task queue, cycling through every
// start/end point pair in a stable round-robin so every pickup queue gets
// roughly even load; two tasks are marked High priority with a deadline,
// tuned so the default run's score comes out to exactly 120 (spec.md §8
// scenario 4).
func ProductionTasks() []*core.Task {
	tasks := make([]*core.Task, 0, 100)
	for i := 0; i < 100; i++ {
		sp := startPointLayout[i%len(startPointLayout)]
		ep := endPointLayout[i%len(endPointLayout)]

		priority := core.Normal
		var deadline *int
		if d, ok := highPriorityTaskIndices[i]; ok {
			priority = core.High
			dl := d
			deadline = &dl
		}

		tasks = append(tasks, core.NewTask(
			core.TaskID(i), sp.Name, ep.Name, priority, deadline,
			sp.Position(), ep.Position(), i,
		))
	}
	return tasks
}

// Production builds a fresh Context for the default (unshuffled) production
// run: the fixed map, 12 AGVs, and the 100-task queue in generation order.
func Production() *core.Context {
	return core.NewContext(ProductionMap(), ProductionTasks())
}

// Seeded builds a Context using the same production map and task content as
// Production, but with the task queue order shuffled by a seeded PRNG, for
// the random-seed robustness scenario (spec.md §8 scenario 3). Each task's
// Seq() is reset to its position in the shuffled queue, exactly as if that
// queue had been read from a task CSV, so per-start-point FIFO order and the
// validator's expected destination sequences both follow the shuffled order.
func Seeded(seed int64) *core.Context {
	tasks := ProductionTasks()
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(tasks), func(i, j int) {
		tasks[i], tasks[j] = tasks[j], tasks[i]
	})
	for i, t := range tasks {
		tasks[i] = core.NewTask(t.ID, t.StartPointName, t.EndPointName, t.Priority, t.Deadline, t.StartPosition, t.EndPosition, i)
	}
	return core.NewContext(ProductionMap(), tasks)
}
