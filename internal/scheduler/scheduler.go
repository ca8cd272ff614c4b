// Package scheduler drives a Context forward one simulated second at a
// time: unloading arrived AGVs, loading newly-reached pickups, moving and
// turning the fleet, assigning idle AGVs to pending work, and parking
// whatever's left once the queue runs dry.
package scheduler

import (
	"github.com/edaniels/golog"
	"github.com/pkg/errors"

	"github.com/cg-zhou/agv-monitor/internal/algo"
	"github.com/cg-zhou/agv-monitor/internal/core"
	"github.com/cg-zhou/agv-monitor/internal/record"
)

// MaxTicks is the hard cap on simulated seconds a single run may take
// before Process reports a deadlock/timeout failure.
const MaxTicks = 400

// ErrTimedOut is wrapped into the error Process returns once Timestamp
// would exceed MaxTicks.
var ErrTimedOut = errors.New("scheduler: exceeded simulated tick cap")

// Scheduler owns a Context's tick-by-tick evolution and its trajectory
// recorder.
type Scheduler struct {
	ctx       *core.Context
	recorder  *record.Recorder
	Timestamp int
	logger    golog.Logger
}

// New builds a Scheduler over ctx, starting its own Recorder at tick 0. A
// nil logger falls back to golog's global logger.
func New(ctx *core.Context, logger golog.Logger) *Scheduler {
	if logger == nil {
		logger = golog.Global()
	}
	return &Scheduler{
		ctx:      ctx,
		recorder: record.NewRecorder(ctx),
		logger:   logger,
	}
}

// Context returns the scheduled Context.
func (s *Scheduler) Context() *core.Context { return s.ctx }

// Recorder returns the trajectory recorder accumulating this run's rows.
func (s *Scheduler) Recorder() *record.Recorder { return s.recorder }

// Process advances the simulation by exactly one second, running every
// phase in its mandatory order. It is a no-op once every task has
// completed, and fails once the tick cap would be exceeded.
func (s *Scheduler) Process() error {
	if s.ctx.AllCompleted() {
		return nil
	}
	if s.Timestamp >= MaxTicks {
		s.logger.Infow("scheduler timed out", "timestamp", s.Timestamp, "max_ticks", MaxTicks)
		return errors.Wrapf(ErrTimedOut, "at tick %d", s.Timestamp)
	}
	s.Timestamp++

	handled := make(map[core.AGVID]bool, len(s.ctx.AGVs))

	s.phaseUnload(handled)
	s.phaseLoad(handled)
	BatchMove(s.ctx, s.ctx.AGVs, handled, true, nil)
	s.phaseTurnLoaded(handled)
	tentative := s.phaseAssignIdle(handled)
	s.phaseMoveIdle(handled, tentative)
	s.phasePark(handled)

	s.recorder.Add(s.ctx, s.Timestamp)
	return nil
}

// ProcessToComplete calls Process until every task completes or it fails,
// returning the final timestamp.
func (s *Scheduler) ProcessToComplete() (int, error) {
	for !s.ctx.AllCompleted() {
		if err := s.Process(); err != nil {
			return s.Timestamp, err
		}
	}
	return s.Timestamp, nil
}

// phaseUnload implements §4.3 Phase 1.
func (s *Scheduler) phaseUnload(handled map[core.AGVID]bool) {
	for _, a := range s.ctx.AGVs {
		if a.CanUnload() {
			a.Unload(s.Timestamp)
			handled[a.ID] = true
			s.logger.Debugw("unloaded agv", "agv", a.Name, "position", a.Position, "timestamp", s.Timestamp)
		}
	}
}

// phaseLoad implements §4.3 Phase 2.
func (s *Scheduler) phaseLoad(handled map[core.AGVID]bool) {
	pending := PendingTaskOrder(s.ctx)
	for _, a := range s.ctx.AGVs {
		if handled[a.ID] || a.IsLoaded {
			continue
		}
		for _, t := range pending {
			if t.PickupPosition == a.Position {
				a.Load(t, s.Timestamp)
				handled[a.ID] = true
				s.logger.Debugw("loaded task", "agv", a.Name, "task", t.ID, "position", a.Position, "timestamp", s.Timestamp)
				break
			}
		}
	}
}

// phaseTurnLoaded implements §4.3 Phase 4.
func (s *Scheduler) phaseTurnLoaded(handled map[core.AGVID]bool) {
	for _, a := range s.ctx.AGVs {
		if handled[a.ID] || !a.IsLoaded {
			continue
		}
		if a.ShouldTurn() {
			a.Turn(nil)
			handled[a.ID] = true
		}
	}
}

// phaseAssignIdle implements §4.3 Phase 5.
func (s *Scheduler) phaseAssignIdle(handled map[core.AGVID]bool) map[core.AGVID]*core.Task {
	tentative := make(map[core.AGVID]*core.Task)

	var idle []*core.AGV
	for _, a := range s.ctx.AGVs {
		if !handled[a.ID] && !a.IsLoaded {
			idle = append(idle, a)
		}
	}

	for _, task := range PendingTaskOrder(s.ctx) {
		if len(idle) == 0 {
			break
		}

		best := -1
		var bestPath core.Path
		for i, a := range idle {
			obstacles := DynamicObstacles(s.ctx, a)
			points := algo.FindPath(a.Position, task.PickupPosition, a.Heading, obstacles, 0)
			timed, err := core.ComputeTiming(points, a.Heading)
			if err != nil || len(timed) == 0 {
				continue
			}
			if best == -1 || timed[len(timed)-1].TimeCost < bestPath[len(bestPath)-1].TimeCost {
				best = i
				bestPath = timed
			}
		}
		if best == -1 {
			continue
		}

		chosen := idle[best]
		chosen.PlannedPath = bestPath
		tentative[chosen.ID] = task
		idle = append(idle[:best], idle[best+1:]...)
	}

	return tentative
}

// phaseMoveIdle implements §4.3 Phase 6.
func (s *Scheduler) phaseMoveIdle(handled map[core.AGVID]bool, tentative map[core.AGVID]*core.Task) {
	var moveGroup []*core.AGV
	for _, a := range s.ctx.AGVs {
		if tentative[a.ID] == nil {
			continue
		}
		if a.ShouldTurn() {
			a.Turn(nil)
			handled[a.ID] = true
		} else if a.ShouldMove() {
			moveGroup = append(moveGroup, a)
		}
	}
	BatchMove(s.ctx, moveGroup, handled, false, tentative)
}

// phasePark implements §4.3 Phase 7: only runs once the pending queue is
// dry, steering each remaining AGV toward whichever map edge is both
// nearest and not blocked by a loaded AGV along the same row or column.
func (s *Scheduler) phasePark(handled map[core.AGVID]bool) {
	if len(s.ctx.PendingTasks()) > 0 {
		return
	}

	for _, a := range s.ctx.AGVs {
		if handled[a.ID] {
			continue
		}

		goal, ok := parkingGoal(s.ctx, a)
		if !ok {
			continue
		}

		obstacles := DynamicObstacles(s.ctx, a)
		points := algo.FindPath(a.Position, goal, a.Heading, obstacles, 0)
		timed, err := core.ComputeTiming(points, a.Heading)
		if err != nil || len(timed) < 2 {
			continue
		}
		a.PlannedPath = timed

		switch {
		case a.ShouldMove():
			a.Move()
		case a.ShouldTurn():
			a.Turn(nil)
		default:
			continue
		}
		handled[a.ID] = true
		s.logger.Infow("agv parking", "agv", a.Name, "goal", goal, "timestamp", s.Timestamp)
	}
}

// parkingGoal picks the nearest of the four edge cells reachable from a
// without crossing a loaded AGV's row or column on the open side.
func parkingGoal(ctx *core.Context, a *core.AGV) (core.Point, bool) {
	bounds := ctx.Bounds
	pos := a.Position

	type candidate struct {
		point   core.Point
		blocked bool
	}
	candidates := []candidate{
		{point: core.Point{X: pos.X, Y: bounds.Top}},
		{point: core.Point{X: pos.X, Y: bounds.Bottom}},
		{point: core.Point{X: bounds.Right, Y: pos.Y}},
		{point: core.Point{X: bounds.Left, Y: pos.Y}},
	}

	for _, b := range ctx.AGVs {
		if !b.IsLoaded || b == a {
			continue
		}
		if b.Position.X == pos.X && b.Position.Y > pos.Y {
			candidates[0].blocked = true
		}
		if b.Position.X == pos.X && b.Position.Y < pos.Y {
			candidates[1].blocked = true
		}
		if b.Position.Y == pos.Y && b.Position.X > pos.X {
			candidates[2].blocked = true
		}
		if b.Position.Y == pos.Y && b.Position.X < pos.X {
			candidates[3].blocked = true
		}
	}

	best := -1
	for i, c := range candidates {
		if c.blocked {
			continue
		}
		if best == -1 || pos.Manhattan(c.point) < pos.Manhattan(candidates[best].point) {
			best = i
		}
	}
	if best == -1 {
		return core.Point{}, false
	}
	return candidates[best].point, true
}
