package scheduler

import (
	"github.com/cg-zhou/agv-monitor/internal/algo"
	"github.com/cg-zhou/agv-monitor/internal/core"
)

// prevMove records one AGV's move this BatchMove call, for the cross-lock
// check against AGVs processed later in the same pass (or a later pass).
type prevMove struct {
	agv     *core.AGV
	prevPos core.Point
	task    *core.Task
}

// BatchMove advances every candidate AGV whose IsLoaded matches loaded and
// who isn't already in handled, one cell per pass, replanning against fresh
// dynamic obstacles each pass so later movements in the same tick can
// cascade off earlier ones. tentative supplies each idle AGV's pursued task
// when loaded is false; it is ignored when loaded is true.
func BatchMove(ctx *core.Context, candidates []*core.AGV, handled map[core.AGVID]bool, loaded bool, tentative map[core.AGVID]*core.Task) {
	var prevMoves []prevMove

	for {
		progressed := false

		for _, agv := range candidates {
			if handled[agv.ID] || agv.IsLoaded != loaded {
				continue
			}

			var task *core.Task
			if loaded {
				task = agv.LoadedTask
			} else {
				task = tentative[agv.ID]
			}
			if task == nil {
				continue
			}

			obstacles := DynamicObstacles(ctx, agv)
			var goal core.Point
			if loaded {
				goal = task.EndPosition
				delete(obstacles, goal)
			} else {
				goal = task.PickupPosition
			}

			points := algo.FindPath(agv.Position, goal, agv.Heading, obstacles, 0)
			timed, err := core.ComputeTiming(points, agv.Heading)
			if err != nil {
				continue
			}
			agv.PlannedPath = timed

			if len(agv.PlannedPath) < 2 {
				continue
			}
			next, err := core.HeadingTo(agv.Position, agv.PlannedPath[1].Position)
			if err != nil {
				continue
			}
			if next != agv.Heading {
				continue
			}

			if forced, blocked := crossLockForce(agv, task, prevMoves); blocked {
				agv.Turn(&forced)
				agv.PlannedPath = nil
				handled[agv.ID] = true
				progressed = true
				continue
			}

			prevMoves = append(prevMoves, prevMove{agv: agv, prevPos: agv.Position, task: task})
			agv.Move()
			handled[agv.ID] = true
			progressed = true
		}

		if !progressed {
			return
		}
	}
}

// crossLockForce checks agv against every AGV that already moved this
// BatchMove call for one of the four orthogonal cross-lock patterns (see
// §4.5's table), returning the heading agv must be forced to if one
// matches.
func crossLockForce(agv *core.AGV, task *core.Task, prevMoves []prevMove) (core.Direction, bool) {
	for _, pm := range prevMoves {
		if pm.agv.Heading != agv.Heading {
			continue
		}
		p, prev := pm.agv.Position, pm.prevPos
		t := pm.task

		switch agv.Heading {
		case core.Left, core.Right:
			if p.X == agv.Position.X && p.Y == agv.Position.Y+1 &&
				task.EndPosition.Y > agv.Position.Y && t.EndPosition.Y <= prev.Y {
				return core.Up, true
			}
			if p.X == agv.Position.X && p.Y == agv.Position.Y-1 &&
				task.EndPosition.Y < agv.Position.Y && t.EndPosition.Y >= prev.Y {
				return core.Down, true
			}
		case core.Up, core.Down:
			if p.Y == agv.Position.Y && p.X == agv.Position.X-1 &&
				task.EndPosition.X < agv.Position.X && t.EndPosition.X >= prev.X {
				return core.Left, true
			}
			if p.Y == agv.Position.Y && p.X == agv.Position.X+1 &&
				task.EndPosition.X > agv.Position.X && t.EndPosition.X <= prev.X {
				return core.Right, true
			}
		}
	}
	return 0, false
}
