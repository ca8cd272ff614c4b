package scheduler

import "github.com/cg-zhou/agv-monitor/internal/core"

// DynamicObstacles computes the obstacle set an AGV must plan against this
// tick: the map's fixed obstacles, every neighbor cell currently occupied by
// another AGV, and the cross-lock preempt described below.
//
// Cross-lock preempt: if another AGV b has exactly one free neighbor cell
// (after excluding fixed obstacles and cells occupied by AGVs adjacent to
// b), and that single free cell also neighbors a, then a is barred from
// stepping into it — taking it would box b in with no escape.
func DynamicObstacles(ctx *core.Context, a *core.AGV) map[core.Point]bool {
	obstacles := make(map[core.Point]bool, len(ctx.FixedObstacles)+4)
	for p := range ctx.FixedObstacles {
		obstacles[p] = true
	}

	occupied := make(map[core.Point]*core.AGV, len(ctx.AGVs))
	for _, b := range ctx.AGVs {
		occupied[b.Position] = b
	}

	for _, n := range neighbors(a.Position) {
		if other, ok := occupied[n]; ok && other != a {
			obstacles[n] = true
		}
	}

	for _, b := range ctx.AGVs {
		if b == a {
			continue
		}
		free, ok := onlyFreeNeighbor(ctx, b, occupied)
		if !ok {
			continue
		}
		if isNeighbor(a.Position, free) {
			obstacles[free] = true
		}
	}

	return obstacles
}

// onlyFreeNeighbor reports the sole unobstructed neighbor of b, if there is
// exactly one.
func onlyFreeNeighbor(ctx *core.Context, b *core.AGV, occupied map[core.Point]*core.AGV) (core.Point, bool) {
	var free core.Point
	count := 0
	for _, n := range neighbors(b.Position) {
		if ctx.FixedObstacles[n] {
			continue
		}
		if other, ok := occupied[n]; ok && other != b {
			continue
		}
		free = n
		count++
	}
	return free, count == 1
}

func neighbors(p core.Point) [4]core.Point {
	return [4]core.Point{
		core.Right.Neighbor(p),
		core.Up.Neighbor(p),
		core.Left.Neighbor(p),
		core.Down.Neighbor(p),
	}
}

func isNeighbor(p, q core.Point) bool {
	for _, n := range neighbors(p) {
		if n == q {
			return true
		}
	}
	return false
}
