// Package algo implements the oriented A* grid planner used by the
// scheduler to route AGVs one cell at a time.
package algo

import (
	"container/heap"

	"github.com/cg-zhou/agv-monitor/internal/core"
)

// DefaultGridSize is the planner's default internal grid: usable
// coordinates run 1..DefaultGridSize on both axes.
const DefaultGridSize = 21

// MoveCost and TurnCost are the two components of the planner's cost
// model: one second per cell moved, one second per heading change.
const (
	MoveCost = 1
	TurnCost = 1
)

// state is an oriented planner state: a grid cell plus the heading the AGV
// would be facing on arrival.
type state struct {
	pos Point
	h   core.Direction
}

// Point is a plain alias kept local to avoid a stutter of core.Point
// throughout this file's signatures.
type Point = core.Point

// node is a priority-queue entry for the oriented A* search.
type node struct {
	s      state
	g      int
	f      int
	parent *node
	index  int
}

type nodeHeap []*node

func (h nodeHeap) Len() int            { return len(h) }
func (h nodeHeap) Less(i, j int) bool  { return h[i].f < h[j].f }
func (h nodeHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i]; h[i].index = i; h[j].index = j }
func (h *nodeHeap) Push(x interface{}) { n := x.(*node); n.index = len(*h); *h = append(*h, n) }
func (h *nodeHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	old[n-1] = nil
	*h = old[0 : n-1]
	return x
}

// FindPath runs oriented A* from start to goal, starting in initialHeading,
// avoiding every cell in obstacles. gridSize, if non-zero, overrides
// DefaultGridSize; usable coordinates run 1..gridSize on both axes. Returns
// nil if the goal is unreachable.
func FindPath(start, goal Point, initialHeading core.Direction, obstacles map[Point]bool, gridSize int) []Point {
	if gridSize <= 0 {
		gridSize = DefaultGridSize
	}

	inBounds := func(p Point) bool {
		return p.X >= 1 && p.X <= gridSize && p.Y >= 1 && p.Y <= gridSize
	}

	heuristic := func(p Point) int {
		return p.Manhattan(goal)
	}

	startState := state{pos: start, h: initialHeading}
	open := &nodeHeap{}
	heap.Init(open)
	heap.Push(open, &node{s: startState, g: 0, f: heuristic(start)})

	closed := make(map[state]bool)

	for open.Len() > 0 {
		current := heap.Pop(open).(*node)

		if current.s.pos == goal {
			return reconstruct(current)
		}

		if closed[current.s] {
			continue
		}
		closed[current.s] = true

		for _, dir := range []core.Direction{core.Right, core.Up, core.Left, core.Down} {
			next := dir.Neighbor(current.s.pos)
			if !inBounds(next) || obstacles[next] {
				continue
			}
			nextState := state{pos: next, h: dir}
			if closed[nextState] {
				continue
			}

			cost := MoveCost
			if dir != current.s.h {
				cost += TurnCost
			}
			g := current.g + cost
			heap.Push(open, &node{s: nextState, g: g, f: g + heuristic(next), parent: current})
		}
	}

	return nil
}

func reconstruct(n *node) []Point {
	var path []Point
	for cur := n; cur != nil; cur = cur.parent {
		path = append([]Point{cur.s.pos}, path...)
	}
	return path
}

// ComputeTiming is a thin re-export of core.ComputeTiming kept in this
// package for callers that only import algo for planning.
func ComputeTiming(points []Point, initialHeading core.Direction) (core.Path, error) {
	return core.ComputeTiming(points, initialHeading)
}
