package scheduler

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cg-zhou/agv-monitor/internal/core"
)

func TestDynamicObstacles_BlocksOccupiedNeighbor(t *testing.T) {
	a := core.NewAGV(0, "AGV01", core.Point{X: 5, Y: 5}, core.Right)
	b := core.NewAGV(1, "AGV02", core.Point{X: 6, Y: 5}, core.Left)
	ctx := &core.Context{AGVs: []*core.AGV{a, b}, FixedObstacles: map[core.Point]bool{}}

	obstacles := DynamicObstacles(ctx, a)
	require.True(t, obstacles[core.Point{X: 6, Y: 5}])
}

func TestDynamicObstacles_CrossLockPreemptsOnlyFreeNeighbor(t *testing.T) {
	// b at (5,5) is boxed on three sides by fixed obstacles, leaving (5,6)
	// as its only free neighbor. a sits at (5,7), adjacent to (5,6): a must
	// not be allowed to take it, or b would be fully boxed in.
	fixed := map[core.Point]bool{
		{X: 4, Y: 5}: true,
		{X: 6, Y: 5}: true,
		{X: 5, Y: 4}: true,
	}
	a := core.NewAGV(0, "AGV01", core.Point{X: 5, Y: 7}, core.Down)
	b := core.NewAGV(1, "AGV02", core.Point{X: 5, Y: 5}, core.Up)
	ctx := &core.Context{AGVs: []*core.AGV{a, b}, FixedObstacles: fixed}

	obstacles := DynamicObstacles(ctx, a)
	require.True(t, obstacles[core.Point{X: 5, Y: 6}])
}

func TestDynamicObstacles_NoPreemptWhenNotAdjacentToMover(t *testing.T) {
	fixed := map[core.Point]bool{
		{X: 4, Y: 5}: true,
		{X: 6, Y: 5}: true,
		{X: 5, Y: 4}: true,
	}
	a := core.NewAGV(0, "AGV01", core.Point{X: 10, Y: 10}, core.Down)
	b := core.NewAGV(1, "AGV02", core.Point{X: 5, Y: 5}, core.Up)
	ctx := &core.Context{AGVs: []*core.AGV{a, b}, FixedObstacles: fixed}

	obstacles := DynamicObstacles(ctx, a)
	require.False(t, obstacles[core.Point{X: 5, Y: 6}])
}

func TestOnlyFreeNeighbor_NoneWhenMultipleFree(t *testing.T) {
	b := core.NewAGV(1, "AGV02", core.Point{X: 5, Y: 5}, core.Up)
	ctx := &core.Context{AGVs: []*core.AGV{b}, FixedObstacles: map[core.Point]bool{}}
	_, ok := onlyFreeNeighbor(ctx, b, map[core.Point]*core.AGV{})
	require.False(t, ok)
}
