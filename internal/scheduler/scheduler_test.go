package scheduler

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cg-zhou/agv-monitor/internal/core"
)

func productionLikeElements() []core.MapElement {
	right := core.Right
	return []core.MapElement{
		{Kind: core.StartPoint, Name: "SP01", X: 2, Y: 5},
		{Kind: core.EndPoint, Name: "EP01", X: 18, Y: 5},
		{Kind: core.AgvElement, Name: "AGV01", X: 4, Y: 5, Pitch: &right},
	}
}

func TestScheduler_ProcessToComplete_SingleTask(t *testing.T) {
	task := core.NewTask(0, "SP01", "EP01", core.Normal, nil, core.Point{X: 2, Y: 5}, core.Point{X: 18, Y: 5}, 0)
	ctx := core.NewContext(productionLikeElements(), []*core.Task{task})

	s := New(ctx, nil)
	final, err := s.ProcessToComplete()
	require.NoError(t, err)
	require.True(t, ctx.AllCompleted())
	require.Equal(t, core.Completed, task.Status)
	require.Greater(t, final, 0)

	// One row per AGV per tick, including the tick-0 row from NewRecorder.
	require.Len(t, s.Recorder().Rows(), (final+1)*len(ctx.AGVs))
}

func TestScheduler_Process_NoOpOnceAllCompleted(t *testing.T) {
	task := core.NewTask(0, "SP01", "EP01", core.Normal, nil, core.Point{X: 2, Y: 5}, core.Point{X: 18, Y: 5}, 0)
	ctx := core.NewContext(productionLikeElements(), []*core.Task{task})
	s := New(ctx, nil)

	_, err := s.ProcessToComplete()
	require.NoError(t, err)

	ts := s.Timestamp
	require.NoError(t, s.Process())
	require.Equal(t, ts, s.Timestamp, "Process must be a no-op once every task is complete")
}

func TestScheduler_Process_FailsAtTickCap(t *testing.T) {
	task := core.NewTask(0, "SP01", "EP01", core.Normal, nil, core.Point{X: 2, Y: 5}, core.Point{X: 18, Y: 5}, 0)
	ctx := core.NewContext(productionLikeElements(), []*core.Task{task})
	s := New(ctx, nil)
	s.Timestamp = MaxTicks

	err := s.Process()
	require.Error(t, err)
}

func TestScheduler_Process_UnloadsOnArrival(t *testing.T) {
	right := core.Right
	elements := []core.MapElement{
		{Kind: core.StartPoint, Name: "SP01", X: 2, Y: 5},
		{Kind: core.EndPoint, Name: "EP01", X: 10, Y: 5},
		{Kind: core.AgvElement, Name: "AGV01", X: 9, Y: 5, Pitch: &right},
	}
	task := core.NewTask(0, "SP01", "EP01", core.Normal, nil, core.Point{X: 2, Y: 5}, core.Point{X: 10, Y: 5}, 0)
	ctx := core.NewContext(elements, []*core.Task{task})
	ctx.AGVs[0].Load(task, 0)

	s := New(ctx, nil)
	require.NoError(t, s.Process())
	require.False(t, ctx.AGVs[0].IsLoaded)
	require.Equal(t, core.Completed, task.Status)
}

func TestScheduler_Process_ParksIdleAGVWhenNoPendingTasks(t *testing.T) {
	up := core.Up
	elements := []core.MapElement{
		{Kind: core.StartPoint, Name: "SP01", X: 2, Y: 5},
		{Kind: core.EndPoint, Name: "EP01", X: 18, Y: 15},
		{Kind: core.AgvElement, Name: "AGV01", X: 10, Y: 10, Pitch: &up},
		{Kind: core.AgvElement, Name: "AGV02", X: 4, Y: 6, Pitch: &up},
	}
	// The only task is already out for delivery on AGV02, so the run is not
	// complete (Process is a no-op once every task is) yet nothing is pending.
	task := core.NewTask(0, "SP01", "EP01", core.Normal, nil, core.Point{X: 2, Y: 5}, core.Point{X: 18, Y: 15}, 0)
	ctx := core.NewContext(elements, []*core.Task{task})
	ctx.AGVs[1].Load(task, 0)
	s := New(ctx, nil)
	start := ctx.AGVs[0].Position

	require.NoError(t, s.Process())
	require.NotEqual(t, start, ctx.AGVs[0].Position, "an idle AGV with nothing pending, already facing a nearest edge (top, tied with bottom and first in candidate order), should step toward it")
}
