package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewTask_PickupSide(t *testing.T) {
	// Column > 10: pickup is the left neighbor.
	right := NewTask(0, "SP15", "EP01", Normal, nil, Point{15, 5}, Point{1, 1}, 0)
	require.Equal(t, Point{14, 5}, right.PickupPosition)

	// Column <= 10: pickup is the right neighbor.
	left := NewTask(1, "SP02", "EP01", Normal, nil, Point{2, 5}, Point{1, 1}, 0)
	require.Equal(t, Point{3, 5}, left.PickupPosition)
}

func TestTask_LoadUnloadLifecycle(t *testing.T) {
	task := NewTask(0, "SP01", "EP01", High, nil, Point{1, 1}, Point{5, 5}, 0)
	require.Equal(t, Pending, task.Status)

	task.LoadBy(7, 3)
	require.Equal(t, Running, task.Status)
	require.Equal(t, AGVID(7), *task.AssignedAGV)

	task.Unload(9)
	require.Equal(t, Completed, task.Status)
	dur, ok := task.Duration()
	require.True(t, ok)
	require.Equal(t, 6, dur)
}

func TestTask_Duration_Incomplete(t *testing.T) {
	task := NewTask(0, "SP01", "EP01", Normal, nil, Point{1, 1}, Point{5, 5}, 0)
	_, ok := task.Duration()
	require.False(t, ok)
}
