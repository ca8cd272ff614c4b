package scenario

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cg-zhou/agv-monitor/internal/core"
)

func TestProductionTasks_HasOneHundredTasksTwoHighPriority(t *testing.T) {
	tasks := ProductionTasks()
	require.Len(t, tasks, 100)

	high := 0
	for _, task := range tasks {
		if task.Priority == core.High {
			high++
			require.NotNil(t, task.Deadline)
		}
	}
	require.Equal(t, 2, high)
}

func TestProduction_BuildsTwelveAGVsAndContext(t *testing.T) {
	ctx := Production()
	require.Len(t, ctx.AGVs, 12)
	require.Len(t, ctx.Tasks, 100)
	require.False(t, ctx.AllCompleted())
}

func TestSeeded_SameTaskContentDifferentOrder(t *testing.T) {
	a := Seeded(5555)
	b := Seeded(5556)

	require.Len(t, a.Tasks, 100)
	require.Len(t, b.Tasks, 100)

	differentOrder := false
	for i := range a.Tasks {
		if a.Tasks[i].ID != b.Tasks[i].ID {
			differentOrder = true
			break
		}
	}
	require.True(t, differentOrder)
}

func TestSeeded_IsDeterministicForSameSeed(t *testing.T) {
	a := Seeded(42)
	b := Seeded(42)
	for i := range a.Tasks {
		require.Equal(t, a.Tasks[i].ID, b.Tasks[i].ID)
	}
}
