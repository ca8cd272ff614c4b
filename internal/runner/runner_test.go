package runner

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cg-zhou/agv-monitor/internal/core"
	"github.com/cg-zhou/agv-monitor/internal/scenario"
	"github.com/cg-zhou/agv-monitor/internal/validate"
)

// startAndEndPoints splits a scenario's map elements into the start/end
// point slices validate.Validate expects.
func startAndEndPoints(elements []core.MapElement) (starts, ends []core.MapElement) {
	for _, e := range elements {
		switch e.Kind {
		case core.StartPoint:
			starts = append(starts, e)
		case core.EndPoint:
			ends = append(ends, e)
		}
	}
	return starts, ends
}

func TestRun_Production_MeetsScenario1And4(t *testing.T) {
	ctx := scenario.Production()
	metrics, err := Run(ctx, Config{})
	require.NoError(t, err)

	require.Less(t, metrics.FinalTimestamp, 300)
	require.Equal(t, 100, metrics.TasksCompleted)
	require.Equal(t, 100, metrics.TasksTotal)

	for _, d := range metrics.TaskDurations {
		require.GreaterOrEqual(t, d, 5)
		require.LessOrEqual(t, d, 60)
	}
	require.GreaterOrEqual(t, metrics.AverageDuration, 5.0)
	require.LessOrEqual(t, metrics.AverageDuration, 50.0)

	require.Equal(t, 120, metrics.Score)
}

func TestRun_Production_RecordsOneRowPerAGVPerTickAndValidates(t *testing.T) {
	ctx := scenario.Production()
	metrics, err := Run(ctx, Config{})
	require.NoError(t, err)

	rows := metrics.Recorder.Rows()
	require.Len(t, rows, (metrics.FinalTimestamp+1)*len(ctx.AGVs))

	starts, ends := startAndEndPoints(scenario.ProductionMap())
	results := validate.Validate(starts, ends, ctx.Tasks, rows)
	require.Empty(t, results)
}

func TestRun_Seeded_CompletesWithZeroViolations(t *testing.T) {
	for _, seed := range []int64{5555, 5556} {
		ctx := scenario.Seeded(seed)
		metrics, err := Run(ctx, Config{})
		require.NoErrorf(t, err, "seed %d", seed)

		require.Lessf(t, metrics.FinalTimestamp, 300, "seed %d", seed)
		require.Equalf(t, 100, metrics.TasksCompleted, "seed %d", seed)

		starts, ends := startAndEndPoints(scenario.ProductionMap())
		results := validate.Validate(starts, ends, ctx.Tasks, metrics.Recorder.Rows())
		require.Emptyf(t, results, "seed %d: %v", seed, results)
	}
}
