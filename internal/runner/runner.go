// Package runner drives a Scheduler to completion and collects the metrics
// spec.md §8's scenarios are phrased against: completion tick, per-task
// durations, and the final score.
package runner

import (
	"github.com/edaniels/golog"

	"github.com/cg-zhou/agv-monitor/internal/core"
	"github.com/cg-zhou/agv-monitor/internal/record"
	"github.com/cg-zhou/agv-monitor/internal/scheduler"
	"github.com/cg-zhou/agv-monitor/internal/score"
)

// Config parameterizes a single run. A nil Logger falls back to golog's
// global logger, matching scheduler.New.
type Config struct {
	Logger golog.Logger
}

// Metrics summarizes a completed (or failed) run.
type Metrics struct {
	FinalTimestamp  int
	TasksCompleted  int
	TasksTotal      int
	TaskDurations   []int
	AverageDuration float64
	Score           int

	// Recorder is the trajectory log accumulated over the run, available
	// for export or independent validation.
	Recorder *record.Recorder
}

// Run drives ctx's Scheduler to completion (or failure) and returns the
// collected Metrics alongside any error Process reported (deadlock/timeout).
// Metrics are populated from whatever state the Context reached, even on
// error, so callers can inspect a partial run.
func Run(ctx *core.Context, cfg Config) (Metrics, error) {
	s := scheduler.New(ctx, cfg.Logger)
	final, err := s.ProcessToComplete()

	metrics := Metrics{
		FinalTimestamp: final,
		TasksTotal:     len(ctx.Tasks),
		Score:          score.Compute(ctx.Tasks),
		Recorder:       s.Recorder(),
	}

	var total int
	for _, t := range ctx.Tasks {
		if t.Status != core.Completed {
			continue
		}
		metrics.TasksCompleted++
		if d, ok := t.Duration(); ok {
			metrics.TaskDurations = append(metrics.TaskDurations, d)
			total += d
		}
	}
	if metrics.TasksCompleted > 0 {
		metrics.AverageDuration = float64(total) / float64(metrics.TasksCompleted)
	}

	return metrics, err
}
