// Package score implements the fleet run scoring rule from spec.md §8
// scenario 4: a simple per-task reward that weights on-time High-priority
// deliveries heavily and penalizes late ones.
package score

import "github.com/cg-zhou/agv-monitor/internal/core"

const (
	// PerTaskPoints is awarded for every completed task, regardless of
	// priority.
	PerTaskPoints = 1
	// HighOnTimePoints is awarded in addition to PerTaskPoints when a High
	// priority task completes by its deadline.
	HighOnTimePoints = 10
	// HighLatePenalty is subtracted (in addition to PerTaskPoints) when a
	// High priority task completes after its deadline, or has no recorded
	// completion time to compare against a deadline.
	HighLatePenalty = 5
)

// Compute scores a finished (or partially finished) task list: +1 per
// delivered task; a High priority task additionally earns +10 if it
// completed by its deadline (duration <= *deadline) or loses 5 if it
// completed late or has a deadline it cannot be shown to have met.
func Compute(tasks []*core.Task) int {
	total := 0
	for _, t := range tasks {
		if t.Status != core.Completed {
			continue
		}
		total += PerTaskPoints

		if t.Priority != core.High {
			continue
		}
		if t.Deadline == nil {
			continue
		}
		duration, ok := t.Duration()
		if ok && duration <= *t.Deadline {
			total += HighOnTimePoints
		} else {
			total -= HighLatePenalty
		}
	}
	return total
}
