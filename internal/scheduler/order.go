package scheduler

import (
	"sort"

	"github.com/cg-zhou/agv-monitor/internal/core"
)

// PendingTaskOrder re-derives the scheduling order over every currently
// Pending task. It is always recomputed from scratch; nothing about it is
// cached on the Context or the Scheduler.
//
// Tasks are grouped by start point, then sorted by a five-key composite:
// position within the group (stable FIFO, the primary key so that no queue
// can starve behind another queue's backlog), priority, whether the group
// contains any High-priority task, group size, and whether the pickup sits
// off the middle row.
func PendingTaskOrder(ctx *core.Context) []*core.Task {
	pending := ctx.PendingTasks()
	if len(pending) == 0 {
		return nil
	}

	groups := make(map[string][]*core.Task)
	for _, t := range pending {
		groups[t.StartPointName] = append(groups[t.StartPointName], t)
	}

	hasHigh := make(map[string]bool, len(groups))
	size := make(map[string]int, len(groups))
	groupPos := make(map[core.TaskID]int, len(pending))
	for name, g := range groups {
		size[name] = len(g)
		sort.SliceStable(g, func(i, j int) bool { return g[i].Seq() < g[j].Seq() })
		for i, t := range g {
			groupPos[t.ID] = i
			if t.Priority == core.High {
				hasHigh[name] = true
			}
		}
	}

	ordered := make([]*core.Task, len(pending))
	copy(ordered, pending)

	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]

		if pa, pb := groupPos[a.ID], groupPos[b.ID]; pa != pb {
			return pa < pb
		}
		if a.Priority != b.Priority {
			return a.Priority > b.Priority
		}
		if ha, hb := hasHigh[a.StartPointName], hasHigh[b.StartPointName]; ha != hb {
			return ha
		}
		if sa, sb := size[a.StartPointName], size[b.StartPointName]; sa != sb {
			return sa > sb
		}
		aOffRow := a.PickupPosition.Y != 10
		bOffRow := b.PickupPosition.Y != 10
		if aOffRow != bOffRow {
			return aOffRow
		}
		return false
	})

	return ordered
}
