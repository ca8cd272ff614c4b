// Package validate implements the trajectory validator: a standalone,
// side-effect-free check of a recorded run against the map and task list
// that produced it. It never mutates its inputs and never drives a
// simulation itself.
package validate

import (
	"fmt"
	"sort"

	"github.com/cg-zhou/agv-monitor/internal/core"
	"github.com/cg-zhou/agv-monitor/internal/record"
)

// Result is one validator finding. A passing trajectory yields no Results
// at all; every entry here is a violation.
type Result struct {
	Message   string
	Timestamp int
	AGVName   string

	// Fatal marks a structural impossibility (task sequence or coverage
	// mismatch) that a caller may choose to escalate, per spec.md §4.8/§7.
	Fatal bool
}

func (r Result) String() string {
	return fmt.Sprintf("t=%d agv=%s: %s", r.Timestamp, r.AGVName, r.Message)
}

// HasFatal reports whether any result is marked Fatal.
func HasFatal(results []Result) bool {
	for _, r := range results {
		if r.Fatal {
			return true
		}
	}
	return false
}

// byAGV groups rows by AGV name, each group sorted by timestamp — mirroring
// the teacher's sortedRobotIDs-then-group-by-time shape for deterministic
// pairwise comparison.
func byAGV(trajectory []record.Row) (map[string][]record.Row, []string) {
	groups := make(map[string][]record.Row)
	for _, row := range trajectory {
		groups[row.Name] = append(groups[row.Name], row)
	}
	names := make([]string, 0, len(groups))
	for name, rows := range groups {
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].Timestamp < rows[j].Timestamp })
		groups[name] = rows
		names = append(names, name)
	}
	sort.Strings(names)
	return groups, names
}

// Validate checks trajectory against the map's start/end points and the
// task list that generated it. startPoints and endPoints hold only the
// matching core.MapElement.Kind entries.
func Validate(startPoints, endPoints []core.MapElement, tasks []*core.Task, trajectory []record.Row) []Result {
	var results []Result

	groups, names := byAGV(trajectory)

	results = append(results, checkBounds(trajectory)...)
	for _, name := range names {
		rows := groups[name]
		results = append(results, checkSpeedAndGeometry(name, rows)...)
		results = append(results, checkMoveWhileTurning(name, rows)...)
		results = append(results, checkRotation(name, rows)...)
		results = append(results, checkPickupLegality(name, rows, startPoints)...)
		results = append(results, checkDeliveryLegality(name, rows, endPoints)...)
	}
	results = append(results, checkSameCellCollisions(trajectory)...)
	results = append(results, checkSwapCollisions(groups, names)...)
	results = append(results, checkTaskSequence(groups, names, startPoints, tasks)...)
	results = append(results, checkCoverage(groups, names, startPoints, tasks)...)

	return results
}

func checkBounds(trajectory []record.Row) []Result {
	var results []Result
	for _, row := range trajectory {
		if row.X < 1 || row.X > 20 || row.Y < 1 || row.Y > 20 {
			results = append(results, Result{
				Message:   fmt.Sprintf("position (%d,%d) out of 1..20 bounds", row.X, row.Y),
				Timestamp: row.Timestamp, AGVName: row.Name,
			})
		}
	}
	return results
}

func checkSpeedAndGeometry(name string, rows []record.Row) []Result {
	var results []Result
	for i := 1; i < len(rows); i++ {
		prev, cur := rows[i-1], rows[i]
		dx, dy := absInt(cur.X-prev.X), absInt(cur.Y-prev.Y)
		dt := cur.Timestamp - prev.Timestamp

		if dx+dy > dt {
			results = append(results, Result{
				Message:   fmt.Sprintf("moved %d cells in %d seconds", dx+dy, dt),
				Timestamp: cur.Timestamp, AGVName: name,
			})
		}
		if dx != 0 && dy != 0 {
			results = append(results, Result{
				Message:   "diagonal movement",
				Timestamp: cur.Timestamp, AGVName: name,
			})
		}
	}
	return results
}

func checkMoveWhileTurning(name string, rows []record.Row) []Result {
	var results []Result
	for i := 1; i < len(rows); i++ {
		prev, cur := rows[i-1], rows[i]
		if prev.X == cur.X && prev.Y == cur.Y {
			continue
		}
		want, err := core.HeadingTo(core.Point{X: prev.X, Y: prev.Y}, core.Point{X: cur.X, Y: cur.Y})
		if err != nil {
			results = append(results, Result{
				Message:   "moved to a non-adjacent cell",
				Timestamp: cur.Timestamp, AGVName: name,
			})
			continue
		}
		if int(want) != prev.Heading {
			results = append(results, Result{
				Message:   fmt.Sprintf("moved in direction %s but previous heading was %d", want, prev.Heading),
				Timestamp: cur.Timestamp, AGVName: name,
			})
		}
	}
	return results
}

func checkRotation(name string, rows []record.Row) []Result {
	var results []Result
	for i := 1; i < len(rows); i++ {
		prev, cur := rows[i-1], rows[i]
		if prev.Heading == cur.Heading {
			continue
		}
		diff := (cur.Heading - prev.Heading) % 360
		if diff < 0 {
			diff += 360
		}
		if diff != 90 && diff != 180 && diff != 270 {
			results = append(results, Result{
				Message:   fmt.Sprintf("invalid rotation from %d to %d degrees", prev.Heading, cur.Heading),
				Timestamp: cur.Timestamp, AGVName: name,
			})
		}
		if prev.Loaded != cur.Loaded {
			results = append(results, Result{
				Message:   "turned on the same tick as a load/unload",
				Timestamp: cur.Timestamp, AGVName: name,
			})
		}
	}
	return results
}

func checkSameCellCollisions(trajectory []record.Row) []Result {
	var results []Result
	byTick := make(map[int][]record.Row)
	for _, row := range trajectory {
		byTick[row.Timestamp] = append(byTick[row.Timestamp], row)
	}
	ticks := make([]int, 0, len(byTick))
	for t := range byTick {
		ticks = append(ticks, t)
	}
	sort.Ints(ticks)

	for _, t := range ticks {
		rows := byTick[t]
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })
		for i := 0; i < len(rows); i++ {
			for j := i + 1; j < len(rows); j++ {
				if rows[i].X == rows[j].X && rows[i].Y == rows[j].Y {
					results = append(results, Result{
						Message:   fmt.Sprintf("%s and %s occupy the same cell (%d,%d)", rows[i].Name, rows[j].Name, rows[i].X, rows[i].Y),
						Timestamp: t, AGVName: rows[i].Name,
					})
				}
			}
		}
	}
	return results
}

func checkSwapCollisions(groups map[string][]record.Row, names []string) []Result {
	var results []Result
	for i := 0; i < len(names); i++ {
		for j := i + 1; j < len(names); j++ {
			a, b := groups[names[i]], groups[names[j]]
			byTickA, byTickB := indexByTick(a), indexByTick(b)

			for _, rowA := range a {
				t := rowA.Timestamp
				nextA, ok := byTickA[t+1]
				if !ok {
					continue
				}
				rowB, ok := byTickB[t]
				if !ok {
					continue
				}
				nextB, ok := byTickB[t+1]
				if !ok {
					continue
				}
				if rowA.X == nextB.X && rowA.Y == nextB.Y && rowB.X == nextA.X && rowB.Y == nextA.Y &&
					(rowA.X != nextA.X || rowA.Y != nextA.Y) {
					results = append(results, Result{
						Message:   fmt.Sprintf("%s and %s swapped cells between t=%d and t=%d", names[i], names[j], t, t+1),
						Timestamp: t, AGVName: names[i],
					})
				}
			}
		}
	}
	return results
}

func indexByTick(rows []record.Row) map[int]record.Row {
	idx := make(map[int]record.Row, len(rows))
	for _, r := range rows {
		idx[r.Timestamp] = r
	}
	return idx
}

func checkPickupLegality(name string, rows []record.Row, startPoints []core.MapElement) []Result {
	pickups := make(map[core.Point]bool, len(startPoints))
	for _, sp := range startPoints {
		pickups[core.PickupPositionFor(sp.Position())] = true
	}

	var results []Result
	for i := 1; i < len(rows); i++ {
		prev, cur := rows[i-1], rows[i]
		if prev.Loaded || !cur.Loaded {
			continue
		}
		if !pickups[core.Point{X: cur.X, Y: cur.Y}] {
			results = append(results, Result{
				Message:   fmt.Sprintf("loaded at (%d,%d), which is not a pickup cell", cur.X, cur.Y),
				Timestamp: cur.Timestamp, AGVName: name,
			})
		}
	}
	return results
}

func checkDeliveryLegality(name string, rows []record.Row, endPoints []core.MapElement) []Result {
	endByName := make(map[string]core.Point, len(endPoints))
	for _, ep := range endPoints {
		endByName[ep.Name] = ep.Position()
	}

	var results []Result
	for i := 1; i < len(rows); i++ {
		prev, cur := rows[i-1], rows[i]
		if !prev.Loaded || cur.Loaded {
			continue
		}
		end, ok := endByName[prev.Destination]
		if !ok {
			results = append(results, Result{
				Message:   fmt.Sprintf("unloaded carrying unknown destination %q", prev.Destination),
				Timestamp: cur.Timestamp, AGVName: name,
			})
			continue
		}
		curPos := core.Point{X: cur.X, Y: cur.Y}
		if !curPos.Adjacent(end) {
			results = append(results, Result{
				Message:   fmt.Sprintf("unloaded at (%d,%d), not adjacent to %s", cur.X, cur.Y, prev.Destination),
				Timestamp: cur.Timestamp, AGVName: name,
			})
		}
	}
	return results
}

// checkTaskSequence and checkCoverage both need to know which start point a
// pickup cell belongs to.
func startPointByPickup(startPoints []core.MapElement) map[core.Point]string {
	m := make(map[core.Point]string, len(startPoints))
	for _, sp := range startPoints {
		m[core.PickupPositionFor(sp.Position())] = sp.Name
	}
	return m
}

func checkTaskSequence(groups map[string][]record.Row, names []string, startPoints []core.MapElement, tasks []*core.Task) []Result {
	pickupOwner := startPointByPickup(startPoints)

	type pickupEvent struct {
		ts          int
		destination string
	}
	observed := make(map[string][]pickupEvent)
	for _, name := range names {
		rows := groups[name]
		for i := 1; i < len(rows); i++ {
			prev, cur := rows[i-1], rows[i]
			if prev.Loaded || !cur.Loaded {
				continue
			}
			sp, ok := pickupOwner[core.Point{X: cur.X, Y: cur.Y}]
			if !ok {
				continue
			}
			observed[sp] = append(observed[sp], pickupEvent{ts: cur.Timestamp, destination: cur.Destination})
		}
	}

	expected := make(map[string][]string)
	for _, t := range tasks {
		expected[t.StartPointName] = append(expected[t.StartPointName], t.EndPointName)
	}

	startPointNames := make([]string, 0, len(observed))
	for sp := range observed {
		startPointNames = append(startPointNames, sp)
	}
	sort.Strings(startPointNames)

	var results []Result
	for _, sp := range startPointNames {
		events := observed[sp]
		sort.SliceStable(events, func(i, j int) bool { return events[i].ts < events[j].ts })
		var got []string
		for _, e := range events {
			got = append(got, e.destination)
		}
		want := expected[sp]
		if !equalStrings(got, want) {
			results = append(results, Result{
				Message: fmt.Sprintf("start point %s: observed destination sequence %v does not match task list %v", sp, got, want),
				Fatal:   true,
			})
		}
	}
	return results
}

func checkCoverage(groups map[string][]record.Row, names []string, startPoints []core.MapElement, tasks []*core.Task) []Result {
	pickupOwner := startPointByPickup(startPoints)

	producing := make(map[string]bool)
	for _, name := range names {
		rows := groups[name]
		for i := 1; i < len(rows); i++ {
			prev, cur := rows[i-1], rows[i]
			if prev.Loaded || !cur.Loaded {
				continue
			}
			if sp, ok := pickupOwner[core.Point{X: cur.X, Y: cur.Y}]; ok {
				producing[sp] = true
			}
		}
	}

	taskStartPoints := make(map[string]bool)
	for _, t := range tasks {
		taskStartPoints[t.StartPointName] = true
	}

	if len(producing) > len(taskStartPoints) {
		return []Result{{
			Message: fmt.Sprintf("trajectory produced pickups from %d start points but the task list only names %d", len(producing), len(taskStartPoints)),
			Fatal:   true,
		}}
	}
	return nil
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
