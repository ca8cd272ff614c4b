package ingest

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/cg-zhou/agv-monitor/internal/core"
)

var taskHeader = []string{"id", "start_point", "end_point", "priority", "remaining_time"}

// ReadTaskCSV parses task_csv.csv against the map elements that name its
// start/end points, deriving each task's pickup position. IDs come from the
// id column; seq numbers are assigned sequentially in file order.
//
// priority is case-insensitive; High/Normal are recognized, and unrecognized
// values (including the legacy Medium/Low) map to Normal per spec.md §6/§9.
func ReadTaskCSV(r io.Reader, filename string, elements []core.MapElement) ([]*core.Task, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, errors.Wrapf(err, "ingest: reading %s header", filename)
	}
	if err := requireHeader(filename, header, taskHeader); err != nil {
		return nil, err
	}

	positions := make(map[string]core.Point, len(elements))
	for _, e := range elements {
		positions[e.Name] = e.Position()
	}

	var tasks []*core.Task
	line := 1
	seq := 0
	for {
		line++
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "ingest: reading %s line %d", filename, line)
		}
		if len(row) < 5 {
			return nil, core.NewParseError(filename, line, "expected 5 columns, got %d", len(row))
		}

		id, err := strconv.Atoi(strings.TrimSpace(row[0]))
		if err != nil {
			return nil, core.NewParseError(filename, line, "invalid id %q", row[0])
		}

		startName, endName := strings.TrimSpace(row[1]), strings.TrimSpace(row[2])
		start, ok := positions[startName]
		if !ok {
			return nil, core.NewParseError(filename, line, "unknown start point %q", startName)
		}
		end, ok := positions[endName]
		if !ok {
			return nil, core.NewParseError(filename, line, "unknown end point %q", endName)
		}

		priority := parsePriority(row[3])

		var deadline *int
		remaining := strings.TrimSpace(row[4])
		if remaining != "" && !strings.EqualFold(remaining, "none") {
			d, err := strconv.Atoi(remaining)
			if err != nil {
				return nil, core.NewParseError(filename, line, "invalid remaining_time %q", row[4])
			}
			deadline = &d
		}

		tasks = append(tasks, core.NewTask(core.TaskID(id), startName, endName, priority, deadline, start, end, seq))
		seq++
	}

	return tasks, nil
}

// parsePriority maps the CSV priority column to core.Priority. Unrecognized
// values, including the legacy Medium/Low strings, default to Normal.
func parsePriority(s string) core.Priority {
	if strings.EqualFold(strings.TrimSpace(s), "high") {
		return core.High
	}
	return core.Normal
}
