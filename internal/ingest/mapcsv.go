// Package ingest reads and writes the three external CSV formats named in
// spec.md §6: the map, the task queue, and the trajectory log.
package ingest

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/cg-zhou/agv-monitor/internal/core"
)

var mapHeader = []string{"type", "name", "x", "y", "pitch"}

// ReadMapCSV parses a map_data.csv: header type,name,x,y,pitch. type is one
// of StartPoint/start_point, EndPoint/end_point, or Agv (case-insensitive);
// pitch is required for Agv rows and optional otherwise.
func ReadMapCSV(r io.Reader, filename string) ([]core.MapElement, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, errors.Wrapf(err, "ingest: reading %s header", filename)
	}
	if err := requireHeader(filename, header, mapHeader); err != nil {
		return nil, err
	}

	var elements []core.MapElement
	line := 1
	for {
		line++
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "ingest: reading %s line %d", filename, line)
		}
		if len(row) < 4 {
			return nil, core.NewParseError(filename, line, "expected at least 4 columns, got %d", len(row))
		}

		kind, err := parseElementKind(row[0])
		if err != nil {
			return nil, core.NewParseError(filename, line, "%v", err)
		}

		x, err := strconv.Atoi(strings.TrimSpace(row[2]))
		if err != nil {
			return nil, core.NewParseError(filename, line, "invalid x %q", row[2])
		}
		y, err := strconv.Atoi(strings.TrimSpace(row[3]))
		if err != nil {
			return nil, core.NewParseError(filename, line, "invalid y %q", row[3])
		}

		element := core.MapElement{Kind: kind, Name: row[1], X: x, Y: y}

		pitchStr := ""
		if len(row) >= 5 {
			pitchStr = strings.TrimSpace(row[4])
		}
		if pitchStr != "" {
			pitch, err := parsePitch(pitchStr)
			if err != nil {
				return nil, core.NewParseError(filename, line, "invalid pitch %q", row[4])
			}
			element.Pitch = &pitch
		} else if kind == core.AgvElement {
			return nil, core.NewParseError(filename, line, "Agv row missing required pitch")
		}

		elements = append(elements, element)
	}

	return elements, nil
}

func parseElementKind(s string) (core.ElementKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "startpoint", "start_point":
		return core.StartPoint, nil
	case "endpoint", "end_point":
		return core.EndPoint, nil
	case "agv":
		return core.AgvElement, nil
	default:
		return 0, errors.Errorf("unrecognized map element type %q", s)
	}
}

func parsePitch(s string) (core.Direction, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	switch core.Direction(n) {
	case core.Right, core.Up, core.Left, core.Down:
		return core.Direction(n), nil
	default:
		return 0, errors.Errorf("pitch must be one of 0, 90, 180, 270, got %d", n)
	}
}

func requireHeader(filename string, got, want []string) error {
	if len(got) < len(want) {
		return core.NewParseError(filename, 1, "expected header %v, got %v", want, got)
	}
	for i, col := range want {
		if !strings.EqualFold(strings.TrimSpace(got[i]), col) {
			return core.NewParseError(filename, 1, "expected header %v, got %v", want, got)
		}
	}
	return nil
}
