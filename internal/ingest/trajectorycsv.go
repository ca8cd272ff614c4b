package ingest

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/cg-zhou/agv-monitor/internal/core"
	"github.com/cg-zhou/agv-monitor/internal/record"
)

var trajectoryHeader = []string{"timestamp", "name", "X", "Y", "pitch", "loaded", "destination", "Emergency"}

// ReadTrajectoryCSV parses a trajectory log in the format record.ExportCSV
// writes: header timestamp,name,X,Y,pitch,loaded,destination,Emergency[,id].
// A leading "# ..." comment line (the run UUID) is tolerated and skipped.
func ReadTrajectoryCSV(r io.Reader, filename string) ([]record.Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.Comment = '#'

	header, err := reader.Read()
	if err != nil {
		return nil, errors.Wrapf(err, "ingest: reading %s header", filename)
	}
	if err := requireHeader(filename, header, trajectoryHeader); err != nil {
		return nil, err
	}
	hasID := len(header) >= 9

	var rows []record.Row
	line := 1
	for {
		line++
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "ingest: reading %s line %d", filename, line)
		}
		if len(rec) < 8 {
			return nil, core.NewParseError(filename, line, "expected at least 8 columns, got %d", len(rec))
		}

		ts, err := strconv.Atoi(strings.TrimSpace(rec[0]))
		if err != nil {
			return nil, core.NewParseError(filename, line, "invalid timestamp %q", rec[0])
		}
		x, err := strconv.Atoi(strings.TrimSpace(rec[2]))
		if err != nil {
			return nil, core.NewParseError(filename, line, "invalid X %q", rec[2])
		}
		y, err := strconv.Atoi(strings.TrimSpace(rec[3]))
		if err != nil {
			return nil, core.NewParseError(filename, line, "invalid Y %q", rec[3])
		}
		pitch, err := strconv.Atoi(strings.TrimSpace(rec[4]))
		if err != nil {
			return nil, core.NewParseError(filename, line, "invalid pitch %q", rec[4])
		}
		loaded, err := parseBool(rec[5])
		if err != nil {
			return nil, core.NewParseError(filename, line, "invalid loaded %q", rec[5])
		}
		emergency, err := parseBool(rec[7])
		if err != nil {
			return nil, core.NewParseError(filename, line, "invalid Emergency %q", rec[7])
		}

		row := record.Row{
			Timestamp:   ts,
			Name:        rec[1],
			X:           x,
			Y:           y,
			Heading:     pitch,
			Loaded:      loaded,
			Destination: rec[6],
			Emergency:   emergency,
		}
		if hasID && len(rec) >= 9 {
			row.TaskID = rec[8]
		}

		rows = append(rows, row)
	}

	return rows, nil
}

func parseBool(s string) (bool, error) {
	return strconv.ParseBool(strings.TrimSpace(s))
}
