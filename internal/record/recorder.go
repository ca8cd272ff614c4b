// Package record implements the trajectory recorder: an append-only,
// per-tick log of every AGV's pose and load status, usable for later
// validation and scoring.
package record

import (
	"strconv"

	"github.com/google/uuid"

	"github.com/cg-zhou/agv-monitor/internal/core"
)

// Row is a single recorded observation of one AGV at one tick.
type Row struct {
	Timestamp   int
	Name        string
	X, Y        int
	Heading     int // degrees: 0, 90, 180, 270
	Loaded      bool
	Destination string // loaded_task.end_point_name, or "" if not loaded
	Emergency   bool   // task.priority == High
	TaskID      string // "" if not loaded
}

// Recorder accumulates trajectory rows in insertion order.
type Recorder struct {
	RunID uuid.UUID
	rows  []Row
}

// NewRecorder constructs a Recorder and immediately records every AGV in
// ctx at timestamp 0.
func NewRecorder(ctx *core.Context) *Recorder {
	r := &Recorder{RunID: uuid.New()}
	r.Add(ctx, 0)
	return r
}

// Add appends one row per AGV in ctx for the given timestamp.
func (r *Recorder) Add(ctx *core.Context, ts int) {
	for _, a := range ctx.AGVs {
		row := Row{
			Timestamp: ts,
			Name:      a.Name,
			X:         a.Position.X,
			Y:         a.Position.Y,
			Heading:   int(a.Heading),
			Loaded:    a.IsLoaded,
		}
		if a.IsLoaded && a.LoadedTask != nil {
			row.Destination = a.LoadedTask.EndPointName
			row.Emergency = a.LoadedTask.Priority == core.High
			row.TaskID = strconv.Itoa(int(a.LoadedTask.ID))
		}
		r.rows = append(r.rows, row)
	}
}

// Rows returns every recorded row, in insertion order.
func (r *Recorder) Rows() []Row {
	return r.rows
}
