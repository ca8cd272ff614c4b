package record

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/pkg/errors"
)

// trajectoryHeader matches the external trajectory CSV format named in
// spec.md §6.
var trajectoryHeader = []string{"timestamp", "name", "X", "Y", "pitch", "loaded", "destination", "Emergency", "id"}

// ExportCSV writes the recorded trajectory to path, preceded by a comment
// line carrying the run's UUID (for archival correlation; readers that use
// encoding/csv.Reader with Comment='#' skip it transparently).
func (r *Recorder) ExportCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "record: creating %s", path)
	}
	defer f.Close()

	if _, err := f.WriteString("# run " + r.RunID.String() + "\n"); err != nil {
		return errors.Wrap(err, "record: writing run header")
	}

	w := csv.NewWriter(f)
	if err := w.Write(trajectoryHeader); err != nil {
		return errors.Wrap(err, "record: writing header row")
	}

	for _, row := range r.rows {
		rec := []string{
			strconv.Itoa(row.Timestamp),
			row.Name,
			strconv.Itoa(row.X),
			strconv.Itoa(row.Y),
			strconv.Itoa(row.Heading),
			strconv.FormatBool(row.Loaded),
			row.Destination,
			strconv.FormatBool(row.Emergency),
			row.TaskID,
		}
		if err := w.Write(rec); err != nil {
			return errors.Wrap(err, "record: writing row")
		}
	}

	w.Flush()
	return errors.Wrap(w.Error(), "record: flushing csv writer")
}
