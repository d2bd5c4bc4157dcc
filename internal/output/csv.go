/*
PURPOSE:
  Writes per-day precipitation records to a CSV file.
  Ensures data integrity by flushing writes immediately.

REQUIREMENTS:
  User-specified:
  - Output to CSV for spreadsheet analysis.

  Implementation-discovered:
  - Null samples must round-trip as empty cells, not zeros.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine
  - Consumes: internal/model.DailyRecord

ERROR HANDLING:
  - Returns error on file creation or write failure.

IMPLEMENTATION RULES:
  - Use encoding/csv.
  - Flush() after every write (crash resilience).
  - Use Mutex if concurrent writes are expected.

USAGE:
  w, err := output.NewCSVWriter("precip_daily.csv")
  w.Write(rec)
  w.Close()

RELATED FILES:
  - internal/model/types.go

MAINTENANCE:
  - Update Write() mapping when DailyRecord changes.
*/

package output

import (
	"encoding/csv"
	"os"
	"strconv"
	"sync"

	"github.com/powerweather/precip-analyzer/internal/model"
)

// CSVWriter handles writing records to a CSV file.
type CSVWriter struct {
	file   *os.File
	writer *csv.Writer
	mu     sync.Mutex
}

// NewCSVWriter creates a new CSVWriter.
// It overwrites the file if it exists.
func NewCSVWriter(path string) (*CSVWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	w := csv.NewWriter(f)

	header := []string{"source", "date", "measure", "model", "value", "unit"}
	if err := w.Write(header); err != nil {
		f.Close()
		return nil, err
	}
	w.Flush()

	return &CSVWriter{
		file:   f,
		writer: w,
	}, nil
}

// Write writes a single record to the CSV file.
// It is thread-safe.
func (cw *CSVWriter) Write(r model.DailyRecord) error {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	value := ""
	if r.Value != nil {
		value = strconv.FormatFloat(*r.Value, 'f', -1, 64)
	}

	record := []string{
		r.Source,
		r.Date,
		r.Measure,
		r.Model,
		value,
		r.Unit,
	}

	if err := cw.writer.Write(record); err != nil {
		return err
	}
	cw.writer.Flush()
	return cw.writer.Error()
}

// Close closes the underlying file.
func (cw *CSVWriter) Close() error {
	cw.writer.Flush()
	return cw.file.Close()
}
