/*
PURPOSE:
  Writes per-day precipitation records to a JSON Lines file (NDJSON).
  Optimized for machine parsing (jq and friends).

REQUIREMENTS:
  User-specified:
  - JSON output for easier parsing.

  Implementation-discovered:
  - JSON Lines is better for streaming/logging than a single large array
    (append-friendly).

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine
  - Consumes: internal/model.DailyRecord

ERROR HANDLING:
  - Returns error on file creation or write failure.

IMPLEMENTATION RULES:
  - Use encoding/json.NewEncoder.
  - Thread-safe.

USAGE:
  w, err := output.NewJSONWriter("precip_daily.jsonl")
  w.Write(rec)
  w.Close()

RELATED FILES:
  - internal/model/types.go

MAINTENANCE:
  - Update if we switch to plain JSON array (not recommended for streaming).
*/

package output

import (
	"encoding/json"
	"os"
	"sync"

	"github.com/powerweather/precip-analyzer/internal/model"
)

// JSONWriter handles writing records to a JSON Lines file.
type JSONWriter struct {
	file    *os.File
	encoder *json.Encoder
	mu      sync.Mutex
}

// NewJSONWriter creates a new JSONWriter.
func NewJSONWriter(path string) (*JSONWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	return &JSONWriter{
		file:    f,
		encoder: json.NewEncoder(f),
	}, nil
}

// Write writes a single record as a JSON line.
func (jw *JSONWriter) Write(r model.DailyRecord) error {
	jw.mu.Lock()
	defer jw.mu.Unlock()

	return jw.encoder.Encode(r)
}

// Close closes the underlying file.
func (jw *JSONWriter) Close() error {
	return jw.file.Close()
}
