package output

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/powerweather/precip-analyzer/internal/model"
)

func sample(v *float64) model.DailyRecord {
	return model.DailyRecord{
		Source:  "Historical Archive",
		Date:    "2026-02-09",
		Measure: "rain_sum",
		Model:   "era5",
		Value:   v,
		Unit:    "mm",
	}
}

func TestCSVWriterRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	w, err := NewCSVWriter(path)
	require.NoError(t, err)

	v := 4.2
	require.NoError(t, w.Write(sample(&v)))
	require.NoError(t, w.Write(sample(nil)))
	require.NoError(t, w.Close())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"source", "date", "measure", "model", "value", "unit"}, rows[0])
	assert.Equal(t, []string{"Historical Archive", "2026-02-09", "rain_sum", "era5", "4.2", "mm"}, rows[1])
	assert.Equal(t, "", rows[2][4], "null sample must be an empty cell")
}

func TestJSONWriterEmitsOneLinePerRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.jsonl")
	w, err := NewJSONWriter(path)
	require.NoError(t, err)

	v := 0.5
	require.NoError(t, w.Write(sample(&v)))
	require.NoError(t, w.Write(sample(nil)))
	require.NoError(t, w.Close())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	dec := json.NewDecoder(f)

	var first, second model.DailyRecord
	require.NoError(t, dec.Decode(&first))
	require.NoError(t, dec.Decode(&second))

	require.NotNil(t, first.Value)
	assert.Equal(t, 0.5, *first.Value)
	assert.Nil(t, second.Value)
	assert.Equal(t, "era5", second.Model)
}
