package engine

import (
	"encoding/csv"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/powerweather/precip-analyzer/internal/config"
	"github.com/powerweather/precip-analyzer/internal/model"
)

const runnerDailyPayload = `{"daily":{"time":["2020-01-01","2020-01-02"],"rain_sum_era5":[1.0,2.0]}}`

func okHandler(calls *atomic.Int32) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(runnerDailyPayload))
	}
}

func failHandler(calls *atomic.Int32) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "out of range", http.StatusInternalServerError)
	}
}

// pastRequest targets a long-past range by coordinates, so no geocoding is
// needed and both the archive and forecast windows are planned.
func pastRequest() Request {
	lat, lon := 47.6, -122.3
	return Request{
		Lat:        &lat,
		Lon:        &lon,
		Start:      day(2020, 1, 1),
		End:        day(2020, 1, 2),
		Historical: true,
		Forecast:   true,
		Ensemble:   false,
	}
}

func runnerConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.CacheDir = t.TempDir()
	cfg.MaxRetries = 1
	cfg.RetryDelay = 0
	return cfg
}

func TestRunToleratesOneFailingSource(t *testing.T) {
	var archiveCalls, forecastCalls atomic.Int32

	archive := httptest.NewServer(okHandler(&archiveCalls))
	defer archive.Close()
	forecast := httptest.NewServer(failHandler(&forecastCalls))
	defer forecast.Close()

	cfg := runnerConfig(t)
	cfg.Hosts.Archive = archive.URL
	cfg.Hosts.Forecast = forecast.URL
	cfg.OutputDir = t.TempDir()

	err := Run(cfg, pastRequest())
	require.NoError(t, err, "one surviving source must keep the run alive")

	assert.Equal(t, int32(1), archiveCalls.Load())
	assert.Equal(t, int32(1), forecastCalls.Load(), "the failing source must still have been attempted")

	// The surviving source's samples were exported.
	f, err := os.Open(filepath.Join(cfg.OutputDir, cfg.OutputFile))
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3, "header plus one record per day")
	assert.Equal(t, model.SourceHistoricalArchive.String(), rows[1][0])
	assert.Equal(t, "era5", rows[1][3])
}

func TestRunFailsWhenEverySourceFails(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(failHandler(&calls))
	defer srv.Close()

	cfg := runnerConfig(t)
	cfg.Hosts.Archive = srv.URL
	cfg.Hosts.Forecast = srv.URL

	err := Run(cfg, pastRequest())
	assert.ErrorContains(t, err, "no data retrieved from any source")
	assert.GreaterOrEqual(t, calls.Load(), int32(2), "both sources must have been attempted")
}

func TestRunAbortsOnFirstFailureWhenContinueOnErrorIsOff(t *testing.T) {
	var archiveCalls, forecastCalls atomic.Int32

	archive := httptest.NewServer(failHandler(&archiveCalls))
	defer archive.Close()
	forecast := httptest.NewServer(okHandler(&forecastCalls))
	defer forecast.Close()

	cfg := runnerConfig(t)
	cfg.Hosts.Archive = archive.URL
	cfg.Hosts.Forecast = forecast.URL
	cfg.ContinueOnError = false

	err := Run(cfg, pastRequest())
	require.Error(t, err)
	assert.ErrorContains(t, err, "bad status")

	assert.Equal(t, int32(1), archiveCalls.Load())
	assert.Equal(t, int32(0), forecastCalls.Load(), "later sources must not run after an abort")
}
