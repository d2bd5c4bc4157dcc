package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f(v float64) *float64 { return &v }

func TestBuildRequestWithCity(t *testing.T) {
	req, err := buildRequest("Seattle, WA", nil, nil, "2026-02-09", "2026-02-16", true, true, true, false)
	require.NoError(t, err)

	assert.Equal(t, "Seattle, WA", req.City)
	assert.Equal(t, time.Date(2026, 2, 9, 0, 0, 0, 0, time.UTC), req.Start)
	assert.Equal(t, time.Date(2026, 2, 16, 0, 0, 0, 0, time.UTC), req.End)
	assert.True(t, req.Ensemble)
}

func TestBuildRequestWithCoordinates(t *testing.T) {
	req, err := buildRequest("", f(40.7128), f(-74.0060), "2026-02-09", "2026-02-16", true, true, false, true)
	require.NoError(t, err)

	require.NotNil(t, req.Lat)
	require.NotNil(t, req.Lon)
	assert.InDelta(t, 40.7128, *req.Lat, 1e-9)
	assert.InDelta(t, -74.0060, *req.Lon, 1e-9)
	assert.True(t, req.Verbose)
}

func TestBuildRequestRejectsBadDates(t *testing.T) {
	_, err := buildRequest("Berlin", nil, nil, "02/09/2026", "2026-02-16", true, true, true, false)
	assert.ErrorContains(t, err, "start date")

	_, err = buildRequest("Berlin", nil, nil, "2026-02-09", "16-02-2026", true, true, true, false)
	assert.ErrorContains(t, err, "end date")
}

func TestBuildRequestRejectsReversedRange(t *testing.T) {
	_, err := buildRequest("Berlin", nil, nil, "2026-02-16", "2026-02-09", true, true, true, false)
	assert.ErrorContains(t, err, "end date must not be before start date")
}

func TestBuildRequestSameDayRangeIsValid(t *testing.T) {
	_, err := buildRequest("Berlin", nil, nil, "2026-02-09", "2026-02-09", true, true, true, false)
	assert.NoError(t, err)
}

func TestBuildRequestRequiresSomeLocation(t *testing.T) {
	_, err := buildRequest("", nil, nil, "2026-02-09", "2026-02-16", true, true, true, false)
	assert.ErrorContains(t, err, "--city or both --lat and --lon")
}

func TestBuildRequestRejectsCityPlusCoordinates(t *testing.T) {
	_, err := buildRequest("Berlin", f(52.5), f(13.4), "2026-02-09", "2026-02-16", true, true, true, false)
	assert.ErrorContains(t, err, "mutually exclusive")
}

func TestBuildRequestRejectsLatWithoutLon(t *testing.T) {
	_, err := buildRequest("", f(52.5), nil, "2026-02-09", "2026-02-16", true, true, true, false)
	assert.ErrorContains(t, err, "together")
}
