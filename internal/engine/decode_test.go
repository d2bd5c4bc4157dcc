package engine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testModels = []string{
	"meteoswiss_icon_seamless",
	"italia_meteo_arpae_icon_2i",
	"kma_gdps",
	"kma_ldps",
	"kma_seamless",
}

var testMeasures = []string{
	"rain_sum",
	"showers_sum",
	"snowfall_sum",
	"precipitation_sum",
	"precipitation_hours",
}

func TestSplitResponseKey(t *testing.T) {
	// icon_seamless is a substring of meteoswiss_icon_seamless; the longer
	// model name must win.
	mm, err := splitResponseKey("rain_sum_meteoswiss_icon_seamless")
	require.NoError(t, err)
	assert.Equal(t, "rain_sum", mm.Measure)
	assert.Equal(t, "meteoswiss_icon_seamless", mm.Model)
}

func TestSplitResponseKeyAllCombinations(t *testing.T) {
	for _, measure := range testMeasures {
		for _, m := range testModels {
			key := fmt.Sprintf("%s_%s", measure, m)
			mm, err := splitResponseKey(key)
			require.NoError(t, err, "key %s", key)
			assert.Equal(t, measure, mm.Measure)
			assert.Equal(t, m, mm.Model)
		}
	}
}

func TestSplitResponseKeyUnknownModel(t *testing.T) {
	_, err := splitResponseKey("rain_sum_unknown_model")
	assert.Error(t, err)
}

func TestSplitResponseKeyMissingSeparator(t *testing.T) {
	// Ends with a valid model but lacks the underscore separator.
	_, err := splitResponseKey("rain_summeteoswiss_icon_seamless")
	assert.Error(t, err)
}

func TestSplitResponseKeyOverlappingShortModels(t *testing.T) {
	mm, err := splitResponseKey("rain_sum_kma_gdps")
	require.NoError(t, err)
	assert.Equal(t, "rain_sum", mm.Measure)
	assert.Equal(t, "kma_gdps", mm.Model)
}

func TestSplitResponseKeyMeasureWithUnderscores(t *testing.T) {
	mm, err := splitResponseKey("precipitation_hours_kma_ldps")
	require.NoError(t, err)
	assert.Equal(t, "precipitation_hours", mm.Measure)
	assert.Equal(t, "kma_ldps", mm.Model)
}

const dailyResponseAllFloats = `{
  "latitude": 40.710335,
  "longitude": -73.99308,
  "generationtime_ms": 1.65,
  "utc_offset_seconds": 0,
  "timezone": "GMT",
  "elevation": 51.0,
  "daily_units": {"time": "iso8601", "rain_sum_best_match": "mm"},
  "daily": {
    "time": ["2026-02-13", "2026-02-14", "2026-02-15"],
    "rain_sum_best_match": [0.0, 0.5, 0.1],
    "showers_sum_best_match": [0.0, 0.0, 0.0]
  }
}`

const dailyResponseWithNulls = `{
  "daily": {
    "time": ["2026-02-13", "2026-02-14", "2026-02-15"],
    "rain_sum_best_match": [0.0, null, 0.1],
    "showers_sum_best_match": [null, null, null]
  }
}`

func TestDecodeDailySeries(t *testing.T) {
	series, err := decodeDailySeries([]byte(dailyResponseAllFloats))
	require.NoError(t, err)

	assert.Equal(t, []string{"2026-02-13", "2026-02-14", "2026-02-15"}, series.Time)
	require.Len(t, series.Fields, 2)

	rain := series.Fields[mam("rain_sum", "best_match")]
	require.Len(t, rain, 3)
	require.NotNil(t, rain[1])
	assert.Equal(t, 0.5, *rain[1])
}

func TestDecodeDailySeriesMixedNullsAndFloats(t *testing.T) {
	series, err := decodeDailySeries([]byte(dailyResponseWithNulls))
	require.NoError(t, err)

	rain := series.Fields[mam("rain_sum", "best_match")]
	require.Len(t, rain, 3)
	assert.Nil(t, rain[1])
	require.NotNil(t, rain[2])
	assert.Equal(t, 0.1, *rain[2])

	showers := series.Fields[mam("showers_sum", "best_match")]
	for _, v := range showers {
		assert.Nil(t, v)
	}
}

func TestDecodeDailySeriesMissingDaily(t *testing.T) {
	_, err := decodeDailySeries([]byte(`{"latitude": 1.0}`))
	assert.ErrorContains(t, err, "no daily data")
}

func TestDecodeDailySeriesInvalidJSON(t *testing.T) {
	_, err := decodeDailySeries([]byte(`{`))
	assert.Error(t, err)
}
