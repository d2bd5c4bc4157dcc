package engine

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/powerweather/precip-analyzer/internal/model"
)

// splitResponseKey recovers the measure and model from a flattened daily
// response key such as "rain_sum_meteoswiss_icon_seamless". The model is
// whichever catalog entry the key ends with; model.AllModels() is sorted
// longest-first so overlapping names (icon_seamless inside
// meteoswiss_icon_seamless) resolve to the full match.
func splitResponseKey(key string) (model.MeasureAndModel, error) {
	for _, m := range model.AllModels() {
		if !strings.HasSuffix(key, m) {
			continue
		}
		measure, ok := strings.CutSuffix(key, "_"+m)
		if !ok {
			return model.MeasureAndModel{}, fmt.Errorf("key does not contain expected separator before model: %s", key)
		}
		return model.MeasureAndModel{Measure: measure, Model: m}, nil
	}
	return model.MeasureAndModel{}, fmt.Errorf("no matching model for field: %s", key)
}

// decodeDailySeries parses an Open-Meteo daily response body into columnar
// form. The response carries a "daily" object holding a "time" axis plus one
// nullable float array per measure/model key.
func decodeDailySeries(body []byte) (model.DailySeries, error) {
	var envelope struct {
		Daily map[string]json.RawMessage `json:"daily"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return model.DailySeries{}, fmt.Errorf("failed to parse weather data response: %w", err)
	}
	if envelope.Daily == nil {
		return model.DailySeries{}, fmt.Errorf("no daily data in response")
	}

	series := model.DailySeries{
		Fields: make(map[model.MeasureAndModel][]*float64, len(envelope.Daily)),
	}

	for key, raw := range envelope.Daily {
		if key == "time" {
			if err := json.Unmarshal(raw, &series.Time); err != nil {
				return model.DailySeries{}, fmt.Errorf("failed to parse time axis: %w", err)
			}
			continue
		}

		mm, err := splitResponseKey(key)
		if err != nil {
			return model.DailySeries{}, err
		}

		var values []*float64
		if err := json.Unmarshal(raw, &values); err != nil {
			return model.DailySeries{}, fmt.Errorf("failed to parse values for %s: %w", key, err)
		}
		series.Fields[mm] = values
	}

	return series, nil
}
