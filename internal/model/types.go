/*
PURPOSE:
  Defines the core data structures used throughout precip-analyzer.
  These models represent locations, data sources, and daily precipitation
  series in the columnar shape the Open-Meteo APIs return.

REQUIREMENTS:
  User-specified:
  - Track location (name + coordinates), date range, unit.
  - Represent daily values per measure per forecast model, including gaps.

  Implementation-discovered:
  - Open-Meteo flattens measure and model into one response key; we keep
    them split as a comparable struct so it can key maps directly.
  - Need JSON tags on the export record for the JSON-lines writer.

ARCHITECTURE INTEGRATION:
  - Used by: internal/engine, internal/analyze, internal/output
  - Shared across boundaries.

ERROR HANDLING:
  - ParseUnit rejects anything that is not mm or inch.

IMPLEMENTATION RULES:
  - Keep structs simple and public.
  - Nullable samples are *float64; nil means the API had no value.

USAGE:
  loc := model.Location{Name: "Seattle, Washington", Lat: 47.6, Lon: -122.3}

RELATED FILES:
  - internal/model/catalog.go
  - internal/engine/decode.go

MAINTENANCE:
  - Update when adding new measures or export columns.
*/

package model

import "fmt"

// Source identifies one of the Open-Meteo daily data endpoints.
type Source int

const (
	SourceHistoricalArchive Source = iota
	SourceForecastStandard
	SourceForecastEnsemble
)

// String returns the human-readable source name used in report banners.
func (s Source) String() string {
	switch s {
	case SourceHistoricalArchive:
		return "Historical Archive"
	case SourceForecastStandard:
		return "Standard Forecast"
	case SourceForecastEnsemble:
		return "Ensemble Forecast"
	default:
		return fmt.Sprintf("Source(%d)", int(s))
	}
}

// Unit is the precipitation unit requested from the API and shown in output.
type Unit string

const (
	UnitMillimeters Unit = "mm"
	UnitInches      Unit = "inch"
)

// ParseUnit validates a unit string from flags or config.
func ParseUnit(s string) (Unit, error) {
	switch s {
	case "mm":
		return UnitMillimeters, nil
	case "inch":
		return UnitInches, nil
	default:
		return "", fmt.Errorf("invalid precipitation unit: %q (use mm or inch)", s)
	}
}

// Location is a resolved analysis target.
type Location struct {
	Name string
	Lat  float64
	Lon  float64
}

// MeasureAndModel identifies one series: a daily measure (e.g. rain_sum)
// produced by one forecast model (e.g. gfs_global).
type MeasureAndModel struct {
	Measure string
	Model   string
}

// DailySeries holds a source response in columnar form: a shared time axis
// plus one nullable value column per measure/model combination.
type DailySeries struct {
	Time   []string
	Fields map[MeasureAndModel][]*float64
}

// SourceResult pairs a fetched series with the source it came from.
type SourceResult struct {
	Source Source
	Data   DailySeries
}

// DailyRecord is the flattened per-day export row written to CSV/JSON.
type DailyRecord struct {
	Source  string   `json:"source"`
	Date    string   `json:"date"`
	Measure string   `json:"measure"`
	Model   string   `json:"model"`
	Value   *float64 `json:"value"`
	Unit    string   `json:"unit"`
}
