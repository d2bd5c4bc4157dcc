/*
PURPOSE:
  Splits a requested date range into per-source fetch windows around "today".
  The archive API only has data up to yesterday; the forecast APIs only go
  out 16 days. A range straddling today is served by both, split at today.

REQUIREMENTS:
  User-specified:
  - One command must handle past, future, and mixed ranges transparently.

  Implementation-discovered:
  - Archive window for a mixed range ends at today-1 (yesterday is the last
    archived day).
  - Forecast window start clamps to today for mixed ranges, end clamps to
    today+16d.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine/runner.go

ERROR HANDLING:
  - None; an empty plan simply fetches nothing, which the runner reports.

USAGE:
  plan := buildPlan(start, end, today, wantHistorical, wantForecast)

RELATED FILES:
  - internal/engine/runner.go

MAINTENANCE:
  - forecastHorizonDays tracks the Open-Meteo forecast length.
*/

package engine

import "time"

const forecastHorizonDays = 16

// window is a closed date range for one fetch.
type window struct {
	Start time.Time
	End   time.Time
}

// plan lists which windows to fetch. A nil window means that source is not
// applicable to the requested range (or was disabled).
type plan struct {
	Historical *window
	Forecast   *window
}

// buildPlan computes fetch windows for a requested [start, end] range given
// the current date. All times are civil dates (midnight UTC).
func buildPlan(start, end, today time.Time, wantHistorical, wantForecast bool) plan {
	horizon := today.AddDate(0, 0, forecastHorizonDays)

	isHistorical := end.Before(today)
	isForecast := !start.After(horizon)
	isMixed := start.Before(today) && !end.Before(today)

	var p plan

	if wantHistorical && (isHistorical || isMixed) {
		histEnd := end
		if isMixed {
			histEnd = today.AddDate(0, 0, -1)
		}
		p.Historical = &window{Start: start, End: histEnd}
	}

	if wantForecast && isForecast {
		fcStart := start
		if isMixed {
			fcStart = today
		}
		fcEnd := end
		if fcEnd.After(horizon) {
			fcEnd = horizon
		}
		p.Forecast = &window{Start: fcStart, End: fcEnd}
	}

	return p
}
