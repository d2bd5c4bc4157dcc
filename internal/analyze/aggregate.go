/*
PURPOSE:
  Aggregation over fetched daily series: collapses each measure/model
  column to its sum over the analysis period.

REQUIREMENTS:
  User-specified:
  - Totals per measure per model for the report table.

  Implementation-discovered:
  - The APIs return nulls where a model has no value for a day; nulls are
    skipped, not treated as zero, so a sparse model still sums correctly.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine/runner.go
  - Consumes: internal/model.DailySeries

ERROR HANDLING:
  - None (pure computation).

USAGE:
  totals := analyze.Aggregate(series)

RELATED FILES:
  - internal/analyze/table.go

MAINTENANCE:
  - Extend if non-summable measures (e.g. probabilities) are ever added.
*/

package analyze

import "github.com/powerweather/precip-analyzer/internal/model"

// Aggregate sums the non-null samples of every measure/model series.
func Aggregate(s model.DailySeries) map[model.MeasureAndModel]float64 {
	totals := make(map[model.MeasureAndModel]float64, len(s.Fields))

	for mm, values := range s.Fields {
		sum := 0.0
		for _, v := range values {
			if v != nil {
				sum += *v
			}
		}
		totals[mm] = sum
	}

	return totals
}
