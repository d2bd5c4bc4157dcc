package analyze

import (
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/powerweather/precip-analyzer/internal/model"
)

// ModelMeasureTable pivots aggregated totals into a text table with one row
// per model and one column per measure, both in sorted order. Combinations a
// source did not report stay blank.
func ModelMeasureTable(totals map[model.MeasureAndModel]float64) string {
	measureSet := make(map[string]struct{})
	modelSet := make(map[string]struct{})
	for mm := range totals {
		measureSet[mm.Measure] = struct{}{}
		modelSet[mm.Model] = struct{}{}
	}

	measures := sortedKeys(measureSet)
	models := sortedKeys(modelSet)

	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "Model\t%s\n", strings.Join(measures, "\t"))

	for _, m := range models {
		cells := make([]string, 0, len(measures))
		for _, measure := range measures {
			if total, ok := totals[model.MeasureAndModel{Measure: measure, Model: m}]; ok {
				cells = append(cells, fmt.Sprintf("%.1f", total))
			} else {
				cells = append(cells, "")
			}
		}
		fmt.Fprintf(w, "%s\t%s\n", m, strings.Join(cells, "\t"))
	}

	w.Flush()
	return sb.String()
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
