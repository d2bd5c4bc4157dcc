/*
PURPOSE:
  High-level runner that orchestrates a precipitation analysis.
  Resolves the location, plans fetch windows, queries each data source,
  aggregates, reports, and exports.

REQUIREMENTS:
  User-specified:
  - Compare historical, standard forecast, and ensemble forecast data in
    one run.
  - A failing source must not sink the run (continue-on-error is an
    explicit, configured behavior here, not a shell accident).

  Implementation-discovered:
  - Needs to report progress to the console while fetching.

ARCHITECTURE INTEGRATION:
  - Called by: internal/cli
  - Uses: internal/engine, internal/analyze, internal/output,
    internal/summary, pkg/spinner

ERROR HANDLING:
  - Per-source errors are logged and tolerated when continue_on_error is
    set; only "no data from any source" is fatal.

USAGE:
  engine.Run(cfg, req)

RELATED FILES:
  - internal/engine/client.go
  - internal/engine/plan.go

MAINTENANCE:
  - Update iteration logic if parallel fetching is introduced.
*/

package engine

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/powerweather/precip-analyzer/internal/analyze"
	"github.com/powerweather/precip-analyzer/internal/config"
	"github.com/powerweather/precip-analyzer/internal/model"
	"github.com/powerweather/precip-analyzer/internal/output"
	"github.com/powerweather/precip-analyzer/internal/summary"
	"github.com/powerweather/precip-analyzer/pkg/spinner"
)

// Request describes one analysis run as assembled from CLI flags.
type Request struct {
	City     string
	Lat, Lon *float64

	Start time.Time
	End   time.Time

	Historical bool
	Forecast   bool
	Ensemble   bool

	Verbose bool
}

// Run executes a full analysis.
func Run(cfg *config.Config, req Request) error {
	c := New(cfg)
	ctx := context.Background()

	loc, err := resolveLocation(ctx, c, req)
	if err != nil {
		return err
	}

	output.Info(os.Stdout, "Location: %s", loc.Name)
	output.Info(os.Stdout, "Period: %s to %s", req.Start.Format(dateFormat), req.End.Format(dateFormat))
	fmt.Println()

	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	p := buildPlan(req.Start, req.End, today, req.Historical, req.Forecast)

	var results []model.SourceResult

	fetch := func(src model.Source, w *window, label string) error {
		data, err := c.FetchDaily(ctx, src, loc, w.Start, w.End)
		if err != nil {
			output.Warn(os.Stdout, "  ⚠ %s error: %v", src, err)
			output.Logger.Error("Source fetch failed", "source", src.String(), "error", err)
			if !cfg.ContinueOnError {
				return err
			}
			return nil
		}
		output.Info(os.Stdout, "  ✓ %s retrieved", label)
		results = append(results, model.SourceResult{Source: src, Data: data})
		return nil
	}

	if p.Historical != nil {
		output.Step(os.Stdout, "Fetching historical data...")
		if err := fetch(model.SourceHistoricalArchive, p.Historical, "Historical archive data"); err != nil {
			return err
		}
	}

	if p.Forecast != nil {
		output.Step(os.Stdout, "Fetching forecast data...")
		if err := fetch(model.SourceForecastStandard, p.Forecast, "Standard forecast data"); err != nil {
			return err
		}
		if req.Ensemble {
			if err := fetch(model.SourceForecastEnsemble, p.Forecast, "Ensemble forecast data"); err != nil {
				return err
			}
		}
	}

	if len(results) == 0 {
		return errors.New("no data retrieved from any source")
	}

	fmt.Println()

	if cfg.OutputDir != "" {
		if err := writeExports(cfg, results); err != nil {
			return err
		}
	}

	for _, res := range results {
		output.Banner(os.Stdout, fmt.Sprintf("%s - PRECIPITATION BY MODEL AND MEASURE", strings.ToUpper(res.Source.String())))

		aggregated := analyze.Aggregate(res.Data)
		fmt.Println(analyze.ModelMeasureTable(aggregated))
	}

	if req.Verbose {
		printDailyBreakdown(results, cfg.Unit)
	}

	if cfg.Summary.Enabled {
		printSummary(ctx, cfg, loc, results)
	}

	output.Success(os.Stdout, "Analysis complete!")
	return nil
}

// resolveLocation geocodes the city, or passes coordinates straight through.
func resolveLocation(ctx context.Context, c *Client, req Request) (model.Location, error) {
	if req.City != "" {
		sp := spinner.New(fmt.Sprintf("Geocoding %q...", req.City), os.Stderr)
		sp.Start()
		loc, err := c.Geocode(ctx, req.City)
		sp.Stop()
		return loc, err
	}

	if req.Lat != nil && req.Lon != nil {
		return model.Location{
			Name: fmt.Sprintf("Lat: %.4f, Lon: %.4f", *req.Lat, *req.Lon),
			Lat:  *req.Lat,
			Lon:  *req.Lon,
		}, nil
	}

	return model.Location{}, errors.New("must specify either --city or both --lat and --lon")
}

// writeExports appends every per-day sample to the CSV and JSON-lines files.
func writeExports(cfg *config.Config, results []model.SourceResult) error {
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", cfg.OutputDir, err)
	}

	csvPath := filepath.Join(cfg.OutputDir, cfg.OutputFile)
	csvWriter, err := output.NewCSVWriter(csvPath)
	if err != nil {
		return fmt.Errorf("failed to init CSV writer at %s: %w", csvPath, err)
	}
	defer csvWriter.Close()

	jsonPath := filepath.Join(cfg.OutputDir, "precip_daily.jsonl")
	jsonWriter, err := output.NewJSONWriter(jsonPath)
	if err != nil {
		return fmt.Errorf("failed to init JSON writer at %s: %w", jsonPath, err)
	}
	defer jsonWriter.Close()

	for _, res := range results {
		for mm, values := range res.Data.Fields {
			for i, date := range res.Data.Time {
				if i >= len(values) {
					break
				}
				rec := model.DailyRecord{
					Source:  res.Source.String(),
					Date:    date,
					Measure: mm.Measure,
					Model:   mm.Model,
					Value:   values[i],
					Unit:    cfg.Unit,
				}
				if err := csvWriter.Write(rec); err != nil {
					output.Logger.Error("Failed to write record to CSV", "error", err)
				}
				if err := jsonWriter.Write(rec); err != nil {
					output.Logger.Error("Failed to write record to JSON", "error", err)
				}
			}
		}
	}

	output.Logger.Info("Exports written", "csv", csvPath, "json", jsonPath)
	return nil
}

// printDailyBreakdown prints every sample grouped by date, per source.
func printDailyBreakdown(results []model.SourceResult, unit string) {
	output.Banner(os.Stdout, "DETAILED DAILY BREAKDOWN")

	for _, res := range results {
		output.Step(os.Stdout, "Source: %s", res.Source)
		fmt.Println()

		type entry struct {
			modelName string
			measure   string
			value     *float64
		}
		byDate := make(map[string][]entry)
		for mm, values := range res.Data.Fields {
			for i, date := range res.Data.Time {
				if i >= len(values) {
					break
				}
				byDate[date] = append(byDate[date], entry{mm.Model, mm.Measure, values[i]})
			}
		}

		dates := make([]string, 0, len(byDate))
		for d := range byDate {
			dates = append(dates, d)
		}
		sort.Strings(dates)

		for _, d := range dates {
			fmt.Printf("  Date: %s\n", d)
			entries := byDate[d]
			sort.Slice(entries, func(i, j int) bool {
				if entries[i].modelName != entries[j].modelName {
					return entries[i].modelName < entries[j].modelName
				}
				return entries[i].measure < entries[j].measure
			})
			for _, e := range entries {
				val := ""
				if e.value != nil {
					val = fmt.Sprintf("%.1f", *e.value)
				}
				fmt.Printf("    %s - %s: %s %s\n", e.modelName, e.measure, val, unit)
			}
			fmt.Println()
		}
	}
}

// printSummary asks the summarizer for a narrative recap of the totals.
func printSummary(ctx context.Context, cfg *config.Config, loc model.Location, results []model.SourceResult) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Location: %s\nUnit: %s\n\n", loc.Name, cfg.Unit)
	for _, res := range results {
		fmt.Fprintf(&sb, "%s totals:\n", res.Source)
		sb.WriteString(analyze.ModelMeasureTable(analyze.Aggregate(res.Data)))
		sb.WriteString("\n")
	}

	text, err := summary.Generate(ctx, cfg.Summary.Model, sb.String())
	if err != nil {
		output.Logger.Warn("Summary generation failed", "error", err)
		return
	}

	output.Banner(os.Stdout, "SUMMARY")
	fmt.Println(text)
	fmt.Println()
}
