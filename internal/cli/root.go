/*
PURPOSE:
  Defines the root Cobra command for the precip-analyzer CLI.
  The root command itself runs the analysis; flags mirror the binary's
  public surface (--city/--lat/--lon/--start/--end/--unit/...).

REQUIREMENTS:
  User-specified:
  - Location by city name or by coordinates (lat+lon together).
  - Required ISO date range, optional unit/timezone/verbosity.

  Implementation-discovered:
  - Needs to expose an Execute() function for main.go.
  - Flag overrides apply on top of the loaded config, not instead of it.

ARCHITECTURE INTEGRATION:
  - Called by: cmd/precip-analyzer/main.go
  - Calls: internal/engine.Run, child command (list-models)

ERROR HANDLING:
  - Returns error to main.go for exit code handling.
  - Validation (dates, location, unit) happens before any network call.

IMPLEMENTATION RULES:
  - Use `PersistentFlags()` for flags available to all subcommands.
  - Logic: Load Config -> Override -> Engine.Run.

USAGE:
  Called by main.go.

RELATED FILES:
  - cmd/precip-analyzer/main.go
  - internal/cli/list_models.go

MAINTENANCE:
  - Update when adding new CLI overrides.
*/

package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/powerweather/precip-analyzer/internal/config"
	"github.com/powerweather/precip-analyzer/internal/engine"
	"github.com/powerweather/precip-analyzer/internal/model"
	"github.com/powerweather/precip-analyzer/internal/output"
)

const dateFormat = "2006-01-02"

var (
	// cfgFile stores the path to the config file (if specified via flag)
	cfgFile string

	cityFlag     string
	latFlag      float64
	lonFlag      float64
	startFlag    string
	endFlag      string
	unitFlag     string
	timezoneFlag string

	historicalFlag bool
	forecastFlag   bool
	ensembleFlag   bool

	outputDirFlag string
	verboseFlag   bool
	summarizeFlag bool

	rootCmd = &cobra.Command{
		Use:   "precip-analyzer",
		Short: "Analyze and compare precipitation data from multiple sources",
		Long: `Fetches daily precipitation for a location and date range from the
Open-Meteo historical archive, standard forecast, and ensemble forecast APIs,
then reports per-model totals side by side. Ranges straddling today are split
between archive and forecast automatically.`,
		Example: `  # A week in the past, reported in inches
  precip-analyzer --city "Seattle, WA" --start 2026-02-09 --end 2026-02-16 --unit inch

  # Coordinates instead of a city name
  precip-analyzer --lat 40.7128 --lon -74.0060 --start 2026-02-09 --end 2026-02-16

  # Detailed daily breakdown
  precip-analyzer --city Berlin --start 2026-08-25 --end 2026-09-03 --verbose`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output.SetVerbose(verboseFlag)

			// 1. Load Config
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}

			// 2. Overrides
			if unitFlag != "" {
				cfg.Unit = unitFlag
			}
			if _, err := model.ParseUnit(cfg.Unit); err != nil {
				return err
			}
			if timezoneFlag != "" {
				cfg.Timezone = timezoneFlag
			}
			if outputDirFlag != "" {
				cfg.OutputDir = outputDirFlag
			}
			if summarizeFlag {
				cfg.Summary.Enabled = true
			}

			// 3. Request
			var lat, lon *float64
			if cmd.Flags().Changed("lat") {
				lat = &latFlag
			}
			if cmd.Flags().Changed("lon") {
				lon = &lonFlag
			}

			req, err := buildRequest(cityFlag, lat, lon, startFlag, endFlag,
				historicalFlag, forecastFlag, ensembleFlag, verboseFlag)
			if err != nil {
				return err
			}

			// 4. Execution
			return engine.Run(cfg, req)
		},
	}
)

// buildRequest validates the flag surface and assembles an engine request.
func buildRequest(city string, lat, lon *float64, start, end string, historical, forecast, ensemble, verbose bool) (engine.Request, error) {
	startDate, err := time.Parse(dateFormat, start)
	if err != nil {
		return engine.Request{}, fmt.Errorf("invalid start date format, use YYYY-MM-DD: %q", start)
	}
	endDate, err := time.Parse(dateFormat, end)
	if err != nil {
		return engine.Request{}, fmt.Errorf("invalid end date format, use YYYY-MM-DD: %q", end)
	}
	if endDate.Before(startDate) {
		return engine.Request{}, fmt.Errorf("end date must not be before start date")
	}

	hasCoords := lat != nil && lon != nil
	switch {
	case city != "" && (lat != nil || lon != nil):
		return engine.Request{}, fmt.Errorf("--city and --lat/--lon are mutually exclusive")
	case !hasCoords && (lat != nil || lon != nil):
		return engine.Request{}, fmt.Errorf("--lat and --lon must be used together")
	case city == "" && !hasCoords:
		return engine.Request{}, fmt.Errorf("must specify either --city or both --lat and --lon")
	}

	return engine.Request{
		City:       city,
		Lat:        lat,
		Lon:        lon,
		Start:      startDate,
		End:        endDate,
		Historical: historical,
		Forecast:   forecast,
		Ensemble:   ensemble,
		Verbose:    verbose,
	}, nil
}

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./precip.yaml)")

	rootCmd.Flags().StringVarP(&cityFlag, "city", "c", "", `City name (e.g., "Seattle, WA" or "New York")`)
	rootCmd.Flags().Float64Var(&latFlag, "lat", 0, "Latitude (use with --lon)")
	rootCmd.Flags().Float64Var(&lonFlag, "lon", 0, "Longitude (use with --lat)")
	rootCmd.Flags().StringVarP(&startFlag, "start", "s", "", "Start date (YYYY-MM-DD)")
	rootCmd.Flags().StringVarP(&endFlag, "end", "e", "", "End date (YYYY-MM-DD)")
	rootCmd.Flags().StringVarP(&unitFlag, "unit", "u", "", "Precipitation unit (mm or inch)")
	rootCmd.Flags().StringVarP(&timezoneFlag, "timezone", "z", "", `Time zone (e.g., "America/New_York", "UTC")`)
	rootCmd.Flags().BoolVar(&historicalFlag, "historical", true, "Fetch historical archive data")
	rootCmd.Flags().BoolVar(&forecastFlag, "forecast", true, "Fetch forecast data")
	rootCmd.Flags().BoolVar(&ensembleFlag, "ensemble", true, "Include ensemble forecast models")
	rootCmd.Flags().StringVarP(&outputDirFlag, "output-dir", "o", "", "Directory for CSV/JSON exports (exports off if unset)")
	rootCmd.Flags().BoolVarP(&verboseFlag, "verbose", "v", false, "Show detailed daily breakdown")
	rootCmd.Flags().BoolVar(&summarizeFlag, "summarize", false, "Generate an AI-written recap (needs OPENAI_API_KEY)")

	_ = rootCmd.MarkFlagRequired("start")
	_ = rootCmd.MarkFlagRequired("end")
}
