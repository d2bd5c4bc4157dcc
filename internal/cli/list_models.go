/*
PURPOSE:
  Defines the 'list-models' subcommand.
  Prints the forecast model catalog per data source, useful for building
  exclude lists.

REQUIREMENTS:
  User-specified:
  - Inspect which models a source queries.

ARCHITECTURE INTEGRATION:
  - Uses: internal/model catalogs

ERROR HANDLING:
  - None; static output.

IMPLEMENTATION RULES:
  - Simple output to stdout.

USAGE:
  precip-analyzer list-models

RELATED FILES:
  - internal/model/catalog.go

MAINTENANCE:
  - None.
*/

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/powerweather/precip-analyzer/internal/model"
)

var listModelsCmd = &cobra.Command{
	Use:   "list-models",
	Short: "List the forecast models queried per data source",
	Run: func(cmd *cobra.Command, args []string) {
		sources := []model.Source{
			model.SourceHistoricalArchive,
			model.SourceForecastStandard,
			model.SourceForecastEnsemble,
		}

		for _, src := range sources {
			models := model.ModelsFor(src)
			fmt.Printf("%s (%d models, measures: %v):\n", src, len(models), model.MeasuresFor(src))
			for _, m := range models {
				fmt.Printf("- %s\n", m)
			}
			fmt.Println()
		}
	},
}

func init() {
	rootCmd.AddCommand(listModelsCmd)
}
