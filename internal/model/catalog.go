/*
PURPOSE:
  Catalogs of forecast models and daily summable precipitation measures
  per Open-Meteo data source. These lists are the request vocabulary: they
  are comma-joined into the `models` and `daily` query parameters.

REQUIREMENTS:
  User-specified:
  - Query every model a source offers, not just best_match.

  Implementation-discovered:
  - Response keys flatten measure and model together, so decoding needs the
    union of all model names sorted longest-first (some names are suffixes
    of others, e.g. icon_seamless vs meteoswiss_icon_seamless).

ARCHITECTURE INTEGRATION:
  - Used by: internal/engine (requests + decoding), internal/cli (list-models)

ERROR HANDLING:
  - None (static data).

IMPLEMENTATION RULES:
  - Keep the lists in sync with the Open-Meteo API docs.
  - AllModels must stay sorted by length descending; decoding depends on it.

USAGE:
  models := model.ModelsFor(model.SourceForecastStandard)

RELATED FILES:
  - internal/engine/decode.go

MAINTENANCE:
  - Update when Open-Meteo adds or retires models.
*/

package model

import (
	"sort"
	"sync"
)

var archiveModels = []string{
	"best_match",
	"ecmwf_ifs",
	"ecmwf_ifs_analysis_long_window",
	"era5_seamless",
	"era5",
	"era5_land",
	"era5_ensemble",
	"cerra",
}

var archiveMeasures = []string{
	"rain_sum",
	"snowfall_sum",
	"precipitation_sum",
	"precipitation_hours",
}

var forecastModels = []string{
	"best_match",
	"ecmwf_ifs",
	"ecmwf_ifs025",
	"ecmwf_aifs025_single",
	"cma_grapes_global",
	"bom_access_global",
	"icon_seamless",
	"icon_global",
	"icon_eu",
	"icon_d2",
	"metno_seamless",
	"metno_nordic",
	"dmi_harmonie_arome_europe",
	"dmi_seamless",
	"knmi_harmonie_arome_netherlands",
	"knmi_harmonie_arome_europe",
	"knmi_seamless",
	"gem_hrdps_west",
	"gem_hrdps_continental",
	"gem_regional",
	"gem_global",
	"gem_seamless",
	"ncep_hgefs025_ensemble_mean",
	"ncep_aigfs025",
	"gfs_graphcast025",
	"ncep_nam_conus",
	"ncep_nbm_conus",
	"gfs_hrrr",
	"gfs_global",
	"gfs_seamless",
	"jma_seamless",
	"jma_msm",
	"jma_gsm",
	"meteofrance_seamless",
	"meteofrance_arpege_world",
	"meteofrance_arpege_europe",
	"meteofrance_arome_france",
	"meteofrance_arome_france_hd",
	"ukmo_seamless",
	"ukmo_global_deterministic_10km",
	"ukmo_uk_deterministic_2km",
	"meteoswiss_icon_ch2",
	"meteoswiss_icon_ch1",
	"meteoswiss_icon_seamless",
	"italia_meteo_arpae_icon_2i",
	"kma_gdps",
	"kma_ldps",
	"kma_seamless",
}

var forecastMeasures = []string{
	"rain_sum",
	"showers_sum",
	"snowfall_sum",
	"precipitation_sum",
	"precipitation_hours",
}

var ensembleModels = []string{
	"icon_seamless_eps",
	"icon_global_eps",
	"icon_eu_eps",
	"icon_d2_eps",
	"meteoswiss_icon_ch1_ensemble",
	"meteoswiss_icon_ch2_ensemble",
	"ncep_aigefs025",
	"ncep_gefs025",
	"ncep_gefs05",
	"ncep_gefs_seamless",
	"bom_access_global_ensemble",
	"gem_global_ensemble",
	"ecmwf_ifs025_ensemble",
	"ecmwf_aifs025_ensemble",
	"ukmo_global_ensemble_20km",
	"ukmo_uk_ensemble_2km",
}

var ensembleMeasures = []string{
	"rain_sum",
	"snowfall_sum",
	"precipitation_sum",
	"precipitation_hours",
}

// ModelsFor returns the forecast model catalog for a data source.
func ModelsFor(s Source) []string {
	switch s {
	case SourceHistoricalArchive:
		return archiveModels
	case SourceForecastEnsemble:
		return ensembleModels
	default:
		return forecastModels
	}
}

// MeasuresFor returns the daily summable precipitation measures for a source.
func MeasuresFor(s Source) []string {
	switch s {
	case SourceHistoricalArchive:
		return archiveMeasures
	case SourceForecastEnsemble:
		return ensembleMeasures
	default:
		return forecastMeasures
	}
}

// AllModels returns every distinct model name across all sources, sorted by
// length descending. Longest-first order is critical: response keys are
// matched by suffix, and several model names are suffixes of longer ones.
var AllModels = sync.OnceValue(func() []string {
	seen := make(map[string]struct{})
	for _, set := range [][]string{archiveModels, forecastModels, ensembleModels} {
		for _, m := range set {
			seen[m] = struct{}{}
		}
	}

	all := make([]string, 0, len(seen))
	for m := range seen {
		all = append(all, m)
	}
	sort.Slice(all, func(i, j int) bool {
		if len(all[i]) != len(all[j]) {
			return len(all[i]) > len(all[j])
		}
		return all[i] < all[j]
	})
	return all
})
