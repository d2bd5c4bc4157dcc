/*
PURPOSE:
  Core client for the Open-Meteo APIs.
  Handles geocoding, daily precipitation fetches, retries, and caching.

REQUIREMENTS:
  User-specified:
  - Resolve a city name to coordinates.
  - Fetch daily precipitation for every catalog model of a source.

  Implementation-discovered:
  - Needs http.Client with a timeout.
  - Full-catalog queries are large; responses are cached on disk (the APIs
    are free and rate-limited, reruns should be instant).

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine/runner.go, internal/cli
  - Uses: internal/config, internal/model, internal/output

ERROR HANDLING:
  - Retry loop with configurable attempts and delay, matching the pattern
    used for every outbound request.
  - Cache setup failure degrades to uncached operation with a warning.

IMPLEMENTATION RULES:
  - Use net/http.
  - Enforce timeouts.
  - All endpoints come from config so tests can point at httptest servers.

USAGE:
  c := engine.New(cfg)
  loc, err := c.Geocode(ctx, "Seattle, WA")
  series, err := c.FetchDaily(ctx, model.SourceHistoricalArchive, loc, start, end)

RELATED FILES:
  - internal/engine/decode.go
  - internal/engine/cache.go

MAINTENANCE:
  - Update endpoints if Open-Meteo moves to v2.
*/

package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/powerweather/precip-analyzer/internal/config"
	"github.com/powerweather/precip-analyzer/internal/model"
	"github.com/powerweather/precip-analyzer/internal/output"
)

const dateFormat = "2006-01-02"

// Client handles Open-Meteo interactions.
type Client struct {
	Config *config.Config
	HTTP   *http.Client

	cache *responseCache
}

// New creates a new Client.
func New(cfg *config.Config) *Client {
	cache, err := newResponseCache(cfg.CacheDir, cfg.CacheTTL)
	if err != nil {
		output.Logger.Warn("Response cache disabled", "error", err)
		cache = nil
	}

	return &Client{
		Config: cfg,
		HTTP:   &http.Client{Timeout: cfg.RequestTimeout},
		cache:  cache,
	}
}

// Geocode resolves a city name to a Location via the geocoding API.
// The display name is "<city>, <admin1|country|Unknown>".
func (c *Client) Geocode(ctx context.Context, city string) (model.Location, error) {
	reqURL := fmt.Sprintf("%s?name=%s&count=1&language=en&format=json",
		c.Config.Hosts.Geocoding, url.QueryEscape(city))

	body, err := c.get(ctx, reqURL)
	if err != nil {
		return model.Location{}, fmt.Errorf("failed to fetch geocoding data: %w", err)
	}

	var payload struct {
		Results []struct {
			Name      string  `json:"name"`
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
			Admin1    string  `json:"admin1"`
			Country   string  `json:"country"`
		} `json:"results"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return model.Location{}, fmt.Errorf("failed to parse geocoding response: %w", err)
	}
	if len(payload.Results) == 0 {
		return model.Location{}, fmt.Errorf("city %q not found", city)
	}

	r := payload.Results[0]
	region := r.Admin1
	if region == "" {
		region = r.Country
	}
	if region == "" {
		region = "Unknown"
	}

	return model.Location{
		Name: fmt.Sprintf("%s, %s", r.Name, region),
		Lat:  r.Latitude,
		Lon:  r.Longitude,
	}, nil
}

// FetchDaily fetches all summable precipitation measures for every catalog
// model of the given source over [start, end].
func (c *Client) FetchDaily(ctx context.Context, src model.Source, loc model.Location, start, end time.Time) (model.DailySeries, error) {
	models := filterModels(model.ModelsFor(src), c.Config.Exclude)
	if len(models) == 0 {
		return model.DailySeries{}, fmt.Errorf("every %s model is excluded by config", src)
	}

	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(loc.Lat, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(loc.Lon, 'f', -1, 64))
	q.Set("start_date", start.Format(dateFormat))
	q.Set("end_date", end.Format(dateFormat))
	q.Set("daily", strings.Join(model.MeasuresFor(src), ","))
	q.Set("precipitation_unit", c.Config.Unit)
	q.Set("timezone", c.Config.Timezone)
	q.Set("models", strings.Join(models, ","))

	reqURL := c.hostFor(src) + "?" + q.Encode()

	body, err := c.get(ctx, reqURL)
	if err != nil {
		return model.DailySeries{}, fmt.Errorf("failed to fetch %s data: %w", src, err)
	}

	return decodeDailySeries(body)
}

func (c *Client) hostFor(src model.Source) string {
	switch src {
	case model.SourceHistoricalArchive:
		return c.Config.Hosts.Archive
	case model.SourceForecastEnsemble:
		return c.Config.Hosts.Ensemble
	default:
		return c.Config.Hosts.Forecast
	}
}

// get performs a cached GET with the standard retry loop.
func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	if c.cache != nil {
		if body, ok := c.cache.get(rawURL); ok {
			return body, nil
		}
	}

	output.Logger.Debug("Fetching URL from API", "url", rawURL)

	attempts := c.Config.MaxRetries
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for i := 0; i < attempts; i++ {
		if i > 0 {
			time.Sleep(c.Config.RetryDelay)
			output.Logger.Info("Retrying request...", "attempt", i+1)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return nil, err
		}

		resp, err := c.HTTP.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("network/connection error: %w", err)
			continue
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("failed to read response body: %w", err)
			continue
		}

		if resp.StatusCode != http.StatusOK {
			lastErr = fmt.Errorf("bad status %s: %s", resp.Status, strings.TrimSpace(string(body)))
			continue
		}

		if c.cache != nil {
			if err := c.cache.put(rawURL, body); err != nil {
				output.Logger.Warn("Failed to write response cache", "error", err)
			}
		}

		return body, nil
	}

	return nil, lastErr
}

// filterModels drops catalog entries whose name contains any exclusion
// substring (case-insensitive).
func filterModels(models []string, exclude []string) []string {
	if len(exclude) == 0 {
		return models
	}

	var kept []string
	for _, m := range models {
		skip := false
		for _, ex := range exclude {
			if strings.Contains(strings.ToLower(m), strings.ToLower(ex)) {
				skip = true
				break
			}
		}
		if !skip {
			kept = append(kept, m)
		}
	}
	return kept
}
