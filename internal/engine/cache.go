/*
PURPOSE:
  On-disk cache for API response bodies.
  Open-Meteo responses for a fixed URL barely change within the hour, and the
  full-catalog queries are heavy; caching makes reruns instant and polite.

REQUIREMENTS:
  User-specified:
  - Repeat invocations within the TTL must not hit the network.

  Implementation-discovered:
  - Cache filenames need a readable prefix (for humans poking the dir) plus
    a hash of the full URL (for uniqueness after truncation).

ARCHITECTURE INTEGRATION:
  - Used by: internal/engine/client.go

ERROR HANDLING:
  - Read errors are treated as cache misses; write errors surface to the
    caller (a full disk should not be silent).

IMPLEMENTATION RULES:
  - Freshness = file mtime within TTL.
  - Keys: sanitized host+path+query truncated to 100 chars, then the first
    16 hex chars of the URL's SHA-256.

USAGE:
  c := newResponseCache(dir, time.Hour)
  if body, ok := c.get(url); ok { ... }
  c.put(url, body)

RELATED FILES:
  - internal/engine/client.go

MAINTENANCE:
  - Consider a `cache clear` subcommand if stale entries become a problem.
*/

package engine

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/powerweather/precip-analyzer/internal/output"
)

type responseCache struct {
	dir string
	ttl time.Duration
}

// newResponseCache prepares a cache rooted at dir. An empty dir resolves to
// the user cache directory. A non-positive ttl disables the cache.
func newResponseCache(dir string, ttl time.Duration) (*responseCache, error) {
	if ttl <= 0 {
		return nil, nil
	}

	if dir == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			return nil, fmt.Errorf("could not determine cache directory: %w", err)
		}
		dir = filepath.Join(base, "precip-analyzer")
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory %s: %w", dir, err)
	}

	return &responseCache{dir: dir, ttl: ttl}, nil
}

// get returns the cached body for rawURL if present and fresh.
func (c *responseCache) get(rawURL string) ([]byte, bool) {
	path := c.path(rawURL)

	info, err := os.Stat(path)
	if err != nil {
		return nil, false
	}
	if time.Since(info.ModTime()) >= c.ttl {
		output.Logger.Debug("Cache entry expired", "file", path)
		return nil, false
	}

	body, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}

	output.Logger.Debug("Using cached response", "url", rawURL)
	return body, true
}

// put stores a response body for rawURL.
func (c *responseCache) put(rawURL string, body []byte) error {
	return os.WriteFile(c.path(rawURL), body, 0644)
}

// path builds the cache file name for a URL.
func (c *responseCache) path(rawURL string) string {
	base := rawURL
	if parsed, err := url.Parse(rawURL); err == nil {
		base = parsed.Host + "_" + strings.ReplaceAll(parsed.Path, "/", "_")
		if parsed.RawQuery != "" {
			base += "_" + parsed.RawQuery
		}
	}

	base = sanitizeFilename(base)
	if len(base) > 100 {
		base = base[:100]
	}

	sum := sha256.Sum256([]byte(rawURL))
	hash := hex.EncodeToString(sum[:])[:16]

	return filepath.Join(c.dir, base+"_"+hash+".json")
}

// sanitizeFilename keeps a conservative character set so names survive any
// filesystem.
func sanitizeFilename(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-' || r == '_' || r == '.':
			return r
		default:
			return '_'
		}
	}, s)
}
