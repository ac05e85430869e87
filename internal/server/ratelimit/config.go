package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Endpoint pattern: exact, "*" glob, or prefix ending in "/"
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window; 0 means unlimited
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// LoadConfig loads rate limiting configuration from environment variables.
// RATE_LIMIT_EXPORT_LIMIT and RATE_LIMIT_WRITE_LIMIT scale the export and
// document-write tiers; the other tiers keep their defaults.
func LoadConfig() *Config {
	if !envOr("RATE_LIMIT_ENABLED", true, strconv.ParseBool) {
		return &Config{Enabled: false}
	}

	endpoints := DefaultEndpointConfigs()
	exportLimit := envOr("RATE_LIMIT_EXPORT_LIMIT", 0, strconv.Atoi)
	writeLimit := envOr("RATE_LIMIT_WRITE_LIMIT", 0, strconv.Atoi)
	for i := range endpoints {
		switch {
		case exportLimit > 0 && strings.HasSuffix(endpoints[i].Path, "/export"):
			endpoints[i].Limit = exportLimit
		case writeLimit > 0 && endpoints[i].Method != "GET" && !strings.HasSuffix(endpoints[i].Path, "/export"):
			endpoints[i].Limit = writeLimit
		}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    envOr("RATE_LIMIT_DEFAULT_LIMIT", 1000, strconv.Atoi),
		DefaultWindow:   envOr("RATE_LIMIT_DEFAULT_WINDOW", time.Minute, time.ParseDuration),
		CleanupInterval: envOr("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute, time.ParseDuration),
		Whitelist:       clientSet(os.Getenv("RATE_LIMIT_WHITELIST")),
		Blacklist:       clientSet(os.Getenv("RATE_LIMIT_BLACKLIST")),
		EndpointConfigs: endpoints,
	}
}

// DefaultEndpointConfigs returns the default endpoint-specific configurations.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// Tier 1: rendering a full document for download
		{Path: "/resumes/*/export", Method: "GET", Limit: 30, Window: time.Minute, Burst: 5},

		// Tier 2: writes that reach the document store
		{Path: "/resumes", Method: "POST", Limit: 20, Window: time.Minute, Burst: 5},
		{Path: "/resumes/*/session/save", Method: "POST", Limit: 60, Window: time.Minute, Burst: 10},
		{Path: "/resumes/*/template", Method: "PUT", Limit: 60, Window: time.Minute, Burst: 10},
		{Path: "/resumes/", Method: "DELETE", Limit: 20, Window: time.Minute, Burst: 5},
		{Path: "/settings", Method: "PUT", Limit: 30, Window: time.Minute, Burst: 5},

		// Tier 3: in-memory edits and reads fall through to the default limit.
		// Tier 4: health check is unlimited, see MatchEndpoint.
	}
}

// envOr parses the named variable, returning def when it is unset or malformed.
func envOr[T any](key string, def T, parse func(string) (T, error)) T {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := parse(raw)
	if err != nil {
		return def
	}
	return v
}

// clientSet parses a comma-separated list of client IDs into a set.
func clientSet(list string) map[string]bool {
	out := make(map[string]bool)
	for _, id := range strings.Split(list, ",") {
		if id = strings.TrimSpace(id); id != "" {
			out[id] = true
		}
	}
	return out
}
