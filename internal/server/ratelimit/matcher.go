package ratelimit

import (
	"path"
	"strings"
)

// MatchEndpoint matches a request path and method to an endpoint configuration.
// Returns the matching EndpointConfig or nil if no match is found.
//
// Patterns are tried in three passes: exact paths, then glob patterns
// containing "*" (path.Match syntax, e.g. "/resumes/*/export"), then
// prefixes ending in "/".
func MatchEndpoint(reqPath string, method string, configs []EndpointConfig) *EndpointConfig {
	// Health checks are never limited.
	if reqPath == "/health" && method == "GET" {
		return &EndpointConfig{Path: "/health", Method: "GET"}
	}

	for i := range configs {
		config := &configs[i]
		if config.Path == reqPath && config.Method == method {
			return config
		}
	}

	for i := range configs {
		config := &configs[i]
		if config.Method != method || !strings.Contains(config.Path, "*") {
			continue
		}
		if ok, err := path.Match(config.Path, reqPath); err == nil && ok {
			return config
		}
	}

	for i := range configs {
		config := &configs[i]
		if config.Method == method && strings.HasSuffix(config.Path, "/") {
			if strings.HasPrefix(reqPath, config.Path) {
				return config
			}
		}
	}

	return nil
}
