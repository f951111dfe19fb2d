package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Endpoint path; a trailing "/" matches by prefix
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window; 0 means unlimited
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	IdleTTL         time.Duration
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// LoadConfig loads rate limiting configuration from SCORER_RATE_LIMIT_* environment variables.
func LoadConfig() *Config {
	if !getEnvBool("SCORER_RATE_LIMIT_ENABLED", true) {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    getEnvInt("SCORER_RATE_LIMIT_DEFAULT_LIMIT", 120),
		DefaultWindow:   getEnvDuration("SCORER_RATE_LIMIT_DEFAULT_WINDOW", time.Minute),
		CleanupInterval: getEnvDuration("SCORER_RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		IdleTTL:         time.Hour,
		Whitelist:       parseIPList(os.Getenv("SCORER_RATE_LIMIT_WHITELIST")),
		Blacklist:       parseIPList(os.Getenv("SCORER_RATE_LIMIT_BLACKLIST")),
		EndpointConfigs: DefaultEndpointConfigs(getEnvInt("SCORER_RATE_LIMIT_SCORE_PER_MINUTE", 10)),
	}
}

// DefaultEndpointConfigs limits scoring, which costs two outbound fetches per
// request, to scorePerMinute per client. Health checks are unlimited.
func DefaultEndpointConfigs(scorePerMinute int) []EndpointConfig {
	return []EndpointConfig{
		{Path: "/score", Method: "POST", Limit: scorePerMinute, Window: time.Minute, Burst: max(1, scorePerMinute/4)},
		{Path: "/health", Method: "GET", Limit: 0},
	}
}

// MatchEndpoint returns the configuration for path and method, preferring
// exact matches over prefix matches. It returns nil when nothing matches.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	for i := range configs {
		if configs[i].Path == path && configs[i].Method == method {
			return &configs[i]
		}
	}
	for i := range configs {
		c := &configs[i]
		if c.Method == method && strings.HasSuffix(c.Path, "/") && strings.HasPrefix(path, c.Path) {
			return c
		}
	}
	return nil
}

func getEnvInt(key string, defaultValue int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if v, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return v
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return v
	}
	return defaultValue
}

// parseIPList parses a comma-separated list of IP addresses into a set.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
