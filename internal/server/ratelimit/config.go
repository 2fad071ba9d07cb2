package ratelimit

import (
	"strconv"
	"strings"
	"time"
)

// Environment variables read by LoadConfig
const (
	EnvEnabled       = "RATE_LIMIT_ENABLED"
	EnvDefaultLimit  = "RATE_LIMIT_DEFAULT_LIMIT"
	EnvDefaultWindow = "RATE_LIMIT_DEFAULT_WINDOW"
	EnvGenerateLimit = "RATE_LIMIT_GENERATE_LIMIT"
	EnvWhitelist     = "RATE_LIMIT_WHITELIST"
	EnvBlacklist     = "RATE_LIMIT_BLACKLIST"
)

// Rule limits requests to one endpoint. Paths ending in "/" match by prefix.
type Rule struct {
	Path   string
	Method string
	Limit  int
	Window time.Duration
	Burst  int // defaults to Limit
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
	Rules           []Rule
}

// DefaultConfig allows 600 requests a minute per client and endpoint, with
// stricter limits on generation.
func DefaultConfig() *Config {
	return &Config{
		Enabled:         true,
		DefaultLimit:    600,
		DefaultWindow:   time.Minute,
		CleanupInterval: 5 * time.Minute,
		IdleTTL:         time.Hour,
		Whitelist:       map[string]bool{},
		Blacklist:       map[string]bool{},
		Rules:           DefaultRules(20),
	}
}

// DefaultRules limits the endpoints that run a generation to generatePerHour
// requests per hour with a burst of 3.
func DefaultRules(generatePerHour int) []Rule {
	return []Rule{
		{Path: "/generate", Method: "POST", Limit: generatePerHour, Window: time.Hour, Burst: 3},
		{Path: "/generate/stream", Method: "POST", Limit: generatePerHour, Window: time.Hour, Burst: 3},
		{Path: "/resumes/", Method: "DELETE", Limit: 60, Window: time.Minute, Burst: 10},
		{Path: "/runs/", Method: "DELETE", Limit: 60, Window: time.Minute, Burst: 10},
	}
}

// LoadConfig overlays values found through lookup on DefaultConfig.
// Unparseable values are ignored.
func LoadConfig(lookup func(string) string) *Config {
	cfg := DefaultConfig()
	if v, err := strconv.ParseBool(lookup(EnvEnabled)); err == nil {
		cfg.Enabled = v
	}
	if v, err := strconv.Atoi(lookup(EnvDefaultLimit)); err == nil && v > 0 {
		cfg.DefaultLimit = v
	}
	if v, err := time.ParseDuration(lookup(EnvDefaultWindow)); err == nil && v > 0 {
		cfg.DefaultWindow = v
	}
	if v, err := strconv.Atoi(lookup(EnvGenerateLimit)); err == nil && v > 0 {
		cfg.Rules = DefaultRules(v)
	}
	cfg.Whitelist = parseIPList(lookup(EnvWhitelist))
	cfg.Blacklist = parseIPList(lookup(EnvBlacklist))
	return cfg
}

func parseIPList(list string) map[string]bool {
	result := map[string]bool{}
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
