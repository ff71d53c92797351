package config

import (
	"fmt"
	"net/url"
	"strings"

	"dictproxy/internal/ratelimit"
)

const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Validate checks the loaded configuration and normalizes backend names.
// Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}

	u, err := url.Parse(c.Upstream.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("upstream.base_url must be an absolute URL (got %q)", c.Upstream.BaseURL)
	}
	if c.Upstream.Timeout <= 0 {
		return fmt.Errorf("upstream.timeout must be > 0 (got %s)", c.Upstream.Timeout)
	}

	c.Cache.Backend = strings.ToLower(strings.TrimSpace(c.Cache.Backend))
	if err := checkBackend(c.Cache.Backend); err != nil {
		return fmt.Errorf("cache.backend: %w", err)
	}
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("cache.ttl must be > 0 (got %s)", c.Cache.TTL)
	}

	c.RateLimit.Backend = strings.ToLower(strings.TrimSpace(c.RateLimit.Backend))
	if c.RateLimit.Enabled {
		if err := checkBackend(c.RateLimit.Backend); err != nil {
			return fmt.Errorf("ratelimit.backend: %w", err)
		}
		if _, err := ratelimit.ParseRules(c.RateLimit.Rules); err != nil {
			return fmt.Errorf("ratelimit.rules: %w", err)
		}
	}

	if c.UsesRedis() && c.Redis.Addr == "" {
		return fmt.Errorf("redis.addr is required when a redis backend is selected")
	}

	switch strings.ToLower(c.Log.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("log.format must be json or console (got %q)", c.Log.Format)
	}

	return nil
}

func checkBackend(name string) error {
	switch name {
	case BackendMemory, BackendRedis:
		return nil
	}
	return fmt.Errorf("unknown backend %q (want %s or %s)", name, BackendMemory, BackendRedis)
}
