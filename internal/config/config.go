package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Upstream  UpstreamConfig  `yaml:"upstream"`
	Cache     CacheConfig     `yaml:"cache"`
	RateLimit RateLimitConfig `yaml:"ratelimit"`
	Redis     RedisConfig     `yaml:"redis"`
	CORS      CORSConfig      `yaml:"cors"`
	Log       LogConfig       `yaml:"log"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"5000"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"120s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// UpstreamConfig describes the dictionary site we proxy.
type UpstreamConfig struct {
	BaseURL     string        `yaml:"base_url"     env:"UPSTREAM_BASE_URL"     env-default:"https://www.britannica.com/dictionary"`
	UserAgent   string        `yaml:"user_agent"   env:"UPSTREAM_USER_AGENT"`
	Timeout     time.Duration `yaml:"timeout"      env:"UPSTREAM_TIMEOUT"      env-default:"10s"`
	DialTimeout time.Duration `yaml:"dial_timeout" env:"UPSTREAM_DIAL_TIMEOUT" env-default:"5s"`
	MaxBodySize int64         `yaml:"max_body_size" env:"UPSTREAM_MAX_BODY_SIZE" env-default:"5242880"`
}

// CacheConfig selects the response cache backend.
type CacheConfig struct {
	Backend    string        `yaml:"backend"     env:"CACHE_BACKEND"     env-default:"memory"`
	TTL        time.Duration `yaml:"ttl"         env:"CACHE_TTL"         env-default:"5m"`
	MaxEntries int           `yaml:"max_entries" env:"CACHE_MAX_ENTRIES" env-default:"100000"`
}

// RateLimitConfig holds per-client fixed-window limits.
type RateLimitConfig struct {
	Enabled         bool          `yaml:"enabled"          env:"RATELIMIT_ENABLED"          env-default:"true"`
	Backend         string        `yaml:"backend"          env:"RATELIMIT_BACKEND"          env-default:"memory"`
	Rules           string        `yaml:"rules"            env:"RATELIMIT_RULES"            env-default:"100/day,20/hour"`
	CleanupInterval time.Duration `yaml:"cleanup_interval" env:"RATELIMIT_CLEANUP_INTERVAL" env-default:"10m"`
}

// RedisConfig is used by the redis cache and limiter backends.
type RedisConfig struct {
	Addr     string `yaml:"addr"     env:"REDIS_ADDR"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db"       env:"REDIS_DB"       env-default:"0"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-default:"*"`
	AllowedMethods string `yaml:"allowed_methods" env:"CORS_ALLOWED_METHODS" env-default:"GET,HEAD,OPTIONS"`
	AllowedHeaders string `yaml:"allowed_headers" env:"CORS_ALLOWED_HEADERS" env-default:"Content-Type"`
	MaxAge         int    `yaml:"max_age"         env:"CORS_MAX_AGE"         env-default:"86400"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// UsesRedis reports whether any component needs a Redis connection.
func (c *Config) UsesRedis() bool {
	return c.Cache.Backend == BackendRedis || (c.RateLimit.Enabled && c.RateLimit.Backend == BackendRedis)
}
