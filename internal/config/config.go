package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Environment string `toml:"environment"`
	Host        string `toml:"host"`
	Port        int    `toml:"port"`
	// BaseURL is the public address of the site, used for share and embed links
	BaseURL string `toml:"base_url"`

	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`

	// redis
	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`

	// postgres
	PostgresHost   string `toml:"postgres_host"`
	PostgresPort   string `toml:"postgres_port"`
	PostgresDBName string `toml:"postgres_db_name"`
	PostgresUser   string `toml:"postgres_user"`

	// prometheus
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`

	// http
	AllowedOrigins      []string `toml:"allowed_origins"`
	RateLimitPerMin     int      `toml:"rate_limit_per_min"`
	ShareTTLHours       int      `toml:"share_ttl_hours"`
	ShareCacheSizeMB    int      `toml:"share_cache_size_mb"`
	TimerFrameMillis    int      `toml:"timer_frame_millis"`
	MaxTimerSessions    int      `toml:"max_timer_sessions"`
	IpInfoCacheTTLHours int      `toml:"ipinfo_cache_ttl_hours"`
}

func (c *Config) ShareTTL() time.Duration {
	return time.Duration(c.ShareTTLHours) * time.Hour
}

func (c *Config) TimerFrameInterval() time.Duration {
	return time.Duration(c.TimerFrameMillis) * time.Millisecond
}

func (c *Config) IpInfoCacheTTL() time.Duration {
	return time.Duration(c.IpInfoCacheTTLHours) * time.Hour
}

// applyDefaults fills the values a minimal config file may leave out
func (c *Config) applyDefaults() {
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.Port == 0 {
		c.Port = 9000
	}
	if c.BaseURL == "" {
		c.BaseURL = fmt.Sprintf("http://%s:%d", c.Host, c.Port)
	}
	c.BaseURL = strings.TrimSuffix(c.BaseURL, "/")
	if c.RateLimitPerMin == 0 {
		c.RateLimitPerMin = 120
	}
	if c.ShareTTLHours == 0 {
		c.ShareTTLHours = 30 * 24
	}
	if c.ShareCacheSizeMB == 0 {
		c.ShareCacheSizeMB = 20
	}
	if c.TimerFrameMillis == 0 {
		c.TimerFrameMillis = 100
	}
	if c.MaxTimerSessions == 0 {
		c.MaxTimerSessions = 500
	}
	if c.IpInfoCacheTTLHours == 0 {
		c.IpInfoCacheTTLHours = 7 * 24
	}
	if c.PrometheusMetricsHost == "" {
		c.PrometheusMetricsHost = "localhost"
	}
	if c.PrometheusMetricsPort == "" {
		c.PrometheusMetricsPort = "2112"
	}
}

type Toml struct {
	Development *Config
	Production  *Config
	DockerDev   *Config `toml:"dockerdev"`
}

func (t *Toml) Get(env string) (*Config, error) {
	var cfg *Config
	switch strings.ToLower(env) {
	case "dev", "development":
		cfg = t.Development
	case "prod", "production":
		cfg = t.Production
	case "ddev", "dockerdev":
		cfg = t.DockerDev
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
	if cfg == nil {
		return nil, fmt.Errorf("config for env [%s] not found", env)
	}
	if cfg.Environment == "" {
		cfg.Environment = strings.ToLower(env)
	}
	cfg.applyDefaults()
	return cfg, nil
}

func Load(env, path string) (*Config, error) {
	var cfgToml Toml
	if _, err := toml.DecodeFile(path, &cfgToml); err != nil {
		return nil, fmt.Errorf("decode toml config [%s]: %w", path, err)
	}
	return cfgToml.Get(env)
}

// Parse reads the config from raw TOML content
func Parse(env, content string) (*Config, error) {
	var cfgToml Toml
	if _, err := toml.Decode(content, &cfgToml); err != nil {
		return nil, fmt.Errorf("decode toml config: %w", err)
	}
	return cfgToml.Get(env)
}
