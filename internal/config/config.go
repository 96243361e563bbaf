// Package config provides configuration management for go-newsfeed.
package config

import (
	"strings"
	"time"
)

var AppVersion = "-unset-" // will be set at build time

const (
	// Placeholder credentials shipped in sample configs. Fetches short-circuit while these are set.
	PlaceholderStoreURL = "YOUR_SUPABASE_URL"
	PlaceholderAnonKey  = "YOUR_SUPABASE_ANON_KEY"

	DefaultTable          = "articles"
	DefaultStoreTimeout   = 10 * time.Second
	DefaultListenPort     = 11980
	DefaultListenPortSSL  = 19443
	DefaultRateLimitRPS   = 5
	DefaultRateLimitBurst = 10

	BackendPostgREST = "postgrest"
	BackendSQLite    = "sqlite"
)

// MainConfig holds the main configuration for go-newsfeed
type MainConfig struct {
	Store    StoreConfig    `mapstructure:"store"`
	Web      WebConfig      `mapstructure:"web"`
	Log      LogConfig      `mapstructure:"log"`
	Tracing  TracingConfig  `mapstructure:"tracing"`
	Profiler ProfilerConfig `mapstructure:"profiler"`

	AppVersion string `mapstructure:"-"` // Application version, set at build time
}

// StoreConfig selects and configures the article store backend
type StoreConfig struct {
	Backend    string        `mapstructure:"backend"`     // "postgrest" or "sqlite"
	URL        string        `mapstructure:"url"`         // project URL, e.g. https://xyz.supabase.co
	AnonKey    string        `mapstructure:"anon_key"`    // public anon key
	Table      string        `mapstructure:"table"`       // table holding the articles
	SQLitePath string        `mapstructure:"sqlite_path"` // used by the sqlite backend
	Timeout    time.Duration `mapstructure:"timeout"`     // per request, 0 disables
}

// WebConfig holds web interface configuration
type WebConfig struct {
	ListenPort     int      `mapstructure:"listen_port"`
	SSL            bool     `mapstructure:"ssl"`
	CertFile       string   `mapstructure:"cert_file"`
	KeyFile        string   `mapstructure:"key_file"`
	Debug          bool     `mapstructure:"debug"`
	RateLimitRPS   float64  `mapstructure:"rate_limit_rps"` // 0 disables the limiter
	RateLimitBurst int      `mapstructure:"rate_limit_burst"`
	TrustedProxies []string `mapstructure:"trusted_proxies"`
}

// LogConfig controls the zap logger
type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json or console
	File   string `mapstructure:"file"`   // optional output file, stdout when empty
}

// TracingConfig controls the OpenTelemetry tracer provider
type TracingConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	ServiceName string `mapstructure:"service_name"`
	Environment string `mapstructure:"environment"`
}

// ProfilerConfig enables the pprof web endpoint
type ProfilerConfig struct {
	Addr string `mapstructure:"addr"` // e.g. ":51111", empty disables
}

// NewDefaultConfig returns a configuration with sensible defaults
func NewDefaultConfig() *MainConfig {
	return &MainConfig{
		AppVersion: AppVersion,
		Store: StoreConfig{
			Backend:    BackendPostgREST,
			URL:        PlaceholderStoreURL,
			AnonKey:    PlaceholderAnonKey,
			Table:      DefaultTable,
			SQLitePath: "data/articles.sq3",
			Timeout:    DefaultStoreTimeout,
		},
		Web: WebConfig{
			ListenPort:     DefaultListenPort,
			RateLimitRPS:   DefaultRateLimitRPS,
			RateLimitBurst: DefaultRateLimitBurst,
			TrustedProxies: []string{"127.0.0.1", "::1", "10.0.0.0/8", "172.16.0.0/12", "192.168.0.0/16"},
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Tracing: TracingConfig{
			ServiceName: "go-newsfeed",
			Environment: "development",
		},
	}
}

// IsPlaceholder reports whether the remote store credentials are unset or still the sample values.
func (s StoreConfig) IsPlaceholder() bool {
	url := strings.TrimSpace(s.URL)
	key := strings.TrimSpace(s.AnonKey)
	return url == "" || key == "" || url == PlaceholderStoreURL || key == PlaceholderAnonKey
}
