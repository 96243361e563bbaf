package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. NEWSFEED_STORE_URL.
const EnvPrefix = "NEWSFEED"

// LoadConfig reads an optional YAML file at path (a file or a directory holding config.yaml)
// on top of NewDefaultConfig, then applies NEWSFEED_* environment overrides.
func LoadConfig(path string) (*MainConfig, error) {
	def := NewDefaultConfig()
	v := viper.New()

	v.SetDefault("store.backend", def.Store.Backend)
	v.SetDefault("store.url", def.Store.URL)
	v.SetDefault("store.anon_key", def.Store.AnonKey)
	v.SetDefault("store.table", def.Store.Table)
	v.SetDefault("store.sqlite_path", def.Store.SQLitePath)
	v.SetDefault("store.timeout", def.Store.Timeout)

	v.SetDefault("web.listen_port", def.Web.ListenPort)
	v.SetDefault("web.ssl", def.Web.SSL)
	v.SetDefault("web.cert_file", def.Web.CertFile)
	v.SetDefault("web.key_file", def.Web.KeyFile)
	v.SetDefault("web.debug", def.Web.Debug)
	v.SetDefault("web.rate_limit_rps", def.Web.RateLimitRPS)
	v.SetDefault("web.rate_limit_burst", def.Web.RateLimitBurst)
	v.SetDefault("web.trusted_proxies", def.Web.TrustedProxies)

	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.format", def.Log.Format)
	v.SetDefault("log.file", def.Log.File)

	v.SetDefault("tracing.enabled", def.Tracing.Enabled)
	v.SetDefault("tracing.service_name", def.Tracing.ServiceName)
	v.SetDefault("tracing.environment", def.Tracing.Environment)

	v.SetDefault("profiler.addr", def.Profiler.Addr)

	if path != "" {
		fi, err := os.Stat(path)
		switch {
		case err != nil:
			return nil, fmt.Errorf("config: stat %s: %w", path, err)
		case fi.IsDir():
			v.AddConfigPath(path)
			v.SetConfigName("config")
			v.SetConfigType("yaml")
		default:
			v.SetConfigFile(path)
		}
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read: %w", err)
		}
	}

	cfg := &MainConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	cfg.AppVersion = AppVersion
	if cfg.Store.Table == "" {
		cfg.Store.Table = DefaultTable
	}
	return cfg, nil
}

// Validate checks the settings the servers cannot start without.
func (c *MainConfig) Validate() error {
	if c.Web.ListenPort < 1024 || c.Web.ListenPort > 65535 {
		return fmt.Errorf("config: invalid port number: %d (must be between 1024 and 65535)", c.Web.ListenPort)
	}
	if c.Web.SSL && (c.Web.CertFile == "" || c.Web.KeyFile == "") {
		return errors.New("config: SSL enabled but cert_file or key_file not specified")
	}
	switch c.Store.Backend {
	case BackendPostgREST:
	case BackendSQLite:
		if c.Store.SQLitePath == "" {
			return errors.New("config: sqlite backend selected but sqlite_path is empty")
		}
	default:
		return fmt.Errorf("config: unknown store backend %q", c.Store.Backend)
	}
	if c.Store.Timeout < 0 {
		return fmt.Errorf("config: negative store timeout %s", c.Store.Timeout)
	}
	return nil
}
