// internal/common/config/config.go
package config

import (
	"fmt"
	"time"
)

// DefaultBaseURL is used when neither the config file nor PORTFOLIO_API_URL sets one.
const DefaultBaseURL = "https://berkay-portfolio.duckdns.org/api"

// DefaultLoginRoute is where a 401 sends the user.
const DefaultLoginRoute = "/admin/login"

// Config is the main application configuration struct.
type Config struct {
	App           AppConfig           `mapstructure:"app"`
	API           APIConfig           `mapstructure:"api"`
	Session       SessionConfig       `mapstructure:"session"`
	Logging       LoggingConfig       `mapstructure:"logging"`
	Metrics       MetricsConfig       `mapstructure:"metrics"`
	Observability ObservabilityConfig `mapstructure:"observability"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// APIConfig describes the portfolio backend.
type APIConfig struct {
	BaseURL    string `mapstructure:"base_url"`
	Timeout    int    `mapstructure:"timeout"` // milliseconds
	LoginRoute string `mapstructure:"login_route"`
	UserAgent  string `mapstructure:"user_agent"`
}

// TimeoutDuration returns the request timeout.
func (a APIConfig) TimeoutDuration() time.Duration {
	return GetDuration(a.Timeout)
}

// SessionConfig selects where the auth token and username are persisted.
type SessionConfig struct {
	// Backend is one of "file", "redis" or "memory".
	Backend string      `mapstructure:"backend"`
	File    FileConfig  `mapstructure:"file"`
	Redis   RedisConfig `mapstructure:"redis"`
}

type FileConfig struct {
	Path string `mapstructure:"path"`
}

type RedisConfig struct {
	Address   string `mapstructure:"address"`
	Password  string `mapstructure:"password"`
	DB        int    `mapstructure:"db"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

// Validate checks the selected backend has what it needs.
func (s SessionConfig) Validate() error {
	switch s.Backend {
	case "memory":
		return nil
	case "file":
		if s.File.Path == "" {
			return fmt.Errorf("session.file.path is required for the file backend")
		}
		return nil
	case "redis":
		if s.Redis.Address == "" {
			return fmt.Errorf("session.redis.address is required for the redis backend")
		}
		return nil
	default:
		return fmt.Errorf("unknown session backend %q", s.Backend)
	}
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// MetricsConfig controls the optional Prometheus listener.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Address string `mapstructure:"address"`
}

// ObservabilityConfig controls tracing export.
type ObservabilityConfig struct {
	ServiceName    string `mapstructure:"service_name"`
	JaegerEndpoint string `mapstructure:"jaeger_endpoint"`
}
