package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/muzilix/dbapi-docs/pkg/observability"
)

// Config holds process configuration for serve mode
type Config struct {
	// Server configuration
	Server ServerConfig

	// Observability configuration
	Observability ObservabilityConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	// RenderCacheSize bounds the rendered endpoint card cache
	RenderCacheSize int
	RenderCacheTTL  time.Duration

	// CORSOrigins may read the catalog from the browser. Empty disables CORS.
	CORSOrigins []string
}

// Addr is the listen address
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, s.Port)
}

// ObservabilityConfig holds observability settings
type ObservabilityConfig struct {
	LogLevel       observability.LogLevel
	MetricsEnabled bool
	Tracing        observability.TracingConfig
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Server:        loadServerConfig(),
		Observability: loadObservabilityConfig(),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadServerConfig loads server configuration from environment
func loadServerConfig() ServerConfig {
	return ServerConfig{
		Host:            getEnv("DOCS_HOST", "0.0.0.0"),
		Port:            getEnv("DOCS_PORT", "8080"),
		ReadTimeout:     getEnvDuration("DOCS_READ_TIMEOUT", 15*time.Second),
		WriteTimeout:    getEnvDuration("DOCS_WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:     getEnvDuration("DOCS_IDLE_TIMEOUT", 60*time.Second),
		ShutdownTimeout: getEnvDuration("DOCS_SHUTDOWN_TIMEOUT", 30*time.Second),
		RenderCacheSize: getEnvInt("DOCS_RENDER_CACHE_SIZE", 256),
		RenderCacheTTL:  getEnvDuration("DOCS_RENDER_CACHE_TTL", 10*time.Minute),
		CORSOrigins:     getEnvList("DOCS_CORS_ORIGINS"),
	}
}

// loadObservabilityConfig loads observability configuration from environment
func loadObservabilityConfig() ObservabilityConfig {
	return ObservabilityConfig{
		LogLevel:       observability.ParseLogLevel(getEnv("DOCS_LOG_LEVEL", "info")),
		MetricsEnabled: getEnvBool("DOCS_METRICS_ENABLED", true),
		Tracing: observability.TracingConfig{
			Enabled:        getEnvBool("DOCS_OTEL_ENABLED", false),
			Endpoint:       getEnv("DOCS_OTEL_ENDPOINT", "localhost:4317"),
			ServiceName:    getEnv("DOCS_OTEL_SERVICE_NAME", "docsgen"),
			ServiceVersion: getEnv("DOCS_OTEL_SERVICE_VERSION", "dev"),
			Insecure:       getEnvBool("DOCS_OTEL_INSECURE", true),
		},
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}
	if port, err := strconv.Atoi(c.Server.Port); err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("invalid server port: %s", c.Server.Port)
	}
	if c.Server.RenderCacheSize <= 0 {
		return fmt.Errorf("render cache size must be positive")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown timeout must be positive")
	}
	if t := c.Observability.Tracing; t.Enabled {
		if t.Endpoint == "" {
			return fmt.Errorf("OpenTelemetry endpoint is required when tracing is enabled")
		}
		if t.ServiceName == "" {
			return fmt.Errorf("OpenTelemetry service name is required when tracing is enabled")
		}
	}
	return nil
}

// getEnv returns an environment variable value or a default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvList splits a comma-separated environment variable, dropping blanks
func getEnvList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// getEnvBool returns a boolean environment variable or a default
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return strings.ToLower(value) == "true" || value == "1"
	}
	return defaultValue
}

// getEnvInt returns an integer environment variable or a default
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvDuration returns a duration environment variable or a default
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
