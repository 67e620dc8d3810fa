package config

import (
	"fmt"
	"os"
	"time"
	_ "time/tzdata" // DISPLAY_TIMEZONE must resolve in minimal images

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/robfig/cron/v3"
)

// Config holds all application configuration
type Config struct {
	// ESPN site API
	ESPNBaseURL       string        `envconfig:"ESPN_BASE_URL" default:"https://site.api.espn.com/apis/site/v2/sports/football/nfl"`
	ESPNTimeout       time.Duration `envconfig:"ESPN_TIMEOUT" default:"15s"`
	ESPNUserAgent     string        `envconfig:"ESPN_USER_AGENT" default:"nfl-dashboard/1.0"`
	ESPNMaxConcurrent int           `envconfig:"ESPN_MAX_CONCURRENT" default:"8"`

	// Application
	AppEnv   string `envconfig:"APP_ENV" default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// HTTP API
	HTTPPort        int      `envconfig:"HTTP_PORT" default:"8080"`
	CORSOrigins     []string `envconfig:"CORS_ORIGINS" default:"*"`
	DisplayTimezone string   `envconfig:"DISPLAY_TIMEZONE" default:"Local"`

	// Monitoring
	EnableMetrics bool `envconfig:"ENABLE_METRICS" default:"true"`
	MetricsPort   int  `envconfig:"METRICS_PORT" default:"9090"`

	// Redis snapshot stream
	RedisEnabled   bool   `envconfig:"REDIS_ENABLED" default:"false"`
	RedisHost      string `envconfig:"REDIS_HOST" default:"localhost"`
	RedisPort      int    `envconfig:"REDIS_PORT" default:"6379"`
	RedisPassword  string `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB        int    `envconfig:"REDIS_DB" default:"0"`
	SnapshotStream string `envconfig:"SNAPSHOT_STREAM" default:"nfl.schedule.snapshots"`

	// Scheduler
	EnableScheduler bool   `envconfig:"ENABLE_SCHEDULER" default:"false"`
	SnapshotCron    string `envconfig:"SNAPSHOT_CRON" default:"*/15 * * * *"`
}

// Load loads configuration from environment variables
// It first attempts to load from .env file if in development mode
func Load() (*Config, error) {
	// Try to load .env file (ignore error if doesn't exist)
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.ESPNBaseURL == "" {
		return fmt.Errorf("ESPN_BASE_URL is required")
	}

	if c.ESPNTimeout <= 0 {
		return fmt.Errorf("ESPN_TIMEOUT must be positive")
	}

	if c.ESPNMaxConcurrent < 1 {
		return fmt.Errorf("ESPN_MAX_CONCURRENT must be at least 1")
	}

	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("HTTP_PORT out of range: %d", c.HTTPPort)
	}

	if c.EnableMetrics && c.MetricsPort == c.HTTPPort {
		return fmt.Errorf("METRICS_PORT must differ from HTTP_PORT")
	}

	if _, err := c.Location(); err != nil {
		return err
	}

	if c.EnableScheduler {
		if _, err := cron.ParseStandard(c.SnapshotCron); err != nil {
			return fmt.Errorf("invalid SNAPSHOT_CRON %q: %w", c.SnapshotCron, err)
		}
		if !c.RedisEnabled {
			return fmt.Errorf("ENABLE_SCHEDULER requires REDIS_ENABLED")
		}
	}

	if c.IsProduction() {
		for _, origin := range c.CORSOrigins {
			if origin == "*" {
				return fmt.Errorf("CORS_ORIGINS must list explicit origins in production")
			}
		}
	}

	if c.RedisEnabled && c.SnapshotStream == "" {
		return fmt.Errorf("SNAPSHOT_STREAM is required when Redis is enabled")
	}

	return nil
}

// Location returns the time zone games are displayed in
func (c *Config) Location() (*time.Location, error) {
	if c.DisplayTimezone == "" || c.DisplayTimezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.DisplayTimezone)
	if err != nil {
		return nil, fmt.Errorf("invalid DISPLAY_TIMEZONE %q: %w", c.DisplayTimezone, err)
	}
	return loc, nil
}

// RedisAddr returns the Redis address
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.RedisHost, c.RedisPort)
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// MustLoad loads configuration or panics on error
// Use this in main() where we want to fail fast
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	return cfg
}
