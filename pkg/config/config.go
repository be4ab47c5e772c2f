package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

type ServerConfig struct {
	Port             string `yaml:"port"`
	Environment      string `yaml:"environment"`
	RateLimitEnabled bool   `yaml:"rate_limit_enabled"`
}

type DatabaseConfig struct {
	Driver         string `yaml:"driver"`
	Path           string `yaml:"path"`
	URL            string `yaml:"url"`
	MigrationsPath string `yaml:"migrations_path"`
}

type AuthConfig struct {
	JWTSecret     string `yaml:"jwt_secret"`
	TokenTTLHours int    `yaml:"token_ttl_hours"`
	LockThreshold int    `yaml:"lock_threshold"`
}

type TelemetryConfig struct {
	Enabled        bool   `yaml:"enabled"`
	ServiceName    string `yaml:"service_name"`
	ServiceVersion string `yaml:"service_version"`
	MetricsPort    string `yaml:"metrics_port"`
	OTLPEndpoint   string `yaml:"otlp_endpoint"`
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:             "8080",
			Environment:      "development",
			RateLimitEnabled: true,
		},
		Database: DatabaseConfig{
			Driver:         "sqlite",
			Path:           "taskhub.db",
			MigrationsPath: "db/migrations",
		},
		Auth: AuthConfig{
			TokenTTLHours: 24,
			LockThreshold: 3,
		},
		Telemetry: TelemetryConfig{
			Enabled:        false,
			ServiceName:    "taskhub",
			ServiceVersion: "1.0.0",
			MetricsPort:    "9090",
			OTLPEndpoint:   "localhost:4317",
		},
	}
}

// Load reads the optional YAML file, then lets environment variables
// override individual values. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)

		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}

		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config file: %w", err)
			}
		}
	}

	applyEnv(cfg)

	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("jwt secret is required (auth.jwt_secret or JWT_SECRET)")
	}

	return cfg, nil
}

func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.Auth.TokenTTLHours) * time.Hour
}

func applyEnv(cfg *Config) {
	setString(&cfg.Server.Port, "PORT")
	setString(&cfg.Server.Environment, "ENVIRONMENT")
	setBool(&cfg.Server.RateLimitEnabled, "RATE_LIMIT_ENABLED")

	setString(&cfg.Database.Driver, "DATABASE_DRIVER")
	setString(&cfg.Database.Path, "DATABASE_PATH")
	setString(&cfg.Database.URL, "DATABASE_URL")
	setString(&cfg.Database.MigrationsPath, "MIGRATIONS_PATH")

	setString(&cfg.Auth.JWTSecret, "JWT_SECRET")
	setInt(&cfg.Auth.TokenTTLHours, "TOKEN_TTL_HOURS")
	setInt(&cfg.Auth.LockThreshold, "LOCK_THRESHOLD")

	setBool(&cfg.Telemetry.Enabled, "TELEMETRY_ENABLED")
	setString(&cfg.Telemetry.ServiceName, "SERVICE_NAME")
	setString(&cfg.Telemetry.MetricsPort, "METRICS_PORT")
	setString(&cfg.Telemetry.OTLPEndpoint, "OTLP_ENDPOINT")
}

func setString(target *string, key string) {
	if value := os.Getenv(key); value != "" {
		*target = value
	}
}

func setInt(target *int, key string) {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			*target = parsed
		}
	}
}

func setBool(target *bool, key string) {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			*target = parsed
		}
	}
}
