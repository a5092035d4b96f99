package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the backend configuration.
type Config struct {
	Postgres      PostgresConfig      `yaml:"postgres"`
	NATS          NATSConfig          `yaml:"nats"`
	HTTP          HTTPConfig          `yaml:"http"`
	JWT           JWTConfig           `yaml:"jwt"`
	AuthCallout   AuthCalloutConfig   `yaml:"auth_callout"`
	Clients       ClientsConfig       `yaml:"clients"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// PostgresConfig holds Postgres configuration.
type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

// NATSConfig holds NATS configuration.
type NATSConfig struct {
	URL string `yaml:"url"`
}

// HTTPConfig holds the auth HTTP listener configuration.
type HTTPConfig struct {
	Address        string   `yaml:"address"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// JWTConfig holds platform JWT configuration.
type JWTConfig struct {
	Secret     string        `yaml:"secret"`
	Issuer     string        `yaml:"issuer"`
	Audience   string        `yaml:"audience"`
	DefaultTTL time.Duration `yaml:"default_ttl"`
}

// AuthCalloutConfig holds NATS auth callout configuration.
type AuthCalloutConfig struct {
	Enabled       bool   `yaml:"enabled"`
	Subject       string `yaml:"subject"`
	IssuerNKey    string `yaml:"issuer_nkey"`
	IssuerAccount string `yaml:"issuer_account"`
}

// ClientsConfig holds the client-credentials pairs accepted by the token
// endpoint. Secrets are expected from the environment in production.
type ClientsConfig struct {
	ID     string `yaml:"id"`
	Secret string `yaml:"secret"`
}

// ObservabilityConfig holds configuration for observability components.
type ObservabilityConfig struct {
	MetricsAddress string `yaml:"metrics_address"`
	Environment    string `yaml:"environment"`
	Version        string `yaml:"version"`
}

// LoadConfig loads the configuration from a YAML file, overriding fields
// from environment variables. A missing file falls back to pure env config.
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return loadConfigFromEnv()
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyEnvOverrides(&cfg)

	if cfg.JWT.DefaultTTL == 0 {
		cfg.JWT.DefaultTTL = time.Hour
	}

	return &cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Postgres.DSN = v
	}
	if v := os.Getenv("NATS_URL"); v != "" {
		cfg.NATS.URL = v
	}
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("HTTP_ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = strings.Split(v, ",")
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWT.Secret = v
	}
	if v := os.Getenv("JWT_ISSUER"); v != "" {
		cfg.JWT.Issuer = v
	}
	if v := os.Getenv("JWT_AUDIENCE"); v != "" {
		cfg.JWT.Audience = v
	}
	if v := os.Getenv("JWT_DEFAULT_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.JWT.DefaultTTL = d
		}
	}
	if v := os.Getenv("AUTH_CALLOUT_ENABLED"); v != "" {
		cfg.AuthCallout.Enabled = v == "true"
	}
	if v := os.Getenv("AUTH_CALLOUT_SUBJECT"); v != "" {
		cfg.AuthCallout.Subject = v
	}
	if v := os.Getenv("AUTH_CALLOUT_ISSUER_NKEY"); v != "" {
		cfg.AuthCallout.IssuerNKey = v
	}
	if v := os.Getenv("AUTH_CALLOUT_ISSUER_ACCOUNT"); v != "" {
		cfg.AuthCallout.IssuerAccount = v
	}
	if v := os.Getenv("CLIENT_ID"); v != "" {
		cfg.Clients.ID = v
	}
	if v := os.Getenv("CLIENT_SECRET"); v != "" {
		cfg.Clients.Secret = v
	}
	if v := os.Getenv("METRICS_ADDRESS"); v != "" {
		cfg.Observability.MetricsAddress = v
	}
	if v := os.Getenv("ENV"); v != "" {
		cfg.Observability.Environment = v
	}
	if v := os.Getenv("VERSION"); v != "" {
		cfg.Observability.Version = v
	}
}

// loadConfigFromEnv loads the configuration from environment variables only.
func loadConfigFromEnv() (*Config, error) {
	var cfg Config
	applyEnvOverrides(&cfg)

	if cfg.Postgres.DSN == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable not set")
	}
	if cfg.NATS.URL == "" {
		return nil, fmt.Errorf("NATS_URL environment variable not set")
	}
	if cfg.JWT.DefaultTTL == 0 {
		cfg.JWT.DefaultTTL = time.Hour
	}

	return &cfg, nil
}
