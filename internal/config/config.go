package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/kmutua/metertrack/internal/meter"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"MeterTrack"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"metertrack"`
	}

	Server struct {
		Timeout time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
	}

	Auth struct {
		JWTSecret string `envconfig:"JWT_SECRET"`
	}

	// SerialMatchMode selects how serial numbers are compared: "normalized"
	// uppercases and strips leading zeros, "exact" compares byte-for-byte.
	SerialMatchMode string `envconfig:"SERIAL_MATCH_MODE" default:"normalized"`

	Reconciliation struct {
		Schedule string `envconfig:"RECONCILE_SCHEDULE" default:"0 2 * * *"`
	}

	OpenAI struct {
		APIKey string `envconfig:"OPENAI_API_KEY"`
	}

	TUI struct {
		// OperatorID is the profile UUID that local TUI actions are
		// recorded against. Required only when running the TUI.
		OperatorID string `envconfig:"TUI_OPERATOR_ID"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

func (c *Config) MatchMode() (meter.MatchMode, error) {
	switch c.SerialMatchMode {
	case "normalized":
		return meter.MatchNormalized, nil
	case "exact":
		return meter.MatchExact, nil
	default:
		return "", fmt.Errorf("unknown serial match mode %q", c.SerialMatchMode)
	}
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
