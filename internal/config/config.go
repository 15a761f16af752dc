package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"AgencyOps"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"agencyops"`
	}

	Server struct {
		Timeout time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
	}

	Forecast struct {
		BlendedRate  decimal.Decimal `envconfig:"FORECAST_BLENDED_RATE" default:"150"`
		WindowMonths int             `envconfig:"FORECAST_WINDOW_MONTHS" default:"6"`
		MaxWindow    int             `envconfig:"FORECAST_MAX_WINDOW_MONTHS" default:"36"`
		Timezone     string          `envconfig:"FORECAST_TIMEZONE" default:"Local"`
	}

	Auth struct {
		// JWTSecret enables bearer authentication on the API when set.
		JWTSecret string `envconfig:"AUTH_JWT_SECRET"`
	}

	CORS struct {
		AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

// Location is the zone "today" is read in.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Forecast.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", c.Forecast.Timezone, err)
	}

	return loc, nil
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if cfg.Forecast.WindowMonths < 1 || cfg.Forecast.WindowMonths > cfg.Forecast.MaxWindow {
		return nil, fmt.Errorf("FORECAST_WINDOW_MONTHS must be within 1..%d, got %d",
			cfg.Forecast.MaxWindow, cfg.Forecast.WindowMonths)
	}

	if _, err := cfg.Location(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
