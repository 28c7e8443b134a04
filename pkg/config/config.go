package config

import (
	"time"

	"github.com/caarlos0/env/v6"
)

// Database holds the Postgres connection settings
type Database struct {
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     string `env:"DB_PORT" envDefault:"5432"`
	User     string `env:"DB_USER" envDefault:"heatcontrol_user"`
	Password string `env:"DB_PASSWORD" envDefault:"heatcontrol_pass"`
	Name     string `env:"DB_NAME" envDefault:"heatcontrol_db"`
	SSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`
}

// Server holds the HTTP server settings
type Server struct {
	Port           string   `env:"SERVER_PORT" envDefault:"8058"`
	JWTSecret      string   `env:"JWT_SECRET"`
	AllowedOrigins []string `env:"SERVER_ALLOWED_ORIGINS" envSeparator:","`
}

// Weather holds the refresh loop settings
type Weather struct {
	BaseURL         string        `env:"WEATHER_API_URL" envDefault:"https://api.open-meteo.com/v1/forecast"`
	RefreshInterval time.Duration `env:"WEATHER_REFRESH_INTERVAL" envDefault:"10m"`
}

// Config is the full process configuration, parsed from the environment
type Config struct {
	Database Database
	Server   Server
	Weather  Weather
}

// Load parses the configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(&cfg.Database); err != nil {
		return nil, err
	}
	if err := env.Parse(&cfg.Server); err != nil {
		return nil, err
	}
	if err := env.Parse(&cfg.Weather); err != nil {
		return nil, err
	}
	return cfg, nil
}
