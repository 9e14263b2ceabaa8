package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Debug bool `env:"DEBUG" envDefault:"false"`

	Server struct {
		Port   int    `env:"PORT" envDefault:"8080"`
		Origin string `env:"ORIGIN" envDefault:"http://localhost:5173"`
	}

	Mongo struct {
		URI      string `env:"MONGODB_URI,required"`
		Database string `env:"MONGODB_DATABASE" envDefault:"investment_bot"`
	}

	Redis struct {
		Host     string `env:"REDIS_HOST" envDefault:"localhost"`
		Port     int    `env:"REDIS_PORT" envDefault:"6379"`
		Password string `env:"REDIS_PASSWORD" envDefault:""`
		DB       int    `env:"REDIS_DB" envDefault:"0"`
	}

	Telegram struct {
		BotToken    string `env:"BOT_TOKEN,required"`
		BotUsername string `env:"BOT_USERNAME" envDefault:"investment_bot"`
	}

	Auth struct {
		AccessSecret  string `env:"JWT_SECRET,required"`
		AccessExpiry  string `env:"JWT_EXPIRES_IN" envDefault:"7d"`
		RefreshSecret string `env:"JWT_REFRESH_SECRET"`
		RefreshExpiry string `env:"JWT_REFRESH_EXPIRES_IN" envDefault:"30d"`
	}
}

// Load reads the environment into a validated Config. Missing required
// secrets are a startup error, never a silent fallback.
func Load() (*Config, error) {
	// .env is optional; in production variables are set directly.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	// The refresh secret must differ from the access secret so a refresh
	// token can never pass access-token verification. Production deployments
	// should still override it explicitly.
	if cfg.Auth.RefreshSecret == "" {
		cfg.Auth.RefreshSecret = cfg.Auth.AccessSecret + "_refresh"
	}

	return cfg, nil
}
