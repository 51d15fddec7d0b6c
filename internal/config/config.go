package config

import (
	"errors"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Port               int    `env:"PORT" envDefault:"8080"`
	SMTPHost           string `env:"SMTP_HOST" envDefault:"smtp.gmail.com"`
	SMTPPort           int    `env:"SMTP_PORT" envDefault:"465"`
	SMTPUser           string `env:"SMTP_USER"`
	SMTPPass           string `env:"SMTP_PASS"`
	SMTPFrom           string `env:"SMTP_FROM"`
	SMTPTimeoutSeconds int    `env:"SMTP_TIMEOUT_SECONDS" envDefault:"15"`

	CodeLength int    `env:"CODE_LENGTH" envDefault:"6"`
	APIKey     string `env:"API_KEY"`

	SendIPLimit            int `env:"SEND_IP_LIMIT" envDefault:"10"`
	SendIPWindowMinutes    int `env:"SEND_IP_WINDOW_MINUTES" envDefault:"1"`
	SendEmailLimit         int `env:"SEND_EMAIL_LIMIT" envDefault:"3"`
	SendEmailWindowMinutes int `env:"SEND_EMAIL_WINDOW_MINUTES" envDefault:"15"`
}

func Load() (Config, error) {
	_ = godotenv.Load()
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.CodeLength <= 0 {
		return Config{}, errors.New("CODE_LENGTH must be positive")
	}
	if cfg.SMTPUser != "" && cfg.SMTPPass == "" {
		return Config{}, errors.New("SMTP_PASS is required when SMTP_USER is set")
	}
	return cfg, nil
}

// SenderAddress is the From address; it falls back to the login.
func (c Config) SenderAddress() string {
	if c.SMTPFrom != "" {
		return c.SMTPFrom
	}
	return c.SMTPUser
}

func (c Config) SMTPTimeout() time.Duration {
	return time.Duration(c.SMTPTimeoutSeconds) * time.Second
}
