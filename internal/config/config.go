// Package config loads the service configuration from the environment
// (optionally seeded from a .env file) through viper.
package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// MinJWTSecretLength is enforced for HS256 secrets outside the dev environment.
const MinJWTSecretLength = 32

// Config holds all runtime settings.
type Config struct {
	Env       string
	AppPort   string
	APIPrefix string

	DatabaseDriver string
	DatabaseDSN    string

	JWTSecret string
	// JWTSecretGenerated is true when no secret was configured in dev and a
	// random one was made up; tokens then do not survive a restart.
	JWTSecretGenerated bool
	TokenTTL           time.Duration
	BcryptCost         int

	RabbitMQURL      string
	RabbitMQExchange string
	RabbitMQQueue    string

	LogLevel string
	LogFile  string

	PurgeSchedule string
}

// Load reads .env (if present) and the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	v.SetDefault("APP_ENV", "dev")
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("API_PREFIX", "")
	v.SetDefault("DATABASE_DRIVER", "sqlite")
	v.SetDefault("DATABASE_DSN", "gudang.db")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("TOKEN_TTL", "60m")
	v.SetDefault("BCRYPT_COST", 10)
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("RABBITMQ_EXCHANGE", "gudang.events")
	v.SetDefault("RABBITMQ_QUEUE", "gudang_audit")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FILE", "")
	v.SetDefault("PURGE_SCHEDULE", "@every 1h")
	v.AutomaticEnv()

	cfg := &Config{
		Env:              v.GetString("APP_ENV"),
		AppPort:          v.GetString("APP_PORT"),
		APIPrefix:        strings.TrimRight(v.GetString("API_PREFIX"), "/"),
		DatabaseDriver:   strings.ToLower(v.GetString("DATABASE_DRIVER")),
		DatabaseDSN:      v.GetString("DATABASE_DSN"),
		JWTSecret:        v.GetString("JWT_SECRET"),
		TokenTTL:         v.GetDuration("TOKEN_TTL"),
		BcryptCost:       v.GetInt("BCRYPT_COST"),
		RabbitMQURL:      v.GetString("RABBITMQ_URL"),
		RabbitMQExchange: v.GetString("RABBITMQ_EXCHANGE"),
		RabbitMQQueue:    v.GetString("RABBITMQ_QUEUE"),
		LogLevel:         v.GetString("LOG_LEVEL"),
		LogFile:          v.GetString("LOG_FILE"),
		PurgeSchedule:    v.GetString("PURGE_SCHEDULE"),
	}

	if cfg.JWTSecret == "" && cfg.Env == "dev" {
		secret, err := randomSecret()
		if err != nil {
			return nil, err
		}
		cfg.JWTSecret = secret
		cfg.JWTSecretGenerated = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate refuses settings the server must not start with.
func (c *Config) Validate() error {
	switch c.DatabaseDriver {
	case "sqlite", "postgres", "memory":
	default:
		return fmt.Errorf("DATABASE_DRIVER must be sqlite, postgres or memory, got %q", c.DatabaseDriver)
	}
	if c.DatabaseDriver != "memory" && c.DatabaseDSN == "" {
		return errors.New("DATABASE_DSN is required")
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.Env != "dev" && len(c.JWTSecret) < MinJWTSecretLength {
		return fmt.Errorf("JWT_SECRET is too short (%d characters); need at least %d", len(c.JWTSecret), MinJWTSecretLength)
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive, got %s", c.TokenTTL)
	}
	if c.AppPort == "" {
		return errors.New("APP_PORT is required")
	}
	return nil
}

func randomSecret() (string, error) {
	b := make([]byte, MinJWTSecretLength)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate jwt secret: %w", err)
	}
	return hex.EncodeToString(b), nil
}
