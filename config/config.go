package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

var (
	ErrMissingEnv = errors.New("missing-env")
	ErrInvalidEnv = errors.New("invalid-env")
)

type Config struct {
	AllowedOrigins []string
	JWTKey         string
	PostgresURL    string
	Port           string
	LogLevel       string
	GinMode        string
	PublicURL      string
	SessionMaxAge  time.Duration
}

// Pretty reports whether logs should go through the console writer.
func (c Config) Pretty() bool {
	return c.GinMode != "release"
}

func (c Config) Addr() string {
	return ":" + c.Port
}

func Load() (Config, error) {
	cfg := Config{
		Port:          lookupOr("PORT", "5000"),
		LogLevel:      lookupOr("LOG_LEVEL", "info"),
		GinMode:       os.Getenv("GIN_MODE"),
		PublicURL:     lookupOr("PUBLIC_URL", "http://localhost:5000"),
		SessionMaxAge: time.Hour * 24 * 7,
	}

	origins, err := require("ALLOWED_ORIGINS")
	if err != nil {
		return Config{}, err
	}
	for _, origin := range strings.Split(origins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
		}
	}
	if len(cfg.AllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("%w: %s", ErrMissingEnv, "ALLOWED_ORIGINS")
	}

	if cfg.JWTKey, err = require("JWT_KEY"); err != nil {
		return Config{}, err
	}
	if cfg.PostgresURL, err = require("POSTGRES_URL"); err != nil {
		return Config{}, err
	}

	if raw, ok := os.LookupEnv("SESSION_MAX_AGE"); ok {
		age, err := time.ParseDuration(raw)
		if err != nil || age <= 0 {
			return Config{}, fmt.Errorf("%w: %s", ErrInvalidEnv, "SESSION_MAX_AGE")
		}
		cfg.SessionMaxAge = age
	}

	return cfg, nil
}

func require(key string) (string, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return "", fmt.Errorf("%w: %s", ErrMissingEnv, key)
	}
	return value, nil
}

func lookupOr(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}
