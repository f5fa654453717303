// Package config reads service configuration from the environment.
package config

import (
	"os"
	"strconv"
)

// Config holds every runtime setting for the folio backend.
type Config struct {
	// HTTPAddr is the listen address for the REST API, e.g. ":8090".
	HTTPAddr string

	// Redis connection settings.
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// LogLevel is one of DEBUG, INFO, WARN, ERROR.
	LogLevel string
}

// FromEnv builds a Config from environment variables, applying defaults for
// anything unset.
func FromEnv() Config {
	cfg := Config{
		HTTPAddr:      ":8090",
		RedisAddr:     "localhost:6379",
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		LogLevel:      "INFO",
	}

	if v := os.Getenv("HTTP_ADDR"); v != "" {
		cfg.HTTPAddr = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.RedisAddr = v
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		if db, err := strconv.Atoi(v); err == nil {
			cfg.RedisDB = db
		}
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	return cfg
}
