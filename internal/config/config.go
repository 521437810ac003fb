// Package config loads application configuration from environment
// variables.
package config

import (
	"log"
	"os"
	"strconv"
)

// Config holds all runtime configuration values. Each field maps to an
// environment variable; required ones are enforced by must() and halt
// startup when missing.
type Config struct {
	Env           string // application environment (dev/test/prod)
	Port          string // HTTP port to listen on
	DBPath        string // path of the SQLite store file
	JWTSecret     string // secret used to verify bearer tokens
	BcryptCost    int    // bcrypt cost for password hashing
	PublishEvents bool   // mirror stored notifications onto RabbitMQ
}

// Load reads the configuration from the environment. Missing required
// variables are fatal.
func Load() Config {
	return Config{
		Env:           must("APP_ENV"),
		Port:          must("APP_PORT"),
		DBPath:        envStr("DB_PATH", "data/marketplace.db"),
		JWTSecret:     must("JWT_SECRET"),
		BcryptCost:    mustInt("BCRYPT_COST"),
		PublishEvents: envBool("QUEUE_PUBLISH_ENABLED", false),
	}
}

func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}
