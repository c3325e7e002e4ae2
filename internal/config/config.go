// Package config loads runtime configuration from environment variables.
// Values that shape API behaviour (page size, token TTL) fall back to the
// documented defaults so a bare environment still yields a working service.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all runtime settings of the advert board server.
type Config struct {
	Env  string // application environment (dev/test/prod)
	Port string // HTTP port to listen on

	DBUser string // database username
	DBPass string // database password (optional)
	DBHost string // database host address
	DBPort string // database port number
	DBName string // database name

	ValuesOnPage int           // page size of every list endpoint
	TokenTTL     time.Duration // bearer token lifetime
	BcryptCost   int           // bcrypt cost for password hashing
}

// Load reads the configuration from the environment.
func Load() Config {
	return Config{
		Env:          envStr("APP_ENV", "dev"),
		Port:         envStr("APP_PORT", "8080"),
		DBUser:       envStr("DB_USER", "root"),
		DBPass:       os.Getenv("DB_PASS"),
		DBHost:       envStr("DB_HOST", "localhost"),
		DBPort:       envStr("DB_PORT", "3306"),
		DBName:       envStr("DB_NAME", "advertboard"),
		ValuesOnPage: envInt("VALUES_ON_PAGE", 5),
		TokenTTL:     time.Duration(envInt("TOKEN_TTL_HOURS", 48)) * time.Hour,
		BcryptCost:   envInt("BCRYPT_COST", 10),
	}
}

// Shared env helpers, reused by the redis/cache/rate-limit loaders.

func envStr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func envInt(k string, d int) int {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return d
}

func envBool(k string, d bool) bool {
	switch os.Getenv(k) {
	case "1", "true", "TRUE", "True", "yes", "on":
		return true
	case "0", "false", "FALSE", "False", "no", "off":
		return false
	}
	return d
}

func envDur(k string, d time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if dur, err := time.ParseDuration(v); err == nil {
		return dur
	}
	return d
}
