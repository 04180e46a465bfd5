// Package config loads process-wide settings from environment variables.
package config

import (
	"os"
	"strconv"
	"time"
)

// Defaults applied when the corresponding environment variable is unset.
const (
	defaultRefreshIntervalMinutes = 1
	defaultTokenExpireMinutes     = 30 * 60 * 7
	defaultAlgorithm              = "HS256"
	defaultListenAddr             = ":8080"
)

// Settings holds the environment-sourced configuration of the process.
// The upstream market client loads its own settings (CMC_API_KEY,
// BASE_API_URL, API_AUTHORIZATION_HEADER) in its adapter package.
type Settings struct {
	// DatabaseURL is the Postgres DSN (DATABASE_URL).
	DatabaseURL string

	// RefreshInterval is how often the refresh job runs (DB_UPDATE_INTERVAL_MINUTES).
	RefreshInterval time.Duration

	// TokenSecret signs bearer tokens (TOKEN_SECRET).
	TokenSecret string

	// TokenExpire is the default token lifetime (TOKEN_EXPIRE_MINUTES).
	TokenExpire time.Duration

	// Algorithm is the token signing algorithm identifier (ALGORITHM). HS256 only.
	Algorithm string

	// ListenAddr is the HTTP listen address (LISTEN_ADDR).
	ListenAddr string
}

// Load reads the settings from the environment, applying defaults for
// optional values. Missing required values are not an error here; the
// consumers fail explicitly when they need them.
func Load() Settings {
	s := Settings{
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		RefreshInterval: time.Duration(envInt("DB_UPDATE_INTERVAL_MINUTES", defaultRefreshIntervalMinutes)) * time.Minute,
		TokenSecret:     os.Getenv("TOKEN_SECRET"),
		TokenExpire:     time.Duration(envInt("TOKEN_EXPIRE_MINUTES", defaultTokenExpireMinutes)) * time.Minute,
		Algorithm:       os.Getenv("ALGORITHM"),
		ListenAddr:      os.Getenv("LISTEN_ADDR"),
	}
	if s.Algorithm == "" {
		s.Algorithm = defaultAlgorithm
	}
	if s.ListenAddr == "" {
		s.ListenAddr = defaultListenAddr
	}
	return s
}

// envInt reads an integer environment variable, falling back to def when
// the variable is unset or not a number.
func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
