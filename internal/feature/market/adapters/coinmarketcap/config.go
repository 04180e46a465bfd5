// Package coinmarketcap provides a client for the CoinMarketCap listings API.
package coinmarketcap

import (
	"os"
	"time"
)

// Default values used when the corresponding environment variable is unset.
const (
	defaultBaseURL    = "https://pro-api.coinmarketcap.com"
	defaultAuthHeader = "X-CMC_PRO_API_KEY"
)

// Config holds configuration for the CoinMarketCap API client.
type Config struct {
	APIKey     string        // API key for authentication
	BaseURL    string        // Base URL for the API
	AuthHeader string        // Name of the header carrying the API key
	Timeout    time.Duration // HTTP request timeout
}

// LoadConfig loads CoinMarketCap configuration from environment variables.
func LoadConfig() Config {
	cfg := Config{
		APIKey:     os.Getenv("CMC_API_KEY"),
		BaseURL:    os.Getenv("BASE_API_URL"),
		AuthHeader: os.Getenv("API_AUTHORIZATION_HEADER"),
		Timeout:    10 * time.Second,
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.AuthHeader == "" {
		cfg.AuthHeader = defaultAuthHeader
	}
	return cfg
}
