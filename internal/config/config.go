// Package config loads client configuration from the environment.
package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config carries everything the client needs at startup.
type Config struct {
	BaseURL        string
	RequestTimeout time.Duration
	ConfigDir      string
	LogFilePath    string
	GoogleClientID string
	PayPalClientID string
	Environment    string
}

// Load reads .env (when present) and the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using system environment")
	}

	return &Config{
		BaseURL:        getEnv("ESTATE_API_BASE_URL", "http://localhost:8080"),
		RequestTimeout: getEnvAsDuration("ESTATE_REQUEST_TIMEOUT", 30*time.Second),
		ConfigDir:      getEnv("ESTATE_CONFIG_DIR", defaultConfigDir()),
		LogFilePath:    getEnv("ESTATE_LOG_FILE", filepath.Join(defaultConfigDir(), "estate.log")),
		GoogleClientID: getEnv("GOOGLE_CLIENT_ID", ""),
		PayPalClientID: getEnv("PAYPAL_CLIENT_ID", ""),
		Environment:    getEnv("GO_ENV", "development"),
	}
}

func defaultConfigDir() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "estatecli")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "estatecli")
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if strValue == "" {
		return fallback
	}
	if d, err := time.ParseDuration(strValue); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(strValue); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}
