// ABOUTME: Configuration loader for the askbob CLI
// ABOUTME: Loads settings from .env and environment variables with defaults

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// DefaultAPIURL is used when neither flag nor environment provide one.
const DefaultAPIURL = "http://localhost:8000"

type Config struct {
	APIURL string // Tracker API base URL (scheme + host, no path)
}

// Load reads configuration from a .env file (when present) and the
// environment. A missing .env is not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		APIURL: getEnv("ASKBOB_API_URL", DefaultAPIURL),
	}
	return cfg, nil
}

// CredentialPath returns the location of the persisted credential file,
// ~/.config/askbob/credentials.toml. ASKBOB_CONFIG_DIR overrides the
// directory, which keeps tests and parallel sessions isolated.
func CredentialPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "credentials.toml"), nil
}

func configDir() (string, error) {
	if dir := os.Getenv("ASKBOB_CONFIG_DIR"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(home, ".config", "askbob"), nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
