package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	SaveDir string
	// GeminiAPIKey enables the natural-language coach; empty disables it.
	GeminiAPIKey string
}

// LoadConfig reads configuration from a .env file (if present) and the
// environment.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	return &Config{
		SaveDir:      getEnv("STRUCTQUEST_SAVE_DIR", ".saves"),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
	}, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
