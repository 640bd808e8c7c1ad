// Package config reads application configuration from the environment,
// with .env files loaded when present.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Gemini   GeminiConfig
	OCR      OCRConfig
	Defaults DefaultsConfig
}

// GeminiConfig configures the note-parsing model client. An empty APIKey
// disables the model path entirely; the deterministic parsers still run.
type GeminiConfig struct {
	APIKey             string
	Model              string
	RateLimitPerMinute int
	MaxRetries         int
}

type OCRConfig struct {
	BinaryPath string
	Languages  string
}

// DefaultsConfig fills fields an input never states.
type DefaultsConfig struct {
	Currency      string
	SourceAccount string
	Category      string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Gemini: GeminiConfig{
			APIKey:             getEnv("GEMINI_API_KEY", ""),
			Model:              getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
			RateLimitPerMinute: getEnvAsInt("GEMINI_RATE_LIMIT_PER_MINUTE", 15),
			MaxRetries:         getEnvAsInt("GEMINI_MAX_RETRIES", 3),
		},
		OCR: OCRConfig{
			BinaryPath: getEnv("TESSERACT_PATH", "tesseract"),
			Languages:  getEnv("OCR_LANGUAGES", "spa+eng"),
		},
		Defaults: DefaultsConfig{
			Currency:      getEnv("DEFAULT_CURRENCY", "PYG"),
			SourceAccount: getEnv("DEFAULT_SOURCE_ACCOUNT", "Efectivo"),
			Category:      getEnv("DEFAULT_CATEGORY", "Otros"),
		},
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}
