package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server      ServerConfig
	Extractor   ExtractorConfig
	Storage     StorageConfig
	Session     SessionConfig
	Preferences PreferencesConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type ExtractorConfig struct {
	URL             string
	Timeout         time.Duration
	MaxResponseSize int64
}

type StorageConfig struct {
	MaxFileSize int64
	ExportPath  string
}

type SessionConfig struct {
	TTL           time.Duration
	SweepInterval time.Duration
}

type PreferencesConfig struct {
	Path string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using default values.")
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "3000"),
			Env:  getEnv("ENV", "development"),
		},
		Extractor: ExtractorConfig{
			URL:             getEnv("EXTRACTOR_URL", "http://localhost:8080"),
			Timeout:         getEnvAsDuration("EXTRACTOR_TIMEOUT", "120s"),
			MaxResponseSize: getEnvAsInt64("MAX_RESPONSE_SIZE", 1048576),
		},
		Storage: StorageConfig{
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 10485760),
			ExportPath:  getEnv("EXPORT_PATH", "./exports"),
		},
		Session: SessionConfig{
			TTL:           getEnvAsDuration("SESSION_TTL", "30m"),
			SweepInterval: getEnvAsDuration("SESSION_SWEEP_INTERVAL", "1m"),
		},
		Preferences: PreferencesConfig{
			Path: getEnv("PREFERENCES_PATH", defaultPreferencesPath()),
		},
	}
}

func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

func defaultPreferencesPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "product-sheet-extractor", "preferences.yaml")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
