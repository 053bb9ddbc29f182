package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port          string
	Env           string
	LogLevel      string
	Timezone      string
	DBDriver      string // sqlite|postgres
	DBPath        string
	DatabaseURL   string
	TopologyDir   string // empty = embedded topology
	ReportWorkers int
	APIKey        string // empty disables the report key check
}

func Load() AppConfig {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Printf("[cfg] No .env file found or error loading: %v", err)
	}

	get := func(k, def string) string {
		if v := os.Getenv(k); v != "" {
			return v
		}
		return def
	}
	workers, err := strconv.Atoi(get("REPORT_WORKERS", "4"))
	if err != nil || workers <= 0 {
		workers = 4
	}
	cfg := AppConfig{
		Port:          get("PORT", "8080"),
		Env:           get("APP_ENV", "development"),
		LogLevel:      get("LOG_LEVEL", "info"),
		Timezone:      get("TZ", "Asia/Ho_Chi_Minh"),
		DBDriver:      get("DB_DRIVER", "sqlite"),
		DBPath:        get("DB_PATH", "genreport.db"),
		DatabaseURL:   get("DATABASE_URL", ""),
		TopologyDir:   get("TOPOLOGY_DIR", ""),
		ReportWorkers: workers,
		APIKey:        get("API_KEY", ""),
	}
	return cfg
}

// Redacted is safe to log: the database URL may carry a password.
func (c AppConfig) Redacted() AppConfig {
	if c.DatabaseURL != "" {
		c.DatabaseURL = "***"
	}
	if c.APIKey != "" {
		c.APIKey = "***"
	}
	return c
}
