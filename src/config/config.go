package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	DatabasePath       string
	LogLevel           string
	MaxUploadSizeBytes int64
	RuleCacheTTL       time.Duration
}

var Cfg *AppConfig

func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found or error loading .env file. Relying on OS environment variables and defaults. Error (if any):", err)
	} else {
		log.Println(".env file loaded successfully.")
	}

	maxUploadSizeBytesStr := getEnv("MAX_UPLOAD_SIZE_BYTES", "10485760")
	maxUploadSizeBytes, err := strconv.ParseInt(maxUploadSizeBytesStr, 10, 64)
	if err != nil {
		log.Printf("WARNING: Invalid MAX_UPLOAD_SIZE_BYTES format '%s'. Using default 10MB. Error: %v", maxUploadSizeBytesStr, err)
		maxUploadSizeBytes = 10 * 1024 * 1024
	}

	ruleCacheTTLStr := getEnv("RULE_CACHE_TTL", "15m")
	ruleCacheTTL, err := time.ParseDuration(ruleCacheTTLStr)
	if err != nil {
		log.Printf("WARNING: Invalid RULE_CACHE_TTL format '%s'. Using default 15m. Error: %v", ruleCacheTTLStr, err)
		ruleCacheTTL = 15 * time.Minute
	}

	Cfg = &AppConfig{
		DatabasePath:       getEnv("DATABASE_PATH", "./pactole.db"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		MaxUploadSizeBytes: maxUploadSizeBytes,
		RuleCacheTTL:       ruleCacheTTL,
	}

	log.Printf("Configuration loaded: LogLevel=%s, DBPath=%s, MaxUploadSize=%d",
		Cfg.LogLevel, Cfg.DatabasePath, Cfg.MaxUploadSizeBytes)
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	log.Printf("Environment variable %s not set, using default: %s", key, fallback)
	return fallback
}
