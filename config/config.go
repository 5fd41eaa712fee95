package config

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort           string
	DatabasePath         string
	EncryptionPassphrase string
	EncryptionSalt       string
	TesseractDataPath    string
	OCREnabled           bool
	MaxFileSize          int64
}

// LoadConfig reads configuration from the environment, after loading a
// local .env file when one exists.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to load .env file", "error", err)
	}

	return &Config{
		ServerPort:           getEnv("SERVER_PORT", "8080"),
		DatabasePath:         getEnv("DB_PATH", "payslips.db"),
		EncryptionPassphrase: getEnv("ENCRYPTION_PASSPHRASE", ""),
		EncryptionSalt:       getEnv("ENCRYPTION_SALT", "payslip-vault-v1"),
		TesseractDataPath:    getEnv("TESSDATA_PREFIX", ""),
		OCREnabled:           getEnvAsBool("OCR_ENABLED", false),
		MaxFileSize:          getEnvAsInt64("MAX_FILE_SIZE", 10*1024*1024),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseInt(value, 10, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}
