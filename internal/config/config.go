package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	ServerPort      string
	DatabaseType    string
	DatabaseURL     string
	DatabasePath    string
	MigrationsPath  string
	SessionDuration time.Duration
	JWTSecret       string

	// OAuth login providers
	GoogleClientID       string
	GoogleClientSecret   string
	OAuthRedirectBaseURL string

	// Daily report email (Amazon SES)
	AWSRegion     string
	SESFromEmail  string
	SESFromName   string
	ReportToEmail string
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is loaded first if present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort:      getEnv("PORT", "8080"),
		DatabaseType:    getEnv("DB_TYPE", "sqlite"),
		DatabaseURL:     getEnv("DB_URL", ""),
		DatabasePath:    getEnv("DB_PATH", "./wordarena.db"),
		MigrationsPath:  getEnv("MIGRATIONS_PATH", "./migrations"),
		SessionDuration: 24 * time.Hour,
		JWTSecret:       getEnv("JWT_SECRET", "dev-only-secret-change-me"),

		GoogleClientID:       getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret:   getEnv("GOOGLE_CLIENT_SECRET", ""),
		OAuthRedirectBaseURL: getEnv("OAUTH_REDIRECT_BASE_URL", "http://localhost:8080"),

		AWSRegion:     getEnv("AWS_REGION", "us-east-1"),
		SESFromEmail:  getEnv("SES_FROM_EMAIL", ""),
		SESFromName:   getEnv("SES_FROM_NAME", "WordArena"),
		ReportToEmail: getEnv("REPORT_TO_EMAIL", ""),
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
