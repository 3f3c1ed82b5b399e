package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Auth        AuthConfig
	Media       MediaConfig
	Email       EmailConfig
	Logging     LoggingConfig
	Environment string
}

type ServerConfig struct {
	Host           string
	Port           int
	BaseURL        string
	AllowedOrigins []string
}

type DatabaseConfig struct {
	URI      string
	Database string
}

type AuthConfig struct {
	JWTSecret string
	JWTExpiry time.Duration
	JWTIssuer string
}

type MediaConfig struct {
	Endpoint      string
	AccessKey     string
	SecretKey     string
	Bucket        string
	UseSSL        bool
	PublicBaseURL string
	MaxUploadSize int64
}

type EmailConfig struct {
	Enabled        bool
	ResendAPIKey   string
	From           string
	CompanyName    string
	CompanyWebsite string
	CompanyEmail   string
}

type LoggingConfig struct {
	Level  string
	Format string
}

func Load() (Config, error) {
	cfg := Config{
		Server: ServerConfig{
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			Port:           getEnvInt("SERVER_PORT", 8080),
			BaseURL:        getEnv("SERVER_BASE_URL", "http://localhost:8080"),
			AllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS"),
		},
		Database: DatabaseConfig{
			URI:      getEnv("MONGO_URI", ""),
			Database: getEnv("MONGO_DATABASE", "skyweb"),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", ""),
			JWTExpiry: time.Duration(getEnvInt("JWT_EXPIRY_HOURS", 168)) * time.Hour,
			JWTIssuer: getEnv("JWT_ISSUER", "skyweb-api"),
		},
		Media: MediaConfig{
			Endpoint:      getEnv("MEDIA_ENDPOINT", ""),
			AccessKey:     getEnv("MEDIA_ACCESS_KEY", ""),
			SecretKey:     getEnv("MEDIA_SECRET_KEY", ""),
			Bucket:        getEnv("MEDIA_BUCKET", "skyweb-media"),
			UseSSL:        getEnvBool("MEDIA_USE_SSL", true),
			PublicBaseURL: getEnv("MEDIA_PUBLIC_BASE_URL", ""),
			MaxUploadSize: int64(getEnvInt("MEDIA_MAX_UPLOAD_BYTES", 5*1024*1024)),
		},
		Email: EmailConfig{
			Enabled:        getEnvBool("EMAIL_ENABLED", false),
			ResendAPIKey:   getEnv("RESEND_API_KEY", ""),
			From:           getEnv("EMAIL_FROM", "SkyWeb <hello@skywebdev.xyz>"),
			CompanyName:    getEnv("COMPANY_NAME", "SkyWeb"),
			CompanyWebsite: getEnv("COMPANY_WEBSITE", "https://www.skywebdev.xyz"),
			CompanyEmail:   getEnv("COMPANY_EMAIL", "hello@skywebdev.xyz"),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Environment: getEnv("ENVIRONMENT", "development"),
	}

	if cfg.Database.URI == "" {
		return Config{}, fmt.Errorf("MONGO_URI is required")
	}
	if cfg.Auth.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.Email.Enabled && cfg.Email.ResendAPIKey == "" {
		return Config{}, fmt.Errorf("RESEND_API_KEY is required when EMAIL_ENABLED is true")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	list := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			list = append(list, trimmed)
		}
	}
	return list
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}
