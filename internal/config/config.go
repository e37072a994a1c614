package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Lookup   LookupConfig
	Cache    CacheConfig
	Auth     AuthConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	RedisURL           string
	LibraryTopic       string
}

type DatabaseConfig struct {
	Connection string
}

type LookupConfig struct {
	OpenLibraryBaseURL string
	GoogleBooksBaseURL string
	GoogleBooksAPIKey  string
	TimeoutSeconds     int
}

type CacheConfig struct {
	SnapshotTTLHours int
}

type AuthConfig struct {
	JwtSecret     string
	TokenTTLHours int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log.csv"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			LibraryTopic:       getEnv("LIBRARY_EVENTS_TOPIC_NAME", "LIBRARY_EVENTS"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Lookup: LookupConfig{
			OpenLibraryBaseURL: getEnv("OPEN_LIBRARY_BASE_URL", "https://openlibrary.org"),
			GoogleBooksBaseURL: getEnv("GOOGLE_BOOKS_BASE_URL", "https://www.googleapis.com"),
			GoogleBooksAPIKey:  getEnv("GOOGLE_BOOKS_API_KEY", ""),
			TimeoutSeconds:     getEnvAsInt("LOOKUP_TIMEOUT_SECONDS", 10),
		},
		Cache: CacheConfig{
			SnapshotTTLHours: getEnvAsInt("SNAPSHOT_TTL_HOURS", 720),
		},
		Auth: AuthConfig{
			JwtSecret:     getEnv("JWT_SECRET", ""),
			TokenTTLHours: getEnvAsInt("TOKEN_TTL_HOURS", 24),
		},
	}
}

func (c *Config) SnapshotTTL() time.Duration {
	return time.Duration(c.Cache.SnapshotTTLHours) * time.Hour
}

func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.Auth.TokenTTLHours) * time.Hour
}

func (c *Config) LookupTimeout() time.Duration {
	return time.Duration(c.Lookup.TimeoutSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
