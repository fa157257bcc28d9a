package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Upstream UpstreamConfig
	Session  SessionConfig
	Storage  StorageConfig
	Catalog  CatalogConfig
	CORS     CORSConfig
	Log      LogConfig
}

type ServerConfig struct {
	Port        string
	GinMode     string
	Environment string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// UpstreamConfig points at the remote catalog API the server syncs
// products from.
type UpstreamConfig struct {
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
}

type SessionConfig struct {
	Secret     string
	CookieName string
	TTL        time.Duration
}

// StorageConfig picks the snapshot backend for cart and wishlist state.
// Backend is one of "memory", "file" or "redis".
type StorageConfig struct {
	Backend string
	Dir     string
}

type CatalogConfig struct {
	RefreshSpec string // cron expression for the snapshot refresh
	PageSize    int    // page size when paging the upstream catalog
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config := &Config{
		Server: ServerConfig{
			Port:        getEnv("SERVER_PORT", "8080"),
			GinMode:     getEnv("GIN_MODE", "debug"),
			Environment: getEnv("ENVIRONMENT", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "storefront"),
			Password: getEnv("DB_PASSWORD", "storefront"),
			DBName:   getEnv("DB_NAME", "storefront"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Upstream: UpstreamConfig{
			BaseURL:    getEnv("UPSTREAM_BASE_URL", "http://localhost:9000/api"),
			Timeout:    parseDuration(getEnv("UPSTREAM_TIMEOUT", "10s"), 10*time.Second),
			MaxRetries: getEnvInt("UPSTREAM_MAX_RETRIES", 3),
		},
		Session: SessionConfig{
			Secret:     getEnv("SESSION_SECRET", "dev-session-secret"),
			CookieName: getEnv("SESSION_COOKIE_NAME", "storefront_session"),
			TTL:        parseDuration(getEnv("SESSION_TTL", "720h"), 720*time.Hour),
		},
		Storage: StorageConfig{
			Backend: getEnv("STORAGE_BACKEND", "memory"),
			Dir:     getEnv("STORAGE_DIR", "./data"),
		},
		Catalog: CatalogConfig{
			RefreshSpec: getEnv("CATALOG_REFRESH_CRON", "*/15 * * * *"),
			PageSize:    getEnvInt("CATALOG_PAGE_SIZE", 100),
		},
		CORS: CORSConfig{
			AllowedOrigins: parseSlice(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "console"),
		},
	}

	return config, nil
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Invalid integer for %s, using default %d", key, defaultValue)
		return defaultValue
	}
	return n
}

func parseDuration(s string, defaultValue time.Duration) time.Duration {
	duration, err := time.ParseDuration(s)
	if err != nil {
		log.Printf("Invalid duration %s, using default %s", s, defaultValue)
		return defaultValue
	}
	return duration
}

func parseSlice(s string) []string {
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
