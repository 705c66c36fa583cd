package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	AppEnv                 string
	LogLevel               slog.Level
	ApiServicePort         string
	PostgreSQLHost         string
	PostgreSQLPort         int64
	PostgreSQLUser         string
	PostgreSQLPassword     string
	PostgreSQLDatabase     string
	JWTSecret              string
	AccessTokenExpiration  int64
	RefreshTokenExpiration int64
	RedisHost              string
	RedisPort              int64
	RedisPassword          string
	RedisDatabase          int64
	UploadDir              string
	MaxImageSize           int64
	DailyWriteLimit        int64
}

func LoadConfig() *Config {
	return &Config{
		AppEnv:                 getEnv("APP_ENV", "development"),                    // Default development
		LogLevel:               getLogLevel(),                                       // Default INFO
		ApiServicePort:         getEnv("API_SERVICE_PORT", "8080"),                  // Default 8080
		PostgreSQLHost:         getEnv("POSTGRESQL_HOST", "db"),                     // Default db
		PostgreSQLPort:         getEnvAsInt64("POSTGRESQL_PORT", 5432),              // Default 5432
		PostgreSQLUser:         getEnv("POSTGRESQL_USER", "recipebox_user"),         // Default user
		PostgreSQLPassword:     getEnv("POSTGRESQL_PASSWORD", "recipebox_password"), // Default password
		PostgreSQLDatabase:     getEnv("POSTGRESQL_DATABASE", "recipebox_db"),       // Default database name
		JWTSecret:              getEnv("JWT_SECRET", "recipebox_secret"),            // Default secret key
		AccessTokenExpiration:  getEnvAsInt64("ACCESS_TOKEN_EXPIRATION", 900),       // Default 15 minutes
		RefreshTokenExpiration: getEnvAsInt64("REFRESH_TOKEN_EXPIRATION", 604800),   // Default 7 days
		RedisHost:              getEnv("REDIS_HOST", "redis"),                       // Default redis
		RedisPort:              getEnvAsInt64("REDIS_PORT", 6379),                   // Default 6379
		RedisPassword:          getEnv("REDIS_PASSWORD", ""),                        // Default empty
		RedisDatabase:          getEnvAsInt64("REDIS_DATABASE", 0),                  // Default 0
		UploadDir:              getEnv("UPLOAD_DIR", "/vol/web/media/uploads"),      // Default media volume
		MaxImageSize:           getEnvAsInt64("MAX_IMAGE_SIZE", 5*1024*1024),        // Default 5 MB
		DailyWriteLimit:        getEnvAsInt64("DAILY_WRITE_LIMIT", 0),               // Default unlimited
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt64(key string, fallback int64) int64 {
	if valueStr, exists := os.LookupEnv(key); exists {
		if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
			return value
		}
	}
	return fallback
}

func getLogLevel() slog.Level {
	levelStr := getEnv("LOG_LEVEL", "INFO")

	switch strings.ToUpper(levelStr) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// RedisAddr returns the host:port pair for the redis client.
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.RedisHost, c.RedisPort)
}
