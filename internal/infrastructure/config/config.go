package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	StoreSQLite  = "sqlite"
	StoreMongoDB = "mongodb"
)

// Config holds application configuration values.
type Config struct {
	Port                string
	PrimaryStore        string
	SQLitePath          string
	MongoURI            string
	MongoDBName         string
	MirrorPath          string
	RedisURL            string
	RedisChannel        string
	SubscriberBuffer    int
	RateLimitPerSecond  float64
	AllowedOrigins      []string
	ResetPrimaryOnStart bool
	LogLevel            string
	LogFormat           string
}

// NewConfig creates a new Config instance, loading values from environment variables.
func NewConfig() *Config {
	return &Config{
		Port:                getEnv("PORT", "5000"),
		PrimaryStore:        strings.ToLower(getEnv("PRIMARY_STORE", StoreSQLite)),
		SQLitePath:          getEnv("SQLITE_PATH", "interactions.db"),
		MongoURI:            getEnv("MONGODB_URI", ""),
		MongoDBName:         getEnv("MONGODB_DB_NAME", ""),
		MirrorPath:          getEnv("MIRROR_PATH", "video_interactions.json"),
		RedisURL:            getEnv("REDIS_URL", ""),
		RedisChannel:        getEnv("REDIS_CHANNEL", "interaction_update"),
		SubscriberBuffer:    getEnvAsInt("SUBSCRIBER_BUFFER", 16),
		RateLimitPerSecond:  getEnvAsFloat("RATE_LIMIT_PER_SECOND", 10),
		AllowedOrigins:      getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		ResetPrimaryOnStart: getEnvAsBool("RESET_PRIMARY_ON_START", false),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		LogFormat:           getEnv("LOG_FORMAT", "text"),
	}
}

// Validate reports configuration combinations the server cannot start with.
func (c *Config) Validate() error {
	switch c.PrimaryStore {
	case StoreSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH must be set when PRIMARY_STORE=%s", StoreSQLite)
		}
	case StoreMongoDB:
		if c.MongoURI == "" || c.MongoDBName == "" {
			return fmt.Errorf("MONGODB_URI and MONGODB_DB_NAME must be set when PRIMARY_STORE=%s", StoreMongoDB)
		}
	default:
		return fmt.Errorf("unsupported PRIMARY_STORE %q", c.PrimaryStore)
	}
	if c.MirrorPath == "" {
		return fmt.Errorf("MIRROR_PATH must not be empty")
	}
	if c.RateLimitPerSecond <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_SECOND must be positive")
	}
	return nil
}

// Helper function to get an environment variable or return a default value.
// An empty variable counts as unset.
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// Helper function to get an environment variable as an integer or return a default value.
func getEnvAsInt(name string, fallback int) int {
	valueStr := getEnv(name, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(name string, fallback float64) float64 {
	valueStr := getEnv(name, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return fallback
}

// Helper function to get an environment variable as a boolean or return a default value.
func getEnvAsBool(name string, fallback bool) bool {
	valStr := getEnv(name, "")
	if val, err := strconv.ParseBool(valStr); err == nil {
		return val
	}
	return fallback
}

// comma separated, blanks dropped
func getEnvAsList(name string, fallback []string) []string {
	valStr := getEnv(name, "")
	var out []string
	for _, part := range strings.Split(valStr, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
