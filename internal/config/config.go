package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration values
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Auth     AuthConfig
	Seed     SeedConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
	Env  string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	AutoMigrate bool
}

// URL returns the database connection URL
func (c DatabaseConfig) URL() string {
	return "postgres://" + c.User + ":" + c.Password + "@" + c.Host + ":" + strconv.Itoa(c.Port) + "/" + c.DBName + "?sslmode=" + c.SSLMode
}

// RedisConfig holds Redis configuration. Redis backs idempotent contract
// creation and is skipped entirely when disabled.
type RedisConfig struct {
	URL      string
	Password string
	Enabled  bool
}

// JWTConfig holds settings for optional bearer actor tokens
type JWTConfig struct {
	Secret       string
	AccessExpiry time.Duration
	Issuer       string
}

// AuthConfig describes the actor assumed when a request carries no identity
type AuthConfig struct {
	DefaultRole      string
	DefaultUserID    string
	DefaultUserName  string
	AllowHeaderActor bool
}

// SeedConfig points at an optional YAML file of blueprints loaded at startup
type SeedConfig struct {
	BlueprintFile string
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
			Env:  getEnv("SERVER_ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:        getEnv("DB_HOST", "localhost"),
			Port:        getEnvAsInt("DB_PORT", 5432),
			User:        getEnv("DB_USER", "postgres"),
			Password:    getEnv("DB_PASSWORD", "postgres"),
			DBName:      getEnv("DB_NAME", "contractflow"),
			SSLMode:     getEnv("DB_SSLMODE", "disable"),
			AutoMigrate: getEnvAsBool("DB_AUTO_MIGRATE", true),
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", "redis://localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
		},
		JWT: JWTConfig{
			Secret:       getEnv("JWT_SECRET", "change-this-in-production"),
			AccessExpiry: getEnvAsDuration("JWT_ACCESS_EXPIRY", 8*time.Hour),
			Issuer:       getEnv("JWT_ISSUER", "contractflow"),
		},
		Auth: AuthConfig{
			DefaultRole:      strings.ToLower(getEnv("AUTH_DEFAULT_ROLE", "admin")),
			DefaultUserID:    getEnv("AUTH_DEFAULT_USER_ID", "admin_user"),
			DefaultUserName:  getEnv("AUTH_DEFAULT_USER_NAME", "Admin"),
			AllowHeaderActor: getEnvAsBool("AUTH_ALLOW_HEADER_ACTOR", true),
		},
		Seed: SeedConfig{
			BlueprintFile: getEnv("BLUEPRINT_SEED_FILE", ""),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
