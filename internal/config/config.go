// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the storefront client
type Config struct {
	App      AppConfig
	API      APIConfig
	Session  SessionConfig
	Redis    RedisConfig
	Geocoder GeocoderConfig
	DeepLink DeepLinkConfig
	Company  CompanyConfig
	Logging  LoggingConfig
}

// AppConfig contains application-level configuration
type AppConfig struct {
	Name        string
	Version     string
	Environment string
	Debug       bool
	Sandbox     bool
}

// APIConfig contains marketplace API connection configuration
type APIConfig struct {
	BaseURL       string
	PathPrefix    string
	Timeout       time.Duration
	RetryCount    int
	RetryWaitTime time.Duration
	UserAgent     string
}

// SessionConfig contains local session persistence configuration
type SessionConfig struct {
	Backend  string // "file" or "redis"
	FilePath string
	Key      string // storage key / redis key namespace
}

// RedisConfig contains Redis configuration for the redis session backend
type RedisConfig struct {
	Host         string
	Port         string
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
}

// GeocoderConfig contains reverse-geocoding service configuration
type GeocoderConfig struct {
	BaseURL string
	Timeout time.Duration
}

// DeepLinkConfig contains deep link routing configuration
type DeepLinkConfig struct {
	Scheme     string
	WebDomains []string
}

// CompanyConfig contains merchant details printed on local receipts
type CompanyConfig struct {
	Name    string
	Address string
	Phone   string
	Email   string
	Website string
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// Load loads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using environment variables")
	}

	config := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Storefront Client"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
			Debug:       getEnvAsBool("APP_DEBUG", true),
			Sandbox:     getEnvAsBool("APP_SANDBOX", true),
		},
		API: APIConfig{
			BaseURL:       getEnv("API_BASE_URL", "http://localhost:8080"),
			PathPrefix:    getEnv("API_PATH_PREFIX", "/api/v1"),
			Timeout:       getEnvAsDuration("API_TIMEOUT", 30*time.Second),
			RetryCount:    getEnvAsInt("API_RETRY_COUNT", 0),
			RetryWaitTime: getEnvAsDuration("API_RETRY_WAIT", 500*time.Millisecond),
			UserAgent:     getEnv("API_USER_AGENT", "storefront-client/1.0"),
		},
		Session: SessionConfig{
			Backend:  getEnv("SESSION_BACKEND", "file"),
			FilePath: getEnv("SESSION_FILE_PATH", defaultSessionPath()),
			Key:      getEnv("SESSION_KEY", "storefront:session"),
		},
		Redis: RedisConfig{
			Host:         getEnv("REDIS_HOST", "localhost"),
			Port:         getEnv("REDIS_PORT", "6379"),
			Password:     getEnv("REDIS_PASSWORD", ""),
			DB:           getEnvAsInt("REDIS_DB", 0),
			PoolSize:     getEnvAsInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getEnvAsInt("REDIS_MIN_IDLE_CONNS", 5),
		},
		Geocoder: GeocoderConfig{
			BaseURL: getEnv("GEOCODER_BASE_URL", "https://nominatim.openstreetmap.org"),
			Timeout: getEnvAsDuration("GEOCODER_TIMEOUT", 10*time.Second),
		},
		DeepLink: DeepLinkConfig{
			Scheme:     getEnv("DEEPLINK_SCHEME", "storefront"),
			WebDomains: getEnvAsSlice("DEEPLINK_WEB_DOMAINS", []string{"shop.example.com", "www.shop.example.com"}),
		},
		Company: CompanyConfig{
			Name:    getEnv("COMPANY_NAME", "Marketplace Store"),
			Address: getEnv("COMPANY_ADDRESS", ""),
			Phone:   getEnv("COMPANY_PHONE", ""),
			Email:   getEnv("COMPANY_EMAIL", "support@example.com"),
			Website: getEnv("COMPANY_WEBSITE", ""),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "debug"),
			Format: getEnv("LOG_FORMAT", "text"),
		},
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("API_BASE_URL is required")
	}
	if !strings.HasPrefix(c.API.BaseURL, "http://") && !strings.HasPrefix(c.API.BaseURL, "https://") {
		return fmt.Errorf("API_BASE_URL must start with http:// or https://")
	}

	switch c.Session.Backend {
	case "file":
		if c.Session.FilePath == "" {
			return fmt.Errorf("SESSION_FILE_PATH is required for the file session backend")
		}
	case "redis":
		if c.Redis.Host == "" {
			return fmt.Errorf("REDIS_HOST is required for the redis session backend")
		}
	default:
		return fmt.Errorf("SESSION_BACKEND must be either 'file' or 'redis'")
	}

	return nil
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// IsSandbox reports whether sandbox-only affordances are enabled.
// Sandbox is always off in production regardless of APP_SANDBOX.
func (c *Config) IsSandbox() bool {
	return c.App.Sandbox && !c.IsProduction()
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

func defaultSessionPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".storefront-session.json"
	}
	return home + "/.storefront/session.json"
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
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

func getEnvAsSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		return strings.Split(value, ",")
	}
	return defaultValue
}
