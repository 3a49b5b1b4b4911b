package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Cache    CacheConfig
	Auth     AuthConfig
	AI       AIConfig
	Email    EmailConfig
	Logging  LoggingConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string
	Host            string
	Environment     string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	GracefulTimeout time.Duration
	AllowedOrigins  []string
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	URL                string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetime    time.Duration
	ConnMaxIdleTime    time.Duration
	ConnectTimeout     time.Duration
	ConnectMaxRetries  uint64
	SlowQueryThreshold time.Duration
	MigrationsPath     string
}

// CacheConfig holds cache provider configuration
type CacheConfig struct {
	Provider      string // "memory" or "redis"
	TTL           time.Duration
	RedisURL      string
	RedisDB       int
	RedisPassword string
	PoolSize      int
}

// AuthConfig holds authentication configuration
type AuthConfig struct {
	JWTSecret  string
	JWTExpiry  time.Duration
	BCryptCost int
}

// AIConfig holds Gemini analysis configuration
type AIConfig struct {
	Enabled    bool
	APIKey     string
	Model      string
	Timeout    time.Duration
	MaxRetries uint64
}

// EmailConfig holds reminder email configuration
type EmailConfig struct {
	Enabled     bool
	FromAddress string
	FromName    string
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level       string
	Development bool
}

// Load reads configuration from the environment, falling back to a .env file
// outside production, and validates it.
func Load() (*Config, error) {
	env := getEnv("GO_ENV", "development")
	if env != "production" {
		envFile := fmt.Sprintf(".env.%s", env)
		if _, err := os.Stat(envFile); err == nil {
			_ = godotenv.Load(envFile)
		} else {
			_ = godotenv.Load() // fallback to .env
		}
	}

	config := &Config{
		Server:   loadServerConfig(env),
		Database: loadDatabaseConfig(),
		Cache:    loadCacheConfig(),
		Auth:     loadAuthConfig(env),
		AI:       loadAIConfig(),
		Email:    loadEmailConfig(),
		Logging:  loadLoggingConfig(env),
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

func loadServerConfig(env string) ServerConfig {
	return ServerConfig{
		Port:            getEnv("PORT", "9000"),
		Host:            getEnv("HOST", "0.0.0.0"),
		Environment:     env,
		ReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", 15*time.Second),
		WriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", 30*time.Second),
		IdleTimeout:     getDurationEnv("SERVER_IDLE_TIMEOUT", 60*time.Second),
		GracefulTimeout: getDurationEnv("SERVER_GRACEFUL_TIMEOUT", 30*time.Second),
		AllowedOrigins:  getSliceEnv("ALLOWED_ORIGINS", []string{"http://localhost:5173"}),
	}
}

func loadDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		URL:                getEnv("DATABASE_URL", ""),
		MaxOpenConns:       getIntEnv("DB_MAX_OPEN_CONNS", 25),
		MaxIdleConns:       getIntEnv("DB_MAX_IDLE_CONNS", 10),
		ConnMaxLifetime:    getDurationEnv("DB_CONN_MAX_LIFETIME", 30*time.Minute),
		ConnMaxIdleTime:    getDurationEnv("DB_CONN_MAX_IDLE_TIME", 10*time.Minute),
		ConnectTimeout:     getDurationEnv("DB_CONNECT_TIMEOUT", 10*time.Second),
		ConnectMaxRetries:  uint64(getIntEnv("DB_CONNECT_MAX_RETRIES", 5)),
		SlowQueryThreshold: getDurationEnv("DB_SLOW_QUERY_THRESHOLD", 100*time.Millisecond),
		MigrationsPath:     getEnv("DB_MIGRATIONS_PATH", "migrations"),
	}
}

func loadCacheConfig() CacheConfig {
	return CacheConfig{
		Provider:      getEnv("CACHE_PROVIDER", "memory"),
		TTL:           getDurationEnv("CACHE_TTL", 5*time.Minute),
		RedisURL:      getEnv("REDIS_URL", "localhost:6379"),
		RedisDB:       getIntEnv("REDIS_DB", 0),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		PoolSize:      getIntEnv("REDIS_POOL_SIZE", 10),
	}
}

func loadAuthConfig(env string) AuthConfig {
	cost := getIntEnv("BCRYPT_COST", 12)
	if env == "development" {
		cost = getIntEnv("BCRYPT_COST", 10)
	}
	return AuthConfig{
		JWTSecret:  getEnv("JWT_SECRET", ""),
		JWTExpiry:  getDurationEnv("JWT_EXPIRY", 24*time.Hour),
		BCryptCost: cost,
	}
}

func loadAIConfig() AIConfig {
	apiKey := getEnv("GEMINI_API_KEY", "")
	return AIConfig{
		Enabled:    getBoolEnv("AI_ANALYSIS_ENABLED", apiKey != ""),
		APIKey:     apiKey,
		Model:      getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		Timeout:    getDurationEnv("AI_TIMEOUT", 30*time.Second),
		MaxRetries: uint64(getIntEnv("AI_MAX_RETRIES", 3)),
	}
}

func loadEmailConfig() EmailConfig {
	return EmailConfig{
		Enabled:     getBoolEnv("EMAIL_ENABLED", false),
		FromAddress: getEnv("EMAIL_FROM_ADDRESS", "noreply@dsavault.dev"),
		FromName:    getEnv("EMAIL_FROM_NAME", "DSA Vault"),
	}
}

func loadLoggingConfig(env string) LoggingConfig {
	return LoggingConfig{
		Level:       getEnv("LOG_LEVEL", "info"),
		Development: env != "production",
	}
}

// Validate checks configuration invariants that would otherwise surface as
// confusing runtime failures.
func (c *Config) Validate() error {
	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if len(c.Auth.JWTSecret) < 32 && c.Server.Environment == "production" {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters in production")
	}
	if c.Cache.Provider != "memory" && c.Cache.Provider != "redis" {
		return fmt.Errorf("CACHE_PROVIDER must be \"memory\" or \"redis\", got %q", c.Cache.Provider)
	}
	if c.AI.Enabled && c.AI.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required when AI analysis is enabled")
	}
	return nil
}

// IsProduction reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// ===============================
// ENV HELPERS
// ===============================

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getSliceEnv(key string, defaultValue []string) []string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		parts := strings.Split(value, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}
	return defaultValue
}
