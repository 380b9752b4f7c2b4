package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server        ServerConfig
	Database      DatabaseConfig
	Auth          AuthConfig
	Redis         RedisConfig
	Logging       LoggingConfig
	Guard         GuardConfig
	Breaker       BreakerConfig
	SafeOps       SafeOpsConfig
	Notifications NotificationConfig
	OpenAI        OpenAIConfig
	Jobs          JobsConfig
	Worker        WorkerConfig
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	FrontendURL     string
	Environment     string
}

// DatabaseConfig contains database configuration
type DatabaseConfig struct {
	Driver          string
	Host            string
	Port            int
	Name            string
	User            string
	Password        string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	// For SQLite
	Path string
}

// AuthConfig contains authentication configuration
type AuthConfig struct {
	JWTSecret          string
	AccessTokenExpiry  time.Duration
	RefreshTokenExpiry time.Duration
	BCryptCost         int
}

// RedisConfig contains the optional remote breaker-state store configuration
type RedisConfig struct {
	Enabled   bool
	Host      string
	Port      int
	Password  string
	DB        int
	KeyPrefix string
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level      string
	Format     string // json or console
	OutputPath string
}

// GuardConfig contains default budget guard thresholds.
// Per-tenant settings stored in the database override these.
type GuardConfig struct {
	KillSwitchThresholdUSD float64
	KillSwitchScope        string // tenant or global
	MonthlyCapEnabled      bool
	MonthlyCapUSD          float64
}

// BreakerConfig contains default circuit breaker tuning
type BreakerConfig struct {
	FailureThreshold   int
	RecoveryTimeout    time.Duration
	MaxDailySavingsUSD float64
	CacheCapacity      int
}

// SafeOpsConfig contains safety interceptor configuration
type SafeOpsConfig struct {
	RulesPath     string // optional HCL policy file
	MinAgeEnabled bool
	MinAgeDays    int
}

// NotificationConfig contains outbound notification configuration
type NotificationConfig struct {
	SlackWebhookURL      string
	WebhookSigningSecret string
}

// OpenAIConfig contains the optional narrative analysis configuration
type OpenAIConfig struct {
	APIKey string
	Model  string
}

// JobsConfig contains scheduled job configuration
type JobsConfig struct {
	Enabled                  bool
	RecommendationMaxAgeDays int
	DailyDigestSchedule      string
	RecommendationExpireCron string
}

// WorkerConfig contains background worker configuration
type WorkerConfig struct {
	ReportInterval time.Duration
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore errors as it's optional)
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            getEnvAsInt("SERVER_PORT", 8080),
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
			FrontendURL:     getEnv("FRONTEND_URL", "http://localhost:5173"),
			Environment:     getEnv("ENVIRONMENT", "development"),
		},
		Database: DatabaseConfig{
			Driver:          getEnv("DB_DRIVER", "sqlite"),
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvAsInt("DB_PORT", 5432),
			Name:            getEnv("DB_NAME", "wastegate"),
			User:            getEnv("DB_USER", ""),
			Password:        getEnv("DB_PASSWORD", ""),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
			Path:            getEnv("DB_PATH", "./data.db"),
		},
		Auth: AuthConfig{
			JWTSecret:          getEnv("JWT_SECRET", "supersecretkey"),
			AccessTokenExpiry:  getEnvAsDuration("JWT_ACCESS_EXPIRY", 15*time.Minute),
			RefreshTokenExpiry: getEnvAsDuration("JWT_REFRESH_EXPIRY", 7*24*time.Hour),
			BCryptCost:         getEnvAsInt("BCRYPT_COST", 12),
		},
		Redis: RedisConfig{
			Enabled:   getEnvAsBool("REDIS_ENABLED", false),
			Host:      getEnv("REDIS_HOST", "localhost"),
			Port:      getEnvAsInt("REDIS_PORT", 6379),
			Password:  getEnv("REDIS_PASSWORD", ""),
			DB:        getEnvAsInt("REDIS_DB", 0),
			KeyPrefix: getEnv("REDIS_KEY_PREFIX", "wastegate"),
		},
		Logging: LoggingConfig{
			Level:      getEnv("LOG_LEVEL", "info"),
			Format:     getEnv("LOG_FORMAT", "json"),
			OutputPath: getEnv("LOG_OUTPUT", ""),
		},
		Guard: GuardConfig{
			KillSwitchThresholdUSD: getEnvAsFloat("GUARD_KILL_SWITCH_THRESHOLD_USD", 500),
			KillSwitchScope:        getEnv("GUARD_KILL_SWITCH_SCOPE", "tenant"),
			MonthlyCapEnabled:      getEnvAsBool("GUARD_MONTHLY_CAP_ENABLED", false),
			MonthlyCapUSD:          getEnvAsFloat("GUARD_MONTHLY_CAP_USD", 10000),
		},
		Breaker: BreakerConfig{
			FailureThreshold:   getEnvAsInt("BREAKER_FAILURE_THRESHOLD", 3),
			RecoveryTimeout:    getEnvAsDuration("BREAKER_RECOVERY_TIMEOUT", 5*time.Minute),
			MaxDailySavingsUSD: getEnvAsFloat("BREAKER_MAX_DAILY_SAVINGS_USD", 1000),
			CacheCapacity:      getEnvAsInt("BREAKER_CACHE_CAPACITY", 128),
		},
		SafeOps: SafeOpsConfig{
			RulesPath:     getEnv("SAFEOPS_RULES_PATH", ""),
			MinAgeEnabled: getEnvAsBool("SAFEOPS_MIN_AGE_ENABLED", false),
			MinAgeDays:    getEnvAsInt("SAFEOPS_MIN_AGE_DAYS", 7),
		},
		Notifications: NotificationConfig{
			SlackWebhookURL:      getEnv("SLACK_WEBHOOK_URL", ""),
			WebhookSigningSecret: getEnv("WEBHOOK_SIGNING_SECRET", ""),
		},
		OpenAI: OpenAIConfig{
			APIKey: getEnv("OPENAI_API_KEY", ""),
			Model:  getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		},
		Jobs: JobsConfig{
			Enabled:                  getEnvAsBool("JOBS_ENABLED", true),
			RecommendationMaxAgeDays: getEnvAsInt("JOBS_RECOMMENDATION_MAX_AGE_DAYS", 30),
			DailyDigestSchedule:      getEnv("JOBS_DAILY_DIGEST_SCHEDULE", "0 8 * * *"),
			RecommendationExpireCron: getEnv("JOBS_RECOMMENDATION_EXPIRE_SCHEDULE", "30 2 * * *"),
		},
		Worker: WorkerConfig{
			ReportInterval: getEnvAsDuration("WORKER_REPORT_INTERVAL", 30*time.Second),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" || c.Auth.JWTSecret == "supersecretkey" {
		return fmt.Errorf("JWT_SECRET must be set and should not use default value in production")
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Database.Driver != "sqlite" && c.Database.Driver != "postgres" {
		return fmt.Errorf("unsupported database driver: %s", c.Database.Driver)
	}

	if c.Guard.KillSwitchScope != "tenant" && c.Guard.KillSwitchScope != "global" {
		return fmt.Errorf("invalid kill-switch scope: %s", c.Guard.KillSwitchScope)
	}

	if c.Breaker.FailureThreshold < 1 {
		return fmt.Errorf("breaker failure threshold must be at least 1")
	}

	if c.Breaker.CacheCapacity < 1 {
		return fmt.Errorf("breaker cache capacity must be at least 1")
	}

	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
