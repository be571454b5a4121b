package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port       int
	LogLevel   string
	LogFormat  string
	LogDir     string
	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string
	APIKey     string // API key for authentication

	RewardTablesPath string // JSON reward table definitions
	ItemTypesPath    string // JSON item type definitions
	CampaignsPath    string // JSON gacha campaign definitions

	MaxExpandDepth int // recursion bound for composite reward expansion

	RewardLogRetentionDays int           // audit rows older than this are purged
	CleanupInterval        time.Duration // how often the audit cleanup job runs

	EventMaxRetries int           // publish attempts before an event is dead-lettered
	EventRetryDelay time.Duration // base delay between publish retries
	DeadLetterPath  string        // file sink for events that exhausted publish retries
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:         getEnv("LOG_LEVEL", "INFO"),
		LogFormat:        getEnv("LOG_FORMAT", "text"),
		LogDir:           getEnv("LOG_DIR", DefaultLogDir),
		DBUser:           getEnv("DB_USER", "postgres"),
		DBPassword:       getEnv("DB_PASSWORD", "postgres"),
		DBHost:           getEnv("DB_HOST", "localhost"),
		DBPort:           getEnv("DB_PORT", "5432"),
		DBName:           getEnv("DB_NAME", "rewardengine"),
		APIKey:           getEnv("API_KEY", ""),
		RewardTablesPath: getEnv("REWARD_TABLES_PATH", ConfigPathRewardTables),
		ItemTypesPath:    getEnv("ITEM_TYPES_PATH", ConfigPathItemTypes),
		CampaignsPath:    getEnv("CAMPAIGNS_PATH", ConfigPathCampaigns),
		DeadLetterPath:   getEnv("DEAD_LETTER_PATH", DefaultDeadLetterPath),
	}

	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	depthStr := getEnv("MAX_EXPAND_DEPTH", strconv.Itoa(DefaultMaxExpandDepth))
	depth, err := strconv.Atoi(depthStr)
	if err != nil {
		return nil, fmt.Errorf("invalid MAX_EXPAND_DEPTH value: %w", err)
	}
	if depth < 1 {
		return nil, fmt.Errorf("MAX_EXPAND_DEPTH must be at least 1, got %d", depth)
	}
	cfg.MaxExpandDepth = depth

	retentionStr := getEnv("REWARD_LOG_RETENTION_DAYS", strconv.Itoa(DefaultRewardLogRetentionDays))
	retention, err := strconv.Atoi(retentionStr)
	if err != nil {
		return nil, fmt.Errorf("invalid REWARD_LOG_RETENTION_DAYS value: %w", err)
	}
	if retention < 1 {
		return nil, fmt.Errorf("REWARD_LOG_RETENTION_DAYS must be at least 1, got %d", retention)
	}
	cfg.RewardLogRetentionDays = retention

	intervalStr := getEnv("CLEANUP_INTERVAL", DefaultCleanupInterval.String())
	interval, err := time.ParseDuration(intervalStr)
	if err != nil {
		return nil, fmt.Errorf("invalid CLEANUP_INTERVAL value: %w", err)
	}
	cfg.CleanupInterval = interval

	retriesStr := getEnv("EVENT_MAX_RETRIES", strconv.Itoa(DefaultEventMaxRetries))
	retries, err := strconv.Atoi(retriesStr)
	if err != nil {
		return nil, fmt.Errorf("invalid EVENT_MAX_RETRIES value: %w", err)
	}
	cfg.EventMaxRetries = retries

	delayStr := getEnv("EVENT_RETRY_DELAY", DefaultEventRetryDelay.String())
	delay, err := time.ParseDuration(delayStr)
	if err != nil {
		return nil, fmt.Errorf("invalid EVENT_RETRY_DELAY value: %w", err)
	}
	cfg.EventRetryDelay = delay

	// Validate API key is set
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API_KEY environment variable must be set for security")
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
