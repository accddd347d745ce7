package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	Mongo    MongoConfig
	Stats    StatsConfig
	JWT      JWTConfig
	App      AppConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

type MongoConfig struct {
	URI  string
	Name string
}

const (
	StoreBackendPostgres = "postgres"
	StoreBackendMongoDB  = "mongodb"
)

// StatsConfig holds monthly aggregation settings
type StatsConfig struct {
	Store       string
	Concurrency int
	JobInterval time.Duration
	// During the first PreviousMonthDays days of a month the scheduled job
	// also refreshes the previous month, picking up late corrections.
	PreviousMonthDays int
	Location          *time.Location
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port               int
	Env                string
	LogLevel           string
	CORSAllowedOrigins []string
}

func Load() (*Config, error) {
	// a missing .env is fine; the environment may be set by the container
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "worktime-stats"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	config.Mongo = MongoConfig{
		URI:  getEnv("MONGO_URI", "mongodb://localhost:27017"),
		Name: getEnv("MONGO_DB", "worktime_stats"),
	}

	// Stats configuration
	concurrency, err := strconv.Atoi(getEnv("STATS_CONCURRENCY", strconv.Itoa(runtime.NumCPU())))
	if err != nil {
		return nil, fmt.Errorf("invalid STATS_CONCURRENCY: %w", err)
	}

	jobInterval, err := time.ParseDuration(getEnv("STATS_JOB_INTERVAL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid STATS_JOB_INTERVAL: %w", err)
	}

	previousMonthDays, err := strconv.Atoi(getEnv("STATS_PREVIOUS_MONTH_DAYS", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid STATS_PREVIOUS_MONTH_DAYS: %w", err)
	}

	loc, err := time.LoadLocation(getEnv("STATS_TIMEZONE", "UTC"))
	if err != nil {
		return nil, fmt.Errorf("invalid STATS_TIMEZONE: %w", err)
	}

	config.Stats = StatsConfig{
		Store:             strings.ToLower(getEnv("STATS_STORE", StoreBackendPostgres)),
		Concurrency:       concurrency,
		JobInterval:       jobInterval,
		PreviousMonthDays: previousMonthDays,
		Location:          loc,
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:               appPort,
		Env:                getEnv("APP_ENV", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		CORSAllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret: getEnv("JWT_SECRET_KEY", ""),
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	switch c.Stats.Store {
	case StoreBackendPostgres:
	case StoreBackendMongoDB:
		if c.Mongo.URI == "" {
			return fmt.Errorf("MONGO_URI is required when STATS_STORE=mongodb")
		}
	default:
		return fmt.Errorf("unsupported STATS_STORE %q", c.Stats.Store)
	}
	if c.Stats.Concurrency < 1 {
		return fmt.Errorf("STATS_CONCURRENCY must be at least 1")
	}
	if c.Stats.JobInterval <= 0 {
		return fmt.Errorf("STATS_JOB_INTERVAL must be positive")
	}
	if c.Stats.PreviousMonthDays < 0 {
		return fmt.Errorf("STATS_PREVIOUS_MONTH_DAYS must not be negative")
	}
	return nil
}

// SlogLevel maps LOG_LEVEL to a slog level, defaulting to info.
func (a AppConfig) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(a.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(key string, fallback []string) []string {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	var result []string
	for _, v := range strings.Split(value, ",") {
		if v = strings.TrimSpace(v); v != "" {
			result = append(result, v)
		}
	}
	return result
}
