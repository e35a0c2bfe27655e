package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database     DatabaseConfig
	App          AppConfig
	Attendance   AttendanceConfig
	Notification NotificationConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int32
}

// AppConfig holds application configuration
type AppConfig struct {
	Port           int
	Env            string
	LogLevel       string
	AllowedOrigins []string
}

// AttendanceConfig holds the tunables of the attendance engine.
type AttendanceConfig struct {
	// OvertimeThresholdHours is the daily working time beyond which an
	// employee counts as in overtime.
	OvertimeThresholdHours float64

	// SweepInterval is how often the overtime sweep job runs.
	SweepInterval time.Duration

	// StandardStartTime is the punctuality baseline, "HH:MM".
	StandardStartTime string

	// LateToleranceMinutes is the grace window after the standard start.
	LateToleranceMinutes int
}

// NotificationConfig holds the notification queue tunables.
type NotificationConfig struct {
	BatchSize     int
	FlushInterval time.Duration
	WorkerCount   int
	QueueSize     int
}

func Load() (*Config, error) {
	// A missing .env file is fine in containerized deployments; the
	// environment is already populated there.
	_ = godotenv.Load()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	dbMaxConns, err := strconv.Atoi(getEnv("DB_MAX_CONNS", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "attendance"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		MaxConns: int32(dbMaxConns),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:           appPort,
		Env:            getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		AllowedOrigins: getEnvSlice("ALLOWED_ORIGINS", "http://localhost:3000"),
	}

	// Attendance engine configuration
	overtimeThreshold, err := strconv.ParseFloat(getEnv("OVERTIME_THRESHOLD_HOURS", "8"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid OVERTIME_THRESHOLD_HOURS: %w", err)
	}
	sweepInterval, err := time.ParseDuration(getEnv("OVERTIME_SWEEP_INTERVAL", "5m"))
	if err != nil {
		return nil, fmt.Errorf("invalid OVERTIME_SWEEP_INTERVAL: %w", err)
	}
	lateTolerance, err := strconv.Atoi(getEnv("LATE_TOLERANCE_MINUTES", "15"))
	if err != nil {
		return nil, fmt.Errorf("invalid LATE_TOLERANCE_MINUTES: %w", err)
	}

	config.Attendance = AttendanceConfig{
		OvertimeThresholdHours: overtimeThreshold,
		SweepInterval:          sweepInterval,
		StandardStartTime:      getEnv("STANDARD_START_TIME", "08:00"),
		LateToleranceMinutes:   lateTolerance,
	}

	// Notification queue configuration
	flushInterval, err := time.ParseDuration(getEnv("NOTIFICATION_FLUSH_INTERVAL", "5s"))
	if err != nil {
		return nil, fmt.Errorf("invalid NOTIFICATION_FLUSH_INTERVAL: %w", err)
	}

	config.Notification = NotificationConfig{
		BatchSize:     100,
		FlushInterval: flushInterval,
		WorkerCount:   2,
		QueueSize:     1000,
	}

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
	if c.Attendance.OvertimeThresholdHours <= 0 {
		return fmt.Errorf("OVERTIME_THRESHOLD_HOURS must be positive")
	}
	if c.Attendance.SweepInterval <= 0 {
		return fmt.Errorf("OVERTIME_SWEEP_INTERVAL must be positive")
	}
	if _, err := time.Parse("15:04", c.Attendance.StandardStartTime); err != nil {
		return fmt.Errorf("STANDARD_START_TIME must be HH:MM")
	}
	return nil
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

func getEnvSlice(env, fallback string) []string {
	return strings.Split(getEnv(env, fallback), ",")
}
