package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database   DatabaseConfig
	JWT        JWTConfig
	App        AppConfig
	Attendance AttendanceConfig
	GatePass   GatePassConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// AttendanceConfig holds the attendance rule knobs.
type AttendanceConfig struct {
	MinSessionMinutes     int
	MinBreakMinutes       int
	DuplicateSpacing      time.Duration
	FirstCooldownMinutes  int
	SecondCooldownMinutes int
}

// GatePassConfig holds gate-pass maintenance settings.
type GatePassConfig struct {
	SweepInterval time.Duration
}

func Load() (*Config, error) {
	// A missing .env is fine in deployed environments; real env vars win.
	_ = godotenv.Load()

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
		Name:     getEnv("DB_NAME", "scanpoint"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "12h"),
	}

	// Attendance rules
	minSession, err := getEnvInt("ATTENDANCE_MIN_SESSION_MINUTES", 30)
	if err != nil {
		return nil, err
	}
	minBreak, err := getEnvInt("ATTENDANCE_MIN_BREAK_MINUTES", 15)
	if err != nil {
		return nil, err
	}
	spacing, err := time.ParseDuration(getEnv("ATTENDANCE_DUPLICATE_SPACING", "1m"))
	if err != nil {
		return nil, fmt.Errorf("invalid ATTENDANCE_DUPLICATE_SPACING: %w", err)
	}
	firstCooldown, err := getEnvInt("ATTENDANCE_FIRST_COOLDOWN_MINUTES", 3)
	if err != nil {
		return nil, err
	}
	secondCooldown, err := getEnvInt("ATTENDANCE_SECOND_COOLDOWN_MINUTES", 2)
	if err != nil {
		return nil, err
	}

	config.Attendance = AttendanceConfig{
		MinSessionMinutes:     minSession,
		MinBreakMinutes:       minBreak,
		DuplicateSpacing:      spacing,
		FirstCooldownMinutes:  firstCooldown,
		SecondCooldownMinutes: secondCooldown,
	}

	// Gate pass maintenance
	sweepInterval, err := time.ParseDuration(getEnv("GATEPASS_SWEEP_INTERVAL", "15m"))
	if err != nil {
		return nil, fmt.Errorf("invalid GATEPASS_SWEEP_INTERVAL: %w", err)
	}
	config.GatePass = GatePassConfig{
		SweepInterval: sweepInterval,
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
	if c.Attendance.MinSessionMinutes <= 0 {
		return fmt.Errorf("ATTENDANCE_MIN_SESSION_MINUTES must be positive")
	}
	if c.Attendance.MinBreakMinutes <= 0 {
		return fmt.Errorf("ATTENDANCE_MIN_BREAK_MINUTES must be positive")
	}
	if c.Attendance.FirstCooldownMinutes <= 0 || c.Attendance.SecondCooldownMinutes <= 0 {
		return fmt.Errorf("cooldown durations must be positive")
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

func getEnvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}
