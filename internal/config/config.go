package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database   DatabaseConfig
	JWT        JWTConfig
	App        AppConfig
	Attendance AttendanceConfig
	RateLimit  RateLimitConfig
	Admin      AdminConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	// MigrateOnStart applies embedded migrations before serving.
	MigrateOnStart bool
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port           int
	Env            string
	LogLevel       string
	Timezone       string
	AllowedOrigins []string
}

// AttendanceConfig holds the knobs that are deployment settings rather than
// policy rows in system_config.
type AttendanceConfig struct {
	PolicySeedMode          string
	RejectOutsideGeofence   bool
	AbsenceSweepInterval    time.Duration
	AbsenceSweepGraceMinute int
}

type RateLimitConfig struct {
	RequestsPerMinute int
	Burst             int
}

// AdminConfig seeds the first admin account when none exists.
type AdminConfig struct {
	EmployeeID string
	Name       string
	Email      string
	Password   string
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading configuration from environment")
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	migrateOnStart, err := strconv.ParseBool(getEnv("DB_MIGRATE_ON_START", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MIGRATE_ON_START: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:           getEnv("DB_HOST", "localhost"),
		Port:           dbPort,
		User:           getEnv("DB_USER", "postgres"),
		Password:       getEnv("DB_PASSWORD", ""),
		Name:           getEnv("DB_NAME", "attendance_tracker"),
		SSLMode:        getEnv("DB_SSL_MODE", "disable"),
		MigrateOnStart: migrateOnStart,
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
		Timezone:       getEnv("APP_TIMEZONE", "Asia/Karachi"),
		AllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "24h"),
	}

	// Attendance configuration
	rejectOutside, err := strconv.ParseBool(getEnv("ATTENDANCE_REJECT_OUTSIDE_GEOFENCE", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid ATTENDANCE_REJECT_OUTSIDE_GEOFENCE: %w", err)
	}
	sweepInterval, err := time.ParseDuration(getEnv("ABSENCE_SWEEP_INTERVAL", "15m"))
	if err != nil {
		return nil, fmt.Errorf("invalid ABSENCE_SWEEP_INTERVAL: %w", err)
	}
	sweepGrace, err := strconv.Atoi(getEnv("ABSENCE_SWEEP_GRACE_MINUTES", "30"))
	if err != nil {
		return nil, fmt.Errorf("invalid ABSENCE_SWEEP_GRACE_MINUTES: %w", err)
	}

	config.Attendance = AttendanceConfig{
		PolicySeedMode:          getEnv("POLICY_SEED_MODE", "fill_missing"),
		RejectOutsideGeofence:   rejectOutside,
		AbsenceSweepInterval:    sweepInterval,
		AbsenceSweepGraceMinute: sweepGrace,
	}

	// Rate limit configuration
	rpm, err := strconv.Atoi(getEnv("RATE_LIMIT_PER_MINUTE", "100"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_PER_MINUTE: %w", err)
	}
	burst, err := strconv.Atoi(getEnv("RATE_LIMIT_BURST", "20"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_BURST: %w", err)
	}

	config.RateLimit = RateLimitConfig{
		RequestsPerMinute: rpm,
		Burst:             burst,
	}

	config.Admin = AdminConfig{
		EmployeeID: getEnv("ADMIN_EMPLOYEE_ID", "ADMIN001"),
		Name:       getEnv("ADMIN_NAME", "System Administrator"),
		Email:      getEnv("ADMIN_EMAIL", ""),
		Password:   getEnv("ADMIN_PASSWORD", ""),
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
	if _, err := time.ParseDuration(c.JWT.AccessExpiration); err != nil {
		return fmt.Errorf("JWT_ACCESS_EXPIRATION_TIME is invalid: %w", err)
	}
	if _, err := time.LoadLocation(c.App.Timezone); err != nil {
		return fmt.Errorf("APP_TIMEZONE is invalid: %w", err)
	}
	switch c.Attendance.PolicySeedMode {
	case "fill_missing", "overwrite":
	default:
		return fmt.Errorf("POLICY_SEED_MODE must be fill_missing or overwrite")
	}
	if c.Attendance.AbsenceSweepInterval <= 0 {
		return fmt.Errorf("ABSENCE_SWEEP_INTERVAL must be positive")
	}
	if c.RateLimit.RequestsPerMinute <= 0 || c.RateLimit.Burst <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE and RATE_LIMIT_BURST must be positive")
	}
	if (c.Admin.Email == "") != (c.Admin.Password == "") {
		return fmt.Errorf("ADMIN_EMAIL and ADMIN_PASSWORD must be set together")
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

// Location returns the office timezone. Validate guarantees it loads.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string, fallback []string) []string {
	value := getEnv(env, "")
	if value == "" {
		return fallback
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
