package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	JWT        JWTConfig
	Attendance AttendanceConfig
	Trips      TripsConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port         string
	Environment  string
	ServiceName  string
	ReadTimeout  int
	WriteTimeout int
	CORSOrigins  string // Comma-separated list of allowed origins
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
	MaxConns int
	MinConns int
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret     string
	Expiration int // in hours
}

// AttendanceConfig holds attendance policy knobs
type AttendanceConfig struct {
	// GraceMinutes is the window after the assigned time within which a
	// check-in still counts as on time.
	GraceMinutes int
	// RequireGeofenceMatch rejects check-ins outside every authorized zone.
	// The default mirrors production behavior: log a warning and proceed.
	RequireGeofenceMatch bool
	// MatchStrategy selects the fence matching policy: "first" or "nearest".
	MatchStrategy string
	// SummaryCacheTTLSeconds controls monthly summary caching in Redis.
	SummaryCacheTTLSeconds int
}

// TripsConfig holds trip fare defaults
type TripsConfig struct {
	// DefaultCommissionPercent applies when a trip carries no explicit rate.
	DefaultCommissionPercent string
}

// Load loads configuration from environment variables
func Load(serviceName string) (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			Environment:  getEnv("ENVIRONMENT", "development"),
			ServiceName:  serviceName,
			ReadTimeout:  getEnvAsInt("READ_TIMEOUT", 10),
			WriteTimeout: getEnvAsInt("WRITE_TIMEOUT", 10),
			CORSOrigins:  getEnv("CORS_ORIGINS", "http://localhost:3000"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "fleetops"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			MaxConns: getEnvAsInt("DB_MAX_CONNS", 25),
			MinConns: getEnvAsInt("DB_MIN_CONNS", 5),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret:     getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
			Expiration: getEnvAsInt("JWT_EXPIRATION", 24),
		},
		Attendance: AttendanceConfig{
			GraceMinutes:           getEnvAsInt("ATTENDANCE_GRACE_MINUTES", 5),
			RequireGeofenceMatch:   getEnvAsBool("ATTENDANCE_REQUIRE_GEOFENCE", false),
			MatchStrategy:          getEnv("ATTENDANCE_MATCH_STRATEGY", "first"),
			SummaryCacheTTLSeconds: getEnvAsInt("ATTENDANCE_SUMMARY_CACHE_TTL", 300),
		},
		Trips: TripsConfig{
			DefaultCommissionPercent: getEnv("TRIPS_DEFAULT_COMMISSION_PERCENT", "15"),
		},
	}

	if cfg.Attendance.GraceMinutes < 0 {
		return nil, fmt.Errorf("ATTENDANCE_GRACE_MINUTES must not be negative")
	}
	if s := cfg.Attendance.MatchStrategy; s != "first" && s != "nearest" {
		return nil, fmt.Errorf("ATTENDANCE_MATCH_STRATEGY must be 'first' or 'nearest', got %q", s)
	}

	return cfg, nil
}

// DSN returns the PostgreSQL connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode)
}

// RedisAddr returns the Redis address
func (c *RedisConfig) RedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}
