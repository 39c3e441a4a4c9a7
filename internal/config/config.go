package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of every environment variable read by Load
const EnvPrefix = "NEWS_"

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig `koanf:"server" validate:"required"`

	// Database configuration
	Database DatabaseConfig `koanf:"database" validate:"required"`

	// Logging configuration
	Log LogConfig `koanf:"log" validate:"required"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            string        `koanf:"port" validate:"required,numeric"`
	ReadTimeout     time.Duration `koanf:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `koanf:"write_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`
	GinMode         string        `koanf:"gin_mode" validate:"oneof=debug release test"`
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host         string        `koanf:"host" validate:"required"`
	Port         string        `koanf:"port" validate:"required,numeric"`
	User         string        `koanf:"user" validate:"required"`
	Password     string        `koanf:"password"`
	Name         string        `koanf:"name" validate:"required"`
	SSLMode      string        `koanf:"sslmode" validate:"required"`
	MaxOpenConns int           `koanf:"max_open_conns" validate:"gte=1"`
	MaxIdleConns int           `koanf:"max_idle_conns" validate:"gte=0"`
	MaxLifetime  time.Duration `koanf:"max_lifetime"`
	AutoMigrate  bool          `koanf:"auto_migrate"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string `koanf:"level" validate:"oneof=debug info warn error"`
	Format string `koanf:"format" validate:"oneof=json pretty"` // "json" or "pretty"
}

// envKeys maps environment variables to koanf key paths
var envKeys = map[string]string{
	"NEWS_PORT":                    "server.port",
	"NEWS_SERVER_READ_TIMEOUT":     "server.read_timeout",
	"NEWS_SERVER_WRITE_TIMEOUT":    "server.write_timeout",
	"NEWS_SERVER_SHUTDOWN_TIMEOUT": "server.shutdown_timeout",
	"NEWS_GIN_MODE":                "server.gin_mode",
	"NEWS_DB_HOST":                 "database.host",
	"NEWS_DB_PORT":                 "database.port",
	"NEWS_DB_USER":                 "database.user",
	"NEWS_DB_PASSWORD":             "database.password",
	"NEWS_DB_NAME":                 "database.name",
	"NEWS_DB_SSLMODE":              "database.sslmode",
	"NEWS_DB_MAX_OPEN_CONNS":       "database.max_open_conns",
	"NEWS_DB_MAX_IDLE_CONNS":       "database.max_idle_conns",
	"NEWS_DB_MAX_LIFETIME":         "database.max_lifetime",
	"NEWS_DB_AUTO_MIGRATE":         "database.auto_migrate",
	"NEWS_LOG_LEVEL":               "log.level",
	"NEWS_LOG_FORMAT":              "log.format",
}

// Default returns the configuration used when no environment overrides are set
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            "9090",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			ShutdownTimeout: 30 * time.Second,
			GinMode:         "release",
		},
		Database: DatabaseConfig{
			Host:         "localhost",
			Port:         "5432",
			User:         "postgres",
			Password:     "postgres",
			Name:         "nc_news",
			SSLMode:      "disable",
			MaxOpenConns: 25,
			MaxIdleConns: 5,
			MaxLifetime:  5 * time.Minute,
			AutoMigrate:  true,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads configuration from a .env file (if present) and NEWS_*
// environment variables on top of Default
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env file: %w", err)
	}

	k := koanf.New(".")
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return envKeys[strings.ToUpper(s)]
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// GetDSN returns the PostgreSQL connection string
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}
