package config

import (
	"fmt"
	"log"

	"github.com/spf13/viper"
)

// Config holds the full application configuration loaded from environment variables or .env file.
//
// Example ENV equivalent:
//
//	SERVER_PORT=8080
//	RATE_LIMIT_PER_MINUTE=600
//	SPEC_DIR=./specs
//	SPEC_PATTERN=*.xml
//	SPEC_WATCH=false
//	SPEC_STRICT_REQUIRED=false
//	SPEC_PARALLEL=0
//	STORAGE_ENABLED=false
//	POSTGRES_HOST=localhost
//	POSTGRES_PORT=5432
//	POSTGRES_USER=postgres
//	POSTGRES_PASSWORD=secret
//	POSTGRES_DB=fixdict
//	POSTGRES_SSLMODE=disable
//	LOG_LEVEL=info
//	LOG_PRETTY=false
type Config struct {
	Server   ServerConfig   // HTTP server configuration
	Spec     SpecConfig     // Where dictionaries are loaded from
	Storage  StorageConfig  // Optional persistence of imported dictionaries
	Postgres PostgresConfig // PostgreSQL connection settings
	Log      LogConfig      // Global logger settings
}

// LogConfig configures internal/logger.
type LogConfig struct {
	Level  string // debug|info|warn|error
	Pretty bool   // console writer instead of JSON
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port               string // The TCP port the HTTP server will listen on (e.g., "8080")
	RateLimitPerMinute int    // Requests per client IP per minute; 0 disables limiting
}

// SpecConfig describes the QuickFIX spec directory.
type SpecConfig struct {
	Dir            string
	Pattern        string // glob matched against file names
	Watch          bool   // reload files as they change
	StrictRequired bool   // reject required markers other than Y/N
	Parallel       int    // concurrent imports; 0 picks a default from the CPU count
}

// StorageConfig toggles the PostgreSQL catalog.
type StorageConfig struct {
	Enabled bool
}

// PostgresConfig defines connection details for PostgreSQL.
//
// Fields:
//   - Host: hostname of the database server.
//   - Port: port number of the database server (default 5432).
//   - User: username for authentication.
//   - Password: password for authentication.
//   - DBName: target database name.
//   - SSLMode: SSL mode (e.g., "disable", "require").
//   - URL: computed DSN used by database/sql to connect.
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	URL      string
}

// AppConfig is the globally accessible configuration instance.
//
// It is populated once via LoadConfig() and used throughout the application.
var AppConfig Config

// LoadConfig initializes the global AppConfig by reading from .env file
// or directly from environment variables.
//
// Precedence (from lowest to highest):
//  1. Defaults set in this function.
//  2. Values from .env file (if present).
//  3. Environment variables.
//
// Fatal exit:
//   - If required variables are missing, validateConfig() will terminate the app
//     with a descriptive log message.
func LoadConfig() {
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("RATE_LIMIT_PER_MINUTE", 600)

	viper.SetDefault("SPEC_DIR", "./specs")
	viper.SetDefault("SPEC_PATTERN", "*.xml")
	viper.SetDefault("SPEC_WATCH", false)
	viper.SetDefault("SPEC_STRICT_REQUIRED", false)
	viper.SetDefault("SPEC_PARALLEL", 0)

	viper.SetDefault("STORAGE_ENABLED", false)
	viper.SetDefault("POSTGRES_HOST", "localhost")
	viper.SetDefault("POSTGRES_PORT", 5432)
	viper.SetDefault("POSTGRES_USER", "postgres")
	viper.SetDefault("POSTGRES_PASSWORD", "postgres")
	viper.SetDefault("POSTGRES_DB", "fixdict")
	viper.SetDefault("POSTGRES_SSLMODE", "disable")

	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_PRETTY", false)

	// Optionally read from .env if present (common in local dev)
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig() // ignore error if no .env

	viper.AutomaticEnv()

	AppConfig = Config{
		Server: ServerConfig{
			Port:               viper.GetString("SERVER_PORT"),
			RateLimitPerMinute: viper.GetInt("RATE_LIMIT_PER_MINUTE"),
		},
		Spec: SpecConfig{
			Dir:            viper.GetString("SPEC_DIR"),
			Pattern:        viper.GetString("SPEC_PATTERN"),
			Watch:          viper.GetBool("SPEC_WATCH"),
			StrictRequired: viper.GetBool("SPEC_STRICT_REQUIRED"),
			Parallel:       viper.GetInt("SPEC_PARALLEL"),
		},
		Storage: StorageConfig{
			Enabled: viper.GetBool("STORAGE_ENABLED"),
		},
		Postgres: PostgresConfig{
			Host:     viper.GetString("POSTGRES_HOST"),
			Port:     viper.GetInt("POSTGRES_PORT"),
			User:     viper.GetString("POSTGRES_USER"),
			Password: viper.GetString("POSTGRES_PASSWORD"),
			DBName:   viper.GetString("POSTGRES_DB"),
			SSLMode:  viper.GetString("POSTGRES_SSLMODE"),
		},
		Log: LogConfig{
			Level:  viper.GetString("LOG_LEVEL"),
			Pretty: viper.GetBool("LOG_PRETTY"),
		},
	}
	AppConfig.Postgres.URL = AppConfig.Postgres.DSN()

	validateConfig()
}

// DSN builds the database/sql connection string.
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		p.User,
		p.Password,
		p.Host,
		p.Port,
		p.DBName,
		p.SSLMode,
	)
}

// missingKeys lists the required variables that are unset in cfg. Postgres
// settings are only required with storage enabled.
func missingKeys(cfg Config) []string {
	var missing []string

	if cfg.Server.Port == "" {
		missing = append(missing, "SERVER_PORT")
	}
	if cfg.Spec.Dir == "" {
		missing = append(missing, "SPEC_DIR")
	}
	if !cfg.Storage.Enabled {
		return missing
	}
	if cfg.Postgres.Host == "" {
		missing = append(missing, "POSTGRES_HOST")
	}
	if cfg.Postgres.Port == 0 {
		missing = append(missing, "POSTGRES_PORT")
	}
	if cfg.Postgres.User == "" {
		missing = append(missing, "POSTGRES_USER")
	}
	if cfg.Postgres.Password == "" {
		missing = append(missing, "POSTGRES_PASSWORD")
	}
	if cfg.Postgres.DBName == "" {
		missing = append(missing, "POSTGRES_DB")
	}
	return missing
}

// validateConfig terminates the application with log.Fatalf when required
// variables are missing.
func validateConfig() {
	if missing := missingKeys(AppConfig); len(missing) > 0 {
		log.Fatalf("missing required environment variables: %v\n", missing)
	}
}
