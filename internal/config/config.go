package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/subosito/gotenv"
)

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

type Config struct {
	AppEnv   string
	Port     string
	LogLevel string
	LogDir   string

	// Database
	DBDriver   string
	FullDSN    string
	DBUser     string
	DBPass     string
	DBHost     string
	DBPort     string
	DBName     string
	SQLitePath string

	Timezone string
	Location *time.Location

	// Auth
	PassphraseHash string
	SessionTTL     time.Duration

	RequestTimeout time.Duration
	CORSOrigins    []string

	// AMQP, optional
	AMQPURL      string
	AMQPExchange string
}

// Load reads .env (when present) and then the process environment.
func Load(envFiles ...string) (*Config, error) {
	if err := gotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load env variables: %w", err)
	}

	cfg := &Config{
		AppEnv:   strings.ToLower(getEnv("APP_ENV", "development")),
		Port:     getEnv("APP_PORT", "8080"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogDir:   getEnv("LOG_DIR", "./logging/logs"),

		DBDriver:   strings.ToLower(getEnv("DB_DRIVER", DriverSQLite)),
		FullDSN:    getEnv("FULL_DSN", ""),
		DBUser:     getEnv("DB_USER", ""),
		DBPass:     getEnv("DB_PASS", ""),
		DBHost:     getEnv("DB_HOST", ""),
		DBPort:     getEnv("DB_PORT", "3306"),
		DBName:     getEnv("DB_NAME", "household_ledger"),
		SQLitePath: getEnv("SQLITE_PATH", "household.db"),

		Timezone: getEnv("APP_TIMEZONE", "UTC"),

		PassphraseHash: getEnv("HOUSEHOLD_PASSPHRASE_HASH", ""),
		SessionTTL:     getEnvDuration("SESSION_TTL", 90*24*time.Hour),

		RequestTimeout: getEnvDuration("REQUEST_TIMEOUT", 15*time.Second),
		CORSOrigins:    getEnvList("CORS_ORIGINS", []string{"*"}),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "household.events"),
	}

	if loc, err := time.LoadLocation(cfg.Timezone); err == nil {
		cfg.Location = loc
	}

	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		problems = append(problems, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch c.DBDriver {
	case DriverMySQL:
		if c.FullDSN == "" && (c.DBUser == "" || c.DBHost == "" || c.DBName == "") {
			problems = append(problems, "either FULL_DSN or DB_USER, DB_HOST and DB_NAME are required for the mysql driver")
		}
	case DriverSQLite:
		if c.SQLitePath == "" {
			problems = append(problems, "SQLITE_PATH cannot be empty when using the sqlite driver")
		}
	default:
		problems = append(problems, fmt.Sprintf("invalid database driver '%s': must be one of [%s %s]", c.DBDriver, DriverMySQL, DriverSQLite))
	}

	if c.Location == nil {
		problems = append(problems, fmt.Sprintf("invalid time zone '%s'", c.Timezone))
	}

	if c.PassphraseHash == "" {
		problems = append(problems, "HOUSEHOLD_PASSPHRASE_HASH is required, generate one with cmd/passphrase")
	} else if !strings.HasPrefix(c.PassphraseHash, "$2") {
		problems = append(problems, "HOUSEHOLD_PASSPHRASE_HASH must be a bcrypt hash")
	}

	if c.SessionTTL <= 0 {
		problems = append(problems, "SESSION_TTL must be positive")
	}
	if c.RequestTimeout <= 0 {
		problems = append(problems, "REQUEST_TIMEOUT must be positive")
	}

	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			problems = append(problems, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			problems = append(problems, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			problems = append(problems, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		return -1
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
