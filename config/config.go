package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strings"

	"github.com/subosito/gotenv"
)

const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
	DriverMemory = "memory"
)

var validDrivers = []string{DriverSQLite, DriverMySQL, DriverMemory}

type Config struct {
	// Storage
	DBDriver string
	DBPath   string
	DBDSN    string

	// Logging
	LogLevel string
	LogDir   string
	AppEnv   string
}

// Load reads the environment, after merging a .env file from the working directory if
// one exists.
func Load() (*Config, error) {
	if err := gotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load env variables: %w", err)
	}

	return &Config{
		DBDriver: strings.ToLower(getEnv("LEDGER_DB_DRIVER", DriverSQLite)),
		DBPath:   getEnv("LEDGER_DB_PATH", "./data/finance.db"),
		DBDSN:    getEnv("LEDGER_DB_DSN", ""),

		LogLevel: getEnv("LEDGER_LOG_LEVEL", "info"),
		LogDir:   getEnv("LEDGER_LOG_DIR", "./logging/logs"),
		AppEnv:   getEnv("APP_ENV", "development"),
	}, nil
}

// Validate reports every configuration problem at once.
func (c *Config) Validate() error {
	var problems []string

	if !slices.Contains(validDrivers, c.DBDriver) {
		problems = append(problems, fmt.Sprintf("invalid database driver '%s': must be one of %v", c.DBDriver, validDrivers))
	}

	switch c.DBDriver {
	case DriverSQLite:
		if c.DBPath == "" {
			problems = append(problems, "database path cannot be empty when using sqlite driver")
		}
	case DriverMySQL:
		if c.DBDSN == "" {
			problems = append(problems, "LEDGER_DB_DSN is required when using mysql driver")
		}
	}

	if c.LogDir == "" {
		problems = append(problems, "log directory cannot be empty")
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
