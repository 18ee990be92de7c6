// Package config contains everything related to configuration
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ErrNoDataSource is returned when DATA_SOURCE is set to a blank value.
var ErrNoDataSource = errors.New("DATA_SOURCE must not be empty")

// Config holds the application configuration.
type Config struct {
	DataSource           string
	FetchTimeout         time.Duration
	WatchSource          bool
	EngagementThreshold  float64
	RoundedRatioCompare  bool
	DesktopNotifications bool
	TopN                 int
	LogLevel             string
	// LogFile is "-" when logs go to stderr.
	LogFile string
	// EnvFile is the .env file that was loaded, if any.
	EnvFile string
}

// Load reads configuration from .env files and environment variables.
func Load() (*Config, error) {
	// Try loading .env from multiple locations
	var envFile string
	for _, path := range getEnvPaths() {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			envFile = path
			break
		}
	}

	cfg := &Config{
		DataSource:           expandHome(strings.TrimSpace(getEnvString(EnvDataSource, defaultDataSource))),
		FetchTimeout:         getEnvDuration(EnvFetchTimeout, defaultFetchTimeout),
		WatchSource:          getEnvBool(EnvWatchSource, true),
		EngagementThreshold:  getEnvFloat(EnvEngagementThreshold, defaultEngagementThreshold),
		RoundedRatioCompare:  getEnvBool(EnvRoundedRatioCompare, false),
		DesktopNotifications: getEnvBool(EnvDesktopNotifications, true),
		TopN:                 getEnvInt(EnvTopN, defaultTopN),
		LogLevel:             getEnvString(EnvLogLevel, defaultLogLevel),
		LogFile:              expandHome(getEnvString(EnvLogFile, getDefaultLogPath())),
		EnvFile:              envFile,
	}

	// A variable that is present but blank would otherwise fall back silently.
	if v, ok := os.LookupEnv(EnvDataSource); ok && strings.TrimSpace(v) == "" {
		return nil, ErrNoDataSource
	}
	if cfg.DataSource == "" {
		return nil, ErrNoDataSource
	}

	if cfg.TopN < 1 {
		cfg.TopN = defaultTopN
	}
	if cfg.FetchTimeout < 0 {
		cfg.FetchTimeout = defaultFetchTimeout
	}

	// Ensure log directory exists
	if cfg.LogFile != "-" {
		if err := ensureDir(filepath.Dir(cfg.LogFile)); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	return cfg, nil
}

// getEnvPaths returns a list of paths to check for .env files.
func getEnvPaths() []string {
	var paths []string

	// Current directory
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, ".env"))
	}

	// Home directory locations
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(home, ".config", appDirName, ".env"),
			filepath.Join(home, "."+appDirName, ".env"),
		)
	}

	// Parent directories (useful for development)
	if cwd, err := os.Getwd(); err == nil {
		parent := filepath.Dir(cwd)
		paths = append(paths, filepath.Join(parent, ".env"))
		grandparent := filepath.Dir(parent)
		paths = append(paths, filepath.Join(grandparent, ".env"))
	}

	return paths
}

// getDefaultLogPath returns the default path for the log file.
func getDefaultLogPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return appDirName + ".log"
	}
	return filepath.Join(home, ".config", appDirName, appDirName+".log")
}

// expandHome replaces a leading "~/" with the user's home directory.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}

// getEnvString retrieves a string environment variable or returns the default.
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvDuration retrieves a duration environment variable or returns the default.
// Accepts values like "30s", "1m", "500ms".
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		// Try parsing as seconds if no unit specified
		if secs, err := strconv.Atoi(value); err == nil {
			return time.Duration(secs) * time.Second
		}
	}
	return defaultValue
}

// getEnvBool retrieves a boolean environment variable or returns the default.
// Accepts strconv.ParseBool values plus yes/no and on/off.
func getEnvBool(key string, defaultValue bool) bool {
	value := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	switch value {
	case "":
		return defaultValue
	case "yes", "on":
		return true
	case "no", "off":
		return false
	}
	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}
	return defaultValue
}

// getEnvFloat retrieves a finite float environment variable or returns the default.
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			return f
		}
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable or returns the default.
func getEnvInt(key string, defaultValue int) int {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

// ensureDir creates a directory and all parent directories if they don't exist.
func ensureDir(path string) error {
	if path == "" || path == "." {
		return nil
	}
	return os.MkdirAll(path, 0o750)
}
