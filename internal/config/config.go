package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration. It is resolved once
// at startup and handed to the orchestrator and drivers explicitly.
type Config struct {
	DBPath      string  `yaml:"db_path"`
	Scheme      string  `yaml:"scheme"`
	BatchSize   int     `yaml:"batch_size"`
	ReportEvery int     `yaml:"report_every"`
	Throttle    float64 `yaml:"throttle"` // page fetches per second, 0 = unlimited
	LogLevel    string  `yaml:"log_level"`
}

// Load loads configuration from multiple sources with precedence:
// 1. Environment variables
// 2. ./.env.local (dotenv) - walks up parent directories to find it
// 3. ~/.config/userfill/config.yaml (YAML)
func Load() (*Config, error) {
	cfg := &Config{
		Scheme:      "legacy",
		BatchSize:   100,
		ReportEvery: 500,
		LogLevel:    "info",
	}

	// Load .env.local if it exists (walking up parent directories)
	if envPath := findEnvLocal(); envPath != "" {
		_ = godotenv.Load(envPath)
	}

	// Load ~/.config/userfill/config.yaml if it exists
	if err := loadYAMLConfig(cfg); err != nil {
		// YAML config is optional, so we don't fail if it doesn't exist
	}

	// Override with environment variables
	if dbPath := getEnvOrFile("USERFILL_DB_PATH", "USERFILL_DB_PATH_FILE"); dbPath != "" {
		cfg.DBPath = dbPath
	}
	if scheme := os.Getenv("USERFILL_SCHEME"); scheme != "" {
		cfg.Scheme = scheme
	}
	if logLevel := os.Getenv("USERFILL_LOG_LEVEL"); logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if batchSize := os.Getenv("USERFILL_BATCH_SIZE"); batchSize != "" {
		n, err := strconv.Atoi(batchSize)
		if err != nil {
			return nil, fmt.Errorf("invalid USERFILL_BATCH_SIZE %q: %w", batchSize, err)
		}
		cfg.BatchSize = n
	}
	if throttle := os.Getenv("USERFILL_THROTTLE"); throttle != "" {
		f, err := strconv.ParseFloat(throttle, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid USERFILL_THROTTLE %q: %w", throttle, err)
		}
		cfg.Throttle = f
	}

	if cfg.BatchSize < 1 {
		return nil, fmt.Errorf("batch size must be positive, got %d", cfg.BatchSize)
	}

	return cfg, nil
}

// loadYAMLConfig loads configuration from ~/.config/userfill/config.yaml
func loadYAMLConfig(cfg *Config) error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return err
	}

	configPath := filepath.Join(homeDir, ".config", "userfill", "config.yaml")
	data, err := os.ReadFile(configPath)
	if err != nil {
		return err
	}

	return yaml.Unmarshal(data, cfg)
}

// getEnvOrFile gets an environment variable value, or reads it from a file
// if the _FILE variant is set
func getEnvOrFile(envVar, fileVar string) string {
	if val := os.Getenv(envVar); val != "" {
		return val
	}

	if filePath := os.Getenv(fileVar); filePath != "" {
		data, err := os.ReadFile(filePath)
		if err == nil {
			return string(data)
		}
	}

	return ""
}

// findEnvLocal searches for .env.local starting from cwd and walking up
// parent directories. Stops at the user's home directory.
// Returns the path to .env.local if found, empty string otherwise.
func findEnvLocal() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		// If we can't get home dir, just check cwd
		if _, err := os.Stat(".env.local"); err == nil {
			return ".env.local"
		}
		return ""
	}

	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	// Clean paths for reliable comparison
	homeDir = filepath.Clean(homeDir)
	dir := filepath.Clean(cwd)

	for {
		envPath := filepath.Join(dir, ".env.local")
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}

		// Stop if we've reached home directory
		if dir == homeDir {
			break
		}

		// Get parent directory
		parent := filepath.Dir(dir)

		// Stop if we've reached the filesystem root
		if parent == dir {
			break
		}

		dir = parent
	}

	return ""
}
