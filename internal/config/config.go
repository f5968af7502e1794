package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Storage   StorageConfig   `yaml:"storage"`
	Assistant AssistantConfig `yaml:"assistant"`
}

// ServerConfig holds the listen ports for the API and metrics servers
type ServerConfig struct {
	Port        int `yaml:"port"`
	MetricsPort int `yaml:"metrics_port"`
}

// StorageConfig selects where the menu, orders and inventory documents live.
// Driver is one of "file", "sqlite3" or "postgres".
type StorageConfig struct {
	Driver  string `yaml:"driver"`
	DataDir string `yaml:"data_dir"`
	DSN     string `yaml:"dsn"`
}

// AssistantConfig holds the remote chat-completion settings
type AssistantConfig struct {
	URL      string `yaml:"url"`
	Token    string `yaml:"token"`
	Model    string `yaml:"model"`
	Provider string `yaml:"provider"`
}

// Storage drivers
const (
	DriverFile     = "file"
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

// Assistant provider kinds
const (
	ProviderHTTP   = "http"
	ProviderOpenAI = "openai"
)

// DefaultModel is used when COPILOT_API_MODEL is not set
const DefaultModel = "gpt-4o-mini"

// Configured reports whether both the endpoint and the credential are present
func (a AssistantConfig) Configured() bool {
	return a.URL != "" && a.Token != ""
}

// Default returns the configuration used when no file or environment overrides exist
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        8080,
			MetricsPort: 9090,
		},
		Storage: StorageConfig{
			Driver:  DriverFile,
			DataDir: "data",
		},
		Assistant: AssistantConfig{
			Model:    DefaultModel,
			Provider: ProviderHTTP,
		},
	}
}

// Load reads an optional YAML file, then a .env file, then the environment.
// A missing file at path is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
		}
	}

	_ = godotenv.Load()

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	cfg.Assistant.URL = getEnv("COPILOT_API_URL", cfg.Assistant.URL)
	cfg.Assistant.Token = getEnv("COPILOT_API_TOKEN", cfg.Assistant.Token)
	cfg.Assistant.Model = getEnv("COPILOT_API_MODEL", cfg.Assistant.Model)
	cfg.Assistant.Provider = getEnv("COPILOT_API_PROVIDER", cfg.Assistant.Provider)
	if cfg.Assistant.Model == "" {
		cfg.Assistant.Model = DefaultModel
	}

	cfg.Storage.Driver = getEnv("CAFE_STORAGE_DRIVER", cfg.Storage.Driver)
	cfg.Storage.DataDir = getEnv("CAFE_DATA_DIR", cfg.Storage.DataDir)
	cfg.Storage.DSN = getEnv("CAFE_DATABASE_DSN", cfg.Storage.DSN)

	if v := os.Getenv("CAFE_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid CAFE_PORT %q: %w", v, err)
		}
		cfg.Server.Port = port
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
