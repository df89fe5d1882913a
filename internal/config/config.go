package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Version int           `toml:"version"`
	Server  ServerConfig  `toml:"server" envPrefix:"SERVER_"`
	Storage StorageConfig `toml:"storage" envPrefix:"STORAGE_"`
	Client  ClientConfig  `toml:"client" envPrefix:"CLIENT_"`
	Log     LogConfig     `toml:"log" envPrefix:"LOG_"`
}

// ServerConfig configures the HTTP store
type ServerConfig struct {
	Addr            string   `toml:"addr" env:"ADDR"`
	ShutdownTimeout Duration `toml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT"`
}

// StorageConfig selects and configures the persistence backend
type StorageConfig struct {
	Driver        string `toml:"driver" env:"DRIVER"` // file, bolt or sqlite
	DataDir       string `toml:"data_dir" env:"DATA_DIR"`
	CatalogFile   string `toml:"catalog_file" env:"CATALOG_FILE"`
	SelectionFile string `toml:"selection_file" env:"SELECTION_FILE"`
	CatalogSeed   string `toml:"catalog_seed" env:"CATALOG_SEED"`
}

// ClientConfig configures the terminal UI
type ClientConfig struct {
	ServerURL   string   `toml:"server_url" env:"SERVER_URL"`
	Timeout     Duration `toml:"timeout" env:"TIMEOUT"`
	LogoTimeout Duration `toml:"logo_timeout" env:"LOGO_TIMEOUT"`
	LogoWidth   int      `toml:"logo_width" env:"LOGO_WIDTH"`
}

// LogConfig configures logging
type LogConfig struct {
	Level string `toml:"level" env:"LEVEL"`
	File  string `toml:"file" env:"FILE"` // used by the UI only; the server logs to stderr
}

// EnvPrefix is prepended to every environment override
const EnvPrefix = "COMPANYPICKER_"

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	filePath string
	environ  func() []string
}

// NewConfigService creates a config service rooted at the user config directory
func NewConfigService() ConfigService {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}

	return &configService{
		filePath: filepath.Join(configDir, "companypicker", "config.toml"),
		environ:  os.Environ,
	}
}

// NewConfigServiceAt creates a config service bound to an explicit file
func NewConfigServiceAt(path string) ConfigService {
	return &configService{filePath: path, environ: os.Environ}
}

func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration from file, falling back to defaults when the
// file does not exist. Environment overrides are applied in both cases.
func (cs *configService) Load() (*Config, error) {
	cfg, err := cs.LoadFromPath(cs.filePath)
	if errors.Is(err, os.ErrNotExist) {
		cfg = DefaultConfig()
		if err := cs.applyEnv(cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	return cs.SaveToPath(config, cs.filePath)
}

// LoadFromPath loads configuration from a specific path. Keys missing from
// the file keep their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s: %w", path, os.ErrNotExist)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cs.applyEnv(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func (cs *configService) applyEnv(cfg *Config) error {
	opts := env.Options{Prefix: EnvPrefix}
	if cs.environ != nil {
		opts.Environment = env.ToMap(cs.environ())
	}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Server: ServerConfig{
			Addr:            "localhost:5000",
			ShutdownTimeout: Duration(5 * time.Second),
		},
		Storage: StorageConfig{
			Driver:        "file",
			DataDir:       "data",
			CatalogFile:   "catalog.json",
			SelectionFile: "selected-companies.json",
		},
		Client: ClientConfig{
			ServerURL:   "http://localhost:5000",
			Timeout:     Duration(5 * time.Second),
			LogoTimeout: Duration(3 * time.Second),
			LogoWidth:   4,
		},
		Log: LogConfig{
			Level: "info",
			File:  "companypicker.log",
		},
	}
}
