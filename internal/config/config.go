// ABOUTME: Fitlog configuration management with backend selection.
// ABOUTME: Handles settings, preferences, and storage backend factory function.

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/harperreed/fitlog/internal/analyzer"
	"github.com/harperreed/fitlog/internal/charm"
	"github.com/harperreed/fitlog/internal/coach"
	"github.com/harperreed/fitlog/internal/storage"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Backends lists the supported storage backends.
var Backends = []string{"sqlite", "postgres", "json", "csv", "charm"}

// DefaultServerAddr is the REST listen address.
const DefaultServerAddr = "127.0.0.1:5000"

// Config stores fitlog configuration.
type Config struct {
	// Backend selects the storage backend: sqlite (default), postgres, json, csv, or charm.
	Backend string `json:"backend,omitempty"`

	// DataDir is the root directory for file-based backends.
	// Supports ~ expansion for home directory. Defaults to ~/.local/share/fitlog.
	DataDir string `json:"data_dir,omitempty"`

	PostgresDSN string `json:"postgres_dsn,omitempty"`

	// Window and Mode set the analyzer defaults.
	Window int    `json:"window,omitempty"`
	Mode   string `json:"mode,omitempty"`

	LogLevel  string `json:"log_level,omitempty"`
	LogFormat string `json:"log_format,omitempty"`

	Server ServerConfig `json:"server,omitempty"`
	Coach  CoachConfig  `json:"coach,omitempty"`
	Redis  RedisConfig  `json:"redis,omitempty"`
}

// ServerConfig configures the REST surface.
type ServerConfig struct {
	Addr string `json:"addr,omitempty"`
}

// CoachConfig configures the LLM provider. The API key itself is read from
// the environment variable named by APIKeyEnv.
type CoachConfig struct {
	Provider  string `json:"provider,omitempty"`
	BaseURL   string `json:"base_url,omitempty"`
	Model     string `json:"model,omitempty"`
	APIKeyEnv string `json:"api_key_env,omitempty"`
	Timeout   string `json:"timeout,omitempty"`
}

// RedisConfig configures the optional coach response cache.
type RedisConfig struct {
	Addr string `json:"addr,omitempty"`
	TTL  string `json:"ttl,omitempty"`
}

// GetBackend returns the configured backend, defaulting to "sqlite".
func (c *Config) GetBackend() string {
	if c.Backend == "" {
		return "sqlite"
	}
	return c.Backend
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetWindow returns the analyzer window, defaulting to 7.
func (c *Config) GetWindow() int {
	if c.Window <= 0 {
		return analyzer.DefaultWindow
	}
	return c.Window
}

// GetMode returns the analyzer mode, defaulting to basic.
func (c *Config) GetMode() analyzer.Mode {
	mode, err := analyzer.ParseMode(c.Mode)
	if err != nil {
		return analyzer.ModeBasic
	}
	return mode
}

// AnalyzerOptions returns analyzer options from the configured defaults.
func (c *Config) AnalyzerOptions() analyzer.Options {
	return analyzer.Options{Window: c.GetWindow(), Mode: c.GetMode()}
}

// GetServerAddr returns the REST listen address.
func (c *Config) GetServerAddr() string {
	if c.Server.Addr == "" {
		return DefaultServerAddr
	}
	return c.Server.Addr
}

// CoachSettings resolves coach.Config, reading the API key from the environment.
func (c *Config) CoachSettings() (coach.Config, error) {
	provider, err := coach.ParseProvider(c.Coach.Provider)
	if err != nil {
		return coach.Config{}, err
	}

	envName := c.Coach.APIKeyEnv
	if envName == "" {
		envName = provider.DefaultAPIKeyEnv()
	}

	var timeout time.Duration
	if c.Coach.Timeout != "" {
		timeout, err = time.ParseDuration(c.Coach.Timeout)
		if err != nil {
			return coach.Config{}, fmt.Errorf("parse coach timeout: %w", err)
		}
	}

	ttl, err := c.RedisTTL()
	if err != nil {
		return coach.Config{}, err
	}

	return coach.Config{
		Provider: provider,
		BaseURL:  c.Coach.BaseURL,
		Model:    c.Coach.Model,
		APIKey:   os.Getenv(envName),
		Timeout:  timeout,
		CacheTTL: ttl,
	}, nil
}

// RedisTTL returns the cache TTL, zero meaning the coach default.
func (c *Config) RedisTTL() (time.Duration, error) {
	if c.Redis.TTL == "" {
		return 0, nil
	}
	ttl, err := time.ParseDuration(c.Redis.TTL)
	if err != nil {
		return 0, fmt.Errorf("parse redis ttl: %w", err)
	}
	return ttl, nil
}

// NewCoach builds a coach client, attaching the Redis cache when configured.
func (c *Config) NewCoach(logger *zap.Logger) (*coach.Client, error) {
	settings, err := c.CoachSettings()
	if err != nil {
		return nil, err
	}
	var cache coach.Cache
	if c.Redis.Addr != "" {
		cache = coach.NewRedisCache(c.Redis.Addr)
	}
	return coach.New(settings, cache, logger), nil
}

// Validate checks enumerated fields.
func (c *Config) Validate() error {
	backend := c.GetBackend()
	known := false
	for _, b := range Backends {
		if b == backend {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("unknown backend: %q", backend)
	}
	if _, err := analyzer.ParseMode(c.Mode); err != nil {
		return err
	}
	if c.Window < 0 {
		return fmt.Errorf("window must be positive, got %d", c.Window)
	}
	if _, err := c.CoachSettings(); err != nil {
		return err
	}
	return nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenStorage creates a Repository implementation based on the configured backend.
func (c *Config) OpenStorage(logger *zap.Logger) (storage.Repository, error) {
	return c.OpenBackend(c.GetBackend(), logger)
}

// OpenBackend opens the named backend using this config's locations.
func (c *Config) OpenBackend(backend string, logger *zap.Logger) (storage.Repository, error) {
	dataDir := c.GetDataDir()

	switch backend {
	case "sqlite":
		return storage.Open(filepath.Join(dataDir, "fitlog.db"))
	case "postgres":
		return storage.OpenPostgres(c.PostgresDSN)
	case "json":
		return storage.NewJSONStore(filepath.Join(dataDir, "records.json"), logger)
	case "csv":
		return storage.NewCSVStore(filepath.Join(dataDir, "records.csv"), logger)
	case "charm":
		return charm.InitClient()
	default:
		return nil, fmt.Errorf("unknown backend: %q", backend)
	}
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "fitlog", "config.json")
}

// LoadEnv loads a .env file from the working directory when present.
// Variables already set in the environment win.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	var existing []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	return godotenv.Load(existing...)
}

// Load reads config from disk.
func Load() (*Config, error) {
	return LoadFrom(GetConfigPath())
}

// LoadFrom reads config from path. A missing file yields defaults.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
