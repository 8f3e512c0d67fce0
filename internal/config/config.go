package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/andy/invoicedesk/internal/listview"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes environment overrides, e.g. INVOICEDESK_LIST_DEBOUNCE_MS
const EnvPrefix = "INVOICEDESK"

type Config struct {
	// Database settings
	Database DatabaseConfig `yaml:"database" mapstructure:"database"`

	// Invoice list screen
	List ListConfig `yaml:"list" mapstructure:"list"`

	// PDF downloads
	Export ExportConfig `yaml:"export" mapstructure:"export"`

	Logging LoggingConfig `yaml:"logging" mapstructure:"logging"`
}

type DatabaseConfig struct {
	Path string `yaml:"path" mapstructure:"path"` // Path to SQLite database
}

type ListConfig struct {
	DefaultPageSize         int  `yaml:"default_page_size" mapstructure:"default_page_size"`                   // 10, 25 or 50
	DebounceMS              int  `yaml:"debounce_ms" mapstructure:"debounce_ms"`                               // Delay before a search is sent
	ResetPageOnFilterChange bool `yaml:"reset_page_on_filter_change" mapstructure:"reset_page_on_filter_change"` // Go back to page 1 when filters change
}

type ExportConfig struct {
	OutputDir string `yaml:"output_dir" mapstructure:"output_dir"` // Directory for downloaded PDFs
}

type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // console or json
	Path   string `yaml:"path" mapstructure:"path"`     // Log file; the TUI owns the terminal
}

// Debounce returns the search debounce as a duration
func (l ListConfig) Debounce() time.Duration {
	return time.Duration(l.DebounceMS) * time.Millisecond
}

func baseDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home dir unavailable
		homeDir = "."
	}
	return filepath.Join(homeDir, ".config", "invoicedesk")
}

// DefaultConfigPath returns ~/.config/invoicedesk/config.yaml
func DefaultConfigPath() string {
	return filepath.Join(baseDir(), "config.yaml")
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	dir := baseDir()
	return &Config{
		Database: DatabaseConfig{
			Path: filepath.Join(dir, "invoicedesk.db"),
		},
		List: ListConfig{
			DefaultPageSize:         listview.DefaultPageSize,
			DebounceMS:              250,
			ResetPageOnFilterChange: true,
		},
		Export: ExportConfig{
			OutputDir: filepath.Join(dir, "invoices"),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
			Path:   filepath.Join(dir, "invoicedesk.log"),
		},
	}
}

// NewViper returns a viper instance seeded with the defaults and wired to
// INVOICEDESK_* environment variables. Callers may bind flags before Load.
func NewViper() *viper.Viper {
	v := viper.New()
	d := DefaultConfig()
	v.SetDefault("database.path", d.Database.Path)
	v.SetDefault("list.default_page_size", d.List.DefaultPageSize)
	v.SetDefault("list.debounce_ms", d.List.DebounceMS)
	v.SetDefault("list.reset_page_on_filter_change", d.List.ResetPageOnFilterChange)
	v.SetDefault("export.output_dir", d.Export.OutputDir)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.path", d.Logging.Path)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load loads config from the given path, or returns defaults (plus any
// environment overrides) if the file doesn't exist
func Load(path string) (*Config, error) {
	return LoadWith(NewViper(), path)
}

// LoadWith reads path into v and decodes the merged result
func LoadWith(v *viper.Viper, path string) (*Config, error) {
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDefault loads from the default config path
func LoadDefault() (*Config, error) {
	return Load(DefaultConfigPath())
}

// Validate rejects values the list screen and logger cannot use
func (c *Config) Validate() error {
	if c.Database.Path == "" {
		return errors.New("database.path is required")
	}
	if !slices.Contains(listview.PageSizes, c.List.DefaultPageSize) {
		return fmt.Errorf("list.default_page_size must be one of %v, got %d", listview.PageSizes, c.List.DefaultPageSize)
	}
	if c.List.DebounceMS < 0 {
		return fmt.Errorf("list.debounce_ms must not be negative, got %d", c.List.DebounceMS)
	}
	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	return nil
}

// Save writes the config to the given path
func (c *Config) Save(path string) error {
	// Create parent directories if they don't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// EnsureDirectories creates all necessary directories (database, exports, logs)
func (c *Config) EnsureDirectories() error {
	dirs := []string{
		filepath.Dir(c.Database.Path),
		c.Export.OutputDir,
	}
	if c.Logging.Path != "" {
		dirs = append(dirs, filepath.Dir(c.Logging.Path))
	}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0755); err != nil {
			return err
		}
	}
	return nil
}
