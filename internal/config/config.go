package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config represents the main configuration for vcr.
type Config struct {
	BaseDir    string            `toml:"base_dir"`
	LogDir     string            `toml:"log_dir"`
	Platforms  map[string]string `toml:"platforms"` // platform name -> folder suffix
	Rules      RulesConfig       `toml:"rules"`
	History    HistoryConfig     `toml:"history"`
	Filesystem FilesystemConfig  `toml:"filesystem"`
}

// RulesConfig switches individual rename rules on or off.
type RulesConfig struct {
	StripPrefix    bool `toml:"strip_prefix"`
	ReplaceImage   bool `toml:"replace_image"`
	IncreaseIndex  bool `toml:"increase_index"`
	CleanName      bool `toml:"clean_name"`
	AppendPlatform bool `toml:"append_platform"`
}

// HistoryConfig represents configuration for the run history store.
// This uses a tagged union pattern - the Type field determines which other fields are relevant.
type HistoryConfig struct {
	Type    string `toml:"type"`               // "sqlite" or "memory"
	DataDir string `toml:"data_dir,omitempty"` // only used for type=sqlite
}

// FilesystemConfig holds filesystem-related settings.
type FilesystemConfig struct {
	Ignore []string `toml:"ignore"`
}

// DefaultPlatforms maps the supported platforms to their folder suffix.
func DefaultPlatforms() map[string]string {
	return map[string]string{
		"Pluralsight": " [Pluralsight]",
		"Udemy":       " [Udemy]",
		"Coursera":    " [Coursera]",
		"LinkedIn":    " [LinkedIn Learning]",
	}
}

// NewConfig creates a Config with default settings rooted at baseDir.
func NewConfig(baseDir string) *Config {
	return &Config{
		BaseDir:   baseDir,
		LogDir:    filepath.Join(baseDir, "log"),
		Platforms: DefaultPlatforms(),
		Rules: RulesConfig{
			StripPrefix:    true,
			ReplaceImage:   true,
			AppendPlatform: true,
		},
		History: HistoryConfig{
			Type:    "sqlite",
			DataDir: baseDir,
		},
	}
}

// Set enables or disables the rule with the given config key.
func (r *RulesConfig) Set(name string, enabled bool) error {
	switch name {
	case "strip_prefix":
		r.StripPrefix = enabled
	case "replace_image":
		r.ReplaceImage = enabled
	case "increase_index":
		r.IncreaseIndex = enabled
	case "clean_name":
		r.CleanName = enabled
	case "append_platform":
		r.AppendPlatform = enabled
	default:
		return fmt.Errorf("unknown rule: %s", name)
	}
	return nil
}

// Validate checks that the config can be used for a run.
func (c *Config) Validate() error {
	if c.LogDir == "" {
		return fmt.Errorf("log_dir must be set")
	}
	if len(c.Platforms) == 0 {
		return fmt.Errorf("at least one platform must be configured")
	}
	switch c.History.Type {
	case "sqlite":
		if c.History.DataDir == "" {
			return fmt.Errorf("history data_dir must be set for sqlite history")
		}
	case "memory":
	default:
		return fmt.Errorf("unknown history type: %q", c.History.Type)
	}
	return nil
}

func (c *Config) clone() *Config {
	out := *c
	out.Platforms = make(map[string]string, len(c.Platforms))
	for k, v := range c.Platforms {
		out.Platforms[k] = v
	}
	out.Filesystem.Ignore = append([]string(nil), c.Filesystem.Ignore...)
	return &out
}

// Manager handles reading and writing configuration.
type Manager struct{}

// Read decodes a Config from the provided reader. Keys the input leaves out
// keep their value from base, which may be nil. When the input sets base_dir
// but not log_dir or history.data_dir, those follow the new base_dir.
func (m *Manager) Read(r io.Reader, base *Config) (*Config, error) {
	cfg := &Config{}
	if base != nil {
		cfg = base.clone()
	}

	md, err := toml.NewDecoder(r).Decode(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if md.IsDefined("base_dir") {
		if !md.IsDefined("log_dir") {
			cfg.LogDir = filepath.Join(cfg.BaseDir, "log")
		}
		if !md.IsDefined("history", "data_dir") {
			cfg.History.DataDir = cfg.BaseDir
		}
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown config key: %s", undecoded[0])
	}
	return cfg, nil
}

// Write encodes a Config to the provided writer.
func (m *Manager) Write(w io.Writer, cfg *Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// ReadFromFile reads a Config from the specified file path, filling missing
// keys from the defaults for baseDir.
func ReadFromFile(path string, baseDir string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	cfg, err := m.Read(f, NewConfig(baseDir))
	if err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}
	return cfg, nil
}

// Load reads the config at path, or returns the defaults for baseDir when
// no config file exists.
func Load(path string, baseDir string) (*Config, error) {
	cfg, err := ReadFromFile(path, baseDir)
	if errors.Is(err, fs.ErrNotExist) {
		return NewConfig(baseDir), nil
	}
	return cfg, err
}

// writeToFile writes a Config to the specified file path.
func writeToFile(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	if err := m.Write(f, cfg); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Init initializes a new config file at the specified path with the provided Config.
func Init(path string, cfg *Config) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := writeToFile(path, cfg); err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}
	return nil
}
