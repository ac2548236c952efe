package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where commands look for the config when --config is not given
const DefaultPath = "assetkit.yaml"

type Config struct {
	// Layout
	DocumentRoot string `yaml:"document_root"`
	MediaDir     string `yaml:"media_dir"`
	BaseURL      string `yaml:"base_url"`
	Manifest     string `yaml:"manifest"`

	// Bundling
	AllowGzip bool `yaml:"allow_gzip"`
	MinifyCSS bool `yaml:"minify_css"`
	MinifyJS  bool `yaml:"minify_js"`

	// Packer
	JSEncoding   int  `yaml:"js_encoding"`
	JSBase62     bool `yaml:"js_base62"`
	JSShrinkVars bool `yaml:"js_shrink_vars"`

	// Split / join
	PieceSizeMB int `yaml:"piece_size_mb"`

	// Server
	ListenAddr string `yaml:"listen_addr"`
	Debug      bool   `yaml:"debug"`

	// Watch
	WatchDebounceMS int `yaml:"watch_debounce_ms"`

	// UI
	ColorTheme string `yaml:"color_theme"`
}

// DefaultConfig returns a Config struct with default values
func DefaultConfig() *Config {
	return &Config{
		DocumentRoot:    ".",
		MediaDir:        "media",
		BaseURL:         "/",
		Manifest:        "assets.yaml",
		AllowGzip:       false,
		MinifyCSS:       true,
		MinifyJS:        true,
		JSEncoding:      0,
		JSBase62:        false,
		JSShrinkVars:    true,
		PieceSizeMB:     10,
		ListenAddr:      "127.0.0.1:8080",
		Debug:           false,
		WatchDebounceMS: 500,
		ColorTheme:      "auto",
	}
}

// Load reads configuration from the specified file path
func Load(path string) (*Config, error) {
	// Start with default config
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		// If file doesn't exist, return default config (not an error)
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Apply defaults for essential values if missing
	if cfg.DocumentRoot == "" {
		cfg.DocumentRoot = "."
	}
	if cfg.MediaDir == "" {
		cfg.MediaDir = "media"
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "/"
	}
	if cfg.Manifest == "" {
		cfg.Manifest = "assets.yaml"
	}
	if cfg.PieceSizeMB <= 0 {
		cfg.PieceSizeMB = 10
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = "127.0.0.1:8080"
	}
	if cfg.WatchDebounceMS <= 0 {
		cfg.WatchDebounceMS = 500
	}
	if cfg.JSEncoding < 0 {
		cfg.JSEncoding = 0
	}

	if !isValidTheme(cfg.ColorTheme) {
		cfg.ColorTheme = "auto"
	}

	return cfg, nil
}

// Save persists the current configuration to the specified file path
func (c *Config) Save(path string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ResolvePath makes p relative to the directory holding the config file.
// Absolute paths are returned unchanged.
func ResolvePath(configPath, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(filepath.Dir(configPath), p)
}

func isValidTheme(theme string) bool {
	switch theme {
	case "auto", "dark", "light":
		return true
	}
	return false
}
