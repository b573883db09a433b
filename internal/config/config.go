package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the settings Vitrine needs to reach the storefront API
// and keep its local files.
type Config struct {
	APIBase    string
	DataDir    string
	PageSize   int
	DebounceMS int
}

const (
	defaultConfigPath = "~/.config/vitrine/config.toml"
	defaultDataDir    = "~/.local/share/vitrine"
	defaultAPIBase    = "http://127.0.0.1:4000"
	defaultPageSize   = 12
	defaultDebounceMS = 400
)

// Load locates and parses the config file, falling back to defaults when
// missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		APIBase:    defaultAPIBase,
		DataDir:    defaultDataDir,
		PageSize:   defaultPageSize,
		DebounceMS: defaultDebounceMS,
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg.DataDir = mustExpand(defaultDataDir)
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIBase    string `toml:"api_base"`
		DataDir    string `toml:"data_dir"`
		PageSize   int    `toml:"page_size"`
		DebounceMS int    `toml:"debounce_ms"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.APIBase = strings.TrimSpace(raw.APIBase)
	if cfg.APIBase == "" {
		cfg.APIBase = defaultAPIBase
	}

	cfg.DataDir = strings.TrimSpace(raw.DataDir)
	if cfg.DataDir == "" {
		cfg.DataDir = defaultDataDir
	}
	cfg.DataDir = mustExpand(cfg.DataDir)

	if raw.PageSize > 0 {
		cfg.PageSize = raw.PageSize
	}
	if raw.DebounceMS > 0 {
		cfg.DebounceMS = raw.DebounceMS
	}

	return cfg, nil
}

// CartPath returns the cart storage file.
func (c Config) CartPath() string {
	return filepath.Join(c.dataDir(), "cart.json")
}

// SessionDir returns the directory holding the user and token files.
func (c Config) SessionDir() string {
	return c.dataDir()
}

// LogPath returns the application log file. The terminal belongs to the
// UI, so logs go to disk.
func (c Config) LogPath() string {
	return filepath.Join(c.dataDir(), "vitrine.log")
}

func (c Config) dataDir() string {
	if strings.TrimSpace(c.DataDir) == "" {
		return mustExpand(defaultDataDir)
	}
	return c.DataDir
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
