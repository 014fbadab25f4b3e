package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

type GlobalConfig struct {
	// DataDir overrides where the workshop database lives (default: <config dir>/data).
	DataDir string `json:"dataDir,omitempty"`

	// LastWorkshopID is reopened when the editor starts without an explicit workshop.
	LastWorkshopID string `json:"lastWorkshopId,omitempty"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `json:"logLevel,omitempty"`

	// TUI holds optional user preferences for the interactive editor.
	TUI *TUIConfig `json:"tui,omitempty"`
}

type TUIConfig struct {
	// Glyphs selects the glyph set ("unicode", "ascii").
	Glyphs string `json:"glyphs,omitempty"`
	// RowsPerHour scales the day columns (default 12, i.e. one row per 5 minutes).
	RowsPerHour int `json:"rowsPerHour,omitempty"`
}

func ConfigDir() (string, error) {
	// Test/advanced override (keeps unit tests from touching ~/.workshop-planner).
	if v := strings.TrimSpace(os.Getenv("PLANNER_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".workshop-planner"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// DataDir resolves the database directory: explicit override, then config, then default.
func DataDir(override string, cfg *GlobalConfig) (string, error) {
	if v := strings.TrimSpace(override); v != "" {
		return v, nil
	}
	if cfg != nil && strings.TrimSpace(cfg.DataDir) != "" {
		return cfg.DataDir, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "data"), nil
}

func LoadConfig() (*GlobalConfig, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &GlobalConfig{}, nil
		}
		return nil, err
	}
	var cfg GlobalConfig
	if err := json.Unmarshal(b, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func SaveConfig(cfg *GlobalConfig) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	// Keep a copy of the previous config so an accidental overwrite can be recovered.
	if prev, err := os.ReadFile(path); err == nil && len(prev) > 0 {
		_ = atomicWriteFile(dir, "config.json.bak.*.tmp", path+".bak", prev, 0o644)
	}
	return atomicWriteFile(dir, "config.json.*.tmp", path, b, 0o600)
}

// RememberWorkshop records id as the last opened workshop.
func RememberWorkshop(id string) error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	if cfg.LastWorkshopID == id {
		return nil
	}
	cfg.LastWorkshopID = id
	return SaveConfig(cfg)
}
