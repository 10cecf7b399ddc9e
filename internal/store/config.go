package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const configFileName = "config.json"

type GlobalConfig struct {
	// DataDir holds checklists.json and the SQLite files. Empty means the config dir.
	DataDir string `json:"dataDir,omitempty"`

	// Format is the default output format (json|edn|yaml|text).
	Format string `json:"format,omitempty"`

	// Locale selects collation rules for sorting checklist names (BCP 47, e.g. "sv").
	Locale string `json:"locale,omitempty"`

	// LogLevel is one of debug|info|warn|error.
	LogLevel string `json:"logLevel,omitempty"`

	// Glyphs selects the glyph set for text output (unicode|ascii).
	Glyphs string `json:"glyphs,omitempty"`

	// Color is auto|always|never for text output.
	Color string `json:"color,omitempty"`
}

var configKeys = map[string]func(*GlobalConfig) *string{
	"dataDir":  func(c *GlobalConfig) *string { return &c.DataDir },
	"format":   func(c *GlobalConfig) *string { return &c.Format },
	"locale":   func(c *GlobalConfig) *string { return &c.Locale },
	"logLevel": func(c *GlobalConfig) *string { return &c.LogLevel },
	"glyphs":   func(c *GlobalConfig) *string { return &c.Glyphs },
	"color":    func(c *GlobalConfig) *string { return &c.Color },
}

func ConfigKeys() []string {
	out := make([]string, 0, len(configKeys))
	for k := range configKeys {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Set assigns a config value by its json key.
func (c *GlobalConfig) Set(key, value string) error {
	f, ok := configKeys[key]
	if !ok {
		return fmt.Errorf("unknown config key %q (known: %s)", key, strings.Join(ConfigKeys(), ", "))
	}
	*f(c) = strings.TrimSpace(value)
	return nil
}

func ConfigDir() (string, error) {
	// Test/advanced override (keeps unit tests from touching ~/.checklists).
	if v := strings.TrimSpace(os.Getenv("CHECKLISTS_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".checklists"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
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
		return nil, ioErr("read", path, err)
	}
	var cfg GlobalConfig
	if err := json.Unmarshal(b, &cfg); err != nil {
		return nil, corrupt(path, "decode config", err)
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
		return ioErr("mkdir", dir, err)
	}
	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	// Keep a copy of the previous config to make recovery from accidental overwrites easier.
	_ = backupFile(path, path+".bak")

	if err := atomicWriteFile(path, configFileName+".*.tmp", b, 0o600); err != nil {
		return ioErr("write", path, err)
	}
	return nil
}

// ResolveDataDir picks the data directory: explicit value, then config, then
// the config dir itself.
func ResolveDataDir(explicit string, cfg *GlobalConfig) (string, error) {
	if d := strings.TrimSpace(explicit); d != "" {
		return d, nil
	}
	if cfg != nil && strings.TrimSpace(cfg.DataDir) != "" {
		return strings.TrimSpace(cfg.DataDir), nil
	}
	return ConfigDir()
}
