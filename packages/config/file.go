package config

import (
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// FileConfig holds defaults loaded from the optional config file. Every
// field can be overridden by its CLI flag.
type FileConfig struct {
	Proxy      string            `yaml:"proxy,omitempty"`
	Timeout    string            `yaml:"timeout,omitempty"` // duration string, e.g. 30s
	NoColor    *bool             `yaml:"noColor,omitempty"`
	Insecure   *bool             `yaml:"insecure,omitempty"`
	CookieFile string            `yaml:"cookieFile,omitempty"`
	Headers    map[string]string `yaml:"headers,omitempty"` // default headers for all requests
}

// getBool returns the value of a bool pointer, or the default if nil
func getBool(b *bool, defaultVal bool) bool {
	if b == nil {
		return defaultVal
	}
	return *b
}

// GetNoColor returns the no color setting, defaulting to false
func (c *FileConfig) GetNoColor() bool {
	return getBool(c.NoColor, false)
}

// GetInsecure returns the insecure setting, defaulting to false
func (c *FileConfig) GetInsecure() bool {
	return getBool(c.Insecure, false)
}

// ConfigFileName is the file looked up under the config home.
const ConfigFileName = "hit.yaml"

// ConfigHome resolves the per-user configuration directory from
// platform-specific environment variables.
func ConfigHome() string {
	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "hit")
		}
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "hit")
	}
	if home := os.Getenv("HOME"); home != "" {
		return filepath.Join(home, ".config", "hit")
	}
	return ""
}

// LoadFile reads a YAML config file. A missing file yields an empty config
// with no error; a malformed file is an error.
func LoadFile(path string) (*FileConfig, error) {
	cfg := &FileConfig{}

	if path == "" {
		home := ConfigHome()
		if home == "" {
			return cfg, nil
		}
		path = filepath.Join(home, ConfigFileName)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
