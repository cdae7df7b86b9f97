package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure.
type Config struct {
	TargetBranch string       `json:"targetBranch" yaml:"targetBranch"`
	Engine       string       `json:"engine" yaml:"engine"` // "go-git" or "cli"
	Fixup        FixupConfig  `json:"fixup" yaml:"fixup"`
	Filters      FilterConfig `json:"filters" yaml:"filters"`
	Cache        CacheConfig  `json:"cache" yaml:"cache"`
	Log          LogConfig    `json:"log" yaml:"log"`
}

// FixupConfig holds options for folding staged changes.
type FixupConfig struct {
	IncludeUnstaged bool   `json:"includeUnstaged" yaml:"includeUnstaged"`
	Order           string `json:"order" yaml:"order"` // "oldest-first" or "newest-first"
}

// FilterConfig holds file path filtering options.
type FilterConfig struct {
	Include []string `json:"include" yaml:"include"`
	Exclude []string `json:"exclude" yaml:"exclude"`
}

// CacheConfig sizes the change-set cache.
type CacheConfig struct {
	Size int `json:"size" yaml:"size"`
}

// LogConfig holds logging options.
type LogConfig struct {
	Level string `json:"level" yaml:"level"`
}

// File names searched when no explicit path is given, in order.
var defaultFileNames = []string{".smartsquash.json", ".smartsquash.yaml", ".smartsquash.yml"}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		TargetBranch: "master",
		Engine:       "go-git",
		Fixup: FixupConfig{
			IncludeUnstaged: false,
			Order:           "oldest-first",
		},
		Filters: FilterConfig{
			Include: []string{},
			Exclude: []string{},
		},
		Cache: CacheConfig{
			Size: 4096,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Validate checks enumerated values and sizes.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.TargetBranch) == "" {
		return errors.New("targetBranch must not be empty")
	}
	switch c.Engine {
	case "go-git", "cli":
	default:
		return errors.Newf("unknown engine %q (want go-git or cli)", c.Engine)
	}
	switch c.Fixup.Order {
	case "oldest-first", "newest-first":
	default:
		return errors.Newf("unknown fixup order %q (want oldest-first or newest-first)", c.Fixup.Order)
	}
	if c.Cache.Size <= 0 {
		return errors.Newf("cache size must be positive, got %d", c.Cache.Size)
	}
	return nil
}

// LoadConfig loads configuration from a file, merging with defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = findDefaultFile()
	}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, errors.Wrapf(err, "read config %s", path)
	}

	if isYAML(path) {
		err = yaml.Unmarshal(data, cfg)
	} else {
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "parse config %s", path)
	}

	return cfg, nil
}

// SaveConfig saves configuration to a file. The format follows the file
// extension.
func SaveConfig(cfg *Config, path string) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(cfg)
	} else {
		data, err = json.MarshalIndent(cfg, "", "  ")
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func findDefaultFile() string {
	dirs := []string{"."}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		dirs = append(dirs, home)
	} else if envHome := os.Getenv("HOME"); envHome != "" {
		dirs = append(dirs, envHome)
	}

	for _, dir := range dirs {
		for _, name := range defaultFileNames {
			p := filepath.Join(dir, name)
			if _, err := os.Stat(p); err == nil {
				return p
			}
		}
	}
	return ""
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}
