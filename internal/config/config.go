package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/alnah/go-mdrich/internal/fileutil"
	"github.com/alnah/go-mdrich/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
	ErrDuplicateRule   = errors.New("rule listed twice")
)

// Limits.
const (
	MaxRuleNameLength = 50
	MaxRules          = 64
	MaxTitleLength    = 200
	MaxPathLength     = 4096
	MaxWorkers        = 32
)

// appDir is the directory name under the user config directory.
const appDir = "go-mdrich"

// Config holds the settings shared by every command.
type Config struct {
	Transformers TransformersConfig `yaml:"transformers"`
	Capabilities CapabilitiesConfig `yaml:"capabilities"`
	HTML         HTMLConfig         `yaml:"html"`
	Workers      int                `yaml:"workers"` // 0 = one per CPU
}

// TransformersConfig selects and orders the markdown rules by name. Empty
// lists select the built-in defaults for that group.
type TransformersConfig struct {
	Elements    []string `yaml:"elements"`
	TextFormats []string `yaml:"textFormats"`
	TextMatches []string `yaml:"textMatches"`
}

// CapabilitiesConfig describes the pattern engine.
type CapabilitiesConfig struct {
	Lookbehind bool `yaml:"lookbehind"`
}

// HTMLConfig defines the HTML preview options.
type HTMLConfig struct {
	HardWraps *bool  `yaml:"hardWraps"` // nil = enabled
	Title     string `yaml:"title"`
	CSS       string `yaml:"css"` // Path to a stylesheet (empty = none)
}

// HardWrapsEnabled reports the effective hard wrap setting.
func (h HTMLConfig) HardWrapsEnabled() bool {
	return h.HardWraps == nil || *h.HardWraps
}

// IsDefault reports whether no rule group is customized.
func (t TransformersConfig) IsDefault() bool {
	return len(t.Elements) == 0 && len(t.TextFormats) == 0 && len(t.TextMatches) == 0
}

// Validate checks value ranges and lengths. Called automatically by
// LoadConfig, but available for configs built in code.
func (c *Config) Validate() error {
	groups := []struct {
		field string
		names []string
	}{
		{"transformers.elements", c.Transformers.Elements},
		{"transformers.textFormats", c.Transformers.TextFormats},
		{"transformers.textMatches", c.Transformers.TextMatches},
	}
	total := 0
	var seen []string
	for _, g := range groups {
		for i, name := range g.names {
			field := fmt.Sprintf("%s[%d]", g.field, i)
			if strings.TrimSpace(name) == "" {
				return fmt.Errorf("%w: %s: empty rule name", ErrInvalidValue, field)
			}
			if err := validateFieldLength(field, name, MaxRuleNameLength); err != nil {
				return err
			}
			if slices.Contains(seen, name) {
				return fmt.Errorf("%w: %s: %q", ErrDuplicateRule, field, name)
			}
			seen = append(seen, name)
		}
		total += len(g.names)
	}
	if total > MaxRules {
		return fmt.Errorf("%w: transformers: %d rules (max %d)", ErrInvalidValue, total, MaxRules)
	}

	if err := validateFieldLength("html.title", c.HTML.Title, MaxTitleLength); err != nil {
		return err
	}
	if err := validateFieldLength("html.css", c.HTML.CSS, MaxPathLength); err != nil {
		return err
	}

	if c.Workers < 0 || c.Workers > MaxWorkers {
		return fmt.Errorf("%w: workers: must be between 0 and %d, got %d", ErrInvalidValue, MaxWorkers, c.Workers)
	}
	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration used when no file is given:
// default rules, no lookbehind, hard wraps on, one worker per CPU.
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		if configPath, err = resolveConfigPath(nameOrPath); err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// resolveConfigPath searches for a config file by name, trying .yaml then
// .yml, first in the current directory and then in ~/.config/go-mdrich/.
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, appDir, name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
