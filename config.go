package main

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the effective editor configuration after defaults are applied.
type Config struct {
	TabWidth    int
	ColumnWidth int
	SoftWrap    bool
	LineNumbers bool
	Dictionary  string // path to a word list; empty disables spellcheck lookup there
}

// fileConfig mirrors the YAML file. Pointers distinguish "absent" from
// zero values so a partial config only overrides what it names.
type fileConfig struct {
	TabWidth    *int    `yaml:"tab_width"`
	ColumnWidth *int    `yaml:"column_width"`
	SoftWrap    *bool   `yaml:"soft_wrap"`
	LineNumbers *bool   `yaml:"line_numbers"`
	Dictionary  *string `yaml:"dictionary"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() Config {
	return Config{
		TabWidth:    4,
		ColumnWidth: DefaultColumnWidth,
		SoftWrap:    true,
		LineNumbers: false,
	}
}

// configPath returns the per-user config file location.
func configPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "weft", "config.yaml")
}

// LoadConfig reads the user config, falling back to defaults when the
// file is missing or broken. A parse error is reported but never fatal:
// a bad config line should not keep the editor from starting.
func LoadConfig() (Config, error) {
	path := configPath()
	if path == "" {
		return DefaultConfig(), nil
	}
	cfg, err := loadConfigFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return DefaultConfig(), err
	}
	return cfg, nil
}

// loadConfigFile parses one YAML config file over the defaults.
func loadConfigFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultConfig(), err
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return DefaultConfig(), err
	}

	cfg := DefaultConfig()
	if fc.TabWidth != nil && *fc.TabWidth >= 1 {
		cfg.TabWidth = *fc.TabWidth
	}
	if fc.ColumnWidth != nil && *fc.ColumnWidth >= MinColumnWidth {
		cfg.ColumnWidth = *fc.ColumnWidth
	}
	if fc.SoftWrap != nil {
		cfg.SoftWrap = *fc.SoftWrap
	}
	if fc.LineNumbers != nil {
		cfg.LineNumbers = *fc.LineNumbers
	}
	if fc.Dictionary != nil {
		cfg.Dictionary = *fc.Dictionary
	}
	return cfg, nil
}
