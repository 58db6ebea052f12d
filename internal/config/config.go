// Package config loads the scanner configuration: user-level defaults from
// ~/.ciscan/config.yaml merged over built-in defaults, and per-repo
// settings from ./ciscan.yaml.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

type Config struct {
	Output    OutputConfig    `mapstructure:"output" json:"output"`
	Redaction RedactionConfig `mapstructure:"redaction" json:"redaction"`
	TUI       TUIConfig       `mapstructure:"tui" json:"tui"`
}

type OutputConfig struct {
	Dir string `mapstructure:"dir" json:"dir"`
}

type RedactionConfig struct {
	Enabled bool `mapstructure:"enabled" json:"enabled"`
}

type TUIConfig struct {
	Enabled bool `mapstructure:"enabled" json:"enabled"`
}

type RepoConfig struct {
	Runner  RunnerConfig `mapstructure:"runner" json:"runner"`
	Patches PatchConfig  `mapstructure:"patches" json:"patches"`
}

type RunnerConfig struct {
	Command string   `mapstructure:"command" json:"command"`
	Args    []string `mapstructure:"args" json:"args"`
}

type PatchConfig struct {
	Dir string `mapstructure:"dir" json:"dir"`
}

func Defaults() Config {
	return Config{
		Output:    OutputConfig{Dir: "diagnostics"},
		Redaction: RedactionConfig{Enabled: true},
		TUI:       TUIConfig{Enabled: true},
	}
}

func DefaultRepoConfig() RepoConfig {
	return RepoConfig{
		Runner:  RunnerConfig{Command: "pytest"},
		Patches: PatchConfig{Dir: "patches"},
	}
}

func Load(configPath string) (Config, RepoConfig, error) {
	userCfg := Defaults()
	repoCfg := DefaultRepoConfig()

	if err := loadUserConfig(configPath, &userCfg); err != nil {
		return Config{}, RepoConfig{}, err
	}
	if err := loadRepoConfig(&repoCfg); err != nil {
		return Config{}, RepoConfig{}, err
	}

	if userCfg.Output.Dir == "" {
		userCfg.Output.Dir = "diagnostics"
	}
	if repoCfg.Runner.Command == "" {
		repoCfg.Runner.Command = "pytest"
	}
	if repoCfg.Patches.Dir == "" {
		repoCfg.Patches.Dir = "patches"
	}

	return userCfg, repoCfg, nil
}

func loadUserConfig(configPath string, cfg *Config) error {
	path := configPath
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".ciscan", "config.yaml")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read user config: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to load user config: %w", err)
	}
	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("failed to parse user config: %w", err)
	}
	return nil
}

func loadRepoConfig(cfg *RepoConfig) error {
	path := filepath.Join(".", "ciscan.yaml")
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read repo config: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to load repo config: %w", err)
	}
	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("failed to parse repo config: %w", err)
	}
	return nil
}
