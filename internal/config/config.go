package config

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"time"

	"gopkg.in/yaml.v3"
)

// Progress display modes.
const (
	ProgressPlain   = "plain"
	ProgressSpinner = "spinner"
	ProgressNone    = "none"
)

var (
	themes        = []string{"latte", "frappe", "macchiato", "mocha"}
	progressModes = []string{ProgressPlain, ProgressSpinner, ProgressNone}
	logLevels     = []string{"debug", "info", "warn", "error"}
)

type Config struct {
	Theme          string        `yaml:"theme"`
	LogLevel       string        `yaml:"log_level"`
	GitBinary      string        `yaml:"git_binary"`
	Concurrency    int           `yaml:"concurrency"`
	CommandTimeout time.Duration `yaml:"command_timeout"`
	MaxFiles       int           `yaml:"max_files"`
	GroupByProject bool          `yaml:"group_by_project"`
	SkipUntracked  bool          `yaml:"skip_untracked"`
	Progress       string        `yaml:"progress"`
	CacheFile      string        `yaml:"cache_file"`
}

// LookPathFunc is the function signature for looking up executables.
type LookPathFunc func(name string) (string, error)

func DefaultConfig() Config {
	return Config{
		Theme:          "mocha",
		LogLevel:       "info",
		GitBinary:      "git",
		Concurrency:    1,
		MaxFiles:       5,
		GroupByProject: true,
		Progress:       ProgressPlain,
		CacheFile:      "git-ahead.cache",
	}
}

func Load() (Config, error) {
	return LoadFrom(getConfigPath())
}

// LoadFromDir reads config.yaml from dir.
func LoadFromDir(dir string) (Config, error) {
	return LoadFrom(filepath.Join(dir, "config.yaml"))
}

func LoadFrom(configPath string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parsing %s: %w", configPath, err)
	}

	if cfg.Theme == "" {
		cfg.Theme = "mocha"
	}
	if cfg.GitBinary == "" {
		cfg.GitBinary = "git"
	}
	if cfg.Progress == "" {
		cfg.Progress = ProgressPlain
	}

	return cfg, nil
}

// Validate reports the first invalid field.
func (c *Config) Validate() error {
	if !slices.Contains(themes, c.Theme) {
		return fmt.Errorf("unknown theme %q (want one of %v)", c.Theme, themes)
	}
	if c.LogLevel != "" && !slices.Contains(logLevels, c.LogLevel) {
		return fmt.Errorf("unknown log_level %q (want one of %v)", c.LogLevel, logLevels)
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("concurrency must not be negative, got %d", c.Concurrency)
	}
	if c.CommandTimeout < 0 {
		return fmt.Errorf("command_timeout must not be negative, got %s", c.CommandTimeout)
	}
	if c.MaxFiles < 1 {
		return fmt.Errorf("max_files must be at least 1, got %d", c.MaxFiles)
	}
	if !slices.Contains(progressModes, c.Progress) {
		return fmt.Errorf("unknown progress mode %q (want one of %v)", c.Progress, progressModes)
	}
	return nil
}

// ResolveGit returns the absolute path of the configured git binary.
func (c *Config) ResolveGit() (string, error) {
	return c.ResolveGitWith(exec.LookPath)
}

// ResolveGitWith resolves the git binary using the provided lookup function.
func (c *Config) ResolveGitWith(lookPath LookPathFunc) (string, error) {
	path, err := lookPath(c.GitBinary)
	if err != nil {
		return "", fmt.Errorf("git binary %q not found: %w", c.GitBinary, err)
	}
	return path, nil
}

func getConfigPath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// ConfigDir returns the default configuration directory.
func ConfigDir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "git-ahead")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".config", "git-ahead")
	}

	return filepath.Join(home, ".config", "git-ahead")
}
