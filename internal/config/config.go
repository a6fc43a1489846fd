package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/rohankatakam/git-hours/internal/errors"
	"github.com/rohankatakam/git-hours/internal/temporal"
)

// EnvPrefix is the prefix for environment overrides, e.g. GIT_HOURS_ESTIMATE_MAX_COMMIT_DIFF
const EnvPrefix = "GIT_HOURS"

// DirName is the per-project and per-user configuration directory
const DirName = ".git-hours"

// Config holds all configuration settings
type Config struct {
	Repo      RepoConfig      `mapstructure:"repo" yaml:"repo"`
	Estimate  EstimateConfig  `mapstructure:"estimate" yaml:"estimate"`
	Traversal TraversalConfig `mapstructure:"traversal" yaml:"traversal"`
	Output    OutputConfig    `mapstructure:"output" yaml:"output"`
	Log       LogConfig       `mapstructure:"log" yaml:"log"`
}

type RepoConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

// EstimateConfig holds the session thresholds in minutes
type EstimateConfig struct {
	MaxCommitDiff  int `mapstructure:"max_commit_diff" yaml:"max_commit_diff"`
	FirstCommitAdd int `mapstructure:"first_commit_add" yaml:"first_commit_add"`
}

type TraversalConfig struct {
	MergeCommits bool   `mapstructure:"merge_commits" yaml:"merge_commits"`
	Branch       string `mapstructure:"branch" yaml:"branch"`
}

type OutputConfig struct {
	Format string `mapstructure:"format" yaml:"format"` // "text", "json", "yaml"
	Sort   string `mapstructure:"sort" yaml:"sort"`     // "hours", "commits"
}

type LogConfig struct {
	Level      string `mapstructure:"level" yaml:"level"`
	Format     string `mapstructure:"format" yaml:"format"` // "text", "json"
	File       string `mapstructure:"file" yaml:"file"`
	MaxSize    int64  `mapstructure:"max_size" yaml:"max_size"` // bytes before rotation
	MaxBackups int    `mapstructure:"max_backups" yaml:"max_backups"`
}

// Default returns default configuration
func Default() *Config {
	session := temporal.DefaultSessionConfig()
	return &Config{
		Repo: RepoConfig{
			Path: ".",
		},
		Estimate: EstimateConfig{
			MaxCommitDiff:  int(session.MaxCommitDiff.Minutes()),
			FirstCommitAdd: int(session.FirstCommitAdd.Minutes()),
		},
		Traversal: TraversalConfig{
			MergeCommits: true,
		},
		Output: OutputConfig{
			Format: "text",
			Sort:   "hours",
		},
		Log: LogConfig{
			Level:      "warn",
			Format:     "text",
			MaxSize:    10 * 1024 * 1024, // 10MB
			MaxBackups: 3,
		},
	}
}

// SessionConfig converts the minute thresholds for the estimator
func (c *Config) SessionConfig() temporal.SessionConfig {
	return temporal.SessionConfig{
		MaxCommitDiff:  time.Duration(c.Estimate.MaxCommitDiff) * time.Minute,
		FirstCommitAdd: time.Duration(c.Estimate.FirstCommitAdd) * time.Minute,
	}
}

// flagKeys maps configuration keys to the command-line flags that override them
var flagKeys = map[string]string{
	"repo.path":                 "path",
	"estimate.max_commit_diff":  "max-commit-diff",
	"estimate.first_commit_add": "first-commit-add",
	"traversal.merge_commits":   "merge-commits",
	"traversal.branch":          "branch",
	"output.format":             "format",
	"output.sort":               "sort",
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("repo.path", cfg.Repo.Path)
	v.SetDefault("estimate.max_commit_diff", cfg.Estimate.MaxCommitDiff)
	v.SetDefault("estimate.first_commit_add", cfg.Estimate.FirstCommitAdd)
	v.SetDefault("traversal.merge_commits", cfg.Traversal.MergeCommits)
	v.SetDefault("traversal.branch", cfg.Traversal.Branch)
	v.SetDefault("output.format", cfg.Output.Format)
	v.SetDefault("output.sort", cfg.Output.Sort)
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.format", cfg.Log.Format)
	v.SetDefault("log.file", cfg.Log.File)
	v.SetDefault("log.max_size", cfg.Log.MaxSize)
	v.SetDefault("log.max_backups", cfg.Log.MaxBackups)
}

// Load resolves configuration from, lowest precedence first: defaults, a config file,
// .env files, GIT_HOURS_* environment variables and flags that were set on the command
// line. flags may be nil. An explicit path that cannot be read is an error; a missing
// file in the search locations is not.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	loadEnvFiles()

	v := viper.New()
	v.SetConfigType("yaml")

	cfg := Default()
	setDefaults(v, cfg)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for key, name := range flagKeys {
			flag := flags.Lookup(name)
			if flag == nil {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return nil, errors.ConfigError(err, fmt.Sprintf("failed to bind flag --%s", name))
			}
		}
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(DirName)
		if homeDir, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(homeDir, DirName))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errors.ConfigError(err, "failed to read config").WithContext("path", path)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.ConfigError(err, "failed to unmarshal config")
	}

	cfg.Repo.Path = expandPath(cfg.Repo.Path)
	cfg.Log.File = expandPath(cfg.Log.File)

	return cfg, nil
}

// loadEnvFiles loads .env files in order of precedence. godotenv never overrides a
// variable that is already set, so earlier files win.
func loadEnvFiles() {
	for _, file := range []string{".env.local", ".env"} {
		if _, err := os.Stat(file); err == nil {
			_ = godotenv.Load(file)
		}
	}

	homeDir, _ := os.UserHomeDir()
	homeEnvFile := filepath.Join(homeDir, DirName, ".env")
	if _, err := os.Stat(homeEnvFile); err == nil {
		_ = godotenv.Load(homeEnvFile)
	}
}

// expandPath expands ~ to home directory
func expandPath(path string) string {
	if path == "" {
		return path
	}
	if path == "~" || strings.HasPrefix(path, "~/") {
		homeDir, _ := os.UserHomeDir()
		return filepath.Join(homeDir, path[1:])
	}
	return path
}

// Save writes the configuration as YAML to path
func (c *Config) Save(path string) error {
	v := viper.New()
	v.SetConfigType("yaml")

	v.Set("repo", map[string]any{"path": c.Repo.Path})
	v.Set("estimate", map[string]any{
		"max_commit_diff":  c.Estimate.MaxCommitDiff,
		"first_commit_add": c.Estimate.FirstCommitAdd,
	})
	v.Set("traversal", map[string]any{
		"merge_commits": c.Traversal.MergeCommits,
		"branch":        c.Traversal.Branch,
	})
	v.Set("output", map[string]any{
		"format": c.Output.Format,
		"sort":   c.Output.Sort,
	})
	v.Set("log", map[string]any{
		"level":       c.Log.Level,
		"format":      c.Log.Format,
		"file":        c.Log.File,
		"max_size":    c.Log.MaxSize,
		"max_backups": c.Log.MaxBackups,
	})

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.FileSystemError(err, "failed to create config directory")
	}

	if err := v.WriteConfigAs(path); err != nil {
		return errors.FileSystemError(err, "failed to write config")
	}

	return nil
}
