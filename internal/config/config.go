package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/idilsaglam/tasktools/internal/logging"
	"github.com/idilsaglam/tasktools/internal/organizer"
	"github.com/idilsaglam/tasktools/internal/store/taskfile"
	"github.com/idilsaglam/tasktools/internal/ui"
)

const (
	// UserConfigName is looked up under the OS user config directory.
	UserConfigName = "tasktools.toml"
	// ProjectConfigName is looked up in the working directory.
	ProjectConfigName = ".tasktools.toml"

	DefaultTheme    = "classic"
	DefaultLogLevel = "warn"
)

// Config holds settings for both tools.
type Config struct {
	TaskFile  string    `toml:"task_file"`
	Theme     string    `toml:"theme"`
	LogLevel  string    `toml:"log_level"`
	Organizer Organizer `toml:"organizer"`

	// Files lists the config files that were applied, in order.
	Files []string `toml:"-"`
}

// Organizer holds organize-specific settings.
type Organizer struct {
	OnConflict string `toml:"on_conflict"`
}

// Overrides carries flag values; empty fields are ignored.
type Overrides struct {
	TaskFile   string
	Theme      string
	LogLevel   string
	OnConflict string
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		TaskFile: taskfile.DefaultFileName,
		Theme:    DefaultTheme,
		LogLevel: DefaultLogLevel,
		Organizer: Organizer{
			OnConflict: string(organizer.ConflictSkip),
		},
	}
}

// Load applies defaults, then the config file(s), then environment
// variables, then overrides, and validates the result. When path is set
// only that file is read and it must exist; otherwise the user and
// project files are read if present.
func Load(path string, ov Overrides) (*Config, error) {
	cfg := Default()

	files, err := configFiles(path)
	if err != nil {
		return nil, err
	}
	for _, f := range files {
		if err := decodeFile(&cfg, f); err != nil {
			return nil, err
		}
		cfg.Files = append(cfg.Files, f)
	}

	loadFromEnv(&cfg)
	cfg.apply(ov)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func configFiles(explicit string) ([]string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return nil, fmt.Errorf("config file: %w", err)
		}
		return []string{explicit}, nil
	}
	var files []string
	if dir, err := os.UserConfigDir(); err == nil {
		p := filepath.Join(dir, "tasktools", UserConfigName)
		if _, err := os.Stat(p); err == nil {
			files = append(files, p)
		}
	}
	if _, err := os.Stat(ProjectConfigName); err == nil {
		files = append(files, ProjectConfigName)
	}
	return files, nil
}

func decodeFile(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("loading config file %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return fmt.Errorf("loading config file %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return nil
}

// loadFromEnv overrides config from environment variables.
func loadFromEnv(cfg *Config) {
	if v := os.Getenv("TASKTOOLS_TASK_FILE"); v != "" {
		cfg.TaskFile = v
	}
	if v := os.Getenv("TASKTOOLS_THEME"); v != "" {
		cfg.Theme = v
	}
	if v := os.Getenv("TASKTOOLS_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("TASKTOOLS_ON_CONFLICT"); v != "" {
		cfg.Organizer.OnConflict = v
	}
}

func (c *Config) apply(ov Overrides) {
	if ov.TaskFile != "" {
		c.TaskFile = ov.TaskFile
	}
	if ov.Theme != "" {
		c.Theme = ov.Theme
	}
	if ov.LogLevel != "" {
		c.LogLevel = ov.LogLevel
	}
	if ov.OnConflict != "" {
		c.Organizer.OnConflict = ov.OnConflict
	}
}

// Validate rejects unknown enum values and an empty task file.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.TaskFile) == "" {
		errs = append(errs, errors.New("task_file: must not be empty"))
	}
	if !ui.ValidTheme(c.Theme) {
		errs = append(errs, fmt.Errorf("theme: unknown value %q", c.Theme))
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}
	if _, err := organizer.ParseConflictPolicy(c.Organizer.OnConflict); err != nil {
		errs = append(errs, fmt.Errorf("organizer.on_conflict: %w", err))
	}
	return errors.Join(errs...)
}

// ConflictPolicy returns the parsed organizer collision policy.
func (c *Config) ConflictPolicy() organizer.ConflictPolicy {
	p, _ := organizer.ParseConflictPolicy(c.Organizer.OnConflict)
	return p
}
