// Package config handles loading tasks.toml configuration files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/amonks/tasks/internal/paths"
	"github.com/amonks/tasks/task"
)

// Environment variables that override file settings.
const (
	EnvFile         = "TASKS_FILE"
	EnvSMTPPassword = "TASKS_SMTP_PASSWORD"
)

// DefaultStorageFile is used when no storage file is configured.
const DefaultStorageFile = task.DefaultStorageFile

// Config represents the tasks.toml configuration file.
type Config struct {
	Storage Storage `toml:"storage"`
	SMTP    SMTP    `toml:"smtp"`
	Report  Report  `toml:"report"`
}

// Storage locates the task file.
type Storage struct {
	// File is the JSON task file, relative to the working directory.
	File string `toml:"file"`
}

// SMTP configures outgoing email. Empty fields fall back to the notifier's
// defaults.
type SMTP struct {
	Host     string        `toml:"host"`
	Port     int           `toml:"port"`
	Username string        `toml:"username"`
	Password string        `toml:"password"`
	From     string        `toml:"from"`
	Timeout  time.Duration `toml:"timeout"`
}

// Report configures report rendering.
type Report struct {
	// Width is the markdown wrap width. Zero means the terminal width.
	Width int `toml:"width"`
}

// Load loads configuration from dir's tasks.toml and the global config
// file, then applies environment overrides. Missing files are not errors.
func Load(dir string) (*Config, error) {
	globalPath, err := paths.GlobalConfigFile()
	if err != nil {
		return nil, err
	}

	globalCfg, _, err := loadConfigFile(globalPath)
	if err != nil {
		return nil, err
	}

	projectCfg, projectMeta, err := loadConfigFile(filepath.Join(dir, paths.ProjectConfigFile))
	if err != nil {
		return nil, err
	}

	merged := mergeConfigs(globalCfg, projectCfg, projectMeta)
	applyEnv(merged)
	if merged.Storage.File == "" {
		merged.Storage.File = DefaultStorageFile
	}
	return merged, nil
}

func loadConfigFile(path string) (*Config, toml.MetaData, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, toml.MetaData{}, nil
	}
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("read config file %s: %w", path, err)
	}

	var cfg Config
	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("parse config file %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, toml.MetaData{}, fmt.Errorf("parse config file %s: unknown key %s", path, undecoded[0])
	}

	return &cfg, meta, nil
}

func mergeConfigs(globalCfg, projectCfg *Config, projectMeta toml.MetaData) *Config {
	defined := func(section, key string) bool {
		return projectMeta.IsDefined(section, key)
	}

	merged := Config{}
	merged.Storage.File = mergeString(defined("storage", "file"), projectCfg.Storage.File, globalCfg.Storage.File)
	merged.SMTP.Host = mergeString(defined("smtp", "host"), projectCfg.SMTP.Host, globalCfg.SMTP.Host)
	merged.SMTP.Port = mergeValue(defined("smtp", "port"), projectCfg.SMTP.Port, globalCfg.SMTP.Port)
	merged.SMTP.Username = mergeString(defined("smtp", "username"), projectCfg.SMTP.Username, globalCfg.SMTP.Username)
	merged.SMTP.Password = mergeValue(defined("smtp", "password"), projectCfg.SMTP.Password, globalCfg.SMTP.Password)
	merged.SMTP.From = mergeString(defined("smtp", "from"), projectCfg.SMTP.From, globalCfg.SMTP.From)
	merged.SMTP.Timeout = mergeValue(defined("smtp", "timeout"), projectCfg.SMTP.Timeout, globalCfg.SMTP.Timeout)
	merged.Report.Width = mergeValue(defined("report", "width"), projectCfg.Report.Width, globalCfg.Report.Width)
	return &merged
}

func mergeString(projectDefined bool, projectValue, globalValue string) string {
	return strings.TrimSpace(mergeValue(projectDefined, projectValue, globalValue))
}

func mergeValue[T any](projectDefined bool, projectValue, globalValue T) T {
	if projectDefined {
		return projectValue
	}
	return globalValue
}

func applyEnv(cfg *Config) {
	if file := strings.TrimSpace(os.Getenv(EnvFile)); file != "" {
		cfg.Storage.File = file
	}
	if password, ok := os.LookupEnv(EnvSMTPPassword); ok {
		cfg.SMTP.Password = password
	}
}
