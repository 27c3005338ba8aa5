// Package paths locates the per-user and per-project files the CLI reads.
package paths

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
)

// ProjectConfigFile is the name of the per-directory config file.
const ProjectConfigFile = "tasks.toml"

// HomeDir returns the current user's home directory.
func HomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return home, nil
}

// WorkingDir returns the current working directory.
func WorkingDir() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	return dir, nil
}

// DefaultConfigDir returns ~/.config/tasks.
func DefaultConfigDir() (string, error) {
	home, err := HomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "tasks"), nil
}

// GlobalConfigFile returns ~/.config/tasks/config.toml.
func GlobalConfigFile() (string, error) {
	dir, err := DefaultConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ResolveWithDefault returns override when set, otherwise the result of
// defaultFn.
func ResolveWithDefault(override string, defaultFn func() (string, error)) (string, error) {
	if override != "" {
		return override, nil
	}
	return defaultFn()
}

// HostFS returns the OS filesystem rooted at "/". Paths passed to it must
// go through HostPath first.
func HostFS() billy.Filesystem {
	return osfs.New(string(filepath.Separator))
}

// HostPath makes path absolute against the working directory so it can be
// used on HostFS, including paths that start with "..".
func HostPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", path, err)
	}
	return abs, nil
}
