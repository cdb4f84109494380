package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/user"
	"path/filepath"

	"github.com/golang/glog"
)

// DefaultPath resolves the psi-notify config file location.
func DefaultPath() string {
	if base := os.Getenv("XDG_CONFIG_DIR"); base != "" {
		return filepath.Join(base, "psi-notify")
	}

	base := os.Getenv("HOME")
	if base == "" {
		if u, err := user.Current(); err == nil && u.HomeDir != "" {
			base = u.HomeDir
		} else {
			glog.Warningf("No $XDG_CONFIG_DIR, $HOME, or entry in /etc/passwd?")
			base = "/"
		}
	}
	return filepath.Join(base, ".config", "psi-notify")
}

// FileLoader builds a Config from the file at Path.
type FileLoader struct {
	Path string
}

// Load is used at startup. A missing or unreadable file yields Defaults.
func (l FileLoader) Load() (*Config, error) {
	f, err := os.Open(l.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			glog.Infof("No config at %s, using defaults", l.Path)
		} else {
			glog.Warningf("Using default config, cannot open %s: %s", l.Path, err.Error())
		}
		return Defaults(), nil
	}
	defer f.Close()

	cfg, err := parseFile(f)
	if err != nil {
		glog.Warningf("Using default config, %s", err.Error())
		return Defaults(), nil
	}
	return cfg, nil
}

// Reload is used when a config already exists. If the file cannot be
// opened an error is returned and the caller keeps its current config.
func (l FileLoader) Reload() (*Config, error) {
	f, err := os.Open(l.Path)
	if err != nil {
		return nil, fmt.Errorf("config reload request ignored, cannot open %s: %w", l.Path, err)
	}
	defer f.Close()

	return parseFile(f)
}

func parseFile(f *os.File) (*Config, error) {
	cfg := userFacingDefaults()
	if _, err := Parse(f, cfg); err != nil {
		return nil, fmt.Errorf("reading %s: %w", f.Name(), err)
	}
	return cfg, nil
}
