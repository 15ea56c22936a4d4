// Package config provides XDG path helpers.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

const appName = "tuicodon"

// XDGConfigHome returns the XDG config home or a default fallback.
func XDGConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}

// XDGStateHome returns the XDG state home or a default fallback.
func XDGStateHome() string {
	if v := os.Getenv("XDG_STATE_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".local", "state")
}

// DefaultTableDir returns the directory searched for named codon tables.
func DefaultTableDir() string {
	return filepath.Join(XDGConfigHome(), appName, "tables")
}

// DefaultConfigPath returns the default TOML config path.
func DefaultConfigPath() string {
	return filepath.Join(XDGConfigHome(), appName, "config.toml")
}

// DefaultLogPath returns the log file used when the drill runs full screen.
func DefaultLogPath() string {
	return filepath.Join(XDGStateHome(), appName, appName+".log")
}

// ResolveTablePath maps a table name to a file. Empty and "standard" select
// the built-in table and resolve to "". Values with a directory or an
// extension are used as given; bare names are looked up as JSON in
// DefaultTableDir.
func ResolveTablePath(name string) string {
	switch {
	case name == "" || name == "standard":
		return ""
	case strings.ContainsRune(name, filepath.Separator) || strings.ContainsRune(name, '/'):
		return name
	case filepath.Ext(name) != "":
		return name
	default:
		return filepath.Join(DefaultTableDir(), name+".json")
	}
}
