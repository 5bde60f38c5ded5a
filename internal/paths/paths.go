// Package paths locates the randomizer's config and data directories.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

const appDirName = "randomizer"

// Directory overrides read from the environment.
const (
	EnvConfigDir = "RANDOMIZER_CONFIG_DIR"
	EnvDataDir   = "RANDOMIZER_DATA_DIR"
)

// platformDir is swapped out by tests.
var platformDir = struct {
	goos          string
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	goos:          runtime.GOOS,
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultConfigDir is $XDG_CONFIG_HOME/randomizer on Linux (~/.config when
// unset) and the OS user config dir elsewhere.
func DefaultConfigDir() (string, error) {
	return platformRoot("XDG_CONFIG_HOME", ".config")
}

// DefaultDataDir is $XDG_DATA_HOME/randomizer on Linux (~/.local/share when
// unset). macOS and Windows keep tables next to the config.
func DefaultDataDir() (string, error) {
	return platformRoot("XDG_DATA_HOME", filepath.Join(".local", "share"))
}

func platformRoot(xdgVar, homeRel string) (string, error) {
	if platformDir.goos != "linux" {
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, appDirName), nil
	}
	if xdg := os.Getenv(xdgVar); xdg != "" {
		return filepath.Join(xdg, appDirName), nil
	}
	home, err := platformDir.homeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, homeRel, appDirName), nil
}

// ResolveConfigDir: --config-dir, then RANDOMIZER_CONFIG_DIR, then the
// platform default.
func ResolveConfigDir(flag string) (string, error) {
	if dir := firstSet(flag, os.Getenv(EnvConfigDir)); dir != "" {
		return filepath.Abs(dir)
	}
	return DefaultConfigDir()
}

// ResolveDataDir: --data-dir, then data_dir from config.yaml, then
// RANDOMIZER_DATA_DIR, then the platform default.
func ResolveDataDir(flag, configYAMLValue string) (string, error) {
	if dir := firstSet(flag, configYAMLValue, os.Getenv(EnvDataDir)); dir != "" {
		return filepath.Abs(dir)
	}
	return DefaultDataDir()
}

func firstSet(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
