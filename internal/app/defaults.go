package app

import (
	"fmt"
	"os"
	"path/filepath"
)

// Defaults are the locations vcr uses when the config file does not say
// otherwise.
type Defaults struct {
	ConfigPath string // VCR_CONFIG_PATH, else ~/.config/vcr.toml
	BaseDir    string // VCR_HOME, else ~/.local/share/vcr
}

// GetDefaults resolves Defaults from the environment and the home directory.
func GetDefaults() (*Defaults, error) {
	configPath, err := fromEnvOrHome("VCR_CONFIG_PATH", ".config", "vcr.toml")
	if err != nil {
		return nil, err
	}
	baseDir, err := fromEnvOrHome("VCR_HOME", ".local", "share", "vcr")
	if err != nil {
		return nil, err
	}
	return &Defaults{ConfigPath: configPath, BaseDir: baseDir}, nil
}

func fromEnvOrHome(env string, rel ...string) (string, error) {
	if v := os.Getenv(env); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("%s is unset and the home directory is unknown: %w", env, err)
	}
	return filepath.Join(append([]string{home}, rel...)...), nil
}
