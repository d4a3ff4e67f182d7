package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/boiler/boiler/internal/value"
)

// FileConfig is the on-disk YAML configuration shape for boiler.
type FileConfig struct {
	// Comma-separated capability names.
	DisableDetectors *string `yaml:"disable_detectors"`
	DisableActions   *string `yaml:"disable_actions"`
	EnableDetectors  *string `yaml:"enable_detectors"`
	EnableActions    *string `yaml:"enable_actions"`

	// Overrides points at an override document replacing the bundled one.
	Overrides *string `yaml:"overrides"`
	NoColor   *bool   `yaml:"no_color"`
	Audit     *bool   `yaml:"audit"`

	// Context is applied over the detected context after any named
	// override. Only meaningful in a repo-local config.
	Context *value.Value `yaml:"context"`

	Updates *UpdatesConfig `yaml:"updates"`
}

// UpdatesConfig controls the release check done by `boiler version`.
type UpdatesConfig struct {
	// Check enables the release check. Defaults to true.
	Check *bool `yaml:"check"`

	// Repository is the GitHub "owner/name" releases are looked up in.
	Repository *string `yaml:"repository"`
}

// DefaultReleaseRepository is where boiler releases are published.
const DefaultReleaseRepository = "boiler/boiler"

// LoadFile reads a YAML config file from the provided path.
func LoadFile(path string) (FileConfig, error) {
	var cfg FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.Context != nil {
		switch cfg.Context.Kind() {
		case value.KindNull:
			cfg.Context = nil
		case value.KindObject:
		default:
			return FileConfig{}, fmt.Errorf("parse %s: context must be an object, got %s", path, cfg.Context.Kind())
		}
	}
	return cfg, nil
}

// ErrNotFound is returned by LoadLocal and LoadGlobal when there is no
// config file to load.
var ErrNotFound = errors.New("no config file")

// LocalNames are the repo-local config file names, in search order.
var LocalNames = []string{".boiler.yml", ".boiler.yaml", "boiler.yml", "boiler.yaml"}

// LoadLocal searches for a repo-local config file in the given root.
func LoadLocal(repoRoot string) (FileConfig, error) {
	var cfg FileConfig
	for _, name := range LocalNames {
		p := filepath.Join(repoRoot, name)
		if _, err := os.Stat(p); err == nil {
			return LoadFile(p)
		}
	}
	return cfg, fmt.Errorf("no local config in %s: %w", repoRoot, ErrNotFound)
}

// Dir returns the boiler directory under XDG_CONFIG_HOME or ~/.config.
func Dir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		if home != "" {
			base = filepath.Join(home, ".config")
		}
	}
	if base == "" {
		return "", errors.New("no config dir")
	}
	return filepath.Join(base, "boiler"), nil
}

// ReadState reads a file boiler keeps for itself in Dir, such as the release
// check cache.
func ReadState(name string) ([]byte, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}
	return os.ReadFile(filepath.Join(dir, name))
}

// WriteState writes a file into Dir, creating the directory if needed. State
// files are private to the user.
func WriteState(name string, data []byte) error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, name), data, 0o600)
}

// LoadGlobal loads the global config file from XDG base directory or ~/.config.
func LoadGlobal() (FileConfig, error) {
	var cfg FileConfig
	dir, err := Dir()
	if err != nil {
		return cfg, err
	}
	p := filepath.Join(dir, "config.yml")
	if _, err := os.Stat(p); err == nil {
		return LoadFile(p)
	}
	return cfg, fmt.Errorf("no global config: %w", ErrNotFound)
}

// GetUpdates returns the update settings with defaults applied.
func (fc FileConfig) GetUpdates() UpdatesConfig {
	if fc.Updates == nil {
		return UpdatesConfig{}
	}
	return *fc.Updates
}

// IsCheckEnabled returns true if the release check is enabled (default: true).
func (uc UpdatesConfig) IsCheckEnabled() bool {
	if uc.Check == nil {
		return true
	}
	return *uc.Check
}

// GetRepository returns the release repository or DefaultReleaseRepository.
func (uc UpdatesConfig) GetRepository() string {
	if uc.Repository == nil || *uc.Repository == "" {
		return DefaultReleaseRepository
	}
	return *uc.Repository
}
