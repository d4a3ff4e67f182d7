package tui

import (
	"log/slog"

	"gopkg.in/yaml.v3"

	"github.com/boiler/boiler/internal/config"
)

const prefsFile = "review.yml"

// Prefs are the review screen settings kept between sessions.
type Prefs struct {
	HideUnchanged bool `yaml:"hide_unchanged"`
	DiffView      bool `yaml:"diff_view"`
}

// DefaultPrefs opens on the diff with every file listed.
func DefaultPrefs() Prefs {
	return Prefs{DiffView: true}
}

// LoadPrefs returns the saved settings. A missing or unreadable file yields
// DefaultPrefs.
func LoadPrefs() Prefs {
	b, err := config.ReadState(prefsFile)
	if err != nil {
		return DefaultPrefs()
	}
	p := DefaultPrefs()
	if err := yaml.Unmarshal(b, &p); err != nil {
		slog.Debug("ignoring review preferences", "file", prefsFile, "err", err)
		return DefaultPrefs()
	}
	return p
}

// Save stores p next to the other boiler state files.
func (p Prefs) Save() error {
	b, err := yaml.Marshal(p)
	if err != nil {
		return err
	}
	return config.WriteState(prefsFile, b)
}
