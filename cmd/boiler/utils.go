package boiler

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"

	semver3 "github.com/blang/semver"
	semver "github.com/blang/semver/v4"
	"github.com/rhysd/go-github-selfupdate/selfupdate"
	"github.com/spf13/cobra"

	"github.com/boiler/boiler/internal/config"
	"github.com/boiler/boiler/internal/detectors"
	"github.com/boiler/boiler/internal/engine"
	"github.com/boiler/boiler/internal/report"
)

func currentVersion() string {
	v := version
	// Use build info if tag overridden at build-time
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" && len(v) == 0 {
				v = s.Value
			}
		}
	}
	return v
}

func selfUpdate(repository string) (string, error) {
	// parse semantic version (strip leading v)
	ver, err := semver.ParseTolerant(currentVersion())
	if err != nil {
		ver = semver.MustParse("0.0.0")
	}
	latest, err := selfupdate.UpdateSelf(semver3.MustParse(ver.String()), repository)
	if err != nil {
		return "", err
	}
	return latest.Version.String(), nil
}

func pickString(cli string, local, global *string) string {
	if cli != "" {
		return cli
	}
	if local != nil && *local != "" {
		return *local
	}
	if global != nil && *global != "" {
		return *global
	}
	return ""
}

func pickBool(cli bool, local, global *bool) bool {
	if cli {
		return true
	}
	if local != nil {
		return *local
	}
	if global != nil {
		return *global
	}
	return false
}

// configs loads the repo-local and global config files. Missing files are
// not an error; unreadable or malformed ones are, since dropping them would
// silently lose their disable lists.
func configs(root string) (local, global config.FileConfig, err error) {
	if local, err = config.LoadLocal(root); err != nil {
		if !errors.Is(err, config.ErrNotFound) {
			return local, global, fmt.Errorf("local config: %w", err)
		}
		slog.Debug("no local config", "root", root)
	}
	if global, err = config.LoadGlobal(); err != nil {
		if !errors.Is(err, config.ErrNotFound) {
			return local, global, fmt.Errorf("global config: %w", err)
		}
		slog.Debug("no global config")
	}
	return local, global, nil
}

// selection holds the capability flags shared by update, context and review.
type selection struct {
	root             string
	enableDetectors  string
	disableDetectors string
	enableActions    string
	disableActions   string
}

func (s *selection) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&s.root, "repo", "r", ".", "repository to operate on")
	cmd.Flags().StringVar(&s.enableDetectors, "enable-detectors", "", "comma-separated detectors to run (all others are skipped)")
	cmd.Flags().StringVar(&s.disableDetectors, "disable-detectors", "", "comma-separated detectors to skip")
	cmd.Flags().StringVar(&s.enableActions, "enable-actions", "", "comma-separated actions to run (all others are skipped)")
	cmd.Flags().StringVar(&s.disableActions, "disable-actions", "", "comma-separated actions to skip")
}

// setup resolves CLI > local > global settings into an engine and run config.
func (s selection) setup() (*engine.Engine, engine.Config, config.FileConfig, error) {
	local, global, err := configs(s.root)
	if err != nil {
		return nil, engine.Config{}, local, err
	}
	cfg := engine.Config{
		Root:             s.root,
		EnableDetectors:  pickString(s.enableDetectors, local.EnableDetectors, global.EnableDetectors),
		DisableDetectors: pickString(s.disableDetectors, local.DisableDetectors, global.DisableDetectors),
		EnableActions:    pickString(s.enableActions, local.EnableActions, global.EnableActions),
		DisableActions:   pickString(s.disableActions, local.DisableActions, global.DisableActions),
	}
	if local.Context != nil {
		cfg.Context = *local.Context
	}
	overrides, err := config.LoadOverrides(pickString(flagOverrides, local.Overrides, global.Overrides))
	if err != nil {
		return nil, engine.Config{}, local, err
	}
	merged := local
	merged.NoColor = boolPtr(pickBool(flagNoColor, local.NoColor, global.NoColor))
	merged.Audit = boolPtr(pickBool(false, local.Audit, global.Audit))
	return engine.New(detectors.SystemClock{}, overrides), cfg, merged, nil
}

func boolPtr(b bool) *bool { return &b }

// plainOutput reports whether output should stay uncolored: by request, or
// because it is not going to a terminal.
func plainOutput(cmd *cobra.Command, fc config.FileConfig) bool {
	if flagNoColor || (fc.NoColor != nil && *fc.NoColor) {
		return true
	}
	f, ok := cmd.OutOrStdout().(*os.File)
	return !ok || !report.IsTerminal(f)
}
