package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return p
}

func TestLoadFile_Basic(t *testing.T) {
	dir := t.TempDir()
	p := writeTemp(t, dir, "boiler.yaml", "disable_actions: rust_ci, readme\nno_color: true\noverrides: ops.yml\ncontext:\n  license: MIT\n")
	cfg, err := LoadFile(p)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.DisableActions == nil || *cfg.DisableActions != "rust_ci, readme" {
		t.Fatalf("expected disable_actions, got %#v", cfg.DisableActions)
	}
	if cfg.NoColor == nil || !*cfg.NoColor {
		t.Fatalf("expected no_color=true")
	}
	if cfg.Overrides == nil || *cfg.Overrides != "ops.yml" {
		t.Fatalf("expected overrides=ops.yml, got %#v", cfg.Overrides)
	}
	if cfg.Context == nil {
		t.Fatal("expected context")
	}
	if lic, ok := cfg.Context.StringAt("license"); !ok || lic != "MIT" {
		t.Fatalf("expected context.license=MIT, got %q", lic)
	}
	if cfg.DisableDetectors != nil {
		t.Fatalf("unset field should stay nil")
	}
}

func TestLoadFile_Invalid(t *testing.T) {
	dir := t.TempDir()
	p := writeTemp(t, dir, "boiler.yml", "disable_actions: [unclosed\n")
	if _, err := LoadFile(p); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoadFile_ContextMustBeObject(t *testing.T) {
	dir := t.TempDir()
	for _, body := range []string{"context: oops\n", "context: [a, b]\n", "context: 3\n"} {
		p := writeTemp(t, dir, "boiler.yml", body)
		if _, err := LoadFile(p); err == nil {
			t.Fatalf("%q: expected an error for a non-object context", body)
		}
	}

	p := writeTemp(t, dir, "boiler.yml", "context: ~\ndisable_actions: readme\n")
	cfg, err := LoadFile(p)
	if err != nil {
		t.Fatalf("null context: %v", err)
	}
	if cfg.Context != nil {
		t.Fatalf("null context should load as absent, got %s", cfg.Context)
	}
}

func TestLoadLocal_PrefersDotfile(t *testing.T) {
	dir := t.TempDir()
	// place both, expect the dotfile to be picked first by search order
	writeTemp(t, dir, "boiler.yaml", "disable_detectors: git\n")
	writeTemp(t, dir, ".boiler.yaml", "disable_detectors: shell\n")
	cfg, err := LoadLocal(dir)
	if err != nil {
		t.Fatalf("LoadLocal: %v", err)
	}
	if cfg.DisableDetectors == nil || *cfg.DisableDetectors != "shell" {
		t.Fatalf("expected shell from .boiler.yaml, got %#v", cfg.DisableDetectors)
	}
}

func TestLoadLocal_NoConfig(t *testing.T) {
	dir := t.TempDir()
	_, err := LoadLocal(dir)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound when no local config exists, got %v", err)
	}
}

func TestLoadGlobal_XDG_Config(t *testing.T) {
	dir := t.TempDir()
	cfgDir := filepath.Join(dir, "boiler")
	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	p := filepath.Join(cfgDir, "config.yml")
	if err := os.WriteFile(p, []byte("enable_actions: readme\nupdates:\n  check: false\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("XDG_CONFIG_HOME", dir)
	cfg, err := LoadGlobal()
	if err != nil {
		t.Fatalf("LoadGlobal: %v", err)
	}
	if cfg.EnableActions == nil || *cfg.EnableActions != "readme" {
		t.Fatalf("expected enable_actions=readme from global config, got %#v", cfg.EnableActions)
	}
	if cfg.GetUpdates().IsCheckEnabled() {
		t.Fatal("expected update check disabled")
	}
}

func TestLoadGlobal_MissingFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	if _, err := LoadGlobal(); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLoadGlobal_NoConfig(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	// Simulate no HOME as well by clearing HOME; LoadGlobal should error
	t.Setenv("HOME", "")
	if _, err := LoadGlobal(); err == nil {
		t.Fatal("expected error when no global config dir exists")
	}
}

func TestUpdatesDefaults(t *testing.T) {
	var fc FileConfig
	u := fc.GetUpdates()
	if !u.IsCheckEnabled() {
		t.Fatal("check should default to enabled")
	}
	if u.GetRepository() != DefaultReleaseRepository {
		t.Fatalf("unexpected repository %q", u.GetRepository())
	}
	repo := "me/fork"
	fc.Updates = &UpdatesConfig{Repository: &repo}
	if got := fc.GetUpdates().GetRepository(); got != repo {
		t.Fatalf("repository = %q", got)
	}
}
