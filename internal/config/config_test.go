package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	groveerr "github.com/zhubert/grove/internal/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), FileName))
	if err != nil {
		t.Fatalf("expected defaults for missing file, got: %v", err)
	}
	if cfg.Layout != DefaultLayoutFile {
		t.Errorf("layout: got %q, want %q", cfg.Layout, DefaultLayoutFile)
	}
	if cfg.SessionPrefix != DefaultSessionPrefix {
		t.Errorf("session_prefix: got %q, want %q", cfg.SessionPrefix, DefaultSessionPrefix)
	}
	if cfg.Ports.Mode != PortModeSingle || cfg.Ports.From != 3000 || cfg.Ports.To != 4000 {
		t.Errorf("ports: got %+v", cfg.Ports)
	}
	if len(cfg.Env) != 0 || len(cfg.Setup.Copy) != 0 || len(cfg.Setup.Run) != 0 {
		t.Errorf("expected empty env and setup, got %+v", cfg)
	}
	if cfg.Notifications {
		t.Error("notifications should default to off")
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `
ports:
  mode: pair
  from: 5000
  to: 5100
env:
  PORT: "{{.Port}}"
  VITE_PORT: "{{.SecondPort}}"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Ports.Mode != PortModePair {
		t.Errorf("mode: got %q, want pair", cfg.Ports.Mode)
	}
	if cfg.Ports.From != 5000 || cfg.Ports.To != 5100 {
		t.Errorf("range: got %d-%d", cfg.Ports.From, cfg.Ports.To)
	}
	// Unset keys keep their defaults.
	if cfg.Layout != DefaultLayoutFile {
		t.Errorf("layout: got %q, want default", cfg.Layout)
	}
	if cfg.SessionPrefix != DefaultSessionPrefix {
		t.Errorf("session_prefix: got %q, want default", cfg.SessionPrefix)
	}
	if cfg.Env["PORT"] != "{{.Port}}" {
		t.Errorf("env.PORT: got %q", cfg.Env["PORT"])
	}
}

func TestLoadFullFile(t *testing.T) {
	path := writeConfig(t, `
layout: custom.kdl
session_prefix: tree-
ports:
  mode: single
  from: 3000
  to: 3100
env:
  PORT: "{{.Port}}"
  APP_LABEL: "{{.Label}}"
setup:
  copy:
    - .env.example
  run:
    - npm install
notifications: true
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Layout != "custom.kdl" {
		t.Errorf("layout: got %q", cfg.Layout)
	}
	if cfg.SessionPrefix != "tree-" {
		t.Errorf("session_prefix: got %q", cfg.SessionPrefix)
	}
	if len(cfg.Setup.Copy) != 1 || cfg.Setup.Copy[0] != ".env.example" {
		t.Errorf("setup.copy: got %v", cfg.Setup.Copy)
	}
	if len(cfg.Setup.Run) != 1 || cfg.Setup.Run[0] != "npm install" {
		t.Errorf("setup.run: got %v", cfg.Setup.Run)
	}
	if !cfg.Notifications {
		t.Error("notifications: expected true")
	}
}

func TestLoadEmptyFileUsesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.SessionPrefix != DefaultSessionPrefix {
		t.Errorf("session_prefix: got %q, want default", cfg.SessionPrefix)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	_, err := Load(writeConfig(t, "layot: typo.kdl\n"))
	if err == nil {
		t.Fatal("expected error for unknown key")
	}
	if !groveerr.Is(err, groveerr.KindConfig) {
		t.Errorf("expected KindConfig, got %v", err)
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "ports: [unclosed\n"))
	if err == nil {
		t.Fatal("expected error for malformed yaml")
	}
	if !groveerr.Is(err, groveerr.KindConfig) {
		t.Errorf("expected KindConfig, got %v", err)
	}
}

func TestLoadReportsAllValidationProblems(t *testing.T) {
	_, err := Load(writeConfig(t, `
session_prefix: "bad prefix"
ports:
  mode: triple
  from: 9000
  to: 8000
`))
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !groveerr.Is(err, groveerr.KindValidation) {
		t.Errorf("expected KindValidation, got %v", err)
	}
	msg := err.Error()
	for _, want := range []string{"session_prefix", "ports.mode", "ports"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error %q missing field %q", msg, want)
		}
	}
}
