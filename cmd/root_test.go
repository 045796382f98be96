package cmd

import (
	"strings"
	"testing"
)

func TestPersistentFlags(t *testing.T) {
	tests := []struct {
		name      string
		flag      string
		defValue  string
		shorthand string
	}{
		{"config-dir", "config-dir", "", ""},
		{"debug", "debug", "false", ""},
		{"quiet", "quiet", "false", "q"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag := rootCmd.PersistentFlags().Lookup(tt.flag)
			if flag == nil {
				t.Fatalf("--%s flag not found", tt.flag)
			}
			if flag.DefValue != tt.defValue {
				t.Errorf("--%s default = %q, want %q", tt.flag, flag.DefValue, tt.defValue)
			}
			if flag.Shorthand != tt.shorthand {
				t.Errorf("--%s shorthand = %q, want %q", tt.flag, flag.Shorthand, tt.shorthand)
			}
		})
	}
}

func TestSubcommandsRegistered(t *testing.T) {
	want := []string{"init", "new", "open", "cleanup", "list"}
	registered := make(map[string]bool)
	for _, sub := range rootCmd.Commands() {
		registered[sub.Name()] = true
	}
	for _, name := range want {
		if !registered[name] {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestCleanupFlags(t *testing.T) {
	if flag := cleanupCmd.Flags().Lookup("yes"); flag == nil || flag.Shorthand != "y" {
		t.Error("cleanup --yes/-y flag missing")
	}
}

func TestVersionTemplate(t *testing.T) {
	origVersion, origCommit, origDate := version, commit, date
	defer func() { version, commit, date = origVersion, origCommit, origDate }()

	SetVersionInfo("1.2.3", "abc1234", "2026-01-02")
	tmpl := versionTemplate()
	if !strings.Contains(tmpl, "grove 1.2.3") || !strings.Contains(tmpl, "abc1234") {
		t.Errorf("template = %q, want version and commit", tmpl)
	}

	SetVersionInfo("dev", "none", "unknown")
	if tmpl := versionTemplate(); strings.Contains(tmpl, "commit") {
		t.Errorf("template = %q, want no commit line for dev builds", tmpl)
	}
}

func TestInitLoggingQuietOverridesDebug(t *testing.T) {
	origDebug, origQuiet := debugMode, quietMode
	defer func() { debugMode, quietMode = origDebug, origQuiet }()

	debugMode = true
	quietMode = true

	// Should not panic; quiet takes precedence.
	initLogging()
}
