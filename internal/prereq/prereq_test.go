package prereq

import (
	"strings"
	"testing"

	groveerr "github.com/zhubert/grove/internal/errors"
)

func TestCheckExistingCommand(t *testing.T) {
	path, found := Check(Prerequisite{Name: "echo", Description: "Echo command"})
	if !found {
		t.Skip("echo not found in PATH, skipping")
	}
	if path == "" {
		t.Error("Check should return the path for a found command")
	}
}

func TestCheckMissingCommand(t *testing.T) {
	path, found := Check(Prerequisite{Name: "definitely-not-a-real-command-12345"})
	if found {
		t.Error("Check should report a missing command as not found")
	}
	if path != "" {
		t.Errorf("path = %q, want empty for missing command", path)
	}
}

func TestValidateAllPresent(t *testing.T) {
	present := []Prerequisite{
		{Name: "echo", Description: "Echo"},
		{Name: "ls", Description: "List"},
	}
	for _, p := range present {
		if _, ok := Check(p); !ok {
			t.Skipf("%s not found, skipping", p.Name)
		}
	}

	if err := Validate(present...); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidateReportsEveryMissingTool(t *testing.T) {
	err := Validate(
		Prerequisite{Name: "fake-tool-one-xyz", Description: "One", InstallURL: "https://example.com/one"},
		Prerequisite{Name: "fake-tool-two-xyz", Description: "Two", InstallURL: "https://example.com/two"},
	)
	if err == nil {
		t.Fatal("expected error for missing tools")
	}
	if !groveerr.Is(err, groveerr.KindNotFound) {
		t.Errorf("expected KindNotFound, got %v", err)
	}

	msg := err.Error()
	for _, want := range []string{"fake-tool-one-xyz", "fake-tool-two-xyz", "https://example.com/one"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error %q missing %q", msg, want)
		}
	}
}

func TestValidateNothingRequired(t *testing.T) {
	if err := Validate(); err != nil {
		t.Errorf("unexpected error for empty requirement list: %v", err)
	}
}
