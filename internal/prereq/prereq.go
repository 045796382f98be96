// Package prereq validates that the external tools grove shells out to are
// installed before a command starts driving them. Which tools are required
// depends on the command: git always, zellij only for commands that touch
// sessions (cleanup degrades to best-effort session deletion without it).
package prereq

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/zhubert/grove/internal/errors"
)

// Prerequisite describes an external tool grove depends on.
type Prerequisite struct {
	Name        string // command name looked up in PATH
	Description string // human-readable description
	InstallURL  string // installation instructions
}

var (
	// Git is required by every command.
	Git = Prerequisite{
		Name:        "git",
		Description: "Git version control",
		InstallURL:  "https://git-scm.com/downloads",
	}

	// Zellij is required by commands that launch or inspect sessions.
	Zellij = Prerequisite{
		Name:        "zellij",
		Description: "Zellij terminal multiplexer",
		InstallURL:  "https://zellij.dev/documentation/installation",
	}
)

// Check reports whether the tool is available and where.
func Check(p Prerequisite) (string, bool) {
	path, err := exec.LookPath(p.Name)
	if err != nil {
		return "", false
	}
	return path, true
}

// Validate checks every given tool and returns a single error describing
// all the missing ones, or nil when everything is installed.
func Validate(required ...Prerequisite) error {
	var missing []string

	for _, p := range required {
		if _, ok := Check(p); !ok {
			missing = append(missing, fmt.Sprintf("  - %s (%s)\n    Install: %s",
				p.Name, p.Description, p.InstallURL))
		}
	}

	if len(missing) > 0 {
		return errors.E(errors.Op("prereq.Validate"), errors.KindNotFound,
			fmt.Sprintf("missing required tools:\n%s", strings.Join(missing, "\n")))
	}

	return nil
}
