// Package scaffold writes grove's first-run files: the zellij layout
// template, the grove.yaml template, the managed worktrees directory, and
// the .gitignore exclusion. Existing files are never overwritten, so init
// is safe to re-run.
package scaffold

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/zhubert/grove/internal/config"
	"github.com/zhubert/grove/internal/errors"
	"github.com/zhubert/grove/internal/logger"
)

// LayoutTemplate is the default zellij layout scaffolded by init.
const LayoutTemplate = `layout {
    default_tab_template {
        pane size=1 borderless=true {
            plugin location="zellij:tab-bar"
        }
        children
        pane size=2 borderless=true {
            plugin location="zellij:status-bar"
        }
    }

    tab name="work" {
        pane
    }
}
`

// ConfigTemplate is the default grove.yaml content with commented optional
// sections.
const ConfigTemplate = `# Grove configuration
#
# Grove creates one git worktree per session under the worktrees directory
# next to this file, launches a zellij session inside it, and tears both
# down on cleanup. Every key below has a sensible default; a missing or
# empty file works too.

# Zellij layout used for new sessions, relative to this directory.
layout: layout.kdl

# Session name prefix. Sessions are named <session_prefix><label>.
# session_prefix: grove-

# Port scan bounds. Mode "single" allocates one free port per worktree;
# "pair" allocates two numerically adjacent free ports.
ports:
  mode: single
  from: 3000
  to: 4000

# Environment variables written to <worktree>/.env.local on every create.
# Values are Go templates over:
#   {{.Label}}      the worktree label
#   {{.Branch}}     the branch name (same as the label)
#   {{.Worktree}}   the absolute worktree path
#   {{.Port}}       an allocated free port (pair mode: the higher port)
#   {{.SecondPort}} pair mode only: the lower port of the pair
# Ports are only scanned when a template actually references them.
# env:
#   PORT: "{{.Port}}"

# Run once when a worktree is first created.
# setup:
#   # Paths (relative to the repo root) copied into the new worktree.
#   copy:
#     - .env.example
#   # Commands run inside the new worktree, in order. A failing command
#   # aborts creation before the session launches.
#   run:
#     - npm install

# Desktop notification when a session ends.
# notifications: false
`

// Result reports one scaffold step.
type Result struct {
	Path    string
	Created bool // false when the file was already present
}

// Init writes the missing first-run files and reports what it did. It stops
// at the first failure; steps already completed are kept.
func Init(paths config.Paths) ([]Result, error) {
	var results []Result

	layoutPath := paths.LayoutFile(config.DefaultLayoutFile)
	created, err := writeIfMissing(layoutPath, LayoutTemplate)
	if err != nil {
		return results, err
	}
	results = append(results, Result{Path: layoutPath, Created: created})

	configPath := paths.ConfigFile()
	created, err = writeIfMissing(configPath, ConfigTemplate)
	if err != nil {
		return results, err
	}
	results = append(results, Result{Path: configPath, Created: created})

	worktreesDir := paths.WorktreesDir()
	_, statErr := os.Stat(worktreesDir)
	if err := os.MkdirAll(worktreesDir, 0o755); err != nil {
		return results, errors.E(errors.Op("scaffold.Init"), errors.KindIO,
			fmt.Sprintf("failed to create %s", worktreesDir), err)
	}
	results = append(results, Result{Path: worktreesDir, Created: os.IsNotExist(statErr)})

	if line := paths.GitignoreLine(); line != "" {
		appended, err := EnsureGitignoreLine(paths.RepoRoot, line)
		if err != nil {
			return results, err
		}
		results = append(results, Result{Path: filepath.Join(paths.RepoRoot, ".gitignore"), Created: appended})
	} else {
		logger.Debug("Scaffold: config dir outside the repository, skipping .gitignore")
	}

	return results, nil
}

// writeIfMissing writes content to path unless it already exists.
func writeIfMissing(path, content string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		logger.Debug("Scaffold: %s already exists, leaving it alone", path)
		return false, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, errors.E(errors.Op("scaffold.Init"), errors.KindIO,
			fmt.Sprintf("failed to create directory for %s", path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return false, errors.E(errors.Op("scaffold.Init"), errors.KindIO,
			fmt.Sprintf("failed to write %s", path), err)
	}

	logger.Info("Scaffold: wrote %s", path)
	return true, nil
}

// EnsureGitignoreLine appends line to <repoRoot>/.gitignore unless that
// exact line is already present. Reports whether it appended.
func EnsureGitignoreLine(repoRoot, line string) (bool, error) {
	path := filepath.Join(repoRoot, ".gitignore")

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return false, errors.E(errors.Op("scaffold.EnsureGitignoreLine"), errors.KindIO,
			fmt.Sprintf("failed to read %s", path), err)
	}

	for _, existing := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(existing) == line {
			return false, nil
		}
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return false, errors.E(errors.Op("scaffold.EnsureGitignoreLine"), errors.KindIO,
			fmt.Sprintf("failed to open %s", path), err)
	}
	defer f.Close()

	entry := line + "\n"
	if len(data) > 0 && !bytes.HasSuffix(data, []byte("\n")) {
		entry = "\n" + entry
	}
	if _, err := f.WriteString(entry); err != nil {
		return false, errors.E(errors.Op("scaffold.EnsureGitignoreLine"), errors.KindIO,
			fmt.Sprintf("failed to append to %s", path), err)
	}

	logger.Info("Scaffold: added %q to %s", line, path)
	return true, nil
}
