// Package workspace implements the lifecycle state machine behind every
// grove command: create, open, cleanup, cleanup-all, and list. The manager
// holds no state of its own; git and zellij own the truth, and every
// operation re-derives it from them before acting.
package workspace

import (
	"context"
	"io"
	"path/filepath"
	"sort"

	"github.com/zhubert/grove/internal/config"
	"github.com/zhubert/grove/internal/exec"
	"github.com/zhubert/grove/internal/git"
	"github.com/zhubert/grove/internal/ports"
	"github.com/zhubert/grove/internal/zellij"
)

// ConfirmFunc asks the operator a yes/no question. Commands wire a real
// stdin prompt; tests script the answers.
type ConfirmFunc func(prompt string) bool

// Entry is one row of the list command output.
type Entry struct {
	Label        string
	Path         string
	SessionAlive bool
}

// Manager orchestrates worktrees, sessions, ports, and reconciliation. All
// external effects run through the injected executor, confirmer, and
// allocator, so the state machine is testable without git or zellij
// installed.
type Manager struct {
	cfg       *config.Config
	paths     config.Paths
	executor  exec.CommandExecutor
	git       *git.Service
	sessions  *zellij.Controller
	allocator *ports.Allocator
	confirm   ConfirmFunc
	out       io.Writer
}

// NewManager builds the orchestrator. The executor runs every external
// command (git, zellij, setup hooks); out receives user-facing output.
func NewManager(cfg *config.Config, paths config.Paths, executor exec.CommandExecutor, allocator *ports.Allocator, confirm ConfirmFunc, out io.Writer) *Manager {
	return &Manager{
		cfg:       cfg,
		paths:     paths,
		executor:  executor,
		git:       git.NewServiceWithExecutor(executor),
		sessions:  zellij.NewControllerWithExecutor(executor),
		allocator: allocator,
		confirm:   confirm,
		out:       out,
	}
}

// Labels returns the labels of all registered worktrees under the managed
// directory, sorted. Worktrees registered elsewhere (including the main
// checkout) are not grove's to manage and are filtered out.
func (m *Manager) Labels(ctx context.Context) ([]string, error) {
	worktrees, err := m.git.ListWorktrees(ctx, m.paths.RepoRoot)
	if err != nil {
		return nil, err
	}

	managed := filepath.Clean(m.paths.WorktreesDir())
	var labels []string
	for _, wt := range worktrees {
		if filepath.Dir(filepath.Clean(wt.Path)) == managed {
			labels = append(labels, filepath.Base(wt.Path))
		}
	}
	sort.Strings(labels)
	return labels, nil
}

// List pairs every registered label with its path and session liveness.
func (m *Manager) List(ctx context.Context) ([]Entry, error) {
	labels, err := m.Labels(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(labels))
	for _, label := range labels {
		entries = append(entries, Entry{
			Label:        label,
			Path:         m.paths.WorktreePath(label),
			SessionAlive: m.sessions.IsAlive(ctx, m.sessionName(label)),
		})
	}
	return entries, nil
}

// sessionName derives the zellij session name for a label.
func (m *Manager) sessionName(label string) string {
	return m.cfg.SessionPrefix + label
}
