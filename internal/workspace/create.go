package workspace

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/zhubert/grove/internal/config"
	"github.com/zhubert/grove/internal/envfile"
	"github.com/zhubert/grove/internal/errors"
	"github.com/zhubert/grove/internal/labels"
	"github.com/zhubert/grove/internal/logger"
	"github.com/zhubert/grove/internal/notify"
)

// Create provisions a worktree for the label and runs a session in it,
// blocking until the session ends. A missing label is generated. Creation
// is idempotent: if the worktree directory already exists the creation and
// setup steps are skipped, but the environment file is rewritten and the
// session is relaunched. After the session ends the operator is asked
// whether to clean up; declining preserves the worktree.
func (m *Manager) Create(ctx context.Context, requestedLabel string) error {
	label := requestedLabel
	if label == "" {
		label = labels.Generate(func(candidate string) bool {
			if _, err := os.Stat(m.paths.WorktreePath(candidate)); err == nil {
				return true
			}
			return m.git.BranchExists(ctx, m.paths.RepoRoot, candidate)
		})
		fmt.Fprintf(m.out, "Generated label: %s\n", label)
	}
	if err := labels.Validate(label); err != nil {
		return err
	}

	wtPath := m.paths.WorktreePath(label)
	if _, err := os.Stat(wtPath); err == nil {
		fmt.Fprintf(m.out, "Worktree %s already exists, reusing it.\n", label)
	} else {
		if err := m.createWorktree(ctx, label, wtPath); err != nil {
			return err
		}
	}

	if err := m.provisionEnv(ctx, label, wtPath); err != nil {
		return err
	}
	if err := m.runSession(ctx, label, wtPath); err != nil {
		return err
	}

	if m.confirm(fmt.Sprintf("Clean up worktree %q now?", label)) {
		return m.Cleanup(ctx, label, false)
	}
	fmt.Fprintf(m.out, "Preserved %s\n", wtPath)
	fmt.Fprintf(m.out, "Reopen it with: grove open %s\n", label)
	return nil
}

// Open relaunches or attaches the session for an existing worktree. It
// never re-runs setup, never rewrites the environment file, and never
// prompts for cleanup afterwards.
func (m *Manager) Open(ctx context.Context, label string) error {
	if err := labels.Validate(label); err != nil {
		return err
	}

	wtPath := m.paths.WorktreePath(label)
	if _, err := os.Stat(wtPath); err != nil {
		if known, kerr := m.Labels(ctx); kerr == nil && len(known) > 0 {
			return errors.E(errors.Op("workspace.Open"), errors.KindNotFound,
				fmt.Sprintf("no worktree for label %q, known labels: %s", label, strings.Join(known, ", ")))
		}
		return errors.WorktreeMissing(label)
	}

	return m.runSession(ctx, label, wtPath)
}

func (m *Manager) createWorktree(ctx context.Context, label, wtPath string) error {
	if err := os.MkdirAll(m.paths.WorktreesDir(), 0o755); err != nil {
		return errors.E(errors.Op("workspace.Create"), errors.KindIO,
			fmt.Sprintf("failed to create %s", m.paths.WorktreesDir()), err)
	}
	if err := m.git.AddWorktree(ctx, m.paths.RepoRoot, label, wtPath); err != nil {
		return err
	}
	fmt.Fprintf(m.out, "Created worktree %s at %s\n", label, wtPath)
	return m.runSetup(ctx, wtPath)
}

// runSetup applies the config's setup block to a freshly created worktree:
// copy entries come over from the main checkout, then run commands execute
// inside the worktree with inherited streams. Any failure is fatal and
// aborts before the session launches.
func (m *Manager) runSetup(ctx context.Context, wtPath string) error {
	const op = errors.Op("workspace.Setup")

	for _, rel := range m.cfg.Setup.Copy {
		src := filepath.Join(m.paths.RepoRoot, rel)
		dst := filepath.Join(wtPath, rel)
		if err := copyPath(src, dst); err != nil {
			return errors.E(op, errors.KindIO,
				fmt.Sprintf("failed to copy %s into worktree", rel), err)
		}
		logger.Debug("Workspace: copied %s into %s", rel, wtPath)
	}

	for _, command := range m.cfg.Setup.Run {
		fmt.Fprintf(m.out, "Running setup: %s\n", command)
		code, err := m.executor.Interactive(ctx, wtPath, "sh", "-c", command)
		if err != nil {
			return errors.E(op, errors.KindTool,
				fmt.Sprintf("setup command %q failed", command), err)
		}
		if code != 0 {
			return errors.E(op, errors.KindTool,
				fmt.Sprintf("setup command %q exited with status %d", command, code))
		}
	}
	return nil
}

// provisionEnv renders the configured env templates and writes the
// environment file into the worktree, replacing any previous one. Ports
// are only scanned if a template actually references them.
func (m *Manager) provisionEnv(ctx context.Context, label, wtPath string) error {
	if len(m.cfg.Env) == 0 {
		logger.Debug("Workspace: no env configured, skipping %s", envfile.FileName)
		return nil
	}

	envCtx := config.NewEnvContext(ctx, m.cfg, m.allocator, label, wtPath)
	vars, err := m.cfg.RenderEnv(envCtx)
	if err != nil {
		return err
	}

	path := filepath.Join(wtPath, envfile.FileName)
	if err := envfile.Write(path, vars); err != nil {
		return err
	}
	logger.Debug("Workspace: wrote %s with %d entries", path, len(vars))
	return nil
}

// runSession hands the terminal to zellij until the operator exits. A
// non-zero session exit status is logged, not treated as an error.
func (m *Manager) runSession(ctx context.Context, label, wtPath string) error {
	name := m.sessionName(label)
	code, err := m.sessions.Run(ctx, name, wtPath, m.layoutPath())
	if err != nil {
		return errors.E(errors.Op("workspace.Session"), errors.KindTool,
			fmt.Sprintf("failed to run session %q", name), err)
	}
	if code != 0 {
		logger.Warn("Workspace: session %s exited with status %d", name, code)
	}
	if m.cfg.Notifications {
		_ = notify.SessionEnded(label)
	}
	return nil
}

// layoutPath resolves the configured layout, returning "" when no layout
// should be passed to zellij (unset in config, or the file is missing).
func (m *Manager) layoutPath() string {
	path := m.paths.LayoutFile(m.cfg.Layout)
	if path == "" {
		return ""
	}
	if _, err := os.Stat(path); err != nil {
		logger.Debug("Workspace: layout %s not found, spawning without a layout", path)
		return ""
	}
	return path
}

func copyPath(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return copyFile(src, dst, info.Mode())
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dst, 0o755); err != nil {
		return err
	}
	for _, entry := range entries {
		if err := copyPath(filepath.Join(src, entry.Name()), filepath.Join(dst, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

func copyFile(src, dst string, mode os.FileMode) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	return os.WriteFile(dst, data, mode.Perm())
}
