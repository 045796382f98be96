package workspace

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/zhubert/grove/internal/errors"
	"github.com/zhubert/grove/internal/labels"
)

// Cleanup tears down a worktree: reconcile unmerged commits if the
// operator consents, force-remove the working tree, delete the branch, and
// best-effort delete the session. A reconciliation conflict is fatal and
// leaves both the worktree and the branch in place. assumeYes skips the
// reconcile prompt and discards unmerged commits with a warning.
func (m *Manager) Cleanup(ctx context.Context, label string, assumeYes bool) error {
	if err := labels.Validate(label); err != nil {
		return err
	}

	wtPath := m.paths.WorktreePath(label)
	if _, err := os.Stat(wtPath); err != nil {
		fmt.Fprintf(m.out, "No worktree for %s, nothing to clean.\n", label)
		m.git.PruneWorktrees(ctx, m.paths.RepoRoot)
		return nil
	}

	base := m.git.DefaultBranch(ctx, m.paths.RepoRoot)
	if unmerged, count := m.git.HasUnmerged(ctx, m.paths.RepoRoot, base, label); unmerged {
		if err := m.reconcileBeforeRemoval(ctx, base, label, count, assumeYes); err != nil {
			return err
		}
	}

	if err := m.git.RemoveWorktree(ctx, m.paths.RepoRoot, wtPath, label); err != nil {
		return err
	}
	m.git.PruneWorktrees(ctx, m.paths.RepoRoot)

	if m.git.BranchExists(ctx, m.paths.RepoRoot, label) {
		if err := m.git.DeleteBranch(ctx, m.paths.RepoRoot, label); err != nil {
			return err
		}
	}

	name := m.sessionName(label)
	m.sessions.Kill(ctx, name)
	m.sessions.Delete(ctx, name)

	fmt.Fprintf(m.out, "Cleaned up %s\n", label)
	return nil
}

// CleanupAll tears down every registered worktree after a single batch
// confirmation. Per-label failures do not stop the batch; they are
// reported as they happen and summarized in the returned error.
func (m *Manager) CleanupAll(ctx context.Context, assumeYes bool) error {
	all, err := m.Labels(ctx)
	if err != nil {
		return err
	}
	if len(all) == 0 {
		fmt.Fprintln(m.out, "No worktrees to clean.")
		return nil
	}

	fmt.Fprintf(m.out, "This will clean %d worktree(s):\n", len(all))
	for _, label := range all {
		fmt.Fprintf(m.out, "  - %s\n", label)
	}
	if !assumeYes && !m.confirm("Continue?") {
		fmt.Fprintln(m.out, "Aborted.")
		return nil
	}

	var failed []string
	for _, label := range all {
		if err := m.Cleanup(ctx, label, assumeYes); err != nil {
			fmt.Fprintf(m.out, "Warning: cleanup of %s failed: %v\n", label, err)
			failed = append(failed, label)
		}
	}
	if len(failed) > 0 {
		return errors.E(errors.Op("workspace.CleanupAll"), errors.KindTool,
			fmt.Sprintf("cleanup failed for %d of %d worktree(s): %s",
				len(failed), len(all), strings.Join(failed, ", ")))
	}
	fmt.Fprintf(m.out, "Cleaned up %d worktree(s).\n", len(all))
	return nil
}

// reconcileBeforeRemoval runs the unmerged-commit gate ahead of the
// destructive steps. Declining the prompt proceeds with removal and
// discards the commits.
func (m *Manager) reconcileBeforeRemoval(ctx context.Context, base, label string, count int, assumeYes bool) error {
	if assumeYes {
		fmt.Fprintf(m.out, "Warning: discarding %d unmerged commit(s) from %s\n", count, label)
		return nil
	}

	prompt := fmt.Sprintf("Branch %s has %d commit(s) not on %s. Apply them to %s before removing?",
		label, count, base, base)
	if !m.confirm(prompt) {
		return nil
	}

	if err := m.git.Reconcile(ctx, m.paths.RepoRoot, base, label); err != nil {
		return err
	}
	fmt.Fprintf(m.out, "Applied %d commit(s) to %s\n", count, base)
	return nil
}
