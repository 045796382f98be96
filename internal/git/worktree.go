package git

import (
	"context"
	"fmt"
	"strings"

	"github.com/zhubert/grove/internal/errors"
	"github.com/zhubert/grove/internal/logger"
)

// Worktree is one record from `git worktree list --porcelain`.
type Worktree struct {
	Path   string
	Branch string
}

// ListWorktrees returns every worktree git has registered for the repo,
// including the primary checkout and any whose directory has been deleted
// out-of-band (git keeps the registration until a prune).
func (s *Service) ListWorktrees(ctx context.Context, repoPath string) ([]Worktree, error) {
	output, err := s.executor.Output(ctx, repoPath, "git", "worktree", "list", "--porcelain")
	if err != nil {
		return nil, fmt.Errorf("failed to list worktrees: %w", err)
	}

	var res []Worktree
	var curPath, curBranch string

	flush := func() {
		if curPath != "" {
			res = append(res, Worktree{Path: curPath, Branch: curBranch})
		}
		curPath = ""
		curBranch = ""
	}

	for _, line := range strings.Split(string(output), "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		switch {
		case strings.HasPrefix(line, "worktree "):
			curPath = strings.TrimPrefix(line, "worktree ")
		case strings.HasPrefix(line, "branch refs/heads/"):
			curBranch = strings.TrimPrefix(line, "branch refs/heads/")
		case strings.HasPrefix(line, "branch "):
			curBranch = strings.TrimPrefix(line, "branch ")
		}
	}
	flush()
	return res, nil
}

// AddWorktree creates a new worktree at path on a new branch, based on the
// current HEAD.
func (s *Service) AddWorktree(ctx context.Context, repoPath, branch, path string) error {
	logger.Info("Git: creating worktree branch=%s path=%s", branch, path)
	output, err := s.executor.CombinedOutput(ctx, repoPath, "git", "worktree", "add", "-b", branch, path)
	if err != nil {
		logger.Error("Git: worktree add failed: %s", strings.TrimSpace(string(output)))
		return errors.WorktreeCreateFailed(branch, fmt.Errorf("%s: %w", strings.TrimSpace(string(output)), err))
	}
	return nil
}

// RemoveWorktree force-removes a worktree directory and its registration.
// Uncommitted changes in the worktree are discarded.
func (s *Service) RemoveWorktree(ctx context.Context, repoPath, path, label string) error {
	logger.Info("Git: removing worktree path=%s", path)
	output, err := s.executor.CombinedOutput(ctx, repoPath, "git", "worktree", "remove", path, "--force")
	if err != nil {
		logger.Error("Git: worktree remove failed: %s", strings.TrimSpace(string(output)))
		return errors.WorktreeRemoveFailed(label, fmt.Errorf("%s: %w", strings.TrimSpace(string(output)), err))
	}
	return nil
}

// PruneWorktrees clears stale worktree registrations. Best-effort.
func (s *Service) PruneWorktrees(ctx context.Context, repoPath string) {
	if output, err := s.executor.CombinedOutput(ctx, repoPath, "git", "worktree", "prune"); err != nil {
		logger.Warn("Git: worktree prune failed (best-effort): %s: %v", strings.TrimSpace(string(output)), err)
	}
}

// DeleteBranch force-deletes a branch.
func (s *Service) DeleteBranch(ctx context.Context, repoPath, branch string) error {
	logger.Info("Git: deleting branch %s", branch)
	output, err := s.executor.CombinedOutput(ctx, repoPath, "git", "branch", "-D", branch)
	if err != nil {
		logger.Error("Git: branch delete failed: %s", strings.TrimSpace(string(output)))
		return errors.BranchDeleteFailed(branch, fmt.Errorf("%s: %w", strings.TrimSpace(string(output)), err))
	}
	return nil
}
