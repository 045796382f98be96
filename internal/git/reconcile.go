package git

import (
	"context"
	"fmt"
	"strings"

	"github.com/zhubert/grove/internal/errors"
	"github.com/zhubert/grove/internal/logger"
)

// UnmergedCommits lists commits reachable from branch but not from base,
// newest first (rev-list order).
func (s *Service) UnmergedCommits(ctx context.Context, repoPath, base, branch string) ([]string, error) {
	output, err := s.executor.Output(ctx, repoPath, "git", "rev-list", fmt.Sprintf("%s..%s", base, branch))
	if err != nil {
		return nil, fmt.Errorf("failed to list unmerged commits: %w", err)
	}

	var commits []string
	for _, line := range strings.Split(string(output), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		commits = append(commits, line)
	}
	return commits, nil
}

// HasUnmerged reports whether branch carries commits base lacks, and how
// many. Fails soft: any query error reads as "nothing unmerged", because
// reconciliation is a convenience and must never block cleanup.
func (s *Service) HasUnmerged(ctx context.Context, repoPath, base, branch string) (bool, int) {
	commits, err := s.UnmergedCommits(ctx, repoPath, base, branch)
	if err != nil {
		logger.Debug("Git: unmerged check failed for %s..%s, treating as merged: %v", base, branch, err)
		return false, 0
	}
	return len(commits) > 0, len(commits)
}

// Checkout switches the primary checkout to the given branch.
func (s *Service) Checkout(ctx context.Context, repoPath, branch string) error {
	logger.Info("Git: checking out %s", branch)
	output, err := s.executor.CombinedOutput(ctx, repoPath, "git", "checkout", branch)
	if err != nil {
		return fmt.Errorf("failed to checkout %s: %s: %w", branch, strings.TrimSpace(string(output)), err)
	}
	return nil
}

// CherryPick applies one commit onto the current branch.
func (s *Service) CherryPick(ctx context.Context, repoPath, commit string) error {
	output, err := s.executor.CombinedOutput(ctx, repoPath, "git", "cherry-pick", commit)
	if err != nil {
		logger.Error("Git: cherry-pick %s failed: %s", commit, strings.TrimSpace(string(output)))
		return errors.CherryPickConflict(commit, fmt.Errorf("%s: %w", strings.TrimSpace(string(output)), err))
	}
	return nil
}

// Reconcile replays branch's unique commits onto base, oldest first, so
// dependent changes apply cleanly. A conflicted cherry-pick aborts
// immediately: base is left partially updated and the caller must not
// proceed to any destructive step.
func (s *Service) Reconcile(ctx context.Context, repoPath, base, branch string) error {
	logger.Info("Git: reconciling %s onto %s", branch, base)

	if err := s.Checkout(ctx, repoPath, base); err != nil {
		return err
	}

	commits, err := s.UnmergedCommits(ctx, repoPath, base, branch)
	if err != nil {
		return err
	}

	// rev-list is newest-first; apply in chronological order.
	for i, j := 0, len(commits)-1; i < j; i, j = i+1, j-1 {
		commits[i], commits[j] = commits[j], commits[i]
	}

	for _, commit := range commits {
		logger.Debug("Git: cherry-picking %s", commit)
		if err := s.CherryPick(ctx, repoPath, commit); err != nil {
			return err
		}
	}

	logger.Info("Git: reconciled %d commit(s) from %s onto %s", len(commits), branch, base)
	return nil
}
