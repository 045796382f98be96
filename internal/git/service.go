// Package git shells out to the git binary for every repository operation
// grove performs. Git's own state is the source of truth: nothing here is
// cached between calls.
package git

import (
	"context"
	"strings"

	"github.com/zhubert/grove/internal/errors"
	"github.com/zhubert/grove/internal/exec"
)

// Service provides git operations with explicit dependency injection.
// Each instance holds its own executor, enabling testing with a mock and
// avoiding global state.
type Service struct {
	executor exec.CommandExecutor
}

// NewService creates a Service with the default real executor.
func NewService() *Service {
	return &Service{executor: exec.NewRealExecutor()}
}

// NewServiceWithExecutor creates a Service with a custom executor.
// This is primarily used for testing with a mock.
func NewServiceWithExecutor(e exec.CommandExecutor) *Service {
	return &Service{executor: e}
}

// RepoRoot resolves the repository top level containing path, so grove
// commands work from any subdirectory of the repo.
func (s *Service) RepoRoot(ctx context.Context, path string) (string, error) {
	output, err := s.executor.Output(ctx, path, "git", "rev-parse", "--show-toplevel")
	if err != nil {
		return "", errors.NotARepo(path)
	}
	return strings.TrimSpace(string(output)), nil
}

// DefaultBranch returns the branch reconciliation targets. Prefers
// origin's HEAD, then a local main, then master.
func (s *Service) DefaultBranch(ctx context.Context, repoPath string) string {
	output, err := s.executor.Output(ctx, repoPath, "git", "symbolic-ref", "refs/remotes/origin/HEAD")
	if err == nil {
		ref := strings.TrimSpace(string(output))
		if strings.HasPrefix(ref, "refs/remotes/origin/") {
			return strings.TrimPrefix(ref, "refs/remotes/origin/")
		}
	}

	if _, _, err := s.executor.Run(ctx, repoPath, "git", "rev-parse", "--verify", "main"); err == nil {
		return "main"
	}

	return "master"
}

// BranchExists checks whether a branch resolves in the repo.
func (s *Service) BranchExists(ctx context.Context, repoPath, branch string) bool {
	_, _, err := s.executor.Run(ctx, repoPath, "git", "rev-parse", "--verify", branch)
	return err == nil
}
