package cmd

import (
	"context"
	"os"

	"github.com/zhubert/grove/internal/config"
	"github.com/zhubert/grove/internal/exec"
	"github.com/zhubert/grove/internal/git"
	"github.com/zhubert/grove/internal/ports"
	"github.com/zhubert/grove/internal/prereq"
	"github.com/zhubert/grove/internal/workspace"
)

// buildManager wires a workspace.Manager rooted at the repository that
// contains the current directory, after verifying the required tools are
// installed.
func buildManager(ctx context.Context, required ...prereq.Prerequisite) (*workspace.Manager, error) {
	if err := prereq.Validate(required...); err != nil {
		return nil, err
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	executor := exec.NewRealExecutor()
	repoRoot, err := git.NewServiceWithExecutor(executor).RepoRoot(ctx, cwd)
	if err != nil {
		return nil, err
	}

	paths := config.NewPaths(repoRoot, configDir)
	cfg, err := config.Load(paths.ConfigFile())
	if err != nil {
		return nil, err
	}

	return workspace.NewManager(cfg, paths, executor, ports.NewAllocator(), newConfirmer(os.Stdin), os.Stdout), nil
}
