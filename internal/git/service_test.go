package git

import (
	"context"
	"fmt"
	"testing"

	groveerr "github.com/zhubert/grove/internal/errors"
	"github.com/zhubert/grove/internal/exec"
)

var ctx = context.Background()

func TestRepoRoot(t *testing.T) {
	mock := exec.NewMockExecutor(nil)
	mock.AddExactMatch("git", []string{"rev-parse", "--show-toplevel"}, exec.MockResponse{
		Stdout: []byte("/home/dev/project\n"),
	})
	s := NewServiceWithExecutor(mock)

	root, err := s.RepoRoot(ctx, "/home/dev/project/sub/dir")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if root != "/home/dev/project" {
		t.Errorf("RepoRoot = %q, want '/home/dev/project'", root)
	}
}

func TestRepoRootNotARepo(t *testing.T) {
	mock := exec.NewMockExecutor(nil)
	mock.AddExactMatch("git", []string{"rev-parse", "--show-toplevel"}, exec.MockResponse{
		Err: fmt.Errorf("fatal: not a git repository"),
	})
	s := NewServiceWithExecutor(mock)

	_, err := s.RepoRoot(ctx, "/tmp/nowhere")
	if err == nil {
		t.Fatal("expected error outside a repo")
	}
	if !groveerr.Is(err, groveerr.KindValidation) {
		t.Errorf("kind = %v, want KindValidation", groveerr.GetKind(err))
	}
}

func TestDefaultBranchFromSymbolicRef(t *testing.T) {
	mock := exec.NewMockExecutor(nil)
	mock.AddExactMatch("git", []string{"symbolic-ref", "refs/remotes/origin/HEAD"}, exec.MockResponse{
		Stdout: []byte("refs/remotes/origin/main\n"),
	})
	s := NewServiceWithExecutor(mock)

	if got := s.DefaultBranch(ctx, "/repo"); got != "main" {
		t.Errorf("DefaultBranch = %q, want 'main'", got)
	}
}

func TestDefaultBranchWithSlash(t *testing.T) {
	mock := exec.NewMockExecutor(nil)
	mock.AddExactMatch("git", []string{"symbolic-ref", "refs/remotes/origin/HEAD"}, exec.MockResponse{
		Stdout: []byte("refs/remotes/origin/release/2024\n"),
	})
	s := NewServiceWithExecutor(mock)

	if got := s.DefaultBranch(ctx, "/repo"); got != "release/2024" {
		t.Errorf("DefaultBranch = %q, want 'release/2024'", got)
	}
}

func TestDefaultBranchFallbackToMain(t *testing.T) {
	mock := exec.NewMockExecutor(nil)
	mock.AddExactMatch("git", []string{"symbolic-ref", "refs/remotes/origin/HEAD"}, exec.MockResponse{
		Err: fmt.Errorf("fatal: ref refs/remotes/origin/HEAD is not a symbolic ref"),
	})
	mock.AddExactMatch("git", []string{"rev-parse", "--verify", "main"}, exec.MockResponse{
		Stdout: []byte("abc123\n"),
	})
	s := NewServiceWithExecutor(mock)

	if got := s.DefaultBranch(ctx, "/repo"); got != "main" {
		t.Errorf("DefaultBranch = %q, want 'main'", got)
	}
}

func TestDefaultBranchFallbackToMaster(t *testing.T) {
	mock := exec.NewMockExecutor(nil)
	mock.AddExactMatch("git", []string{"symbolic-ref", "refs/remotes/origin/HEAD"}, exec.MockResponse{
		Err: fmt.Errorf("fatal: ref refs/remotes/origin/HEAD is not a symbolic ref"),
	})
	mock.AddExactMatch("git", []string{"rev-parse", "--verify", "main"}, exec.MockResponse{
		Err: fmt.Errorf("fatal: Needed a single revision"),
	})
	s := NewServiceWithExecutor(mock)

	if got := s.DefaultBranch(ctx, "/repo"); got != "master" {
		t.Errorf("DefaultBranch = %q, want 'master'", got)
	}
}

func TestBranchExists(t *testing.T) {
	mock := exec.NewMockExecutor(nil)
	mock.AddExactMatch("git", []string{"rev-parse", "--verify", "fern"}, exec.MockResponse{
		Stdout: []byte("abc123\n"),
	})
	mock.AddExactMatch("git", []string{"rev-parse", "--verify", "ghost"}, exec.MockResponse{
		Err: fmt.Errorf("fatal: Needed a single revision"),
	})
	s := NewServiceWithExecutor(mock)

	if !s.BranchExists(ctx, "/repo", "fern") {
		t.Error("BranchExists should be true for existing branch")
	}
	if s.BranchExists(ctx, "/repo", "ghost") {
		t.Error("BranchExists should be false for missing branch")
	}
}
