package zellij

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/zhubert/grove/internal/exec"
)

var ctx = context.Background()

func TestIsAlive(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		err     error
		session string
		want    bool
	}{
		{
			name:    "present",
			output:  "grove-fern [Created 2h ago]\nother-session [Created 1d ago]\n",
			session: "grove-fern",
			want:    true,
		},
		{
			name:    "absent",
			output:  "other-session [Created 1d ago]\n",
			session: "grove-fern",
			want:    false,
		},
		{
			name:    "prefix of a longer name does not match",
			output:  "grove-fern-2 [Created 2h ago]\n",
			session: "grove-fern",
			want:    false,
		},
		{
			name:    "colored output",
			output:  "\x1b[32;1mgrove-fern\x1b[0m [Created 2h ago]\n",
			session: "grove-fern",
			want:    true,
		},
		{
			name:    "listing error reads as no sessions",
			err:     fmt.Errorf("exit status 1"),
			session: "grove-fern",
			want:    false,
		},
		{
			name:    "empty output",
			output:  "",
			session: "grove-fern",
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := exec.NewMockExecutor(nil)
			mock.AddExactMatch("zellij", []string{"list-sessions"}, exec.MockResponse{
				Stdout: []byte(tt.output),
				Err:    tt.err,
			})
			c := NewControllerWithExecutor(mock)

			if got := c.IsAlive(ctx, tt.session); got != tt.want {
				t.Errorf("IsAlive(%q) = %v, want %v", tt.session, got, tt.want)
			}
		})
	}
}

func TestRunAttachesWhenAlive(t *testing.T) {
	mock := exec.NewMockExecutor(nil)
	mock.AddExactMatch("zellij", []string{"list-sessions"}, exec.MockResponse{
		Stdout: []byte("grove-fern [Created 2h ago]\n"),
	})
	c := NewControllerWithExecutor(mock)

	code, err := c.Run(ctx, "grove-fern", "/wt", "layout.kdl")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if code != 0 {
		t.Errorf("exit code = %d, want 0", code)
	}

	var attach *exec.MockCall
	calls := mock.GetCalls()
	for i := range calls {
		if calls[i].Interactive {
			attach = &calls[i]
		}
	}
	if attach == nil {
		t.Fatal("expected an interactive call")
	}
	if strings.Join(attach.Args, " ") != "attach grove-fern" {
		t.Errorf("attach args = %v", attach.Args)
	}
}

func TestRunSpawnsWithLayoutWhenDead(t *testing.T) {
	mock := exec.NewMockExecutor(nil)
	mock.AddExactMatch("zellij", []string{"list-sessions"}, exec.MockResponse{
		Err: fmt.Errorf("exit status 1"),
	})
	c := NewControllerWithExecutor(mock)

	if _, err := c.Run(ctx, "grove-fern", "/wt", "/repo/.grove/layout.kdl"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var spawn *exec.MockCall
	calls := mock.GetCalls()
	for i := range calls {
		if calls[i].Interactive {
			spawn = &calls[i]
		}
	}
	if spawn == nil {
		t.Fatal("expected an interactive call")
	}
	want := "--session grove-fern --new-session-with-layout /repo/.grove/layout.kdl"
	if strings.Join(spawn.Args, " ") != want {
		t.Errorf("spawn args = %v, want %q", spawn.Args, want)
	}
	if spawn.Dir != "/wt" {
		t.Errorf("spawn dir = %q, want /wt", spawn.Dir)
	}
}

func TestRunSpawnsWithoutLayout(t *testing.T) {
	mock := exec.NewMockExecutor(nil)
	mock.AddExactMatch("zellij", []string{"list-sessions"}, exec.MockResponse{
		Stdout: []byte(""),
	})
	c := NewControllerWithExecutor(mock)

	if _, err := c.Run(ctx, "grove-fern", "/wt", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	calls := mock.GetCalls()
	last := calls[len(calls)-1]
	if strings.Join(last.Args, " ") != "--session grove-fern" {
		t.Errorf("spawn args = %v, want no layout flag", last.Args)
	}
}

func TestRunPropagatesExitCode(t *testing.T) {
	mock := exec.NewMockExecutor(nil)
	mock.AddExactMatch("zellij", []string{"list-sessions"}, exec.MockResponse{
		Stdout: []byte("grove-fern [Created 2h ago]\n"),
	})
	mock.AddExactMatch("zellij", []string{"attach", "grove-fern"}, exec.MockResponse{
		ExitCode: 2,
	})
	c := NewControllerWithExecutor(mock)

	code, err := c.Run(ctx, "grove-fern", "/wt", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if code != 2 {
		t.Errorf("exit code = %d, want 2", code)
	}
}

func TestKillAndDeleteBestEffort(t *testing.T) {
	mock := exec.NewMockExecutor(nil)
	mock.AddExactMatch("zellij", []string{"kill-session", "grove-fern"}, exec.MockResponse{
		Err: fmt.Errorf("exit status 1"),
	})
	mock.AddExactMatch("zellij", []string{"delete-session", "grove-fern"}, exec.MockResponse{
		Err: fmt.Errorf("exit status 1"),
	})
	c := NewControllerWithExecutor(mock)

	// Neither may panic or propagate.
	c.Kill(ctx, "grove-fern")
	c.Delete(ctx, "grove-fern")

	if len(mock.GetCalls()) != 2 {
		t.Errorf("expected 2 calls, got %d", len(mock.GetCalls()))
	}
}
