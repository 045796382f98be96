// Package zellij drives the zellij binary for session control: liveness
// probing, foreground attach/spawn, and best-effort teardown. Grove never
// parses zellij's internals; a session either appears in the listing or it
// does not.
package zellij

import (
	"context"
	"regexp"
	"strings"

	"github.com/zhubert/grove/internal/exec"
	"github.com/zhubert/grove/internal/logger"
)

// ansiRe strips color codes from list-sessions output.
var ansiRe = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// Controller wraps zellij session operations.
type Controller struct {
	executor exec.CommandExecutor
}

// NewController creates a Controller with the default real executor.
func NewController() *Controller {
	return &Controller{executor: exec.NewRealExecutor()}
}

// NewControllerWithExecutor creates a Controller with a custom executor,
// primarily for testing.
func NewControllerWithExecutor(e exec.CommandExecutor) *Controller {
	return &Controller{executor: e}
}

// IsAlive reports whether a session with the given name exists. A listing
// failure reads as "no sessions": zellij exits non-zero when no server is
// running, which is the common cold-start case.
func (c *Controller) IsAlive(ctx context.Context, name string) bool {
	output, err := c.executor.Output(ctx, "", "zellij", "list-sessions")
	if err != nil {
		logger.Debug("Zellij: list-sessions failed, assuming no sessions: %v", err)
		return false
	}

	for _, line := range strings.Split(ansiRe.ReplaceAllString(string(output), ""), "\n") {
		fields := strings.Fields(line)
		if len(fields) > 0 && fields[0] == name {
			return true
		}
	}
	return false
}

// Run attaches to the named session if it is alive, otherwise spawns a new
// one bound to workingDir with the given layout (no layout flag when
// layoutPath is empty). The caller's terminal is handed to zellij and Run
// blocks until the session process exits, returning its exit code.
func (c *Controller) Run(ctx context.Context, name, workingDir, layoutPath string) (int, error) {
	if c.IsAlive(ctx, name) {
		logger.Info("Zellij: attaching to session %s", name)
		return c.executor.Interactive(ctx, workingDir, "zellij", "attach", name)
	}

	args := []string{"--session", name}
	if layoutPath != "" {
		args = append(args, "--new-session-with-layout", layoutPath)
	}
	logger.Info("Zellij: spawning session %s in %s (layout=%q)", name, workingDir, layoutPath)
	return c.executor.Interactive(ctx, workingDir, "zellij", args...)
}

// Kill terminates a running session. Best-effort.
func (c *Controller) Kill(ctx context.Context, name string) {
	if output, err := c.executor.CombinedOutput(ctx, "", "zellij", "kill-session", name); err != nil {
		logger.Debug("Zellij: kill-session %s failed (best-effort): %s: %v", name, strings.TrimSpace(string(output)), err)
	}
}

// Delete removes a dead session from zellij's resurrection list.
// Best-effort.
func (c *Controller) Delete(ctx context.Context, name string) {
	if output, err := c.executor.CombinedOutput(ctx, "", "zellij", "delete-session", name); err != nil {
		logger.Debug("Zellij: delete-session %s failed (best-effort): %s: %v", name, strings.TrimSpace(string(output)), err)
	}
}
