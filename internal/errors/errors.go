// Package errors provides structured error types for grove.
// These errors provide context about what operation failed and where.
package errors

import (
	"errors"
	"fmt"
)

// Op describes an operation, usually as "package.function".
type Op string

// Kind categorizes the type of error.
type Kind int

const (
	KindUnknown Kind = iota
	// KindValidation covers bad user input (label syntax, config schema),
	// always reported before any side effect.
	KindValidation
	// KindExhausted is a depleted resource, e.g. no free port in range.
	KindExhausted
	// KindTool is a non-zero exit from git or zellij on a step that must
	// succeed. Best-effort steps log instead of returning this.
	KindTool
	// KindConflict is a cherry-pick conflict during reconciliation. It
	// blocks every destructive step that would otherwise follow.
	KindConflict
	// KindNotFound is a missing worktree, session, or binary.
	KindNotFound
	// KindConfig is a config file that exists but cannot be used.
	KindConfig
	// KindIO is a filesystem failure outside the external tools.
	KindIO
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation error"
	case KindExhausted:
		return "resource exhausted"
	case KindTool:
		return "external tool failure"
	case KindConflict:
		return "reconciliation conflict"
	case KindNotFound:
		return "not found"
	case KindConfig:
		return "configuration error"
	case KindIO:
		return "I/O error"
	default:
		return "unknown error"
	}
}

// Error is the structured error type for grove.
type Error struct {
	Op      Op     // Operation that failed
	Kind    Kind   // Category of error
	Err     error  // Underlying error
	Context string // Additional context
}

// Error returns the error message.
func (e *Error) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Context, e.Err)
	}
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// E creates a new Error. Arguments can be:
// - Op: the operation name
// - Kind: the error kind
// - string: context message
// - error: the underlying error
func E(args ...interface{}) error {
	e := &Error{}
	for _, arg := range args {
		switch a := arg.(type) {
		case Op:
			e.Op = a
		case Kind:
			e.Kind = a
		case string:
			e.Context = a
		case error:
			e.Err = a
		}
	}
	if e.Err == nil {
		e.Err = errors.New(e.Context)
		e.Context = ""
	}
	return e
}

// Is reports whether err is of the given Kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// GetKind returns the Kind of an error.
func GetKind(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Label errors
func InvalidLabel(label string) error {
	return E(Op("label.Validate"), KindValidation,
		fmt.Sprintf("invalid label %q: use only letters, digits, '_' and '-'", label))
}

// Port errors
func NoPortAvailable(low, high int) error {
	return E(Op("ports.Find"), KindExhausted,
		fmt.Sprintf("no free port in range %d-%d", low, high))
}

func NoPortPairAvailable(low, high int) error {
	return E(Op("ports.FindPair"), KindExhausted,
		fmt.Sprintf("no adjacent free port pair in range %d-%d", low, high))
}

// Worktree errors
func WorktreeMissing(label string) error {
	return E(Op("workspace.Open"), KindNotFound,
		fmt.Sprintf("no worktree for label %q", label))
}

func WorktreeCreateFailed(label string, err error) error {
	return E(Op("git.AddWorktree"), KindTool,
		fmt.Sprintf("failed to create worktree for %q", label), err)
}

func WorktreeRemoveFailed(label string, err error) error {
	return E(Op("git.RemoveWorktree"), KindTool,
		fmt.Sprintf("failed to remove worktree for %q", label), err)
}

func BranchDeleteFailed(branch string, err error) error {
	return E(Op("git.DeleteBranch"), KindTool,
		fmt.Sprintf("failed to delete branch %q", branch), err)
}

// Reconciliation errors
func CherryPickConflict(commit string, err error) error {
	return E(Op("git.CherryPick"), KindConflict,
		fmt.Sprintf("cherry-pick of %s conflicted; resolve manually, worktree and branch were kept", commit), err)
}

// Config errors
func ConfigLoadFailed(path string, err error) error {
	return E(Op("config.Load"), KindConfig,
		fmt.Sprintf("failed to load config from %s", path), err)
}

func ConfigInvalid(reason string) error {
	return E(Op("config.Validate"), KindValidation, reason)
}

// Repository errors
func NotARepo(path string) error {
	return E(Op("git.RepoRoot"), KindValidation,
		fmt.Sprintf("%s is not inside a git repository", path))
}
