package config

import (
	"path/filepath"
	"strings"
)

// DefaultConfigDir is the config directory name relative to the repo root.
const DefaultConfigDir = ".grove"

// WorktreesDirName holds the managed worktrees inside the config dir.
const WorktreesDirName = "worktrees"

// Paths locates grove's on-disk state inside a repository. All accessors
// return absolute paths.
type Paths struct {
	RepoRoot  string
	ConfigDir string
}

// NewPaths resolves the config directory against the repository root. A
// relative configDir is joined to the root so grove behaves the same from
// any subdirectory; empty selects the default.
func NewPaths(repoRoot, configDir string) Paths {
	if configDir == "" {
		configDir = DefaultConfigDir
	}
	if !filepath.IsAbs(configDir) {
		configDir = filepath.Join(repoRoot, configDir)
	}
	return Paths{RepoRoot: repoRoot, ConfigDir: configDir}
}

// ConfigFile is the grove.yaml path.
func (p Paths) ConfigFile() string {
	return filepath.Join(p.ConfigDir, FileName)
}

// LayoutFile resolves a layout reference from the config. Empty stays empty
// (no layout); a relative path is anchored at the config dir.
func (p Paths) LayoutFile(layout string) string {
	if layout == "" {
		return ""
	}
	if filepath.IsAbs(layout) {
		return layout
	}
	return filepath.Join(p.ConfigDir, layout)
}

// WorktreesDir holds one subdirectory per managed worktree.
func (p Paths) WorktreesDir() string {
	return filepath.Join(p.ConfigDir, WorktreesDirName)
}

// WorktreePath is the worktree root for a label.
func (p Paths) WorktreePath(label string) string {
	return filepath.Join(p.WorktreesDir(), label)
}

// GitignoreLine is the exclusion line for the repository's .gitignore, or
// empty when the config dir lies outside the repository and there is
// nothing to ignore.
func (p Paths) GitignoreLine() string {
	rel, err := filepath.Rel(p.RepoRoot, p.WorktreesDir())
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return ""
	}
	return filepath.ToSlash(rel) + "/"
}
