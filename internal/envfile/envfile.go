// Package envfile writes the per-worktree .env.local file. The file is a
// flat KEY=VALUE mapping, fully rewritten on every write so stale values
// from earlier runs never linger.
package envfile

import (
	"fmt"
	"os"
	"sort"
	"strings"
)

// FileName is the environment file written at each worktree root.
const FileName = ".env.local"

// Render produces the file content for vars: one KEY=VALUE line per entry,
// sorted by key, with a trailing newline. An empty map renders to "".
func Render(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}

	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "%s=%s\n", k, vars[k])
	}
	return b.String()
}

// Write renders vars and replaces the file at path. The previous content is
// discarded, never merged.
func Write(path string, vars map[string]string) error {
	return os.WriteFile(path, []byte(Render(vars)), 0644)
}
