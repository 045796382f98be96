// Package labels validates and generates worktree labels. A label names
// everything for one session: the branch, the worktree directory, and the
// zellij session suffix.
package labels

import (
	"fmt"
	"math/rand/v2"
	"regexp"

	"github.com/zhubert/grove/internal/errors"
)

// validLabelRe matches the full set of characters a label may use. The
// label doubles as a branch name and a session name, so it stays far
// inside what either tool would accept.
var validLabelRe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Validate rejects labels that are empty or contain characters outside
// [A-Za-z0-9_-].
func Validate(label string) error {
	if !validLabelRe.MatchString(label) {
		return errors.InvalidLabel(label)
	}
	return nil
}

// Wordlists for generated labels. Short, lowercase, unambiguous.
var adjectives = []string{
	"amber", "birch", "blue", "bold", "brisk",
	"calm", "cedar", "clear", "coral", "crisp",
	"dusky", "eager", "fleet", "fresh", "gold",
	"green", "hazel", "keen", "late", "lively",
	"lunar", "mellow", "misty", "noble", "north",
	"pale", "quick", "quiet", "rapid", "ruby",
	"rustic", "sage", "sharp", "silent", "silver",
	"solar", "spry", "stout", "swift", "vivid",
}

var nouns = []string{
	"aspen", "badger", "bjorn", "brook", "cliff",
	"comet", "crane", "creek", "delta", "drift",
	"egret", "falcon", "fern", "finch", "fjord",
	"glade", "grove", "harbor", "heron", "holly",
	"knoll", "lark", "linden", "maple", "marsh",
	"meadow", "otter", "pine", "quail", "raven",
	"reef", "ridge", "river", "sparrow", "spruce",
	"summit", "thicket", "trail", "vale", "wren",
}

// generateAttempts is how many random draws happen before falling back to
// numeric suffixing.
const generateAttempts = 5

// Generate produces a human-readable random label not rejected by the
// taken predicate. After a few fresh draws it falls back to numbering a
// draw until a free name appears.
func Generate(taken func(string) bool) string {
	var last string
	for i := 0; i < generateAttempts; i++ {
		last = fmt.Sprintf("%s-%s", adjectives[rand.IntN(len(adjectives))], nouns[rand.IntN(len(nouns))])
		if taken == nil || !taken(last) {
			return last
		}
	}

	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s-%d", last, n)
		if !taken(candidate) {
			return candidate
		}
	}
}
