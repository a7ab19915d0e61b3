package section

import (
	"cmp"
	"strconv"
	"strings"
)

// KeyDelimiter separates the segments of a configuration path.
const KeyDelimiter = ":"

// Section is a read-only node of a configuration tree.
type Section interface {
	// Key is the last segment of Path.
	Key() string
	// Path is the full key of the section from the root, e.g. "server:ports:http".
	Path() string
	// Value returns the leaf value and whether one was set.
	Value() (string, bool)
	// Children returns the immediate child sections in a deterministic order.
	Children() []Section
}

// JoinPath joins path segments, skipping empty ones.
func JoinPath(segments ...string) string {
	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		if s != "" {
			parts = append(parts, s)
		}
	}

	return strings.Join(parts, KeyDelimiter)
}

// SplitPath splits a configuration path into its segments.
func SplitPath(path string) []string {
	if path == "" {
		return nil
	}

	return strings.Split(path, KeyDelimiter)
}

// Depth returns the number of segments in path; the root has depth 0.
func Depth(path string) int {
	if path == "" {
		return 0
	}

	return strings.Count(path, KeyDelimiter) + 1
}

// CompareKeys orders sibling keys the way configuration children are
// enumerated: integer keys first in numeric order, then the remaining keys
// compared case-insensitively.
func CompareKeys(a, b string) int {
	ai, aErr := strconv.Atoi(a)
	bi, bErr := strconv.Atoi(b)

	switch {
	case aErr == nil && bErr == nil:
		return cmp.Compare(ai, bi)
	case aErr == nil:
		return -1
	case bErr == nil:
		return 1
	default:
		return strings.Compare(strings.ToLower(a), strings.ToLower(b))
	}
}
