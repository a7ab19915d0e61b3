package section

import (
	"slices"
	"strings"
)

// Node is an in-memory Section. Keys are matched case-insensitively; the
// spelling of the first write wins.
type Node struct {
	key      string
	path     string
	value    string
	hasValue bool
	children []*Node
	byKey    map[string]*Node
}

var _ Section = (*Node)(nil)

// NewRoot returns an empty root section.
func NewRoot() *Node {
	return &Node{}
}

// FromPairs builds a tree from flat "a:b:c" paths.
func FromPairs(pairs map[string]string) *Node {
	root := NewRoot()
	for path, value := range pairs {
		root.Set(path, value)
	}

	return root
}

func (n *Node) Key() string  { return n.key }
func (n *Node) Path() string { return n.path }

func (n *Node) Value() (string, bool) {
	return n.value, n.hasValue
}

// Children returns the child sections ordered by CompareKeys.
func (n *Node) Children() []Section {
	nodes := slices.Clone(n.children)
	slices.SortStableFunc(nodes, func(a, b *Node) int {
		return CompareKeys(a.key, b.key)
	})

	out := make([]Section, len(nodes))
	for i, c := range nodes {
		out[i] = c
	}

	return out
}

// Child returns the immediate child with the given key.
func (n *Node) Child(key string) (*Node, bool) {
	c, ok := n.byKey[strings.ToLower(key)]
	return c, ok
}

// Lookup returns the descendant at the relative path.
func (n *Node) Lookup(path string) (*Node, bool) {
	cur := n
	for _, seg := range SplitPath(path) {
		next, ok := cur.Child(seg)
		if !ok {
			return nil, false
		}

		cur = next
	}

	return cur, true
}

// Set stores value at the relative path, creating intermediate sections.
func (n *Node) Set(path, value string) *Node {
	leaf := n.ensure(SplitPath(path))
	leaf.value, leaf.hasValue = value, true

	return leaf
}

// Ensure returns the descendant at the relative path, creating it when needed.
func (n *Node) Ensure(path string) *Node {
	return n.ensure(SplitPath(path))
}

func (n *Node) ensure(segments []string) *Node {
	cur := n
	for _, seg := range segments {
		next, ok := cur.Child(seg)
		if !ok {
			next = &Node{key: seg, path: childPath(cur.path, seg)}
			if cur.byKey == nil {
				cur.byKey = make(map[string]*Node)
			}

			cur.byKey[strings.ToLower(seg)] = next
			cur.children = append(cur.children, next)
		}

		cur = next
	}

	return cur
}

func childPath(parent, key string) string {
	if parent == "" {
		return key
	}

	return parent + KeyDelimiter + key
}
