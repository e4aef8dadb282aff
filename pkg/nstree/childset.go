package nstree

import (
	"sort"

	"github.com/anishesg/nstree/pkg/nspath"
)

// childSet is the ordered-child container: a sequence of *node sorted
// by path, supporting binary search and insertion at the searched
// index so the sequence never needs a sort-after-append pass.
type childSet struct {
	items []*node
}

// length returns the number of children in the set.
func (s *childSet) length() int { return len(s.items) }

// at returns the child at index i. The caller must keep i in range;
// out-of-range access is a programmer error inside this package (the
// public API translates it to NoSuchPath at the node layer).
func (s *childSet) at(i int) *node { return s.items[i] }

// search performs a binary search for p among the set's children. If
// found, it returns (true, index-of-match); otherwise it returns
// (false, index-at-which-p-would-be-inserted) so the caller can pass
// that index straight to insertAt.
func (s *childSet) search(p nspath.Path) (found bool, index int) {
	index = sort.Search(len(s.items), func(i int) bool {
		return nspath.Compare(s.items[i].path, p) >= 0
	})
	found = index < len(s.items) && nspath.Compare(s.items[index].path, p) == 0
	return found, index
}

// insertAt inserts n at index, shifting the tail of the slice up by
// one. Callers always pass the index returned by search for a miss,
// preserving sorted order as an invariant rather than an assertion.
func (s *childSet) insertAt(index int, n *node) {
	s.items = append(s.items, nil)
	copy(s.items[index+1:], s.items[index:])
	s.items[index] = n
}

// removeAt detaches and returns the child at index, shifting the tail
// of the slice down by one.
func (s *childSet) removeAt(index int) *node {
	n := s.items[index]
	copy(s.items[index:], s.items[index+1:])
	s.items[len(s.items)-1] = nil
	s.items = s.items[:len(s.items)-1]
	return n
}

// indexOf returns the index of n within the set, or -1 if n is not a
// member. Used when detaching a node from its parent by identity
// rather than by path (the node already knows its own path, so this
// is just the search call, kept separate for readability at call
// sites that already have the node in hand).
func (s *childSet) indexOf(n *node) int {
	found, idx := s.search(n.path)
	if !found || s.items[idx] != n {
		return -1
	}
	return idx
}
