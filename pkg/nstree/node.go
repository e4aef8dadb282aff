package nstree

import (
	"github.com/anishesg/nstree/pkg/nspath"
)

// kind distinguishes a directory node (which may have children, and
// in DT mode is the only kind that ever exists) from a file node (a
// leaf that carries an opaque byte payload, FT mode only).
type kind int

const (
	kindDir kind = iota
	kindFile
)

// node is one node of the tree: it owns its path, holds a
// non-owning back-link to its parent, and — unless it is a file —
// owns two ordered child sets, one per kind (file children before
// directory children at print time falls out of keeping them
// separate rather than re-sorting a merged set). In
// DT mode only dirChildren is ever populated; fileChildren stays
// empty for the lifetime of the tree.
type node struct {
	path   nspath.Path
	parent *node
	kind   kind

	fileChildren childSet
	dirChildren  childSet

	contents []byte // kindFile only
}

// newNode constructs a node for path under parent (nil for a root)
// and, on success, links it into parent's matching child set at its
// sorted position. It does not touch nodeCount or root — the caller
// (Tree.insert) owns that bookkeeping so a mid-chain failure can be
// rolled back as a unit.
func newNode(path nspath.Path, parent *node, k kind) (*node, error) {
	if parent == nil {
		if path.Depth() != 1 {
			return nil, newError(NoSuchPath, "root node path %q must have depth 1", path.String())
		}
	} else {
		if path.Depth() != parent.path.Depth()+1 {
			return nil, newError(NoSuchPath, "path %q is not an immediate child of %q", path.String(), parent.path.String())
		}
		if nspath.SharedPrefixDepth(path, parent.path) != parent.path.Depth() {
			return nil, newError(ConflictingPath, "parent path %q is not a prefix of %q", parent.path.String(), path.String())
		}
		if parent.kind == kindFile {
			return nil, newError(ConflictingPath, "parent %q is a file and cannot have children", parent.path.String())
		}
	}

	n := &node{path: path.Dup(), parent: parent, kind: k}

	if parent != nil {
		set := parent.childSetFor(k)
		found, index := set.search(path)
		if found {
			return nil, newError(AlreadyInTree, "a node already exists at %q", path.String())
		}
		set.insertAt(index, n)
	}

	return n, nil
}

// childSetFor returns the child set that holds children of the given
// kind. DT mode never constructs a kindFile node, so fileChildren
// simply stays empty and every query naturally falls through to
// dirChildren.
func (n *node) childSetFor(k kind) *childSet {
	if k == kindFile {
		return &n.fileChildren
	}
	return &n.dirChildren
}

// numChildren returns the number of children of the given kind.
func (n *node) numChildren(k kind) int {
	return n.childSetFor(k).length()
}

// getChild returns the i'th child of the given kind, or NoSuchPath if
// i is out of range.
func (n *node) getChild(i int, k kind) (*node, error) {
	set := n.childSetFor(k)
	if i < 0 || i >= set.length() {
		return nil, newError(NoSuchPath, "child index %d out of range", i)
	}
	return set.at(i), nil
}

// hasChild reports whether n has a child of the given kind at path,
// and the index where it was found (or where it would be inserted).
func (n *node) hasChild(path nspath.Path, k kind) (bool, int) {
	return n.childSetFor(k).search(path)
}

// destroy recursively frees the subtree rooted at n, detaching n from
// its parent's child set first so the parent's sequence is never
// observed in an inconsistent state mid-destroy. It returns the total
// number of nodes destroyed, including n itself.
func destroy(n *node) int {
	if n.parent != nil {
		set := n.parent.childSetFor(n.kind)
		if idx := set.indexOf(n); idx >= 0 {
			set.removeAt(idx)
		}
		n.parent = nil
	}
	return destroySubtree(n)
}

// destroySubtree counts n and everything beneath it without touching
// any parent link (the link to n's own parent was already cut by the
// caller, destroy, before descending).
func destroySubtree(n *node) int {
	count := 1
	for i := 0; i < n.fileChildren.length(); i++ {
		count += destroySubtree(n.fileChildren.at(i))
	}
	for i := 0; i < n.dirChildren.length(); i++ {
		count += destroySubtree(n.dirChildren.at(i))
	}
	return count
}

// isFile reports whether n is a file node.
func (n *node) isFile() bool { return n.kind == kindFile }

// toDisplayString renders n for the FT variant's dump format. DT
// callers use n.path.String() directly instead.
func (n *node) toDisplayString() string {
	if n.kind == kindFile {
		return "File: " + n.path.String()
	}
	return "Dir:  " + n.path.String()
}
