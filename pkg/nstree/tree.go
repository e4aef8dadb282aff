// Package nstree implements the core of an in-memory hierarchical
// name-space engine: an ordered tree addressed by absolute,
// slash-delimited paths. A single Tree type covers both supported
// flavors — DT, where every node is a directory, and FT, where a node
// is either a directory or a file leaf carrying an opaque byte
// payload — selected by Variant at construction time, rather than two
// parallel node types.
package nstree

import (
	"log/slog"

	"github.com/anishesg/nstree/pkg/nspath"
)

// Variant selects which of the two tree flavors a Tree implements.
type Variant int

const (
	// DT: every node is a directory, interior or leaf.
	DT Variant = iota
	// FT: every node is a directory or a file; only directories may
	// have children.
	FT
)

// Tree is the process-scope façade: it owns the (initialized, root,
// nodeCount) triple and exposes every operation through a single
// shared traversal algorithm. It is not safe for concurrent use:
// callers that need to share a Tree across goroutines must serialize
// access externally.
type Tree struct {
	variant     Variant
	initialized bool
	root        *node
	nodeCount   int

	// Debug, when true, runs the checker at the entry and exit of
	// InsertDir, InsertFile, RmDir, RmFile and ReplaceFileContents
	// (Init and Destroy are not checked). It is on by default; set it to false
	// in a release-style build to elide the cost.
	Debug bool

	// logger receives the checker's diagnostic output, if any. A nil
	// logger silences diagnostics without changing control flow.
	logger *slog.Logger
}

// New creates an uninitialized Tree of the given variant. Callers
// must call Init before any other operation.
func New(variant Variant) *Tree {
	return &Tree{variant: variant, Debug: true}
}

// NewWithLogger is New plus a logger for checker diagnostics, following
// the convention of deriving every component from one *slog.Logger
// handed down from the CLI driver.
func NewWithLogger(variant Variant, logger *slog.Logger) *Tree {
	t := New(variant)
	t.logger = logger
	return t
}

// defaultTree is the lazily constructed process-wide instance for
// callers that want a singleton rather than a value they construct
// themselves. It is not goroutine-safe, consistent with Tree's
// single-threaded model.
var defaultTree *Tree

// Default returns the process-wide FT tree, constructing it on first
// use. It exists purely for API parity with callers that expect a
// singleton rather than a value they construct themselves; nothing in
// this package requires using it.
func Default() *Tree {
	if defaultTree == nil {
		defaultTree = New(FT)
	}
	return defaultTree
}

// Variant reports which flavor of tree t implements.
func (t *Tree) Variant() Variant { return t.variant }

// NodeCount returns the number of nodes currently reachable from the
// root (0 when the tree is empty or uninitialized).
func (t *Tree) NodeCount() int { return t.nodeCount }

// Init transitions an uninitialized Tree to initialized-and-empty.
func (t *Tree) Init() error {
	if t.initialized {
		return newError(InitializationError, "tree is already initialized")
	}
	t.initialized = true
	t.root = nil
	t.nodeCount = 0
	return nil
}

// Destroy frees the entire tree and transitions back to
// uninitialized.
func (t *Tree) Destroy() error {
	if !t.initialized {
		return newError(InitializationError, "tree is not initialized")
	}
	if t.root != nil {
		t.nodeCount -= destroy(t.root)
		t.root = nil
	}
	t.initialized = false
	return nil
}

// traverse is the single shared traversal algorithm: it walks as far
// towards target as the existing tree allows and
// reports the deepest existing ancestor, plus whether it stopped
// because that ancestor is a file with more path remaining beneath
// it (FT only — a file can never have children, so traversal cannot
// continue past one).
func (t *Tree) traverse(target nspath.Path) (deepest *node, stoppedOnFile bool, err error) {
	if t.root == nil {
		return nil, false, nil
	}

	rootPrefix, perr := target.Prefix(1)
	if perr != nil {
		return nil, false, newError(BadPath, "%s", perr)
	}
	if nspath.Compare(t.root.path, rootPrefix) != 0 {
		return nil, false, newError(ConflictingPath, "root %q is not a prefix of %q", t.root.path.String(), target.String())
	}

	cur := t.root
	depth := target.Depth()
	for level := 2; level <= depth; level++ {
		if t.variant == FT && cur.isFile() {
			return cur, true, nil
		}

		prefix, perr := target.Prefix(level)
		if perr != nil {
			return nil, false, newError(BadPath, "%s", perr)
		}

		if t.variant == FT {
			if found, idx := cur.hasChild(prefix, kindFile); found {
				cur, _ = cur.getChild(idx, kindFile)
				continue
			}
		}
		if found, idx := cur.hasChild(prefix, kindDir); found {
			cur, _ = cur.getChild(idx, kindDir)
			continue
		}
		break
	}

	return cur, false, nil
}

// findNode parses s and requires traverse to land exactly on it.
func (t *Tree) findNode(s string) (*node, error) {
	if !t.initialized {
		return nil, newError(InitializationError, "tree is not initialized")
	}

	target, err := nspath.New(s)
	if err != nil {
		return nil, newError(BadPath, "%s", err)
	}

	deepest, _, err := t.traverse(target)
	if err != nil {
		return nil, err
	}
	if deepest == nil || nspath.Compare(deepest.path, target) != 0 {
		return nil, newError(NoSuchPath, "no node at %q", s)
	}
	return deepest, nil
}

// insert implements the shared chain-building loop behind InsertDir
// and InsertFile. leafKind is the kind the final node in the chain
// gets; every intermediate node is a directory regardless of variant.
// contents is only consulted when leafKind == kindFile.
func (t *Tree) insert(s string, leafKind kind, contents []byte) error {
	if !t.initialized {
		return newError(InitializationError, "tree is not initialized")
	}

	target, err := nspath.New(s)
	if err != nil {
		return newError(BadPath, "%s", err)
	}

	if leafKind == kindFile && target.Depth() == 1 {
		return newError(ConflictingPath, "a file cannot be the tree root")
	}

	deepest, stoppedOnFile, err := t.traverse(target)
	if err != nil {
		return err
	}
	if stoppedOnFile {
		return newError(NotADirectory, "a proper prefix of %q is a file", s)
	}
	if deepest != nil && nspath.Compare(deepest.path, target) == 0 {
		return newError(AlreadyInTree, "%q already exists", s)
	}

	depth := target.Depth()
	startLevel := 1
	if deepest != nil {
		startLevel = deepest.path.Depth() + 1
	}

	parent := deepest
	var chainHead *node
	newCount := 0

	for level := startLevel; level <= depth; level++ {
		prefix, perr := target.Prefix(level)
		if perr != nil {
			t.rollbackChain(chainHead)
			return newError(BadPath, "%s", perr)
		}

		k := kindDir
		if level == depth {
			k = leafKind
		}

		child, nerr := newNode(prefix, parent, k)
		if nerr != nil {
			t.rollbackChain(chainHead)
			return nerr
		}
		if k == kindFile {
			child.contents = append([]byte(nil), contents...)
		}

		if chainHead == nil {
			chainHead = child
		}
		parent = child
		newCount++
	}

	if t.root == nil {
		t.root = chainHead
	}
	t.nodeCount += newCount

	return nil
}

// rollbackChain undoes a partially constructed insert chain: the
// first new node is the only one linked into pre-existing tree
// state (every node after it is parented by another brand-new node),
// so detaching that one node discards the whole chain as a unit and
// restores the tree to its pre-call state.
func (t *Tree) rollbackChain(head *node) {
	if head == nil {
		return
	}
	if head.parent != nil {
		set := head.parent.childSetFor(head.kind)
		if idx := set.indexOf(head); idx >= 0 {
			set.removeAt(idx)
		}
	}
}

// InsertDir creates the directory at path, creating any missing
// intermediate directories along the way.
func (t *Tree) InsertDir(path string) error {
	return t.withChecker(func() error {
		return t.insert(path, kindDir, nil)
	})
}

// InsertFile creates the file at path with a copy of contents,
// creating any missing intermediate directories along the way. FT
// variant only; on a DT tree it returns ConflictingPath and inserts
// nothing.
func (t *Tree) InsertFile(path string, contents []byte) error {
	return t.withChecker(func() error {
		if t.variant != FT {
			return newError(ConflictingPath, "InsertFile is only valid on an FT-variant tree")
		}
		return t.insert(path, kindFile, contents)
	})
}

// RmDir removes the directory subtree at path.
func (t *Tree) RmDir(path string) error {
	return t.withChecker(func() error {
		n, err := t.findNode(path)
		if err != nil {
			return err
		}
		if n.isFile() {
			return newError(NotADirectory, "%q is a file", path)
		}
		t.nodeCount -= destroy(n)
		if t.nodeCount == 0 {
			t.root = nil
		}
		return nil
	})
}

// RmFile removes the file at path.
func (t *Tree) RmFile(path string) error {
	return t.withChecker(func() error {
		n, err := t.findNode(path)
		if err != nil {
			return err
		}
		if !n.isFile() {
			return newError(NotAFile, "%q is a directory", path)
		}
		t.nodeCount -= destroy(n)
		if t.nodeCount == 0 {
			t.root = nil
		}
		return nil
	})
}

// ContainsDir reports whether path names an existing directory.
func (t *Tree) ContainsDir(path string) bool {
	n, err := t.findNode(path)
	if err != nil {
		return false
	}
	if t.variant == DT {
		return true
	}
	return !n.isFile()
}

// ContainsFile reports whether path names an existing file.
func (t *Tree) ContainsFile(path string) bool {
	n, err := t.findNode(path)
	if err != nil {
		return false
	}
	return n.isFile()
}

// GetFileContents returns an alias of the file's current payload. The
// caller must not mutate the returned slice; a subsequent
// ReplaceFileContents invalidates it.
func (t *Tree) GetFileContents(path string) ([]byte, error) {
	n, err := t.findNode(path)
	if err != nil {
		return nil, err
	}
	if !n.isFile() {
		return nil, newError(NotAFile, "%q is a directory", path)
	}
	return n.contents, nil
}

// ReplaceFileContents installs a copy of newContents as the file's
// payload and returns an independent copy of the previous payload
// (nil if it was empty). Ownership of the returned copy passes to the
// caller.
func (t *Tree) ReplaceFileContents(path string, newContents []byte) (old []byte, err error) {
	err = t.withChecker(func() error {
		n, ferr := t.findNode(path)
		if ferr != nil {
			return ferr
		}
		if !n.isFile() {
			return newError(NotAFile, "%q is a directory", path)
		}
		if len(n.contents) > 0 {
			old = append([]byte(nil), n.contents...)
		}
		n.contents = append([]byte(nil), newContents...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return old, nil
}

// Stat reports whether path is a file and, if so, its payload length.
// For a directory, size is always 0 (the zero value) and carries no
// meaning — callers must gate on isFile before reading size.
func (t *Tree) Stat(path string) (isFile bool, size int64, err error) {
	n, err := t.findNode(path)
	if err != nil {
		return false, 0, err
	}
	if n.isFile() {
		return true, int64(len(n.contents)), nil
	}
	return false, 0, nil
}

// ToString renders the entire tree as a pre-order dump: at each
// directory, file children are emitted before directory children, and
// each group is emitted in its stored (ascending-by-path) order. It
// returns an empty string for an empty but initialized tree, and an
// error if the tree is uninitialized.
func (t *Tree) ToString() (string, error) {
	if !t.initialized {
		return "", newError(InitializationError, "tree is not initialized")
	}
	if t.root == nil {
		return "", nil
	}

	var sb []byte
	t.preOrderAppend(t.root, &sb)
	return string(sb), nil
}

func (t *Tree) preOrderAppend(n *node, sb *[]byte) {
	if t.variant == FT {
		*sb = append(*sb, n.toDisplayString()...)
	} else {
		*sb = append(*sb, n.path.String()...)
	}
	*sb = append(*sb, '\n')

	for i := 0; i < n.fileChildren.length(); i++ {
		t.preOrderAppend(n.fileChildren.at(i), sb)
	}
	for i := 0; i < n.dirChildren.length(); i++ {
		t.preOrderAppend(n.dirChildren.at(i), sb)
	}
}

// withChecker wraps a mutating operation with a checker pass before
// and after. A failed checker pass never changes the operation's
// outcome — it only logs — because the checker is pure and
// side-effect-free.
func (t *Tree) withChecker(op func() error) error {
	if t.Debug {
		t.check("entry")
	}
	err := op()
	if t.Debug {
		t.check("exit")
	}
	return err
}

func (t *Tree) check(when string) {
	if !Check(t.initialized, t.root, t.nodeCount, t.variant, t.logger) && t.logger != nil {
		t.logger.Warn("tree invariant check failed, see preceding diagnostics", "when", when)
	}
}
