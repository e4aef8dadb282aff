package nstree

import (
	"log/slog"

	"github.com/anishesg/nstree/pkg/nspath"
)

// Check implements the recursive structural validator. It is pure and
// side-effect-free with respect to the tree — it only ever reads —
// and its only effect on the outside world is best-effort diagnostic
// logging through logger (a nil logger silences diagnostics entirely;
// no caller may depend on their exact wording).
//
// It walks the tree recursively with a visited-node counter, checking
// node validity, the parent-path contract, sibling ordering,
// duplicate-path freedom, and (for FT) that no file has children.
func Check(initialized bool, root *node, expectedCount int, variant Variant, logger *slog.Logger) bool {
	if !initialized {
		if root != nil {
			warn(logger, "uninitialized tree has a non-nil root")
			return false
		}
		if expectedCount != 0 {
			warn(logger, "uninitialized tree has a non-zero count", "count", expectedCount)
			return false
		}
		return true
	}

	visited := 0
	ok := checkSubtree(root, nil, variant, logger, &visited)
	if !ok {
		return false
	}
	if visited != expectedCount {
		warn(logger, "node count mismatch", "expected", expectedCount, "actual", visited)
		return false
	}
	return true
}

func checkSubtree(n *node, parent *node, variant Variant, logger *slog.Logger, visited *int) bool {
	if n == nil {
		return true
	}

	if n.path.Depth() == 0 {
		warn(logger, "node has an empty path")
		return false
	}

	if parent != nil {
		if nspath.SharedPrefixDepth(n.path, parent.path) != parent.path.Depth() ||
			n.path.Depth() != parent.path.Depth()+1 {
			warn(logger, "parent path is not the immediate prefix of child path",
				"parent", parent.path.String(), "child", n.path.String())
			return false
		}
		if n.parent != parent {
			warn(logger, "node's back-link does not point at its actual parent", "node", n.path.String())
			return false
		}
	} else if n.parent != nil {
		warn(logger, "root node has a non-nil parent", "node", n.path.String())
		return false
	}

	*visited++

	if variant == FT && n.isFile() {
		if n.fileChildren.length() != 0 || n.dirChildren.length() != 0 {
			warn(logger, "file node has children", "node", n.path.String())
			return false
		}
		return true
	}

	if !checkSiblingOrder(n.dirChildren, logger, "directory") {
		return false
	}
	if !checkSiblingOrder(n.fileChildren, logger, "file") {
		return false
	}

	for i := 0; i < n.fileChildren.length(); i++ {
		if !checkSubtree(n.fileChildren.at(i), n, variant, logger, visited) {
			return false
		}
	}
	for i := 0; i < n.dirChildren.length(); i++ {
		if !checkSubtree(n.dirChildren.at(i), n, variant, logger, visited) {
			return false
		}
	}

	return true
}

// checkSiblingOrder verifies that a child set is strictly increasing
// by path, which also rules out duplicate siblings (a duplicate would
// compare equal to its neighbor, failing the strict inequality).
func checkSiblingOrder(set childSet, logger *slog.Logger, label string) bool {
	for i := 0; i+1 < set.length(); i++ {
		if nspath.Compare(set.at(i).path, set.at(i+1).path) >= 0 {
			warn(logger, "siblings are not strictly increasing by path",
				"kind", label, "first", set.at(i).path.String(), "second", set.at(i+1).path.String())
			return false
		}
	}
	return true
}

func warn(logger *slog.Logger, msg string, args ...any) {
	if logger == nil {
		return
	}
	logger.Warn(msg, args...)
}
