// Package nspath implements the immutable, slash-delimited absolute
// path value used to address nodes in an nstree. A Path is an ordered
// sequence of non-empty segments; ordering between two paths is
// always segment-wise, never a raw byte compare, so that a directory
// always sorts strictly after its preceding sibling and all of that
// sibling's descendants.
package nspath

import "strings"

// Path is an immutable absolute path: an ordered, non-empty sequence
// of segments plus its cached canonical string form. The zero value
// is not a valid Path; construct one with New.
type Path struct {
	segments []string
	cached   string
}

// New parses a canonical slash-delimited string into a Path. It fails
// if s is empty, contains a NUL byte, or contains an empty segment
// (a leading, trailing, or doubled '/').
func New(s string) (Path, error) {
	if s == "" {
		return Path{}, errBadPath("empty path")
	}
	if strings.IndexByte(s, 0) >= 0 {
		return Path{}, errBadPath("path contains a NUL byte")
	}

	segments := strings.Split(s, "/")
	for _, seg := range segments {
		if seg == "" {
			return Path{}, errBadPath("path contains an empty segment")
		}
	}

	return fromSegments(segments), nil
}

// fromSegments builds a Path from already-validated, non-empty
// segments, caching the canonical joined string.
func fromSegments(segments []string) Path {
	owned := make([]string, len(segments))
	copy(owned, segments)
	return Path{segments: owned, cached: strings.Join(owned, "/")}
}

// Dup returns a structural copy of p with an independent backing
// array, so that a caller holding p and a caller holding its Dup can
// never observe one mutating the other through aliased storage.
func (p Path) Dup() Path {
	return fromSegments(p.segments)
}

// Depth returns the number of segments in p. A valid Path always has
// depth >= 1.
func (p Path) Depth() int {
	return len(p.segments)
}

// String returns the cached canonical "s1/s2/.../sN" form.
func (p Path) String() string {
	return p.cached
}

// StrLength returns the length in bytes of p.String().
func (p Path) StrLength() int {
	return len(p.cached)
}

// Segment returns the i'th segment (0-indexed).
func (p Path) Segment(i int) string {
	return p.segments[i]
}

// Prefix returns a new Path consisting of the first n segments of p.
// It fails if n is not in [1, p.Depth()].
func (p Path) Prefix(n int) (Path, error) {
	if n <= 0 || n > len(p.segments) {
		return Path{}, errBadPath("prefix length out of range")
	}
	return fromSegments(p.segments[:n]), nil
}

// Compare orders a and b segment-wise: it compares segments pairwise
// until one differs or one path runs out. A shorter path that is a
// strict prefix of a longer one sorts first. This is NOT a raw string
// compare: "a/b" < "a/b.c" < "a/c", even though the byte '.' sorts
// before '/' would otherwise place "a/b.c" ahead of "a/b/x".
func Compare(a, b Path) int {
	return compareSegments(a.segments, b.segments)
}

// CompareString compares p against s as if s had been parsed into a
// Path with New, using the same segment-wise order as Compare. s need
// not itself be a valid canonical path; it is split on '/' for the
// purpose of the comparison only.
func CompareString(p Path, s string) int {
	return compareSegments(p.segments, strings.Split(s, "/"))
}

func compareSegments(a, b []string) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if c := strings.Compare(a[i], b[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}

// SharedPrefixDepth returns the length of the longest common segment
// prefix of a and b.
func SharedPrefixDepth(a, b Path) int {
	n := a.Depth()
	if b.Depth() < n {
		n = b.Depth()
	}
	i := 0
	for i < n && a.segments[i] == b.segments[i] {
		i++
	}
	return i
}

// badPathError is returned by New and Prefix. Kept unexported and
// minimal: nstree reports any error from New or Prefix under its own
// BadPath Kind without inspecting this type.
type badPathError struct{ msg string }

func (e *badPathError) Error() string { return "bad path: " + e.msg }

func errBadPath(msg string) error { return &badPathError{msg: msg} }

// IsBadPath reports whether err was produced by this package's
// parsing/prefix validation.
func IsBadPath(err error) bool {
	_, ok := err.(*badPathError)
	return ok
}
