package nspath

import "testing"

func TestNewRejectsMalformed(t *testing.T) {
	cases := []string{"", "/a", "a/", "a//b", "a/\x00/b"}
	for _, s := range cases {
		if _, err := New(s); err == nil {
			t.Errorf("New(%q): expected error, got none", s)
		} else if !IsBadPath(err) {
			t.Errorf("New(%q): expected a bad-path error, got %v", s, err)
		}
	}
}

func TestNewRoundTrip(t *testing.T) {
	p, err := New("1root/a/b")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if p.Depth() != 3 {
		t.Errorf("expected depth 3, got %d", p.Depth())
	}
	if p.String() != "1root/a/b" {
		t.Errorf("expected canonical string round-trip, got %q", p.String())
	}
	if p.StrLength() != len("1root/a/b") {
		t.Errorf("unexpected StrLength: %d", p.StrLength())
	}
}

func TestPrefix(t *testing.T) {
	p, _ := New("r/d/e/f")
	if _, err := p.Prefix(0); err == nil {
		t.Error("Prefix(0): expected error")
	}
	if _, err := p.Prefix(5); err == nil {
		t.Error("Prefix(depth+1): expected error")
	}
	pre, err := p.Prefix(2)
	if err != nil {
		t.Fatalf("Prefix(2): %v", err)
	}
	if pre.String() != "r/d" {
		t.Errorf("expected r/d, got %q", pre.String())
	}
}

func TestSegmentBoundaryOrdering(t *testing.T) {
	// a/b precedes a/b/c precedes a/b.c precedes a/c: the segment "b"
	// is a prefix of "b.c", so the whole subtree of a/b sorts before a/b.c
	ab, _ := New("a/b")
	abc1, _ := New("a/b.c")
	abc2, _ := New("a/b/c")
	ac, _ := New("a/c")

	order := []Path{ab, abc2, abc1, ac}
	for i := 0; i+1 < len(order); i++ {
		if Compare(order[i], order[i+1]) >= 0 {
			t.Errorf("expected %q < %q", order[i].String(), order[i+1].String())
		}
	}
}

func TestSharedPrefixDepth(t *testing.T) {
	a, _ := New("r/d/e")
	b, _ := New("r/d/f/g")
	if got := SharedPrefixDepth(a, b); got != 2 {
		t.Errorf("expected shared prefix depth 2, got %d", got)
	}
}

func TestCompareString(t *testing.T) {
	p, _ := New("a/b")
	if CompareString(p, "a/b") != 0 {
		t.Error("expected equal")
	}
	if CompareString(p, "a/b.c") >= 0 {
		t.Error("expected a/b < a/b.c")
	}
}

func TestDupIsIndependent(t *testing.T) {
	p, _ := New("a/b/c")
	d := p.Dup()
	if Compare(p, d) != 0 {
		t.Error("expected Dup to compare equal")
	}
	if &p.segments[0] == &d.segments[0] {
		t.Error("expected Dup to have an independent backing array")
	}
}
