package nstree

import (
	"bytes"
	"errors"
	"testing"
)

func TestToStringDirTreeDT(t *testing.T) {
	tr := New(DT)
	mustSucceed(t, tr.Init())
	mustSucceed(t, tr.InsertDir("1root/a/c"))
	mustSucceed(t, tr.InsertDir("1root/a/b"))
	mustSucceed(t, tr.InsertDir("1root/a/b/d"))

	got, err := tr.ToString()
	if err != nil {
		t.Fatalf("ToString: %v", err)
	}
	want := "1root\n1root/a\n1root/a/b\n1root/a/b/d\n1root/a/c\n"
	if got != want {
		t.Errorf("ToString mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestToStringFilesBeforeDirsFT(t *testing.T) {
	tr := New(FT)
	mustSucceed(t, tr.Init())
	mustSucceed(t, tr.InsertDir("r"))
	mustSucceed(t, tr.InsertFile("r/d/f.txt", []byte("hi")))
	mustSucceed(t, tr.InsertDir("r/d/e"))
	mustSucceed(t, tr.InsertFile("r/g", []byte("x")))

	got, err := tr.ToString()
	if err != nil {
		t.Fatalf("ToString: %v", err)
	}
	want := "Dir:  r\nFile: r/g\nDir:  r/d\nFile: r/d/f.txt\nDir:  r/d/e\n"
	if got != want {
		t.Errorf("ToString mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestReplaceFileContentsReturnsOldCopy(t *testing.T) {
	tr := New(FT)
	mustSucceed(t, tr.Init())
	mustSucceed(t, tr.InsertDir("r"))
	mustSucceed(t, tr.InsertFile("r/g", []byte("x")))

	old, err := tr.ReplaceFileContents("r/g", []byte("yz"))
	if err != nil {
		t.Fatalf("ReplaceFileContents: %v", err)
	}
	if !bytes.Equal(old, []byte("x")) {
		t.Errorf("expected old contents %q, got %q", "x", old)
	}

	cur, err := tr.GetFileContents("r/g")
	if err != nil {
		t.Fatalf("GetFileContents: %v", err)
	}
	if !bytes.Equal(cur, []byte("yz")) {
		t.Errorf("expected current contents %q, got %q", "yz", cur)
	}

	isFile, size, err := tr.Stat("r/g")
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if !isFile || size != 2 {
		t.Errorf("expected (isFile=true, size=2), got (%v, %d)", isFile, size)
	}
}

func TestInsertDirUnderFileIsNotADirectory(t *testing.T) {
	tr := New(FT)
	mustSucceed(t, tr.Init())
	mustSucceed(t, tr.InsertDir("r"))
	mustSucceed(t, tr.InsertFile("r/f", nil))

	before, _ := tr.ToString()

	err := tr.InsertDir("r/f/sub")
	if !errors.Is(err, ErrNotADirectory) {
		t.Fatalf("expected NotADirectory, got %v", err)
	}

	after, _ := tr.ToString()
	if before != after {
		t.Errorf("tree changed after a failed insert:\nbefore:\n%s\nafter:\n%s", before, after)
	}
}

func TestDestroyThenReinitIsEmpty(t *testing.T) {
	tr := New(FT)
	mustSucceed(t, tr.Init())
	mustSucceed(t, tr.InsertDir("r"))
	mustSucceed(t, tr.InsertFile("r/g", []byte("x")))

	mustSucceed(t, tr.Destroy())

	if tr.ContainsDir("r") {
		t.Error("expected ContainsDir to be false after destroy")
	}
	if _, _, err := tr.Stat("r"); !errors.Is(err, ErrInitializationError) {
		t.Errorf("expected InitializationError from Stat after destroy, got %v", err)
	}

	mustSucceed(t, tr.Init())
	if tr.NodeCount() != 0 {
		t.Errorf("expected empty tree after re-init, got node count %d", tr.NodeCount())
	}
	s, err := tr.ToString()
	if err != nil || s != "" {
		t.Errorf("expected empty dump after re-init, got %q (err=%v)", s, err)
	}
}

func TestInsertDirThenContains(t *testing.T) {
	tr := New(DT)
	mustSucceed(t, tr.Init())
	mustSucceed(t, tr.InsertDir("a/b/c"))
	if !tr.ContainsDir("a/b/c") {
		t.Error("expected a/b/c to exist")
	}
	if !tr.ContainsDir("a/b") {
		t.Error("expected intermediate a/b to exist")
	}
}

func TestInsertFileThenRoundTrip(t *testing.T) {
	tr := New(FT)
	mustSucceed(t, tr.Init())
	mustSucceed(t, tr.InsertFile("p/q", []byte("payload")))

	got, err := tr.GetFileContents("p/q")
	if err != nil {
		t.Fatalf("GetFileContents: %v", err)
	}
	if !bytes.Equal(got, []byte("payload")) {
		t.Errorf("expected payload round-trip, got %q", got)
	}
}

func TestDoubleInsertIsAlreadyInTree(t *testing.T) {
	tr := New(DT)
	mustSucceed(t, tr.Init())
	mustSucceed(t, tr.InsertDir("a/b"))

	before := tr.NodeCount()
	err := tr.InsertDir("a/b")
	if !errors.Is(err, ErrAlreadyInTree) {
		t.Fatalf("expected AlreadyInTree, got %v", err)
	}
	if tr.NodeCount() != before {
		t.Errorf("expected node count unchanged, got %d want %d", tr.NodeCount(), before)
	}
}

func TestInsertThenRemoveRestoresState(t *testing.T) {
	tr := New(DT)
	mustSucceed(t, tr.Init())
	mustSucceed(t, tr.InsertDir("a"))

	before, _ := tr.ToString()
	beforeCount := tr.NodeCount()

	mustSucceed(t, tr.InsertDir("a/b"))
	mustSucceed(t, tr.RmDir("a/b"))

	after, _ := tr.ToString()
	if before != after {
		t.Errorf("expected dump to match pre-insert state, got %q want %q", after, before)
	}
	if tr.NodeCount() != beforeCount {
		t.Errorf("expected node count to match pre-insert state, got %d want %d", tr.NodeCount(), beforeCount)
	}
}

func TestDoubleInitAndDestroy(t *testing.T) {
	tr := New(FT)
	mustSucceed(t, tr.Init())
	if err := tr.Init(); !errors.Is(err, ErrInitializationError) {
		t.Errorf("expected InitializationError on double init, got %v", err)
	}

	mustSucceed(t, tr.Destroy())
	if err := tr.Destroy(); !errors.Is(err, ErrInitializationError) {
		t.Errorf("expected InitializationError on double destroy, got %v", err)
	}
}

func TestDepthZeroPathIsBadPath(t *testing.T) {
	tr := New(DT)
	mustSucceed(t, tr.Init())
	if err := tr.InsertDir(""); !errors.Is(err, ErrBadPath) {
		t.Errorf("expected BadPath, got %v", err)
	}
}

func TestDepthOneInsertFileIsConflictingPath(t *testing.T) {
	tr := New(FT)
	mustSucceed(t, tr.Init())
	if err := tr.InsertFile("root", nil); !errors.Is(err, ErrConflictingPath) {
		t.Errorf("expected ConflictingPath, got %v", err)
	}
}

func TestRmFileOnDirectoryIsNotAFile(t *testing.T) {
	tr := New(FT)
	mustSucceed(t, tr.Init())
	mustSucceed(t, tr.InsertDir("a"))
	if err := tr.RmFile("a"); !errors.Is(err, ErrNotAFile) {
		t.Errorf("expected NotAFile, got %v", err)
	}
}

func TestRmDirOnFileIsNotADirectory(t *testing.T) {
	tr := New(FT)
	mustSucceed(t, tr.Init())
	mustSucceed(t, tr.InsertDir("a"))
	mustSucceed(t, tr.InsertFile("a/f", nil))
	if err := tr.RmDir("a/f"); !errors.Is(err, ErrNotADirectory) {
		t.Errorf("expected NotADirectory, got %v", err)
	}
}

func mustSucceed(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
}
