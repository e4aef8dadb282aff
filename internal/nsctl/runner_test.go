package nsctl

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/anishesg/nstree/pkg/nstree"
)

func newTestRunner(variant nstree.Variant) (*Runner, *bytes.Buffer) {
	tr := nstree.New(variant)
	_ = tr.Init()
	var out bytes.Buffer
	return &Runner{Tree: tr, Logger: slog.New(slog.NewTextHandler(&out, nil)), Out: &out}, &out
}

func TestRunnerScriptScenarios(t *testing.T) {
	cases := []struct {
		name    string
		variant nstree.Variant
		script  string
		want    string
	}{
		{
			name:    "DirTreeDT",
			variant: nstree.DT,
			script: strings.Join([]string{
				"insert-dir 1root/a/c",
				"insert-dir 1root/a/b",
				"insert-dir 1root/a/b/d",
				"ls",
			}, "\n"),
			want: "1root\n1root/a\n1root/a/b\n1root/a/b/d\n1root/a/c\n",
		},
		{
			name:    "FilesBeforeDirsFT",
			variant: nstree.FT,
			script: strings.Join([]string{
				"insert-dir r",
				"insert-file r/d/f.txt hi",
				"insert-dir r/d/e",
				"insert-file r/g x",
				"ls",
			}, "\n"),
			want: "Dir:  r\nFile: r/g\nDir:  r/d\nFile: r/d/f.txt\nDir:  r/d/e\n",
		},
		{
			name:    "InsertDirUnderFileIsNotADirectory",
			variant: nstree.FT,
			script: strings.Join([]string{
				"insert-dir r",
				"insert-file r/f",
				"insert-dir r/f/sub",
			}, "\n"),
			want: "", // checked separately below for the error line
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			runner, out := newTestRunner(tc.variant)
			if err := runner.Run(strings.NewReader(tc.script)); err != nil {
				t.Fatalf("Run: %v", err)
			}
			if tc.name == "InsertDirUnderFileIsNotADirectory" {
				if !strings.Contains(out.String(), "not a directory") {
					t.Errorf("expected a NotADirectory error line, got %q", out.String())
				}
				return
			}
			if !strings.HasSuffix(out.String(), tc.want) {
				t.Errorf("script output mismatch:\ngot:\n%s\nwant suffix:\n%s", out.String(), tc.want)
			}
		})
	}
}

// Replacing file contents isn't a scripted command (the runner's
// grammar has no replace-file verb), so that behavior is covered
// directly through the Tree API in pkg/nstree/tree_test.go instead of
// via a script.

func TestRunnerUnrecognizedCommand(t *testing.T) {
	runner, out := newTestRunner(nstree.FT)
	if err := runner.Run(strings.NewReader("frobnicate x")); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(out.String(), "unrecognized command") {
		t.Errorf("expected an unrecognized-command error line, got %q", out.String())
	}
}

func TestRunnerIgnoresBlankAndCommentLines(t *testing.T) {
	runner, out := newTestRunner(nstree.DT)
	script := "\n# a comment\ninsert-dir a\n\n# another\nls\n"
	if err := runner.Run(strings.NewReader(script)); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out.String() != "insert-dir a: ok\na\n" {
		t.Errorf("got %q", out.String())
	}
}

func TestRunnerStatCommand(t *testing.T) {
	runner, out := newTestRunner(nstree.FT)
	script := strings.Join([]string{
		"insert-dir r",
		"insert-file r/g hello",
		"stat r/g",
		"stat r",
	}, "\n")
	if err := runner.Run(strings.NewReader(script)); err != nil {
		t.Fatalf("Run: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "stat r/g: file, 5 bytes") {
		t.Errorf("expected file stat line, got %q", got)
	}
	if !strings.Contains(got, "stat r: directory") {
		t.Errorf("expected directory stat line, got %q", got)
	}
}
