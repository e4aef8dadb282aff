package nsctl

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/anishesg/nstree/pkg/nstree"
)

// Runner executes a line-oriented script against a single Tree,
// writing each command's response to Out (one line per command, except
// ls, which writes the whole tree dump). It is the engine
// behind the "run" subcommand.
//
// Script grammar, one command per line, blank lines and lines starting
// with '#' ignored:
//
//	insert-dir PATH
//	insert-file PATH CONTENTS
//	rm-dir PATH
//	rm-file PATH
//	stat PATH
//	ls
type Runner struct {
	Tree   *nstree.Tree
	Logger *slog.Logger
	Out    io.Writer
}

// NewRunner builds a Runner bound to tree, logging, and an output
// sink. fx supplies Tree and Logger; Out is fixed to the process's
// stdout by RegisterRunHooks, kept as a field here (rather
// than a package-level os.Stdout reference) so tests can capture it.
func NewRunner(tree *nstree.Tree, logger *slog.Logger) *Runner {
	return &Runner{Tree: tree, Logger: logger.With("component", "runner")}
}

// Run drains every line of src as a command. It returns only an error
// from reading src: a command's own failure does not abort the script
// and is not returned; it is reported on Out and the runner continues,
// the way a shell script run without -e keeps going after a non-fatal
// command failure.
func (r *Runner) Run(src io.Reader) error {
	scanner := bufio.NewScanner(src)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := r.runLine(line); err != nil {
			fmt.Fprintf(r.Out, "line %d: %s: error: %s\n", lineNo, line, err)
			r.Logger.Warn("script command failed", "line", lineNo, "command", line, "error", err)
		}
	}
	return scanner.Err()
}

func (r *Runner) runLine(line string) error {
	fields := strings.SplitN(line, " ", 3)
	cmd := fields[0]

	switch cmd {
	case "insert-dir":
		if len(fields) < 2 {
			return fmt.Errorf("insert-dir requires a PATH argument")
		}
		if err := r.Tree.InsertDir(fields[1]); err != nil {
			return err
		}
		fmt.Fprintf(r.Out, "insert-dir %s: ok\n", fields[1])

	case "insert-file":
		if len(fields) < 2 {
			return fmt.Errorf("insert-file requires a PATH argument")
		}
		var contents []byte
		if len(fields) == 3 {
			contents = []byte(fields[2])
		}
		if err := r.Tree.InsertFile(fields[1], contents); err != nil {
			return err
		}
		fmt.Fprintf(r.Out, "insert-file %s: ok\n", fields[1])

	case "rm-dir":
		if len(fields) < 2 {
			return fmt.Errorf("rm-dir requires a PATH argument")
		}
		if err := r.Tree.RmDir(fields[1]); err != nil {
			return err
		}
		fmt.Fprintf(r.Out, "rm-dir %s: ok\n", fields[1])

	case "rm-file":
		if len(fields) < 2 {
			return fmt.Errorf("rm-file requires a PATH argument")
		}
		if err := r.Tree.RmFile(fields[1]); err != nil {
			return err
		}
		fmt.Fprintf(r.Out, "rm-file %s: ok\n", fields[1])

	case "stat":
		if len(fields) < 2 {
			return fmt.Errorf("stat requires a PATH argument")
		}
		isFile, size, err := r.Tree.Stat(fields[1])
		if err != nil {
			return err
		}
		if isFile {
			fmt.Fprintf(r.Out, "stat %s: file, %d bytes\n", fields[1], size)
		} else {
			fmt.Fprintf(r.Out, "stat %s: directory\n", fields[1])
		}

	case "ls":
		dump, err := r.Tree.ToString()
		if err != nil {
			return err
		}
		fmt.Fprint(r.Out, dump)

	default:
		return fmt.Errorf("unrecognized command %q", cmd)
	}

	return nil
}
