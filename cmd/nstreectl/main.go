package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/anishesg/nstree/internal/nsctl"
	"github.com/anishesg/nstree/pkg/config"
	"github.com/anishesg/nstree/pkg/nstree"
	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

// CLI is the root command structure for nstreectl, the driver around
// pkg/nstree.
type CLI struct {
	LogLevel  string `short:"l" default:"info" enum:"debug,info,warn,error" help:"Log level (debug, info, warn, error)"`
	LogFormat string `default:"text" enum:"text,json" help:"Log format (text, json)"`
	Variant   string `short:"t" default:"ft" enum:"dt,ft" help:"Tree variant: dt (directories only) or ft (files and directories)"`

	Init       InitCmd       `cmd:"" help:"Initialize an empty tree and report its variant"`
	InsertDir  InsertDirCmd  `cmd:"" name:"insert-dir" help:"Insert a directory, creating missing ancestors"`
	InsertFile InsertFileCmd `cmd:"" name:"insert-file" help:"Insert a file, creating missing ancestors"`
	RmDir      RmDirCmd      `cmd:"" name:"rm-dir" help:"Remove a directory subtree"`
	RmFile     RmFileCmd     `cmd:"" name:"rm-file" help:"Remove a file"`
	Stat       StatCmd       `cmd:"" help:"Report whether a path is a file or directory"`
	Run        RunCmd        `cmd:"" help:"Batch-execute a line-oriented script against one tree"`
}

func (c *CLI) config() *config.Config {
	return &config.Config{LogLevel: c.LogLevel, LogFormat: c.LogFormat, Variant: c.Variant}
}

func (c *CLI) newTree(logger *slog.Logger) (*nstree.Tree, error) {
	return nsctl.ProvideTree(c.config(), logger)
}

// InitCmd builds an empty tree of the configured variant and reports
// success; since the engine is in-memory and this process exits
// immediately after, it is mainly useful as a smoke test that the
// driver and its dependencies wire up correctly.
type InitCmd struct{}

func (cmd *InitCmd) Run(cli *CLI) error {
	logger := nsctl.NewLogger(cli.config())
	t, err := cli.newTree(logger)
	if err != nil {
		return err
	}
	fmt.Printf("initialized empty %s tree\n", variantName(t.Variant()))
	return nil
}

// InsertDirCmd inserts one directory into a fresh tree.
type InsertDirCmd struct {
	Path string `arg:"" help:"Directory path to insert"`
}

func (cmd *InsertDirCmd) Run(cli *CLI) error {
	logger := nsctl.NewLogger(cli.config())
	t, err := cli.newTree(logger)
	if err != nil {
		return err
	}
	if err := t.InsertDir(cmd.Path); err != nil {
		return fmt.Errorf("insert-dir %s: %w", cmd.Path, err)
	}
	fmt.Printf("inserted directory %s\n", cmd.Path)
	return nil
}

// InsertFileCmd inserts one file, with contents read from stdin, into
// a fresh tree.
type InsertFileCmd struct {
	Path string `arg:"" help:"File path to insert"`
}

func (cmd *InsertFileCmd) Run(cli *CLI) error {
	logger := nsctl.NewLogger(cli.config())
	t, err := cli.newTree(logger)
	if err != nil {
		return err
	}
	contents, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("read contents: %w", err)
	}
	if err := t.InsertFile(cmd.Path, contents); err != nil {
		return fmt.Errorf("insert-file %s: %w", cmd.Path, err)
	}
	fmt.Printf("inserted file %s (%s)\n", cmd.Path, humanize.IBytes(uint64(len(contents))))
	return nil
}

// RmDirCmd removes a directory subtree from a fresh, empty tree (a
// single-shot process is only useful here for confirming the
// operation's error behavior on an empty tree).
type RmDirCmd struct {
	Path string `arg:"" help:"Directory path to remove"`
}

func (cmd *RmDirCmd) Run(cli *CLI) error {
	logger := nsctl.NewLogger(cli.config())
	t, err := cli.newTree(logger)
	if err != nil {
		return err
	}
	if err := t.RmDir(cmd.Path); err != nil {
		return fmt.Errorf("rm-dir %s: %w", cmd.Path, err)
	}
	fmt.Printf("removed directory %s\n", cmd.Path)
	return nil
}

// RmFileCmd removes a file from a fresh tree.
type RmFileCmd struct {
	Path string `arg:"" help:"File path to remove"`
}

func (cmd *RmFileCmd) Run(cli *CLI) error {
	logger := nsctl.NewLogger(cli.config())
	t, err := cli.newTree(logger)
	if err != nil {
		return err
	}
	if err := t.RmFile(cmd.Path); err != nil {
		return fmt.Errorf("rm-file %s: %w", cmd.Path, err)
	}
	fmt.Printf("removed file %s\n", cmd.Path)
	return nil
}

// StatCmd reports on a path in a fresh tree, rendered as a
// go-pretty table.
type StatCmd struct {
	Path string `arg:"" help:"Path to stat"`
}

func (cmd *StatCmd) Run(cli *CLI) error {
	logger := nsctl.NewLogger(cli.config())
	t, err := cli.newTree(logger)
	if err != nil {
		return err
	}
	isFile, size, err := t.Stat(cmd.Path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", cmd.Path, err)
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(os.Stdout)
	tw.SetStyle(table.StyleRounded)
	tw.AppendRow(table.Row{"Path", cmd.Path})
	if isFile {
		tw.AppendRow(table.Row{"Kind", "file"})
		tw.AppendRow(table.Row{"Size", humanize.IBytes(uint64(size))})
	} else {
		tw.AppendRow(table.Row{"Kind", "directory"})
	}
	tw.Render()
	return nil
}

// RunCmd drives a script through an fx.App: fx.Provide supplies the
// config, logger, tree and runner; fx.Invoke registers the lifecycle
// hook that does the actual work and shuts the app down when the
// script is drained.
type RunCmd struct {
	Script string `arg:"" help:"Path to a line-oriented command script"`
}

func (cmd *RunCmd) Run(cli *CLI) error {
	app := fx.New(
		fx.Provide(
			func() *config.Config { return cli.config() },
			func() nsctl.ScriptSource { return nsctl.ScriptSource(cmd.Script) },
		),
		fx.WithLogger(func(log *slog.Logger) fxevent.Logger {
			return &fxevent.SlogLogger{Logger: log}
		}),
		nsctl.Module,
		fx.Invoke(nsctl.RegisterRunHooks),
	)

	app.Run()
	return app.Err()
}

func variantName(v nstree.Variant) string {
	if v == nstree.DT {
		return "dt"
	}
	return "ft"
}

func main() {
	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("nstreectl"),
		kong.Description("In-memory hierarchical name-space engine driver"),
		kong.UsageOnError(),
	)
	err := ctx.Run(cli)
	ctx.FatalIfErrorf(err)
}
