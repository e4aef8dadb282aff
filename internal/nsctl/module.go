package nsctl

import (
	"context"
	"os"

	"go.uber.org/fx"
)

// Module wires a Runner together with its Logger and Tree
// dependencies, following the convention of one fx.Module per
// component.
var Module = fx.Module("nsctl",
	fx.Provide(
		NewLogger,
		ProvideTree,
		NewRunner,
	),
)

// ScriptSource is supplied by cmd/nstreectl to name the script file
// the run subcommand should drain; it is a distinct type rather than
// a bare string so it composes cleanly with fx's type-based injection.
type ScriptSource string

// RegisterRunHooks appends an fx.Hook that drains script through
// runner on application start and shuts the app down when finished.
// The hook runs the script to completion synchronously and requests
// its own shutdown, since a batch driver has no long-lived listener
// to tear down.
func RegisterRunHooks(lc fx.Lifecycle, runner *Runner, script ScriptSource, shutdowner fx.Shutdowner) {
	runner.Out = os.Stdout

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			f, err := os.Open(string(script))
			if err != nil {
				return err
			}
			defer f.Close()

			runErr := runner.Run(f)
			if runErr != nil {
				runner.Logger.Error("script aborted", "error", runErr)
			}
			return shutdowner.Shutdown(fx.ExitCode(exitCodeFor(runErr)))
		},
	})
}

func exitCodeFor(err error) int {
	if err != nil {
		return 1
	}
	return 0
}
