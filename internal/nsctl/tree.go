package nsctl

import (
	"log/slog"

	"github.com/anishesg/nstree/pkg/config"
	"github.com/anishesg/nstree/pkg/nstree"
)

// ProvideTree constructs and initializes the *nstree.Tree a CLI
// invocation operates on, selecting its variant from cfg.Variant. It
// is always handed back already Init'd, since every nstreectl
// subcommand needs an initialized tree and there is no separate
// "init this process's tree" step once the driver is running.
func ProvideTree(cfg *config.Config, logger *slog.Logger) (*nstree.Tree, error) {
	variant := nstree.FT
	if cfg.Variant == "dt" {
		variant = nstree.DT
	}

	t := nstree.NewWithLogger(variant, logger.With("component", "nstree"))
	if err := t.Init(); err != nil {
		return nil, err
	}
	return t, nil
}
