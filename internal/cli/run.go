package cli

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/ayn2op/dyntable"
	"github.com/ayn2op/dyntable/config"
	"github.com/ayn2op/dyntable/demo"
)

// runTable shows the demo table until the user quits or ctx is cancelled. A
// cancelled ctx is reported as its error.
func runTable(ctx context.Context, cfg config.Config, kind demo.Kind, logger *log.Logger) error {
	catalog := demo.DefaultCatalog()
	if cfg.Demo.Catalog != "" {
		c, err := demo.LoadCatalog(cfg.Demo.Catalog)
		if err != nil {
			return err
		}
		catalog = c
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	source := demo.NewSource(catalog).
		SetTimeout(cfg.Demo.Timeout.Duration).
		SetLogger(logger)
	defer source.CancelAll()

	app := dyntable.NewApplication()
	post := func(f func()) { go app.QueueUpdateDraw(f) }

	u := newUI(ctx, source, kind, cfg, post, logger)
	u.table.SetScheduler(app)
	app.SetRoot(u)

	stop := context.AfterFunc(ctx, app.Stop)
	defer stop()

	logger.Info("table opened", "kind", kind, "rows", source.Count(kind))
	err := app.Run()
	u.table.Close()
	if err != nil {
		return err
	}
	return context.Cause(ctx)
}
