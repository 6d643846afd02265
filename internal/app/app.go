// Package app wires the engine together for embedding callers and the CLI:
// an isolated logger, a catalog populated with the core components, and the
// render entry point.
package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/apowers313/pupt/internal/component"
	"github.com/apowers313/pupt/internal/ctxlog"
	"github.com/apowers313/pupt/internal/element"
	"github.com/apowers313/pupt/internal/render"
)

// Config holds the settings an App instance runs with.
type Config struct {
	LogFormat string
	LogLevel  string
}

// App encapsulates the engine's dependencies for one embedding caller. Each
// App owns an isolated logger and catalog; nothing global is touched.
type App struct {
	outW    io.Writer
	logger  *slog.Logger
	catalog *component.Catalog
}

// New builds an App with the core components registered, plus any extra
// modules the caller supplies.
func New(outW io.Writer, cfg *Config, modules ...component.Module) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)

	catalog := component.NewCatalog()
	all := append(append([]component.Module{}, coreModules...), modules...)
	for _, mod := range all {
		mod.Register(catalog)
	}
	logger.Debug("Component catalog populated.", "components", catalog.Names())

	return &App{outW: outW, logger: logger, catalog: catalog}
}

// Catalog returns the application's component catalog.
func (a *App) Catalog() *component.Catalog {
	return a.catalog
}

// Logger returns the application's logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// RenderDocument runs one render of root with this app's catalog and logger
// attached.
func (a *App) RenderDocument(ctx context.Context, root *element.Element, opts render.Options) *render.Result {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	opts.Catalog = a.catalog
	return render.Render(ctx, root, opts)
}
