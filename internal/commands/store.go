package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	mvcgen "github.com/goliatone/go-mvcgen"
	"github.com/goliatone/go-mvcgen/pkg/config"
	"github.com/goliatone/go-mvcgen/pkg/generators/model"
	"github.com/goliatone/go-mvcgen/pkg/generators/view"
	"github.com/goliatone/go-mvcgen/pkg/macro"
	"github.com/goliatone/go-mvcgen/pkg/orchestrator"
	"github.com/goliatone/go-mvcgen/pkg/render/template/gotemplate"
	"github.com/goliatone/go-mvcgen/pkg/schema"
	"github.com/goliatone/go-mvcgen/pkg/store/sqlstore"
)

// ErrNoStore is returned when neither the config file nor the flags select a
// schema store.
var ErrNoStore = errors.New("commands: no schema store configured (use --catalog, --sqlite or --openapi)")

// store is the provider and lister of one configured backend.
type store interface {
	schema.Provider
	schema.Lister
}

func openStore(ctx context.Context, cfg config.Store, logger *slog.Logger) (store, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Kind() {
	case "catalog":
		logger.Debug("opening catalog", slog.String("path", cfg.Catalog))
		c, err := mvcgen.OpenCatalog(cfg.Catalog, cfg.AllowHTTP)
		if err != nil {
			return nil, nil, err
		}
		return c, noop, nil
	case "sqlite":
		logger.Debug("opening sqlite store", slog.String("dsn", cfg.SQLite), slog.String("table", cfg.Table))
		var options []sqlstore.Option
		if cfg.Table != "" {
			options = append(options, sqlstore.WithTable(cfg.Table))
		}
		s, db, err := sqlstore.OpenSQLite(ctx, cfg.SQLite, options...)
		if err != nil {
			return nil, nil, err
		}
		return s, db.Close, nil
	case "openapi":
		logger.Debug("loading openapi document", slog.String("source", cfg.OpenAPI))
		p, err := mvcgen.OpenOpenAPI(ctx, cfg.OpenAPI, cfg.AllowHTTP)
		if err != nil {
			return nil, nil, err
		}
		return p, noop, nil
	default:
		return nil, nil, ErrNoStore
	}
}

func captionResolver(cfg *config.Config) (macro.Resolver, error) {
	options := []macro.Option{macro.WithCulture(cfg.Culture)}
	if cfg.Resources != "" {
		f, err := os.Open(cfg.Resources)
		if err != nil {
			return nil, fmt.Errorf("commands: open resources: %w", err)
		}
		defer f.Close()
		table, err := macro.LoadResources(f)
		if err != nil {
			return nil, err
		}
		options = append(options, macro.WithResourceTable(table))
	}
	return macro.Sanitized(macro.NewDictionary(options...)), nil
}

func presetTransformer(path string) (orchestrator.Transformer, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("commands: read presets: %w", err)
	}
	return orchestrator.NewPresetTransformer(data)
}

// templateGenerators renders both artifacts through a go-template engine
// that resolves templates in dir first and falls back to the embedded set.
func templateGenerators(dir string) ([]orchestrator.Option, error) {
	if dir == "" {
		return nil, nil
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("commands: templates: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("commands: templates: %s is not a directory", dir)
	}

	modelEngine, err := gotemplate.NewGoTemplate(gotemplate.WithBaseDir(dir), gotemplate.WithFS(model.Templates()))
	if err != nil {
		return nil, err
	}
	modelGenerator, err := model.New(model.WithRenderer(modelEngine))
	if err != nil {
		return nil, err
	}
	viewEngine, err := gotemplate.NewGoTemplate(gotemplate.WithBaseDir(dir), gotemplate.WithFS(view.Templates()))
	if err != nil {
		return nil, err
	}
	viewGenerator, err := view.New(view.WithRenderer(viewEngine))
	if err != nil {
		return nil, err
	}
	return []orchestrator.Option{
		orchestrator.WithModelGenerator(modelGenerator),
		orchestrator.WithViewGenerator(viewGenerator),
	}, nil
}

// newOrchestrator wires the configured store, caption resolver, presets and
// template overrides.
// The returned close function releases the store.
func (a *app) newOrchestrator(ctx context.Context) (*orchestrator.Orchestrator, store, func() error, error) {
	s, closeStore, err := openStore(ctx, a.cfg.Store, a.logger)
	if err != nil {
		return nil, nil, nil, err
	}
	captions, err := captionResolver(a.cfg)
	if err != nil {
		_ = closeStore()
		return nil, nil, nil, err
	}
	presets, err := presetTransformer(a.cfg.Presets)
	if err != nil {
		_ = closeStore()
		return nil, nil, nil, err
	}
	generators, err := templateGenerators(a.cfg.Templates)
	if err != nil {
		_ = closeStore()
		return nil, nil, nil, err
	}

	options := []orchestrator.Option{
		orchestrator.WithProvider(s),
		orchestrator.WithCaptionResolver(captions),
		orchestrator.WithHTMLAttributes(a.cfg.HTMLAttributes),
	}
	if presets != nil {
		options = append(options, orchestrator.WithSchemaTransformer(presets))
	}
	options = append(options, generators...)
	return orchestrator.New(options...), s, closeStore, nil
}
