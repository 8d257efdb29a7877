package openapi

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-mvcgen/pkg/schema"
)

// Option configures a Provider.
type Option func(*config)

type config struct {
	validate bool
}

// WithValidation validates the document before converting it.
func WithValidation() Option {
	return func(cfg *config) {
		cfg.validate = true
	}
}

// Provider implements schema.Provider and schema.Lister. Definition ids are
// the 1-based positions of the component names in sorted order, so they are
// stable for an unchanged document.
type Provider struct {
	defs  []schema.Definition
	names map[string]int64
}

var (
	_ schema.Provider = (*Provider)(nil)
	_ schema.Lister   = (*Provider)(nil)
)

// FromDocument parses a loaded schema document as OpenAPI.
func FromDocument(ctx context.Context, doc schema.Document, options ...Option) (*Provider, error) {
	return New(ctx, doc.Raw(), options...)
}

// New parses an OpenAPI 3 document (JSON or YAML) and converts its component
// schemas.
func New(ctx context.Context, data []byte, options ...Option) (*Provider, error) {
	if ctx == nil {
		return nil, errors.New("openapi: context is required")
	}
	if len(data) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}
	cfg := config{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	if cfg.validate {
		if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("openapi: validate: %w", err)
		}
	}

	p := &Provider{names: make(map[string]int64)}
	if spec.Components == nil {
		return p, nil
	}

	names := make([]string, 0, len(spec.Components.Schemas))
	for name, ref := range spec.Components.Schemas {
		if ref == nil || ref.Value == nil || !isObject(ref.Value) {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	for idx, name := range names {
		id := int64(idx + 1)
		def, err := convertDefinition(id, name, spec.Components.Schemas[name].Value)
		if err != nil {
			return nil, err
		}
		p.defs = append(p.defs, def)
		p.names[name] = id
	}
	return p, nil
}

// Schema implements schema.Provider.
func (p *Provider) Schema(ctx context.Context, id int64) (schema.Definition, error) {
	if err := ctx.Err(); err != nil {
		return schema.Definition{}, err
	}
	if id <= 0 || id > int64(len(p.defs)) {
		return schema.Definition{}, &schema.SchemaNotFoundError{ID: id}
	}
	return p.defs[id-1].Clone(), nil
}

// List implements schema.Lister.
func (p *Provider) List(context.Context) ([]schema.Summary, error) {
	out := make([]schema.Summary, 0, len(p.defs))
	for _, def := range p.defs {
		out = append(out, schema.Summary{ID: def.ID, Name: def.Name})
	}
	return out, nil
}

// ID returns the definition id assigned to the named component schema.
func (p *Provider) ID(name string) (int64, bool) {
	id, ok := p.names[name]
	return id, ok
}
