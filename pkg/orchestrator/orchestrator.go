package orchestrator

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-mvcgen/pkg/codegen"
	"github.com/goliatone/go-mvcgen/pkg/generators/model"
	"github.com/goliatone/go-mvcgen/pkg/generators/view"
	"github.com/goliatone/go-mvcgen/pkg/macro"
	"github.com/goliatone/go-mvcgen/pkg/render"
	"github.com/goliatone/go-mvcgen/pkg/schema"
)

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithProvider sets the schema store generation requests resolve against.
func WithProvider(provider schema.Provider) Option {
	return func(o *Orchestrator) {
		o.provider = provider
	}
}

// WithCaptionResolver sets the resolver used for caption macros.
func WithCaptionResolver(resolver macro.Resolver) Option {
	return func(o *Orchestrator) {
		o.captions = resolver
	}
}

// WithRegistry injects a generator registry. It must hold generators named
// codegen.ArtifactModel and codegen.ArtifactView.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithModelGenerator overrides the model generator.
func WithModelGenerator(generator render.Generator) Option {
	return func(o *Orchestrator) {
		o.overrides = append(o.overrides, named{name: codegen.ArtifactModel, generator: generator})
	}
}

// WithViewGenerator overrides the view generator.
func WithViewGenerator(generator render.Generator) Option {
	return func(o *Orchestrator) {
		o.overrides = append(o.overrides, named{name: codegen.ArtifactView, generator: generator})
	}
}

// WithHTMLAttributes sets the default "support HTML attributes" flag.
func WithHTMLAttributes(enabled bool) Option {
	return func(o *Orchestrator) {
		o.htmlAttributes = enabled
	}
}

// WithSchemaTransformer registers a Transformer that patches definitions
// after lookup and before eligibility filtering.
func WithSchemaTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		o.transformer = t
	}
}

type named struct {
	name      string
	generator render.Generator
}

// Orchestrator turns a generation request into both artifacts. Missing
// generators default to the embedded model and view templates.
type Orchestrator struct {
	provider       schema.Provider
	captions       macro.Resolver
	registry       *render.Registry
	overrides      []named
	htmlAttributes bool
	transformer    Transformer
	initialiseErr  error
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request carries the schema id and the raw identifier seeds of one
// generation.
type Request struct {
	SchemaID   int64
	Namespace  string
	ModelClass string
	Action     string
	Controller string

	// HTMLAttributes is or-ed with the WithHTMLAttributes default.
	HTMLAttributes bool
}

// Seeds returns the request as codegen seeds.
func (r Request) Seeds() codegen.Seeds {
	return codegen.Seeds{
		SchemaID:   r.SchemaID,
		Namespace:  r.Namespace,
		ModelClass: r.ModelClass,
		Action:     r.Action,
		Controller: r.Controller,
	}
}

// Artifacts are the generated sources plus the identifiers they were
// generated with.
type Artifacts struct {
	SchemaID   int64  `json:"schema_id"`
	SchemaName string `json:"schema_name,omitempty"`
	Namespace  string `json:"namespace"`
	ModelClass string `json:"model_class"`
	Controller string `json:"controller"`
	Action     string `json:"action"`
	Model      string `json:"model"`
	View       string `json:"view"`
}

// Generate builds the generation context and renders the model and the view.
// Either both artifacts are returned or none.
func (o *Orchestrator) Generate(ctx context.Context, req Request) (Artifacts, error) {
	if ctx == nil {
		return Artifacts{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return Artifacts{}, err
	}
	if err := o.initialiseErr; err != nil {
		return Artifacts{}, err
	}
	if o.provider == nil {
		return Artifacts{}, errors.New("orchestrator: schema provider is required")
	}

	var opts []codegen.Option
	if o.captions != nil {
		opts = append(opts, codegen.WithCaptionResolver(o.captions))
	}
	genCtx, err := codegen.Build(ctx, o.schemaProvider(), req.Seeds(), opts...)
	if err != nil {
		return Artifacts{}, err
	}

	options := render.Options{HTMLAttributes: o.htmlAttributes || req.HTMLAttributes}
	modelSource, err := o.render(genCtx, codegen.ArtifactModel, options)
	if err != nil {
		return Artifacts{}, err
	}
	viewSource, err := o.render(genCtx, codegen.ArtifactView, options)
	if err != nil {
		return Artifacts{}, err
	}

	return Artifacts{
		SchemaID:   genCtx.SchemaID(),
		SchemaName: genCtx.SchemaName(),
		Namespace:  genCtx.Namespace(),
		ModelClass: genCtx.ModelClass(),
		Controller: genCtx.Controller(),
		Action:     genCtx.Action(),
		Model:      modelSource,
		View:       viewSource,
	}, nil
}

func (o *Orchestrator) render(genCtx codegen.Context, name string, options render.Options) (string, error) {
	generator, err := o.registry.Get(name)
	if err != nil {
		return "", fmt.Errorf("orchestrator: %w", err)
	}
	out, err := generator.Render(genCtx, options)
	if err != nil {
		var genErr *codegen.GenerationError
		if errors.As(err, &genErr) {
			return "", err
		}
		return "", &codegen.GenerationError{Artifact: name, Err: err}
	}
	return out, nil
}

// schemaProvider applies the transformer to a copy of every definition the
// configured provider returns. Providers may hand out shared definitions.
func (o *Orchestrator) schemaProvider() schema.Provider {
	if o.transformer == nil {
		return o.provider
	}
	return schema.ProviderFunc(func(ctx context.Context, id int64) (schema.Definition, error) {
		def, err := o.provider.Schema(ctx, id)
		if err != nil {
			return schema.Definition{}, err
		}
		def = def.Clone()
		if err := o.transformer.Transform(ctx, &def); err != nil {
			return schema.Definition{}, fmt.Errorf("orchestrator: transform schema %d: %w", id, err)
		}
		return def, nil
	})
}

func (o *Orchestrator) applyDefaults() {
	if o.registry == nil {
		o.registry = render.NewRegistry()
	}
	for _, override := range o.overrides {
		if override.generator == nil {
			continue
		}
		if err := o.registry.Replace(render.GeneratorFunc(override.name, override.generator.Render)); err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: %s generator: %w", override.name, err)
			return
		}
	}

	if !o.registry.Has(codegen.ArtifactModel) {
		generator, err := model.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default model generator: %w", err)
			return
		}
		o.registry.MustRegister(generator)
	}
	if !o.registry.Has(codegen.ArtifactView) {
		generator, err := view.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default view generator: %w", err)
			return
		}
		o.registry.MustRegister(generator)
	}
}
