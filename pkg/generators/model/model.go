// Package model generates the annotated model class for a form schema.
package model

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"strconv"

	"github.com/goliatone/go-mvcgen/pkg/annotation"
	"github.com/goliatone/go-mvcgen/pkg/codegen"
	"github.com/goliatone/go-mvcgen/pkg/render"
	"github.com/goliatone/go-mvcgen/pkg/render/template"
	"github.com/goliatone/go-mvcgen/pkg/render/template/gotemplate"
	"github.com/goliatone/go-mvcgen/pkg/typemap"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

// TemplateName is the template rendered for every model.
const TemplateName = "model"

// DefaultUsings are the namespaces imported by the generated unit.
var DefaultUsings = []string{
	"System",
	"System.ComponentModel.DataAnnotations",
	"System.Web.Mvc",
}

// Templates exposes the embedded model template so callers can layer
// overrides on top of it.
func Templates() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		panic(fmt.Sprintf("model: embedded templates: %v", err))
	}
	return sub
}

// Option customises the generator.
type Option func(*Generator)

// WithRenderer renders through renderer instead of the embedded template set.
// The renderer must provide a template named TemplateName.
func WithRenderer(renderer template.TemplateRenderer) Option {
	return func(g *Generator) {
		if renderer != nil {
			g.renderer = renderer
		}
	}
}

// WithUsings replaces DefaultUsings.
func WithUsings(usings ...string) Option {
	return func(g *Generator) {
		g.usings = append([]string(nil), usings...)
	}
}

// Generator emits one property per eligible field, each preceded by its
// composed annotation block.
type Generator struct {
	renderer template.TemplateRenderer
	usings   []string
}

var _ render.Generator = (*Generator)(nil)

// New constructs a Generator backed by the embedded template unless
// WithRenderer is supplied.
func New(options ...Option) (*Generator, error) {
	g := &Generator{usings: DefaultUsings}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(g)
	}
	if g.renderer == nil {
		engine, err := gotemplate.New(gotemplate.WithFS(Templates()))
		if err != nil {
			return nil, fmt.Errorf("model: template engine: %w", err)
		}
		g.renderer = engine
	}
	return g, nil
}

type templateData struct {
	SchemaID   string     `json:"schema_id"`
	SchemaName string     `json:"schema_name"`
	Usings     []string   `json:"usings"`
	Namespace  string     `json:"namespace"`
	ClassName  string     `json:"class_name"`
	Properties []property `json:"properties"`
}

type property struct {
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Annotations []string `json:"annotations"`
}

// Name implements render.Generator.
func (g *Generator) Name() string {
	return codegen.ArtifactModel
}

// Render implements render.Generator.
func (g *Generator) Render(ctx codegen.Context, _ render.Options) (string, error) {
	return g.Generate(ctx)
}

// Generate renders the model source unit. Any composition failure aborts the
// whole artifact with a *codegen.GenerationError.
func (g *Generator) Generate(ctx codegen.Context) (string, error) {
	properties, err := composeProperties(ctx)
	if err != nil {
		return "", err
	}

	data := templateData{
		SchemaID:   strconv.FormatInt(ctx.SchemaID(), 10),
		SchemaName: ctx.SchemaName(),
		Usings:     g.usings,
		Namespace:  ctx.Namespace(),
		ClassName:  ctx.ModelClass(),
		Properties: properties,
	}
	out, err := g.renderer.RenderTemplate(TemplateName, data)
	if err != nil {
		return "", &codegen.GenerationError{Artifact: codegen.ArtifactModel, Err: err}
	}
	return out, nil
}

func composeProperties(ctx codegen.Context) ([]property, error) {
	composer := annotation.NewComposer(ctx.Captions())
	fields := ctx.Fields()
	out := make([]property, 0, len(fields))
	for _, field := range fields {
		name, ok := ctx.PropertyName(field.Name)
		if !ok {
			return nil, &codegen.GenerationError{
				Artifact: codegen.ArtifactModel,
				Field:    field.Name,
				Err:      errors.New("no property name assigned"),
			}
		}
		host, err := typemap.HostTypeOf(field.DataKind)
		if err != nil {
			return nil, &codegen.GenerationError{Artifact: codegen.ArtifactModel, Field: field.Name, Err: err}
		}
		annotations, err := composer.Compose(field, name)
		if err != nil {
			return nil, &codegen.GenerationError{Artifact: codegen.ArtifactModel, Field: field.Name, Err: err}
		}
		out = append(out, property{
			Name:        name,
			Type:        string(host),
			Annotations: annotation.Render(annotations),
		})
	}
	return out, nil
}
