// Package view generates the Razor partial binding each eligible field of a
// form schema to its model property.
package view

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/goliatone/go-mvcgen/pkg/codegen"
	"github.com/goliatone/go-mvcgen/pkg/render"
	"github.com/goliatone/go-mvcgen/pkg/render/template"
	"github.com/goliatone/go-mvcgen/pkg/render/template/gotemplate"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

// TemplateName is the template rendered for every partial view.
const TemplateName = "view"

// Templates exposes the embedded view template.
func Templates() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		panic(fmt.Sprintf("view: embedded templates: %v", err))
	}
	return sub
}

// EditorBinding renders the validated editor for a visible property.
func EditorBinding(property string) string {
	return "@Html.ValidatedEditorFor(model => model." + property + ")"
}

// HiddenBinding renders the hidden value binding for a hidden property.
func HiddenBinding(property string) string {
	return "@Html.HiddenFor(model => model." + property + ")"
}

// Option customises the generator.
type Option func(*Generator)

// WithRenderer renders through renderer instead of the embedded template set.
func WithRenderer(renderer template.TemplateRenderer) Option {
	return func(g *Generator) {
		if renderer != nil {
			g.renderer = renderer
		}
	}
}

// Generator emits one binding per eligible field.
type Generator struct {
	renderer template.TemplateRenderer
}

var _ render.Generator = (*Generator)(nil)

// New constructs a Generator backed by the embedded template unless
// WithRenderer is supplied.
func New(options ...Option) (*Generator, error) {
	g := &Generator{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(g)
	}
	if g.renderer == nil {
		engine, err := gotemplate.New(gotemplate.WithFS(Templates()))
		if err != nil {
			return nil, fmt.Errorf("view: template engine: %w", err)
		}
		g.renderer = engine
	}
	return g, nil
}

type templateData struct {
	ModelType  string   `json:"model_type"`
	Action     string   `json:"action"`
	Controller string   `json:"controller"`
	Bindings   []string `json:"bindings"`
}

// Name implements render.Generator.
func (g *Generator) Name() string {
	return codegen.ArtifactView
}

// Render implements render.Generator.
func (g *Generator) Render(ctx codegen.Context, options render.Options) (string, error) {
	return g.Generate(ctx, options.HTMLAttributes)
}

// Generate renders the partial view. supportHTMLAttributes is reserved and
// does not alter the output.
func (g *Generator) Generate(ctx codegen.Context, supportHTMLAttributes bool) (string, error) {
	_ = supportHTMLAttributes

	fields := ctx.Fields()
	bindings := make([]string, 0, len(fields))
	for _, field := range fields {
		name, ok := ctx.PropertyName(field.Name)
		if !ok {
			return "", &codegen.GenerationError{
				Artifact: codegen.ArtifactView,
				Field:    field.Name,
				Err:      errors.New("no property name assigned"),
			}
		}
		if field.Hidden() {
			bindings = append(bindings, HiddenBinding(name))
			continue
		}
		bindings = append(bindings, EditorBinding(name))
	}

	modelType := ctx.ModelClass()
	if ns := ctx.Namespace(); ns != "" {
		modelType = ns + "." + modelType
	}
	data := templateData{
		ModelType:  modelType,
		Action:     ctx.Action(),
		Controller: ctx.Controller(),
		Bindings:   bindings,
	}
	out, err := g.renderer.RenderTemplate(TemplateName, data)
	if err != nil {
		return "", &codegen.GenerationError{Artifact: codegen.ArtifactView, Err: err}
	}
	return out, nil
}
