package render

import (
	"github.com/goliatone/go-mvcgen/pkg/codegen"
)

// Generator turns a frozen generation context into the source text of one
// artifact. Render must be deterministic and all-or-nothing: on error no
// partial text is returned.
type Generator interface {
	Name() string
	Render(ctx codegen.Context, options Options) (string, error)
}

// GeneratorFunc adapts a function into a named Generator.
func GeneratorFunc(name string, fn func(codegen.Context, Options) (string, error)) Generator {
	return generatorFunc{name: name, fn: fn}
}

type generatorFunc struct {
	name string
	fn   func(codegen.Context, Options) (string, error)
}

func (g generatorFunc) Name() string { return g.name }

func (g generatorFunc) Render(ctx codegen.Context, options Options) (string, error) {
	return g.fn(ctx, options)
}
