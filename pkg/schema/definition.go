package schema

import "context"

// Definition is a decoded form definition. Fields preserve declaration order.
type Definition struct {
	ID     int64   `json:"id" yaml:"id"`
	Name   string  `json:"name" yaml:"name"`
	Fields []Field `json:"fields" yaml:"fields"`
}

// Summary provides minimal metadata about a stored definition.
type Summary struct {
	ID   int64
	Name string
}

// Provider resolves form definitions by schema identifier. Implementations
// must return a *SchemaNotFoundError when the identifier does not resolve and
// an *InvalidSchemaDefinitionError when the stored definition cannot be
// decoded.
type Provider interface {
	Schema(ctx context.Context, id int64) (Definition, error)
}

// Lister enumerates the definitions a store exposes.
type Lister interface {
	List(ctx context.Context) ([]Summary, error)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(ctx context.Context, id int64) (Definition, error)

// Schema calls f(ctx, id).
func (f ProviderFunc) Schema(ctx context.Context, id int64) (Definition, error) {
	return f(ctx, id)
}

// Clone returns a deep copy of the definition.
func (d Definition) Clone() Definition {
	out := d
	if d.Fields != nil {
		out.Fields = make([]Field, len(d.Fields))
		for i, field := range d.Fields {
			out.Fields[i] = field.Clone()
		}
	}
	return out
}
