package codegen

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-mvcgen/pkg/identifier"
	"github.com/goliatone/go-mvcgen/pkg/macro"
	"github.com/goliatone/go-mvcgen/pkg/schema"
	"github.com/goliatone/go-mvcgen/pkg/typemap"
)

// Seeds carries the raw, user-entered inputs of a generation request.
type Seeds struct {
	SchemaID   int64
	Namespace  string
	ModelClass string
	Action     string
	Controller string
}

// Option customises context construction.
type Option func(*config)

type config struct {
	captions macro.Resolver
}

// WithCaptionResolver sets the resolver used to expand caption macros.
func WithCaptionResolver(resolver macro.Resolver) Option {
	return func(cfg *config) {
		if resolver != nil {
			cfg.captions = resolver
		}
	}
}

// Context is the frozen, run-scoped generation input.
type Context struct {
	schemaID      int64
	schemaName    string
	namespace     string
	modelClass    string
	controller    string
	action        string
	fields        []schema.Field
	propertyNames map[string]string
	captions      macro.Resolver
}

// Build resolves the schema through provider and freezes a Context.
func Build(ctx context.Context, provider schema.Provider, seeds Seeds, options ...Option) (Context, error) {
	if ctx == nil {
		return Context{}, errors.New("codegen: context is required")
	}
	if seeds.SchemaID <= 0 {
		return Context{}, schema.ErrNoSchemaSelected
	}
	if provider == nil {
		return Context{}, errors.New("codegen: schema provider is required")
	}

	cfg := config{captions: macro.Identity}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	def, err := provider.Schema(ctx, seeds.SchemaID)
	if err != nil {
		return Context{}, fmt.Errorf("codegen: load schema %d: %w", seeds.SchemaID, err)
	}

	out := Context{
		schemaID:   seeds.SchemaID,
		schemaName: def.Name,
		captions:   cfg.captions,
	}
	if out.namespace, err = identifier.NormalizeQualified(seeds.Namespace); err != nil {
		return Context{}, fmt.Errorf("codegen: namespace: %w", err)
	}
	if out.modelClass, err = identifier.Normalize(seeds.ModelClass); err != nil {
		return Context{}, fmt.Errorf("codegen: model class: %w", err)
	}
	if out.controller, err = identifier.Normalize(seeds.Controller); err != nil {
		return Context{}, fmt.Errorf("codegen: controller: %w", err)
	}
	if out.action, err = identifier.Normalize(seeds.Action); err != nil {
		return Context{}, fmt.Errorf("codegen: action: %w", err)
	}

	if out.fields, err = EligibleFields(def.Fields); err != nil {
		return Context{}, fmt.Errorf("codegen: schema %d: %w", seeds.SchemaID, err)
	}

	names := make([]string, len(out.fields))
	for i, field := range out.fields {
		names[i] = field.Name
	}
	resolved, err := identifier.ResolveUnique(names, out.modelClass)
	if err != nil {
		return Context{}, fmt.Errorf("codegen: property names: %w", err)
	}
	// Decode rejects duplicate columns, so field names are unique keys.
	out.propertyNames = make(map[string]string, len(names))
	for i, name := range names {
		out.propertyNames[name] = resolved[i]
	}

	return out, nil
}

// EligibleFields filters fields down to those the generators emit, preserving
// order. System and primary key fields are skipped, as are fields rendered by
// unsupported controls. A missing control name or an unmapped data kind on a
// field with a supported control is an error.
func EligibleFields(fields []schema.Field) ([]schema.Field, error) {
	out := make([]schema.Field, 0, len(fields))
	for _, field := range fields {
		if field.System || field.PrimaryKey {
			continue
		}
		control := field.ControlName()
		if control == "" {
			return nil, &schema.MissingControlMetadataError{Field: field.Name}
		}
		if !typemap.IsSupportedControl(control) {
			continue
		}
		if _, err := typemap.HostTypeOf(field.DataKind); err != nil {
			return nil, fmt.Errorf("field %q: %w", field.Name, err)
		}
		clone := field.Clone()
		clone.Control = control
		out = append(out, clone)
	}
	return out, nil
}

// SchemaID returns the identifier of the source schema.
func (c Context) SchemaID() int64 { return c.schemaID }

// SchemaName returns the name of the source schema, if it declares one.
func (c Context) SchemaName() string { return c.schemaName }

// Namespace returns the normalized namespace identifier.
func (c Context) Namespace() string { return c.namespace }

// ModelClass returns the normalized model class identifier.
func (c Context) ModelClass() string { return c.modelClass }

// Controller returns the normalized controller class identifier.
func (c Context) Controller() string { return c.controller }

// Action returns the normalized action method identifier.
func (c Context) Action() string { return c.action }

// Captions returns the caption macro resolver.
func (c Context) Captions() macro.Resolver {
	if c.captions == nil {
		return macro.Identity
	}
	return c.captions
}

// Fields returns a copy of the eligible fields in schema order.
func (c Context) Fields() []schema.Field {
	out := make([]schema.Field, len(c.fields))
	for i, field := range c.fields {
		out[i] = field.Clone()
	}
	return out
}

// PropertyName returns the property identifier assigned to the field named
// fieldName.
func (c Context) PropertyName(fieldName string) (string, bool) {
	name, ok := c.propertyNames[fieldName]
	return name, ok
}

// PropertyNames returns a copy of the field name to property name mapping.
func (c Context) PropertyNames() map[string]string {
	out := make(map[string]string, len(c.propertyNames))
	for key, value := range c.propertyNames {
		out[key] = value
	}
	return out
}
