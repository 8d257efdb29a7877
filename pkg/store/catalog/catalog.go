// Package catalog provides a schema store described by a YAML catalog file.
// Each entry names a form definition by id and points at its XML or YAML
// payload, or carries it inline:
//
//	schemas:
//	  - id: 1
//	    name: contact
//	    source: forms/contact.xml
//	  - id: 2
//	    name: newsletter
//	    definition: |
//	      fields:
//	        - name: Email
//	          type: text
//	          control: emailinput
package catalog

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-mvcgen/internal/loader"
	"github.com/goliatone/go-mvcgen/pkg/schema"
)

// Entry is one catalog row.
type Entry struct {
	ID         int64  `yaml:"id"`
	Name       string `yaml:"name"`
	Source     string `yaml:"source,omitempty"`
	Definition string `yaml:"definition,omitempty"`
}

type document struct {
	Schemas []Entry `yaml:"schemas"`
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithLoaderOptions forwards options to the underlying source loader, for
// example loader.WithHTTP to allow URL sources.
func WithLoaderOptions(options ...loader.Option) Option {
	return func(c *Catalog) {
		c.loaderOptions = append(c.loaderOptions, options...)
	}
}

// Catalog implements schema.Provider and schema.Lister over catalog entries.
type Catalog struct {
	entries       map[int64]Entry
	order         []int64
	loader        *loader.Loader
	loaderOptions []loader.Option
	fsDir         string
	fsMode        bool
}

var (
	_ schema.Provider = (*Catalog)(nil)
	_ schema.Lister   = (*Catalog)(nil)
)

// Parse decodes a catalog document.
func Parse(data []byte) ([]Entry, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("catalog: parse: %w", err)
	}
	if doc.Schemas == nil {
		return nil, errors.New("catalog: missing \"schemas\" list")
	}
	return doc.Schemas, nil
}

// New builds a Catalog from entries. Ids must be positive and unique, and
// every entry needs either a source or an inline definition.
func New(entries []Entry, options ...Option) (*Catalog, error) {
	c := &Catalog{entries: make(map[int64]Entry, len(entries))}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	for _, entry := range entries {
		if entry.ID <= 0 {
			return nil, fmt.Errorf("catalog: entry %q: id must be positive", entry.Name)
		}
		if _, exists := c.entries[entry.ID]; exists {
			return nil, fmt.Errorf("catalog: duplicate id %d", entry.ID)
		}
		if strings.TrimSpace(entry.Source) == "" && strings.TrimSpace(entry.Definition) == "" {
			return nil, fmt.Errorf("catalog: entry %d: source or definition is required", entry.ID)
		}
		c.entries[entry.ID] = entry
		c.order = append(c.order, entry.ID)
	}
	sort.Slice(c.order, func(i, j int) bool { return c.order[i] < c.order[j] })
	c.loader = loader.New(c.loaderOptions...)
	return c, nil
}

// Open reads the catalog at filename. Relative file sources resolve against
// the catalog's directory.
func Open(filename string, options ...Option) (*Catalog, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", filename, err)
	}
	entries, err := Parse(data)
	if err != nil {
		return nil, err
	}
	base := []Option{WithLoaderOptions(loader.WithBaseDir(filepath.Dir(filename)))}
	return New(entries, append(base, options...)...)
}

// OpenFS reads the catalog at name inside fsys. Sources that are neither URLs
// nor absolute paths resolve inside fsys relative to the catalog.
func OpenFS(fsys fs.FS, name string, options ...Option) (*Catalog, error) {
	if fsys == nil {
		return nil, errors.New("catalog: filesystem is nil")
	}
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", name, err)
	}
	entries, err := Parse(data)
	if err != nil {
		return nil, err
	}
	base := []Option{WithLoaderOptions(loader.WithFS(fsys))}
	c, err := New(entries, append(base, options...)...)
	if err != nil {
		return nil, err
	}
	c.fsMode = true
	c.fsDir = path.Dir(name)
	return c, nil
}

// Schema implements schema.Provider.
func (c *Catalog) Schema(ctx context.Context, id int64) (schema.Definition, error) {
	entry, ok := c.entries[id]
	if !ok {
		return schema.Definition{}, &schema.SchemaNotFoundError{ID: id}
	}

	raw, err := c.payload(ctx, entry)
	if err != nil {
		return schema.Definition{}, fmt.Errorf("catalog: schema %d: %w", id, err)
	}
	def, err := schema.Decode(raw)
	if err != nil {
		var invalid *schema.InvalidSchemaDefinitionError
		if errors.As(err, &invalid) {
			invalid.ID = id
		}
		return schema.Definition{}, err
	}
	def.ID = id
	if def.Name == "" {
		def.Name = entry.Name
	}
	return def, nil
}

// List implements schema.Lister in ascending id order.
func (c *Catalog) List(context.Context) ([]schema.Summary, error) {
	out := make([]schema.Summary, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, schema.Summary{ID: id, Name: c.entries[id].Name})
	}
	return out, nil
}

func (c *Catalog) payload(ctx context.Context, entry Entry) ([]byte, error) {
	if strings.TrimSpace(entry.Definition) != "" {
		return []byte(entry.Definition), nil
	}
	src, err := c.source(entry.Source)
	if err != nil {
		return nil, err
	}
	doc, err := c.loader.Load(ctx, src)
	if err != nil {
		return nil, err
	}
	return doc.Raw(), nil
}

func (c *Catalog) source(location string) (schema.Source, error) {
	src, err := schema.ParseSource(location)
	if err != nil {
		return nil, err
	}
	if c.fsMode && src.Kind() == schema.SourceKindFile && !filepath.IsAbs(src.Location()) {
		return schema.SourceFromFS(path.Join(c.fsDir, filepath.ToSlash(src.Location()))), nil
	}
	return src, nil
}
