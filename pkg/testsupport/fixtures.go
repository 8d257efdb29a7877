package testsupport

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-mvcgen/pkg/schema"
)

// Provider is an in-memory schema.Provider keyed by definition ID.
type Provider struct {
	defs map[int64]schema.Definition
	raw  map[int64][]byte
}

var (
	_ schema.Provider = (*Provider)(nil)
	_ schema.Lister   = (*Provider)(nil)
)

// NewProvider registers the supplied definitions by their ID.
func NewProvider(defs ...schema.Definition) *Provider {
	p := &Provider{
		defs: make(map[int64]schema.Definition, len(defs)),
		raw:  make(map[int64][]byte),
	}
	for _, def := range defs {
		p.defs[def.ID] = def.Clone()
	}
	return p
}

// WithRaw registers a raw definition that is decoded on every lookup, so
// tests can exercise decoding failures through the provider contract.
func (p *Provider) WithRaw(id int64, raw string) *Provider {
	p.raw[id] = []byte(raw)
	return p
}

// Schema implements schema.Provider.
func (p *Provider) Schema(ctx context.Context, id int64) (schema.Definition, error) {
	if err := ctx.Err(); err != nil {
		return schema.Definition{}, err
	}
	if raw, ok := p.raw[id]; ok {
		def, err := schema.Decode(raw)
		if err != nil {
			var invalid *schema.InvalidSchemaDefinitionError
			if errors.As(err, &invalid) {
				invalid.ID = id
			}
			return schema.Definition{}, err
		}
		def.ID = id
		return def, nil
	}
	def, ok := p.defs[id]
	if !ok {
		return schema.Definition{}, &schema.SchemaNotFoundError{ID: id}
	}
	return def.Clone(), nil
}

// List implements schema.Lister.
func (p *Provider) List(context.Context) ([]schema.Summary, error) {
	out := make([]schema.Summary, 0, len(p.defs))
	for id, def := range p.defs {
		out = append(out, schema.Summary{ID: id, Name: def.Name})
	}
	return out, nil
}

// TextField returns a visible, public text box field.
func TextField(name, caption string, size int) schema.Field {
	return schema.Field{
		Name:     name,
		DataKind: schema.DataKindText,
		Control:  "textboxcontrol",
		Visible:  true,
		Public:   true,
		Caption:  caption,
		Size:     size,
	}
}

// ContactDefinition is the two-field scenario used across packages: a
// required text box and a date-time calendar, plus system, primary key and
// unsupported-control fields that must never be generated.
func ContactDefinition(id int64) schema.Definition {
	return schema.Definition{
		ID:   id,
		Name: "contact",
		Fields: []schema.Field{
			{Name: "ContactID", DataKind: schema.DataKindInteger, Control: "labelcontrol", PrimaryKey: true},
			TextField("Name", "Name", 50),
			{
				Name:       "Visit",
				DataKind:   schema.DataKindDateTime,
				Control:    "calendarcontrol",
				Visible:    true,
				Public:     true,
				AllowEmpty: true,
				Caption:    "Visit",
				Settings:   map[string]string{"EditTime": "True"},
			},
			{Name: "Attachment", DataKind: schema.DataKindFile, Control: "uploadcontrol", Visible: true, Public: true, AllowEmpty: true},
			{Name: "FormInserted", DataKind: schema.DataKindDateTime, Control: "calendarcontrol", System: true},
		},
	}
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// AssertGolden compares got against the golden file at path, rewriting the
// file instead when UPDATE_GOLDENS is set. Line endings are normalised so
// goldens survive checkouts with autocrlf.
func AssertGolden(t *testing.T, path, got string) {
	t.Helper()

	if WriteMaybeGolden(t, path, []byte(got)) {
		return
	}
	want := strings.ReplaceAll(MustReadGoldenString(t, path), "\r\n", "\n")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("golden %s mismatch (-want +got):\n%s", filepath.Base(path), diff)
	}
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// MustDecode decodes a raw definition or fails the test.
func MustDecode(t *testing.T, raw string) schema.Definition {
	t.Helper()
	def, err := schema.Decode([]byte(raw))
	if err != nil {
		t.Fatalf("decode definition: %v", err)
	}
	return def
}

// WriteFile writes content to path, creating parent directories.
func WriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
