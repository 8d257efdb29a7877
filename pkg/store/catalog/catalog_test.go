package catalog_test

import (
	"errors"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-mvcgen/pkg/schema"
	"github.com/goliatone/go-mvcgen/pkg/store/catalog"
	"github.com/goliatone/go-mvcgen/pkg/testsupport"
)

const catalogYAML = `
schemas:
  - id: 2
    name: newsletter
    definition: |
      fields:
        - name: Email
          type: text
          control: emailinput
          size: 200
  - id: 1
    name: contact
    source: forms/contact.xml
  - id: 3
    name: broken
    source: forms/broken.xml
`

const contactXML = `<form><field column="Name" columntype="text" columnsize="50"><settings><controlname>textboxcontrol</controlname></settings></field></form>`

func catalogFS() fstest.MapFS {
	return fstest.MapFS{
		"cms/catalog.yaml":      {Data: []byte(catalogYAML)},
		"cms/forms/contact.xml": {Data: []byte(contactXML)},
		"cms/forms/broken.xml":  {Data: []byte("<form><field")},
	}
}

func TestOpenFS_ResolvesRelativeSources(t *testing.T) {
	store, err := catalog.OpenFS(catalogFS(), "cms/catalog.yaml")
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	def, err := store.Schema(testsupport.Context(), 1)
	if err != nil {
		t.Fatalf("schema: %v", err)
	}
	if def.ID != 1 || def.Name != "contact" || len(def.Fields) != 1 || def.Fields[0].Control != "textboxcontrol" {
		t.Fatalf("unexpected definition: %+v", def)
	}

	inline, err := store.Schema(testsupport.Context(), 2)
	if err != nil {
		t.Fatalf("schema: %v", err)
	}
	if inline.Fields[0].Name != "Email" || inline.Fields[0].Size != 200 {
		t.Fatalf("unexpected inline definition: %+v", inline)
	}
}

func TestList_SortedByID(t *testing.T) {
	store, err := catalog.OpenFS(catalogFS(), "cms/catalog.yaml")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	got, err := store.List(testsupport.Context())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []schema.Summary{{ID: 1, Name: "contact"}, {ID: 2, Name: "newsletter"}, {ID: 3, Name: "broken"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
}

func TestSchemaErrors(t *testing.T) {
	store, err := catalog.OpenFS(catalogFS(), "cms/catalog.yaml")
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	_, err = store.Schema(testsupport.Context(), 9)
	var notFound *schema.SchemaNotFoundError
	if !errors.As(err, &notFound) || notFound.ID != 9 {
		t.Fatalf("expected SchemaNotFoundError, got %v", err)
	}

	_, err = store.Schema(testsupport.Context(), 3)
	var invalid *schema.InvalidSchemaDefinitionError
	if !errors.As(err, &invalid) || invalid.ID != 3 {
		t.Fatalf("expected InvalidSchemaDefinitionError, got %v", err)
	}
}

func TestOpen_FromDisk(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(dir, "catalog.yaml"), "schemas:\n  - id: 5\n    name: disk\n    source: forms/contact.xml\n")
	testsupport.WriteFile(t, filepath.Join(dir, "forms", "contact.xml"), contactXML)

	store, err := catalog.Open(filepath.Join(dir, "catalog.yaml"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	def, err := store.Schema(testsupport.Context(), 5)
	if err != nil {
		t.Fatalf("schema: %v", err)
	}
	if def.Name != "disk" {
		t.Fatalf("unexpected name %q", def.Name)
	}
}

func TestNew_ValidatesEntries(t *testing.T) {
	cases := map[string][]catalog.Entry{
		"non-positive id": {{ID: 0, Name: "zero", Definition: "fields: []"}},
		"duplicate id":    {{ID: 1, Definition: "fields: []"}, {ID: 1, Definition: "fields: []"}},
		"no payload":      {{ID: 1, Name: "empty"}},
	}
	for name, entries := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := catalog.New(entries); err == nil {
				t.Fatalf("expected error")
			}
		})
	}

	if _, err := catalog.Parse([]byte("other: true")); err == nil {
		t.Fatalf("expected error for catalog without schemas")
	}
}
