package sqlstore_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-mvcgen/pkg/schema"
	"github.com/goliatone/go-mvcgen/pkg/store/sqlstore"
	"github.com/goliatone/go-mvcgen/pkg/testsupport"
)

const contactXML = `<form>
  <field column="ContactID" columntype="integer" isPK="true" system="true"><settings><controlname>labelcontrol</controlname></settings></field>
  <field column="Name" columntype="text" columnsize="50" allowempty="false"><settings><controlname>textboxcontrol</controlname></settings></field>
</form>`

func newStore(t *testing.T) *sqlstore.Store {
	t.Helper()
	ctx := testsupport.Context()
	store, db, err := sqlstore.OpenSQLite(ctx, "file::memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := store.CreateTable(ctx); err != nil {
		t.Fatalf("create table: %v", err)
	}
	for _, row := range []struct {
		id         int64
		name       string
		definition string
	}{
		{1, "custom.contact", contactXML},
		{2, "custom.broken", "<form><field"},
		{3, "custom.plain", ""},
	} {
		if err := store.Put(ctx, row.id, row.name, row.definition); err != nil {
			t.Fatalf("put %d: %v", row.id, err)
		}
	}
	return store
}

func TestStore_Schema(t *testing.T) {
	store := newStore(t)

	def, err := store.Schema(testsupport.Context(), 1)
	if err != nil {
		t.Fatalf("schema: %v", err)
	}
	if def.ID != 1 || def.Name != "custom.contact" {
		t.Fatalf("unexpected identity: %d %q", def.ID, def.Name)
	}
	if len(def.Fields) != 2 || !def.Fields[0].PrimaryKey || def.Fields[1].Size != 50 {
		t.Fatalf("unexpected fields: %+v", def.Fields)
	}
}

func TestStore_SchemaErrors(t *testing.T) {
	store := newStore(t)

	_, err := store.Schema(testsupport.Context(), 99)
	var notFound *schema.SchemaNotFoundError
	if !errors.As(err, &notFound) || notFound.ID != 99 {
		t.Fatalf("expected SchemaNotFoundError, got %v", err)
	}

	for _, id := range []int64{2, 3} {
		_, err = store.Schema(testsupport.Context(), id)
		var invalid *schema.InvalidSchemaDefinitionError
		if !errors.As(err, &invalid) || invalid.ID != id {
			t.Fatalf("id %d: expected InvalidSchemaDefinitionError, got %v", id, err)
		}
	}
}

func TestStore_ListSkipsClassesWithoutForms(t *testing.T) {
	store := newStore(t)

	got, err := store.List(testsupport.Context())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []schema.Summary{{ID: 1, Name: "custom.contact"}, {ID: 2, Name: "custom.broken"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
}

func TestStore_PutReplaces(t *testing.T) {
	store := newStore(t)
	ctx := testsupport.Context()

	if err := store.Put(ctx, 2, "custom.fixed", contactXML); err != nil {
		t.Fatalf("put: %v", err)
	}
	def, err := store.Schema(ctx, 2)
	if err != nil {
		t.Fatalf("schema: %v", err)
	}
	if def.Name != "custom.fixed" {
		t.Fatalf("expected replaced row, got %q", def.Name)
	}
	if err := store.Put(ctx, 0, "zero", contactXML); err == nil {
		t.Fatalf("expected error for non-positive id")
	}
}

func TestNew_ValidatesTable(t *testing.T) {
	if _, err := sqlstore.New(nil); err == nil {
		t.Fatalf("expected error for nil db")
	}
	_, db, err := sqlstore.OpenSQLite(testsupport.Context(), "file::memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer db.Close()
	if _, err := sqlstore.New(db, sqlstore.WithTable("cms_class; DROP TABLE x")); err == nil {
		t.Fatalf("expected error for invalid table name")
	}
}
