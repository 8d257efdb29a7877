package openapi_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-mvcgen/pkg/openapi"
	"github.com/goliatone/go-mvcgen/pkg/schema"
	"github.com/goliatone/go-mvcgen/pkg/testsupport"
)

func newProvider(t *testing.T) *openapi.Provider {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", "contacts.yaml"))
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	provider, err := openapi.New(testsupport.Context(), data)
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}
	return provider
}

func TestProvider_ListsObjectComponentsInNameOrder(t *testing.T) {
	provider := newProvider(t)

	got, err := provider.List(testsupport.Context())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []schema.Summary{{ID: 1, Name: "Contact"}, {ID: 2, Name: "Order"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
	if id, ok := provider.ID("Order"); !ok || id != 2 {
		t.Fatalf("unexpected id for Order: %d %v", id, ok)
	}
}

func TestProvider_ConvertsProperties(t *testing.T) {
	provider := newProvider(t)

	def, err := provider.Schema(testsupport.Context(), 1)
	if err != nil {
		t.Fatalf("schema: %v", err)
	}
	want := []schema.Field{
		{
			Name: "contactId", DataKind: schema.DataKindLongInteger, Control: "longnumbertextbox",
			System: true, PrimaryKey: true, Visible: true, Public: true, AllowEmpty: true, Caption: "contactId",
		},
		{
			Name: "name", DataKind: schema.DataKindText, Control: "textboxcontrol",
			Visible: true, Public: true, Caption: "Name", Size: 50,
		},
		{
			Name: "visit", DataKind: schema.DataKindDateTime, Control: "calendarcontrol",
			Visible: true, Public: true, AllowEmpty: true, Caption: "{$contact.visit$}",
			Settings: map[string]string{"EditTime": "true"},
		},
		{
			Name: "attachment", DataKind: schema.DataKindFile, Control: "uploadcontrol",
			Visible: true, Public: true, AllowEmpty: true, Caption: "attachment",
		},
	}
	if diff := cmp.Diff(want, def.Fields); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
}

func TestProvider_ConstraintsAndDefaults(t *testing.T) {
	provider := newProvider(t)

	def, err := provider.Schema(testsupport.Context(), 2)
	if err != nil {
		t.Fatalf("schema: %v", err)
	}
	byName := make(map[string]schema.Field, len(def.Fields))
	var order []string
	for _, field := range def.Fields {
		byName[field.Name] = field
		order = append(order, field.Name)
	}
	if diff := cmp.Diff([]string{"due", "email", "notes", "total"}, order); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}

	total := byName["total"]
	if total.DataKind != schema.DataKindDecimal || total.MinValue != "5" || total.AllowEmpty {
		t.Fatalf("unexpected total: %+v", total)
	}
	if email := byName["email"]; email.Control != "emailinput" || email.Pattern != "^[^@]+@[^@]+$" {
		t.Fatalf("unexpected email: %+v", email)
	}
	if notes := byName["notes"]; notes.DataKind != schema.DataKindLongText || notes.Control != "textareacontrol" || notes.Visible {
		t.Fatalf("unexpected notes: %+v", notes)
	}
	if due := byName["due"]; due.MinValue != "2020-01-01" || due.Settings["EditTime"] != "false" {
		t.Fatalf("unexpected due: %+v", due)
	}
}

func TestProvider_Errors(t *testing.T) {
	provider := newProvider(t)

	for _, id := range []int64{0, 3} {
		_, err := provider.Schema(testsupport.Context(), id)
		var notFound *schema.SchemaNotFoundError
		if !errors.As(err, &notFound) {
			t.Fatalf("id %d: expected SchemaNotFoundError, got %v", id, err)
		}
	}

	if _, err := openapi.New(testsupport.Context(), nil); err == nil {
		t.Fatalf("expected error for empty payload")
	}
	if _, err := openapi.New(testsupport.Context(), []byte("openapi: [")); err == nil {
		t.Fatalf("expected error for malformed document")
	}
}

func TestProvider_FromDocument(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "contacts.yaml"))
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	doc, err := schema.NewDocument(schema.SourceFromFile("testdata/contacts.yaml"), data)
	if err != nil {
		t.Fatalf("document: %v", err)
	}
	provider, err := openapi.FromDocument(testsupport.Context(), doc, openapi.WithValidation())
	if err != nil {
		t.Fatalf("from document: %v", err)
	}
	summaries, _ := provider.List(testsupport.Context())
	if len(summaries) != 2 {
		t.Fatalf("expected 2 definitions, got %d", len(summaries))
	}
}
