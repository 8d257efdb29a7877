package commands

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-mvcgen/internal/prompt"
	"github.com/goliatone/go-mvcgen/pkg/schema"
	"github.com/goliatone/go-mvcgen/pkg/testsupport"
)

const catalogYAML = `
schemas:
  - id: 5
    name: newsletter
    definition: |
      fields:
        - name: Email
          type: text
          control: emailinput
          caption: "{$newsletter.email$}"
          size: 200
        - name: Consent
          type: boolean
          control: checkboxcontrol
  - id: 2
    name: contact
    definition: |
      fields:
        - name: Message
          type: longtext
          control: textareacontrol
`

const resourcesYAML = `
en-us:
  newsletter.email: Email address
cs-cz:
  newsletter.email: "<b>E-mailová</b> adresa"
`

type fixture struct {
	dir     string
	catalog string
	stdout  *bytes.Buffer
	stderr  *bytes.Buffer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()
	f := &fixture{
		dir:     dir,
		catalog: filepath.Join(dir, "catalog.yaml"),
		stdout:  &bytes.Buffer{},
		stderr:  &bytes.Buffer{},
	}
	testsupport.WriteFile(t, f.catalog, catalogYAML)
	testsupport.WriteFile(t, filepath.Join(dir, "resources.yaml"), resourcesYAML)
	return f
}

func (f *fixture) run(t *testing.T, driver prompt.Driver, args ...string) error {
	t.Helper()
	cmd := NewRootCmd(
		WithOutput(f.stdout),
		WithErrorOutput(f.stderr),
		WithPrompter(driver),
		WithGetenv(func(key string) string {
			if key == EnvConfig {
				return filepath.Join(f.dir, "missing.yaml")
			}
			return ""
		}),
	)
	cmd.SetArgs(args)
	return cmd.ExecuteContext(context.Background())
}

type scriptedDriver struct {
	inputs   []string
	selects  []int
	confirms []bool
}

func (d *scriptedDriver) Input(context.Context, prompt.InputConfig) (string, error) {
	if len(d.inputs) == 0 {
		return "", errors.New("no input scripted")
	}
	value := d.inputs[0]
	d.inputs = d.inputs[1:]
	return value, nil
}

func (d *scriptedDriver) Confirm(context.Context, prompt.ConfirmConfig) (bool, error) {
	if len(d.confirms) == 0 {
		return false, errors.New("no confirm scripted")
	}
	value := d.confirms[0]
	d.confirms = d.confirms[1:]
	return value, nil
}

func (d *scriptedDriver) Select(context.Context, prompt.SelectConfig) (int, error) {
	if len(d.selects) == 0 {
		return -1, errors.New("no select scripted")
	}
	value := d.selects[0]
	d.selects = d.selects[1:]
	return value, nil
}

func TestList_Table(t *testing.T) {
	f := newFixture(t)
	if err := f.run(t, nil, "list", "--catalog", f.catalog); err != nil {
		t.Fatalf("list: %v", err)
	}
	want := "ID  NAME\n2   contact\n5   newsletter\n"
	if got := f.stdout.String(); got != want {
		t.Fatalf("unexpected table:\n%q\nwant:\n%q", got, want)
	}
}

func TestList_JSON(t *testing.T) {
	f := newFixture(t)
	if err := f.run(t, nil, "list", "--catalog", f.catalog, "-o", "json"); err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(f.stdout.String(), `"name": "newsletter"`) {
		t.Fatalf("unexpected json:\n%s", f.stdout.String())
	}
}

func TestGenerate_PrintsBothArtifacts(t *testing.T) {
	f := newFixture(t)
	err := f.run(t, nil, "generate",
		"--catalog", f.catalog,
		"--resources", filepath.Join(f.dir, "resources.yaml"),
		"--culture", "cs-cz",
		"--schema", "5",
		"--namespace", "acme.web.models",
		"--class", "subscriber",
		"--action", "subscribe",
		"--controller", "newsletter",
	)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	out := f.stdout.String()
	for _, fragment := range []string{
		"// SubscriberRepositoryModel.generated.cs",
		"namespace Acme.Web.Models",
		"public partial class Subscriber",
		`[Display(Name = "E-mailová adresa")]`,
		"public string Email { get; set; }",
		"@* SubscriberPartial.cshtml *@",
		"@model Acme.Web.Models.Subscriber",
		`Html.BeginForm("Subscribe", "Newsletter", FormMethod.Post)`,
		"@Html.ValidatedEditorFor(model => model.Email)",
	} {
		if !strings.Contains(out, fragment) {
			t.Fatalf("output missing %q:\n%s", fragment, out)
		}
	}
	if strings.Contains(out, "Consent") {
		t.Fatalf("checkbox field must be excluded:\n%s", out)
	}
}

func TestGenerate_TemplatesDirectoryOverridesView(t *testing.T) {
	f := newFixture(t)
	templates := filepath.Join(f.dir, "templates")
	testsupport.WriteFile(t, filepath.Join(templates, "view.tmpl"), "custom view for {{ model_type }}\n")

	err := f.run(t, nil, "generate",
		"--catalog", f.catalog,
		"--templates", templates,
		"--schema", "5",
		"--namespace", "acme.web.models",
		"--class", "subscriber",
		"--action", "subscribe",
		"--controller", "newsletter",
	)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	out := f.stdout.String()
	if !strings.Contains(out, "custom view for Acme.Web.Models.Subscriber") {
		t.Fatalf("expected overridden view:\n%s", out)
	}
	if strings.Contains(out, "Html.BeginForm") {
		t.Fatalf("embedded view must be shadowed:\n%s", out)
	}
	if !strings.Contains(out, "public string Email { get; set; }") {
		t.Fatalf("model must fall back to the embedded template:\n%s", out)
	}
}

func TestGenerate_TemplatesMustBeDirectory(t *testing.T) {
	f := newFixture(t)
	err := f.run(t, nil, "generate",
		"--catalog", f.catalog,
		"--templates", filepath.Join(f.dir, "missing"),
		"--schema", "5",
		"--namespace", "a", "--class", "b", "--action", "c", "--controller", "d")
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected missing templates directory error, got %v", err)
	}
}

func TestGenerate_InteractiveFillsMissingSeeds(t *testing.T) {
	f := newFixture(t)
	driver := &scriptedDriver{
		selects: []int{0},
		inputs:  []string{"Acme.Web", "ContactForm", "Send", "Contact"},
	}
	if err := f.run(t, driver, "generate", "-i", "--catalog", f.catalog, "-o", "json"); err != nil {
		t.Fatalf("generate: %v", err)
	}
	out := f.stdout.String()
	if !strings.Contains(out, `"schema_id": 2`) || !strings.Contains(out, `"model_class": "ContactForm"`) {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestGenerate_ReportsTypedErrors(t *testing.T) {
	f := newFixture(t)
	err := f.run(t, nil, "generate", "--catalog", f.catalog, "--schema", "99",
		"--namespace", "a", "--class", "b", "--action", "c", "--controller", "d")
	var notFound *schema.SchemaNotFoundError
	if !errors.As(err, &notFound) || notFound.ID != 99 {
		t.Fatalf("expected SchemaNotFoundError, got %v", err)
	}
	if !strings.Contains(f.stderr.String(), "operation=generate") || !strings.Contains(f.stderr.String(), "source=mvcgen") {
		t.Fatalf("expected failure log, got:\n%s", f.stderr.String())
	}
	if f.stdout.Len() != 0 {
		t.Fatalf("expected no output, got:\n%s", f.stdout.String())
	}
}

func TestGenerate_RequiresStore(t *testing.T) {
	f := newFixture(t)
	err := f.run(t, nil, "generate", "--schema", "5")
	if !errors.Is(err, ErrNoStore) {
		t.Fatalf("expected ErrNoStore, got %v", err)
	}
}

func TestSave_WritesFilesFromConfig(t *testing.T) {
	f := newFixture(t)
	configPath := filepath.Join(f.dir, "mvcgen.yaml")
	testsupport.WriteFile(t, configPath, `
output:
  baseDir: web
seeds:
  schema: 2
  namespace: Acme.Web.Models
  class: Contact
  action: Send
  controller: Contact
store:
  catalog: catalog.yaml
`)

	if err := f.run(t, nil, "save", "--config", configPath); err != nil {
		t.Fatalf("save: %v", err)
	}

	model := filepath.Join(f.dir, "web", "Models", "Generated", "Forms", "ContactRepositoryModel.generated.cs")
	view := filepath.Join(f.dir, "web", "Views", "Shared", "ContactPartial.cshtml")
	for _, path := range []string{model, view} {
		if _, err := os.Stat(path); err != nil {
			t.Fatalf("expected %s: %v", path, err)
		}
	}
	if got := f.stdout.String(); got != model+"\n"+view+"\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestSave_InteractiveDeclineKeepsFiles(t *testing.T) {
	f := newFixture(t)
	out := filepath.Join(f.dir, "web")
	existing := filepath.Join(out, "Views", "Shared", "ContactPartial.cshtml")
	testsupport.WriteFile(t, existing, "keep")

	driver := &scriptedDriver{confirms: []bool{false}}
	err := f.run(t, driver, "save", "-i", "--catalog", f.catalog, "--out", out,
		"--schema", "2", "--namespace", "Acme", "--class", "Contact", "--action", "Send", "--controller", "Contact")
	if !errors.Is(err, prompt.ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
	data, readErr := os.ReadFile(existing)
	if readErr != nil || string(data) != "keep" {
		t.Fatalf("existing view was replaced: %q %v", data, readErr)
	}
}
