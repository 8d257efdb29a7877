package model_test

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-mvcgen/pkg/annotation"
	"github.com/goliatone/go-mvcgen/pkg/codegen"
	"github.com/goliatone/go-mvcgen/pkg/generators/model"
	"github.com/goliatone/go-mvcgen/pkg/macro"
	"github.com/goliatone/go-mvcgen/pkg/render"
	"github.com/goliatone/go-mvcgen/pkg/render/template/gotemplate"
	"github.com/goliatone/go-mvcgen/pkg/schema"
	"github.com/goliatone/go-mvcgen/pkg/testsupport"
)

var contactSeeds = codegen.Seeds{
	SchemaID:   3,
	Namespace:  "acme.web.models",
	ModelClass: "my.form",
	Action:     "send",
	Controller: "contact",
}

func buildContext(t *testing.T, def schema.Definition, options ...codegen.Option) codegen.Context {
	t.Helper()
	seeds := contactSeeds
	seeds.SchemaID = def.ID
	ctx, err := codegen.Build(testsupport.Context(), testsupport.NewProvider(def), seeds, options...)
	if err != nil {
		t.Fatalf("build context: %v", err)
	}
	return ctx
}

func newGenerator(t *testing.T, options ...model.Option) *model.Generator {
	t.Helper()
	generator, err := model.New(options...)
	if err != nil {
		t.Fatalf("new generator: %v", err)
	}
	return generator
}

func TestGenerateContactScenario(t *testing.T) {
	ctx := buildContext(t, testsupport.ContactDefinition(3))

	out, err := newGenerator(t).Generate(ctx)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	testsupport.AssertGolden(t, filepath.Join("testdata", "contact.golden"), out)
}

func TestGenerateEmitsOnePropertyPerEligibleField(t *testing.T) {
	ctx := buildContext(t, testsupport.ContactDefinition(3))

	out, err := newGenerator(t).Generate(ctx)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if got := strings.Count(out, "{ get; set; }"); got != 2 {
		t.Fatalf("expected 2 properties, got %d:\n%s", got, out)
	}
	for _, excluded := range []string{"ContactID", "Attachment", "FormInserted"} {
		if strings.Contains(out, excluded) {
			t.Fatalf("field %s must not be generated:\n%s", excluded, out)
		}
	}
	if strings.Index(out, "string Name") > strings.Index(out, "DateTime Visit") {
		t.Fatalf("properties out of schema order:\n%s", out)
	}
}

func TestGenerateIsIdempotent(t *testing.T) {
	def := testsupport.ContactDefinition(3)
	generator := newGenerator(t)

	first, err := generator.Generate(buildContext(t, def))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	second, err := generator.Generate(buildContext(t, def))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if first != second {
		t.Fatalf("generation is not deterministic:\n%s\n---\n%s", first, second)
	}
}

func TestGenerateHiddenField(t *testing.T) {
	hidden := testsupport.TextField("Token", "Token", 20)
	hidden.Visible = false
	def := schema.Definition{ID: 8, Fields: []schema.Field{hidden}}

	out, err := newGenerator(t).Generate(buildContext(t, def))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(out, "        [HiddenInput]\n") {
		t.Fatalf("expected hidden input annotation:\n%s", out)
	}
	if strings.Contains(out, "[Display(") {
		t.Fatalf("hidden field must not carry a display label:\n%s", out)
	}
}

func TestGenerateResolvesCaptionsAndRanges(t *testing.T) {
	price := schema.Field{
		Name:       "price",
		DataKind:   schema.DataKindDecimal,
		Control:    "textboxcontrol",
		Visible:    true,
		Public:     true,
		AllowEmpty: true,
		Caption:    "{$form.price$}",
		MinValue:   "5",
	}
	def := schema.Definition{ID: 9, Fields: []schema.Field{price}}
	captions := macro.NewDictionary(macro.WithResources("en-us", map[string]string{"form.price": "Unit price"}))

	out, err := newGenerator(t).Generate(buildContext(t, def, codegen.WithCaptionResolver(captions)))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	for _, want := range []string{
		`[Display(Name = "Unit price")]`,
		"[Range(typeof(decimal), 5m, 79228162514264337593543950335m)]",
		"public decimal Price { get; set; }",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestGenerateFailsWholeArtifactOnCompositionError(t *testing.T) {
	bad := schema.Field{
		Name:     "amount",
		DataKind: schema.DataKindDecimal,
		Control:  "textboxcontrol",
		Visible:  true,
		Public:   true,
		MaxValue: "lots",
	}
	def := schema.Definition{ID: 10, Fields: []schema.Field{testsupport.TextField("Name", "Name", 10), bad}}

	out, err := newGenerator(t).Generate(buildContext(t, def))
	if out != "" {
		t.Fatalf("expected no partial output, got:\n%s", out)
	}
	var genErr *codegen.GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("expected GenerationError, got %v", err)
	}
	if genErr.Artifact != codegen.ArtifactModel || genErr.Field != "amount" {
		t.Fatalf("unexpected error context: %+v", genErr)
	}
	var rangeErr *annotation.InvalidRangeValueError
	if !errors.As(err, &rangeErr) {
		t.Fatalf("expected InvalidRangeValueError in chain, got %v", err)
	}
}

func TestGenerateWithCustomRenderer(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(dir, "model.tmpl"), "{{ class_name }}:{% for p in properties %} {{ p.name }}{% endfor %}")
	engine, err := gotemplate.New(gotemplate.WithBaseDir(dir))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	var generator render.Generator = newGenerator(t, model.WithRenderer(engine), model.WithUsings("System"))
	if generator.Name() != codegen.ArtifactModel {
		t.Fatalf("unexpected generator name %q", generator.Name())
	}
	out, err := generator.Render(buildContext(t, testsupport.ContactDefinition(3)), render.Options{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "Form: Name Visit" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestGenerateThroughGoTemplateEngine(t *testing.T) {
	engine, err := gotemplate.NewGoTemplate(gotemplate.WithFS(model.Templates()))
	if err != nil {
		t.Fatalf("new go-template engine: %v", err)
	}

	out, err := newGenerator(t, model.WithRenderer(engine)).Generate(buildContext(t, testsupport.ContactDefinition(3)))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	testsupport.AssertGolden(t, filepath.Join("testdata", "contact.golden"), out)
}
