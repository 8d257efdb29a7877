package prompt

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-mvcgen/pkg/codegen"
	"github.com/goliatone/go-mvcgen/pkg/identifier"
	"github.com/goliatone/go-mvcgen/pkg/schema"
)

// CompleteSeeds asks for every seed that is still empty. When schemas is
// non-empty and no schema id was given, the user picks from the list.
func CompleteSeeds(ctx context.Context, driver Driver, seeds codegen.Seeds, schemas []schema.Summary) (codegen.Seeds, error) {
	if driver == nil {
		return seeds, errors.New("prompt: driver is required")
	}

	if seeds.SchemaID <= 0 {
		id, err := askSchema(ctx, driver, schemas)
		if err != nil {
			return seeds, err
		}
		seeds.SchemaID = id
	}

	steps := []struct {
		target    *string
		message   string
		help      string
		validator func(string) error
	}{
		{&seeds.Namespace, "Namespace", "Dotted namespace of the model class, e.g. Acme.Web.Models", validQualified},
		{&seeds.ModelClass, "Model class", "Class name; a dotted prefix is dropped", validSimple},
		{&seeds.Action, "Form action", "Controller action the form posts to", validSimple},
		{&seeds.Controller, "Controller", "Controller handling the post", validSimple},
	}
	for _, step := range steps {
		if strings.TrimSpace(*step.target) != "" {
			continue
		}
		value, err := driver.Input(ctx, InputConfig{
			Message:   step.message,
			Help:      step.help,
			Validator: step.validator,
		})
		if err != nil {
			return seeds, err
		}
		*step.target = value
	}
	return seeds, nil
}

func askSchema(ctx context.Context, driver Driver, schemas []schema.Summary) (int64, error) {
	if len(schemas) == 0 {
		value, err := driver.Input(ctx, InputConfig{
			Message:   "Schema id",
			Validator: validID,
		})
		if err != nil {
			return 0, err
		}
		var id int64
		_, err = fmt.Sscan(strings.TrimSpace(value), &id)
		return id, err
	}

	options := make([]string, len(schemas))
	for i, summary := range schemas {
		options[i] = fmt.Sprintf("%d  %s", summary.ID, summary.Name)
	}
	idx, err := driver.Select(ctx, SelectConfig{
		Message:  "Form schema",
		Options:  options,
		PageSize: 15,
	})
	if err != nil {
		return 0, err
	}
	if idx < 0 || idx >= len(schemas) {
		return 0, schema.ErrNoSchemaSelected
	}
	return schemas[idx].ID, nil
}

func validQualified(value string) error {
	_, err := identifier.NormalizeQualified(value)
	return err
}

func validSimple(value string) error {
	_, err := identifier.Normalize(value)
	return err
}

func validID(value string) error {
	var id int64
	if _, err := fmt.Sscan(strings.TrimSpace(value), &id); err != nil || id <= 0 {
		return schema.ErrNoSchemaSelected
	}
	return nil
}
