package prompt

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-mvcgen/pkg/codegen"
	"github.com/goliatone/go-mvcgen/pkg/schema"
)

type scriptedDriver struct {
	inputs   []string
	selects  []int
	confirms []bool
	messages []string
}

func (d *scriptedDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	d.messages = append(d.messages, cfg.Message)
	if len(d.inputs) == 0 {
		return "", errors.New("no input scripted")
	}
	value := d.inputs[0]
	d.inputs = d.inputs[1:]
	if cfg.Validator != nil {
		if err := cfg.Validator(value); err != nil {
			return "", err
		}
	}
	return value, nil
}

func (d *scriptedDriver) Confirm(_ context.Context, cfg ConfirmConfig) (bool, error) {
	d.messages = append(d.messages, cfg.Message)
	if len(d.confirms) == 0 {
		return false, errors.New("no confirm scripted")
	}
	value := d.confirms[0]
	d.confirms = d.confirms[1:]
	return value, nil
}

func (d *scriptedDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	d.messages = append(d.messages, cfg.Message)
	if len(d.selects) == 0 {
		return -1, errors.New("no select scripted")
	}
	value := d.selects[0]
	d.selects = d.selects[1:]
	return value, nil
}

func TestCompleteSeeds_AsksOnlyForMissingValues(t *testing.T) {
	driver := &scriptedDriver{
		selects: []int{1},
		inputs:  []string{"send", "contact"},
	}
	schemas := []schema.Summary{{ID: 2, Name: "newsletter"}, {ID: 3, Name: "contact"}}

	got, err := CompleteSeeds(context.Background(), driver, codegen.Seeds{
		Namespace:  "acme.web.models",
		ModelClass: "form",
	}, schemas)
	if err != nil {
		t.Fatalf("complete seeds: %v", err)
	}

	want := codegen.Seeds{
		SchemaID:   3,
		Namespace:  "acme.web.models",
		ModelClass: "form",
		Action:     "send",
		Controller: "contact",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("seeds mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Form schema", "Form action", "Controller"}, driver.messages); diff != "" {
		t.Fatalf("prompt sequence mismatch (-want +got):\n%s", diff)
	}
}

func TestCompleteSeeds_SchemaIDInputWithoutList(t *testing.T) {
	driver := &scriptedDriver{inputs: []string{"7"}}
	got, err := CompleteSeeds(context.Background(), driver, codegen.Seeds{
		Namespace: "a", ModelClass: "b", Action: "c", Controller: "d",
	}, nil)
	if err != nil {
		t.Fatalf("complete seeds: %v", err)
	}
	if got.SchemaID != 7 {
		t.Fatalf("expected schema 7, got %d", got.SchemaID)
	}
}

func TestCompleteSeeds_Errors(t *testing.T) {
	ctx := context.Background()

	if _, err := CompleteSeeds(ctx, nil, codegen.Seeds{}, nil); err == nil {
		t.Fatalf("expected nil driver error")
	}

	driver := &scriptedDriver{inputs: []string{"0"}}
	if _, err := CompleteSeeds(ctx, driver, codegen.Seeds{}, nil); !errors.Is(err, schema.ErrNoSchemaSelected) {
		t.Fatalf("expected ErrNoSchemaSelected, got %v", err)
	}

	driver = &scriptedDriver{selects: []int{-1}}
	if _, err := CompleteSeeds(ctx, driver, codegen.Seeds{}, []schema.Summary{{ID: 1, Name: "a"}}); !errors.Is(err, schema.ErrNoSchemaSelected) {
		t.Fatalf("expected ErrNoSchemaSelected for cancelled select, got %v", err)
	}

	driver = &scriptedDriver{inputs: []string{"..."}}
	if _, err := CompleteSeeds(ctx, driver, codegen.Seeds{SchemaID: 1}, nil); err == nil {
		t.Fatalf("expected validation error for namespace")
	}
}
