package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-mvcgen/internal/prompt"
	"github.com/goliatone/go-mvcgen/pkg/codegen"
	"github.com/goliatone/go-mvcgen/pkg/config"
	"github.com/goliatone/go-mvcgen/pkg/schema"
)

type seedFlags struct {
	schemaID       int64
	namespace      string
	modelClass     string
	action         string
	controller     string
	htmlAttributes bool
}

func (f *seedFlags) bind(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.Int64VarP(&f.schemaID, "schema", "s", 0, "Form schema id")
	flags.StringVar(&f.namespace, "namespace", "", "Namespace of the generated model")
	flags.StringVar(&f.modelClass, "class", "", "Name of the generated model class")
	flags.StringVar(&f.action, "action", "", "Controller action the form posts to")
	flags.StringVar(&f.controller, "controller", "", "Controller handling the post")
	flags.BoolVar(&f.htmlAttributes, "html-attributes", false, "Request HTML attributes on view bindings")
}

// seeds merges the flags over the configured defaults. Flags win only when
// they were set explicitly.
func (f *seedFlags) seeds(cmd *cobra.Command, defaults config.Seeds) codegen.Seeds {
	out := codegen.Seeds{
		SchemaID:   defaults.SchemaID,
		Namespace:  defaults.Namespace,
		ModelClass: defaults.ModelClass,
		Action:     defaults.Action,
		Controller: defaults.Controller,
	}
	flags := cmd.Flags()
	if flags.Changed("schema") {
		out.SchemaID = f.schemaID
	}
	if flags.Changed("namespace") {
		out.Namespace = f.namespace
	}
	if flags.Changed("class") {
		out.ModelClass = f.modelClass
	}
	if flags.Changed("action") {
		out.Action = f.action
	}
	if flags.Changed("controller") {
		out.Controller = f.controller
	}
	return out
}

func (a *app) completeSeeds(ctx context.Context, seeds codegen.Seeds, lister schema.Lister) (codegen.Seeds, error) {
	if !a.flags.interactive {
		return seeds, nil
	}
	var summaries []schema.Summary
	if seeds.SchemaID <= 0 && lister != nil {
		list, err := lister.List(ctx)
		if err != nil {
			return seeds, err
		}
		summaries = list
	}
	return prompt.CompleteSeeds(ctx, a.driver(), seeds, summaries)
}
