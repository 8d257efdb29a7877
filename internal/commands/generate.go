package commands

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-mvcgen/pkg/orchestrator"
)

type generateOptions struct {
	seeds  seedFlags
	output string
}

func newGenerateCmd(a *app) *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the model class and partial view of a form schema",
		Long:  `Generate the repository model class and the partial view of a form schema and print both to stdout.`,
		Example: `  # Print the generated code of schema 3
  mvcgen generate --schema 3 --namespace Acme.Web.Models --class Contact --action Send --controller Contact

  # Ask for missing inputs
  mvcgen generate -i

  # Print the artifacts as JSON
  mvcgen generate --schema 3 -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			artifacts, err := a.generate(cmd, &opts.seeds)
			if err != nil {
				logFailure(a.logger, "generate", err)
				return err
			}
			return printArtifacts(cmd, artifacts, opts.output)
		},
	}

	opts.seeds.bind(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "text", "Output format (text, json, yaml)")

	return cmd
}

// generate runs one generation using the configured store.
func (a *app) generate(cmd *cobra.Command, flags *seedFlags) (orchestrator.Artifacts, error) {
	ctx := commandContext(cmd)
	orch, s, closeStore, err := a.newOrchestrator(ctx)
	if err != nil {
		return orchestrator.Artifacts{}, err
	}
	defer func() { _ = closeStore() }()

	seeds, err := a.completeSeeds(ctx, flags.seeds(cmd, a.cfg.Seeds), s)
	if err != nil {
		return orchestrator.Artifacts{}, err
	}

	artifacts, err := orch.Generate(ctx, orchestrator.Request{
		SchemaID:       seeds.SchemaID,
		Namespace:      seeds.Namespace,
		ModelClass:     seeds.ModelClass,
		Action:         seeds.Action,
		Controller:     seeds.Controller,
		HTMLAttributes: flags.htmlAttributes,
	})
	if err != nil {
		return orchestrator.Artifacts{}, err
	}
	a.logger.Debug("generated",
		slog.Int64("schema", artifacts.SchemaID),
		slog.String("class", artifacts.Namespace+"."+artifacts.ModelClass),
	)
	return artifacts, nil
}

func printArtifacts(cmd *cobra.Command, artifacts orchestrator.Artifacts, format string) error {
	w := cmd.OutOrStdout()
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(artifacts)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer func() { _ = enc.Close() }()
		return enc.Encode(artifactsDocument(artifacts))
	case "text", "":
		_, err := fmt.Fprintf(w, "// %sRepositoryModel.generated.cs\n%s\n@* %sPartial.cshtml *@\n%s",
			artifacts.ModelClass, artifacts.Model, artifacts.ModelClass, artifacts.View)
		return err
	default:
		return fmt.Errorf("commands: unknown output format %q", format)
	}
}

// artifactsDocument keys the YAML output the same way as the JSON output.
func artifactsDocument(artifacts orchestrator.Artifacts) map[string]any {
	return map[string]any{
		"schema_id":   artifacts.SchemaID,
		"schema_name": artifacts.SchemaName,
		"namespace":   artifacts.Namespace,
		"model_class": artifacts.ModelClass,
		"controller":  artifacts.Controller,
		"action":      artifacts.Action,
		"model":       artifacts.Model,
		"view":        artifacts.View,
	}
}
