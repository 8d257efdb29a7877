package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-mvcgen/pkg/schema"
)

type listOptions struct {
	output string
}

type listEntry struct {
	ID   int64  `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

func newListCmd(a *app) *cobra.Command {
	opts := &listOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the form schemas of the configured store",
		Example: `  # List schemas in table format
  mvcgen list --catalog forms/catalog.yaml

  # List schemas as JSON
  mvcgen list -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			s, closeStore, err := openStore(ctx, a.cfg.Store, a.logger)
			if err != nil {
				logFailure(a.logger, "list", err)
				return err
			}
			defer func() { _ = closeStore() }()

			summaries, err := s.List(ctx)
			if err != nil {
				logFailure(a.logger, "list", err)
				return err
			}
			return printSummaries(cmd, summaries, opts.output)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "table", "Output format (table, json, yaml)")

	return cmd
}

func printSummaries(cmd *cobra.Command, summaries []schema.Summary, format string) error {
	out := cmd.OutOrStdout()
	entries := make([]listEntry, len(summaries))
	for i, summary := range summaries {
		entries[i] = listEntry{ID: summary.ID, Name: summary.Name}
	}

	switch format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		defer func() { _ = enc.Close() }()
		return enc.Encode(entries)
	case "table", "":
		if len(entries) == 0 {
			_, err := fmt.Fprintln(out, "No form schemas found.")
			return err
		}
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		_, _ = fmt.Fprintln(w, "ID\tNAME")
		for _, entry := range entries {
			_, _ = fmt.Fprintf(w, "%d\t%s\n", entry.ID, entry.Name)
		}
		return w.Flush()
	default:
		return fmt.Errorf("commands: unknown output format %q", format)
	}
}
