package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-mvcgen/internal/prompt"
	"github.com/goliatone/go-mvcgen/pkg/output"
)

type saveOptions struct {
	seeds    seedFlags
	baseDir  string
	modelDir string
	viewDir  string
}

func newSaveCmd(a *app) *cobra.Command {
	opts := &saveOptions{}

	cmd := &cobra.Command{
		Use:   "save",
		Short: "Generate and save the model class and partial view",
		Long: `Generate the code of a form schema and write it under the output directory.
The model goes to <model-dir>/<Class>RepositoryModel.generated.cs and the view
to <view-dir>/<Class>Partial.cshtml. Existing files are replaced; with
--interactive the command asks first.`,
		Example: `  # Save into the current MVC project
  mvcgen save --schema 3 --namespace Acme.Web.Models --class Contact --action Send --controller Contact --out ./src/Web`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := a.save(cmd, opts)
			if err != nil {
				logFailure(a.logger, "save", err)
			}
			return err
		},
	}

	opts.seeds.bind(cmd)
	cmd.Flags().StringVar(&opts.baseDir, "out", "", "Project directory the files are written under")
	cmd.Flags().StringVar(&opts.modelDir, "model-dir", "", "Model directory relative to --out")
	cmd.Flags().StringVar(&opts.viewDir, "view-dir", "", "View directory relative to --out")

	return cmd
}

func (a *app) save(cmd *cobra.Command, opts *saveOptions) error {
	artifacts, err := a.generate(cmd, &opts.seeds)
	if err != nil {
		return err
	}

	out := a.cfg.Output
	flags := cmd.Flags()
	if flags.Changed("out") {
		out.BaseDir = opts.baseDir
	}
	if flags.Changed("model-dir") {
		out.ModelDir = opts.modelDir
	}
	if flags.Changed("view-dir") {
		out.ViewDir = opts.viewDir
	}

	writer, err := output.NewWriter(out.BaseDir,
		output.WithModelDir(out.ModelDir),
		output.WithViewDir(out.ViewDir),
	)
	if err != nil {
		return err
	}

	if a.flags.interactive {
		paths := writer.PathsFor(artifacts.ModelClass)
		if exists(paths.Model) || exists(paths.View) {
			ok, err := a.driver().Confirm(commandContext(cmd), prompt.ConfirmConfig{
				Message: fmt.Sprintf("Replace the existing files of %s?", artifacts.ModelClass),
			})
			if err != nil {
				return err
			}
			if !ok {
				return prompt.ErrAborted
			}
		}
	}

	paths, err := writer.Write(artifacts)
	if err != nil {
		return err
	}
	a.logger.Info("files saved",
		slog.String("model", paths.Model),
		slog.String("view", paths.View),
	)
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\n%s\n", paths.Model, paths.View)
	return err
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, fs.ErrNotExist)
}
