// Package internal contains the main application logic for the CLI.
package internal

import (
	"context"

	"github.com/goliatone/go-mvcgen/internal/commands"
)

// Run is the main application logic, extracted for testability.
// It accepts OS dependencies as parameters (context, env lookup).
func Run(ctx context.Context, getenv func(string) string, options ...commands.Option) error {
	options = append([]commands.Option{commands.WithGetenv(getenv)}, options...)
	rootCmd := commands.NewRootCmd(options...)
	return rootCmd.ExecuteContext(ctx)
}
