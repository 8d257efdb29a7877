// Package commands contains the mvcgen CLI command definitions.
package commands

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-mvcgen/internal/prompt"
	"github.com/goliatone/go-mvcgen/pkg/config"
)

// EnvConfig names the environment variable holding the default config path.
const EnvConfig = "MVCGEN_CONFIG"

// Option customises the root command.
type Option func(*app)

// WithOutput redirects command output.
func WithOutput(w io.Writer) Option {
	return func(a *app) {
		if w != nil {
			a.stdout = w
		}
	}
}

// WithErrorOutput redirects log output.
func WithErrorOutput(w io.Writer) Option {
	return func(a *app) {
		if w != nil {
			a.stderr = w
		}
	}
}

// WithPrompter replaces the survey prompt driver used by --interactive.
func WithPrompter(driver prompt.Driver) Option {
	return func(a *app) {
		if driver != nil {
			a.prompter = driver
		}
	}
}

// WithGetenv sets the environment lookup.
func WithGetenv(getenv func(string) string) Option {
	return func(a *app) {
		if getenv != nil {
			a.getenv = getenv
		}
	}
}

type globalFlags struct {
	configPath  string
	verbose     bool
	interactive bool
	catalog     string
	sqlite      string
	table       string
	openapi     string
	allowHTTP   bool
	resources   string
	culture     string
	presets     string
	templates   string
}

type app struct {
	stdout   io.Writer
	stderr   io.Writer
	getenv   func(string) string
	prompter prompt.Driver

	flags  globalFlags
	cfg    *config.Config
	logger *slog.Logger
}

// NewRootCmd creates and returns the root command for the CLI.
func NewRootCmd(options ...Option) *cobra.Command {
	a := &app{
		stdout: os.Stdout,
		stderr: os.Stderr,
		getenv: os.Getenv,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(a)
	}

	rootCmd := &cobra.Command{
		Use:           "mvcgen",
		Short:         "Generate MVC models and partial views from form schemas",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd)
		},
	}
	rootCmd.SetOut(a.stdout)
	rootCmd.SetErr(a.stderr)

	defaultConfig := a.getenv(EnvConfig)
	if defaultConfig == "" {
		defaultConfig = config.DefaultFileName
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&a.flags.configPath, "config", "c", defaultConfig, "Path to the mvcgen.yaml config file")
	pf.BoolVarP(&a.flags.verbose, "verbose", "v", false, "Enable debug logging")
	pf.BoolVarP(&a.flags.interactive, "interactive", "i", false, "Prompt for missing inputs")
	pf.StringVar(&a.flags.catalog, "catalog", "", "Schema catalog file")
	pf.StringVar(&a.flags.sqlite, "sqlite", "", "SQLite DSN of the CMS database")
	pf.StringVar(&a.flags.table, "table", "", "Table holding form definitions")
	pf.StringVar(&a.flags.openapi, "openapi", "", "OpenAPI document path or URL")
	pf.BoolVar(&a.flags.allowHTTP, "allow-http", false, "Allow loading schema sources over HTTP")
	pf.StringVar(&a.flags.resources, "resources", "", "YAML localization resources for caption macros")
	pf.StringVar(&a.flags.culture, "culture", "", "Culture used to resolve localization macros")
	pf.StringVar(&a.flags.presets, "presets", "", "YAML field presets applied before generation")
	pf.StringVar(&a.flags.templates, "templates", "", "Directory of model.tmpl/view.tmpl overrides")

	rootCmd.AddCommand(
		newGenerateCmd(a),
		newSaveCmd(a),
		newListCmd(a),
	)

	return rootCmd
}

func (a *app) load(cmd *cobra.Command) error {
	a.logger = newLogger(a.stderr, a.flags.verbose)

	cfg, err := config.LoadOptional(a.flags.configPath)
	if err != nil {
		return err
	}

	pf := cmd.Flags()
	override := func(name string, target *string, value string) {
		if pf.Changed(name) {
			*target = value
		}
	}
	if pf.Changed("catalog") || pf.Changed("sqlite") || pf.Changed("openapi") {
		cfg.Store.Catalog, cfg.Store.SQLite, cfg.Store.OpenAPI = "", "", ""
	}
	override("catalog", &cfg.Store.Catalog, a.flags.catalog)
	override("sqlite", &cfg.Store.SQLite, a.flags.sqlite)
	override("table", &cfg.Store.Table, a.flags.table)
	override("openapi", &cfg.Store.OpenAPI, a.flags.openapi)
	override("resources", &cfg.Resources, a.flags.resources)
	override("culture", &cfg.Culture, a.flags.culture)
	override("presets", &cfg.Presets, a.flags.presets)
	override("templates", &cfg.Templates, a.flags.templates)
	if pf.Changed("allow-http") {
		cfg.Store.AllowHTTP = a.flags.allowHTTP
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	a.cfg = cfg
	a.logger.Debug("configuration loaded",
		slog.String("config", a.flags.configPath),
		slog.String("store", cfg.Store.Kind()),
		slog.String("culture", cfg.Culture),
	)
	return nil
}

func (a *app) driver() prompt.Driver {
	if a.prompter == nil {
		a.prompter = prompt.NewSurveyDriver()
	}
	return a.prompter
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
