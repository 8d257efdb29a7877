// Package config loads the mvcgen.yaml project file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-mvcgen/pkg/output"
)

// DefaultFileName is looked up in the working directory when no --config
// flag is given.
const DefaultFileName = "mvcgen.yaml"

// Config is the mvcgen.yaml project configuration.
type Config struct {
	Output         Output `yaml:"output"`
	Seeds          Seeds  `yaml:"seeds"`
	Store          Store  `yaml:"store"`
	Resources      string `yaml:"resources,omitempty"`
	Culture        string `yaml:"culture,omitempty"`
	Presets        string `yaml:"presets,omitempty"`
	Templates      string `yaml:"templates,omitempty"`
	HTMLAttributes bool   `yaml:"htmlAttributes,omitempty"`
}

// Output locates generated files.
type Output struct {
	BaseDir  string `yaml:"baseDir"`
	ModelDir string `yaml:"modelDir"`
	ViewDir  string `yaml:"viewDir"`
}

// Seeds are default generation inputs, overridden by flags.
type Seeds struct {
	SchemaID   int64  `yaml:"schema,omitempty"`
	Namespace  string `yaml:"namespace,omitempty"`
	ModelClass string `yaml:"class,omitempty"`
	Action     string `yaml:"action,omitempty"`
	Controller string `yaml:"controller,omitempty"`
}

// Store selects the schema store. Exactly one of Catalog, SQLite or OpenAPI
// must be set.
type Store struct {
	Catalog   string `yaml:"catalog,omitempty"`
	SQLite    string `yaml:"sqlite,omitempty"`
	Table     string `yaml:"table,omitempty"`
	OpenAPI   string `yaml:"openapi,omitempty"`
	AllowHTTP bool   `yaml:"allowHTTP,omitempty"`
}

// Kind names the configured store.
func (s Store) Kind() string {
	switch {
	case s.Catalog != "":
		return "catalog"
	case s.SQLite != "":
		return "sqlite"
	case s.OpenAPI != "":
		return "openapi"
	default:
		return ""
	}
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Output: Output{
			BaseDir:  ".",
			ModelDir: output.DefaultModelDir,
			ViewDir:  output.DefaultViewDir,
		},
		Culture: "en-us",
	}
}

// Load reads a Config from path. Unset values keep their defaults and
// relative paths resolve against the file's directory.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg.resolvePaths(filepath.Dir(path))
	return cfg, cfg.Validate()
}

// LoadOptional behaves like Load but returns Default when path does not
// exist.
func LoadOptional(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Save writes the Config to path.
func (c *Config) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return err
	}
	return enc.Close()
}

// Validate checks the configuration for conflicting or invalid values.
func (c *Config) Validate() error {
	set := 0
	for _, value := range []string{c.Store.Catalog, c.Store.SQLite, c.Store.OpenAPI} {
		if strings.TrimSpace(value) != "" {
			set++
		}
	}
	if set > 1 {
		return errors.New("config: store: only one of catalog, sqlite or openapi may be set")
	}
	if c.Seeds.SchemaID < 0 {
		return fmt.Errorf("config: seeds: schema id must not be negative, got %d", c.Seeds.SchemaID)
	}
	if strings.TrimSpace(c.Output.BaseDir) == "" {
		return errors.New("config: output: baseDir is required")
	}
	return nil
}

func (c *Config) resolvePaths(dir string) {
	resolve := func(path string) string {
		if path == "" || filepath.IsAbs(path) || isURL(path) {
			return path
		}
		return filepath.Join(dir, path)
	}
	c.Output.BaseDir = resolve(c.Output.BaseDir)
	c.Store.Catalog = resolve(c.Store.Catalog)
	c.Store.OpenAPI = resolve(c.Store.OpenAPI)
	c.Resources = resolve(c.Resources)
	c.Presets = resolve(c.Presets)
	c.Templates = resolve(c.Templates)
}

func isURL(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}
