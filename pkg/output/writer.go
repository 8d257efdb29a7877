// Package output persists generated artifacts below a project directory.
package output

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-mvcgen/pkg/orchestrator"
)

const (
	// DefaultModelDir is the model folder relative to the base directory.
	DefaultModelDir = "Models/Generated/Forms"
	// DefaultViewDir is the partial view folder relative to the base directory.
	DefaultViewDir = "Views/Shared"

	modelSuffix = "RepositoryModel.generated.cs"
	viewSuffix  = "Partial.cshtml"
)

// WriteError reports a failed filesystem operation.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("output: write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// Option configures a Writer.
type Option func(*Writer)

// WithModelDir overrides DefaultModelDir.
func WithModelDir(dir string) Option {
	return func(w *Writer) {
		if strings.TrimSpace(dir) != "" {
			w.modelDir = dir
		}
	}
}

// WithViewDir overrides DefaultViewDir.
func WithViewDir(dir string) Option {
	return func(w *Writer) {
		if strings.TrimSpace(dir) != "" {
			w.viewDir = dir
		}
	}
}

// WithFileMode sets the permission bits of written files.
func WithFileMode(mode os.FileMode) Option {
	return func(w *Writer) {
		w.fileMode = mode
	}
}

// Writer writes the model and the partial view of one generation.
type Writer struct {
	baseDir  string
	modelDir string
	viewDir  string
	fileMode os.FileMode
}

// Paths are the files written by Write.
type Paths struct {
	Model string
	View  string
}

// NewWriter returns a Writer rooted at baseDir.
func NewWriter(baseDir string, options ...Option) (*Writer, error) {
	if strings.TrimSpace(baseDir) == "" {
		return nil, errors.New("output: base directory is required")
	}
	w := &Writer{
		baseDir:  baseDir,
		modelDir: DefaultModelDir,
		viewDir:  DefaultViewDir,
		fileMode: 0o644,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(w)
	}
	return w, nil
}

// PathsFor returns the target paths for modelClass without writing.
func (w *Writer) PathsFor(modelClass string) Paths {
	return Paths{
		Model: filepath.Join(w.baseDir, filepath.FromSlash(w.modelDir), modelClass+modelSuffix),
		View:  filepath.Join(w.baseDir, filepath.FromSlash(w.viewDir), modelClass+viewSuffix),
	}
}

// Write creates the target directories as needed and writes both artifacts,
// replacing earlier versions.
func (w *Writer) Write(artifacts orchestrator.Artifacts) (Paths, error) {
	if strings.TrimSpace(artifacts.ModelClass) == "" {
		return Paths{}, errors.New("output: artifacts carry no model class")
	}
	paths := w.PathsFor(artifacts.ModelClass)
	if err := w.writeFile(paths.Model, artifacts.Model); err != nil {
		return Paths{}, err
	}
	if err := w.writeFile(paths.View, artifacts.View); err != nil {
		return Paths{}, err
	}
	return paths, nil
}

func (w *Writer) writeFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &WriteError{Path: filepath.Dir(path), Err: err}
	}
	if err := os.WriteFile(path, []byte(content), w.fileMode); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	return nil
}
