package orchestrator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-mvcgen/pkg/schema"
)

// Transformer mutates a resolved schema definition before the generation
// context is frozen. Implementations can patch captions, controls or
// constraints without touching the schema store.
type Transformer interface {
	Transform(ctx context.Context, def *schema.Definition) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, def *schema.Definition) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, def *schema.Definition) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, def)
}

// PresetTransformer applies declarative field overrides loaded from a YAML
// (or JSON) document:
//
//	fields:
//	  Email:
//	    caption: "{$general.email$}"
//	    control: emailinput
//	  Notes:
//	    visible: false
//	    settings:
//	      EditTime: "true"
type PresetTransformer struct {
	document presetDocument
}

type presetDocument struct {
	Fields map[string]fieldPatch `yaml:"fields"`
}

type fieldPatch struct {
	Caption    string            `yaml:"caption"`
	Control    string            `yaml:"control"`
	Pattern    string            `yaml:"pattern"`
	MinValue   string            `yaml:"minValue"`
	MaxValue   string            `yaml:"maxValue"`
	Size       *int              `yaml:"size"`
	Visible    *bool             `yaml:"visible"`
	Public     *bool             `yaml:"public"`
	AllowEmpty *bool             `yaml:"allowEmpty"`
	Settings   map[string]string `yaml:"settings"`
}

// NewPresetTransformer constructs a transformer from raw YAML or JSON bytes.
func NewPresetTransformer(data []byte) (*PresetTransformer, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("preset transformer: document is empty")
	}
	var document presetDocument
	if err := yaml.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("preset transformer: parse document: %w", err)
	}
	return &PresetTransformer{document: document}, nil
}

// NewPresetTransformerFromFS loads a preset document from fsys.
func NewPresetTransformerFromFS(fsys fs.FS, path string) (*PresetTransformer, error) {
	if fsys == nil {
		return nil, errors.New("preset transformer: filesystem is nil")
	}
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("preset transformer: path is required")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("preset transformer: read %s: %w", path, err)
	}
	return NewPresetTransformer(data)
}

// Transform applies the patches. Field names match case-insensitively; a
// patch naming an unknown field is an error.
func (t *PresetTransformer) Transform(ctx context.Context, def *schema.Definition) error {
	if def == nil {
		return errors.New("preset transformer: definition is nil")
	}
	for name, patch := range t.document.Fields {
		if err := ctx.Err(); err != nil {
			return err
		}
		field := findField(def.Fields, name)
		if field == nil {
			return fmt.Errorf("preset transformer: field %q not found", name)
		}
		applyFieldPatch(field, patch)
	}
	return nil
}

func applyFieldPatch(field *schema.Field, patch fieldPatch) {
	if patch.Caption != "" {
		field.Caption = patch.Caption
	}
	if control := strings.TrimSpace(patch.Control); control != "" {
		field.Control = strings.ToLower(control)
	}
	if patch.Pattern != "" {
		field.Pattern = patch.Pattern
	}
	if patch.MinValue != "" {
		field.MinValue = patch.MinValue
	}
	if patch.MaxValue != "" {
		field.MaxValue = patch.MaxValue
	}
	if patch.Size != nil {
		field.Size = *patch.Size
	}
	if patch.Visible != nil {
		field.Visible = *patch.Visible
	}
	if patch.Public != nil {
		field.Public = *patch.Public
	}
	if patch.AllowEmpty != nil {
		field.AllowEmpty = *patch.AllowEmpty
	}
	if len(patch.Settings) > 0 {
		if field.Settings == nil {
			field.Settings = make(map[string]string, len(patch.Settings))
		}
		for key, value := range patch.Settings {
			field.Settings[key] = value
		}
	}
}

func findField(fields []schema.Field, name string) *schema.Field {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	for idx := range fields {
		if strings.EqualFold(fields[idx].Name, name) {
			return &fields[idx]
		}
	}
	return nil
}
