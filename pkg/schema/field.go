package schema

import "strings"

// SettingControlName is the settings key holding the form control name.
const SettingControlName = "controlname"

// Field describes one form field. Values are treated as read-only; use the
// accessors rather than mutating shared instances.
type Field struct {
	Name       string            `json:"name" yaml:"name"`
	DataKind   DataKind          `json:"dataKind" yaml:"dataKind"`
	Control    string            `json:"control" yaml:"control"`
	System     bool              `json:"system,omitempty" yaml:"system,omitempty"`
	PrimaryKey bool              `json:"primaryKey,omitempty" yaml:"primaryKey,omitempty"`
	Visible    bool              `json:"visible" yaml:"visible"`
	Public     bool              `json:"public" yaml:"public"`
	AllowEmpty bool              `json:"allowEmpty" yaml:"allowEmpty"`
	Caption    string            `json:"caption,omitempty" yaml:"caption,omitempty"`
	Size       int               `json:"size,omitempty" yaml:"size,omitempty"`
	Pattern    string            `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	MinValue   string            `json:"minValue,omitempty" yaml:"minValue,omitempty"`
	MaxValue   string            `json:"maxValue,omitempty" yaml:"maxValue,omitempty"`
	Settings   map[string]string `json:"settings,omitempty" yaml:"settings,omitempty"`
}

// Hidden reports whether the field is rendered as a hidden input. A field is
// hidden when it is either invisible or not public.
func (f Field) Hidden() bool {
	return !f.Visible || !f.Public
}

// Setting returns the control setting stored under key. Keys are matched
// case-insensitively because the CMS stores them with mixed casing.
func (f Field) Setting(key string) (string, bool) {
	if len(f.Settings) == 0 {
		return "", false
	}
	if value, ok := f.Settings[key]; ok {
		return value, true
	}
	for name, value := range f.Settings {
		if strings.EqualFold(name, key) {
			return value, true
		}
	}
	return "", false
}

// ControlName returns the lower-cased control name, preferring the explicit
// Control value and falling back to the "controlname" setting.
func (f Field) ControlName() string {
	control := strings.TrimSpace(f.Control)
	if control == "" {
		control, _ = f.Setting(SettingControlName)
	}
	return strings.ToLower(strings.TrimSpace(control))
}

// HasRange reports whether a minimum or maximum constraint is declared.
func (f Field) HasRange() bool {
	return strings.TrimSpace(f.MinValue) != "" || strings.TrimSpace(f.MaxValue) != ""
}

// Clone returns a deep copy so callers can hand fields out without aliasing
// the settings map.
func (f Field) Clone() Field {
	out := f
	if f.Settings != nil {
		out.Settings = make(map[string]string, len(f.Settings))
		for key, value := range f.Settings {
			out.Settings[key] = value
		}
	}
	return out
}
