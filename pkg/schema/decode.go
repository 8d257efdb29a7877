package schema

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Decode parses a raw form definition. XML payloads follow the CMS form
// definition layout (<form><field .../></form>); anything else is decoded as
// YAML, which also covers JSON documents. Failures are reported as
// *InvalidSchemaDefinitionError.
func Decode(raw []byte) (Definition, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return Definition{}, &InvalidSchemaDefinitionError{Err: errors.New("definition is empty")}
	}

	var (
		def Definition
		err error
	)
	if trimmed[0] == '<' {
		def, err = decodeXML(trimmed)
	} else {
		def, err = decodeYAML(trimmed)
	}
	if err != nil {
		return Definition{}, &InvalidSchemaDefinitionError{Err: err}
	}
	return def, nil
}

type xmlForm struct {
	XMLName xml.Name   `xml:"form"`
	Name    string     `xml:"name,attr"`
	Fields  []xmlField `xml:"field"`
}

type xmlField struct {
	Column     string        `xml:"column,attr"`
	ColumnType string        `xml:"columntype,attr"`
	ColumnSize string        `xml:"columnsize,attr"`
	System     string        `xml:"system,attr"`
	PrimaryKey string        `xml:"isPK,attr"`
	Visible    string        `xml:"visible,attr"`
	Public     string        `xml:"publicfield,attr"`
	AllowEmpty string        `xml:"allowempty,attr"`
	Regex      string        `xml:"regularexpression,attr"`
	MinValue   string        `xml:"minvalue,attr"`
	MaxValue   string        `xml:"maxvalue,attr"`
	Properties xmlProperties `xml:"properties"`
	Settings   xmlSettings   `xml:"settings"`
	Validation xmlRules      `xml:"validationrules"`
}

type xmlProperties struct {
	Caption  string `xml:"fieldcaption"`
	MinValue string `xml:"minvalue"`
	MaxValue string `xml:"maxvalue"`
	Regex    string `xml:"regularexpression"`
}

type xmlRules struct {
	Regex string `xml:"regex"`
}

type xmlSettings struct {
	Items []xmlSetting `xml:",any"`
}

type xmlSetting struct {
	XMLName xml.Name
	Value   string `xml:",chardata"`
}

func decodeXML(raw []byte) (Definition, error) {
	var form xmlForm
	if err := xml.Unmarshal(raw, &form); err != nil {
		return Definition{}, fmt.Errorf("decode xml: %w", err)
	}

	def := Definition{Name: strings.TrimSpace(form.Name)}
	seen := make(map[string]struct{}, len(form.Fields))
	for idx, entry := range form.Fields {
		name := strings.TrimSpace(entry.Column)
		if name == "" {
			return Definition{}, fmt.Errorf("field %d: column name is required", idx)
		}
		if err := markSeen(seen, name); err != nil {
			return Definition{}, err
		}
		size, err := parseSize(entry.ColumnSize)
		if err != nil {
			return Definition{}, fmt.Errorf("field %q: %w", name, err)
		}

		settings := make(map[string]string, len(entry.Settings.Items))
		for _, item := range entry.Settings.Items {
			settings[item.XMLName.Local] = strings.TrimSpace(item.Value)
		}

		field := Field{
			Name:       name,
			DataKind:   ParseDataKind(entry.ColumnType),
			System:     parseBool(entry.System, false),
			PrimaryKey: parseBool(entry.PrimaryKey, false),
			Visible:    parseBool(entry.Visible, true),
			Public:     parseBool(entry.Public, true),
			AllowEmpty: parseBool(entry.AllowEmpty, false),
			Caption:    strings.TrimSpace(entry.Properties.Caption),
			Size:       size,
			Pattern:    firstSet(entry.Regex, entry.Properties.Regex, entry.Validation.Regex),
			MinValue:   firstNonEmpty(entry.MinValue, entry.Properties.MinValue),
			MaxValue:   firstNonEmpty(entry.MaxValue, entry.Properties.MaxValue),
			Settings:   settings,
		}
		field.Control = field.ControlName()
		def.Fields = append(def.Fields, field)
	}
	return def, nil
}

type yamlDefinition struct {
	ID     int64       `yaml:"id"`
	Name   string      `yaml:"name"`
	Fields []yamlField `yaml:"fields"`
}

type yamlField struct {
	Name       string            `yaml:"name"`
	DataKind   string            `yaml:"dataKind"`
	Type       string            `yaml:"type"`
	Control    string            `yaml:"control"`
	System     bool              `yaml:"system"`
	PrimaryKey bool              `yaml:"primaryKey"`
	Visible    *bool             `yaml:"visible"`
	Public     *bool             `yaml:"public"`
	AllowEmpty bool              `yaml:"allowEmpty"`
	Caption    string            `yaml:"caption"`
	Size       int               `yaml:"size"`
	Pattern    string            `yaml:"pattern"`
	MinValue   string            `yaml:"minValue"`
	MaxValue   string            `yaml:"maxValue"`
	Settings   map[string]string `yaml:"settings"`
}

func decodeYAML(raw []byte) (Definition, error) {
	var doc yamlDefinition
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return Definition{}, fmt.Errorf("decode yaml: %w", err)
	}
	if doc.Fields == nil {
		return Definition{}, errors.New("definition declares no fields")
	}

	def := Definition{ID: doc.ID, Name: strings.TrimSpace(doc.Name)}
	seen := make(map[string]struct{}, len(doc.Fields))
	for idx, entry := range doc.Fields {
		name := strings.TrimSpace(entry.Name)
		if name == "" {
			return Definition{}, fmt.Errorf("field %d: name is required", idx)
		}
		if err := markSeen(seen, name); err != nil {
			return Definition{}, err
		}
		kind := entry.DataKind
		if strings.TrimSpace(kind) == "" {
			kind = entry.Type
		}
		field := Field{
			Name:       name,
			DataKind:   ParseDataKind(kind),
			Control:    entry.Control,
			System:     entry.System,
			PrimaryKey: entry.PrimaryKey,
			Visible:    boolOr(entry.Visible, true),
			Public:     boolOr(entry.Public, true),
			AllowEmpty: entry.AllowEmpty,
			Caption:    strings.TrimSpace(entry.Caption),
			Size:       entry.Size,
			Pattern:    entry.Pattern,
			MinValue:   strings.TrimSpace(entry.MinValue),
			MaxValue:   strings.TrimSpace(entry.MaxValue),
			Settings:   entry.Settings,
		}
		field.Control = field.ControlName()
		def.Fields = append(def.Fields, field)
	}
	return def, nil
}

// Column names are case-insensitive in the CMS database.
func markSeen(seen map[string]struct{}, name string) error {
	key := strings.ToLower(name)
	if _, ok := seen[key]; ok {
		return fmt.Errorf("field %q declared more than once", name)
	}
	seen[key] = struct{}{}
	return nil
}

func parseBool(raw string, fallback bool) bool {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return fallback
	}
	value, err := strconv.ParseBool(strings.ToLower(trimmed))
	if err != nil {
		return fallback
	}
	return value
}

func parseSize(raw string) (int, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, nil
	}
	size, err := strconv.Atoi(trimmed)
	if err != nil || size < 0 {
		return 0, fmt.Errorf("invalid column size %q", raw)
	}
	return size, nil
}

func boolOr(value *bool, fallback bool) bool {
	if value == nil {
		return fallback
	}
	return *value
}

// firstSet returns the first non-empty value unchanged. Regex text is
// significant down to its whitespace.
func firstSet(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
