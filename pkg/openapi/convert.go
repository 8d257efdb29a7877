package openapi

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-mvcgen/pkg/schema"
	"github.com/goliatone/go-mvcgen/pkg/typemap"
)

const (
	extControl    = "x-control"
	extCaption    = "x-caption"
	extVisible    = "x-visible"
	extPublic     = "x-public"
	extSystem     = "x-system"
	extPrimaryKey = "x-primary-key"
	extOrder      = "x-order"
	extMinValue   = "x-min-value"
	extMaxValue   = "x-max-value"
	extSettings   = "x-settings"
)

// longTextThreshold is the maxLength above which strings map to long text.
const longTextThreshold = 4000

type orderedField struct {
	order float64
	field schema.Field
}

func convertDefinition(id int64, name string, src *openapi3.Schema) (schema.Definition, error) {
	required := make(map[string]struct{}, len(src.Required))
	for _, property := range src.Required {
		required[property] = struct{}{}
	}

	ordered := make([]orderedField, 0, len(src.Properties))
	for propertyName, ref := range src.Properties {
		if ref == nil || ref.Value == nil {
			continue
		}
		kind, ok := dataKindOf(ref.Value)
		if !ok {
			continue
		}
		_, isRequired := required[propertyName]
		field, err := convertField(propertyName, kind, isRequired, ref.Value)
		if err != nil {
			return schema.Definition{}, &schema.InvalidSchemaDefinitionError{ID: id, Err: fmt.Errorf("%s.%s: %w", name, propertyName, err)}
		}
		order, _ := numberExtension(ref.Value.Extensions, extOrder)
		ordered = append(ordered, orderedField{order: order, field: field})
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].order != ordered[j].order {
			return ordered[i].order < ordered[j].order
		}
		return ordered[i].field.Name < ordered[j].field.Name
	})

	def := schema.Definition{ID: id, Name: name, Fields: make([]schema.Field, 0, len(ordered))}
	for _, entry := range ordered {
		def.Fields = append(def.Fields, entry.field)
	}
	return def, nil
}

func convertField(name string, kind schema.DataKind, required bool, src *openapi3.Schema) (schema.Field, error) {
	field := schema.Field{
		Name:       name,
		DataKind:   kind,
		Visible:    boolExtension(src.Extensions, extVisible, true),
		Public:     boolExtension(src.Extensions, extPublic, true),
		System:     boolExtension(src.Extensions, extSystem, false),
		PrimaryKey: boolExtension(src.Extensions, extPrimaryKey, false),
		AllowEmpty: !required || src.Nullable,
		Caption:    firstNonEmpty(stringExtension(src.Extensions, extCaption), src.Title, name),
		Pattern:    src.Pattern,
	}
	if src.MaxLength != nil {
		field.Size = int(*src.MaxLength)
	}
	if src.Min != nil {
		field.MinValue = formatNumber(*src.Min)
	}
	if src.Max != nil {
		field.MaxValue = formatNumber(*src.Max)
	}
	if v := stringExtension(src.Extensions, extMinValue); v != "" {
		field.MinValue = v
	}
	if v := stringExtension(src.Extensions, extMaxValue); v != "" {
		field.MaxValue = v
	}

	settings, err := settingsExtension(src.Extensions)
	if err != nil {
		return schema.Field{}, err
	}
	if kind == schema.DataKindDateTime {
		if _, ok := settings[typemap.SettingEditTime]; !ok {
			settings[typemap.SettingEditTime] = "true"
		}
	}
	if len(settings) > 0 {
		field.Settings = settings
	}

	field.Control = strings.ToLower(firstNonEmpty(stringExtension(src.Extensions, extControl), defaultControl(kind, src.Format)))
	return field, nil
}

// dataKindOf maps a JSON schema type and format. Objects and arrays have no
// scalar property representation and are skipped.
func dataKindOf(src *openapi3.Schema) (schema.DataKind, bool) {
	switch {
	case src.Type.Is(openapi3.TypeString):
		switch src.Format {
		case "date":
			return schema.DataKindDate, true
		case "date-time":
			return schema.DataKindDateTime, true
		case "uuid":
			return schema.DataKindGUID, true
		case "binary", "byte":
			return schema.DataKindFile, true
		case "duration":
			return schema.DataKindTimeSpan, true
		}
		if src.MaxLength != nil && *src.MaxLength > longTextThreshold {
			return schema.DataKindLongText, true
		}
		return schema.DataKindText, true
	case src.Type.Is(openapi3.TypeInteger):
		if src.Format == "int64" {
			return schema.DataKindLongInteger, true
		}
		return schema.DataKindInteger, true
	case src.Type.Is(openapi3.TypeNumber):
		if src.Format == "decimal" {
			return schema.DataKindDecimal, true
		}
		return schema.DataKindDouble, true
	case src.Type.Is(openapi3.TypeBoolean):
		return schema.DataKindBoolean, true
	default:
		return "", false
	}
}

func defaultControl(kind schema.DataKind, format string) string {
	switch kind {
	case schema.DataKindText:
		switch format {
		case "email":
			return "emailinput"
		case "password":
			return "encryptedpassword"
		case "html":
			return "htmlareacontrol"
		}
		return "textboxcontrol"
	case schema.DataKindLongText:
		return "textareacontrol"
	case schema.DataKindInteger:
		return "integernumbertextbox"
	case schema.DataKindLongInteger:
		return "longnumbertextbox"
	case schema.DataKindDouble, schema.DataKindDecimal:
		return "decimalnumbertextbox"
	case schema.DataKindDate, schema.DataKindDateTime:
		return "calendarcontrol"
	case schema.DataKindBoolean:
		return "checkboxcontrol"
	case schema.DataKindFile:
		return "uploadcontrol"
	case schema.DataKindTimeSpan:
		return "timeintervalselector"
	case schema.DataKindGUID:
		return "textboxcontrol"
	default:
		return ""
	}
}

func isObject(src *openapi3.Schema) bool {
	return src.Type.Is(openapi3.TypeObject) || (src.Type == nil && len(src.Properties) > 0)
}

func stringExtension(ext map[string]any, key string) string {
	value, ok := ext[key]
	if !ok || value == nil {
		return ""
	}
	if s, ok := value.(string); ok {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(fmt.Sprint(value))
}

func boolExtension(ext map[string]any, key string, fallback bool) bool {
	switch value := ext[key].(type) {
	case bool:
		return value
	case string:
		if parsed, err := strconv.ParseBool(strings.TrimSpace(value)); err == nil {
			return parsed
		}
	}
	return fallback
}

func numberExtension(ext map[string]any, key string) (float64, bool) {
	switch value := ext[key].(type) {
	case float64:
		return value, true
	case int:
		return float64(value), true
	case int64:
		return float64(value), true
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		return parsed, err == nil
	}
	return 0, false
}

func settingsExtension(ext map[string]any) (map[string]string, error) {
	out := make(map[string]string)
	raw, ok := ext[extSettings]
	if !ok || raw == nil {
		return out, nil
	}
	entries, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%s must be an object", extSettings)
	}
	for key, value := range entries {
		if value == nil {
			continue
		}
		out[key] = fmt.Sprint(value)
	}
	return out, nil
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
