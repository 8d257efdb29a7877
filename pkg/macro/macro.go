// Package macro resolves CMS caption macros. Captions may embed localization
// macros ({$resource.key$} or in-place {$=Default|cs-cz=Výchozí$}) and data
// macros ({% Name %}). Resolution never fails: unknown resource keys render
// as the key, unknown data macros render empty.
package macro

import (
	"html"
	"regexp"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// Resolver expands macros in caption text.
type Resolver interface {
	Resolve(text string) string
}

// Func adapts a function to the Resolver interface.
type Func func(text string) string

// Resolve calls f(text).
func (f Func) Resolve(text string) string {
	return f(text)
}

// Identity returns captions unchanged.
var Identity Resolver = Func(func(text string) string { return text })

var (
	localizationMacro = regexp.MustCompile(`\{\$(.+?)\$\}`)
	dataMacro         = regexp.MustCompile(`\{%(.+?)%\}`)
)

// DefaultCulture is used when no culture is configured.
const DefaultCulture = "en-us"

// Option configures a Dictionary.
type Option func(*Dictionary)

// WithCulture selects the culture used for resource lookups.
func WithCulture(culture string) Option {
	return func(d *Dictionary) {
		if trimmed := normalizeCulture(culture); trimmed != "" {
			d.culture = trimmed
		}
	}
}

// WithResources registers resource strings for a culture. Later calls merge
// into earlier ones.
func WithResources(culture string, entries map[string]string) Option {
	return func(d *Dictionary) {
		d.addResources(culture, entries)
	}
}

// WithResourceTable registers a culture-keyed resource table.
func WithResourceTable(table map[string]map[string]string) Option {
	return func(d *Dictionary) {
		for culture, entries := range table {
			d.addResources(culture, entries)
		}
	}
}

// WithValues seeds the values data macros resolve against.
func WithValues(values map[string]string) Option {
	return func(d *Dictionary) {
		for key, value := range values {
			d.values[strings.ToLower(strings.TrimSpace(key))] = value
		}
	}
}

// Dictionary resolves localization macros from in-memory resource tables and
// data macros from a flat value map.
type Dictionary struct {
	culture   string
	resources map[string]map[string]string
	values    map[string]string
}

// NewDictionary constructs a Dictionary applying options.
func NewDictionary(options ...Option) *Dictionary {
	d := &Dictionary{
		culture:   DefaultCulture,
		resources: make(map[string]map[string]string),
		values:    make(map[string]string),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(d)
	}
	return d
}

// Culture returns the culture used for lookups.
func (d *Dictionary) Culture() string {
	return d.culture
}

// Resolve expands every macro in text.
func (d *Dictionary) Resolve(text string) string {
	if !strings.Contains(text, "{") {
		return text
	}
	out := localizationMacro.ReplaceAllStringFunc(text, func(match string) string {
		return d.localize(strings.TrimSpace(match[2 : len(match)-2]))
	})
	return dataMacro.ReplaceAllStringFunc(out, func(match string) string {
		return d.value(strings.TrimSpace(match[2 : len(match)-2]))
	})
}

func (d *Dictionary) localize(expr string) string {
	if strings.HasPrefix(expr, "=") {
		return d.inPlace(expr[1:])
	}
	key := strings.ToLower(expr)
	if value, ok := d.lookup(d.culture, key); ok {
		return value
	}
	if d.culture != DefaultCulture {
		if value, ok := d.lookup(DefaultCulture, key); ok {
			return value
		}
	}
	return expr
}

// inPlace handles "Default|cs-cz=Localized|de-de=Lokalisiert".
func (d *Dictionary) inPlace(expr string) string {
	parts := strings.Split(expr, "|")
	fallback := parts[0]
	for _, part := range parts[1:] {
		culture, value, ok := strings.Cut(part, "=")
		if ok && normalizeCulture(culture) == d.culture {
			return value
		}
	}
	return fallback
}

func (d *Dictionary) value(expr string) string {
	// Drop macro parameters such as "|(identity)GlobalAdministrator".
	if idx := strings.Index(expr, "|"); idx >= 0 {
		expr = expr[:idx]
	}
	return d.values[strings.ToLower(strings.TrimSpace(expr))]
}

func (d *Dictionary) lookup(culture, key string) (string, bool) {
	entries, ok := d.resources[culture]
	if !ok {
		return "", false
	}
	value, ok := entries[key]
	return value, ok
}

func (d *Dictionary) addResources(culture string, entries map[string]string) {
	culture = normalizeCulture(culture)
	if culture == "" || len(entries) == 0 {
		return
	}
	target, ok := d.resources[culture]
	if !ok {
		target = make(map[string]string, len(entries))
		d.resources[culture] = target
	}
	for key, value := range entries {
		target[strings.ToLower(strings.TrimSpace(key))] = value
	}
}

func normalizeCulture(culture string) string {
	return strings.ToLower(strings.TrimSpace(culture))
}

var (
	captionPolicyOnce sync.Once
	captionPolicy     *bluemonday.Policy
)

// Sanitized wraps next so resolved captions are reduced to plain text. Rich
// text captions (bold, links, line breaks) would otherwise leak markup into
// display labels.
func Sanitized(next Resolver) Resolver {
	if next == nil {
		next = Identity
	}
	return Func(func(text string) string {
		return StripMarkup(next.Resolve(text))
	})
}

// StripMarkup removes HTML markup from text and unescapes entities.
func StripMarkup(text string) string {
	if !strings.ContainsAny(text, "<&") {
		return text
	}
	captionPolicyOnce.Do(func() {
		captionPolicy = bluemonday.StrictPolicy()
	})
	return strings.TrimSpace(html.UnescapeString(captionPolicy.Sanitize(text)))
}
