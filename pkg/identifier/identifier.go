// Package identifier turns human-entered or schema-derived names into valid,
// capitalized C# identifiers and keeps them unique within one generation run.
package identifier

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// InvalidIdentifierError reports a name that normalizes to an empty
// identifier.
type InvalidIdentifierError struct {
	Raw string
}

func (e *InvalidIdentifierError) Error() string {
	return fmt.Sprintf("identifier: %q does not contain any identifier characters", e.Raw)
}


// Normalize strips any dotted qualifier, removes characters that are not
// valid in an identifier and capitalizes the first rune. Names starting with a
// digit are prefixed with an underscore.
func Normalize(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if idx := strings.LastIndex(name, "."); idx >= 0 {
		name = name[idx+1:]
	}
	cleaned := strip(name)
	if cleaned == "" {
		return "", &InvalidIdentifierError{Raw: raw}
	}
	return Capitalize(cleaned), nil
}

// NormalizeQualified normalizes every dot separated segment of a qualified
// name (namespaces keep their qualifiers). Empty segments are dropped.
func NormalizeQualified(raw string) (string, error) {
	segments := strings.Split(strings.TrimSpace(raw), ".")
	out := make([]string, 0, len(segments))
	for _, segment := range segments {
		cleaned := strip(segment)
		if cleaned == "" {
			continue
		}
		out = append(out, Capitalize(cleaned))
	}
	if len(out) == 0 {
		return "", &InvalidIdentifierError{Raw: raw}
	}
	return strings.Join(out, "."), nil
}

// Capitalize upper-cases the first rune of s.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	first, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(first)) + s[size:]
}

func strip(name string) string {
	var sb strings.Builder
	for _, r := range name {
		if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(r)
		}
	}
	out := sb.String()
	if out == "" {
		return ""
	}
	if first, _ := utf8.DecodeRuneInString(out); unicode.IsDigit(first) {
		out = "_" + out
	}
	return out
}

// objectMembers are the members every generated class inherits.
var objectMembers = []string{
	"Equals", "Finalize", "GetHashCode", "GetType", "MemberwiseClone", "ReferenceEquals", "ToString",
}

// Resolver hands out unique identifiers for one generation run. Comparison is
// case-insensitive so generated members never differ by casing alone. A
// Resolver is not safe for concurrent use.
type Resolver struct {
	taken map[string]struct{}
}

// NewResolver returns a Resolver that never yields any of the reserved names
// or the members inherited from System.Object.
func NewResolver(reserved ...string) *Resolver {
	r := &Resolver{taken: make(map[string]struct{}, len(reserved)+len(objectMembers))}
	for _, name := range objectMembers {
		r.reserve(name)
	}
	for _, name := range reserved {
		if strings.TrimSpace(name) != "" {
			r.reserve(name)
		}
	}
	return r
}

// Resolve normalizes raw and appends the lowest numeric suffix (starting at 1)
// that makes the identifier unique.
func (r *Resolver) Resolve(raw string) (string, error) {
	base, err := Normalize(raw)
	if err != nil {
		return "", err
	}
	candidate := base
	for i := 1; r.isTaken(candidate); i++ {
		candidate = base + strconv.Itoa(i)
	}
	r.reserve(candidate)
	return candidate, nil
}

func (r *Resolver) isTaken(name string) bool {
	_, ok := r.taken[strings.ToLower(name)]
	return ok
}

func (r *Resolver) reserve(name string) {
	r.taken[strings.ToLower(name)] = struct{}{}
}

// ResolveUnique assigns an identifier to every name in order. The result is
// parallel to names, so a raw name listed twice receives two distinct
// identifiers. The same input always yields the same result.
func ResolveUnique(names []string, reserved ...string) ([]string, error) {
	resolver := NewResolver(reserved...)
	out := make([]string, len(names))
	for i, name := range names {
		resolved, err := resolver.Resolve(name)
		if err != nil {
			return nil, err
		}
		out[i] = resolved
	}
	return out, nil
}
