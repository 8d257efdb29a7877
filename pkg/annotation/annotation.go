// Package annotation composes the DataAnnotations attributes attached to each
// generated model property. Composition is purely additive: every rule that
// applies appends one attribute, in a fixed order.
package annotation

import (
	"strings"
)

// Kind identifies an attribute.
type Kind string

const (
	KindHidden        Kind = "hidden"
	KindDisplay       Kind = "display"
	KindDataType      Kind = "datatype"
	KindDisplayFormat Kind = "displayformat"
	KindRange         Kind = "range"
	KindPattern       Kind = "pattern"
	KindRequired      Kind = "required"
	KindLength        Kind = "length"
)

// Annotation is one attribute. Args carry the kind specific values: the
// caption for display, the tag for datatype, [type, min, max] literals for
// range, the raw expression for pattern and the size for length.
type Annotation struct {
	Kind Kind     `json:"kind"`
	Args []string `json:"args,omitempty"`
}

func (a Annotation) arg(i int) string {
	if i < len(a.Args) {
		return a.Args[i]
	}
	return ""
}

// String renders the attribute as C# source.
func (a Annotation) String() string {
	switch a.Kind {
	case KindHidden:
		return "[HiddenInput]"
	case KindDisplay:
		return `[Display(Name = "` + escapeString(a.arg(0)) + `")]`
	case KindDataType:
		return "[DataType(" + a.arg(0) + ")]"
	case KindDisplayFormat:
		return "[DisplayFormat(ConvertEmptyStringToNull = true)]"
	case KindRange:
		return "[Range(typeof(" + a.arg(0) + "), " + a.arg(1) + ", " + a.arg(2) + ")]"
	case KindPattern:
		return `[RegularExpression(@"` + strings.ReplaceAll(a.arg(0), `"`, `""`) + `")]`
	case KindRequired:
		return "[Required]"
	case KindLength:
		return "[StringLength(" + a.arg(0) + ")]"
	default:
		return ""
	}
}

// Render renders every annotation.
func Render(annotations []Annotation) []string {
	out := make([]string, 0, len(annotations))
	for _, a := range annotations {
		if line := a.String(); line != "" {
			out = append(out, line)
		}
	}
	return out
}

var stringEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\r", `\r`,
	"\n", `\n`,
	"\t", `\t`,
)

func escapeString(s string) string {
	return stringEscaper.Replace(s)
}
