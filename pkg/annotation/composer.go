package annotation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cockroachdb/apd/v3"

	"github.com/goliatone/go-mvcgen/pkg/macro"
	"github.com/goliatone/go-mvcgen/pkg/schema"
	"github.com/goliatone/go-mvcgen/pkg/typemap"
)

// InvalidRangeValueError reports a decimal bound that is not a finite number
// within the range of System.Decimal.
type InvalidRangeValueError struct {
	Field string
	Value string
	Err   error
}

func (e *InvalidRangeValueError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("annotation: field %q: invalid range value %q: %v", e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("annotation: field %q: invalid range value %q", e.Field, e.Value)
}

func (e *InvalidRangeValueError) Unwrap() error {
	return e.Err
}

// Composer builds the annotation list for a field. It is stateless apart from
// the caption resolver and safe to reuse across fields of one run.
type Composer struct {
	captions macro.Resolver
}

// NewComposer returns a Composer resolving captions through captions. A nil
// resolver leaves captions untouched.
func NewComposer(captions macro.Resolver) *Composer {
	if captions == nil {
		captions = macro.Identity
	}
	return &Composer{captions: captions}
}

// Compose returns the attributes for field in their fixed order: visibility,
// data type, empty string conversion, range, pattern, required, length.
func (c *Composer) Compose(field schema.Field, propertyName string) ([]Annotation, error) {
	host, err := typemap.HostTypeOf(field.DataKind)
	if err != nil {
		return nil, fmt.Errorf("annotation: property %s: %w", propertyName, err)
	}

	var out []Annotation

	if field.Hidden() {
		out = append(out, Annotation{Kind: KindHidden})
	} else {
		out = append(out, Annotation{Kind: KindDisplay, Args: []string{c.captions.Resolve(field.Caption)}})
	}

	if tag, ok := typemap.FieldTag(field); ok {
		out = append(out, Annotation{Kind: KindDataType, Args: []string{string(tag)}})
	}

	if host == typemap.HostString {
		out = append(out, Annotation{Kind: KindDisplayFormat})
	}

	if typemap.IsRangeable(field.DataKind) && field.HasRange() {
		rng, err := rangeAnnotation(field, host)
		if err != nil {
			return nil, err
		}
		out = append(out, rng)
	}

	if pattern := field.Pattern; pattern != "" {
		out = append(out, Annotation{Kind: KindPattern, Args: []string{pattern}})
	}

	if !field.AllowEmpty {
		out = append(out, Annotation{Kind: KindRequired})
	}

	if host == typemap.HostString {
		out = append(out, Annotation{Kind: KindLength, Args: []string{strconv.Itoa(field.Size)}})
	}

	return out, nil
}

// rangeAnnotation infers a missing bound from the host type limits. Decimal
// bounds render as numeric literals with the m suffix; every other type
// renders its bounds as quoted strings.
func rangeAnnotation(field schema.Field, host typemap.HostType) (Annotation, error) {
	minValue := strings.TrimSpace(field.MinValue)
	maxValue := strings.TrimSpace(field.MaxValue)
	typeMin, typeMax, _ := typemap.Bounds(host)

	var (
		lower, upper string
		err          error
	)
	switch {
	case minValue != "" && maxValue == "":
		if lower, err = formatValue(field, host, minValue); err != nil {
			return Annotation{}, err
		}
		upper = formatBound(host, typeMax)
	case minValue == "" && maxValue != "":
		lower = formatBound(host, typeMin)
		if upper, err = formatValue(field, host, maxValue); err != nil {
			return Annotation{}, err
		}
	default:
		if lower, err = formatValue(field, host, minValue); err != nil {
			return Annotation{}, err
		}
		if upper, err = formatValue(field, host, maxValue); err != nil {
			return Annotation{}, err
		}
	}
	return Annotation{Kind: KindRange, Args: []string{string(host), lower, upper}}, nil
}

var decimalLimit = apd.New(0, 0)

func init() {
	_, max, _ := typemap.Bounds(typemap.HostDecimal)
	if _, _, err := decimalLimit.SetString(max); err != nil {
		panic(err)
	}
}

func formatValue(field schema.Field, host typemap.HostType, raw string) (string, error) {
	if host != typemap.HostDecimal {
		return quote(raw), nil
	}
	value, _, err := apd.NewFromString(raw)
	if err != nil {
		return "", &InvalidRangeValueError{Field: field.Name, Value: raw, Err: err}
	}
	if value.Form != apd.Finite {
		return "", &InvalidRangeValueError{Field: field.Name, Value: raw}
	}
	var abs apd.Decimal
	abs.Abs(value)
	if abs.Cmp(decimalLimit) > 0 {
		return "", &InvalidRangeValueError{Field: field.Name, Value: raw}
	}
	return value.Text('f') + "m", nil
}

func formatBound(host typemap.HostType, bound string) string {
	if host == typemap.HostDecimal {
		return bound + "m"
	}
	return quote(bound)
}

func quote(s string) string {
	return `"` + s + `"`
}
