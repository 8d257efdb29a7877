// Package typemap maps CMS data kinds and form controls onto C# host types and
// DataAnnotations data-type hints. Every mapping is a static table so the
// supported surface stays finite and testable.
package typemap

import (
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-mvcgen/pkg/schema"
)

// HostType is the C# type emitted for a property.
type HostType string

const (
	HostString   HostType = "string"
	HostInt      HostType = "int"
	HostLong     HostType = "long"
	HostDouble   HostType = "double"
	HostDecimal  HostType = "decimal"
	HostBool     HostType = "bool"
	HostDateTime HostType = "DateTime"
	HostTimeSpan HostType = "TimeSpan"
	HostGUID     HostType = "Guid"
)

// UnsupportedDataKindError reports a data kind outside the mapping table.
type UnsupportedDataKindError struct {
	Kind schema.DataKind
}

func (e *UnsupportedDataKindError) Error() string {
	return fmt.Sprintf("typemap: data kind %q is not supported", string(e.Kind))
}

var hostTypes = map[schema.DataKind]HostType{
	schema.DataKindText:           HostString,
	schema.DataKindLongText:       HostString,
	schema.DataKindDocAttachments: HostString,
	schema.DataKindInteger:        HostInt,
	schema.DataKindLongInteger:    HostLong,
	schema.DataKindDouble:         HostDouble,
	schema.DataKindDate:           HostDateTime,
	schema.DataKindDateTime:       HostDateTime,
	schema.DataKindBoolean:        HostBool,
	schema.DataKindFile:           HostGUID,
	schema.DataKindGUID:           HostGUID,
	schema.DataKindDecimal:        HostDecimal,
	schema.DataKindTimeSpan:       HostTimeSpan,
}

// HostTypeOf returns the C# type for kind.
func HostTypeOf(kind schema.DataKind) (HostType, error) {
	host, ok := hostTypes[schema.ParseDataKind(string(kind))]
	if !ok {
		return "", &UnsupportedDataKindError{Kind: kind}
	}
	return host, nil
}

var rangeable = map[schema.DataKind]struct{}{
	schema.DataKindDate:     {},
	schema.DataKindDateTime: {},
	schema.DataKindDecimal:  {},
	schema.DataKindDouble:   {},
	schema.DataKindInteger:  {},
	schema.DataKindTimeSpan: {},
}

// IsRangeable reports whether kind supports minimum/maximum constraints.
func IsRangeable(kind schema.DataKind) bool {
	_, ok := rangeable[schema.ParseDataKind(string(kind))]
	return ok
}

var bounds = map[HostType][2]string{
	HostInt:      {"-2147483648", "2147483647"},
	HostLong:     {"-9223372036854775808", "9223372036854775807"},
	HostDouble:   {"-1.7976931348623157E+308", "1.7976931348623157E+308"},
	HostDecimal:  {"-79228162514264337593543950335", "79228162514264337593543950335"},
	HostDateTime: {"0001-01-01T00:00:00", "9999-12-31T23:59:59.9999999"},
	HostTimeSpan: {"-10675199.02:48:05.4775808", "10675199.02:48:05.4775807"},
}

// Bounds returns the textual minimum and maximum values representable by
// host. The second result is false for types without an ordering.
func Bounds(host HostType) (min, max string, ok bool) {
	pair, ok := bounds[host]
	if !ok {
		return "", "", false
	}
	return pair[0], pair[1], true
}

var supportedControls = map[string]struct{}{
	"calendarcontrol":      {},
	"decimalnumbertextbox": {},
	"emailinput":           {},
	"encryptedpassword":    {},
	"htmlareacontrol":      {},
	"integernumbertextbox": {},
	"longnumbertextbox":    {},
	"textareacontrol":      {},
	"textboxcontrol":       {},
}

// IsSupportedControl reports whether the generators emit fields rendered
// with control.
func IsSupportedControl(control string) bool {
	_, ok := supportedControls[strings.ToLower(strings.TrimSpace(control))]
	return ok
}

// SupportedControls returns the supported control names in sorted order.
func SupportedControls() []string {
	names := make([]string, 0, len(supportedControls))
	for name := range supportedControls {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
