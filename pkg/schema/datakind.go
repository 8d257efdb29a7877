package schema

import "strings"

// DataKind is the logical storage type of a form field as declared by the CMS.
type DataKind string

const (
	DataKindText           DataKind = "text"
	DataKindLongText       DataKind = "longtext"
	DataKindInteger        DataKind = "integer"
	DataKindLongInteger    DataKind = "longinteger"
	DataKindDouble         DataKind = "double"
	DataKindDecimal        DataKind = "decimal"
	DataKindBoolean        DataKind = "boolean"
	DataKindDate           DataKind = "date"
	DataKindDateTime       DataKind = "datetime"
	DataKindTimeSpan       DataKind = "timespan"
	DataKindFile           DataKind = "file"
	DataKindGUID           DataKind = "guid"
	DataKindDocAttachments DataKind = "docattachments"
)

var dataKindAliases = map[string]DataKind{
	"string":    DataKindText,
	"shorttext": DataKindText,
	"int":       DataKindInteger,
	"int32":     DataKindInteger,
	"long":      DataKindLongInteger,
	"int64":     DataKindLongInteger,
	"bigint":    DataKindLongInteger,
	"float":     DataKindDouble,
	"bool":      DataKindBoolean,
	"uuid":      DataKindGUID,
	"uniqueid":  DataKindGUID,
	"duration":  DataKindTimeSpan,
	"date-time": DataKindDateTime,
	"binary":    DataKindFile,
}

// ParseDataKind normalises a declared column type. Matching is
// case-insensitive; unknown values are returned verbatim so the type mapper can
// reject them explicitly.
func ParseDataKind(raw string) DataKind {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	if alias, ok := dataKindAliases[trimmed]; ok {
		return alias
	}
	return DataKind(trimmed)
}

func (k DataKind) String() string {
	return string(k)
}
