package schema

import (
	"errors"
	"fmt"
)

// ErrNoSchemaSelected is returned when the schema identifier is not a
// positive number.
var ErrNoSchemaSelected = errors.New("schema: no schema selected")

// SchemaNotFoundError reports an identifier that does not resolve to a stored
// definition.
type SchemaNotFoundError struct {
	ID int64
}

func (e *SchemaNotFoundError) Error() string {
	return fmt.Sprintf("schema: schema %d not found", e.ID)
}

// InvalidSchemaDefinitionError reports a definition that cannot be decoded
// into a field set.
type InvalidSchemaDefinitionError struct {
	ID  int64
	Err error
}

func (e *InvalidSchemaDefinitionError) Error() string {
	if e.ID > 0 {
		return fmt.Sprintf("schema: invalid definition for schema %d: %v", e.ID, e.Err)
	}
	return fmt.Sprintf("schema: invalid definition: %v", e.Err)
}

func (e *InvalidSchemaDefinitionError) Unwrap() error {
	return e.Err
}

// MissingControlMetadataError reports a field without a control name.
type MissingControlMetadataError struct {
	Field string
}

func (e *MissingControlMetadataError) Error() string {
	return fmt.Sprintf("schema: field %q has no control name", e.Field)
}
