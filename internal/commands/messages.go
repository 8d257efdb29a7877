package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-mvcgen/internal/prompt"
	"github.com/goliatone/go-mvcgen/pkg/annotation"
	"github.com/goliatone/go-mvcgen/pkg/codegen"
	"github.com/goliatone/go-mvcgen/pkg/identifier"
	"github.com/goliatone/go-mvcgen/pkg/output"
	"github.com/goliatone/go-mvcgen/pkg/schema"
	"github.com/goliatone/go-mvcgen/pkg/typemap"
)

// Message maps an error onto the message shown to the user. Unknown errors
// are returned verbatim.
func Message(err error) string {
	if err == nil {
		return ""
	}

	var (
		notFound    *schema.SchemaNotFoundError
		invalid     *schema.InvalidSchemaDefinitionError
		noControl   *schema.MissingControlMetadataError
		unsupported *typemap.UnsupportedDataKindError
		badName     *identifier.InvalidIdentifierError
		badRange    *annotation.InvalidRangeValueError
		generation  *codegen.GenerationError
		write       *output.WriteError
	)

	switch {
	case errors.Is(err, prompt.ErrAborted), errors.Is(err, context.Canceled):
		return "Aborted."
	case errors.Is(err, schema.ErrNoSchemaSelected):
		return "No form schema is selected."
	case errors.As(err, &notFound):
		return fmt.Sprintf("Form schema %d was not found.", notFound.ID)
	case errors.As(err, &invalid):
		return withDetails(fmt.Sprintf("The definition of form schema %d is invalid.", invalid.ID), invalid.Err)
	case errors.As(err, &write):
		return withDetails("The files could not be saved.", write.Err)
	}

	// Field level causes are reported before the artifact wrapper so the user
	// sees which field broke generation.
	switch {
	case errors.As(err, &noControl):
		return fmt.Sprintf("Field %q has no form control assigned.", noControl.Field)
	case errors.As(err, &unsupported):
		return fmt.Sprintf("The data type %q is not supported.", unsupported.Kind)
	case errors.As(err, &badName):
		return fmt.Sprintf("%q is not a valid identifier.", badName.Raw)
	case errors.As(err, &badRange):
		return fmt.Sprintf("Field %q has an invalid range value %q.", badRange.Field, badRange.Value)
	case errors.As(err, &generation):
		return withDetails(fmt.Sprintf("The %s code could not be generated.", generation.Artifact), generation.Err)
	}
	return err.Error()
}

func withDetails(message string, cause error) string {
	if cause == nil {
		return message
	}
	return message + " Details: " + cause.Error()
}
