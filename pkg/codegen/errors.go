package codegen

import "fmt"

// Artifact names used in GenerationError.
const (
	ArtifactModel = "model"
	ArtifactView  = "view"
)

// GenerationError reports a failure while producing an artifact. Generation is
// all-or-nothing, so no partial output accompanies this error.
type GenerationError struct {
	Artifact string
	Field    string
	Err      error
}

func (e *GenerationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("codegen: generate %s: field %q: %v", e.Artifact, e.Field, e.Err)
	}
	return fmt.Sprintf("codegen: generate %s: %v", e.Artifact, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}
