package mvcgen

import (
	"io/fs"

	"github.com/goliatone/go-mvcgen/pkg/generators/model"
	"github.com/goliatone/go-mvcgen/pkg/generators/view"
)

// ModelTemplates exposes the built-in model class templates so callers can
// copy or extend them without importing the generator package directly.
func ModelTemplates() fs.FS {
	return model.Templates()
}

// ViewTemplates exposes the built-in partial view templates.
func ViewTemplates() fs.FS {
	return view.Templates()
}
