package docform

import (
	"io/fs"

	"github.com/goliatone/go-docform/pkg/formdef"
	"github.com/goliatone/go-docform/pkg/formpage"
)

// EmbeddedTemplates exposes the built-in page templates so callers can reuse
// or extend them without importing the formpage package directly.
func EmbeddedTemplates() fs.FS {
	return formpage.TemplatesFS()
}

// EmbeddedForms exposes the built-in form definitions.
func EmbeddedForms() fs.FS {
	return formdef.EmbeddedFS()
}
