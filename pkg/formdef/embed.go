package formdef

import (
	"embed"
	"io/fs"
)

const (
	// DefaultDocument is the embedded definition of the training report form.
	DefaultDocument = "training-report.yaml"
	// DefaultOperationID selects the report form inside DefaultDocument.
	DefaultOperationID = "createTrainingReport"
)

//go:embed forms/*.yaml
var embeddedForms embed.FS

// EmbeddedFS exposes the built-in form definitions rooted at their directory.
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(embeddedForms, "forms")
	if err != nil {
		return embeddedForms
	}
	return sub
}
