package loader

import (
	"context"
	"errors"
	"io/fs"

	"github.com/goliatone/go-docform/pkg/formdef"
)

// Loader implements formdef.Loader for file and fs.FS sources.
type Loader struct {
	fs fs.FS
}

var _ formdef.Loader = (*Loader)(nil)

// New constructs a Loader from pre-resolved options.
func New(options formdef.LoaderOptions) formdef.Loader {
	return &Loader{fs: options.FileSystem}
}

// Load reads the document behind src.
func (l *Loader) Load(ctx context.Context, src formdef.Source) (formdef.Document, error) {
	if src == nil {
		return formdef.Document{}, errors.New("formdef loader: source is nil")
	}

	var (
		data []byte
		err  error
	)
	switch src.Kind() {
	case formdef.SourceKindFile:
		data, err = loadFile(ctx, src.Location())
	case formdef.SourceKindFS:
		data, err = loadFromFS(ctx, l.fs, src.Location())
	default:
		err = errors.New("formdef loader: unsupported source kind")
	}
	if err != nil {
		return formdef.Document{}, err
	}

	return formdef.NewDocument(src, data)
}
