package docform

import (
	"context"
	"fmt"

	internalLoader "github.com/goliatone/go-docform/internal/formdef/loader"
	internalParser "github.com/goliatone/go-docform/internal/formdef/parser"
	"github.com/goliatone/go-docform/pkg/formdef"
)

// NewLoader returns a form definition loader. FS sources resolve against the
// embedded definitions unless options supply another file system.
func NewLoader(options ...formdef.LoaderOption) formdef.Loader {
	defaults := []formdef.LoaderOption{formdef.WithFileSystem(formdef.EmbeddedFS())}
	return internalLoader.New(formdef.NewLoaderOptions(append(defaults, options...)...))
}

// NewParser returns a parser that validates documents before reading forms
// out of them.
func NewParser(options ...formdef.ParserOption) formdef.Parser {
	return internalParser.New(formdef.NewParserOptions(options...))
}

// LoadForm loads src and parses the operation named operationID.
func LoadForm(ctx context.Context, src formdef.Source, operationID string, options ...formdef.LoaderOption) (formdef.Form, error) {
	doc, err := NewLoader(options...).Load(ctx, src)
	if err != nil {
		return formdef.Form{}, fmt.Errorf("docform: load form: %w", err)
	}
	form, err := NewParser().Form(ctx, doc, operationID)
	if err != nil {
		return formdef.Form{}, fmt.Errorf("docform: parse form: %w", err)
	}
	return form, nil
}

// LintForm loads src and reports the hints and declarations the parser would
// ignore or reject. An empty result means the definition is clean.
func LintForm(ctx context.Context, src formdef.Source, options ...formdef.LoaderOption) ([]formdef.Violation, error) {
	doc, err := NewLoader(options...).Load(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("docform: load form: %w", err)
	}
	violations, err := NewParser().Lint(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("docform: lint form: %w", err)
	}
	return violations, nil
}
