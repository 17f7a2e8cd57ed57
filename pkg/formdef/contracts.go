package formdef

import (
	"context"
	"io/fs"
)

// Loader fetches form definitions from files or an fs.FS. The implementation
// lives under internal/formdef; construct it with docform.NewLoader.
type Loader interface {
	Load(ctx context.Context, src Source) (Document, error)
}

// LoaderOptions configures how a Loader resolves sources.
type LoaderOptions struct {
	// FileSystem backs SourceKindFS sources. Nil disables them.
	FileSystem fs.FS
}

// LoaderOption mutates LoaderOptions prior to construction.
type LoaderOption func(*LoaderOptions)

// WithFileSystem injects an fs.FS for SourceFromFS locations.
func WithFileSystem(files fs.FS) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.FileSystem = files
	}
}

// NewLoaderOptions applies options and returns the resulting configuration.
func NewLoaderOptions(options ...LoaderOption) LoaderOptions {
	cfg := LoaderOptions{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return cfg
}

// Parser turns a definition document into the form of one operation.
type Parser interface {
	Operations(ctx context.Context, doc Document) ([]string, error)
	Form(ctx context.Context, doc Document, operationID string) (Form, error)
	// Lint reports form extensions and request bodies that Form would ignore
	// or reject, across every operation in doc.
	Lint(ctx context.Context, doc Document) ([]Violation, error)
}

// ParserOptions toggles parser behaviour.
type ParserOptions struct {
	// ValidateDocument runs the OpenAPI document validation before extracting
	// forms. Defaults to true.
	ValidateDocument bool
}

// ParserOption mutates ParserOptions during construction.
type ParserOption func(*ParserOptions)

// WithDocumentValidation toggles document validation.
func WithDocumentValidation(enabled bool) ParserOption {
	return func(opts *ParserOptions) {
		opts.ValidateDocument = enabled
	}
}

// NewParserOptions applies options over the defaults.
func NewParserOptions(options ...ParserOption) ParserOptions {
	cfg := ParserOptions{ValidateDocument: true}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return cfg
}
