// Package docform generates the training report Word document from a filled
// in form. The root package wires the form loader and parser and offers
// one-call helpers; the building blocks live under pkg/.
package docform

import (
	"context"

	"github.com/goliatone/go-docform/pkg/composer"
	"github.com/goliatone/go-docform/pkg/formdef"
	"github.com/goliatone/go-docform/pkg/submission"
)

// Result aliases composer.Result for callers that only use the root package.
type Result = composer.Result

// DefaultForm returns the embedded training report form.
func DefaultForm(ctx context.Context) (formdef.Form, error) {
	return LoadForm(ctx, formdef.SourceFromFS(formdef.DefaultDocument), formdef.DefaultOperationID)
}

// Generate composes the report for values using a composer built from opts.
func Generate(ctx context.Context, values map[string]string, opts ...composer.Option) (Result, error) {
	return composer.New(opts...).Compose(ctx, submission.New(values))
}

// GenerateChecked checks values against form before composing, so the shape
// rules declared on the form, such as the date pattern, are enforced as well.
func GenerateChecked(ctx context.Context, form formdef.Form, values map[string]string, opts ...composer.Option) (Result, error) {
	sub := submission.New(values)
	if err := form.Check(sub); err != nil {
		return Result{}, err
	}
	opts = append([]composer.Option{composer.WithRequired(form.Required...)}, opts...)
	return composer.New(opts...).Compose(ctx, sub)
}
