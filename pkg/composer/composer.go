package composer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/goliatone/go-docform/pkg/docx"
	"github.com/goliatone/go-docform/pkg/sections"
	"github.com/goliatone/go-docform/pkg/submission"
)

// Composer turns a submission into a complete .docx document. A Composer is
// immutable after New and safe for concurrent use.
type Composer struct {
	sections      []sections.Section
	required      []string
	context       sections.Context
	font          string
	sanitizer     submission.Sanitizer
	logger        *zap.Logger
	initialiseErr error
}

// New constructs a Composer emitting every section with the default layout
// settings.
func New(options ...Option) *Composer {
	c := &Composer{
		sections:  sections.Default(),
		required:  submission.DefaultRequiredFields(),
		context:   sections.DefaultContext(),
		font:      docx.DefaultFont,
		sanitizer: submission.StrictSanitizer(),
		logger:    zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	c.context = c.context.Normalize()
	return c
}

// Result is a composed document.
type Result struct {
	Filename    string
	ContentType string
	Data        []byte
}

// WriteTo writes the document bytes to w.
func (r Result) WriteTo(w io.Writer) (int64, error) {
	return bytes.NewReader(r.Data).WriteTo(w)
}

// Context reports the layout settings used for every section.
func (c *Composer) Context() sections.Context {
	return c.context
}

// Required reports the fields that must be present before composing.
func (c *Composer) Required() []string {
	return append([]string(nil), c.required...)
}

// Compose sanitises and validates sub, then renders the configured sections.
// Required fields left empty by sanitising count as missing. Missing fields
// are reported as *submission.MissingFieldsError and malformed dates as
// *submission.InvalidFieldsError; neither produces output.
func (c *Composer) Compose(ctx context.Context, sub submission.Submission) (Result, error) {
	if ctx == nil {
		return Result{}, errors.New("composer: context is required")
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if err := c.initialiseErr; err != nil {
		return Result{}, fmt.Errorf("composer: %w", err)
	}

	sub = sub.Sanitize(c.sanitizer)
	if err := sub.Require(c.required); err != nil {
		return Result{}, err
	}
	if err := sub.CheckDates(); err != nil {
		return Result{}, err
	}

	doc := docx.New(docx.WithDefaultFont(c.font))
	for i, section := range c.sections {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		if i > 0 {
			doc.AddPageBreak()
		}
		blocks := section.Build(sub, c.context)
		if err := emit(doc, blocks); err != nil {
			return Result{}, fmt.Errorf("composer: section %q: %w", section.Key, err)
		}
		c.logger.Debug("section composed",
			zap.String("section", section.Key),
			zap.Int("blocks", len(blocks)),
		)
	}

	data, err := doc.Bytes()
	if err != nil {
		return Result{}, fmt.Errorf("composer: write document: %w", err)
	}

	result := Result{
		Filename:    sub.Filename(c.context.ReportTitle()),
		ContentType: docx.ContentType,
		Data:        data,
	}
	c.logger.Debug("document composed",
		zap.String("filename", result.Filename),
		zap.Int("sections", len(c.sections)),
		zap.Int("bytes", len(data)),
	)
	return result, nil
}
