package collect

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-docform/pkg/formdef"
	"github.com/goliatone/go-docform/pkg/submission"
)

const defaultMaxAttempts = 3

// Option customises the collector.
type Option func(*Collector)

// WithPromptDriver replaces the survey driver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(c *Collector) {
		if driver != nil {
			c.driver = driver
		}
	}
}

// WithConfirmation asks the user to confirm the collected values before
// returning them.
func WithConfirmation(enabled bool) Option {
	return func(c *Collector) {
		c.confirm = enabled
	}
}

// WithMaxAttempts bounds how often a rejected answer is asked again.
func WithMaxAttempts(n int) Option {
	return func(c *Collector) {
		if n > 0 {
			c.maxAttempts = n
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Collector) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Collector asks for every field of a form in order.
type Collector struct {
	driver      PromptDriver
	confirm     bool
	maxAttempts int
	logger      *zap.Logger
}

// New constructs a Collector using the survey driver on stdout.
func New(options ...Option) *Collector {
	c := &Collector{
		maxAttempts: defaultMaxAttempts,
		logger:      zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	if c.driver == nil {
		c.driver = NewSurveyDriver(nil)
	}
	return c
}

// Collect prompts for each field of form. Values in seed become the prompt
// defaults. A required field left empty, or a value rejected by the form, is
// asked again up to the attempt limit; after that the check error is returned.
func (c *Collector) Collect(ctx context.Context, form formdef.Form, seed submission.Submission) (submission.Submission, error) {
	if ctx == nil {
		return submission.Submission{}, errors.New("collect: context is required")
	}

	values := seed.Map()
	for _, field := range form.Fields {
		value, err := c.promptField(ctx, field, seed.Value(field.Name))
		if err != nil {
			return submission.Submission{}, err
		}
		if value == "" {
			delete(values, field.Name)
			continue
		}
		values[field.Name] = value
	}

	sub := submission.New(values)
	if err := form.Check(sub); err != nil {
		return submission.Submission{}, err
	}

	if c.confirm {
		if err := c.driver.Info(ctx, summary(form, sub)); err != nil {
			return submission.Submission{}, err
		}
		ok, err := c.driver.Confirm(ctx, ConfirmConfig{Message: "确认以上信息并生成文档？", Default: true})
		if err != nil {
			return submission.Submission{}, err
		}
		if !ok {
			return submission.Submission{}, ErrDeclined
		}
	}

	c.logger.Debug("submission collected", zap.Int("fields", sub.Len()))
	return sub, nil
}

func (c *Collector) promptField(ctx context.Context, field formdef.Field, def string) (string, error) {
	message := field.Label
	if message == "" {
		message = submission.Label(field.Name)
	}
	if field.Required {
		message += " *"
	}
	help := field.Help
	if help == "" && field.Placeholder != "" {
		help = "例如：" + field.Placeholder
	}

	single := formdef.Form{Fields: []formdef.Field{field}}
	if field.Required {
		single.Required = []string{field.Name}
	}

	var lastErr error
	for attempt := 0; attempt < c.maxAttempts; attempt++ {
		var (
			response string
			err      error
		)
		if field.Widget == formdef.WidgetTextArea {
			response, err = c.driver.TextArea(ctx, TextAreaConfig{Message: message, Default: def, Help: help})
		} else {
			response, err = c.driver.Input(ctx, InputConfig{Message: message, Default: def, Help: help})
		}
		if err != nil {
			return "", err
		}
		response = strings.TrimSpace(response)

		lastErr = single.Check(submission.New(map[string]string{field.Name: response}))
		if lastErr == nil {
			return response, nil
		}
		for _, messages := range submission.FieldErrors(lastErr) {
			for _, msg := range messages {
				if err := c.driver.Info(ctx, msg); err != nil {
					return "", err
				}
			}
		}
		c.logger.Debug("answer rejected", zap.String("field", field.Name), zap.Int("attempt", attempt+1))
	}
	return "", fmt.Errorf("collect: field %q: %w", field.Name, lastErr)
}

func summary(form formdef.Form, sub submission.Submission) string {
	var b strings.Builder
	for _, field := range form.Fields {
		value, ok := sub.Get(field.Name)
		if !ok {
			continue
		}
		b.WriteString(form.Label(field.Name))
		b.WriteString("：")
		b.WriteString(value)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
