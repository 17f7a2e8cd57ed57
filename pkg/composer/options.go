package composer

import (
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-docform/pkg/sections"
	"github.com/goliatone/go-docform/pkg/submission"
)

// Option customises the composer configuration.
type Option func(*Composer)

// WithSections limits the document to the named sections. Sections are always
// emitted in document order. Unknown keys surface from Compose.
func WithSections(keys ...string) Option {
	return func(c *Composer) {
		if len(keys) == 0 {
			return
		}
		selected, err := sections.Select(keys...)
		if err != nil {
			c.initialiseErr = err
			return
		}
		c.sections = selected
	}
}

// WithRequired replaces the required field list checked before composing.
// Passing no fields disables the check.
func WithRequired(fields ...string) Option {
	return func(c *Composer) {
		c.required = append([]string(nil), fields...)
	}
}

// WithInstitution overrides the institution printed on the cover and in the
// form titles.
func WithInstitution(name string) Option {
	return func(c *Composer) {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			c.context.Institution = trimmed
		}
	}
}

// WithProgram overrides the training programme name the section titles and
// the report title are derived from.
func WithProgram(name string) Option {
	return func(c *Composer) {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			c.context.Program = trimmed
		}
	}
}

// WithFont sets the document font.
func WithFont(name string) Option {
	return func(c *Composer) {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			c.font = trimmed
		}
	}
}

// WithGuidanceRows sets the number of dated rows in the guidance log.
func WithGuidanceRows(rows int) Option {
	return func(c *Composer) {
		if rows > 0 {
			c.context.GuidanceRows = rows
		}
	}
}

// WithGuidanceInterval sets the number of days between guidance log rows.
func WithGuidanceInterval(days int) Option {
	return func(c *Composer) {
		if days > 0 {
			c.context.GuidanceInterval = days
		}
	}
}

// WithSanitizer replaces the strict markup sanitizer applied to every value.
func WithSanitizer(sanitizer submission.Sanitizer) Option {
	return func(c *Composer) {
		if sanitizer != nil {
			c.sanitizer = sanitizer
		}
	}
}

// WithLogger attaches a logger. Section progress is logged at debug level.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Composer) {
		if logger != nil {
			c.logger = logger
		}
	}
}
