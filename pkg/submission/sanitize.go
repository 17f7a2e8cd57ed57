package submission

import (
	"html"
	"regexp"
	"strings"
	"sync"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
)

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy

	markupPattern = regexp.MustCompile(`<[A-Za-z!/?][^<>]*>`)
)

// Sanitizer cleans a single field value.
type Sanitizer interface {
	Sanitize(string) string
}

// SanitizerFunc adapts a function to Sanitizer.
type SanitizerFunc func(string) string

// Sanitize calls fn.
func (fn SanitizerFunc) Sanitize(value string) string {
	return fn(value)
}

// StrictSanitizer strips HTML elements from values. Text without an element,
// such as "C<D" or "1 < 2", is returned unchanged. bluemonday escapes the text
// it keeps, so entities are decoded again: the document writer does its own
// XML escaping.
func StrictSanitizer() Sanitizer {
	return SanitizerFunc(func(value string) string {
		if !markupPattern.MatchString(value) {
			return value
		}
		cleaned := textSanitizer().Sanitize(value)
		return html.UnescapeString(cleaned)
	})
}

func textSanitizer() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return textPolicy
}

// Sanitize returns a copy of s with every value passed through sanitizer and
// stripped of control characters other than newlines and tabs. A nil
// sanitizer uses StrictSanitizer.
func (s Submission) Sanitize(sanitizer Sanitizer) Submission {
	if sanitizer == nil {
		sanitizer = StrictSanitizer()
	}
	out := make(map[string]string, len(s.values))
	for key, value := range s.values {
		out[key] = stripControl(sanitizer.Sanitize(value))
	}
	return New(out)
}

func stripControl(value string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, value)
}
