package submission

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrNestedValue is returned when a decoded payload carries objects or arrays
// where a flat string value is expected.
var ErrNestedValue = errors.New("submission: nested values are not supported")

// MissingFieldsError reports required fields that were left empty. It is the
// blocking error surfaced to the user before any document is composed.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return "submission: missing required fields: " + strings.Join(e.Fields, ", ")
}

// Message renders the user-facing message using field labels.
func (e *MissingFieldsError) Message() string {
	names := make([]string, 0, len(e.Fields))
	for _, key := range e.Fields {
		names = append(names, Label(key))
	}
	return "请填写以下必填项：" + strings.Join(names, "、")
}

// FieldMessages maps every missing field to a per-field message.
func (e *MissingFieldsError) FieldMessages() map[string][]string {
	out := make(map[string][]string, len(e.Fields))
	for _, key := range e.Fields {
		out[key] = []string{Label(key) + "为必填项"}
	}
	return out
}

// InvalidFieldsError reports fields whose values do not have the expected
// shape, keyed by field with a message per field.
type InvalidFieldsError struct {
	Fields map[string]string
}

func (e *InvalidFieldsError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for key := range e.Fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", key, e.Fields[key]))
	}
	return "submission: invalid fields: " + strings.Join(parts, "; ")
}

// FieldMessages maps every invalid field to its message.
func (e *InvalidFieldsError) FieldMessages() map[string][]string {
	out := make(map[string][]string, len(e.Fields))
	for key, message := range e.Fields {
		out[key] = []string{Label(key) + "：" + message}
	}
	return out
}

// FieldErrors extracts per-field messages from err when it is one of the
// submission error types. Other errors yield nil.
func FieldErrors(err error) map[string][]string {
	var missing *MissingFieldsError
	if errors.As(err, &missing) {
		return missing.FieldMessages()
	}
	var invalid *InvalidFieldsError
	if errors.As(err, &invalid) {
		return invalid.FieldMessages()
	}
	return nil
}

// UserMessage returns the message to show the user for err.
func UserMessage(err error) string {
	var missing *MissingFieldsError
	if errors.As(err, &missing) {
		return missing.Message()
	}
	var invalid *InvalidFieldsError
	if errors.As(err, &invalid) {
		return "请检查以下字段的格式"
	}
	if err == nil {
		return ""
	}
	return err.Error()
}

// MergeMessages concatenates and normalises message slices, trimming
// whitespace and removing duplicates while preserving order.
func MergeMessages(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))

	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}
