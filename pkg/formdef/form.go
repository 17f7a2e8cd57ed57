package formdef

import (
	"errors"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-docform/pkg/submission"
)

// Widget selects how a field is presented.
type Widget string

const (
	WidgetText     Widget = "text"
	WidgetTextArea Widget = "textarea"
	WidgetDate     Widget = "date"
)

// Field is one input of the form.
type Field struct {
	Name        string `json:"name"`
	Label       string `json:"label"`
	Help        string `json:"help,omitempty"`
	Placeholder string `json:"placeholder,omitempty"`
	Widget      Widget `json:"widget"`
	Required    bool   `json:"required"`
	Pattern     string `json:"pattern,omitempty"`
	MaxLength   int    `json:"maxLength,omitempty"`
	// Message replaces the validator reason when Pattern does not match.
	Message string `json:"message,omitempty"`
}

// Form is the parsed definition of one operation.
type Form struct {
	OperationID string   `json:"operationId"`
	Method      string   `json:"method"`
	Path        string   `json:"path"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Fields      []Field  `json:"fields"`
	Required    []string `json:"required"`
}

// Field returns the field named name.
func (f Form) Field(name string) (Field, bool) {
	for _, field := range f.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// Names lists the field names in display order.
func (f Form) Names() []string {
	names := make([]string, 0, len(f.Fields))
	for _, field := range f.Fields {
		names = append(names, field.Name)
	}
	return names
}

// Label returns the display label of a field, falling back to the built-in
// label table.
func (f Form) Label(name string) string {
	if field, ok := f.Field(name); ok && field.Label != "" {
		return field.Label
	}
	return submission.Label(name)
}

// Check verifies sub against the form. Presence is checked first and reported
// as *submission.MissingFieldsError; values that break a field's pattern or
// length are reported together as *submission.InvalidFieldsError.
func (f Form) Check(sub submission.Submission) error {
	if err := sub.Require(f.Required); err != nil {
		return err
	}

	values := make(map[string]any, len(f.Fields))
	for _, field := range f.Fields {
		if value, ok := sub.Get(field.Name); ok {
			values[field.Name] = value
		}
	}

	err := f.schema().VisitJSON(values, openapi3.MultiErrors())
	if err == nil {
		return nil
	}

	invalid := make(map[string]string)
	for _, schemaErr := range schemaErrors(err) {
		pointer := schemaErr.JSONPointer()
		if len(pointer) == 0 {
			continue
		}
		name := pointer[0]
		if _, seen := invalid[name]; seen {
			continue
		}
		message := strings.TrimSpace(schemaErr.Reason)
		if field, ok := f.Field(name); ok && field.Message != "" {
			message = field.Message
		}
		invalid[name] = message
	}
	if len(invalid) == 0 {
		return err
	}
	return &submission.InvalidFieldsError{Fields: invalid}
}

// schema rebuilds the value constraints as a kin-openapi schema. Required
// fields are left out because presence is checked separately.
func (f Form) schema() *openapi3.Schema {
	schema := openapi3.NewObjectSchema()
	for _, field := range f.Fields {
		property := openapi3.NewStringSchema()
		if field.Pattern != "" {
			property = property.WithPattern(field.Pattern)
		}
		if field.MaxLength > 0 {
			property = property.WithMaxLength(int64(field.MaxLength))
		}
		schema = schema.WithProperty(field.Name, property)
	}
	return schema
}

func schemaErrors(err error) []*openapi3.SchemaError {
	var multi openapi3.MultiError
	if errors.As(err, &multi) {
		var out []*openapi3.SchemaError
		for _, item := range multi {
			out = append(out, schemaErrors(item)...)
		}
		return out
	}
	var schemaErr *openapi3.SchemaError
	if errors.As(err, &schemaErr) {
		return []*openapi3.SchemaError{schemaErr}
	}
	return nil
}
