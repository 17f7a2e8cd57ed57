package parser

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-docform/pkg/formdef"
)

var allowedHints = map[string]func(any) string{
	"widget":  checkWidget,
	"order":   checkOrder,
	"message": checkMessage,
}

// Lint walks every operation of doc and reports unsupported or malformed
// x-formgen hints, missing form bodies and required names without a property.
func (p *Parser) Lint(ctx context.Context, doc formdef.Document) ([]formdef.Violation, error) {
	operations, err := p.operations(ctx, doc)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(operations))
	for id := range operations {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var out []formdef.Violation
	for _, id := range ids {
		op := operations[id].operation
		out = append(out, lintExtensions(id, "operation", op.Extensions)...)

		schema, err := requestSchema(op)
		if err != nil {
			out = append(out, formdef.Violation{Operation: id, Location: "requestBody", Message: err.Error()})
			continue
		}
		out = append(out, lintSchema(id, schema)...)
	}
	return out, nil
}

func lintSchema(operation string, schema *openapi3.Schema) []formdef.Violation {
	out := lintExtensions(operation, "requestBody", schema.Extensions)

	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		ref := schema.Properties[name]
		location := "properties." + name
		if ref == nil || ref.Value == nil {
			out = append(out, violation(operation, location, "property has no schema"))
			continue
		}
		if ref.Value.Type != nil && !ref.Value.Type.Is(openapi3.TypeString) {
			out = append(out, violation(operation, location, "form fields must be strings"))
		}
		out = append(out, lintExtensions(operation, location, ref.Value.Extensions)...)
	}

	for _, name := range schema.Required {
		if _, ok := schema.Properties[name]; !ok {
			out = append(out, violation(operation, "required", fmt.Sprintf("%q has no property", name)))
		}
	}
	return out
}

func lintExtensions(operation, location string, extensions map[string]any) []formdef.Violation {
	keys := make([]string, 0, len(extensions))
	for key := range extensions {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var out []formdef.Violation
	for _, key := range keys {
		value := extensions[key]
		switch {
		case key == extensionNamespace:
			nested, ok := value.(map[string]any)
			if !ok {
				out = append(out, violation(operation, location, fmt.Sprintf("%s must be an object, found %T", extensionNamespace, value)))
				continue
			}
			nestedKeys := make([]string, 0, len(nested))
			for nestedKey := range nested {
				nestedKeys = append(nestedKeys, nestedKey)
			}
			sort.Strings(nestedKeys)
			for _, nestedKey := range nestedKeys {
				out = append(out, lintHint(operation, location+"."+extensionNamespace, nestedKey, nested[nestedKey])...)
			}
		case strings.HasPrefix(key, extensionNamespace+"-"):
			out = append(out, lintHint(operation, location, strings.TrimPrefix(key, extensionNamespace+"-"), value)...)
		}
	}
	return out
}

func lintHint(operation, location, key string, value any) []formdef.Violation {
	check, ok := allowedHints[key]
	if !ok {
		return []formdef.Violation{violation(operation, location, fmt.Sprintf("unsupported hint %q", key))}
	}
	if msg := check(value); msg != "" {
		return []formdef.Violation{violation(operation, location, fmt.Sprintf("hint %q: %s", key, msg))}
	}
	return nil
}

func checkWidget(value any) string {
	s, ok := value.(string)
	if !ok {
		return fmt.Sprintf("expected string, found %T", value)
	}
	switch formdef.Widget(strings.ToLower(strings.TrimSpace(s))) {
	case formdef.WidgetText, formdef.WidgetTextArea, formdef.WidgetDate:
		return ""
	}
	return fmt.Sprintf("unknown widget %q", s)
}

func checkOrder(value any) string {
	if _, ok := number(value); !ok {
		return fmt.Sprintf("expected number, found %T", value)
	}
	return ""
}

func checkMessage(value any) string {
	s, ok := value.(string)
	if !ok {
		return fmt.Sprintf("expected string, found %T", value)
	}
	if strings.TrimSpace(s) == "" {
		return "message is empty"
	}
	return ""
}

func violation(operation, location, message string) formdef.Violation {
	return formdef.Violation{Operation: operation, Location: location, Message: message}
}
