package parser

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-docform/pkg/formdef"
)

const (
	extensionNamespace = "x-formgen"
	widgetExtension    = extensionNamespace + "-widget"
	orderExtension     = extensionNamespace + "-order"
	messageExtension   = extensionNamespace + "-message"
)

type orderedField struct {
	field formdef.Field
	order float64
	set   bool
}

func convertFields(schema *openapi3.Schema) []formdef.Field {
	required := make(map[string]struct{}, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = struct{}{}
	}

	fields := make([]orderedField, 0, len(schema.Properties))
	for name, ref := range schema.Properties {
		if ref == nil || ref.Value == nil {
			continue
		}
		prop := ref.Value
		_, isRequired := required[name]

		field := formdef.Field{
			Name:        name,
			Label:       firstNonEmpty(prop.Title, name),
			Help:        strings.TrimSpace(prop.Description),
			Placeholder: exampleString(prop.Example),
			Widget:      widgetFor(prop),
			Required:    isRequired,
			Pattern:     prop.Pattern,
			Message:     extensionString(prop.Extensions, messageExtension),
		}
		if prop.MaxLength != nil {
			field.MaxLength = int(*prop.MaxLength)
		}

		order, ok := extensionNumber(prop.Extensions, orderExtension)
		fields = append(fields, orderedField{field: field, order: order, set: ok})
	}

	sort.SliceStable(fields, func(i, j int) bool {
		a, b := fields[i], fields[j]
		if a.set != b.set {
			return a.set
		}
		if a.order != b.order {
			return a.order < b.order
		}
		return a.field.Name < b.field.Name
	})

	out := make([]formdef.Field, 0, len(fields))
	for _, item := range fields {
		out = append(out, item.field)
	}
	return out
}

func widgetFor(prop *openapi3.Schema) formdef.Widget {
	switch strings.ToLower(extensionString(prop.Extensions, widgetExtension)) {
	case string(formdef.WidgetTextArea):
		return formdef.WidgetTextArea
	case string(formdef.WidgetDate):
		return formdef.WidgetDate
	}
	if prop.Format == "date" {
		return formdef.WidgetDate
	}
	return formdef.WidgetText
}

func extensionString(ext map[string]any, key string) string {
	if value, ok := ext[key].(string); ok {
		return strings.TrimSpace(value)
	}
	if nested, ok := ext[extensionNamespace].(map[string]any); ok {
		short := strings.TrimPrefix(key, extensionNamespace+"-")
		if value, ok := nested[short].(string); ok {
			return strings.TrimSpace(value)
		}
	}
	return ""
}

func extensionNumber(ext map[string]any, key string) (float64, bool) {
	raw, ok := ext[key]
	if !ok {
		nested, isMap := ext[extensionNamespace].(map[string]any)
		if !isMap {
			return 0, false
		}
		if raw, ok = nested[strings.TrimPrefix(key, extensionNamespace+"-")]; !ok {
			return 0, false
		}
	}
	return number(raw)
}

func number(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

func exampleString(example any) string {
	switch v := example.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return fmt.Sprintf("%g", v)
	default:
		return fmt.Sprint(v)
	}
}
