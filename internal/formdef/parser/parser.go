package parser

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-docform/pkg/formdef"
)

// Parser implements formdef.Parser using kin-openapi.
type Parser struct {
	options formdef.ParserOptions
}

var _ formdef.Parser = (*Parser)(nil)

// New constructs a Parser with the given options.
func New(options formdef.ParserOptions) formdef.Parser {
	return &Parser{options: options}
}

var mediaTypes = []string{"application/x-www-form-urlencoded", "multipart/form-data", "application/json"}

type located struct {
	method    string
	path      string
	operation *openapi3.Operation
}

// Operations lists the operation ids declared in doc, sorted.
func (p *Parser) Operations(ctx context.Context, doc formdef.Document) ([]string, error) {
	operations, err := p.operations(ctx, doc)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(operations))
	for id := range operations {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// Form extracts the form of operationID from its request body schema.
func (p *Parser) Form(ctx context.Context, doc formdef.Document, operationID string) (formdef.Form, error) {
	if operationID == "" {
		return formdef.Form{}, errors.New("formdef parser: operation id is required")
	}
	operations, err := p.operations(ctx, doc)
	if err != nil {
		return formdef.Form{}, err
	}
	op, ok := operations[operationID]
	if !ok {
		return formdef.Form{}, fmt.Errorf("formdef parser: operation %q not found", operationID)
	}

	schema, err := requestSchema(op.operation)
	if err != nil {
		return formdef.Form{}, fmt.Errorf("formdef parser: operation %q: %w", operationID, err)
	}

	form := formdef.Form{
		OperationID: operationID,
		Method:      op.method,
		Path:        op.path,
		Title:       firstNonEmpty(op.operation.Summary, schema.Title),
		Description: op.operation.Description,
		Required:    append([]string(nil), schema.Required...),
		Fields:      convertFields(schema),
	}
	for _, name := range form.Required {
		if _, ok := form.Field(name); !ok {
			return formdef.Form{}, fmt.Errorf("formdef parser: required field %q has no property", name)
		}
	}
	return form, nil
}

func (p *Parser) operations(ctx context.Context, doc formdef.Document) (map[string]located, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw := doc.Raw()
	if len(raw) == 0 {
		return nil, errors.New("formdef parser: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("formdef parser: load document: %w", err)
	}
	if p.options.ValidateDocument {
		if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("formdef parser: validate: %w", err)
		}
	}
	if spec.Paths == nil || spec.Paths.Len() == 0 {
		return nil, errors.New("formdef parser: document does not contain any paths")
	}

	out := make(map[string]located)
	for path, item := range spec.Paths.Map() {
		if item == nil {
			continue
		}
		for method, operation := range item.Operations() {
			if operation == nil {
				continue
			}
			id := operation.OperationID
			if id == "" {
				id = strings.ToLower(method) + ":" + path
			}
			out[id] = located{method: strings.ToUpper(method), path: path, operation: operation}
		}
	}
	if len(out) == 0 {
		return nil, errors.New("formdef parser: no operations extracted")
	}
	return out, nil
}

func requestSchema(operation *openapi3.Operation) (*openapi3.Schema, error) {
	if operation.RequestBody == nil || operation.RequestBody.Value == nil {
		return nil, errors.New("request body is not declared")
	}
	content := operation.RequestBody.Value.Content
	for _, mediaType := range mediaTypes {
		if mt, ok := content[mediaType]; ok && mt.Schema != nil && mt.Schema.Value != nil {
			return mt.Schema.Value, nil
		}
	}
	return nil, errors.New("request body has no form schema")
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
