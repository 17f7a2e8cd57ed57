package formpage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-docform/pkg/formdef"
	"github.com/goliatone/go-docform/pkg/submission"
)

const pageTemplate = "page"

// Option customises the renderer.
type Option func(*Renderer)

// WithEngine replaces the template engine, for example one reading templates
// from disk.
func WithEngine(engine *Engine) Option {
	return func(r *Renderer) {
		if engine != nil {
			r.engine = engine
		}
	}
}

// WithTheme replaces the built-in theme manifest. The manifest is validated
// when it is registered in New.
func WithTheme(manifest *theme.Manifest) Option {
	return func(r *Renderer) {
		if manifest == nil {
			return
		}
		r.manifest = manifest
		r.themeName = manifest.Name
	}
}

// WithThemeSelector resolves the theme through a go-theme selector instead of
// a fixed manifest.
func WithThemeSelector(selector theme.ThemeSelector, name string) Option {
	return func(r *Renderer) {
		if selector == nil {
			return
		}
		r.selector = selector
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			r.themeName = trimmed
		}
	}
}

// WithThemeProvider resolves themes from a registry shared with other
// renderers. defaultTheme is used when the requested theme is unknown.
func WithThemeProvider(provider theme.ThemeProvider, defaultTheme, defaultVariant string) Option {
	return func(r *Renderer) {
		if provider == nil {
			return
		}
		name := strings.TrimSpace(defaultTheme)
		if name == "" {
			name = r.themeName
		}
		r.selector = theme.Selector{
			Registry:       provider,
			DefaultTheme:   name,
			DefaultVariant: strings.TrimSpace(defaultVariant),
		}
		r.themeName = name
	}
}

// WithLanguage sets the lang attribute of the page.
func WithLanguage(lang string) Option {
	return func(r *Renderer) {
		if trimmed := strings.TrimSpace(lang); trimmed != "" {
			r.lang = trimmed
		}
	}
}

// PageOptions carries per-request values.
type PageOptions struct {
	// Values prefill the inputs.
	Values submission.Submission
	// Errors maps field names to messages shown next to the input.
	Errors map[string][]string
	// FormErrors are shown above the form.
	FormErrors []string
	// Action overrides the form action; it defaults to the form path.
	Action string
	// Variant selects a theme variant such as "dark".
	Variant string
}

// Renderer renders a form definition as a standalone HTML page.
type Renderer struct {
	engine    *Engine
	manifest  *theme.Manifest
	selector  theme.ThemeSelector
	themeName string
	lang      string
}

// New constructs a Renderer using the embedded templates and theme.
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		manifest:  DefaultTheme(),
		themeName: DefaultThemeName,
		lang:      "zh-CN",
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.engine == nil {
		engine, err := NewEngine()
		if err != nil {
			return nil, err
		}
		r.engine = engine
	}
	if r.selector == nil && r.manifest != nil {
		registry := theme.NewRegistry()
		if err := registry.Register(r.manifest); err != nil {
			return nil, fmt.Errorf("formpage: register theme %q: %w", r.manifest.Name, err)
		}
		r.selector = theme.Selector{Registry: registry, DefaultTheme: r.manifest.Name}
	}
	return r, nil
}

// ContentType reports the MIME type of rendered pages.
func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render produces the HTML page for form.
func (r *Renderer) Render(ctx context.Context, form formdef.Form, opts PageOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("formpage: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cfg, err := r.themeSelection(strings.TrimSpace(opts.Variant))
	if err != nil {
		return nil, err
	}

	out, err := r.engine.RenderTemplate(pageTemplate, r.pageData(form, opts, cfg))
	if err != nil {
		return nil, err
	}
	return []byte(out), nil
}

func (r *Renderer) pageData(form formdef.Form, opts PageOptions, cfg *theme.RendererConfig) map[string]any {
	action := strings.TrimSpace(opts.Action)
	if action == "" {
		action = form.Path
	}
	method := strings.ToLower(form.Method)
	if method == "" {
		method = "post"
	}

	fields := make([]map[string]any, 0, len(form.Fields))
	for _, field := range form.Fields {
		fields = append(fields, map[string]any{
			"name":        field.Name,
			"id":          "field-" + strings.ReplaceAll(field.Name, "_", "-"),
			"label":       field.Label,
			"help":        field.Help,
			"placeholder": field.Placeholder,
			"widget":      string(field.Widget),
			"required":    field.Required,
			"maxlength":   field.MaxLength,
			"value":       opts.Values.Value(field.Name),
			"errors":      opts.Errors[field.Name],
		})
	}

	themeData := map[string]any{}
	if cfg != nil {
		themeData["name"] = cfg.Theme
		themeData["variant"] = cfg.Variant
		themeData["style"] = cssVarsStyle(cfg.CSSVars)
		if cfg.AssetURL != nil {
			themeData["stylesheet"] = cfg.AssetURL(stylesheetAsset)
		}
	}

	return map[string]any{
		"lang":        r.lang,
		"title":       form.Title,
		"description": form.Description,
		"operation":   form.OperationID,
		"action":      action,
		"method":      method,
		"fields":      fields,
		"form_errors": submission.MergeMessages(nil, opts.FormErrors...),
		"theme":       themeData,
	}
}
