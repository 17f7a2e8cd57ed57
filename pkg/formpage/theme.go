package formpage

import (
	"fmt"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

const (
	DefaultThemeName = "docform"
	DarkVariant      = "dark"

	stylesheetAsset = "page.stylesheet"
)

// DefaultTheme returns the manifest of the built-in page style.
func DefaultTheme() *theme.Manifest {
	return &theme.Manifest{
		Name:    DefaultThemeName,
		Version: "1.0.0",
		Tokens: map[string]string{
			"page-bg":      "#f4f5f7",
			"surface":      "#ffffff",
			"text":         "#1f2933",
			"muted":        "#616e7c",
			"border":       "#cbd2d9",
			"accent":       "#2f6fb2",
			"danger":       "#c62828",
			"font-family":  "\"Songti SC\", SimSun, \"Noto Serif CJK SC\", serif",
			"radius":       "4px",
			"field-gap":    "1rem",
			"content-size": "46rem",
		},
		Variants: map[string]theme.Variant{
			DarkVariant: {
				Tokens: map[string]string{
					"page-bg": "#14181f",
					"surface": "#1f2630",
					"text":    "#e4e7eb",
					"muted":   "#9aa5b1",
					"border":  "#3e4c59",
					"accent":  "#7cb3f0",
					"danger":  "#ef9a9a",
				},
			},
		},
	}
}

// themeSelection resolves the renderer configuration for a variant. Variants
// the manifest does not declare fall back to the base tokens.
func (r *Renderer) themeSelection(variant string) (*theme.RendererConfig, error) {
	if r.selector == nil {
		return nil, nil
	}
	selection, err := r.selector.Select(r.themeName, variant)
	if err != nil {
		return nil, fmt.Errorf("formpage: select theme %q: %w", r.themeName, err)
	}
	if selection == nil || selection.Manifest == nil {
		return nil, fmt.Errorf("formpage: theme %q has no manifest", r.themeName)
	}
	selected := *selection
	if _, ok := selected.Manifest.Variants[selected.Variant]; !ok {
		selected.Variant = ""
	}
	cfg := selected.RendererTheme(nil)
	return &cfg, nil
}

func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, key := range keys {
		value := strings.NewReplacer("<", "", ">", "", "{", "", "}", "").Replace(vars[key])
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(value)
		b.WriteString("; ")
	}
	return strings.TrimSpace(b.String())
}
