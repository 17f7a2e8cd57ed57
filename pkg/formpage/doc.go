// Package formpage renders a form definition as a self-contained HTML page
// using pongo2 templates and a go-theme manifest for its colours.
package formpage
