package render

import (
	"context"
	"fmt"
	"strings"
	"text/template"

	"nfoforge/internal/textutil"
)

// Renderer is the general-purpose template engine template mode hands off
// to. data maps token names to string, []string or []tokens.Image values.
type Renderer interface {
	Render(ctx context.Context, tmpl string, data map[string]any) (string, error)
}

// TextTemplateRenderer renders with text/template. Tokens are addressed as
// {{ .title }}; list tokens can be ranged over.
type TextTemplateRenderer struct {
	// Funcs are added after the built-in helpers and may replace them.
	Funcs template.FuncMap
}

var builtinFuncs = template.FuncMap{
	"upper": strings.ToUpper,
	"lower": strings.ToLower,
	"title": textutil.TitleCase,
	"trim":  strings.TrimSpace,
	"join":  func(sep string, items []string) string { return strings.Join(items, sep) },
	"zfill": func(width int, value string) string { return textutil.ZeroFill(value, width) },
}

// Render parses and executes tmpl against data.
func (r TextTemplateRenderer) Render(ctx context.Context, tmpl string, data map[string]any) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	t, err := template.New("nfo").Funcs(builtinFuncs).Funcs(r.Funcs).Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("parse template: %w", err)
	}
	var b strings.Builder
	if err := t.Execute(&b, data); err != nil {
		return "", fmt.Errorf("execute template: %w", err)
	}
	return b.String(), nil
}
