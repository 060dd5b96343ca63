package render

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Engine renders module descriptors and page Markdown.
type Engine struct {
	moduleTmpl *template.Template
}

// NewEngine parses the embedded templates.
func NewEngine() (*Engine, error) {
	tpl, err := template.New("module.md.tmpl").Funcs(moduleFuncs()).ParseFS(templateFS, "templates/module.md.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse module template: %w", err)
	}
	return &Engine{moduleTmpl: tpl}, nil
}

// RenderModule renders one parsed module descriptor to Markdown. The
// descriptor's top-level keys are the template's variables.
func (e *Engine) RenderModule(record map[string]any) (string, error) {
	var buf bytes.Buffer
	if err := e.moduleTmpl.Execute(&buf, record); err != nil {
		return "", fmt.Errorf("render module page: %w", err)
	}
	return buf.String(), nil
}

// RenderPage parses markdown itself as a template and renders it with the
// given context. Each context name is exposed as a zero-argument template
// function, so deferred bindings are computed only for names the page
// references. A reference to a name outside the context is a parse error,
// which aborts the build.
func (e *Engine) RenderPage(markdown string, ctx Context) (string, error) {
	funcs := make(template.FuncMap, len(ctx))
	for name := range ctx {
		name := name
		funcs[name] = func() (any, error) {
			return ctx.Resolve(name)
		}
	}

	tpl, err := template.New("page").Funcs(funcs).Parse(markdown)
	if err != nil {
		return "", fmt.Errorf("parse page template: %w", err)
	}

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, nil); err != nil {
		return "", fmt.Errorf("render page template: %w", err)
	}
	return buf.String(), nil
}

// moduleFuncs are helpers available to the module template.
func moduleFuncs() template.FuncMap {
	return template.FuncMap{
		// get looks up a key in a loosely-typed YAML mapping, yielding an
		// empty string instead of <no value> for absent keys.
		"get": func(m map[string]any, key string) any {
			if v, ok := m[key]; ok && v != nil {
				return v
			}
			return ""
		},
	}
}
