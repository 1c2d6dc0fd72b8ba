package site

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// staticFiles is the built-in stylesheet and any other files shipped with
// the binary, served at /static/.
func staticFiles() (http.Handler, error) {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("static files: %w", err)
	}
	return http.FileServerFS(sub), nil
}

// pageViews are the views rendered as HTML pages.
var pageViews = []string{ViewHome, ViewAbout, ViewServices, ViewInfo, ViewContact}

// CMS copy is rendered without raw HTML passthrough.
var markdownRenderer = goldmark.New(
	goldmark.WithExtensions(extension.Linkify, extension.Strikethrough),
	goldmark.WithRendererOptions(gmhtml.WithHardWraps()),
)

func renderMarkdown(s string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := markdownRenderer.Convert([]byte(s), &buf); err != nil {
		return "", fmt.Errorf("markdown: %w", err)
	}
	return template.HTML(buf.String()), nil
}

var templateFuncs = template.FuncMap{
	"markdown": renderMarkdown,
	"lines":    func(s string) []string { return strings.Split(s, "\n") },
}

// pageTemplates holds one template set per page: the shared layout plus
// that page's body.
type pageTemplates map[string]*template.Template

func parseTemplates() (pageTemplates, error) {
	base, err := template.New("layout.html").Funcs(templateFuncs).ParseFS(templateFS, "templates/layout.html")
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	out := make(pageTemplates, len(pageViews))
	for _, view := range pageViews {
		tpl, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone layout for %s: %w", view, err)
		}
		if _, err := tpl.ParseFS(templateFS, "templates/"+view+".html"); err != nil {
			return nil, fmt.Errorf("parse %s: %w", view, err)
		}
		out[view] = tpl
	}
	return out, nil
}

func (p pageTemplates) execute(w io.Writer, view string, data pageData) error {
	tpl, ok := p[view]
	if !ok {
		return fmt.Errorf("no template for view %q", view)
	}
	return tpl.ExecuteTemplate(w, "layout", data)
}
