// Package rendering renders résumés from templates using a precomputed layout plan.
package rendering

import (
	"embed"
	"fmt"
	htmltemplate "html/template"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/resume-layout/internal/layout"
	"github.com/jonathan/resume-layout/internal/types"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// RenderHTML renders an A4 HTML page. Sections are emitted in the layout's order, and the
// plan is applied through the --section-gap and --section-justify CSS custom properties.
// html/template entity-escapes all document text.
func RenderHTML(doc *types.ResumeDocument, l *layout.Layout, v Variant) (string, error) {
	tmpl, err := parseHTMLTemplate(templateFS, v.htmlFile)
	if err != nil {
		return "", err
	}
	return executeHTML(tmpl, doc, l, v)
}

// RenderHTMLFile renders with a template read from disk instead of a built-in variant.
// The variant still supplies the page geometry.
func RenderHTMLFile(doc *types.ResumeDocument, l *layout.Layout, v Variant, templatePath string) (string, error) {
	tmpl, err := parseHTMLTemplate(os.DirFS("/"), strings.TrimPrefix(absPath(templatePath), "/"))
	if err != nil {
		return "", err
	}
	return executeHTML(tmpl, doc, l, v)
}

func executeHTML(tmpl *htmltemplate.Template, doc *types.ResumeDocument, l *layout.Layout, v Variant) (string, error) {
	if doc == nil || l == nil {
		return "", &RenderError{Message: "document and layout are required"}
	}

	data := buildPageData(doc, l, v, identity)

	var result strings.Builder
	if err := tmpl.Execute(&result, data); err != nil {
		return "", &TemplateError{
			Variant: v.Name,
			Message: "failed to execute template",
			Cause:   err,
		}
	}
	return result.String(), nil
}

// parseHTMLTemplate reads and parses an HTML template
func parseHTMLTemplate(fsys fs.FS, path string) (*htmltemplate.Template, error) {
	content, err := fs.ReadFile(fsys, path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &TemplateError{
				Message: fmt.Sprintf("template file not found: %s", path),
				Cause:   err,
			}
		}
		return nil, &TemplateError{
			Message: fmt.Sprintf("failed to read template file: %s", path),
			Cause:   err,
		}
	}

	tmpl, err := htmltemplate.New("resume").Funcs(htmltemplate.FuncMap{
		"join": strings.Join,
	}).Parse(string(content))
	if err != nil {
		return nil, &TemplateError{
			Message: "failed to parse template",
			Cause:   err,
		}
	}

	return tmpl, nil
}

func absPath(p string) string {
	abs, err := filepath.Abs(p)
	if err != nil {
		return filepath.ToSlash(p)
	}
	return filepath.ToSlash(abs)
}
