package rendering

import (
	"fmt"
	"io/fs"
	"os"
	"strings"
	"text/template"

	"github.com/jonathan/resume-layout/internal/layout"
	"github.com/jonathan/resume-layout/internal/types"
)

// RenderLaTeX renders the document as LaTeX. The plan becomes \vspace{<n>mm} between
// sections, followed by \vfill when the slack is distributed so the gap stays a minimum.
func RenderLaTeX(doc *types.ResumeDocument, l *layout.Layout, v Variant) (string, error) {
	tmpl, err := parseLaTeXTemplate(templateFS, v.latexFile)
	if err != nil {
		return "", err
	}
	return executeLaTeX(tmpl, doc, l, v)
}

// RenderLaTeXFile renders with a LaTeX template read from disk.
func RenderLaTeXFile(doc *types.ResumeDocument, l *layout.Layout, v Variant, templatePath string) (string, error) {
	tmpl, err := parseLaTeXTemplate(os.DirFS("/"), strings.TrimPrefix(absPath(templatePath), "/"))
	if err != nil {
		return "", err
	}
	return executeLaTeX(tmpl, doc, l, v)
}

func executeLaTeX(tmpl *template.Template, doc *types.ResumeDocument, l *layout.Layout, v Variant) (string, error) {
	if doc == nil || l == nil {
		return "", &RenderError{Message: "document and layout are required"}
	}

	// Escape everything up front; text/template does no escaping of its own
	data := buildPageData(doc, l, v, EscapeLaTeX)

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

// parseLaTeXTemplate reads and parses a LaTeX template
func parseLaTeXTemplate(fsys fs.FS, path string) (*template.Template, error) {
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

	tmpl, err := template.New("resume").Funcs(template.FuncMap{
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
