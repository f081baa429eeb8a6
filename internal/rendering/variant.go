package rendering

import (
	"fmt"
	"sort"

	"github.com/jonathan/resume-layout/internal/layout"
)

// Variant is a template family sharing one header geometry.
type Variant struct {
	Name string              `json:"name"`
	Page layout.PageGeometry `json:"page"`

	htmlFile  string
	latexFile string
}

// BudgetMm returns the section budget of the variant's page.
func (v Variant) BudgetMm() float64 {
	return v.Page.BudgetMm()
}

var variants = map[string]Variant{
	"classic": {
		Name:      "classic",
		Page:      layout.StandardPage(),
		htmlFile:  "templates/classic.html.tmpl",
		latexFile: "templates/classic.tex.tmpl",
	},
	"banner": {
		Name:      "banner",
		Page:      layout.TallHeaderPage(),
		htmlFile:  "templates/banner.html.tmpl",
		latexFile: "templates/banner.tex.tmpl",
	},
}

// DefaultVariant is used when no variant is requested
const DefaultVariant = "classic"

// LookupVariant returns the named variant. An empty name selects DefaultVariant.
func LookupVariant(name string) (Variant, error) {
	if name == "" {
		name = DefaultVariant
	}
	v, ok := variants[name]
	if !ok {
		return Variant{}, &TemplateError{
			Message: fmt.Sprintf("unknown template variant: %s", name),
		}
	}
	return v, nil
}

// Variants lists every variant sorted by name.
func Variants() []Variant {
	out := make([]Variant, 0, len(variants))
	for _, v := range variants {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
