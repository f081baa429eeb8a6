package layout

import (
	"math"

	"github.com/jonathan/resume-layout/internal/types"
)

// Layout is everything a renderer (or a caller deciding whether to warn) needs for one render.
// It is computed fresh per render and never cached.
type Layout struct {
	Sections       []SectionEstimate `json:"sections"`
	TotalContentMm float64           `json:"total_content_mm"`
	PageBudgetMm   float64           `json:"page_budget_mm"`
	SlackMm        float64           `json:"slack_mm"`
	Plan           SpacingPlan       `json:"plan"`

	// Tight is set when the estimated content exceeds the page budget. The plan then packs
	// sections at the overflow spacing, but the rendered page may still run past A4.
	Tight bool `json:"tight"`
}

// Options bundles the two constant tables. The zero value is not usable; start from DefaultOptions.
type Options struct {
	Heuristics Heuristics `json:"heuristics"`
	Rules      Rules      `json:"rules"`
}

// DefaultOptions returns the reference heuristics and rules.
func DefaultOptions() Options {
	return Options{
		Heuristics: DefaultHeuristics(),
		Rules:      DefaultRules(),
	}
}

// Fit runs filter, estimate and plan for doc against the page budget using the default tables.
func Fit(doc *types.ResumeDocument, pageBudgetMm float64) Layout {
	return DefaultOptions().Fit(doc, pageBudgetMm)
}

// Fit runs filter, estimate and plan for doc against the page budget.
func (o Options) Fit(doc *types.ResumeDocument, pageBudgetMm float64) Layout {
	sections := ActiveSections(doc)
	estimates := o.Heuristics.EstimateAll(doc, sections)
	total := TotalHeight(estimates)
	slack := pageBudgetMm - total

	return Layout{
		Sections:       estimates,
		TotalContentMm: total,
		PageBudgetMm:   pageBudgetMm,
		SlackMm:        slack,
		Plan:           o.Rules.Plan(estimates, pageBudgetMm, len(sections)),
		Tight:          slack < 0,
	}
}

// Overflow returns how far the estimated content runs past the budget, or 0.
func (l Layout) Overflow() float64 {
	if !l.Tight {
		return 0
	}
	return math.Abs(l.SlackMm)
}

// Kinds returns the section kinds in render order.
func (l Layout) Kinds() []SectionKind {
	kinds := make([]SectionKind, len(l.Sections))
	for i, s := range l.Sections {
		kinds[i] = s.Kind
	}
	return kinds
}
