package db

import (
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-layout/internal/layout"
)

// Run sources
const (
	SourceCLI  = "cli"
	SourceHTTP = "http"
)

// LayoutRun is one planning outcome. It records the plan's numbers and the section kinds,
// never the résumé content.
type LayoutRun struct {
	ID              uuid.UUID `json:"id"`
	Variant         string    `json:"variant"`
	Source          string    `json:"source"`
	PageBudgetMm    float64   `json:"page_budget_mm"`
	TotalContentMm  float64   `json:"total_content_mm"`
	SlackMm         float64   `json:"slack_mm"`
	SpacingMm       int       `json:"spacing_mm"`
	DistributeSlack bool      `json:"distribute_slack"`
	Tight           bool      `json:"tight"`
	SectionCount    int       `json:"section_count"`
	Sections        []string  `json:"sections"`
	CreatedAt       time.Time `json:"created_at"`
}

// NewLayoutRun summarizes a computed layout for the run log.
func NewLayoutRun(variant, source string, l layout.Layout) LayoutRun {
	sections := make([]string, len(l.Sections))
	for i, s := range l.Sections {
		sections[i] = s.Kind.String()
	}
	return LayoutRun{
		Variant:         variant,
		Source:          source,
		PageBudgetMm:    l.PageBudgetMm,
		TotalContentMm:  l.TotalContentMm,
		SlackMm:         l.SlackMm,
		SpacingMm:       l.Plan.InterSectionSpacingMm,
		DistributeSlack: l.Plan.DistributeSlack,
		Tight:           l.Tight,
		SectionCount:    len(l.Sections),
		Sections:        sections,
	}
}
