package layout

import "math"

// SpacingPlan is the renderer-facing result: the gap between consecutive sections and
// whether the page's slack is spread between sections (space-between) or left at the bottom.
type SpacingPlan struct {
	InterSectionSpacingMm int  `json:"inter_section_spacing_mm"`
	DistributeSlack       bool `json:"distribute_slack"`
}

// Justify returns the CSS justify-content value matching the plan.
func (p SpacingPlan) Justify() string {
	if p.DistributeSlack {
		return "space-between"
	}
	return "flex-start"
}

// Plan computes the spacing plan with the default rules.
func Plan(estimates []SectionEstimate, pageBudgetMm float64, activeSectionCount int) SpacingPlan {
	return DefaultRules().Plan(estimates, pageBudgetMm, activeSectionCount)
}

// Plan evaluates the spacing ladder in order; the first matching tier wins.
func (r Rules) Plan(estimates []SectionEstimate, pageBudgetMm float64, activeSectionCount int) SpacingPlan {
	slack := pageBudgetMm - TotalHeight(estimates)
	gaps := float64(max(1, activeSectionCount-1))
	perGap := slack / gaps

	var (
		spacing    float64
		distribute bool
	)
	switch {
	case slack < 0:
		spacing = r.OverflowSpacingMm
	case slack > r.DistributeSlackMm && activeSectionCount < r.DistributeMaxSections:
		distribute = true
		spacing = clamp(perGap, r.DistributeMinMm, r.DistributeMaxMm)
	case slack > r.ModerateSlackMm:
		spacing = clamp(perGap, r.ModerateMinMm, r.ModerateMaxMm)
	case slack > r.LowSlackMm:
		spacing = math.Max(r.MinSpacingMm, perGap)
	default:
		spacing = r.MinSpacingMm
	}

	// The low-slack tier has no upper clamp of its own.
	spacing = math.Min(spacing, r.MaxSpacingMm)

	return SpacingPlan{
		InterSectionSpacingMm: int(math.Round(spacing)),
		DistributeSlack:       distribute,
	}
}

// TotalHeight sums the estimated heights.
func TotalHeight(estimates []SectionEstimate) float64 {
	var total float64
	for _, e := range estimates {
		total += e.HeightMm
	}
	return total
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
