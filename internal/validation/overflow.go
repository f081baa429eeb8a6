package validation

import (
	"math"

	"github.com/jonathan/resume-layout/internal/layout"
)

// OverflowAnalysis estimates how much content has to go for a tight layout to fit on one page.
type OverflowAnalysis struct {
	ExcessMm      float64 `json:"excess_mm"`      // estimated overflow past the page budget
	ExcessLines   int     `json:"excess_lines"`   // text lines that need to be removed
	ExcessBullets int     `json:"excess_bullets"` // experience bullets that need to be removed
	MustTrim      bool    `json:"must_trim"`      // true when the layout is tight
}

// AnalyzeOverflow converts a layout's overflow into lines and bullets using the heuristics
// the layout was estimated with.
func AnalyzeOverflow(l *layout.Layout, h layout.Heuristics) *OverflowAnalysis {
	analysis := &OverflowAnalysis{}
	if l == nil || !l.Tight {
		return analysis
	}

	analysis.ExcessMm = l.Overflow()
	analysis.MustTrim = true

	if h.LineMm > 0 {
		analysis.ExcessLines = int(math.Ceil(analysis.ExcessMm / h.LineMm))
	}
	if h.BulletMm > 0 {
		analysis.ExcessBullets = int(math.Ceil(analysis.ExcessMm / h.BulletMm))
	}

	return analysis
}
