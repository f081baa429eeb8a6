package layout

// A4 paper size in millimeters
const (
	A4HeightMm = 297.0
	A4WidthMm  = 210.0
)

// PageGeometry describes the fixed parts of a template page. The planner only ever sees
// the budget; header geometry stays with the template.
type PageGeometry struct {
	HeightMm       float64 `json:"height_mm"`
	HeaderMm       float64 `json:"header_mm"`
	BottomMarginMm float64 `json:"bottom_margin_mm"`
}

// BudgetMm is the height left for sections: page height minus header and bottom margin.
func (g PageGeometry) BudgetMm() float64 {
	return g.HeightMm - g.HeaderMm - g.BottomMarginMm
}

// StandardPage is an A4 page under a single-column header (207mm budget).
func StandardPage() PageGeometry {
	return PageGeometry{HeightMm: A4HeightMm, HeaderMm: 60, BottomMarginMm: 30}
}

// TallHeaderPage is an A4 page under a taller banner header (197mm budget).
func TallHeaderPage() PageGeometry {
	return PageGeometry{HeightMm: A4HeightMm, HeaderMm: 70, BottomMarginMm: 30}
}
