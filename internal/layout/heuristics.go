package layout

// Heuristics is the table of per-kind height constants, in millimeters.
// The values decide visible layout outcomes, so callers should treat them as part of
// the contract rather than tuning knobs.
type Heuristics struct {
	BaseMm       float64 `json:"base_mm"`        // section title and padding
	LineMm       float64 `json:"line_mm"`        // one wrapped text line
	CharsPerLine int     `json:"chars_per_line"` // wrap width for free text
	MinTextLines int     `json:"min_text_lines"` // floor for summary and additional sections

	ExperienceEntryMm float64 `json:"experience_entry_mm"`
	BulletMm          float64 `json:"bullet_mm"`
	EducationEntryMm  float64 `json:"education_entry_mm"`
	SkillsPerLine     int     `json:"skills_per_line"`
	ProjectMm         float64 `json:"project_mm"`
	AccomplishmentMm  float64 `json:"accomplishment_mm"`
	AwardMm           float64 `json:"award_mm"`
	CertificationMm   float64 `json:"certification_mm"`
	PublicationMm     float64 `json:"publication_mm"`
	VolunteerMm       float64 `json:"volunteer_mm"`
	RoleMm            float64 `json:"role_mm"`
	InlineListMm      float64 `json:"inline_list_mm"` // languages and interests, always one line
	FallbackMm        float64 `json:"fallback_mm"`    // two generic lines for unknown kinds
}

// DefaultHeuristics returns the reference constants.
func DefaultHeuristics() Heuristics {
	return Heuristics{
		BaseMm:       8,
		LineMm:       4,
		CharsPerLine: 60,
		MinTextLines: 3,

		ExperienceEntryMm: 12,
		BulletMm:          4,
		EducationEntryMm:  12,
		SkillsPerLine:     8,
		ProjectMm:         8,
		AccomplishmentMm:  4,
		AwardMm:           6,
		CertificationMm:   6,
		PublicationMm:     6,
		VolunteerMm:       10,
		RoleMm:            4,
		InlineListMm:      4,
		FallbackMm:        8,
	}
}

// Rules is the table of spacing-planner thresholds, in millimeters.
type Rules struct {
	OverflowSpacingMm     float64 `json:"overflow_spacing_mm"`
	MinSpacingMm          float64 `json:"min_spacing_mm"`
	MaxSpacingMm          float64 `json:"max_spacing_mm"`
	DistributeSlackMm     float64 `json:"distribute_slack_mm"`
	DistributeMaxSections int     `json:"distribute_max_sections"` // exclusive
	DistributeMinMm       float64 `json:"distribute_min_mm"`
	DistributeMaxMm       float64 `json:"distribute_max_mm"`
	ModerateSlackMm       float64 `json:"moderate_slack_mm"`
	ModerateMinMm         float64 `json:"moderate_min_mm"`
	ModerateMaxMm         float64 `json:"moderate_max_mm"`
	LowSlackMm            float64 `json:"low_slack_mm"`
}

// DefaultRules returns the reference ladder: 10mm when overflowing, 12mm floor,
// 40mm ceiling.
func DefaultRules() Rules {
	return Rules{
		OverflowSpacingMm:     10,
		MinSpacingMm:          12,
		MaxSpacingMm:          40,
		DistributeSlackMm:     100,
		DistributeMaxSections: 6,
		DistributeMinMm:       15,
		DistributeMaxMm:       40,
		ModerateSlackMm:       50,
		ModerateMinMm:         15,
		ModerateMaxMm:         25,
		LowSlackMm:            20,
	}
}
