package layout

import (
	"math"
	"unicode/utf8"

	"github.com/jonathan/resume-layout/internal/types"
)

// SectionEstimate is the estimated vertical footprint of one active section
type SectionEstimate struct {
	Kind     SectionKind `json:"kind"`
	Key      string      `json:"key"`
	HeightMm float64     `json:"height_mm"`
}

// Estimate returns the estimated height in millimeters of section s of doc.
// It is total: every kind, including unknown ones, yields a finite non-negative value.
func (h Heuristics) Estimate(doc *types.ResumeDocument, s Section) float64 {
	if doc == nil {
		doc = &types.ResumeDocument{}
	}

	var variable float64
	switch s.Kind {
	case KindSummary:
		variable = h.textHeight(doc.SummaryText())
	case KindRoles:
		variable = float64(len(doc.Roles)) * h.RoleMm
	case KindExperience:
		for _, entry := range doc.Experience {
			variable += h.ExperienceEntryMm + float64(len(entry.Bullets))*h.BulletMm
		}
	case KindEducation:
		variable = float64(len(doc.Education)) * h.EducationEntryMm
	case KindSkills:
		lines := max(1, ceilDiv(len(doc.Skills), h.SkillsPerLine))
		variable = float64(lines) * h.LineMm
	case KindProjects:
		variable = float64(len(doc.Projects)) * h.ProjectMm
	case KindAccomplishments:
		variable = float64(len(doc.Accomplishments)) * h.AccomplishmentMm
	case KindAwards:
		variable = float64(len(doc.Awards)) * h.AwardMm
	case KindCertifications:
		variable = float64(len(doc.Certifications)) * h.CertificationMm
	case KindPublications:
		variable = float64(len(doc.Publications)) * h.PublicationMm
	case KindVolunteerWork:
		variable = float64(len(doc.VolunteerWork)) * h.VolunteerMm
	case KindLanguages, KindInterests:
		variable = h.InlineListMm
	case KindAdditional:
		content, ok := lookupAdditional(doc, s)
		if !ok {
			variable = h.FallbackMm
			break
		}
		variable = h.textHeight(content)
	default:
		variable = h.FallbackMm
	}

	return sanitize(h.BaseMm + variable)
}

// EstimateKind estimates a non-additional kind directly from the document.
// KindAdditional is estimated as the sum of all additional sections.
func (h Heuristics) EstimateKind(kind SectionKind, doc *types.ResumeDocument) float64 {
	if kind != KindAdditional {
		return h.Estimate(doc, Section{Kind: kind, Key: kind.String(), Index: -1})
	}
	var total float64
	for _, s := range ActiveSections(doc) {
		if s.Kind == KindAdditional {
			total += h.Estimate(doc, s)
		}
	}
	return total
}

// EstimateAll estimates every section in order.
func (h Heuristics) EstimateAll(doc *types.ResumeDocument, sections []Section) []SectionEstimate {
	estimates := make([]SectionEstimate, 0, len(sections))
	for _, s := range sections {
		estimates = append(estimates, SectionEstimate{
			Kind:     s.Kind,
			Key:      s.Key,
			HeightMm: h.Estimate(doc, s),
		})
	}
	return estimates
}

// textHeight estimates wrapped free text: max(MinTextLines, ceil(chars/CharsPerLine)) lines.
func (h Heuristics) textHeight(text string) float64 {
	lines := max(h.MinTextLines, ceilDiv(utf8.RuneCountInString(text), h.CharsPerLine))
	return float64(lines) * h.LineMm
}

// lookupAdditional finds the content of an additional section. The recorded index is
// trusted when its name still matches; otherwise the first section with the same name wins.
func lookupAdditional(doc *types.ResumeDocument, s Section) (string, bool) {
	if s.Index >= 0 && s.Index < len(doc.AdditionalSections) && doc.AdditionalSections[s.Index].Name == s.Key {
		return doc.AdditionalSections[s.Index].Content, true
	}
	for _, extra := range doc.AdditionalSections {
		if extra.Name == s.Key {
			return extra.Content, true
		}
	}
	return "", false
}

func ceilDiv(n, d int) int {
	if d <= 0 || n <= 0 {
		return 0
	}
	return (n + d - 1) / d
}

func sanitize(mm float64) float64 {
	if math.IsNaN(mm) || math.IsInf(mm, 0) || mm < 0 {
		return 0
	}
	return mm
}
