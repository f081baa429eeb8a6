package layout

import (
	"strings"

	"github.com/jonathan/resume-layout/internal/types"
)

// Section is one active section of a document. For KindAdditional, Key is the
// section's name and Index its position in ResumeDocument.AdditionalSections;
// for every other kind Key is the kind's name and Index is -1.
type Section struct {
	Kind  SectionKind `json:"kind"`
	Key   string      `json:"key"`
	Index int         `json:"-"`
}

// ActiveSections returns the document's active sections in canonical order.
// A section is active when its field is present and, for sequences, non-empty.
func ActiveSections(doc *types.ResumeDocument) []Section {
	if doc == nil {
		return []Section{}
	}

	sections := make([]Section, 0, len(canonicalOrder)+len(doc.AdditionalSections))
	for _, kind := range canonicalOrder {
		if kind == KindAdditional {
			for i, extra := range doc.AdditionalSections {
				if strings.TrimSpace(extra.Content) == "" {
					continue
				}
				sections = append(sections, Section{Kind: KindAdditional, Key: extra.Name, Index: i})
			}
			continue
		}
		if IsActive(kind, doc) {
			sections = append(sections, Section{Kind: kind, Key: kind.String(), Index: -1})
		}
	}
	return sections
}

// IsActive reports whether a non-additional kind has content in doc.
// KindAdditional is active when any additional section has content.
func IsActive(kind SectionKind, doc *types.ResumeDocument) bool {
	if doc == nil {
		return false
	}
	switch kind {
	case KindSummary:
		return strings.TrimSpace(doc.SummaryText()) != ""
	case KindRoles:
		return len(doc.Roles) > 0
	case KindExperience:
		return len(doc.Experience) > 0
	case KindEducation:
		return len(doc.Education) > 0
	case KindSkills:
		return len(doc.Skills) > 0
	case KindProjects:
		return len(doc.Projects) > 0
	case KindAccomplishments:
		return len(doc.Accomplishments) > 0
	case KindAwards:
		return len(doc.Awards) > 0
	case KindCertifications:
		return len(doc.Certifications) > 0
	case KindLanguages:
		return len(doc.Languages) > 0
	case KindInterests:
		return len(doc.Interests) > 0
	case KindPublications:
		return len(doc.Publications) > 0
	case KindVolunteerWork:
		return len(doc.VolunteerWork) > 0
	case KindAdditional:
		for _, extra := range doc.AdditionalSections {
			if strings.TrimSpace(extra.Content) != "" {
				return true
			}
		}
		return false
	default:
		return false
	}
}
