// Package layout estimates section heights and plans inter-section spacing so that a
// résumé fills, but does not exceed, a single A4 page.
package layout

import (
	"fmt"
)

// SectionKind identifies one type of résumé section
type SectionKind int

// Section kinds. The declaration order below is not the canonical order; use CanonicalOrder.
const (
	KindUnknown SectionKind = iota
	KindSummary
	KindRoles
	KindExperience
	KindEducation
	KindSkills
	KindProjects
	KindAccomplishments
	KindAwards
	KindCertifications
	KindLanguages
	KindInterests
	KindPublications
	KindVolunteerWork
	KindAdditional
)

var kindNames = [...]string{
	KindUnknown:         "unknown",
	KindSummary:         "summary",
	KindRoles:           "roles",
	KindExperience:      "experience",
	KindEducation:       "education",
	KindSkills:          "skills",
	KindProjects:        "projects",
	KindAccomplishments: "accomplishments",
	KindAwards:          "awards",
	KindCertifications:  "certifications",
	KindLanguages:       "languages",
	KindInterests:       "interests",
	KindPublications:    "publications",
	KindVolunteerWork:   "volunteerWork",
	KindAdditional:      "additional",
}

// canonicalOrder is the stacking order shared by the planner and every renderer.
// KindAdditional expands to the document's additional sections, in document order.
var canonicalOrder = []SectionKind{
	KindSummary,
	KindRoles,
	KindExperience,
	KindEducation,
	KindSkills,
	KindProjects,
	KindAccomplishments,
	KindAwards,
	KindCertifications,
	KindLanguages,
	KindInterests,
	KindPublications,
	KindVolunteerWork,
	KindAdditional,
}

// CanonicalOrder returns a copy of the fixed section order.
func CanonicalOrder() []SectionKind {
	out := make([]SectionKind, len(canonicalOrder))
	copy(out, canonicalOrder)
	return out
}

// String returns the stable name used in JSON, templates and the HTTP API.
func (k SectionKind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// Title returns the heading renderers print above a section.
func (k SectionKind) Title() string {
	switch k {
	case KindSummary:
		return "Summary"
	case KindRoles:
		return "Roles"
	case KindExperience:
		return "Experience"
	case KindEducation:
		return "Education"
	case KindSkills:
		return "Skills"
	case KindProjects:
		return "Projects"
	case KindAccomplishments:
		return "Accomplishments"
	case KindAwards:
		return "Awards"
	case KindCertifications:
		return "Certifications"
	case KindLanguages:
		return "Languages"
	case KindInterests:
		return "Interests"
	case KindPublications:
		return "Publications"
	case KindVolunteerWork:
		return "Volunteer Work"
	default:
		return ""
	}
}

// ParseSectionKind maps a stable name back to its kind. Unknown names map to KindUnknown.
func ParseSectionKind(name string) SectionKind {
	for i, n := range kindNames {
		if n == name && SectionKind(i) != KindUnknown {
			return SectionKind(i)
		}
	}
	return KindUnknown
}

// MarshalText implements encoding.TextMarshaler
func (k SectionKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (k *SectionKind) UnmarshalText(text []byte) error {
	*k = ParseSectionKind(string(text))
	return nil
}
