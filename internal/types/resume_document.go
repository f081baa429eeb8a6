// Package types provides type definitions for structured data used throughout the resume-layout system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// ResumeDocument is a structured résumé as handed over by the document-assembly layer.
// Every section is independently optional; a nil slice and an empty slice both mean
// the section is inactive.
type ResumeDocument struct {
	PersonalDetails    PersonalDetails     `json:"personalDetails"`
	Summary            *string             `json:"summary,omitempty"`
	Roles              []string            `json:"roles,omitempty"`
	Experience         []ExperienceEntry   `json:"experience,omitempty"`
	Education          []EducationEntry    `json:"education,omitempty"`
	Skills             []string            `json:"skills,omitempty"`
	Projects           []ProjectEntry      `json:"projects,omitempty"`
	Accomplishments    []string            `json:"accomplishments,omitempty"`
	Awards             []string            `json:"awards,omitempty"`
	Certifications     []string            `json:"certifications,omitempty"`
	Languages          []string            `json:"languages,omitempty"`
	Interests          []string            `json:"interests,omitempty"`
	Publications       []string            `json:"publications,omitempty"`
	VolunteerWork      []VolunteerEntry    `json:"volunteerWork,omitempty"`
	AdditionalSections []AdditionalSection `json:"additionalSections,omitempty"`
}

// PersonalDetails holds the header fields. None of them affect section heights.
type PersonalDetails struct {
	Name     string `json:"name,omitempty"`
	Title    string `json:"title,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
	Website  string `json:"website,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
}

// ExperienceEntry represents one job with its bullets
type ExperienceEntry struct {
	Role    string   `json:"role"`
	Company string   `json:"company"`
	Years   string   `json:"years,omitempty"`
	Bullets []string `json:"bullets,omitempty"`
}

// EducationEntry represents one degree
type EducationEntry struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Years       string `json:"years,omitempty"`
}

// ProjectEntry represents a project line
type ProjectEntry struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url,omitempty"`
}

// VolunteerEntry represents volunteer work
type VolunteerEntry struct {
	Role         string `json:"role"`
	Organization string `json:"organization"`
	Years        string `json:"years,omitempty"`
	Description  string `json:"description,omitempty"`
}

// AdditionalSection is a free-form section keyed by its name
type AdditionalSection struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// SummaryText returns the summary or "" when absent.
func (d *ResumeDocument) SummaryText() string {
	if d == nil || d.Summary == nil {
		return ""
	}
	return *d.Summary
}
