package rendering

import (
	"strings"

	"github.com/jonathan/resume-layout/internal/layout"
	"github.com/jonathan/resume-layout/internal/types"
)

// PageData is the structure passed to every template
type PageData struct {
	Name     string
	Title    string
	Contacts []string

	SpacingMm      int
	Distribute     bool
	Justify        string
	Tight          bool
	HeaderMm       float64
	BottomMarginMm float64

	Sections []SectionData
}

// SectionData is one rendered section, in layout order
type SectionData struct {
	Kind      string
	Title     string
	Paragraph string
	Items     []string
	Inline    []string
	Entries   []EntryData
}

// EntryData is a record inside a section (a job, a degree, a project)
type EntryData struct {
	Heading    string
	Subheading string
	Years      string
	Details    string
	Bullets    []string
}

// buildPageData converts the document into template data following the layout's section
// order. esc is applied to every piece of user text; html/template callers pass identity.
func buildPageData(doc *types.ResumeDocument, l *layout.Layout, v Variant, esc func(string) string) *PageData {
	details := doc.PersonalDetails
	contacts := make([]string, 0, 5)
	for _, c := range []string{details.Email, details.Phone, details.Location, details.Website, details.LinkedIn} {
		if strings.TrimSpace(c) != "" {
			contacts = append(contacts, esc(c))
		}
	}

	data := &PageData{
		Name:           esc(details.Name),
		Title:          esc(details.Title),
		Contacts:       contacts,
		SpacingMm:      l.Plan.InterSectionSpacingMm,
		Distribute:     l.Plan.DistributeSlack,
		Justify:        l.Plan.Justify(),
		Tight:          l.Tight,
		HeaderMm:       v.Page.HeaderMm,
		BottomMarginMm: v.Page.BottomMarginMm,
		Sections:       make([]SectionData, 0, len(l.Sections)),
	}

	// Additional sections are consumed in document order as they appear in the layout
	additional := activeAdditional(doc)
	for _, est := range l.Sections {
		section := SectionData{Kind: est.Kind.String(), Title: est.Kind.Title()}

		switch est.Kind {
		case layout.KindSummary:
			section.Paragraph = esc(doc.SummaryText())
		case layout.KindRoles:
			section.Inline = escapeAll(doc.Roles, esc)
		case layout.KindExperience:
			for _, e := range doc.Experience {
				section.Entries = append(section.Entries, EntryData{
					Heading:    esc(e.Role),
					Subheading: esc(e.Company),
					Years:      esc(e.Years),
					Bullets:    escapeAll(e.Bullets, esc),
				})
			}
		case layout.KindEducation:
			for _, e := range doc.Education {
				section.Entries = append(section.Entries, EntryData{
					Heading:    esc(e.Degree),
					Subheading: esc(e.Institution),
					Years:      esc(e.Years),
				})
			}
		case layout.KindSkills:
			section.Inline = escapeAll(doc.Skills, esc)
		case layout.KindProjects:
			for _, p := range doc.Projects {
				section.Entries = append(section.Entries, EntryData{
					Heading:    esc(p.Name),
					Subheading: esc(p.URL),
					Details:    esc(p.Description),
				})
			}
		case layout.KindAccomplishments:
			section.Items = escapeAll(doc.Accomplishments, esc)
		case layout.KindAwards:
			section.Items = escapeAll(doc.Awards, esc)
		case layout.KindCertifications:
			section.Items = escapeAll(doc.Certifications, esc)
		case layout.KindLanguages:
			section.Inline = escapeAll(doc.Languages, esc)
		case layout.KindInterests:
			section.Inline = escapeAll(doc.Interests, esc)
		case layout.KindPublications:
			section.Items = escapeAll(doc.Publications, esc)
		case layout.KindVolunteerWork:
			for _, w := range doc.VolunteerWork {
				section.Entries = append(section.Entries, EntryData{
					Heading:    esc(w.Role),
					Subheading: esc(w.Organization),
					Years:      esc(w.Years),
					Details:    esc(w.Description),
				})
			}
		case layout.KindAdditional:
			section.Title = esc(est.Key)
			if len(additional) > 0 {
				section.Paragraph = esc(additional[0].Content)
				additional = additional[1:]
			}
		default:
			section.Title = esc(est.Key)
		}

		data.Sections = append(data.Sections, section)
	}

	return data
}

func activeAdditional(doc *types.ResumeDocument) []types.AdditionalSection {
	out := make([]types.AdditionalSection, 0, len(doc.AdditionalSections))
	for _, extra := range doc.AdditionalSections {
		if strings.TrimSpace(extra.Content) != "" {
			out = append(out, extra)
		}
	}
	return out
}

func escapeAll(items []string, esc func(string) string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, esc(item))
	}
	return out
}

func identity(s string) string { return s }
