package layout

import (
	"strings"
	"testing"

	"github.com/jonathan/resume-layout/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestEstimate_PerKind(t *testing.T) {
	h := DefaultHeuristics()
	doc := &types.ResumeDocument{
		Summary: strPtr(strings.Repeat("a", 200)),
		Roles:   []string{"Backend", "Platform"},
		Experience: []types.ExperienceEntry{
			{Role: "Engineer", Company: "Acme", Bullets: []string{"a", "b", "c"}},
			{Role: "Intern", Company: "Initech"},
		},
		Education:       []types.EducationEntry{{Degree: "BSc", Institution: "MIT"}},
		Skills:          make([]string, 17),
		Projects:        []types.ProjectEntry{{Name: "x"}, {Name: "y"}},
		Accomplishments: []string{"a", "b", "c"},
		Awards:          []string{"a"},
		Certifications:  []string{"a", "b"},
		Languages:       []string{"English", "German", "French"},
		Interests:       []string{"Chess"},
		Publications:    []string{"a", "b", "c"},
		VolunteerWork:   []types.VolunteerEntry{{Role: "Mentor"}},
	}

	tests := []struct {
		kind SectionKind
		want float64
	}{
		{KindSummary, 8 + 4*4},
		{KindRoles, 8 + 2*4},
		{KindExperience, 8 + (12 + 3*4) + 12},
		{KindEducation, 8 + 12},
		{KindSkills, 8 + 3*4},
		{KindProjects, 8 + 2*8},
		{KindAccomplishments, 8 + 3*4},
		{KindAwards, 8 + 6},
		{KindCertifications, 8 + 2*6},
		{KindLanguages, 8 + 4},
		{KindInterests, 8 + 4},
		{KindPublications, 8 + 3*6},
		{KindVolunteerWork, 8 + 10},
		{KindUnknown, 8 + 8},
		{SectionKind(99), 8 + 8},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, h.EstimateKind(tt.kind, doc))
		})
	}
}

func TestEstimate_SummaryHasThreeLineFloor(t *testing.T) {
	h := DefaultHeuristics()
	doc := &types.ResumeDocument{Summary: strPtr("Short.")}
	assert.Equal(t, 8.0+12.0, h.EstimateKind(KindSummary, doc))
}

func TestEstimate_CountsCharactersNotBytes(t *testing.T) {
	h := DefaultHeuristics()
	// 240 two-byte runes: 4 lines by characters, 8 by bytes
	doc := &types.ResumeDocument{Summary: strPtr(strings.Repeat("é", 240))}
	assert.Equal(t, 8.0+16.0, h.EstimateKind(KindSummary, doc))
}

func TestEstimate_SkillsAlwaysAtLeastOneLine(t *testing.T) {
	h := DefaultHeuristics()
	assert.Equal(t, 12.0, h.EstimateKind(KindSkills, &types.ResumeDocument{Skills: []string{"Go"}}))
	assert.Equal(t, 12.0, h.EstimateKind(KindSkills, &types.ResumeDocument{Skills: make([]string, 8)}))
	assert.Equal(t, 16.0, h.EstimateKind(KindSkills, &types.ResumeDocument{Skills: make([]string, 9)}))
}

func TestEstimate_AdditionalSectionsByName(t *testing.T) {
	h := DefaultHeuristics()
	doc := &types.ResumeDocument{
		AdditionalSections: []types.AdditionalSection{
			{Name: "Hobbies", Content: "Sailing"},
			{Name: "Talks", Content: strings.Repeat("t", 300)},
		},
	}

	sections := ActiveSections(doc)
	require.Len(t, sections, 2)
	assert.Equal(t, 8.0+12.0, h.Estimate(doc, sections[0]))
	assert.Equal(t, 8.0+20.0, h.Estimate(doc, sections[1]))

	// Lookup by name when the index is unknown
	assert.Equal(t, 8.0+20.0, h.Estimate(doc, Section{Kind: KindAdditional, Key: "Talks", Index: -1}))

	// Unknown name falls back to the generic estimate
	assert.Equal(t, 8.0+8.0, h.Estimate(doc, Section{Kind: KindAdditional, Key: "Missing", Index: -1}))

	assert.Equal(t, 8.0+12.0+8.0+20.0, h.EstimateKind(KindAdditional, doc))
}

func TestEstimate_NilDocument(t *testing.T) {
	h := DefaultHeuristics()
	for _, kind := range CanonicalOrder() {
		got := h.Estimate(nil, Section{Kind: kind, Key: kind.String(), Index: -1})
		assert.GreaterOrEqual(t, got, 0.0, kind.String())
	}
}

func TestEstimate_Monotonic(t *testing.T) {
	h := DefaultHeuristics()
	doc := &types.ResumeDocument{}
	prevExperience := h.EstimateKind(KindExperience, doc)
	prevSkills := h.EstimateKind(KindSkills, doc)

	for i := 0; i < 30; i++ {
		if i%3 == 0 {
			doc.Experience = append(doc.Experience, types.ExperienceEntry{Role: "r"})
		} else {
			last := &doc.Experience[len(doc.Experience)-1]
			last.Bullets = append(last.Bullets, "did a thing")
		}
		doc.Skills = append(doc.Skills, "skill")

		experience := h.EstimateKind(KindExperience, doc)
		skills := h.EstimateKind(KindSkills, doc)
		assert.GreaterOrEqual(t, experience, prevExperience)
		assert.GreaterOrEqual(t, skills, prevSkills)
		prevExperience, prevSkills = experience, skills
	}
}

func TestEstimate_IgnoresPersonalDetails(t *testing.T) {
	a := sampleDocument()
	b := sampleDocument()
	b.PersonalDetails.Email = "someone.else@example.org"
	b.PersonalDetails.Phone = "+44 20 7946 0000"

	assert.Equal(t, Fit(a, 207), Fit(b, 207))
}
