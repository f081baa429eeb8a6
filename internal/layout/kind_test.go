package layout

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalOrder(t *testing.T) {
	names := make([]string, 0)
	for _, k := range CanonicalOrder() {
		names = append(names, k.String())
	}
	assert.Equal(t, []string{
		"summary", "roles", "experience", "education", "skills", "projects",
		"accomplishments", "awards", "certifications", "languages", "interests",
		"publications", "volunteerWork", "additional",
	}, names)
}

func TestCanonicalOrder_ReturnsCopy(t *testing.T) {
	order := CanonicalOrder()
	order[0] = KindUnknown
	assert.Equal(t, KindSummary, CanonicalOrder()[0])
}

func TestParseSectionKind(t *testing.T) {
	for _, k := range CanonicalOrder() {
		assert.Equal(t, k, ParseSectionKind(k.String()))
	}
	assert.Equal(t, KindUnknown, ParseSectionKind("hobbies"))
	assert.Equal(t, KindUnknown, ParseSectionKind("unknown"))
	assert.Equal(t, KindUnknown, ParseSectionKind(""))
}

func TestSectionKind_JSON(t *testing.T) {
	data, err := json.Marshal(SectionEstimate{Kind: KindVolunteerWork, Key: "volunteerWork", HeightMm: 18})
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"volunteerWork","key":"volunteerWork","height_mm":18}`, string(data))

	var decoded SectionEstimate
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, KindVolunteerWork, decoded.Kind)
}

func TestSectionKind_Title(t *testing.T) {
	assert.Equal(t, "Volunteer Work", KindVolunteerWork.Title())
	assert.Equal(t, "", KindAdditional.Title())
}
