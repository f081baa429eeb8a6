//go:build integration

package browser

import (
	"context"
	"testing"

	"github.com/jonathan/resume-layout/internal/layout"
	"github.com/jonathan/resume-layout/internal/rendering"
	"github.com/jonathan/resume-layout/internal/types"
	"github.com/jonathan/resume-layout/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintPDF_SinglePage(t *testing.T) {
	summary := "Distributed systems engineer."
	doc := &types.ResumeDocument{
		PersonalDetails: types.PersonalDetails{Name: "Integration Test"},
		Summary:         &summary,
		Skills:          []string{"Go", "PostgreSQL"},
	}
	v, err := rendering.LookupVariant(rendering.DefaultVariant)
	require.NoError(t, err)
	l := layout.Fit(doc, v.BudgetMm())

	html, err := rendering.RenderHTML(doc, &l, v)
	require.NoError(t, err)

	pdf, err := NewPrinter(Options{}).PrintPDF(context.Background(), html)
	require.NoError(t, err)

	assert.True(t, len(pdf) > 0)
	assert.NoError(t, validation.CheckSinglePageBytes(pdf))
}
