package observability

import (
	"bytes"
	"testing"
	"unicode/utf8"

	"github.com/jonathan/resume-layout/internal/layout"
	"github.com/stretchr/testify/assert"
)

func TestPrintLayout(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	l := &layout.Layout{
		Sections: []layout.SectionEstimate{
			{Kind: layout.KindSummary, Key: "summary", HeightMm: 24},
			{Kind: layout.KindAdditional, Key: "Talks", HeightMm: 20},
		},
		TotalContentMm: 44,
		PageBudgetMm:   207,
		SlackMm:        163,
		Plan:           layout.SpacingPlan{InterSectionSpacingMm: 40, DistributeSlack: true},
	}

	p.PrintLayout("ada.json", l)
	output := buf.String()

	assert.Contains(t, output, "LAYOUT PLAN")
	assert.Contains(t, output, "ada.json")
	assert.Contains(t, output, "summary")
	assert.Contains(t, output, "+Talks")
	assert.Contains(t, output, "44.0mm of 207.0mm")
	assert.Contains(t, output, "40mm (space-between)")
	assert.NotContains(t, output, "TIGHT")
}

func TestPrintLayout_TruncatesLabelsByRune(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	l := &layout.Layout{
		Sections:     []layout.SectionEstimate{{Kind: layout.KindAdditional, Key: "abcdefghijkélmnopq", HeightMm: 20}},
		PageBudgetMm: 207,
	}

	p.PrintLayout("", l)
	output := buf.String()

	assert.True(t, utf8.ValidString(output))
	assert.Contains(t, output, "+abcdefghijké...")
}

func TestPrintLayout_Tight(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	l := &layout.Layout{
		Sections:       []layout.SectionEstimate{{Kind: layout.KindExperience, Key: "experience", HeightMm: 250}},
		TotalContentMm: 250,
		PageBudgetMm:   207,
		SlackMm:        -43,
		Plan:           layout.SpacingPlan{InterSectionSpacingMm: 10},
		Tight:          true,
	}

	p.PrintLayout("", l)
	assert.Contains(t, buf.String(), "TIGHT")
	assert.Contains(t, buf.String(), "43.0mm")
	assert.Contains(t, buf.String(), "flex-start")
}

func TestPrintLayout_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintLayout("x", nil)

	assert.Empty(t, buf.String())
}

func TestPrintOverflowWarning(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintOverflowWarning("ok.json", &layout.Layout{SlackMm: 10})
	assert.Empty(t, buf.String())

	p.PrintOverflowWarning("long.json", &layout.Layout{SlackMm: -5, Tight: true})
	assert.Contains(t, buf.String(), "PAGE OVERFLOW")
	assert.Contains(t, buf.String(), "long.json: estimated 5.0mm over budget.")
}

func TestBar(t *testing.T) {
	assert.Equal(t, "", bar(10, 0))
	assert.Equal(t, "█", bar(1, 207))
	assert.Len(t, []rune(bar(500, 207)), barWidth)
}
