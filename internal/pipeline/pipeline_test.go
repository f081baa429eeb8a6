package pipeline

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/jonathan/resume-layout/internal/layout"
	"github.com/jonathan/resume-layout/internal/rendering"
	"github.com/jonathan/resume-layout/internal/types"
	"github.com/jonathan/resume-layout/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleJSON = `{
  "personalDetails": {"name": "Grace Hopper", "email": "grace@example.com"},
  "summary": "Pioneer of machine-independent programming languages.",
  "experience": [
    {"role": "Senior Programmer", "company": "Eckert-Mauchly", "years": "1949-1952",
     "bullets": ["Built the A-0 compiler", "Led UNIVAC software"]}
  ],
  "education": [{"degree": "PhD Mathematics", "institution": "Yale", "years": "1934"}],
  "skills": ["COBOL", "FLOW-MATIC"]
}`

func sampleDocument(t *testing.T) *types.ResumeDocument {
	t.Helper()
	doc, err := DecodeDocument([]byte(sampleJSON))
	require.NoError(t, err)
	return doc
}

func TestDecodeDocument(t *testing.T) {
	doc := sampleDocument(t)

	assert.Equal(t, "Grace Hopper", doc.PersonalDetails.Name)
	require.Len(t, doc.Experience, 1)
	assert.Equal(t, []string{"Built the A-0 compiler", "Led UNIVAC software"}, doc.Experience[0].Bullets)
}

func TestDecodeDocument_SchemaViolation(t *testing.T) {
	_, err := DecodeDocument([]byte(`{"skills": "Go"}`))

	var docErr *DocumentError
	require.True(t, errors.As(err, &docErr))
	assert.Contains(t, err.Error(), "document does not match schema")
}

func TestLoadDocument_Missing(t *testing.T) {
	_, err := LoadDocument("/nonexistent/resume.json")

	var docErr *DocumentError
	assert.True(t, errors.As(err, &docErr))
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "", want: FormatHTML},
		{in: "HTML", want: FormatHTML},
		{in: "latex", want: FormatLaTeX},
		{in: "tex", want: FormatLaTeX},
		{in: "pdf", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPlan_UsesVariantBudget(t *testing.T) {
	doc := sampleDocument(t)

	classic, err := Plan(doc, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "classic", classic.Name)
	assert.Equal(t, 207.0, classic.Layout.PageBudgetMm)

	opts := DefaultOptions()
	opts.Variant = "banner"
	banner, err := Plan(doc, opts)
	require.NoError(t, err)
	assert.Equal(t, 197.0, banner.Layout.PageBudgetMm)
	assert.Equal(t, classic.Layout.TotalContentMm, banner.Layout.TotalContentMm)
}

func TestPlan_BudgetOverride(t *testing.T) {
	opts := DefaultOptions()
	opts.BudgetMm = 50

	res, err := Plan(sampleDocument(t), opts)
	require.NoError(t, err)

	assert.Equal(t, 50.0, res.Layout.PageBudgetMm)
	assert.True(t, res.Layout.Tight)
	require.NotNil(t, res.Overflow)
	assert.True(t, res.Overflow.MustTrim)
	assert.InDelta(t, res.Layout.TotalContentMm-50, res.Overflow.ExcessMm, 1e-9)
}

func TestPlan_NotTightHasNoOverflow(t *testing.T) {
	res, err := Plan(sampleDocument(t), DefaultOptions())
	require.NoError(t, err)
	assert.False(t, res.Layout.Tight)
	assert.Nil(t, res.Overflow)
}

func TestPlan_UnknownVariant(t *testing.T) {
	opts := DefaultOptions()
	opts.Variant = "poster"

	_, err := Plan(sampleDocument(t), opts)

	var tmplErr *rendering.TemplateError
	assert.True(t, errors.As(err, &tmplErr))
}

func TestPlan_ReportsProgress(t *testing.T) {
	var events []ProgressEvent
	opts := DefaultOptions()
	opts.BudgetMm = 10
	opts.OnProgress = func(e ProgressEvent) { events = append(events, e) }

	_, err := Plan(sampleDocument(t), opts)
	require.NoError(t, err)

	require.Len(t, events, 2)
	assert.Equal(t, StagePlan, events[0].Stage)
	assert.Contains(t, events[1].Message, "exceeds page")
}

func TestPlanBatch_KeepsOrder(t *testing.T) {
	docs := make([]*types.ResumeDocument, 0, 20)
	for i := 0; i < 20; i++ {
		doc := &types.ResumeDocument{Skills: make([]string, i+1)}
		for j := range doc.Skills {
			doc.Skills[j] = "skill"
		}
		docs = append(docs, doc)
	}

	var (
		mu    sync.Mutex
		count int
	)
	opts := DefaultOptions()
	opts.OnProgress = func(ProgressEvent) {
		mu.Lock()
		count++
		mu.Unlock()
	}

	results, err := PlanBatch(context.Background(), docs, opts, 4)
	require.NoError(t, err)
	require.Len(t, results, len(docs))

	h := layout.DefaultHeuristics()
	for i, res := range results {
		want := h.EstimateKind(layout.KindSkills, docs[i])
		assert.Equal(t, want, res.Layout.TotalContentMm, "document %d", i)
	}
	assert.Equal(t, len(docs), count)
}

func TestPlanBatch_Error(t *testing.T) {
	opts := DefaultOptions()
	opts.Variant = "poster"

	_, err := PlanBatch(context.Background(), []*types.ResumeDocument{{}, {}}, opts, 0)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "document")
}

func TestPlanBatch_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := PlanBatch(ctx, []*types.ResumeDocument{{}}, DefaultOptions(), 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPlanBatch_Empty(t *testing.T) {
	results, err := PlanBatch(context.Background(), nil, DefaultOptions(), 2)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestRender(t *testing.T) {
	doc := sampleDocument(t)
	res, err := Plan(doc, DefaultOptions())
	require.NoError(t, err)

	html, err := Render(doc, res, FormatHTML)
	require.NoError(t, err)
	assert.Contains(t, html, `data-section="experience"`)

	tex, err := Render(doc, res, FormatLaTeX)
	require.NoError(t, err)
	assert.Contains(t, tex, "% section: experience")

	_, err = Render(doc, res, Format("pdf"))
	assert.Error(t, err)
}

type fakePrinter struct {
	pdf  []byte
	err  error
	html string
}

func (p *fakePrinter) PrintPDF(_ context.Context, html string) ([]byte, error) {
	p.html = html
	return p.pdf, p.err
}

const onePagePDF = "%PDF-1.4\n3 0 obj << /Type /Page /Parent 2 0 R >> endobj\n%%EOF\n"

func TestPrint(t *testing.T) {
	doc := sampleDocument(t)
	res, err := Plan(doc, DefaultOptions())
	require.NoError(t, err)

	p := &fakePrinter{pdf: []byte(onePagePDF)}
	pdf, err := Print(context.Background(), p, doc, res, DefaultOptions())

	require.NoError(t, err)
	assert.Equal(t, []byte(onePagePDF), pdf)
	assert.True(t, strings.Contains(p.html, "Grace Hopper"))
}

func TestPrint_PageOverflow(t *testing.T) {
	doc := sampleDocument(t)
	res, err := Plan(doc, DefaultOptions())
	require.NoError(t, err)

	twoPages := onePagePDF + "4 0 obj << /Type /Page /Parent 2 0 R >> endobj\n"
	pdf, err := Print(context.Background(), &fakePrinter{pdf: []byte(twoPages)}, doc, res, DefaultOptions())

	var pageErr *validation.PageCountError
	require.True(t, errors.As(err, &pageErr))
	assert.Equal(t, 2, pageErr.Pages)
	assert.NotEmpty(t, pdf)
}

func TestPrint_PrinterError(t *testing.T) {
	doc := sampleDocument(t)
	res, err := Plan(doc, DefaultOptions())
	require.NoError(t, err)

	boom := errors.New("chrome crashed")
	_, err = Print(context.Background(), &fakePrinter{err: boom}, doc, res, DefaultOptions())
	assert.ErrorIs(t, err, boom)
}
