// Package pipeline runs résumé documents through planning, rendering and printing.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-layout/internal/layout"
	"github.com/jonathan/resume-layout/internal/rendering"
	"github.com/jonathan/resume-layout/internal/schemas"
	"github.com/jonathan/resume-layout/internal/types"
	"github.com/jonathan/resume-layout/internal/validation"
)

// Stage names reported through ProgressCallback
const (
	StageDecode = "decode"
	StagePlan   = "plan"
	StageRender = "render"
	StagePrint  = "print"
	StageCheck  = "check"
)

// ProgressEvent represents a progress update while a document moves through the pipeline
type ProgressEvent struct {
	Stage    string `json:"stage"`
	Message  string `json:"message"`
	Document int    `json:"document"` // index within a batch, 0 for single documents
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// Format is a render output format.
type Format string

// Supported render formats
const (
	FormatHTML  Format = "html"
	FormatLaTeX Format = "latex"
)

// ParseFormat accepts "html", "latex" or "tex", case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "html":
		return FormatHTML, nil
	case "latex", "tex":
		return FormatLaTeX, nil
	default:
		return "", fmt.Errorf("unknown format: %s", s)
	}
}

// Options holds configuration for planning documents.
type Options struct {
	Variant    string           // template variant; empty selects the default
	BudgetMm   float64          // overrides the variant's page budget when > 0
	Layout     layout.Options   // heuristics and spacing rules
	OnProgress ProgressCallback // called concurrently by PlanBatch
}

// DefaultOptions plans against the default variant with the default tables.
func DefaultOptions() Options {
	return Options{
		Variant: rendering.DefaultVariant,
		Layout:  layout.DefaultOptions(),
	}
}

func (o Options) progress(doc int, stage, format string, args ...any) {
	if o.OnProgress != nil {
		o.OnProgress(ProgressEvent{Stage: stage, Message: fmt.Sprintf(format, args...), Document: doc})
	}
}

// Result is one planned document.
type Result struct {
	Variant  rendering.Variant            `json:"-"`
	Name     string                       `json:"variant"`
	Layout   layout.Layout                `json:"layout"`
	Overflow *validation.OverflowAnalysis `json:"overflow,omitempty"`
}

// DocumentError reports a résumé document that could not be read or decoded.
type DocumentError struct {
	Message string
	Cause   error
}

func (e *DocumentError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("document error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("document error: %s", e.Message)
}

func (e *DocumentError) Unwrap() error {
	return e.Cause
}

// DecodeDocument validates raw JSON against the document schema and decodes it.
func DecodeDocument(data []byte) (*types.ResumeDocument, error) {
	if err := schemas.ValidateDocument(data); err != nil {
		return nil, &DocumentError{Message: "document does not match schema", Cause: err}
	}
	var doc types.ResumeDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &DocumentError{Message: "failed to decode document", Cause: err}
	}
	return &doc, nil
}

// LoadDocument reads and decodes a résumé JSON file.
func LoadDocument(path string) (*types.ResumeDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &DocumentError{Message: fmt.Sprintf("failed to read %s", path), Cause: err}
	}
	return DecodeDocument(data)
}

// Plan fits one document to its variant's page.
func Plan(doc *types.ResumeDocument, opts Options) (*Result, error) {
	return plan(0, doc, opts)
}

func plan(index int, doc *types.ResumeDocument, opts Options) (*Result, error) {
	v, err := rendering.LookupVariant(opts.Variant)
	if err != nil {
		return nil, err
	}

	budget := v.BudgetMm()
	if opts.BudgetMm > 0 {
		budget = opts.BudgetMm
	}

	l := opts.Layout.Fit(doc, budget)
	opts.progress(index, StagePlan, "%d sections, %.1fmm of %.1fmm, spacing %dmm",
		len(l.Sections), l.TotalContentMm, l.PageBudgetMm, l.Plan.InterSectionSpacingMm)

	res := &Result{Variant: v, Name: v.Name, Layout: l}
	if l.Tight {
		res.Overflow = validation.AnalyzeOverflow(&l, opts.Layout.Heuristics)
		opts.progress(index, StagePlan, "content exceeds page by ~%.1fmm", res.Overflow.ExcessMm)
	}
	return res, nil
}

// PlanBatch plans many documents concurrently. Results keep the order of docs; the first
// error cancels the remaining work.
func PlanBatch(ctx context.Context, docs []*types.ResumeDocument, opts Options, concurrency int) ([]*Result, error) {
	results := make([]*Result, len(docs))

	g, gCtx := errgroup.WithContext(ctx)
	if concurrency > 0 {
		g.SetLimit(concurrency)
	}

	for i, doc := range docs {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			res, err := plan(i, doc, opts)
			if err != nil {
				return fmt.Errorf("document %d: %w", i, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Render renders a planned document and verifies that the output carries exactly the planned
// sections in order.
func Render(doc *types.ResumeDocument, res *Result, format Format) (string, error) {
	switch format {
	case FormatHTML:
		out, err := rendering.RenderHTML(doc, &res.Layout, res.Variant)
		if err != nil {
			return "", err
		}
		if err := validation.CheckSectionOrder(out, &res.Layout); err != nil {
			return "", err
		}
		return out, nil
	case FormatLaTeX:
		out, err := rendering.RenderLaTeX(doc, &res.Layout, res.Variant)
		if err != nil {
			return "", err
		}
		if err := validation.CheckLaTeXSectionOrder(out, &res.Layout); err != nil {
			return "", err
		}
		return out, nil
	default:
		return "", fmt.Errorf("unknown format: %s", format)
	}
}

// PDFPrinter turns rendered HTML into PDF bytes.
type PDFPrinter interface {
	PrintPDF(ctx context.Context, html string) ([]byte, error)
}

// Print renders the document as HTML, prints it, and checks the PDF is one page. On a page
// overflow the PDF is still returned alongside the *validation.PageCountError.
func Print(ctx context.Context, p PDFPrinter, doc *types.ResumeDocument, res *Result, opts Options) ([]byte, error) {
	html, err := Render(doc, res, FormatHTML)
	if err != nil {
		return nil, err
	}
	opts.progress(0, StageRender, "rendered %d bytes of HTML", len(html))

	pdf, err := p.PrintPDF(ctx, html)
	if err != nil {
		return nil, err
	}
	opts.progress(0, StagePrint, "printed %d bytes of PDF", len(pdf))

	if err := validation.CheckSinglePageBytes(pdf); err != nil {
		opts.progress(0, StageCheck, "%v", err)
		return pdf, err
	}
	return pdf, nil
}

// CompileLaTeX renders the document as LaTeX, compiles it with pdflatex in workDir, and
// checks the PDF is one page. The PDF path is returned alongside any error once pdflatex has
// written a file; an empty workDir compiles in a temporary directory.
func CompileLaTeX(ctx context.Context, doc *types.ResumeDocument, res *Result, workDir string, opts Options) (string, error) {
	tex, err := Render(doc, res, FormatLaTeX)
	if err != nil {
		return "", err
	}
	opts.progress(0, StageRender, "rendered %d bytes of LaTeX", len(tex))

	pdfPath, _, err := validation.CompileLaTeX(ctx, tex, workDir)
	if err != nil {
		return pdfPath, err
	}
	opts.progress(0, StagePrint, "compiled %s", pdfPath)

	if err := validation.CheckSinglePage(ctx, pdfPath); err != nil {
		return pdfPath, err
	}
	return pdfPath, nil
}
