// Package observability provides logging and formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-layout/internal/layout"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// barWidth is the widest bar drawn for a section height
	barWidth = 24
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len([]rune(line)) > boxWidth-4 {
			line = string([]rune(line)[:boxWidth-7]) + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintLayout outputs per-section heights, the page budget and the spacing plan.
func (p *Printer) PrintLayout(name string, l *layout.Layout) {
	if l == nil {
		return
	}

	var sb strings.Builder
	if name != "" {
		sb.WriteString(fmt.Sprintf("Document: %s\n\n", name))
	}

	if len(l.Sections) == 0 {
		sb.WriteString("No active sections\n")
	}
	for _, s := range l.Sections {
		label := s.Kind.String()
		if s.Kind == layout.KindAdditional {
			label = "+" + s.Key
		}
		if runes := []rune(label); len(runes) > 16 {
			label = string(runes[:13]) + "..."
		}
		sb.WriteString(fmt.Sprintf("%-16s %6.1fmm %s\n", label, s.HeightMm, bar(s.HeightMm, l.PageBudgetMm)))
	}

	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Content:  %.1fmm of %.1fmm\n", l.TotalContentMm, l.PageBudgetMm))
	sb.WriteString(fmt.Sprintf("Slack:    %.1fmm\n", l.SlackMm))
	sb.WriteString(fmt.Sprintf("Spacing:  %dmm (%s)", l.Plan.InterSectionSpacingMm, l.Plan.Justify()))
	if l.Tight {
		sb.WriteString(fmt.Sprintf("\n⚠ TIGHT: content exceeds page by ~%.1fmm", l.Overflow()))
	}

	p.printBox("LAYOUT PLAN", sb.String())
}

// PrintOverflowWarning prints a one-box warning for a tight layout.
func (p *Printer) PrintOverflowWarning(name string, l *layout.Layout) {
	if l == nil || !l.Tight {
		return
	}
	p.printBox("⚠ PAGE OVERFLOW", fmt.Sprintf("%s: estimated %.1fmm over budget.\nThe rendered page may be cut off.", name, l.Overflow()))
}

func bar(height, budget float64) string {
	if budget <= 0 || height <= 0 {
		return ""
	}
	n := int(height / budget * barWidth)
	if n < 1 {
		n = 1
	}
	if n > barWidth {
		n = barWidth
	}
	return strings.Repeat("█", n)
}
