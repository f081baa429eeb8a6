package validation

import (
	"bufio"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jonathan/resume-layout/internal/layout"
)

// latexSectionMarker matches the "% section: <kind>" comment the LaTeX templates emit.
var latexSectionMarker = regexp.MustCompile(`^\s*%\s*section:\s*(\S+)\s*$`)

// RenderedSections returns the data-section attribute of every rendered section, in document order.
func RenderedSections(htmlContent string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, &Error{
			Message: "failed to parse HTML",
			Cause:   err,
		}
	}

	sections := make([]string, 0)
	doc.Find("[data-section]").Each(func(_ int, s *goquery.Selection) {
		if kind, ok := s.Attr("data-section"); ok {
			sections = append(sections, kind)
		}
	})
	return sections, nil
}

// RenderedLaTeXSections returns the section markers of a rendered LaTeX document, in order.
func RenderedLaTeXSections(latexContent string) []string {
	sections := make([]string, 0)
	scanner := bufio.NewScanner(strings.NewReader(latexContent))
	for scanner.Scan() {
		if m := latexSectionMarker.FindStringSubmatch(scanner.Text()); m != nil {
			sections = append(sections, m[1])
		}
	}
	return sections
}

// CheckSectionOrder verifies that rendered HTML contains exactly the layout's sections in the
// layout's order.
func CheckSectionOrder(htmlContent string, l *layout.Layout) error {
	got, err := RenderedSections(htmlContent)
	if err != nil {
		return err
	}
	return compareOrder(expectedSections(l), got)
}

// CheckLaTeXSectionOrder is CheckSectionOrder for rendered LaTeX.
func CheckLaTeXSectionOrder(latexContent string, l *layout.Layout) error {
	return compareOrder(expectedSections(l), RenderedLaTeXSections(latexContent))
}

func expectedSections(l *layout.Layout) []string {
	if l == nil {
		return []string{}
	}
	expected := make([]string, len(l.Sections))
	for i, s := range l.Sections {
		expected[i] = s.Kind.String()
	}
	return expected
}

func compareOrder(expected, got []string) error {
	if len(expected) != len(got) {
		return &OrderError{Expected: expected, Got: got}
	}
	for i := range expected {
		if expected[i] != got[i] {
			return &OrderError{Expected: expected, Got: got}
		}
	}
	return nil
}
