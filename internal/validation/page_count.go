package validation

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
)

// pageObject matches a PDF page dictionary but not the /Pages tree node.
var pageObject = regexp.MustCompile(`/Type\s*/Page([^s]|$)`)

// CountPDFPages counts the number of pages in a PDF file.
// It tries pdfinfo first, then ghostscript, then scans the file for page objects.
func CountPDFPages(ctx context.Context, pdfPath string) (int, error) {
	if count, err := countPagesWithPdfinfo(ctx, pdfPath); err == nil {
		return count, nil
	}

	if count, err := countPagesWithGhostscript(ctx, pdfPath); err == nil {
		return count, nil
	}

	data, err := os.ReadFile(pdfPath)
	if err != nil {
		return 0, &Error{
			Message: fmt.Sprintf("failed to read PDF: %s", pdfPath),
			Cause:   err,
		}
	}
	return CountPDFPagesBytes(data)
}

// CountPDFPagesBytes counts page objects in an uncompressed PDF object table. Chrome's
// printer writes page dictionaries in the clear, which is all this needs to handle.
func CountPDFPagesBytes(data []byte) (int, error) {
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		return 0, &Error{Message: "not a PDF document"}
	}
	count := len(pageObject.FindAllIndex(data, -1))
	if count == 0 {
		return 0, &Error{Message: "no page objects found in PDF"}
	}
	return count, nil
}

// CheckSinglePage fails with a PageCountError when the PDF at pdfPath has more than one page.
func CheckSinglePage(ctx context.Context, pdfPath string) error {
	count, err := CountPDFPages(ctx, pdfPath)
	if err != nil {
		return err
	}
	return checkPageLimit(count, 1)
}

// CheckSinglePageBytes is CheckSinglePage for an in-memory PDF.
func CheckSinglePageBytes(data []byte) error {
	count, err := CountPDFPagesBytes(data)
	if err != nil {
		return err
	}
	return checkPageLimit(count, 1)
}

func checkPageLimit(count, maxPages int) error {
	if count > maxPages {
		return &PageCountError{Pages: count, MaxPages: maxPages}
	}
	return nil
}

// countPagesWithPdfinfo uses pdfinfo to count PDF pages
func countPagesWithPdfinfo(ctx context.Context, pdfPath string) (int, error) {
	output, err := exec.CommandContext(ctx, "pdfinfo", pdfPath).Output()
	if err != nil {
		return 0, fmt.Errorf("pdfinfo command failed: %w", err)
	}

	for _, line := range strings.Split(string(output), "\n") {
		if !strings.HasPrefix(line, "Pages:") {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) >= 2 {
			if count, err := strconv.Atoi(parts[1]); err == nil {
				return count, nil
			}
		}
	}

	return 0, fmt.Errorf("could not parse page count from pdfinfo output")
}

// countPagesWithGhostscript uses ghostscript to count PDF pages
func countPagesWithGhostscript(ctx context.Context, pdfPath string) (int, error) {
	script := fmt.Sprintf("(%s) (r) file runpdfbegin pdfpagecount = quit", pdfPath)
	output, err := exec.CommandContext(ctx, "gs", "-q", "-dNODISPLAY", "-dNOSAFER", "-c", script).Output()
	if err != nil {
		return 0, fmt.Errorf("ghostscript command failed: %w", err)
	}

	outputStr := strings.TrimSpace(string(output))
	count, err := strconv.Atoi(outputStr)
	if err != nil {
		return 0, fmt.Errorf("could not parse page count from ghostscript output: %s", outputStr)
	}

	return count, nil
}
