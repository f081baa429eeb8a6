package browser

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPrinter_Defaults(t *testing.T) {
	t.Setenv("CHROME_PATH", "")

	p := NewPrinter(Options{})

	assert.Equal(t, DefaultTimeout, p.Timeout())
	assert.Empty(t, p.ChromePath())
	assert.NotNil(t, p.logger)
}

func TestNewPrinter_ChromePathFromEnv(t *testing.T) {
	t.Setenv("CHROME_PATH", "/opt/chrome/chrome")

	assert.Equal(t, "/opt/chrome/chrome", NewPrinter(Options{}).ChromePath())
	assert.Equal(t, "/usr/bin/chromium", NewPrinter(Options{ChromePath: "/usr/bin/chromium"}).ChromePath())
}

func TestNewPrinter_Timeout(t *testing.T) {
	assert.Equal(t, 5*time.Second, NewPrinter(Options{Timeout: 5 * time.Second}).Timeout())
	assert.Equal(t, DefaultTimeout, NewPrinter(Options{Timeout: -time.Second}).Timeout())
}

func TestAllocatorOptions_AddsExecPath(t *testing.T) {
	withoutPath := (&Printer{}).allocatorOptions()
	withPath := (&Printer{chromePath: "/usr/bin/chromium"}).allocatorOptions()

	assert.Len(t, withPath, len(withoutPath)+1)
}

func TestPrintPDF_EmptyHTML(t *testing.T) {
	_, err := NewPrinter(Options{}).PrintPDF(context.Background(), "")

	var printErr *PrintError
	require.True(t, errors.As(err, &printErr))
	assert.Equal(t, "print error: empty HTML document", err.Error())
}

func TestPrintPDF_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewPrinter(Options{}).PrintPDF(ctx, "<html><body>x</body></html>")

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
