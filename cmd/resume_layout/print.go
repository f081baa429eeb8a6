package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-layout/internal/browser"
	"github.com/jonathan/resume-layout/internal/config"
	"github.com/jonathan/resume-layout/internal/pipeline"
	"github.com/jonathan/resume-layout/internal/types"
	"github.com/jonathan/resume-layout/internal/validation"
)

var printCmd = &cobra.Command{
	Use:   "print <resume.json>",
	Short: "Print a résumé to PDF",
	Long: `Renders the document and prints it to an A4 PDF, either through headless Chrome (HTML
template) or pdflatex (LaTeX template). The PDF is written even when it runs past one page;
--check turns that into an error.`,
	Args: cobra.ExactArgs(1),
	RunE: runPrint,
}

var (
	printEngine     string
	printTemplate   string
	printBudget     float64
	printOutput     string
	printCheck      bool
	printChromePath string
	printTimeout    string
)

func init() {
	printCmd.Flags().StringVar(&printEngine, "engine", "chrome", "PDF engine (chrome, latex)")
	printCmd.Flags().StringVarP(&printTemplate, "template", "t", "", "Template variant (classic, banner)")
	printCmd.Flags().Float64Var(&printBudget, "budget", 0, "Page budget in mm (overrides the template's budget)")
	printCmd.Flags().StringVarP(&printOutput, "out", "o", "resume.pdf", "Output PDF path")
	printCmd.Flags().BoolVar(&printCheck, "check", false, "Fail when the PDF has more than one page")
	printCmd.Flags().StringVar(&printChromePath, "chrome-path", "", "Chrome/Chromium binary (defaults to CHROME_PATH env var)")
	printCmd.Flags().StringVar(&printTimeout, "timeout", "", "Print timeout, e.g. 45s")

	rootCmd.AddCommand(printCmd)
}

func runPrint(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, func(cfg *config.Config) {
		if cmd.Flags().Changed("template") {
			cfg.Template = printTemplate
		}
		if cmd.Flags().Changed("budget") {
			cfg.PageBudgetMm = printBudget
		}
		if cmd.Flags().Changed("chrome-path") {
			cfg.ChromePath = printChromePath
		}
		if cmd.Flags().Changed("timeout") {
			cfg.PrintTimeout = printTimeout
		}
	})
	if err != nil {
		return err
	}
	if printEngine != "chrome" && printEngine != "latex" {
		return fmt.Errorf("unknown engine: %s (expected chrome or latex)", printEngine)
	}

	logger := newLogger(cfg)
	defer func() { _ = logger.Sync() }()

	doc, err := pipeline.LoadDocument(args[0])
	if err != nil {
		return err
	}
	opts := optionsFromConfig(cfg)
	opts.OnProgress = progressLogger(logger, args)
	res, err := pipeline.Plan(doc, opts)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	switch printEngine {
	case "latex":
		err = printWithLaTeX(ctx, doc, res, opts)
	default:
		err = printWithChrome(ctx, cfg, logger, doc, res, opts)
	}
	checkErr, err := splitPageCountError(err)
	if err != nil {
		return err
	}

	if checkErr != nil {
		logger.Warn("printed PDF overflows one page", zap.Error(checkErr))
		if printCheck {
			return checkErr
		}
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", printOutput)
	return nil
}

// printWithChrome prints through headless Chrome. The PDF is written before a page count
// error is returned.
func printWithChrome(ctx context.Context, cfg config.Config, logger *zap.Logger, doc *types.ResumeDocument, res *pipeline.Result, opts pipeline.Options) error {
	printer := browser.NewPrinter(browser.Options{
		ChromePath: cfg.ChromePath,
		Timeout:    cfg.PrintTimeoutDuration(),
		Logger:     logger,
	})

	pdf, err := pipeline.Print(ctx, printer, doc, res, opts)
	checkErr, err := splitPageCountError(err)
	if err != nil {
		return err
	}
	if err := writePDF(pdf); err != nil {
		return err
	}
	if checkErr != nil {
		return checkErr
	}
	return nil
}

// printWithLaTeX compiles with pdflatex in a temporary directory and copies the PDF out.
func printWithLaTeX(ctx context.Context, doc *types.ResumeDocument, res *pipeline.Result, opts pipeline.Options) error {
	pdfPath, err := pipeline.CompileLaTeX(ctx, doc, res, "", opts)
	if pdfPath != "" {
		defer func() { _ = validation.CleanupCompilationArtifacts(filepath.Dir(pdfPath)) }()
	}
	checkErr, err := splitPageCountError(err)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(pdfPath)
	if err != nil {
		return fmt.Errorf("failed to read compiled PDF: %w", err)
	}
	if err := writePDF(data); err != nil {
		return err
	}
	if checkErr != nil {
		return checkErr
	}
	return nil
}

func writePDF(data []byte) error {
	if err := os.MkdirAll(filepath.Dir(printOutput), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(printOutput, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", printOutput, err)
	}
	return nil
}

// splitPageCountError separates a page overflow, which still yields a PDF, from real failures.
func splitPageCountError(err error) (*validation.PageCountError, error) {
	var pce *validation.PageCountError
	if errors.As(err, &pce) {
		return pce, nil
	}
	return nil, err
}
