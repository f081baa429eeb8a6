package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-layout/internal/config"
	"github.com/jonathan/resume-layout/internal/observability"
	"github.com/jonathan/resume-layout/internal/pipeline"
)

var renderCmd = &cobra.Command{
	Use:   "render <resume.json>",
	Short: "Render a résumé as HTML or LaTeX",
	Long:  "Plans the document and renders it with the chosen template. The rendered output is checked to contain exactly the planned sections in order.",
	Args:  cobra.ExactArgs(1),
	RunE:  runRender,
}

var (
	renderFormat   string
	renderTemplate string
	renderBudget   float64
	renderOutput   string
)

func init() {
	renderCmd.Flags().StringVarP(&renderFormat, "format", "f", "", "Output format (html, latex)")
	renderCmd.Flags().StringVarP(&renderTemplate, "template", "t", "", "Template variant (classic, banner)")
	renderCmd.Flags().Float64Var(&renderBudget, "budget", 0, "Page budget in mm (overrides the template's budget)")
	renderCmd.Flags().StringVarP(&renderOutput, "out", "o", "", "Output file (default stdout)")

	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, func(cfg *config.Config) {
		if cmd.Flags().Changed("format") {
			cfg.Format = renderFormat
		}
		if cmd.Flags().Changed("template") {
			cfg.Template = renderTemplate
		}
		if cmd.Flags().Changed("budget") {
			cfg.PageBudgetMm = renderBudget
		}
		if cmd.Flags().Changed("out") {
			cfg.Output = renderOutput
		}
	})
	if err != nil {
		return err
	}

	logger := newLogger(cfg)
	defer func() { _ = logger.Sync() }()

	format, err := pipeline.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}

	doc, err := pipeline.LoadDocument(args[0])
	if err != nil {
		return err
	}
	res, err := pipeline.Plan(doc, optionsFromConfig(cfg))
	if err != nil {
		return err
	}
	if res.Layout.Tight {
		logger.Warn("content exceeds page budget", zap.Float64("overflow_mm", res.Layout.Overflow()))
		observability.NewPrinter(cmd.ErrOrStderr()).PrintOverflowWarning(args[0], &res.Layout)
	}

	out, err := pipeline.Render(doc, res, format)
	if err != nil {
		return err
	}

	if err := writeOutput(cmd.OutOrStdout(), cfg.Output, []byte(out)); err != nil {
		return err
	}
	logger.Debug("rendered", zap.String("format", string(format)), zap.Int("bytes", len(out)))
	return nil
}

// writeOutput writes data to path, or to stdout when path is empty.
func writeOutput(stdout io.Writer, path string, data []byte) error {
	if path == "" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
