package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-layout/internal/config"
	"github.com/jonathan/resume-layout/internal/db"
	"github.com/jonathan/resume-layout/internal/observability"
	"github.com/jonathan/resume-layout/internal/pipeline"
	"github.com/jonathan/resume-layout/internal/types"
)

var planCmd = &cobra.Command{
	Use:   "plan <resume.json>...",
	Short: "Plan section spacing for one or more résumé documents",
	Long: `Estimates every active section's height and chooses the inter-section spacing that fits
the content onto one A4 page. Documents are planned in parallel and printed as JSON in argument
order. With --verbose a layout box is printed instead.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPlan,
}

var (
	planTemplate    string
	planBudget      float64
	planFailOnTight bool
	planConcurrency int
	planRecord      bool
	planDatabaseURL string
)

func init() {
	planCmd.Flags().StringVarP(&planTemplate, "template", "t", "", "Template variant (classic, banner)")
	planCmd.Flags().Float64Var(&planBudget, "budget", 0, "Page budget in mm (overrides the template's budget)")
	planCmd.Flags().BoolVar(&planFailOnTight, "fail-on-tight", false, "Exit with an error when any layout is estimated to overflow")
	planCmd.Flags().IntVar(&planConcurrency, "concurrency", 0, "Documents planned in parallel")
	planCmd.Flags().BoolVar(&planRecord, "record", false, "Record each plan in the layout run log (requires a database)")
	planCmd.Flags().StringVar(&planDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	rootCmd.AddCommand(planCmd)
}

// planOutput is one planned file in the JSON output.
type planOutput struct {
	File string `json:"file"`
	*pipeline.Result
}

// TightError reports documents whose content is estimated to overflow the page.
type TightError struct {
	Files []string
}

func (e *TightError) Error() string {
	return fmt.Sprintf("%d document(s) exceed the page budget: %v", len(e.Files), e.Files)
}

func runPlan(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, func(cfg *config.Config) {
		if cmd.Flags().Changed("template") {
			cfg.Template = planTemplate
		}
		if cmd.Flags().Changed("budget") {
			cfg.PageBudgetMm = planBudget
		}
		if cmd.Flags().Changed("fail-on-tight") {
			cfg.FailOnTight = planFailOnTight
		}
		if cmd.Flags().Changed("concurrency") {
			cfg.Concurrency = planConcurrency
		}
		if cmd.Flags().Changed("db-url") {
			cfg.DatabaseURL = planDatabaseURL
		}
	})
	if err != nil {
		return err
	}

	logger := newLogger(cfg)
	defer func() { _ = logger.Sync() }()

	docs := make([]*types.ResumeDocument, len(args))
	for i, path := range args {
		doc, err := pipeline.LoadDocument(path)
		if err != nil {
			return err
		}
		docs[i] = doc
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	opts := optionsFromConfig(cfg)
	opts.OnProgress = progressLogger(logger, args)
	results, err := pipeline.PlanBatch(ctx, docs, opts, cfg.Concurrency)
	if err != nil {
		return err
	}

	if planRecord {
		if err := recordRuns(ctx, cfg, logger, results); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if cfg.Verbose {
		printLayouts(out, args, results)
	} else if err := writePlanJSON(out, args, results); err != nil {
		return err
	}

	if cfg.FailOnTight {
		var tight []string
		for i, res := range results {
			if res.Layout.Tight {
				tight = append(tight, args[i])
			}
		}
		if len(tight) > 0 {
			return &TightError{Files: tight}
		}
	}
	return nil
}

// optionsFromConfig maps resolved configuration onto planning options.
func optionsFromConfig(cfg config.Config) pipeline.Options {
	opts := pipeline.DefaultOptions()
	opts.Variant = cfg.Template
	opts.BudgetMm = cfg.PageBudgetMm
	return opts
}

// progressLogger logs pipeline progress at debug level, naming the file each event belongs to.
func progressLogger(logger *zap.Logger, files []string) pipeline.ProgressCallback {
	return func(event pipeline.ProgressEvent) {
		file := ""
		if event.Document < len(files) {
			file = files[event.Document]
		}
		logger.Debug(event.Message, zap.String("stage", event.Stage), zap.String("file", file))
	}
}

func writePlanJSON(w io.Writer, files []string, results []*pipeline.Result) error {
	out := make([]planOutput, len(results))
	for i, res := range results {
		out[i] = planOutput{File: files[i], Result: res}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("failed to encode plan: %w", err)
	}
	return nil
}

func printLayouts(w io.Writer, files []string, results []*pipeline.Result) {
	printer := observability.NewPrinter(w)
	for i, res := range results {
		printer.PrintLayout(fmt.Sprintf("%s (%s)", files[i], res.Name), &res.Layout)
		printer.PrintOverflowWarning(files[i], &res.Layout)
	}
}

// recordRuns writes each plan to the layout run log.
func recordRuns(ctx context.Context, cfg config.Config, logger *zap.Logger, results []*pipeline.Result) error {
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("--record requires DATABASE_URL or --db-url")
	}
	database, err := db.Connect(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	if err := database.EnsureSchema(ctx); err != nil {
		return err
	}
	for _, res := range results {
		run := db.NewLayoutRun(res.Name, db.SourceCLI, res.Layout)
		if err := database.SaveLayoutRun(ctx, &run); err != nil {
			return err
		}
		logger.Info("recorded layout run", zap.String("id", run.ID.String()))
	}
	return nil
}
