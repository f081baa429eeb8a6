package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-layout/internal/layout"
	"github.com/jonathan/resume-layout/internal/pipeline"
)

var estimateCmd = &cobra.Command{
	Use:   "estimate <resume.json>",
	Short: "Estimate the height of each active section",
	Long:  "Lists the document's active sections in render order with their estimated heights in millimeters. No page budget is involved.",
	Args:  cobra.ExactArgs(1),
	RunE:  runEstimate,
}

func init() {
	rootCmd.AddCommand(estimateCmd)
}

type estimateOutput struct {
	Sections []layout.SectionEstimate `json:"sections"`
	TotalMm  float64                  `json:"total_mm"`
}

func runEstimate(cmd *cobra.Command, args []string) error {
	if _, err := loadConfig(cmd, nil); err != nil {
		return err
	}

	doc, err := pipeline.LoadDocument(args[0])
	if err != nil {
		return err
	}

	h := layout.DefaultHeuristics()
	estimates := h.EstimateAll(doc, layout.ActiveSections(doc))

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(estimateOutput{Sections: estimates, TotalMm: layout.TotalHeight(estimates)}); err != nil {
		return fmt.Errorf("failed to encode estimates: %w", err)
	}
	return nil
}
