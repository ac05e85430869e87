package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/analysis"
	"github.com/jonathan/resume-builder/internal/observability"
)

var suggestionsJSON bool

var suggestionsCmd = &cobra.Command{
	Use:   "suggestions <file.json>",
	Short: "Print a job match analysis",
	Long:  "Reads a compatibility analysis result (optionally wrapped in a markdown code fence) and prints its score and suggestions grouped by category.",
	Args:  cobra.ExactArgs(1),
	RunE:  runSuggestions,
}

func init() {
	suggestionsCmd.Flags().BoolVar(&suggestionsJSON, "json", false, "Print the grouped report as JSON")
	rootCmd.AddCommand(suggestionsCmd)
}

func runSuggestions(cmd *cobra.Command, args []string) error {
	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}

	result, err := analysis.Decode(raw)
	if err != nil {
		return err
	}
	report := analysis.Present(result)

	if suggestionsJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintReport(&report)
	return nil
}
