package main

import (
	"encoding/json"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/tui"
	"github.com/jonathan/resume-builder/internal/types"
)

var previewSave bool

var previewCmd = &cobra.Command{
	Use:   "preview <file.json>",
	Short: "Preview a resume in the terminal",
	Long:  "Opens an interactive terminal preview. Switch templates, toggle icons and reorder sections; with --save the chosen presentation is written back to the file.",
	Args:  cobra.ExactArgs(1),
	RunE:  runPreview,
}

func init() {
	previewCmd.Flags().BoolVarP(&previewSave, "save", "s", false, "Write presentation changes back to the file on exit")
	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, args []string) error {
	path := args[0]
	data, err := schemas.LoadResumeFile(path)
	if err != nil {
		return err
	}

	p := tea.NewProgram(tui.New(data),
		tea.WithAltScreen(),
		tea.WithContext(commandContext(cmd)),
		tea.WithOutput(cmd.OutOrStdout()),
	)
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("preview failed: %w", err)
	}

	m, ok := final.(*tui.Model)
	if !ok || !m.Modified() {
		return nil
	}
	if !previewSave {
		fmt.Fprintln(cmd.OutOrStdout(), "Changes discarded (run with --save to keep them)")
		return nil
	}
	result := m.Data()
	if err := writeResumeFile(path, &result); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", path)
	return nil
}

// writeResumeFile validates data and writes it as indented JSON.
func writeResumeFile(path string, data *types.ResumeData) error {
	if err := schemas.ValidateResume(data); err != nil {
		return err
	}
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal resume: %w", err)
	}
	if err := os.WriteFile(path, append(raw, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
