// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-builder/internal/analysis"
	"github.com/jonathan/resume-builder/internal/sections"
	"github.com/jonathan/resume-builder/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
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

	lines := strings.Split(strings.TrimRight(content, "\n"), "\n")
	for _, line := range lines {
		// Truncate long lines
		if r := []rune(line); len(r) > boxWidth-4 {
			line = string(r[:boxWidth-7]) + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

func writeList(sb *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(title + ":\n")
	count := min(len(items), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
	}
	if len(items) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-maxItemsToShow))
	}
	sb.WriteString("\n")
}

// PrintResumeOverview outputs which sections a template will show.
func (p *Printer) PrintResumeOverview(data *types.ResumeData) {
	if data == nil {
		return
	}

	var sb strings.Builder
	pres := data.EffectivePresentation()
	name := data.PersonalDetails.FullName
	if name == "" {
		name = "(unnamed)"
	}
	sb.WriteString(fmt.Sprintf("Name:      %s\n", name))
	sb.WriteString(fmt.Sprintf("Template:  %s\n", pres.Template))
	sb.WriteString(fmt.Sprintf("Font:      %s\n", pres.FontFamily))
	sb.WriteString(fmt.Sprintf("Icons:     %t\n", pres.IconsVisible()))
	sb.WriteString("\n")

	visible := sections.Visible(data, data.SectionOrder)
	sb.WriteString(fmt.Sprintf("Sections (%d shown):\n", len(visible)))
	for i, tok := range visible {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, sections.Title(tok)))
	}

	p.printBox("RESUME OVERVIEW", sb.String())
}

// PrintReport outputs a human-readable analysis report. Missing-text
// suggestions show the warning, never the sentinel.
func (p *Printer) PrintReport(rep *analysis.Report) {
	if rep == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Score:     %.0f → %.0f\n", rep.CurrentScore, rep.PotentialScore))
	sb.WriteString(fmt.Sprintf("Callback:  %.0f%% → %.0f%%\n", rep.CurrentCallback, rep.PotentialCallback))
	if rep.Confidence != nil {
		sb.WriteString(fmt.Sprintf("Confidence: %.0f%%\n", *rep.Confidence*100))
	}
	sb.WriteString("\n")

	writeList(&sb, "Top Required Keywords", rep.TopRequiredKeywords)
	writeList(&sb, "Missing Keywords", rep.MissingKeywords)

	for _, w := range rep.Warnings {
		sb.WriteString(fmt.Sprintf("⚠ %s\n", w))
	}
	p.printBox("JOB MATCH ANALYSIS", sb.String())

	for _, g := range rep.Groups {
		if len(g.Cards) == 0 {
			continue
		}
		var gb strings.Builder
		for i, c := range g.Cards {
			if i > 0 {
				gb.WriteString("\n")
			}
			gb.WriteString(fmt.Sprintf("%d. %s\n", i+1, c.Suggestion))
			gb.WriteString(fmt.Sprintf("   %s: %s\n", c.OriginalLabel, c.OriginalText))
			gb.WriteString(fmt.Sprintf("   %s: %s\n", c.ImprovedLabel, c.ImprovedText))
		}
		p.printBox(fmt.Sprintf("%s SUGGESTIONS (%d)", strings.ToUpper(g.Title), len(g.Cards)), gb.String())
	}
}
