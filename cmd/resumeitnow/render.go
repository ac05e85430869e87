package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/debounce"
	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/types"
)

var renderCmd = &cobra.Command{
	Use:   "render <file.json>",
	Short: "Render a resume JSON file",
	Long:  "Renders a resume document with one of the templates as HTML, LaTeX or plain text. With --watch the output is rebuilt whenever the file changes.",
	Args:  cobra.ExactArgs(1),
	RunE:  runRender,
}

var (
	renderTemplate string
	renderFormat   string
	renderOutFile  string
	renderWatch    bool
	renderVerbose  bool
)

// watchDelay is the quiet period after the last file event before re-rendering
const watchDelay = 200 * time.Millisecond

func init() {
	renderCmd.Flags().StringVarP(&renderTemplate, "template", "t", "", "Template name (default: the file's template, then the configured default)")
	renderCmd.Flags().StringVarP(&renderFormat, "format", "f", "html", "Output format: html, latex or text")
	renderCmd.Flags().StringVarP(&renderOutFile, "out", "o", "", "Output file (default: stdout)")
	renderCmd.Flags().BoolVarP(&renderWatch, "watch", "w", false, "Re-render when the input file changes")
	renderCmd.Flags().BoolVarP(&renderVerbose, "verbose", "v", false, "Print a resume overview to stderr")
	rootCmd.AddCommand(renderCmd)
}

// renderJob is one fully resolved render request
type renderJob struct {
	input    string
	output   string
	template types.TemplateName
	format   export.Format
	opts     export.Options
	verbose  bool
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	format, err := export.ParseFormat(renderFormat)
	if err != nil {
		return err
	}

	job := renderJob{
		input:   args[0],
		output:  renderOutFile,
		format:  format,
		opts:    export.Options{LaTeXTemplate: cfg.LaTeXTemplate},
		verbose: renderVerbose || cfg.Verbose,
	}
	if renderTemplate != "" {
		if job.template, err = types.ParseTemplateName(renderTemplate); err != nil {
			return err
		}
	}
	fallback := cfg.Template()

	if err := job.run(cmd.OutOrStdout(), cmd.ErrOrStderr(), fallback); err != nil {
		return err
	}
	if !renderWatch {
		return nil
	}
	if job.output == "" {
		return fmt.Errorf("--watch requires --out")
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(cmd.ErrOrStderr(), "Watching %s (Ctrl+C to stop)\n", job.input)
	return watchFile(ctx, job.input, watchDelay, func() {
		if err := job.run(cmd.OutOrStdout(), cmd.ErrOrStderr(), fallback); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		}
	})
}

// run loads, renders and writes the document once.
func (j renderJob) run(stdout, stderr io.Writer, fallback types.TemplateName) error {
	data, err := schemas.LoadResumeFile(j.input)
	if err != nil {
		return err
	}

	name := j.template
	if name == "" {
		name = data.Template
	}
	if !name.Valid() {
		name = fallback
	}

	if j.verbose {
		observability.NewPrinter(stderr).PrintResumeOverview(data)
	}

	doc, err := export.ExportWithOptions(data, name, j.format, j.opts)
	if err != nil {
		return err
	}

	if j.output == "" {
		_, err := stdout.Write(doc.Body)
		return err
	}
	if err := os.WriteFile(j.output, doc.Body, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	fmt.Fprintf(stdout, "Rendered %s with %s to %s (%d bytes)\n", filepath.Base(j.input), name, j.output, len(doc.Body))
	return nil
}

// watchFile calls onChange after each burst of changes to path until ctx is
// done. The parent directory is watched so editors that replace the file on
// save are still seen.
func watchFile(ctx context.Context, path string, delay time.Duration, onChange func()) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	changes := debounce.New(delay, func(struct{}) { onChange() })
	defer changes.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				changes.Push(struct{}{})
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch error: %w", err)
		}
	}
}
