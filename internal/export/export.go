// Package export produces downloadable documents from a resume. Exports are
// rendered in view mode through the same templates and formatter as the
// live preview.
package export

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/templates"
	"github.com/jonathan/resume-builder/internal/types"
)

// Format is an export target
type Format string

// Supported formats
const (
	FormatHTML  Format = "html"
	FormatLaTeX Format = "latex"
	FormatText  Format = "text"
)

var formatInfo = map[Format]struct {
	ext         string
	contentType string
}{
	FormatHTML:  {"html", "text/html; charset=utf-8"},
	FormatLaTeX: {"tex", "application/x-tex; charset=utf-8"},
	FormatText:  {"txt", "text/plain; charset=utf-8"},
}

// ParseFormat validates a format name. An empty name means HTML.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if f == "" {
		return FormatHTML, nil
	}
	if f == "tex" {
		return FormatLaTeX, nil
	}
	if f == "txt" {
		return FormatText, nil
	}
	if _, ok := formatInfo[f]; !ok {
		return "", fmt.Errorf("unsupported export format: %q", s)
	}
	return f, nil
}

// Document is a rendered export ready to download
type Document struct {
	Format      Format
	ContentType string
	Filename    string
	Body        []byte
}

// Options tune an export
type Options struct {
	// LaTeXTemplate overrides the embedded LaTeX document template.
	LaTeXTemplate string
}

// Export renders data with the named template. Unknown template names fall
// back to the default template.
func Export(data *types.ResumeData, template types.TemplateName, format Format) (*Document, error) {
	return ExportWithOptions(data, template, format, Options{})
}

// ExportWithOptions is Export with explicit options.
func ExportWithOptions(data *types.ResumeData, template types.TemplateName, format Format, opts Options) (*Document, error) {
	info, ok := formatInfo[format]
	if !ok {
		return nil, fmt.Errorf("unsupported export format: %q", format)
	}
	if data == nil {
		return nil, &rendering.RenderError{Message: "no resume data"}
	}

	renderer := templates.Resolve(template)
	tree := renderer.Render(data, templates.OptionsFor(data.Presentation, false), nil)

	var body string
	var err error
	switch format {
	case FormatHTML:
		body, err = rendering.RenderHTML(tree)
	case FormatLaTeX:
		body, err = rendering.RenderLaTeX(tree, opts.LaTeXTemplate)
	case FormatText:
		body, err = rendering.RenderText(tree)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to export %s: %w", format, err)
	}

	return &Document{
		Format:      format,
		ContentType: info.contentType,
		Filename:    Filename(data.PersonalDetails.FullName, info.ext),
		Body:        []byte(body),
	}, nil
}

// Filename builds the download name "<full name>'s Resume.<ext>". Path
// separators and control characters are dropped from the name.
func Filename(fullName, ext string) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r == '/', r == '\\', r == '"', r < 0x20:
			return -1
		}
		return r
	}, strings.TrimSpace(fullName))
	if name == "" {
		return "Resume." + ext
	}
	return fmt.Sprintf("%s's Resume.%s", name, ext)
}
