package rendering

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/jonathan/resume-builder/internal/richtext"
	"github.com/jonathan/resume-builder/internal/templates"
	"github.com/jonathan/resume-builder/internal/view"
)

//go:embed templates/resume.tex.tmpl
var defaultLaTeXTemplate string

// LaTeXData is passed to the document template
type LaTeXData struct {
	Title  string
	Font   string
	Accent string
	Body   string
}

// EscapeLaTeX escapes special LaTeX characters in text
// Special characters: \ { } $ & % # ^ _ ~
func EscapeLaTeX(text string) string {
	if text == "" {
		return ""
	}

	var result strings.Builder
	result.Grow(len(text) * 2)

	for _, r := range text {
		switch r {
		case '\\':
			result.WriteString(`\textbackslash{}`)
		case '{':
			result.WriteString(`\{`)
		case '}':
			result.WriteString(`\}`)
		case '$':
			result.WriteString(`\$`)
		case '&':
			result.WriteString(`\&`)
		case '%':
			result.WriteString(`\%`)
		case '#':
			result.WriteString(`\#`)
		case '^':
			result.WriteString(`\textasciicircum{}`)
		case '_':
			result.WriteString(`\_`)
		case '~':
			result.WriteString(`\textasciitilde{}`)
		default:
			result.WriteRune(r)
		}
	}

	return result.String()
}

// escapeURL prepares a link target for \href. Braces and backslashes are
// percent-encoded since hyperref cannot take them escaped.
func escapeURL(u string) string {
	return strings.NewReplacer(
		`\`, "%5C",
		"{", "%7B",
		"}", "%7D",
		"%", `\%`,
		"#", `\#`,
	).Replace(u)
}

// RenderLaTeX renders a visual tree into a complete XeLaTeX document. An empty
// templatePath uses the embedded document template.
func RenderLaTeX(doc *view.Node, templatePath string) (string, error) {
	if doc == nil || doc.Kind != view.KindDocument {
		return "", &RenderError{Message: "expected a document node"}
	}

	tmpl, err := parseTemplate(templatePath)
	if err != nil {
		return "", err
	}

	var body strings.Builder
	w := &latexWriter{sb: &body}
	for _, c := range doc.Children {
		w.node(c)
	}

	data := LaTeXData{
		Title:  documentTitle(doc),
		Font:   templates.PrimaryFont(doc.Style.Font),
		Accent: hexDigits(doc.Style.Color),
		Body:   body.String(),
	}

	var result strings.Builder
	if err := tmpl.Execute(&result, data); err != nil {
		return "", &TemplateError{
			Message: "failed to execute template",
			Cause:   err,
		}
	}
	return result.String(), nil
}

// parseTemplate reads and parses a LaTeX document template
func parseTemplate(templatePath string) (*template.Template, error) {
	content := defaultLaTeXTemplate
	if templatePath != "" {
		raw, err := os.ReadFile(templatePath)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, &TemplateError{
					Message: fmt.Sprintf("template file not found: %s", templatePath),
					Cause:   err,
				}
			}
			return nil, &TemplateError{
				Message: fmt.Sprintf("failed to read template file: %s", templatePath),
				Cause:   err,
			}
		}
		content = string(raw)
	}

	tmpl, err := template.New("resume").Funcs(template.FuncMap{
		"escape": EscapeLaTeX,
	}).Parse(content)
	if err != nil {
		return nil, &TemplateError{
			Message: "failed to parse template",
			Cause:   err,
		}
	}
	return tmpl, nil
}

// hexDigits returns the six hex digits xcolor's HTML model expects.
func hexDigits(color string) string {
	hex, ok := templates.NormalizeHex(color)
	if !ok {
		return "000000"
	}
	return strings.ToUpper(strings.TrimPrefix(hex, "#"))
}

type latexWriter struct {
	sb *strings.Builder
}

func (w *latexWriter) printf(format string, args ...any) {
	fmt.Fprintf(w.sb, format, args...)
}

func (w *latexWriter) node(n *view.Node) {
	switch n.Kind {
	case view.KindHeader:
		w.aligned(n.Style.Align, func() { w.children(n) })
		w.printf("\\medskip\n")
	case view.KindSection:
		w.children(n)
		w.printf("\\medskip\n")
	case view.KindEntry:
		w.children(n)
		w.printf("\\smallskip\n")
	case view.KindColumn:
		w.aligned(n.Style.Align, func() {
			for _, c := range n.Children {
				w.node(c)
				w.printf("\\par\n")
			}
		})
	case view.KindRow:
		w.row(n)
		w.printf("\\par\n")
	case view.KindHeading:
		w.heading(n)
	case view.KindRule:
		if n.Style.Dashed {
			w.printf("\\dashedrule{%s}\n", hexDigits(n.Style.Color))
		} else {
			w.printf("\\solidrule{%s}{%s}\n", hexDigits(n.Style.Color), ruleWidth(n.Style))
		}
	case view.KindRich:
		w.styled(n.Style, func() { w.rich(n.Rich) })
		w.printf("\\par\n")
	default:
		w.inline(n)
		w.printf("\\par\n")
	}
}

func (w *latexWriter) children(n *view.Node) {
	for _, c := range n.Children {
		w.node(c)
	}
}

func (w *latexWriter) aligned(a view.Align, body func()) {
	switch a {
	case view.AlignCenter:
		w.printf("\\begin{center}\n")
		body()
		w.printf("\\end{center}\n")
	case view.AlignRight:
		w.printf("\\begin{flushright}\n")
		body()
		w.printf("\\end{flushright}\n")
	default:
		body()
	}
}

// row writes children on one line. A right-aligned child is pushed to the
// right margin; consecutive ordinary children are spaced with \quad.
func (w *latexWriter) row(n *view.Node) {
	for i, c := range n.Children {
		if i > 0 {
			switch {
			case c.Style.Align == view.AlignRight:
				w.printf("\\hfill ")
			case c.Kind == view.KindSeparator, n.Children[i-1].Kind == view.KindSeparator, n.Children[i-1].Kind == view.KindIcon:
				w.printf(" ")
			default:
				w.printf("\\quad ")
			}
		}
		w.inline(c)
	}
}

// inline writes a node without a trailing paragraph break.
func (w *latexWriter) inline(n *view.Node) {
	switch n.Kind {
	case view.KindText, view.KindControl:
		w.styled(n.Style, func() { w.printf("%s", EscapeLaTeX(n.Text)) })
	case view.KindRich:
		w.styled(n.Style, func() { w.richInline(n.Rich) })
	case view.KindLink:
		w.styled(n.Style, func() {
			w.printf("\\href{%s}{%s}", escapeURL(n.Href), EscapeLaTeX(n.Text))
		})
	case view.KindIcon:
		if cmd, ok := faIcons[n.Icon]; ok {
			w.printf("\\textcolor[HTML]{%s}{%s}", hexDigits(n.Style.Color), cmd)
		}
	case view.KindSeparator:
		w.styled(n.Style, func() { w.printf("%s", EscapeLaTeX(n.Text)) })
	case view.KindRow:
		w.row(n)
	default:
		for i, c := range n.Children {
			if i > 0 {
				w.printf(" ")
			}
			w.inline(c)
		}
	}
}

func (w *latexWriter) styled(s view.Style, body func()) {
	w.printf("{")
	switch s.Size {
	case view.SizeTitle:
		w.printf("\\huge")
	case view.SizeLarge:
		w.printf("\\large")
	case view.SizeSmall:
		w.printf("\\small")
	}
	if s.Bold {
		w.printf("\\bfseries")
	}
	if s.Italic {
		w.printf("\\itshape")
	}
	if s.Color != "" {
		w.printf("\\color[HTML]{%s}", hexDigits(s.Color))
	}
	w.printf(" ")
	body()
	w.printf("}")
}

func (w *latexWriter) heading(n *view.Node) {
	color := hexDigits(n.Style.Color)
	w.printf("\\vspace{4pt}\n")
	w.aligned(n.Style.Align, func() {
		w.printf("{\\large\\bfseries\\color[HTML]{%s} %s}\\par\n", color, EscapeLaTeX(n.Text))
	})
	switch n.Class {
	case "bar", "fade":
		w.printf("\\vspace{-2pt}\\solidrule{%s}{2pt}\n", color)
	case "underline":
		w.printf("\\vspace{-2pt}\\solidrule{1F2937}{%s}\n", ruleWidth(n.Style))
	}
}

func ruleWidth(s view.Style) string {
	if s.Thick {
		return "1.2pt"
	}
	return "0.6pt"
}

// rich writes a block as one paragraph per source line.
func (w *latexWriter) rich(b richtext.Block) {
	for i, line := range b.Lines {
		if i > 0 {
			w.printf("\\par\n")
		}
		w.line(line)
	}
}

// richInline writes a block inside a row, where paragraphs are not allowed.
func (w *latexWriter) richInline(b richtext.Block) {
	for i, line := range b.Lines {
		if i > 0 {
			w.printf("\\newline ")
		}
		w.line(line)
	}
}

func (w *latexWriter) line(l richtext.Line) {
	if l.Spacer {
		w.printf("\\smallskip")
		return
	}
	if l.Break {
		w.printf("\\vspace{2pt}")
	}
	if l.Bullet {
		w.printf("\\textbullet{} ")
	}
	for _, s := range l.Spans {
		if s.Strong {
			w.printf("\\textbf{%s}", EscapeLaTeX(s.Text))
		} else {
			w.printf("%s", EscapeLaTeX(s.Text))
		}
	}
}

// documentTitle finds the full name in the header, if any.
func documentTitle(doc *view.Node) string {
	for _, n := range doc.FindAll(func(n *view.Node) bool { return n.Role == "fullName" }) {
		switch n.Kind {
		case view.KindRich:
			return n.Rich.Plain()
		case view.KindText, view.KindControl:
			return n.Text
		}
	}
	return "Resume"
}
