package rendering

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-builder/internal/types"
	"github.com/jonathan/resume-builder/internal/view"
)

func TestEscapeLaTeX(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"plain", "Hello World", "Hello World"},
		{"dollar", "$100", `\$100`},
		{"ampersand", "A & B", `A \& B`},
		{"percent", "50%", `50\%`},
		{"hash", "#1", `\#1`},
		{"underscore", "snake_case", `snake\_case`},
		{"braces", "{x}", `\{x\}`},
		{"tilde", "~approx", `\textasciitilde{}approx`},
		{"caret", "x^2", `x\textasciicircum{}2`},
		{"backslash", `a\b`, `a\textbackslash{}b`},
		{"multiple", "test${}~&%#^_\\", "test\\$\\{\\}\\textasciitilde{}\\&\\%\\#\\textasciicircum{}\\_\\textbackslash{}"},
		{"unicode passes through", "résumé α β γ", "résumé α β γ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EscapeLaTeX(tt.input))
		})
	}
}

func TestEscapeURL(t *testing.T) {
	assert.Equal(t, `https://x.dev/a\%20b\#top`, escapeURL("https://x.dev/a%20b#top"))
	assert.Equal(t, "https://x.dev/%7Bq%7D", escapeURL("https://x.dev/{q}"))
}

func TestParseTemplate_Embedded(t *testing.T) {
	tmpl, err := parseTemplate("")
	require.NoError(t, err)
	assert.NotNil(t, tmpl)
}

func TestParseTemplate_ValidFile(t *testing.T) {
	tmpDir := t.TempDir()
	templatePath := filepath.Join(tmpDir, "test.tex")
	content := `\documentclass{article}
\begin{document}
{{.Body}}
\end{document}`
	require.NoError(t, os.WriteFile(templatePath, []byte(content), 0644))

	tmpl, err := parseTemplate(templatePath)
	require.NoError(t, err)
	assert.NotNil(t, tmpl)
}

func TestParseTemplate_InvalidPath(t *testing.T) {
	_, err := parseTemplate("/nonexistent/template.tex")
	require.Error(t, err)
	var templateErr *TemplateError
	assert.ErrorAs(t, err, &templateErr)
	assert.Contains(t, err.Error(), "template file not found")
}

func TestParseTemplate_InvalidTemplate(t *testing.T) {
	tmpDir := t.TempDir()
	templatePath := filepath.Join(tmpDir, "invalid.tex")
	require.NoError(t, os.WriteFile(templatePath, []byte(`{{.Body{{}}`), 0644))

	_, err := parseTemplate(templatePath)
	var templateErr *TemplateError
	assert.ErrorAs(t, err, &templateErr)
}

func TestRenderLaTeX(t *testing.T) {
	doc := renderDoc(t, types.TemplateModern, sampleResume(), false)
	out, err := RenderLaTeX(doc, "")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, `\documentclass`))
	assert.Contains(t, out, `\setmainfont{Montserrat}`)
	assert.Contains(t, out, `\definecolor{accent}{HTML}{0E7490}`)
	assert.Contains(t, out, `pdftitle={Ada Lovelace}`)
	assert.Contains(t, out, `Analyst \& Writer`)
	assert.Contains(t, out, `\href{mailto:ada@example.com}{ada@example.com}`)
	assert.Contains(t, out, `\href{https://github.com/ada}{github.com/ada}`)
	assert.Contains(t, out, `\textbf{notes}`)
	assert.Contains(t, out, `\textbullet{} Built \$100 engines`)
	assert.Contains(t, out, `Wrote 50\% of the notes`)
	assert.Contains(t, out, `Added notes A\_G`)
	assert.Contains(t, out, `Professional Summary`)
	assert.Contains(t, out, `\faEnvelope`)
	assert.True(t, strings.HasSuffix(strings.TrimSpace(out), `\end{document}`))
}

func TestRenderLaTeX_CenteredHeader(t *testing.T) {
	doc := renderDoc(t, types.TemplateMinimal, sampleResume(), false)
	out, err := RenderLaTeX(doc, "")
	require.NoError(t, err)
	assert.Contains(t, out, `\begin{center}`)
}

func TestRenderLaTeX_CustomTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.tex")
	require.NoError(t, os.WriteFile(path, []byte(`TITLE={{escape .Title}};ACCENT={{.Accent}}`), 0644))

	doc := renderDoc(t, types.TemplateCreative, sampleResume(), false)
	out, err := RenderLaTeX(doc, path)
	require.NoError(t, err)
	assert.Equal(t, "TITLE=Ada Lovelace;ACCENT=1E3A8A", out)
}

func TestRenderLaTeX_RejectsNonDocument(t *testing.T) {
	_, err := RenderLaTeX(view.Text("x", "y"), "")
	var renderErr *RenderError
	assert.ErrorAs(t, err, &renderErr)
}
