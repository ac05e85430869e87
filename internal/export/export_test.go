package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-builder/internal/types"
)

func sample() *types.ResumeData {
	return &types.ResumeData{
		PersonalDetails: types.PersonalDetails{FullName: "Ada Lovelace", Email: "ada@example.com"},
		Objective:       "**Analytical** engines",
		Presentation:    types.Presentation{AccentColor: "#1E3A8A"},
	}
}

func TestExport(t *testing.T) {
	tests := []struct {
		format      Format
		filename    string
		contentType string
		contains    string
	}{
		{FormatHTML, "Ada Lovelace's Resume.html", "text/html; charset=utf-8", "<strong>Analytical</strong>"},
		{FormatLaTeX, "Ada Lovelace's Resume.tex", "application/x-tex; charset=utf-8", `\textbf{Analytical}`},
		{FormatText, "Ada Lovelace's Resume.txt", "text/plain; charset=utf-8", "Analytical engines"},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			doc, err := Export(sample(), types.TemplateModern, tt.format)
			require.NoError(t, err)
			assert.Equal(t, tt.filename, doc.Filename)
			assert.Equal(t, tt.contentType, doc.ContentType)
			assert.Contains(t, string(doc.Body), tt.contains)
		})
	}
}

func TestExport_UsesViewMode(t *testing.T) {
	doc, err := Export(sample(), types.TemplateMinimal, FormatHTML)
	require.NoError(t, err)
	body := string(doc.Body)
	assert.NotContains(t, body, "<input")
	assert.NotContains(t, body, "<textarea")
	assert.Contains(t, body, `href="mailto:ada@example.com"`)
}

func TestExport_UsesDocumentAccent(t *testing.T) {
	doc, err := Export(sample(), types.TemplateModern, FormatLaTeX)
	require.NoError(t, err)
	assert.Contains(t, string(doc.Body), `\definecolor{accent}{HTML}{1E3A8A}`)
}

func TestExport_UnknownTemplateFallsBack(t *testing.T) {
	doc, err := Export(sample(), "fancy", FormatHTML)
	require.NoError(t, err)
	assert.Contains(t, string(doc.Body), `data-template="modern"`)
}

func TestExport_Errors(t *testing.T) {
	_, err := Export(sample(), types.TemplateModern, "pdf")
	assert.Error(t, err)

	_, err = Export(nil, types.TemplateModern, FormatText)
	assert.Error(t, err)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatHTML, f)

	f, err = ParseFormat("TEX")
	require.NoError(t, err)
	assert.Equal(t, FormatLaTeX, f)

	_, err = ParseFormat("docx")
	assert.Error(t, err)
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "Resume.txt", Filename("  ", "txt"))
	assert.Equal(t, "ab's Resume.html", Filename("a/b", "html"))
	assert.False(t, strings.Contains(Filename("x\ny", "tex"), "\n"))
}
