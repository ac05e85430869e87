package rendering

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-builder/internal/richtext"
	"github.com/jonathan/resume-builder/internal/types"
)

var parityInputs = []string{
	"Plain sentence",
	"Led **five** teams and **won**",
	"- first\n- **second** item\nclosing line",
	"Intro\n\n- after a blank line",
	"Unmatched **marker stays",
	"x****y and **a** **b",
}

// The preview and every export target must agree on the formatted lines.
func TestFormatterParityAcrossTargets(t *testing.T) {
	for _, input := range parityInputs {
		t.Run(input, func(t *testing.T) {
			block := richtext.Format(input)
			data := &types.ResumeData{Objective: input}

			htmlOut, err := RenderHTML(renderDoc(t, types.TemplateMinimal, data, false))
			require.NoError(t, err)
			doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlOut))
			require.NoError(t, err)

			var htmlLines []string
			doc.Find("section[data-section=objective] .kind-rich").Children().Each(func(_ int, s *goquery.Selection) {
				htmlLines = append(htmlLines, strings.TrimPrefix(s.Text(), "\n"))
			})
			assert.Equal(t, strings.Split(block.Plain(), "\n"), htmlLines, "html lines")

			strong := 0
			for _, l := range block.Lines {
				for _, s := range l.Spans {
					if s.Strong {
						strong++
					}
				}
			}
			assert.Equal(t, strong, doc.Find("section[data-section=objective] strong").Length(), "html emphasis")

			latexOut, err := RenderLaTeX(renderDoc(t, types.TemplateMinimal, data, false), "")
			require.NoError(t, err)
			assert.Equal(t, strong, strings.Count(latexOut, `\textbf{`), "latex emphasis")
			bullets := 0
			for _, l := range block.Lines {
				if l.Bullet {
					bullets++
				}
			}
			assert.Equal(t, bullets, strings.Count(latexOut, `\textbullet{}`), "latex bullets")

			textOut, err := RenderText(renderDoc(t, types.TemplateMinimal, data, false))
			require.NoError(t, err)
			assert.Contains(t, textOut, block.Plain())
		})
	}
}
