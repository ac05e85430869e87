// Package richtext implements the inline markup used in free-text resume
// fields: "**bold**" emphasis and "- " bullet lines. Format is the only
// parser; every output target serializes the Block it returns.
package richtext

import (
	"regexp"
	"strings"
)

// BulletGlyph replaces the "- " marker of a bullet line
const BulletGlyph = "•"

var strongPattern = regexp.MustCompile(`\*\*(.*?)\*\*`)

// Span is a run of text with uniform emphasis
type Span struct {
	Text   string `json:"text"`
	Strong bool   `json:"strong,omitempty"`
}

// Line is one source line after formatting.
type Line struct {
	// Bullet lines have their marker stripped; serializers print BulletGlyph.
	Bullet bool `json:"bullet,omitempty"`
	// Break requests a hard line break before the line.
	Break bool `json:"break,omitempty"`
	// Spacer marks a blank source line, kept as a small vertical gap.
	Spacer bool   `json:"spacer,omitempty"`
	Spans  []Span `json:"spans,omitempty"`
}

// Block is formatted multi-line text
type Block struct {
	Lines []Line `json:"lines,omitempty"`
}

// Format parses text. It never fails: markup it does not recognize stays literal.
func Format(text string) Block {
	if text == "" {
		return Block{}
	}
	raw := strings.Split(text, "\n")
	lines := make([]Line, 0, len(raw))
	for i, src := range raw {
		trimmed := strings.TrimSpace(src)
		switch {
		case trimmed == "":
			lines = append(lines, Line{Spacer: true})
		case strings.HasPrefix(trimmed, "- "):
			lines = append(lines, Line{
				Bullet: true,
				Break:  i > 0,
				Spans:  spans(trimmed[2:]),
			})
		default:
			lines = append(lines, Line{Spans: spans(src)})
		}
	}
	return Block{Lines: lines}
}

// spans splits s on matched "**" pairs. Pairs are taken left to right, each
// closing at the nearest following "**".
func spans(s string) []Span {
	var out []Span
	last := 0
	for _, m := range strongPattern.FindAllStringSubmatchIndex(s, -1) {
		if m[0] > last {
			out = append(out, Span{Text: s[last:m[0]]})
		}
		if m[3] > m[2] {
			out = append(out, Span{Text: s[m[2]:m[3]], Strong: true})
		}
		last = m[1]
	}
	if last < len(s) {
		out = append(out, Span{Text: s[last:]})
	}
	return out
}

// Empty reports whether the block has no lines.
func (b Block) Empty() bool {
	return len(b.Lines) == 0
}

// Text returns the line's text with emphasis markers removed.
func (l Line) Text() string {
	var sb strings.Builder
	for _, s := range l.Spans {
		sb.WriteString(s.Text)
	}
	return sb.String()
}

// Plain renders the block as unstyled text, one source line per output line.
func (b Block) Plain() string {
	parts := make([]string, len(b.Lines))
	for i, l := range b.Lines {
		switch {
		case l.Spacer:
			parts[i] = ""
		case l.Bullet:
			parts[i] = BulletGlyph + " " + l.Text()
		default:
			parts[i] = l.Text()
		}
	}
	return strings.Join(parts, "\n")
}
