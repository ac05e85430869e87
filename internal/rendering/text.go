package rendering

import (
	"strings"

	"github.com/jonathan/resume-builder/internal/view"
)

// RenderText renders a visual tree as plain text suitable for applicant
// tracking systems: no icons, no colour, links shown as their text.
func RenderText(doc *view.Node) (string, error) {
	if doc == nil || doc.Kind != view.KindDocument {
		return "", &RenderError{Message: "expected a document node"}
	}
	var lines []string
	for _, c := range doc.Children {
		lines = appendBlock(lines, textBlock(c))
	}
	return strings.Join(lines, "\n") + "\n", nil
}

// appendBlock adds block separated from what came before by one blank line.
func appendBlock(lines, block []string) []string {
	if len(block) == 0 {
		return lines
	}
	if len(lines) > 0 {
		lines = append(lines, "")
	}
	return append(lines, block...)
}

func textBlock(n *view.Node) []string {
	switch n.Kind {
	case view.KindHeader, view.KindColumn, view.KindEntry:
		var out []string
		for _, c := range n.Children {
			out = append(out, textBlock(c)...)
		}
		return out
	case view.KindSection:
		var out []string
		for _, c := range n.Children {
			if c.Kind == view.KindEntry {
				out = appendBlock(out, textBlock(c))
				continue
			}
			out = append(out, textBlock(c)...)
		}
		return out
	case view.KindHeading:
		title := strings.ToUpper(n.Text)
		return []string{title, strings.Repeat("-", len([]rune(title)))}
	case view.KindRule, view.KindIcon:
		return nil
	case view.KindRich:
		return strings.Split(n.Rich.Plain(), "\n")
	default:
		if s := textInline(n); s != "" {
			return []string{s}
		}
		return nil
	}
}

// textInline flattens a node onto one line. Adjacent parts of a row are
// joined with " | " unless the row carries its own separators.
func textInline(n *view.Node) string {
	switch n.Kind {
	case view.KindText, view.KindLink, view.KindControl:
		return n.Text
	case view.KindRich:
		return strings.ReplaceAll(n.Rich.Plain(), "\n", " ")
	case view.KindSeparator:
		return n.Text
	case view.KindIcon, view.KindRule:
		return ""
	}

	var sb strings.Builder
	prevSep := true
	for _, c := range n.Children {
		s := textInline(c)
		if s == "" {
			continue
		}
		isSep := c.Kind == view.KindSeparator
		switch {
		case sb.Len() == 0:
		case isSep || prevSep:
			sb.WriteString(" ")
		default:
			sb.WriteString(" | ")
		}
		sb.WriteString(s)
		prevSep = isSep
	}
	return sb.String()
}
