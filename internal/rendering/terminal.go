package rendering

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jonathan/resume-builder/internal/richtext"
	"github.com/jonathan/resume-builder/internal/view"
)

// TerminalOptions controls terminal output
type TerminalOptions struct {
	Width int
	// Highlight is the index into the document's sections to mark, or -1.
	Highlight int
}

// RenderTerminal renders a visual tree with lipgloss styling for a terminal
// of the given width.
func RenderTerminal(doc *view.Node, opts TerminalOptions) string {
	if doc == nil {
		return ""
	}
	width := opts.Width
	if width <= 0 {
		width = 80
	}
	t := &termWriter{width: width}

	var blocks []string
	section := 0
	for _, c := range doc.Children {
		block := t.block(c)
		if block == "" {
			continue
		}
		if c.Kind == view.KindSection {
			if section == opts.Highlight {
				block = lipgloss.NewStyle().
					BorderStyle(lipgloss.NormalBorder()).
					BorderLeft(true).
					BorderForeground(lipgloss.Color(doc.Style.Color)).
					PaddingLeft(1).
					Render(block)
			}
			section++
		}
		blocks = append(blocks, block)
	}
	return strings.Join(blocks, "\n\n")
}

type termWriter struct {
	width int
}

func textStyle(s view.Style) lipgloss.Style {
	st := lipgloss.NewStyle().Bold(s.Bold).Italic(s.Italic)
	if s.Color != "" {
		st = st.Foreground(lipgloss.Color(s.Color))
	}
	return st
}

func (t *termWriter) align(s string, a view.Align) string {
	switch a {
	case view.AlignCenter:
		return lipgloss.PlaceHorizontal(t.width, lipgloss.Center, s)
	case view.AlignRight:
		return lipgloss.PlaceHorizontal(t.width, lipgloss.Right, s)
	}
	return s
}

func (t *termWriter) block(n *view.Node) string {
	switch n.Kind {
	case view.KindHeader, view.KindSection, view.KindEntry:
		var parts []string
		for _, c := range n.Children {
			if s := t.block(c); s != "" {
				parts = append(parts, t.align(s, n.Style.Align))
			}
		}
		return strings.Join(parts, "\n")
	case view.KindColumn:
		var parts []string
		for _, c := range n.Children {
			if s := t.inline(c); s != "" {
				parts = append(parts, s)
			}
		}
		return lipgloss.NewStyle().Align(lipglossAlign(n.Style.Align)).Render(strings.Join(parts, "\n"))
	case view.KindHeading:
		title := textStyle(n.Style).Render(n.Text)
		rule := lipgloss.NewStyle().Foreground(lipgloss.Color(n.Style.Color)).
			Render(strings.Repeat("─", max(0, t.width-lipgloss.Width(title)-1)))
		if n.Style.Align == view.AlignCenter {
			return t.align(title, view.AlignCenter)
		}
		return title + " " + rule
	case view.KindRule:
		ch := "─"
		if n.Style.Dashed {
			ch = "╌"
		}
		return lipgloss.NewStyle().Foreground(lipgloss.Color(n.Style.Color)).Render(strings.Repeat(ch, t.width))
	case view.KindRich:
		return lipgloss.NewStyle().Width(t.width).Render(t.rich(n.Rich, textStyle(n.Style)))
	case view.KindRow:
		if n.Role == "columns" && len(n.Children) == 2 {
			left := t.block(n.Children[0])
			right := t.block(n.Children[1])
			gap := max(1, t.width-lipgloss.Width(left)-lipgloss.Width(right))
			return lipgloss.JoinHorizontal(lipgloss.Top, left, strings.Repeat(" ", gap), right)
		}
		return t.inline(n)
	default:
		return t.inline(n)
	}
}

func lipglossAlign(a view.Align) lipgloss.Position {
	switch a {
	case view.AlignCenter:
		return lipgloss.Center
	case view.AlignRight:
		return lipgloss.Right
	}
	return lipgloss.Left
}

func (t *termWriter) inline(n *view.Node) string {
	switch n.Kind {
	case view.KindText, view.KindSeparator:
		return textStyle(n.Style).Render(n.Text)
	case view.KindControl:
		return textStyle(n.Style).Faint(true).Render("[" + n.Text + "]")
	case view.KindLink:
		return textStyle(n.Style).Underline(true).Render(n.Text)
	case view.KindIcon:
		return textStyle(n.Style).Render(Glyph(n.Icon))
	case view.KindRich:
		return t.rich(n.Rich, textStyle(n.Style))
	case view.KindRule, view.KindHeading:
		return t.block(n)
	}

	var parts []string
	var right string
	for _, c := range n.Children {
		s := t.inline(c)
		if s == "" {
			continue
		}
		if c.Style.Align == view.AlignRight && n.Kind == view.KindRow {
			right = s
			continue
		}
		parts = append(parts, s)
	}
	left := strings.Join(parts, " ")
	if right == "" {
		return left
	}
	gap := max(1, t.width-lipgloss.Width(left)-lipgloss.Width(right))
	return left + strings.Repeat(" ", gap) + right
}

func (t *termWriter) rich(b richtext.Block, base lipgloss.Style) string {
	strong := base.Bold(true)
	lines := make([]string, 0, len(b.Lines))
	for _, l := range b.Lines {
		if l.Spacer {
			lines = append(lines, "")
			continue
		}
		var sb strings.Builder
		if l.Bullet {
			sb.WriteString(base.Render(richtext.BulletGlyph + " "))
		}
		for _, s := range l.Spans {
			if s.Strong {
				sb.WriteString(strong.Render(s.Text))
			} else {
				sb.WriteString(base.Render(s.Text))
			}
		}
		lines = append(lines, sb.String())
	}
	return strings.Join(lines, "\n")
}
