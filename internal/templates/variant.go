package templates

import (
	"github.com/jonathan/resume-builder/internal/sections"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/jonathan/resume-builder/internal/view"
)

type headerLayout int

const (
	// name and title on one line, contact rows below, left aligned
	headerInline headerLayout = iota
	// every header line centered
	headerCentered
	// name and title left, contact column right
	headerSplit
)

// variant is the strategy behind each Renderer. The shared builder does the
// traversal; a variant only supplies layout and typography.
type variant struct {
	name   types.TemplateName
	accent string
	font   string
	// fixed variants ignore the accent and font options
	fixed  bool
	icons  bool
	header headerLayout

	palette func(accent string) Palette
	heading func(p Palette, title string) *view.Node
	// divider separates consecutive work and project entries; nil means none
	divider func(p Palette) *view.Node
}

func (v *variant) Name() types.TemplateName {
	return v.name
}

func (v *variant) Render(data *types.ResumeData, opts Options, onPatch view.PatchFunc) *view.Node {
	if data == nil {
		data = &types.ResumeData{}
	}

	accent, font := v.accent, v.font
	if !v.fixed {
		if hex, ok := NormalizeHex(opts.AccentColor); ok {
			accent = hex
		}
		if f := SanitizeFont(opts.FontFamily); f != "" {
			font = f
		}
	}

	b := &builder{
		v:       v,
		data:    data,
		editing: opts.IsEditing,
		icons:   v.icons && opts.ShowIcons,
		pal:     v.palette(accent),
		onPatch: onPatch,
	}

	doc := view.Group(view.KindDocument, string(v.name)).
		WithClass(string(v.name)).
		Styled(view.Style{Font: font, Color: accent})
	doc.Add(b.header())
	for _, token := range sections.Visible(data, opts.SectionOrder) {
		doc.Add(b.section(token))
	}
	return doc
}

func dashedRule(color string, thick bool) func(Palette) *view.Node {
	return func(p Palette) *view.Node {
		c := color
		if c == "" {
			c = p.Rule
		}
		return view.Rule("entry-divider", view.Style{Color: c, Dashed: true, Thick: thick})
	}
}
