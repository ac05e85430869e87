package templates

import (
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/jonathan/resume-builder/internal/view"
)

// Modern: accent-coloured titles followed by a solid bar, tints of the
// accent for secondary text, dashed dividers between entries.
func newModern() *variant {
	return &variant{
		name:   types.TemplateModern,
		accent: "#0e7490",
		font:   "Montserrat",
		icons:  true,
		header: headerInline,
		palette: func(accent string) Palette {
			return Palette{
				Accent:     accent,
				Name:       accent,
				Heading:    accent,
				Subheading: Lighten(accent, 20),
				Tertiary:   Lighten(accent, 40),
				Body:       colorGray600,
				Rule:       accent,
			}
		},
		heading: barHeading,
		divider: dashedRule("", false),
	}
}

func barHeading(p Palette, title string) *view.Node {
	return view.Heading(title, view.Style{Color: p.Heading, Bold: true, Size: view.SizeLarge}).WithClass("bar")
}

// Legacy modern layout kept for documents saved under it. Colours and font
// are fixed and icons are never drawn.
func newLegacy() *variant {
	return &variant{
		name:   types.TemplateModernLegacy,
		accent: "#0e7490",
		font:   "Montserrat",
		fixed:  true,
		icons:  false,
		header: headerInline,
		palette: func(accent string) Palette {
			return Palette{
				Accent:     accent,
				Name:       accent,
				Heading:    accent,
				Subheading: colorCyan800,
				Tertiary:   colorGray600,
				Body:       colorGray700,
				Rule:       accent,
			}
		},
		heading: barHeading,
		divider: dashedRule("", false),
	}
}
