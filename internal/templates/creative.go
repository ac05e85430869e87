package templates

import (
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/jonathan/resume-builder/internal/view"
)

func newCreative() *variant {
	return &variant{
		name:   types.TemplateCreative,
		accent: "#1e3a8a",
		font:   "Lato, sans-serif",
		icons:  true,
		header: headerCentered,
		palette: func(accent string) Palette {
			return Palette{
				Accent:     accent,
				Name:       accent,
				Heading:    accent,
				Subheading: accent,
				Tertiary:   accent,
				Body:       colorGray700,
				Rule:       accent,
			}
		},
		heading: func(p Palette, title string) *view.Node {
			return view.Heading(title, view.Style{Color: p.Heading, Bold: true, Size: view.SizeLarge}).WithClass("fade")
		},
		divider: dashedRule("", false),
	}
}
