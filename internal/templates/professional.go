package templates

import (
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/jonathan/resume-builder/internal/view"
)

// Professional: centered titles over a heavy dark rule, contact details in a
// right-hand column, heavy dashed dividers between entries.
func newProfessional() *variant {
	return &variant{
		name:   types.TemplateProfessional,
		accent: colorBlack,
		font:   "Domine",
		icons:  true,
		header: headerSplit,
		palette: func(accent string) Palette {
			return Palette{
				Accent:     accent,
				Name:       colorBlack,
				Heading:    colorBlack,
				Subheading: accent,
				Tertiary:   colorGray600,
				Body:       colorGray600,
				Rule:       colorGray800,
			}
		},
		heading: func(p Palette, title string) *view.Node {
			return view.Heading(title, view.Style{
				Color: p.Heading,
				Bold:  true,
				Size:  view.SizeLarge,
				Align: view.AlignCenter,
				Thick: true,
			}).WithClass("underline")
		},
		divider: dashedRule(colorGray800, true),
	}
}
