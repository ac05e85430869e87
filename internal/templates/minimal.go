package templates

import (
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/jonathan/resume-builder/internal/view"
)

func newMinimal() *variant {
	return &variant{
		name:   types.TemplateMinimal,
		accent: colorBlack,
		font:   "DM Sans",
		icons:  true,
		header: headerCentered,
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
			return view.Heading(title, view.Style{Color: p.Heading, Bold: true, Size: view.SizeLarge}).WithClass("underline")
		},
	}
}
