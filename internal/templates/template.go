// Package templates projects a resume into a visual tree. Each template
// variant is a Renderer; they differ in layout and typography only and all
// render the sections chosen by sections.Visible in that order.
package templates

import (
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/jonathan/resume-builder/internal/view"
)

// Options are the presentation parameters for one render
type Options struct {
	IsEditing    bool
	AccentColor  string
	FontFamily   string
	SectionOrder []types.SectionToken
	ShowIcons    bool
}

// OptionsFor maps stored preferences to render options. A blank accent or
// font is left blank so the variant's own default applies.
func OptionsFor(p types.Presentation, editing bool) Options {
	return Options{
		IsEditing:    editing,
		AccentColor:  p.AccentColor,
		FontFamily:   p.FontFamily,
		SectionOrder: p.Order(),
		ShowIcons:    p.IconsVisible(),
	}
}

// Renderer turns resume data into a visual tree. Render never modifies data;
// edits made through control nodes are reported to onPatch.
type Renderer interface {
	Name() types.TemplateName
	Render(data *types.ResumeData, opts Options, onPatch view.PatchFunc) *view.Node
}

// Palette is the set of colours a variant derives from the accent
type Palette struct {
	Accent     string
	Name       string
	Heading    string
	Subheading string
	Tertiary   string
	Body       string
	Rule       string
}
