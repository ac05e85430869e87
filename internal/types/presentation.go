package types

import (
	"fmt"
	"slices"
)

// SectionToken names one logical resume section in ordering and visibility decisions
type SectionToken string

// Known section tokens
const (
	SectionObjective      SectionToken = "objective"
	SectionWorkExperience SectionToken = "workExperience"
	SectionProjects       SectionToken = "projects"
	SectionEducation      SectionToken = "education"
	SectionSkills         SectionToken = "skills"
	SectionCertifications SectionToken = "certifications"
	SectionLanguages      SectionToken = "languages"
	SectionCustomSections SectionToken = "customSections"
)

// Scalar field groups addressed by patches with a nil index. They are not
// section tokens because they never take part in ordering.
const (
	FieldGroupPersonalDetails = "personalDetails"
	FieldGroupJobTitle        = "jobTitle"
)

var defaultSectionOrder = []SectionToken{
	SectionObjective,
	SectionWorkExperience,
	SectionProjects,
	SectionEducation,
	SectionSkills,
	SectionCertifications,
	SectionLanguages,
	SectionCustomSections,
}

// DefaultSectionOrder returns a fresh copy of the canonical section order.
func DefaultSectionOrder() []SectionToken {
	return slices.Clone(defaultSectionOrder)
}

// Known reports whether the token names one of the eight sections.
func (t SectionToken) Known() bool {
	return slices.Contains(defaultSectionOrder, t)
}

// TemplateName selects a template variant
type TemplateName string

// Template variants
const (
	TemplateModern       TemplateName = "modern"
	TemplateModernLegacy TemplateName = "modern_old"
	TemplateMinimal      TemplateName = "minimal"
	TemplateProfessional TemplateName = "professional"
	TemplateCreative     TemplateName = "creative"
)

// DefaultTemplate is used when neither the resume nor the user picked one
const DefaultTemplate = TemplateModern

var templateNames = []TemplateName{
	TemplateModern,
	TemplateModernLegacy,
	TemplateMinimal,
	TemplateProfessional,
	TemplateCreative,
}

// TemplateNames lists every variant that can display a resume.
func TemplateNames() []TemplateName {
	return slices.Clone(templateNames)
}

// Valid reports whether the name is a known template.
func (n TemplateName) Valid() bool {
	return slices.Contains(templateNames, n)
}

// ParseTemplateName validates a template name from user input.
func ParseTemplateName(s string) (TemplateName, error) {
	name := TemplateName(s)
	if !name.Valid() {
		return "", fmt.Errorf("unknown template: %q", s)
	}
	return name, nil
}

// Presentation defaults shared by every template when the document has none
const (
	DefaultAccentColor = "#000000"
	DefaultFontFamily  = "DM Sans"
)

// FontOptions lists the font families offered in the editor.
var FontOptions = []string{
	"DM Sans",
	"Arial",
	"Times New Roman",
	"Helvetica",
	"Georgia",
	"Roboto",
	"Lato",
	"Open Sans",
	"Verdana",
	"Calibri",
}

// Presentation holds the display preferences stored alongside the content.
// ShowIcons is a pointer so that documents without the field read as true.
type Presentation struct {
	AccentColor  string         `json:"accentColor,omitempty"`
	FontFamily   string         `json:"fontFamily,omitempty"`
	SectionOrder []SectionToken `json:"sectionOrder,omitempty"`
	ShowIcons    *bool          `json:"showIcons,omitempty"`
	Template     TemplateName   `json:"template,omitempty"`
}

// Clone returns a deep copy of the preferences.
func (p Presentation) Clone() Presentation {
	out := p
	out.SectionOrder = slices.Clone(p.SectionOrder)
	if p.ShowIcons != nil {
		v := *p.ShowIcons
		out.ShowIcons = &v
	}
	return out
}

// IconsVisible resolves the optional ShowIcons flag.
func (p Presentation) IconsVisible() bool {
	return p.ShowIcons == nil || *p.ShowIcons
}

// SetIcons stores an explicit icon preference.
func (p *Presentation) SetIcons(show bool) {
	p.ShowIcons = &show
}

// Order returns the stored section order, or the canonical order when none is stored.
func (p Presentation) Order() []SectionToken {
	if len(p.SectionOrder) == 0 {
		return DefaultSectionOrder()
	}
	return slices.Clone(p.SectionOrder)
}

// Effective fills every unset preference with its default. The receiver is not modified.
func (p Presentation) Effective() Presentation {
	out := p.Clone()
	if out.AccentColor == "" {
		out.AccentColor = DefaultAccentColor
	}
	if out.FontFamily == "" {
		out.FontFamily = DefaultFontFamily
	}
	out.SectionOrder = p.Order()
	if out.ShowIcons == nil {
		out.SetIcons(true)
	}
	if !out.Template.Valid() {
		out.Template = DefaultTemplate
	}
	return out
}
