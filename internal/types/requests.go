package types

import "github.com/go-playground/validator/v10"

// CreateResumeRequest represents the request to store a new resume.
type CreateResumeRequest struct {
	Resume   ResumeData   `json:"resume"`
	Template TemplateName `json:"template,omitempty" validate:"omitempty,oneof=modern modern_old minimal professional creative"`
}

// SelectTemplateRequest changes the template a resume is displayed with.
type SelectTemplateRequest struct {
	Template TemplateName `json:"template" validate:"required,oneof=modern modern_old minimal professional creative"`
}

// PresentationRequest updates draft display preferences. Nil fields are left alone.
type PresentationRequest struct {
	AccentColor  *string        `json:"accentColor,omitempty" validate:"omitempty,hexcolor"`
	FontFamily   *string        `json:"fontFamily,omitempty" validate:"omitempty,min=1,max=80"`
	ShowIcons    *bool          `json:"showIcons,omitempty"`
	SectionOrder []SectionToken `json:"sectionOrder,omitempty" validate:"omitempty,dive,required"`
}

// MoveSectionRequest moves the section at From to position To.
type MoveSectionRequest struct {
	From int `json:"from" validate:"min=0"`
	To   int `json:"to"`
}

// PatchFieldsRequest applies a batch of field patches in order.
type PatchFieldsRequest struct {
	Patches []FieldPatch `json:"patches" validate:"required,min=1,dive"`
}

// ValidateStruct runs validator tags on any request type.
func ValidateStruct(v any) error {
	return validator.New().Struct(v)
}
