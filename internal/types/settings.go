package types

// UserSettings are the per-user profile preferences
type UserSettings struct {
	DisplayName     string       `json:"displayName" validate:"max=100"`
	DefaultTemplate TemplateName `json:"defaultTemplate" validate:"omitempty,oneof=modern professional minimal creative"`
}

// DefaultUserSettings returns the settings used before the user saves any.
func DefaultUserSettings() UserSettings {
	return UserSettings{DefaultTemplate: DefaultTemplate}
}

// Normalize fills an empty default template.
func (s UserSettings) Normalize() UserSettings {
	if s.DefaultTemplate == "" {
		s.DefaultTemplate = DefaultTemplate
	}
	return s
}

// ResumeSummary is the list projection of a stored resume
type ResumeSummary struct {
	ID        string       `json:"id"`
	FullName  string       `json:"fullName"`
	JobTitle  string       `json:"jobTitle,omitempty"`
	Template  TemplateName `json:"template"`
	CreatedAt string       `json:"createdAt"`
	UpdatedAt string       `json:"updatedAt"`
}
