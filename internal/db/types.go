package db

import (
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-builder/internal/types"
)

// Resume represents a stored resume row
type Resume struct {
	ID        uuid.UUID          `json:"id"`
	Owner     string             `json:"owner"`
	Document  types.ResumeData   `json:"document"`
	Template  types.TemplateName `json:"template"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// Summary projects the row for list views.
func (r *Resume) Summary() types.ResumeSummary {
	return types.ResumeSummary{
		ID:        r.ID.String(),
		FullName:  r.Document.PersonalDetails.FullName,
		JobTitle:  r.Document.JobTitle,
		Template:  r.Template,
		CreatedAt: r.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: r.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// Settings represents a stored user_settings row
type Settings struct {
	Owner           string    `json:"owner"`
	DisplayName     string    `json:"display_name"`
	DefaultTemplate string    `json:"default_template"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// UserSettings converts the row to the domain type.
func (s *Settings) UserSettings() types.UserSettings {
	return types.UserSettings{
		DisplayName:     s.DisplayName,
		DefaultTemplate: types.TemplateName(s.DefaultTemplate),
	}
}
