package session

import (
	"context"

	"github.com/jonathan/resume-builder/internal/types"
)

// Gateway is the document store behind a session. Load returns ErrNotFound
// (possibly wrapped) when the resume does not exist for owner.
type Gateway interface {
	Load(ctx context.Context, owner, id string) (*types.ResumeData, error)
	Save(ctx context.Context, owner, id string, data *types.ResumeData) error
	SaveTemplate(ctx context.Context, owner, id string, name types.TemplateName) error
}

// Preferences resolves and remembers template choices per user.
type Preferences interface {
	PreferredTemplate(ctx context.Context, owner string, saved types.TemplateName) types.TemplateName
	RememberTemplate(ctx context.Context, owner string, name types.TemplateName) error
}
