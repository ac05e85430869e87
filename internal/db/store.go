package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/session"
	"github.com/jonathan/resume-builder/internal/types"
)

// Store adapts DB to the session gateway. Every document written is
// validated against the resume schema first.
type Store struct {
	db *DB
}

// NewStore wraps db.
func NewStore(db *DB) *Store {
	return &Store{db: db}
}

var _ session.Gateway = (*Store)(nil)

// ParseID parses a resume ID. Malformed IDs are reported as not found.
func ParseID(id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("resume %q: %w", id, session.ErrNotFound)
	}
	return parsed, nil
}

func gatewayError(err error) error {
	if errors.Is(err, ErrNotFound) {
		return fmt.Errorf("%w: %v", session.ErrNotFound, err)
	}
	return err
}

// Load implements session.Gateway.
func (s *Store) Load(ctx context.Context, owner, id string) (*types.ResumeData, error) {
	rid, err := ParseID(id)
	if err != nil {
		return nil, err
	}
	r, err := s.db.GetResume(ctx, owner, rid)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, session.ErrNotFound
	}
	return &r.Document, nil
}

// Save implements session.Gateway.
func (s *Store) Save(ctx context.Context, owner, id string, data *types.ResumeData) error {
	rid, err := ParseID(id)
	if err != nil {
		return err
	}
	if err := schemas.ValidateResume(data); err != nil {
		return err
	}
	return gatewayError(s.db.UpdateResume(ctx, owner, rid, data))
}

// SaveTemplate implements session.Gateway.
func (s *Store) SaveTemplate(ctx context.Context, owner, id string, name types.TemplateName) error {
	rid, err := ParseID(id)
	if err != nil {
		return err
	}
	return gatewayError(s.db.UpdateTemplate(ctx, owner, rid, name))
}

// Create validates and stores a new resume.
func (s *Store) Create(ctx context.Context, owner string, data *types.ResumeData) (*Resume, error) {
	if err := schemas.ValidateResume(data); err != nil {
		return nil, err
	}
	return s.db.CreateResume(ctx, owner, data)
}

// List returns owner's resume summaries.
func (s *Store) List(ctx context.Context, owner string) ([]types.ResumeSummary, error) {
	return s.db.ListResumes(ctx, owner)
}

// Delete removes owner's resume.
func (s *Store) Delete(ctx context.Context, owner, id string) error {
	rid, err := ParseID(id)
	if err != nil {
		return err
	}
	return gatewayError(s.db.DeleteResume(ctx, owner, rid))
}

// GetSettings returns owner's saved settings, or nil when none were saved.
func (s *Store) GetSettings(ctx context.Context, owner string) (*types.UserSettings, error) {
	row, err := s.db.GetSettings(ctx, owner)
	if err != nil || row == nil {
		return nil, err
	}
	us := row.UserSettings()
	return &us, nil
}

// PutSettings saves owner's settings.
func (s *Store) PutSettings(ctx context.Context, owner string, settings types.UserSettings) error {
	_, err := s.db.UpsertSettings(ctx, owner, settings)
	return err
}
