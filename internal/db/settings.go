package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jonathan/resume-builder/internal/types"
)

// GetSettings retrieves owner's settings. Returns nil when none were saved.
func (db *DB) GetSettings(ctx context.Context, owner string) (*Settings, error) {
	var s Settings
	err := db.pool.QueryRow(ctx,
		`SELECT owner, display_name, default_template, updated_at
		 FROM user_settings WHERE owner = $1`,
		owner,
	).Scan(&s.Owner, &s.DisplayName, &s.DefaultTemplate, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	return &s, nil
}

// UpsertSettings creates or replaces owner's settings
func (db *DB) UpsertSettings(ctx context.Context, owner string, settings types.UserSettings) (*Settings, error) {
	settings = settings.Normalize()
	var s Settings
	err := db.pool.QueryRow(ctx,
		`INSERT INTO user_settings (owner, display_name, default_template)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (owner) DO UPDATE
		 SET display_name = EXCLUDED.display_name, default_template = EXCLUDED.default_template, updated_at = NOW()
		 RETURNING owner, display_name, default_template, updated_at`,
		owner, settings.DisplayName, string(settings.DefaultTemplate),
	).Scan(&s.Owner, &s.DisplayName, &s.DefaultTemplate, &s.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert settings: %w", err)
	}
	return &s, nil
}
