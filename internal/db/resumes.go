package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/resume-builder/internal/types"
)

const resumeColumns = `id, owner, document, template, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanResume(row rowScanner) (*Resume, error) {
	var r Resume
	var doc []byte
	var template string
	if err := row.Scan(&r.ID, &r.Owner, &doc, &template, &r.CreatedAt, &r.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(doc, &r.Document); err != nil {
		return nil, fmt.Errorf("failed to decode resume %s: %w", r.ID, err)
	}
	r.Template = types.TemplateName(template)
	r.Document.Template = r.Template
	return &r, nil
}

// templateFor picks the column value for a document, defaulting when unset.
func templateFor(data *types.ResumeData) types.TemplateName {
	if data.Template.Valid() {
		return data.Template
	}
	return types.DefaultTemplate
}

// CreateResume stores a new resume for owner and returns the created row
func (db *DB) CreateResume(ctx context.Context, owner string, data *types.ResumeData) (*Resume, error) {
	doc := data.Clone()
	doc.Template = templateFor(&doc)
	jsonBytes, err := json.Marshal(&doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal resume: %w", err)
	}

	row := db.pool.QueryRow(ctx,
		`INSERT INTO resumes (id, owner, document, template)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+resumeColumns,
		uuid.New(), owner, jsonBytes, string(doc.Template),
	)
	r, err := scanResume(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create resume: %w", err)
	}
	return r, nil
}

// GetResume retrieves a resume by ID for owner. Returns nil when absent.
func (db *DB) GetResume(ctx context.Context, owner string, id uuid.UUID) (*Resume, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+resumeColumns+` FROM resumes WHERE id = $1 AND owner = $2`,
		id, owner,
	)
	r, err := scanResume(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}
	return r, nil
}

// ListResumes retrieves owner's resumes, newest first
func (db *DB) ListResumes(ctx context.Context, owner string) ([]types.ResumeSummary, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+resumeColumns+` FROM resumes WHERE owner = $1 ORDER BY created_at DESC`,
		owner,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	defer rows.Close()

	summaries := []types.ResumeSummary{}
	for rows.Next() {
		r, err := scanResume(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan resume: %w", err)
		}
		summaries = append(summaries, r.Summary())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	return summaries, nil
}

// UpdateResume replaces the full document of owner's resume
func (db *DB) UpdateResume(ctx context.Context, owner string, id uuid.UUID, data *types.ResumeData) error {
	doc := data.Clone()
	doc.Template = templateFor(&doc)
	jsonBytes, err := json.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("failed to marshal resume: %w", err)
	}

	result, err := db.pool.Exec(ctx,
		`UPDATE resumes SET document = $1, template = $2, updated_at = NOW()
		 WHERE id = $3 AND owner = $4`,
		jsonBytes, string(doc.Template), id, owner,
	)
	if err != nil {
		return fmt.Errorf("failed to update resume: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("resume %s: %w", id, ErrNotFound)
	}
	return nil
}

// UpdateTemplate changes only the template of owner's resume
func (db *DB) UpdateTemplate(ctx context.Context, owner string, id uuid.UUID, name types.TemplateName) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE resumes
		 SET template = $1, document = jsonb_set(document, '{template}', to_jsonb($1::text)), updated_at = NOW()
		 WHERE id = $2 AND owner = $3`,
		string(name), id, owner,
	)
	if err != nil {
		return fmt.Errorf("failed to update template: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("resume %s: %w", id, ErrNotFound)
	}
	return nil
}

// DeleteResume deletes owner's resume
func (db *DB) DeleteResume(ctx context.Context, owner string, id uuid.UUID) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM resumes WHERE id = $1 AND owner = $2`, id, owner)
	if err != nil {
		return fmt.Errorf("failed to delete resume: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("resume %s: %w", id, ErrNotFound)
	}
	return nil
}
