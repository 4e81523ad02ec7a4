// Copyright (c) 2026 Quillpad. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package guideline

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/quillpad/internal/platform/database/schema"
)

// documentID is the primary key of the single guidelines row.
const documentID = 1

// PostgresRepository implements [Repository] on a single JSONB row.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed guidelines store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

/*
Get returns the document.

Concurrent first reads race on the insert; ON CONFLICT DO NOTHING lets the
losers fall through to the select, so the defaults are stored once.
*/
func (repository *PostgresRepository) Get(context context.Context, defaults []Section) (*Guidelines, error) {
	payload, err := json.Marshal(defaults)
	if err != nil {
		return nil, fmt.Errorf("postgres_guideline_defaults_encode_failed: %w", err)
	}

	seed := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2) ON CONFLICT (%s) DO NOTHING`,
		schema.ContentGuideline.Table,
		schema.ContentGuideline.ID, schema.ContentGuideline.Sections,
		schema.ContentGuideline.ID,
	)
	if _, err := repository.pool.Exec(context, seed, documentID, payload); err != nil {
		return nil, fmt.Errorf("postgres_guideline_repo_seed_failed: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		schema.List(schema.ContentGuideline.Sections, schema.ContentGuideline.UpdatedAt, schema.ContentGuideline.UpdatedBy),
		schema.ContentGuideline.Table,
		schema.ContentGuideline.ID,
	)

	var raw []byte
	guidelines := &Guidelines{}
	if err := repository.pool.QueryRow(context, query, documentID).Scan(&raw, &guidelines.UpdatedAt, &guidelines.UpdatedBy); err != nil {
		return nil, fmt.Errorf("postgres_guideline_repo_get_failed: %w", err)
	}

	if err := json.Unmarshal(raw, &guidelines.Sections); err != nil {
		return nil, fmt.Errorf("postgres_guideline_decode_failed: %w", err)
	}
	return guidelines, nil
}

// Replace upserts the document with sections.
func (repository *PostgresRepository) Replace(context context.Context, sections []Section, updatedBy string) (*Guidelines, error) {
	payload, err := json.Marshal(sections)
	if err != nil {
		return nil, fmt.Errorf("postgres_guideline_encode_failed: %w", err)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, now(), $3)
		ON CONFLICT (%s) DO UPDATE
		SET %s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s
		RETURNING %s`,
		schema.ContentGuideline.Table,
		schema.ContentGuideline.ID, schema.ContentGuideline.Sections, schema.ContentGuideline.UpdatedAt, schema.ContentGuideline.UpdatedBy,
		schema.ContentGuideline.ID,
		schema.ContentGuideline.Sections, schema.ContentGuideline.Sections,
		schema.ContentGuideline.UpdatedAt, schema.ContentGuideline.UpdatedAt,
		schema.ContentGuideline.UpdatedBy, schema.ContentGuideline.UpdatedBy,
		schema.ContentGuideline.UpdatedAt,
	)

	guidelines := &Guidelines{Sections: sections, UpdatedBy: &updatedBy}
	if err := repository.pool.QueryRow(context, query, documentID, payload, updatedBy).Scan(&guidelines.UpdatedAt); err != nil {
		return nil, fmt.Errorf("postgres_guideline_repo_replace_failed: %w", err)
	}
	return guidelines, nil
}
