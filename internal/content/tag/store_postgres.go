// Copyright (c) 2026 Quillpad. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tag

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/quillpad/internal/platform/apperr"
	"github.com/taibuivan/quillpad/internal/platform/database/schema"
	"github.com/taibuivan/quillpad/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed tag store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// List returns every tag, newest first.
func (repository *PostgresRepository) List(context context.Context) ([]*Tag, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s DESC`,
		schema.List(schema.ContentTag.ID, schema.ContentTag.Name, schema.ContentTag.Slug, schema.ContentTag.CreatedAt),
		schema.ContentTag.Table,
		schema.ContentTag.CreatedAt,
	)

	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, fmt.Errorf("postgres_tag_repo_list_failed: %w", err)
	}
	defer rows.Close()

	tags := make([]*Tag, 0)
	for rows.Next() {
		tag := &Tag{}
		if err := rows.Scan(&tag.ID, &tag.Name, &tag.Slug, &tag.CreatedAt); err != nil {
			return nil, fmt.Errorf("postgres_tag_repo_list_scan_failed: %w", err)
		}
		tags = append(tags, tag)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_tag_repo_list_rows_failed: %w", err)
	}
	return tags, nil
}

// Create inserts a tag and fills in its creation time.
func (repository *PostgresRepository) Create(context context.Context, tag *Tag) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, $3) RETURNING %s`,
		schema.ContentTag.Table,
		schema.ContentTag.ID, schema.ContentTag.Name, schema.ContentTag.Slug,
		schema.ContentTag.CreatedAt,
	)

	if err := repository.pool.QueryRow(context, query, tag.ID, tag.Name, tag.Slug).Scan(&tag.CreatedAt); err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict("Tag already exists")
		}
		return fmt.Errorf("postgres_tag_repo_create_failed: %w", err)
	}
	return nil
}

// Delete removes a tag; content.blogtag rows cascade.
func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.ContentTag.Table, schema.ContentTag.ID)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres_tag_repo_delete_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Tag")
	}
	return nil
}
