// Copyright (c) 2026 Quillpad. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/quillpad/internal/platform/apperr"
	"github.com/taibuivan/quillpad/internal/platform/database/schema"
	"github.com/taibuivan/quillpad/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed comment store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

var selectComments = fmt.Sprintf(`
	SELECT %s, %s
	FROM %s c
	JOIN %s a ON a.%s = c.%s`,
	schema.Prefixed("c",
		schema.ContentComment.ID, schema.ContentComment.BlogID, schema.ContentComment.Text,
		schema.ContentComment.CreatedAt, schema.ContentComment.UpdatedAt,
	),
	schema.Prefixed("a", schema.UserAccount.ID, schema.UserAccount.Name, schema.UserAccount.AvatarURL),
	schema.ContentComment.Table,
	schema.UserAccount.Table, schema.UserAccount.ID, schema.ContentComment.AuthorID,
)

func scanComment(row pgx.Row) (*Comment, error) {
	comment := &Comment{}
	err := row.Scan(
		&comment.ID, &comment.BlogID, &comment.Text, &comment.CreatedAt, &comment.UpdatedAt,
		&comment.Author.ID, &comment.Author.Name, &comment.Author.AvatarURL,
	)
	return comment, err
}

// ListByBlog returns the comments of a post, newest first.
func (repository *PostgresRepository) ListByBlog(context context.Context, blogID string) ([]*Comment, error) {
	query := selectComments + fmt.Sprintf(` WHERE c.%s = $1 ORDER BY c.%s DESC`,
		schema.ContentComment.BlogID, schema.ContentComment.CreatedAt)

	rows, err := repository.pool.Query(context, query, blogID)
	if err != nil {
		return nil, fmt.Errorf("postgres_comment_repo_list_failed: %w", err)
	}
	defer rows.Close()

	comments := make([]*Comment, 0)
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres_comment_repo_list_scan_failed: %w", err)
		}
		comments = append(comments, comment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_comment_repo_list_rows_failed: %w", err)
	}
	return comments, nil
}

// FindByID retrieves a single comment.
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Comment, error) {
	query := selectComments + fmt.Sprintf(` WHERE c.%s = $1`, schema.ContentComment.ID)

	comment, err := scanComment(repository.pool.QueryRow(context, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Comment")
		}
		return nil, fmt.Errorf("postgres_comment_repo_find_failed: %w", err)
	}
	return comment, nil
}

/*
Create inserts a comment and fills in the author and timestamps.

The insert and the author lookup are a single statement, so a comment is
never returned without its author.
*/
func (repository *PostgresRepository) Create(context context.Context, comment *Comment) error {
	query := fmt.Sprintf(`
		WITH inserted AS (
			INSERT INTO %s (%s, %s, %s, %s)
			VALUES ($1, $2, $3, $4)
			RETURNING %s, %s, %s
		)
		SELECT i.%s, i.%s, a.%s, a.%s
		FROM inserted i
		JOIN %s a ON a.%s = i.%s`,
		schema.ContentComment.Table,
		schema.ContentComment.ID, schema.ContentComment.BlogID, schema.ContentComment.AuthorID, schema.ContentComment.Text,
		schema.ContentComment.AuthorID, schema.ContentComment.CreatedAt, schema.ContentComment.UpdatedAt,
		schema.ContentComment.CreatedAt, schema.ContentComment.UpdatedAt, schema.UserAccount.Name, schema.UserAccount.AvatarURL,
		schema.UserAccount.Table, schema.UserAccount.ID, schema.ContentComment.AuthorID,
	)

	err := repository.pool.QueryRow(context, query,
		comment.ID, comment.BlogID, comment.Author.ID, comment.Text,
	).Scan(&comment.CreatedAt, &comment.UpdatedAt, &comment.Author.Name, &comment.Author.AvatarURL)
	if err != nil {
		if dberr.IsForeignKeyViolation(err) {
			return apperr.NotFound("Blog")
		}
		return fmt.Errorf("postgres_comment_repo_create_failed: %w", err)
	}
	return nil
}

// UpdateText replaces the text and bumps updatedat.
func (repository *PostgresRepository) UpdateText(context context.Context, comment *Comment) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = now() WHERE %s = $1 RETURNING %s`,
		schema.ContentComment.Table,
		schema.ContentComment.Text, schema.ContentComment.UpdatedAt,
		schema.ContentComment.ID,
		schema.ContentComment.UpdatedAt,
	)

	if err := repository.pool.QueryRow(context, query, comment.ID, comment.Text).Scan(&comment.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperr.NotFound("Comment")
		}
		return fmt.Errorf("postgres_comment_repo_update_failed: %w", err)
	}
	return nil
}

// Delete removes a comment.
func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.ContentComment.Table, schema.ContentComment.ID)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres_comment_repo_delete_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Comment")
	}
	return nil
}
