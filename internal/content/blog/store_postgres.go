// Copyright (c) 2026 Quillpad. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package blog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/quillpad/internal/platform/apperr"
	"github.com/taibuivan/quillpad/internal/platform/database/schema"
	"github.com/taibuivan/quillpad/internal/platform/dberr"
	"github.com/taibuivan/quillpad/internal/platform/postgres"
)

// PostgresRepository implements [Repository] using pgx.
//
// Tags, likes and reports are aggregated in sub-selects so a post is
// hydrated in a single round-trip.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed post store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// # Query Building

// selectPosts returns the hydrated post projection over "b" (blog) joined
// to "a" (author). extra columns are appended after the standard ones.
func selectPosts(extra ...string) string {
	columns := []string{
		schema.Prefixed("b",
			schema.ContentBlog.ID, schema.ContentBlog.Title, schema.ContentBlog.Content,
			schema.ContentBlog.Category, schema.ContentBlog.ImageURL,
			schema.ContentBlog.CreatedAt, schema.ContentBlog.UpdatedAt,
		),
		schema.Prefixed("a", schema.UserAccount.ID, schema.UserAccount.Name, schema.UserAccount.AvatarURL),
		fmt.Sprintf(`COALESCE((
			SELECT json_agg(json_build_object('id', t.%s, 'name', t.%s, 'slug', t.%s) ORDER BY t.%s)
			FROM %s t
			JOIN %s bt ON bt.%s = t.%s
			WHERE bt.%s = b.%s
		), '[]') AS tags`,
			schema.ContentTag.ID, schema.ContentTag.Name, schema.ContentTag.Slug, schema.ContentTag.Name,
			schema.ContentTag.Table,
			schema.ContentBlogTag.Table, schema.ContentBlogTag.TagID, schema.ContentTag.ID,
			schema.ContentBlogTag.BlogID, schema.ContentBlog.ID,
		),
		fmt.Sprintf(`COALESCE((
			SELECT array_agg(l.%s::text ORDER BY l.%s)
			FROM %s l
			WHERE l.%s = b.%s
		), '{}') AS likes`,
			schema.ContentBlogLike.AccountID, schema.ContentBlogLike.CreatedAt,
			schema.ContentBlogLike.Table,
			schema.ContentBlogLike.BlogID, schema.ContentBlog.ID,
		),
	}
	columns = append(columns, extra...)

	return fmt.Sprintf(`SELECT %s FROM %s b JOIN %s a ON a.%s = b.%s`,
		strings.Join(columns, ",\n\t\t"),
		schema.ContentBlog.Table,
		schema.UserAccount.Table, schema.UserAccount.ID, schema.ContentBlog.AuthorID,
	)
}

// postDest returns scan targets for the standard projection followed by extra.
func postDest(post *Post, tagsJSON *[]byte, extra ...any) []any {
	dest := []any{
		&post.ID, &post.Title, &post.Content, &post.Category, &post.ImageURL,
		&post.CreatedAt, &post.UpdatedAt,
		&post.Author.ID, &post.Author.Name, &post.Author.AvatarURL,
		tagsJSON,
		&post.Likes,
	}
	return append(dest, extra...)
}

func finishPost(post *Post, tagsJSON []byte) error {
	if err := json.Unmarshal(tagsJSON, &post.Tags); err != nil {
		return fmt.Errorf("postgres_blog_tags_decode_failed: %w", err)
	}
	if post.Likes == nil {
		post.Likes = []string{}
	}
	post.LikeCount = len(post.Likes)
	return nil
}

// escapeLike escapes the ILIKE wildcards in s.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// # Reads

/*
List returns a filtered page of posts and the total match count.

Description: COUNT(*) OVER() yields the total without a second query.

Parameters:
  - context: context.Context
  - filter: Filter (search, category, tag slugs)
  - limit: int
  - offset: int

Returns:
  - []*Post: Hydrated posts, newest first
  - int: Total count matching filters
  - error: Database execution errors
*/
func (repository *PostgresRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Post, int, error) {
	var queryBuilder strings.Builder
	var args []any
	argID := 1

	queryBuilder.WriteString(selectPosts("COUNT(*) OVER() AS total_count"))
	queryBuilder.WriteString(" WHERE TRUE")

	if search := strings.TrimSpace(filter.Search); search != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND (b.%s ILIKE $%d OR a.%s ILIKE $%d)",
			schema.ContentBlog.Title, argID, schema.UserAccount.Name, argID))
		args = append(args, "%"+escapeLike(search)+"%")
		argID++
	}

	if filter.Category != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND b.%s = $%d", schema.ContentBlog.Category, argID))
		args = append(args, filter.Category)
		argID++
	}

	if len(filter.Tags) > 0 {
		queryBuilder.WriteString(fmt.Sprintf(` AND EXISTS (
			SELECT 1 FROM %s ft JOIN %s t ON t.%s = ft.%s
			WHERE ft.%s = b.%s AND t.%s = ANY($%d))`,
			schema.ContentBlogTag.Table, schema.ContentTag.Table, schema.ContentTag.ID, schema.ContentBlogTag.TagID,
			schema.ContentBlogTag.BlogID, schema.ContentBlog.ID, schema.ContentTag.Slug, argID))
		args = append(args, filter.Tags)
		argID++
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY b.%s DESC, b.%s DESC LIMIT $%d OFFSET $%d",
		schema.ContentBlog.CreatedAt, schema.ContentBlog.ID, argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.pool.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_blog_repo_list_failed: %w", err)
	}
	defer rows.Close()

	posts := make([]*Post, 0, limit)
	total := 0
	for rows.Next() {
		post := &Post{}
		var tagsJSON []byte
		if err := rows.Scan(postDest(post, &tagsJSON, &total)...); err != nil {
			return nil, 0, fmt.Errorf("postgres_blog_repo_list_scan_failed: %w", err)
		}
		if err := finishPost(post, tagsJSON); err != nil {
			return nil, 0, err
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_blog_repo_list_rows_failed: %w", err)
	}

	return posts, total, nil
}

// FindByID retrieves a single hydrated post.
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Post, error) {
	return findByID(context, repository.pool, id)
}

func findByID(context context.Context, db postgres.DBTX, id string) (*Post, error) {
	query := selectPosts() + fmt.Sprintf(" WHERE b.%s = $1", schema.ContentBlog.ID)

	post := &Post{}
	var tagsJSON []byte
	if err := db.QueryRow(context, query, id).Scan(postDest(post, &tagsJSON)...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Blog")
		}
		return nil, fmt.Errorf("postgres_blog_repo_find_by_id_failed: %w", err)
	}

	if err := finishPost(post, tagsJSON); err != nil {
		return nil, err
	}
	return post, nil
}

// ListByAuthor returns every post by authorID, newest first.
func (repository *PostgresRepository) ListByAuthor(context context.Context, authorID string) ([]*Post, error) {
	query := selectPosts() + fmt.Sprintf(" WHERE b.%s = $1 ORDER BY b.%s DESC",
		schema.ContentBlog.AuthorID, schema.ContentBlog.CreatedAt)

	rows, err := repository.pool.Query(context, query, authorID)
	if err != nil {
		return nil, fmt.Errorf("postgres_blog_repo_list_by_author_failed: %w", err)
	}
	defer rows.Close()

	posts := make([]*Post, 0)
	for rows.Next() {
		post := &Post{}
		var tagsJSON []byte
		if err := rows.Scan(postDest(post, &tagsJSON)...); err != nil {
			return nil, fmt.Errorf("postgres_blog_repo_list_by_author_scan_failed: %w", err)
		}
		if err := finishPost(post, tagsJSON); err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_blog_repo_list_by_author_rows_failed: %w", err)
	}

	return posts, nil
}

// # Writes

func replaceTags(context context.Context, tx pgx.Tx, blogID string, tagIDs []string) error {
	deleteQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.ContentBlogTag.Table, schema.ContentBlogTag.BlogID)
	if _, err := tx.Exec(context, deleteQuery, blogID); err != nil {
		return fmt.Errorf("postgres_blog_tags_clear_failed: %w", err)
	}

	insertQuery := fmt.Sprintf(`INSERT INTO %s (%s, %s) SELECT $1, unnest($2::uuid[])`,
		schema.ContentBlogTag.Table, schema.ContentBlogTag.BlogID, schema.ContentBlogTag.TagID)
	if _, err := tx.Exec(context, insertQuery, blogID, tagIDs); err != nil {
		if dberr.IsForeignKeyViolation(err) {
			return apperr.ValidationError("Unknown tag", apperr.FieldError{Field: "tags", Message: "One or more tags do not exist"})
		}
		return fmt.Errorf("postgres_blog_tags_insert_failed: %w", err)
	}

	return nil
}

// Create inserts post and links tagIDs, then re-reads the hydrated post.
func (repository *PostgresRepository) Create(context context.Context, post *Post, tagIDs []string) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		schema.ContentBlog.Table,
		schema.ContentBlog.ID, schema.ContentBlog.AuthorID, schema.ContentBlog.Title,
		schema.ContentBlog.Content, schema.ContentBlog.Category, schema.ContentBlog.ImageURL,
	)

	err := postgres.RunInTx(context, repository.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(context, query,
			post.ID, post.Author.ID, post.Title, post.Content, post.Category, post.ImageURL,
		); err != nil {
			return dberr.Wrap(err, "blog_insert")
		}

		if err := replaceTags(context, tx, post.ID, tagIDs); err != nil {
			return err
		}

		hydrated, err := findByID(context, tx, post.ID)
		if err != nil {
			return err
		}
		*post = *hydrated
		return nil
	})

	if err != nil {
		if apperr.IsAppError(err) {
			return err
		}
		return fmt.Errorf("postgres_blog_repo_create_failed: %w", err)
	}
	return nil
}

// Update persists the editable fields of post and optionally its tags.
func (repository *PostgresRepository) Update(context context.Context, post *Post, tagIDs []string) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = now()
		WHERE %s = $1`,
		schema.ContentBlog.Table,
		schema.ContentBlog.Title, schema.ContentBlog.Content, schema.ContentBlog.Category,
		schema.ContentBlog.ImageURL, schema.ContentBlog.UpdatedAt,
		schema.ContentBlog.ID,
	)

	err := postgres.RunInTx(context, repository.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(context, query, post.ID, post.Title, post.Content, post.Category, post.ImageURL)
		if err != nil {
			return fmt.Errorf("postgres_blog_repo_update_failed: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return apperr.NotFound("Blog")
		}

		if tagIDs != nil {
			if err := replaceTags(context, tx, post.ID, tagIDs); err != nil {
				return err
			}
		}

		hydrated, err := findByID(context, tx, post.ID)
		if err != nil {
			return err
		}
		*post = *hydrated
		return nil
	})

	if err != nil {
		if apperr.IsAppError(err) {
			return err
		}
		return fmt.Errorf("postgres_blog_repo_update_tx_failed: %w", err)
	}
	return nil
}

// Delete removes a post; dependent rows go with it through ON DELETE CASCADE.
func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.ContentBlog.Table, schema.ContentBlog.ID)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres_blog_repo_delete_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Blog")
	}
	return nil
}

/*
ToggleLike removes the like of accountID if present, otherwise adds it.

Both branches and the final count run in one transaction; the primary key on
(blogid, accountid) keeps a double click from liking twice.
*/
func (repository *PostgresRepository) ToggleLike(context context.Context, blogID, accountID string) (*LikeState, error) {
	deleteQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.ContentBlogLike.Table, schema.ContentBlogLike.BlogID, schema.ContentBlogLike.AccountID)
	insertQuery := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		schema.ContentBlogLike.Table, schema.ContentBlogLike.BlogID, schema.ContentBlogLike.AccountID)
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = $1`,
		schema.ContentBlogLike.Table, schema.ContentBlogLike.BlogID)

	state := &LikeState{}
	err := postgres.RunInTx(context, repository.pool, func(tx pgx.Tx) error {
		removed, err := tx.Exec(context, deleteQuery, blogID, accountID)
		if err != nil {
			return fmt.Errorf("postgres_blog_like_delete_failed: %w", err)
		}

		if removed.RowsAffected() == 0 {
			if _, err := tx.Exec(context, insertQuery, blogID, accountID); err != nil {
				if dberr.IsForeignKeyViolation(err) {
					return apperr.NotFound("Blog")
				}
				return fmt.Errorf("postgres_blog_like_insert_failed: %w", err)
			}
			state.Liked = true
		}

		return tx.QueryRow(context, countQuery, blogID).Scan(&state.LikeCount)
	})

	if err != nil {
		if apperr.IsAppError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("postgres_blog_repo_toggle_like_failed: %w", err)
	}
	return state, nil
}

// # Moderation

// AddReport inserts a report against an existing post.
func (repository *PostgresRepository) AddReport(context context.Context, report *Report) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
		RETURNING %s`,
		schema.ContentBlogReport.Table,
		schema.ContentBlogReport.ID, schema.ContentBlogReport.BlogID,
		schema.ContentBlogReport.ReporterID, schema.ContentBlogReport.Reason,
		schema.ContentBlogReport.CreatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		report.ID, report.BlogID, report.Reporter.ID, report.Reason,
	).Scan(&report.CreatedAt)
	if err != nil {
		if dberr.IsForeignKeyViolation(err) {
			return apperr.NotFound("Blog")
		}
		return fmt.Errorf("postgres_blog_repo_add_report_failed: %w", err)
	}
	return nil
}

// ListReported returns reported posts ordered by most recent report first.
func (repository *PostgresRepository) ListReported(context context.Context) ([]*ReportedPost, error) {
	reportsColumn := fmt.Sprintf(`COALESCE((
			SELECT json_agg(json_build_object(
				'id', r.%s, 'reason', r.%s, 'createdAt', r.%s,
				'reporter', json_build_object('id', ra.%s, 'name', ra.%s)
			) ORDER BY r.%s DESC)
			FROM %s r
			JOIN %s ra ON ra.%s = r.%s
			WHERE r.%s = b.%s
		), '[]') AS reports`,
		schema.ContentBlogReport.ID, schema.ContentBlogReport.Reason, schema.ContentBlogReport.CreatedAt,
		schema.UserAccount.ID, schema.UserAccount.Name,
		schema.ContentBlogReport.CreatedAt,
		schema.ContentBlogReport.Table,
		schema.UserAccount.Table, schema.UserAccount.ID, schema.ContentBlogReport.ReporterID,
		schema.ContentBlogReport.BlogID, schema.ContentBlog.ID,
	)
	lastColumn := fmt.Sprintf(`(SELECT max(r.%s) FROM %s r WHERE r.%s = b.%s) AS last_reported_at`,
		schema.ContentBlogReport.CreatedAt, schema.ContentBlogReport.Table,
		schema.ContentBlogReport.BlogID, schema.ContentBlog.ID,
	)

	query := selectPosts(reportsColumn, lastColumn) + fmt.Sprintf(`
		WHERE EXISTS (SELECT 1 FROM %s r WHERE r.%s = b.%s)
		ORDER BY last_reported_at DESC`,
		schema.ContentBlogReport.Table, schema.ContentBlogReport.BlogID, schema.ContentBlog.ID,
	)

	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, fmt.Errorf("postgres_blog_repo_list_reported_failed: %w", err)
	}
	defer rows.Close()

	reported := make([]*ReportedPost, 0)
	for rows.Next() {
		item := &ReportedPost{Post: &Post{}}
		var tagsJSON, reportsJSON []byte
		if err := rows.Scan(postDest(item.Post, &tagsJSON, &reportsJSON, &item.LastReportedAt)...); err != nil {
			return nil, fmt.Errorf("postgres_blog_repo_list_reported_scan_failed: %w", err)
		}
		if err := finishPost(item.Post, tagsJSON); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(reportsJSON, &item.Reports); err != nil {
			return nil, fmt.Errorf("postgres_blog_reports_decode_failed: %w", err)
		}
		reported = append(reported, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_blog_repo_list_reported_rows_failed: %w", err)
	}

	return reported, nil
}
