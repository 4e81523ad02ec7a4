// Copyright (c) 2026 Quillpad. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package admin serves the moderator dashboard figures.
package admin

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/quillpad/internal/platform/access"
	"github.com/taibuivan/quillpad/internal/platform/database/schema"
)

// Stats are the platform-wide totals.
type Stats struct {
	TotalUsers int `json:"totalUsers"`
	TotalBlogs int `json:"totalBlogs"`
}

// Counter computes [Stats].
type Counter interface {
	Count(context context.Context) (*Stats, error)
}

// PostgresCounter implements [Counter] with a single round-trip.
type PostgresCounter struct {
	pool *pgxpool.Pool
}

// NewPostgresCounter constructs a PostgreSQL backed [Counter].
func NewPostgresCounter(pool *pgxpool.Pool) *PostgresCounter {
	return &PostgresCounter{pool: pool}
}

// Count returns the number of accounts and posts.
func (counter *PostgresCounter) Count(context context.Context) (*Stats, error) {
	query := fmt.Sprintf(`SELECT (SELECT COUNT(*) FROM %s), (SELECT COUNT(*) FROM %s)`,
		schema.UserAccount.Table, schema.ContentBlog.Table)

	stats := &Stats{}
	if err := counter.pool.QueryRow(context, query).Scan(&stats.TotalUsers, &stats.TotalBlogs); err != nil {
		return nil, fmt.Errorf("postgres_admin_count_failed: %w", err)
	}
	return stats, nil
}

// Service guards access to [Stats].
type Service struct {
	counter Counter
}

// NewService constructs a stats [Service].
func NewService(counter Counter) *Service {
	return &Service{counter: counter}
}

// Stats returns the totals to a moderator.
func (service *Service) Stats(context context.Context, actor access.Actor) (*Stats, error) {
	if err := access.Require(access.CanModerate(actor.Role), "Only admins can view statistics"); err != nil {
		return nil, err
	}

	stats, err := service.counter.Count(context)
	if err != nil {
		return nil, fmt.Errorf("admin_service_stats_failed: %w", err)
	}
	return stats, nil
}
