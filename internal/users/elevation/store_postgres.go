// Copyright (c) 2026 Quillpad. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package elevation

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/quillpad/internal/platform/apperr"
	"github.com/taibuivan/quillpad/internal/platform/database/schema"
	"github.com/taibuivan/quillpad/internal/platform/dberr"
	"github.com/taibuivan/quillpad/internal/platform/postgres"
	"github.com/taibuivan/quillpad/internal/platform/sec"
	"github.com/taibuivan/quillpad/internal/users/account"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new Postgres implementation for elevation requests.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

var requestColumns = schema.List(
	schema.UserElevationRequest.ID, schema.UserElevationRequest.Name, schema.UserElevationRequest.Email,
	schema.UserElevationRequest.Password, schema.UserElevationRequest.Status, schema.UserElevationRequest.CreatedAt,
	schema.UserElevationRequest.ResolvedAt, schema.UserElevationRequest.ResolvedBy,
)

func scanRequest(row pgx.Row) (*Request, error) {
	request := &Request{}
	err := row.Scan(
		&request.ID,
		&request.Name,
		&request.Email,
		&request.PasswordHash,
		&request.Status,
		&request.CreatedAt,
		&request.ResolvedAt,
		&request.ResolvedBy,
	)
	if err != nil {
		return nil, err
	}
	return request, nil
}

/*
Create inserts a pending request and claims its email in one transaction.

Returns:
  - error: apperr.Conflict when the email claim already exists
*/
func (repository *PostgresRepository) Create(context context.Context, request *Request) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING %s`,
		schema.UserElevationRequest.Table,
		schema.UserElevationRequest.ID, schema.UserElevationRequest.Name, schema.UserElevationRequest.Email,
		schema.UserElevationRequest.Password, schema.UserElevationRequest.Status,
		schema.UserElevationRequest.CreatedAt,
	)

	err := postgres.RunInTx(context, repository.pool, func(tx pgx.Tx) error {
		if err := account.ClaimEmail(context, tx, request.Email, account.HolderRequest, request.ID); err != nil {
			return err
		}

		return tx.QueryRow(context, query,
			request.ID,
			request.Name,
			request.Email,
			request.PasswordHash,
			string(StatusPending),
		).Scan(&request.CreatedAt)
	})

	if err != nil {
		if dberr.IsUniqueViolation(err) {
			conflict := apperr.Conflict("Email is already registered or has a pending request")
			conflict.Cause = err
			return conflict
		}
		return fmt.Errorf("postgres_elevation_repo_create_failed: %w", err)
	}

	request.Status = StatusPending
	return nil
}

// FindByID retrieves a request from the users.elevationrequest table.
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Request, error) {
	return findByID(context, repository.pool, id)
}

func findByID(context context.Context, db postgres.DBTX, id string) (*Request, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		requestColumns, schema.UserElevationRequest.Table, schema.UserElevationRequest.ID)

	request, err := scanRequest(db.QueryRow(context, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Admin request")
		}
		return nil, fmt.Errorf("postgres_elevation_repo_find_by_id_failed: %w", err)
	}

	return request, nil
}

// List returns every request ordered by creation time, newest first.
func (repository *PostgresRepository) List(context context.Context) ([]*Request, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s DESC`,
		requestColumns, schema.UserElevationRequest.Table, schema.UserElevationRequest.CreatedAt)

	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, fmt.Errorf("postgres_elevation_repo_list_failed: %w", err)
	}
	defer rows.Close()

	requests := make([]*Request, 0)
	for rows.Next() {
		request, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres_elevation_repo_list_scan_failed: %w", err)
		}
		requests = append(requests, request)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_elevation_repo_list_rows_failed: %w", err)
	}

	return requests, nil
}

/*
Resolve performs the pending → terminal transition in one transaction.

 1. A conditional UPDATE guarded by status = 'pending' claims the transition.
    A concurrent resolver blocks on the row lock and then matches zero rows.
 2. The request's email claim is released.
 3. On acceptance, the admin account is inserted with the staged hash and
    claims the same email again, now as an account.

Any failure rolls back the whole transition.
*/
func (repository *PostgresRepository) Resolve(context context.Context, resolution Resolution) (*Request, *account.Account, error) {
	updateQuery := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = now(), %s = $3
		WHERE %s = $1 AND %s = $4
		RETURNING %s`,
		schema.UserElevationRequest.Table,
		schema.UserElevationRequest.Status, schema.UserElevationRequest.ResolvedAt, schema.UserElevationRequest.ResolvedBy,
		schema.UserElevationRequest.ID, schema.UserElevationRequest.Status,
		requestColumns,
	)

	var (
		resolved *Request
		created  *account.Account
	)

	err := postgres.RunInTx(context, repository.pool, func(tx pgx.Tx) error {
		request, err := scanRequest(tx.QueryRow(context, updateQuery,
			resolution.RequestID,
			string(resolution.Decision),
			resolution.ResolvedBy,
			string(StatusPending),
		))
		if errors.Is(err, pgx.ErrNoRows) {
			existing, lookupErr := findByID(context, tx, resolution.RequestID)
			if lookupErr != nil {
				return lookupErr
			}
			return apperr.InvalidState(fmt.Sprintf("Admin request is already %s", existing.Status))
		}
		if err != nil {
			return fmt.Errorf("postgres_elevation_repo_resolve_update_failed: %w", err)
		}

		if err := account.ReleaseEmail(context, tx, request.Email, account.HolderRequest, request.ID); err != nil {
			return err
		}

		if resolution.Decision == StatusAccepted {
			admin := &account.Account{
				ID:           resolution.AccountID,
				Name:         request.Name,
				Email:        request.Email,
				PasswordHash: request.PasswordHash,
				Role:         sec.RoleElevated,
			}
			if err := account.InsertInTx(context, tx, admin); err != nil {
				return err
			}
			created = admin
		}

		resolved = request
		return nil
	})

	if err != nil {
		if apperr.IsAppError(err) {
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("postgres_elevation_repo_resolve_failed: %w", err)
	}

	return resolved, created, nil
}
