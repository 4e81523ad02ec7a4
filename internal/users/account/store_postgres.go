// Copyright (c) 2026 Quillpad. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

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
)

// Constraint names from data/migrations.
const (
	constraintEmailClaim       = "emailclaim_pkey"
	constraintSingleSuperadmin = "account_single_superadmin"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new Postgres implementation for accounts.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

var accountColumns = schema.List(
	schema.UserAccount.ID, schema.UserAccount.Name, schema.UserAccount.Email,
	schema.UserAccount.Password, schema.UserAccount.AvatarURL, schema.UserAccount.Role,
	schema.UserAccount.CreatedAt, schema.UserAccount.UpdatedAt,
)

func scanAccount(row pgx.Row) (*Account, error) {
	account := &Account{}
	err := row.Scan(
		&account.ID,
		&account.Name,
		&account.Email,
		&account.PasswordHash,
		&account.AvatarURL,
		&account.Role,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return account, nil
}

// # Email Claims

/*
ClaimEmail records holder as the owner of email.

It must run in the same transaction that inserts the holder. A second claim
on the same address fails with a unique violation on the primary key.
*/
func ClaimEmail(context context.Context, db postgres.DBTX, email string, holder Holder, holderID string) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, $3)`,
		schema.UserEmailClaim.Table,
		schema.UserEmailClaim.Email, schema.UserEmailClaim.Holder, schema.UserEmailClaim.HolderID,
	)

	_, err := db.Exec(context, query, email, string(holder), holderID)
	return err
}

// ReleaseEmail drops the claim on email if it is still held by holderID.
func ReleaseEmail(context context.Context, db postgres.DBTX, email string, holder Holder, holderID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2 AND %s = $3`,
		schema.UserEmailClaim.Table,
		schema.UserEmailClaim.Email, schema.UserEmailClaim.Holder, schema.UserEmailClaim.HolderID,
	)

	if _, err := db.Exec(context, query, email, string(holder), holderID); err != nil {
		return fmt.Errorf("postgres_email_claim_release_failed: %w", err)
	}
	return nil
}

// # Inserts

/*
InsertInTx claims the email and inserts account using db, which is expected
to be a transaction owned by the caller.

Returns:
  - error: apperr.Conflict on a duplicate email or a second supreme account
*/
func InsertInTx(context context.Context, db postgres.DBTX, account *Account) error {
	if err := insertAccount(context, db, account); err != nil {
		return mapInsertError(err)
	}
	return nil
}

func insertAccount(context context.Context, db postgres.DBTX, account *Account) error {
	if err := ClaimEmail(context, db, account.Email, HolderAccount, account.ID); err != nil {
		return err
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING %s, %s`,
		schema.UserAccount.Table,
		schema.UserAccount.ID, schema.UserAccount.Name, schema.UserAccount.Email,
		schema.UserAccount.Password, schema.UserAccount.AvatarURL, schema.UserAccount.Role,
		schema.UserAccount.CreatedAt, schema.UserAccount.UpdatedAt,
	)

	return db.QueryRow(context, query,
		account.ID,
		account.Name,
		account.Email,
		account.PasswordHash,
		account.AvatarURL,
		string(account.Role),
	).Scan(&account.CreatedAt, &account.UpdatedAt)
}

func mapInsertError(err error) error {
	if !dberr.IsUniqueViolation(err) {
		return dberr.Wrap(err, "account_insert")
	}

	conflict := apperr.Conflict("Email is already registered")
	if dberr.ConstraintName(err) == constraintSingleSuperadmin {
		conflict = apperr.Conflict("A superadmin account already exists")
	}
	conflict.Cause = err
	return conflict
}

// # Repository Methods

// Create inserts account and its email claim in one transaction.
func (repository *PostgresRepository) Create(context context.Context, account *Account) error {
	return postgres.RunInTx(context, repository.pool, func(tx pgx.Tx) error {
		return InsertInTx(context, tx, account)
	})
}

// FindByID retrieves an account from the users.account table.
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Account, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		accountColumns, schema.UserAccount.Table, schema.UserAccount.ID)

	account, err := scanAccount(repository.pool.QueryRow(context, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Account")
		}
		return nil, fmt.Errorf("postgres_account_repo_find_by_id_failed: %w", err)
	}

	return account, nil
}

// FindByEmail retrieves an account by its normalized email.
func (repository *PostgresRepository) FindByEmail(context context.Context, email string) (*Account, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		accountColumns, schema.UserAccount.Table, schema.UserAccount.Email)

	account, err := scanAccount(repository.pool.QueryRow(context, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Account")
		}
		return nil, fmt.Errorf("postgres_account_repo_find_by_email_failed: %w", err)
	}

	return account, nil
}

// List returns every account ordered by creation time, newest first.
func (repository *PostgresRepository) List(context context.Context) ([]*Account, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s DESC`,
		accountColumns, schema.UserAccount.Table, schema.UserAccount.CreatedAt)

	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, fmt.Errorf("postgres_account_repo_list_failed: %w", err)
	}
	defer rows.Close()

	accounts := make([]*Account, 0)
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres_account_repo_list_scan_failed: %w", err)
		}
		accounts = append(accounts, account)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_account_repo_list_rows_failed: %w", err)
	}

	return accounts, nil
}

/*
SetRole changes an account role with one conditional UPDATE.

The WHERE clause excludes supreme rows, so the check and the write happen in
the same statement. When no row is updated a follow-up lookup tells a missing
account apart from a supreme one.
*/
func (repository *PostgresRepository) SetRole(context context.Context, id string, newRole sec.UserRole) (*Account, error) {
	if !newRole.Assignable() {
		return nil, apperr.Forbidden("The superadmin role cannot be assigned")
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = now()
		WHERE %s = $1 AND %s <> $3
		RETURNING %s`,
		schema.UserAccount.Table,
		schema.UserAccount.Role, schema.UserAccount.UpdatedAt,
		schema.UserAccount.ID, schema.UserAccount.Role,
		accountColumns,
	)

	account, err := scanAccount(repository.pool.QueryRow(context, query, id, string(newRole), string(sec.RoleSupreme)))
	if err == nil {
		return account, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("postgres_account_repo_set_role_failed: %w", err)
	}

	if _, lookupErr := repository.FindByID(context, id); lookupErr != nil {
		return nil, lookupErr
	}
	return nil, apperr.Forbidden("The superadmin role cannot be changed")
}

// Update persists the mutable profile fields of an account.
func (repository *PostgresRepository) Update(context context.Context, account *Account) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = now()
		WHERE %s = $1
		RETURNING %s`,
		schema.UserAccount.Table,
		schema.UserAccount.Name, schema.UserAccount.AvatarURL, schema.UserAccount.UpdatedAt,
		schema.UserAccount.ID,
		schema.UserAccount.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query, account.ID, account.Name, account.AvatarURL).Scan(&account.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperr.NotFound("Account")
		}
		return fmt.Errorf("postgres_account_repo_update_failed: %w", err)
	}

	return nil
}

// UpdatePassword replaces the credential hash of an account.
func (repository *PostgresRepository) UpdatePassword(context context.Context, id, passwordHash string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = now() WHERE %s = $1`,
		schema.UserAccount.Table,
		schema.UserAccount.Password, schema.UserAccount.UpdatedAt,
		schema.UserAccount.ID,
	)

	tag, err := repository.pool.Exec(context, query, id, passwordHash)
	if err != nil {
		return fmt.Errorf("postgres_account_repo_update_password_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Account")
	}

	return nil
}

/*
EnsureSupreme seeds the supreme account when none exists.

The partial unique index on role = 'superadmin' makes a concurrent seed from
another instance fail with a unique violation, which is reported as "already
seeded" rather than an error.
*/
func (repository *PostgresRepository) EnsureSupreme(context context.Context, account *Account) (bool, error) {
	account.Role = sec.RoleSupreme
	created := false

	existsQuery := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`,
		schema.UserAccount.Table, schema.UserAccount.Role)

	err := postgres.RunInTx(context, repository.pool, func(tx pgx.Tx) error {
		var exists bool
		if err := tx.QueryRow(context, existsQuery, string(sec.RoleSupreme)).Scan(&exists); err != nil {
			return fmt.Errorf("postgres_account_repo_supreme_lookup_failed: %w", err)
		}
		if exists {
			return nil
		}

		if err := insertAccount(context, tx, account); err != nil {
			return err
		}
		created = true
		return nil
	})

	if err != nil {
		if dberr.IsUniqueViolation(err) && dberr.ConstraintName(err) == constraintSingleSuperadmin {
			return false, nil
		}
		if dberr.IsUniqueViolation(err) && dberr.ConstraintName(err) == constraintEmailClaim {
			return false, apperr.Conflict("Superadmin email is already held by another account or request")
		}
		return false, fmt.Errorf("postgres_account_repo_ensure_supreme_failed: %w", err)
	}

	return created, nil
}
