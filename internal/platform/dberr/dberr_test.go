// Copyright (c) 2026 Quillpad. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dberr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/quillpad/internal/platform/apperr"
	"github.com/taibuivan/quillpad/internal/platform/dberr"
)

/*
TestWrap verifies the translation of driver errors into application error codes.
*/
func TestWrap(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code string
	}{
		{"no_rows", pgx.ErrNoRows, apperr.CodeNotFound},
		{"unique", &pgconn.PgError{Code: "23505", ConstraintName: "emailclaim_pkey"}, apperr.CodeConflict},
		{"wrapped_unique", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}), apperr.CodeConflict},
		{"foreign_key", &pgconn.PgError{Code: "23503"}, apperr.CodeValidation},
		{"other", errors.New("connection reset"), apperr.CodeInternal},
		{"already_classified", apperr.Forbidden("no"), apperr.CodeForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, apperr.HasCode(dberr.Wrap(tt.err, "test_action"), tt.code))
		})
	}

	assert.NoError(t, dberr.Wrap(nil, "noop"))
}

/*
TestWrap_HidesDriverMessage ensures the client-facing message never contains SQL details.
*/
func TestWrap_HidesDriverMessage(t *testing.T) {
	err := dberr.Wrap(&pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"}, "account_insert")

	assert.NotContains(t, err.Error(), "duplicate key")
	assert.True(t, dberr.IsUniqueViolation(err))
}

/*
TestConstraintName extracts the violated constraint from a wrapped error.
*/
func TestConstraintName(t *testing.T) {
	err := fmt.Errorf("x: %w", &pgconn.PgError{Code: "23505", ConstraintName: "tag_name_key"})

	assert.Equal(t, "tag_name_key", dberr.ConstraintName(err))
	assert.Empty(t, dberr.ConstraintName(errors.New("plain")))
	assert.False(t, dberr.IsForeignKeyViolation(err))
}
