// Copyright (c) 2026 Quillpad. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/quillpad/internal/platform/apperr"
	"github.com/taibuivan/quillpad/internal/platform/validate"
)

/*
TestValidator_Required tests the mandatory field validation logic.
*/
func TestValidator_Required(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		hasError bool
	}{
		{"valid_string", "Ann", false},
		{"empty_string", "", true},
		{"whitespace_only", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Required("name", tt.value)

			if !tt.hasError {
				assert.NoError(t, v.Err())
				assert.Nil(t, v.Err())
				return
			}

			ae := apperr.As(v.Err())
			require.NotNil(t, ae)
			assert.Equal(t, apperr.CodeValidation, ae.Code)
			assert.Equal(t, "name", ae.Details[0].Field)
		})
	}
}

/*
TestValidator_Email checks the email format validation rule.
*/
func TestValidator_Email(t *testing.T) {
	tests := []struct {
		email   string
		isValid bool
	}{
		{"ann@x.com", true},
		{"invalid-email", false},
		{"test@", false},
		{"Ann <ann@x.com>", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			v := &validate.Validator{}
			v.Email("email", tt.email)
			assert.Equal(t, !tt.isValid, v.Err() != nil)
		})
	}
}

/*
TestValidator_Count checks the inclusive bounds used for post tags.
*/
func TestValidator_Count(t *testing.T) {
	assert.Error(t, (&validate.Validator{}).Count("tags", 0, 1, 5).Err())
	assert.NoError(t, (&validate.Validator{}).Count("tags", 1, 1, 5).Err())
	assert.NoError(t, (&validate.Validator{}).Count("tags", 5, 1, 5).Err())
	assert.Error(t, (&validate.Validator{}).Count("tags", 6, 1, 5).Err())
}

/*
TestValidator_URL accepts empty values and absolute http(s) URLs only.
*/
func TestValidator_URL(t *testing.T) {
	assert.NoError(t, (&validate.Validator{}).URL("avatar", "").Err())
	assert.NoError(t, (&validate.Validator{}).URL("avatar", "https://cdn.quillpad.app/a.png").Err())
	assert.Error(t, (&validate.Validator{}).URL("avatar", "ftp://host/a.png").Err())
	assert.Error(t, (&validate.Validator{}).URL("avatar", "/relative.png").Err())
}

/*
TestValidator_Chain_Failure tests error accumulation in the chain.
*/
func TestValidator_Chain_Failure(t *testing.T) {
	err := (&validate.Validator{}).
		Required("name", "").
		MaxLen("password", "abcdefg", 6).
		Email("email", "not-an-email").
		URL("avatar", "ftp://host/a.png").
		UUID("id", "0190a6f2-3b4c-7d8e-9f01-23456789abcd").
		Err()

	ae := apperr.As(err)
	require.NotNil(t, ae)
	require.Len(t, ae.Details, 4)

	fields := make([]string, 0, len(ae.Details))
	for _, detail := range ae.Details {
		fields = append(fields, detail.Field)
	}
	assert.Equal(t, []string{"name", "password", "email", "avatar"}, fields)
}

/*
TestValidator_UUID accepts canonical UUIDs in either case.
*/
func TestValidator_UUID(t *testing.T) {
	assert.NoError(t, (&validate.Validator{}).UUID("id", "0190a6f2-3b4c-7d8e-9f01-23456789abcd").Err())
	assert.NoError(t, (&validate.Validator{}).UUID("id", "0190A6F2-3B4C-7D8E-9F01-23456789ABCD").Err())
	assert.Error(t, (&validate.Validator{}).UUID("id", "not-a-uuid").Err())
	assert.Error(t, (&validate.Validator{}).UUID("id", "").Err())
}

/*
TestValidator_Slug rejects empty, padded and uppercase slugs.
*/
func TestValidator_Slug(t *testing.T) {
	assert.NoError(t, (&validate.Validator{}).Slug("slug", "cafe-culture").Err())
	assert.Error(t, (&validate.Validator{}).Slug("slug", "").Err())
	assert.Error(t, (&validate.Validator{}).Slug("slug", "-go").Err())
	assert.Error(t, (&validate.Validator{}).Slug("slug", "Go").Err())
}
