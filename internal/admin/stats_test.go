// Copyright (c) 2026 Quillpad. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package admin_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/quillpad/internal/admin"
	"github.com/taibuivan/quillpad/internal/platform/access"
	"github.com/taibuivan/quillpad/internal/platform/apperr"
	"github.com/taibuivan/quillpad/internal/platform/sec"
)

type fixedCounter struct{ stats admin.Stats }

func (counter fixedCounter) Count(context.Context) (*admin.Stats, error) {
	stats := counter.stats
	return &stats, nil
}

/*
TestStats_ModeratorsOnly verifies standard accounts are refused.
*/
func TestStats_ModeratorsOnly(t *testing.T) {
	service := admin.NewService(fixedCounter{admin.Stats{TotalUsers: 3, TotalBlogs: 7}})
	ctx := context.Background()

	for _, role := range []sec.UserRole{sec.RoleElevated, sec.RoleSupreme} {
		stats, err := service.Stats(ctx, access.Actor{ID: "m", Role: role})
		require.NoError(t, err)
		assert.Equal(t, &admin.Stats{TotalUsers: 3, TotalBlogs: 7}, stats)
	}

	_, err := service.Stats(ctx, access.Actor{ID: "w", Role: sec.RoleStandard})
	assert.True(t, apperr.HasCode(err, apperr.CodeForbidden))
}
