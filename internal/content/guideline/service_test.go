// Copyright (c) 2026 Quillpad. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package guideline_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/quillpad/internal/content/guideline"
	"github.com/taibuivan/quillpad/internal/platform/access"
	"github.com/taibuivan/quillpad/internal/platform/apperr"
	"github.com/taibuivan/quillpad/internal/platform/sec"
)

type memoryRepository struct {
	mu       sync.Mutex
	document *guideline.Guidelines
	seeds    int
}

func (repository *memoryRepository) Get(_ context.Context, defaults []guideline.Section) (*guideline.Guidelines, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if repository.document == nil {
		repository.seeds++
		repository.document = &guideline.Guidelines{Sections: defaults, UpdatedAt: time.Now()}
	}
	copied := *repository.document
	return &copied, nil
}

func (repository *memoryRepository) Replace(_ context.Context, sections []guideline.Section, updatedBy string) (*guideline.Guidelines, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	repository.document = &guideline.Guidelines{Sections: sections, UpdatedAt: time.Now(), UpdatedBy: &updatedBy}
	copied := *repository.document
	return &copied, nil
}

/*
TestGet_SeedsDefaultsOnce verifies concurrent first reads store the defaults once.
*/
func TestGet_SeedsDefaultsOnce(t *testing.T) {
	repository := &memoryRepository{}
	service := guideline.NewService(repository)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := service.Get(context.Background())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, repository.seeds)

	guidelines, err := service.Get(context.Background())
	require.NoError(t, err)
	require.Len(t, guidelines.Sections, 4)
	assert.Equal(t, "Writing a Blog", guidelines.Sections[0].Title)
	assert.Equal(t, "Reporting a Comment", guidelines.Sections[3].Title)
}

/*
TestReplace_SupremeOnly verifies only the superadmin may edit the document.
*/
func TestReplace_SupremeOnly(t *testing.T) {
	service := guideline.NewService(&memoryRepository{})
	ctx := context.Background()
	sections := []guideline.Section{{Title: "Be kind", Rules: []string{"No insults"}}}

	for _, role := range []sec.UserRole{sec.RoleElevated, sec.RoleStandard} {
		_, err := service.Replace(ctx, access.Actor{ID: "x", Role: role}, sections)
		assert.True(t, apperr.HasCode(err, apperr.CodeForbidden), role)
	}

	guidelines, err := service.Replace(ctx, access.Actor{ID: "boss", Role: sec.RoleSupreme}, sections)
	require.NoError(t, err)
	assert.Equal(t, sections, guidelines.Sections)
	require.NotNil(t, guidelines.UpdatedBy)
	assert.Equal(t, "boss", *guidelines.UpdatedBy)
}

/*
TestReplace_CleansAndValidates trims rules, drops blanks and rejects untitled sections.
*/
func TestReplace_CleansAndValidates(t *testing.T) {
	service := guideline.NewService(&memoryRepository{})
	ctx := context.Background()
	boss := access.Actor{ID: "boss", Role: sec.RoleSupreme}

	guidelines, err := service.Replace(ctx, boss, []guideline.Section{
		{Title: " Posting ", Rules: []string{" Cite sources ", "", "   "}},
	})
	require.NoError(t, err)
	assert.Equal(t, []guideline.Section{{Title: "Posting", Rules: []string{"Cite sources"}}}, guidelines.Sections)

	_, err = service.Replace(ctx, boss, []guideline.Section{{Title: "  "}})
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "sections[0].title", appErr.Details[0].Field)

	_, err = service.Replace(ctx, boss, nil)
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))

	cleared, err := service.Replace(ctx, boss, []guideline.Section{})
	require.NoError(t, err)
	assert.Empty(t, cleared.Sections)
}
