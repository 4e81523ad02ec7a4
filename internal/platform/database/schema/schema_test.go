// Copyright (c) 2026 Quillpad. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/quillpad/internal/platform/database/schema"
)

/*
TestColumnLists verifies the column helpers used to build queries.
*/
func TestColumnLists(t *testing.T) {
	assert.Equal(t, "id, name, slug", schema.List(schema.ContentTag.ID, schema.ContentTag.Name, schema.ContentTag.Slug))
	assert.Equal(t, "t.id, t.name", schema.Prefixed("t", schema.ContentTag.ID, schema.ContentTag.Name))
	assert.NotContains(t, schema.UserAccount.Columns(), "")
	assert.Equal(t, "users.elevationrequest", schema.UserElevationRequest.Table)
}
