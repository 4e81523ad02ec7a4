// Copyright (c) 2026 Quillpad. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package uuid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/quillpad/pkg/uuid"
)

/*
TestNew produces valid, distinct, time-ordered identifiers.
*/
func TestNew(t *testing.T) {
	first := uuid.New()
	second := uuid.New()

	assert.True(t, uuid.Valid(first))
	assert.NotEqual(t, first, second)
	assert.Less(t, first, second)
	assert.False(t, uuid.Valid("not-a-uuid"))
}
