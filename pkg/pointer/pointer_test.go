// Copyright (c) 2026 Quillpad. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pointer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/quillpad/pkg/pointer"
)

/*
TestPointer covers the nil and non-nil paths of each helper.
*/
func TestPointer(t *testing.T) {
	name := pointer.To("Ann")
	assert.Equal(t, "Ann", *name)


	assert.Equal(t, "Ann", pointer.Fallback(name, "Bob"))
	assert.Equal(t, "Bob", pointer.Fallback(nil, "Bob"))
}
