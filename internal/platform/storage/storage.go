// Copyright (c) 2026 Quillpad. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package storage stores uploaded media in an S3-compatible bucket and
// returns a stable public URL for each object.
package storage

import (
	"context"
	"io"
)

// ObjectStorage defines the object operations used by the media service.
type ObjectStorage interface {
	EnsureBucket(ctx context.Context) error
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, key string) error
	URL(key string) string
}
