// Copyright (c) 2026 Quillpad. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package media accepts image uploads for avatars and post covers and stores
them in object storage, returning the public URL callers then save on the
account or post.
*/
package media

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path"

	"github.com/taibuivan/quillpad/internal/platform/access"
	"github.com/taibuivan/quillpad/internal/platform/apperr"
	"github.com/taibuivan/quillpad/internal/platform/constants"
	"github.com/taibuivan/quillpad/internal/platform/ctxutil"
	"github.com/taibuivan/quillpad/internal/platform/storage"
	"github.com/taibuivan/quillpad/internal/platform/validate"
	"github.com/taibuivan/quillpad/pkg/uuid"
)

// FieldFile is the multipart field and validation detail name of the upload.
const FieldFile = "file"

// extensions maps the accepted sniffed content types to object key suffixes.
var extensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// Upload is the stored object.
type Upload struct {
	Key         string `json:"key"`
	URL         string `json:"url"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
}

// Service stores uploads in an [storage.ObjectStorage].
type Service struct {
	storage storage.ObjectStorage
}

// NewService constructs a media [Service]. A nil store disables uploads.
func NewService(store storage.ObjectStorage) *Service {
	return &Service{storage: store}
}

/*
Store reads at most [constants.MaxMediaBytes] from body, checks that it is an
image by content sniffing and uploads it under uploads/<actor>/.

The declared content type of the client is ignored.

Returns:
  - *Upload: The stored object and its public URL
  - error: ServiceUnavailable without storage, ValidationError on bad input
*/
func (service *Service) Store(context context.Context, actor access.Actor, body io.Reader) (*Upload, error) {
	if service.storage == nil {
		return nil, apperr.ServiceUnavailable("Media storage is not configured")
	}

	data, err := io.ReadAll(io.LimitReader(body, constants.MaxMediaBytes+1))
	if err != nil {
		return nil, fmt.Errorf("media_service_read_failed: %w", err)
	}

	switch {
	case len(data) == 0:
		return nil, validate.RequiredError(FieldFile, "This field is required")
	case len(data) > constants.MaxMediaBytes:
		return nil, validate.RequiredError(FieldFile, fmt.Sprintf("Maximum %d bytes", constants.MaxMediaBytes))
	}

	contentType := http.DetectContentType(data)
	extension, ok := extensions[contentType]
	if !ok {
		return nil, validate.RequiredError(FieldFile, "Must be a PNG, JPEG, GIF or WebP image")
	}

	key := path.Join("uploads", actor.ID, uuid.New()+extension)
	if err := service.storage.Put(context, key, bytes.NewReader(data), int64(len(data)), contentType); err != nil {
		return nil, fmt.Errorf("media_service_put_failed: %w", err)
	}

	ctxutil.GetLogger(context).InfoContext(context, "media_uploaded",
		slog.String("key", key),
		slog.Int("size", len(data)),
	)

	return &Upload{
		Key:         key,
		URL:         service.storage.URL(key),
		ContentType: contentType,
		Size:        int64(len(data)),
	}, nil
}
