// Copyright (c) 2026 Quillpad. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package media_test

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/quillpad/internal/media"
	"github.com/taibuivan/quillpad/internal/platform/access"
	"github.com/taibuivan/quillpad/internal/platform/apperr"
	"github.com/taibuivan/quillpad/internal/platform/constants"
	"github.com/taibuivan/quillpad/internal/platform/ctxutil"
	"github.com/taibuivan/quillpad/internal/platform/sec"
)

type memoryStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{objects: make(map[string][]byte), types: make(map[string]string)}
}

func (store *memoryStorage) EnsureBucket(context.Context) error { return nil }

func (store *memoryStorage) Put(_ context.Context, key string, r io.Reader, _ int64, contentType string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	store.mu.Lock()
	defer store.mu.Unlock()
	store.objects[key] = data
	store.types[key] = contentType
	return nil
}

func (store *memoryStorage) Delete(_ context.Context, key string) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	delete(store.objects, key)
	return nil
}

func (store *memoryStorage) URL(key string) string {
	return "https://cdn.quillpad.test/" + key
}

var (
	pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	ann       = access.Actor{ID: "ann", Role: sec.RoleStandard}
)

/*
TestStore_Image uploads a sniffed PNG under the caller's prefix.
*/
func TestStore_Image(t *testing.T) {
	store := newMemoryStorage()
	service := media.NewService(store)

	upload, err := service.Store(context.Background(), ann, bytes.NewReader(pngHeader))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(upload.Key, "uploads/ann/"))
	assert.True(t, strings.HasSuffix(upload.Key, ".png"))
	assert.Equal(t, "image/png", upload.ContentType)
	assert.Equal(t, "https://cdn.quillpad.test/"+upload.Key, upload.URL)
	assert.Equal(t, pngHeader, store.objects[upload.Key])
}

/*
TestStore_Rejects covers empty, non-image and oversized bodies.
*/
func TestStore_Rejects(t *testing.T) {
	service := media.NewService(newMemoryStorage())
	ctx := context.Background()

	_, err := service.Store(ctx, ann, bytes.NewReader(nil))
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))

	_, err = service.Store(ctx, ann, strings.NewReader("plain text, not an image"))
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))

	oversized := append(append([]byte{}, pngHeader...), make([]byte, constants.MaxMediaBytes)...)
	_, err = service.Store(ctx, ann, bytes.NewReader(oversized))
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
}

/*
TestStore_Unconfigured reports 503 when no bucket is wired.
*/
func TestStore_Unconfigured(t *testing.T) {
	_, err := media.NewService(nil).Store(context.Background(), ann, bytes.NewReader(pngHeader))
	assert.True(t, apperr.HasCode(err, apperr.CodeServiceUnavailable))
}

/*
TestUploadRoute_Multipart accepts a form upload from an authenticated caller.
*/
func TestUploadRoute_Multipart(t *testing.T) {
	handler := media.NewHandler(media.NewService(newMemoryStorage()))
	router := chi.NewRouter()
	router.Mount("/media", handler.Routes())

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	part, err := form.CreateFormFile(media.FieldFile, "cover.png")
	require.NoError(t, err)
	_, err = part.Write(pngHeader)
	require.NoError(t, err)
	require.NoError(t, form.Close())

	newRequest := func() *http.Request {
		request := httptest.NewRequest(http.MethodPost, "/media", bytes.NewReader(body.Bytes()))
		request.Header.Set("Content-Type", form.FormDataContentType())
		return request
	}

	anonymous := httptest.NewRecorder()
	router.ServeHTTP(anonymous, newRequest())
	assert.Equal(t, http.StatusUnauthorized, anonymous.Code)

	request := newRequest()
	request = request.WithContext(ctxutil.WithClaims(request.Context(), &sec.AuthClaims{UserID: "ann", Role: string(sec.RoleStandard)}))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusCreated, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "uploads/ann/")
}
