package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redmonkez12/advisory-cms/internal/config"
)

type putCall struct {
	key         string
	contentType string
	size        int64
	body        []byte
}

type fakeStore struct {
	calls []putCall
	err   error
}

func (f *fakeStore) Put(_ context.Context, key string, body io.Reader, size int64, contentType string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	data, _ := io.ReadAll(body)
	f.calls = append(f.calls, putCall{key: key, contentType: contentType, size: size, body: data})
	return "https://cdn.example.com/" + key, nil
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func multipartRequest(t *testing.T, target, filename string, data []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if filename != "" {
		part, err := mw.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func serve(h *Handler, req *http.Request) (int, map[string]any) {
	rec := httptest.NewRecorder()
	h.Upload(rec, req)
	var out map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &out)
	return rec.Code, out
}

func TestHandler_UploadImage(t *testing.T) {
	store := &fakeStore{}
	h := NewHandler(NewService(store, "business-ally"), 20<<20, false)

	code, body := serve(h, multipartRequest(t, "/upload", "Logo.PNG", pngBytes(t, 3, 2)))
	require.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, "Image uploaded successfully.", body["message"])

	data := body["data"].(map[string]any)
	assert.EqualValues(t, 3, data["width"])
	assert.EqualValues(t, 2, data["height"])
	assert.Equal(t, "png", data["format"])

	require.Len(t, store.calls, 1)
	call := store.calls[0]
	assert.True(t, strings.HasPrefix(call.key, "business-ally/"))
	assert.True(t, strings.HasSuffix(call.key, ".png"))
	assert.Equal(t, "https://cdn.example.com/"+call.key, data["url"])
	assert.Equal(t, strings.TrimSuffix(call.key, ".png"), data["publicId"])
	assert.Equal(t, "image/png", call.contentType)
	assert.EqualValues(t, len(call.body), call.size)
}

func TestHandler_UploadFolderAndNonImage(t *testing.T) {
	store := &fakeStore{}
	h := NewHandler(NewService(store, "business-ally"), 20<<20, false)

	code, body := serve(h, multipartRequest(t, "/upload?folder=blog/covers", "brochure.pdf", []byte("%PDF-1.4 test")))
	require.Equal(t, http.StatusOK, code, body)

	data := body["data"].(map[string]any)
	assert.Equal(t, "pdf", data["format"])
	assert.EqualValues(t, 0, data["width"])
	assert.True(t, strings.HasPrefix(store.calls[0].key, "blog/covers/"))

	code, body = serve(h, multipartRequest(t, "/upload?folder=../etc", "a.png", pngBytes(t, 1, 1)))
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Invalid folder.", body["message"])
}

func TestHandler_UploadErrors(t *testing.T) {
	store := &fakeStore{}
	h := NewHandler(NewService(store, "business-ally"), 1<<20, false)

	code, body := serve(h, multipartRequest(t, "/upload", "", nil))
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "No file uploaded.", body["message"])

	code, body = serve(h, multipartRequest(t, "/upload", "big.png", make([]byte, 1<<20+512)))
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "File size too large. Maximum size is 1MB.", body["message"])

	code, body = serve(h, multipartRequest(t, "/upload", "huge.png", make([]byte, 3<<20)))
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "FILE_TOO_LARGE", body["code"])
	assert.Empty(t, store.calls)

	store.err = errors.New("bucket unavailable")
	code, body = serve(h, multipartRequest(t, "/upload", "a.png", pngBytes(t, 1, 1)))
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "Error uploading image.", body["message"])
	assert.Nil(t, body["error"])
}

func TestPublicBaseURL(t *testing.T) {
	assert.Equal(t, "https://cdn.example.com", publicBaseURL(config.StorageConfig{PublicBaseURL: "https://cdn.example.com", S3Bucket: "b"}))
	assert.Equal(t, "http://localhost:9000/media", publicBaseURL(config.StorageConfig{S3Endpoint: "http://localhost:9000", S3Bucket: "media"}))
	assert.Equal(t, "https://media.s3.ap-south-1.amazonaws.com", publicBaseURL(config.StorageConfig{S3Bucket: "media", S3Region: "ap-south-1"}))
}
