// Package upload stores admin image uploads in S3 compatible storage.
package upload

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"path"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/redmonkez12/advisory-cms/internal/logging"
)

var (
	ErrNoFile        = errors.New("no file uploaded")
	ErrInvalidFolder = errors.New("invalid folder")
)

var folderPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+(/[a-zA-Z0-9_-]+)*$`)

// File is an uploaded file read into memory
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Result describes a stored object. Width and height are zero for files
// that are not gif, jpeg or png.
type Result struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Format   string `json:"format"`
}

type Service struct {
	store         ObjectStore
	defaultFolder string
}

func NewService(store ObjectStore, defaultFolder string) *Service {
	return &Service{store: store, defaultFolder: defaultFolder}
}

// Upload stores f under folder/<uuid>.<ext>
func (s *Service) Upload(ctx context.Context, folder string, f File) (*Result, error) {
	logger := logging.GetLoggerFromContext(ctx)

	if len(f.Data) == 0 {
		return nil, ErrNoFile
	}

	folder = strings.Trim(folder, "/")
	if folder == "" {
		folder = s.defaultFolder
	}
	if !folderPattern.MatchString(folder) {
		return nil, ErrInvalidFolder
	}

	res := &Result{Format: strings.TrimPrefix(strings.ToLower(path.Ext(f.Name)), ".")}
	if cfg, format, err := image.DecodeConfig(bytes.NewReader(f.Data)); err == nil {
		res.Width, res.Height, res.Format = cfg.Width, cfg.Height, format
	}

	ext := res.Format
	if ext == "jpeg" {
		ext = "jpg"
	}
	res.PublicID = folder + "/" + uuid.NewString()
	key := res.PublicID
	if ext != "" {
		key += "." + ext
	}

	contentType := f.ContentType
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(f.Data)
	}

	url, err := s.store.Put(ctx, key, bytes.NewReader(f.Data), int64(len(f.Data)), contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to store %s: %w", key, err)
	}
	res.URL = url

	logger.Info("file uploaded", "key", key, "size", len(f.Data), "format", res.Format)
	return res, nil
}
