package upload

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/georgemunganga/printa-dashboard/internal/form"
)

// Service uploads the documents attached to customers and payments.
type Service interface {
	// Upload sends an image to the hosting provider and returns its public URL.
	Upload(ctx context.Context, filename string, content io.Reader) (*File, error)
}

type service struct {
	gateway Gateway
}

// NewService creates a new upload service.
func NewService(gateway Gateway) Service {
	return &service{gateway: gateway}
}

var imageExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true,
	".bmp": true, ".webp": true, ".tif": true, ".tiff": true, ".heic": true,
}

func (s *service) Upload(ctx context.Context, filename string, content io.Reader) (*File, error) {
	if strings.TrimSpace(filename) == "" {
		return nil, form.Invalid("file", form.MsgRequired)
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if !imageExtensions[ext] {
		return nil, form.Invalid("file", "Only image files can be uploaded.")
	}
	// Hosted copies never carry the client's file name.
	id := uuid.New()
	url, err := s.gateway.Upload(ctx, id.String()+ext, content)
	if err != nil {
		return nil, fmt.Errorf("upload %s: %w", filename, err)
	}
	return &File{ID: id, Filename: filename, URL: url}, nil
}
