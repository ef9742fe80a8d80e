package local

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/vbonduro/campusfoods/internal/imagestore"
)

// LocalImageStore serves images from a directory on disk.
type LocalImageStore struct {
	basePath string
}

func NewLocalImageStore(basePath string) (*LocalImageStore, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create image directory: %w", err)
	}
	return &LocalImageStore{basePath: basePath}, nil
}

func (s *LocalImageStore) Get(ctx context.Context, key string) (io.ReadCloser, string, error) {
	filePath, err := s.safeJoin(key)
	if err != nil {
		return nil, "", err
	}

	f, err := os.Open(filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, "", imagestore.ErrNotFound
		}
		return nil, "", fmt.Errorf("failed to open image: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, "", fmt.Errorf("failed to stat image: %w", err)
	}
	if info.IsDir() {
		_ = f.Close()
		return nil, "", imagestore.ErrNotFound
	}

	return f, extToMimeType(filePath), nil
}

// safeJoin resolves key relative to basePath and rejects directory traversal.
func (s *LocalImageStore) safeJoin(key string) (string, error) {
	absBase, err := filepath.Abs(s.basePath)
	if err != nil {
		return "", fmt.Errorf("invalid base path: %w", err)
	}

	absPath, err := filepath.Abs(filepath.Join(s.basePath, key))
	if err != nil {
		return "", fmt.Errorf("invalid path: %w", err)
	}

	if !strings.HasPrefix(absPath, absBase+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: path traversal attempt", imagestore.ErrInvalidKey)
	}
	return absPath, nil
}

func extToMimeType(filePath string) string {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "image/jpeg"
	}
}
