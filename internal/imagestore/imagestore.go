// Package imagestore looks up food display images by the image reference
// stored on each food item.
package imagestore

import (
	"context"
	"errors"
	"io"
)

var (
	ErrNotFound   = errors.New("image not found")
	ErrInvalidKey = errors.New("invalid image key")
)

type ImageStore interface {
	// Get opens the image stored under key. The caller closes the reader.
	Get(ctx context.Context, key string) (io.ReadCloser, string, error)
}
