package storage

import (
	"context"
	"io"
)

// Storage persists uploaded media (video files, insight images, homepage
// creatives) and returns a publicly resolvable location for each object.
type Storage interface {
	// Save writes the content under the given key and returns its public URL.
	Save(ctx context.Context, key, contentType string, r io.Reader) (string, error)

	// Delete removes the object stored under the given key.
	Delete(ctx context.Context, key string) error
}
