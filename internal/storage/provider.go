package storage

import (
	"context"
	"io"
)

// Provider defines the behavior for any image storage backend.
type Provider interface {
	// Put writes body under key, replacing any existing object with that key.
	Put(ctx context.Context, key string, body io.ReadSeeker, contentType string) error
}
