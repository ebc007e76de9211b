package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalProvider stores objects as files below RootPath.
type LocalProvider struct {
	RootPath string
}

// NewLocalProvider returns a provider rooted at root. The directory is created
// on first write if it does not exist.
func NewLocalProvider(root string) *LocalProvider {
	return &LocalProvider{RootPath: root}
}

// Put writes body to RootPath/key.
func (l *LocalProvider) Put(ctx context.Context, key string, body io.ReadSeeker, contentType string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path := filepath.Join(l.RootPath, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create upload dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}

	_, err = io.Copy(f, body)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(path)
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}
