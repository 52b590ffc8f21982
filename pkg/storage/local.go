package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Local is the operating system filesystem backend
type Local struct{}

// NewLocal creates a new local filesystem backend
func NewLocal() *Local {
	return &Local{}
}

// Stat returns file metadata
func (l *Local) Stat(ctx context.Context, path string) (*FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	return &FileInfo{
		Path:    path,
		Name:    info.Name(),
		Size:    info.Size(),
		ModTime: info.ModTime(),
		Mode:    info.Mode(),
	}, nil
}

// ReadDir lists the entries of a directory
func (l *Local) ReadDir(ctx context.Context, path string) ([]FileInfo, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	infos := make([]FileInfo, 0, len(entries))
	for _, entry := range entries {
		// Check context cancellation
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		// Info is an lstat; it fails if the entry vanished since the listing
		info, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("failed to stat entry %s: %w", entry.Name(), err)
		}

		infos = append(infos, FileInfo{
			Path:    filepath.Join(path, entry.Name()),
			Name:    entry.Name(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
			Mode:    info.Mode(),
		})
	}

	return infos, nil
}

// Open opens a file for reading
func (l *Local) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	return file, nil
}

// Join joins path elements with the platform separator
func (l *Local) Join(elem ...string) string {
	return filepath.Join(elem...)
}

// Close releases resources (no-op for local filesystem)
func (l *Local) Close() error {
	return nil
}
