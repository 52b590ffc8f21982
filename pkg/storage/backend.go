package storage

import (
	"context"
	"io"
	"io/fs"
	"time"
)

// FileInfo represents metadata about a filesystem entry
type FileInfo struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
	Mode    fs.FileMode
}

// IsDir reports whether the entry is a directory
func (fi FileInfo) IsDir() bool {
	return fi.Mode.IsDir()
}

// IsRegular reports whether the entry is a regular file.
// Symlinks listed by ReadDir are never regular.
func (fi FileInfo) IsRegular() bool {
	return fi.Mode.IsRegular()
}

// Backend defines the read-only filesystem operations a comparison needs.
// Implementations include the local filesystem and any go-billy filesystem.
type Backend interface {
	// Stat returns metadata for path, following symbolic links
	Stat(ctx context.Context, path string) (*FileInfo, error)

	// ReadDir lists the direct children of a directory. Entries carry their
	// own mode; symbolic links are not followed. Order is unspecified.
	ReadDir(ctx context.Context, path string) ([]FileInfo, error)

	// Open opens a file for reading
	Open(ctx context.Context, path string) (io.ReadCloser, error)

	// Join joins path elements using the backend's separator
	Join(elem ...string) string

	// Close releases any resources held by the backend
	Close() error
}
