package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/go-git/go-billy/v5"
)

// Billy adapts a go-billy filesystem (memfs, osfs, chroot, ...) to Backend
type Billy struct {
	fs billy.Filesystem
}

// NewBilly wraps a billy filesystem
func NewBilly(fs billy.Filesystem) *Billy {
	return &Billy{fs: fs}
}

// Stat returns file metadata, following symbolic links
func (b *Billy) Stat(ctx context.Context, path string) (*FileInfo, error) {
	info, err := b.fs.Stat(path)
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
func (b *Billy) ReadDir(ctx context.Context, path string) ([]FileInfo, error) {
	entries, err := b.fs.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	infos := make([]FileInfo, 0, len(entries))
	for _, info := range entries {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		infos = append(infos, FileInfo{
			Path:    b.fs.Join(path, info.Name()),
			Name:    info.Name(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
			Mode:    info.Mode(),
		})
	}

	return infos, nil
}

// Open opens a file for reading
func (b *Billy) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	file, err := b.fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	return file, nil
}

// Join joins path elements with the filesystem's separator
func (b *Billy) Join(elem ...string) string {
	return b.fs.Join(elem...)
}

// Close is a no-op; the caller owns the billy filesystem
func (b *Billy) Close() error {
	return nil
}
