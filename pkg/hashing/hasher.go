// Package hashing streams the content of a file or directory input through
// a selected hash algorithm, producing one digest per input.
package hashing

import (
	"context"
	"io"
	"strings"
	"sync"

	"github.com/sdejongh/hashcompare/pkg/manifest"
	"github.com/sdejongh/hashcompare/pkg/models"
	"github.com/sdejongh/hashcompare/pkg/storage"
)

// DefaultChunkSize is the size of each read fed to the hash state
const DefaultChunkSize = 64 * 1024

// ReaderWrapper wraps every file reader opened by the hasher (e.g., for rate limiting)
type ReaderWrapper func(ctx context.Context, rc io.ReadCloser) io.ReadCloser

// Hasher computes input digests over a storage backend
type Hasher struct {
	backend       storage.Backend
	registry      *Registry
	chunkSize     int
	bufferPool    *sync.Pool
	readerWrapper ReaderWrapper
}

// NewHasher creates a hasher reading chunkSize bytes at a time. A nil
// registry selects the default registry.
func NewHasher(backend storage.Backend, registry *Registry, chunkSize int) *Hasher {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if registry == nil {
		registry = Default
	}
	return &Hasher{
		backend:   backend,
		registry:  registry,
		chunkSize: chunkSize,
		bufferPool: &sync.Pool{
			New: func() interface{} {
				buf := make([]byte, chunkSize)
				return &buf
			},
		},
	}
}

// ChunkSize returns the read chunk size in bytes
func (h *Hasher) ChunkSize() int {
	return h.chunkSize
}

// SetReaderWrapper sets a function to wrap file readers
func (h *Hasher) SetReaderWrapper(wrapper ReaderWrapper) {
	h.readerWrapper = wrapper
}

// NewState creates a task state matching this hasher's chunk size
func (h *Hasher) NewState(algorithm string) *State {
	return NewState(algorithm, h.chunkSize)
}

// Hash canonicalizes root, streams every file in manifest order through the
// state's algorithm and, when includeNames is set, appends the JSON manifest.
// On cancellation it returns models.ErrCancelled and the state never completes.
func (h *Hasher) Hash(ctx context.Context, root string, state *State, includeNames bool) ([]byte, error) {
	info, err := h.backend.Stat(ctx, root)
	if err != nil {
		return nil, models.WrapPathError("stat", root, err)
	}

	m, err := manifest.Build(ctx, h.backend, root)
	if err != nil {
		return nil, err
	}

	hs, err := h.registry.New(state.Algorithm())
	if err != nil {
		return nil, err
	}

	bufPtr := h.bufferPool.Get().(*[]byte)
	defer h.bufferPool.Put(bufPtr)
	buffer := *bufPtr

	for _, rel := range m {
		if ctx.Err() != nil {
			return nil, models.ErrCancelled
		}

		path := root
		if info.IsDir() {
			path = h.backend.Join(append([]string{root}, strings.Split(rel, "/")...)...)
		}

		if err := h.hashFile(ctx, path, hs, buffer, state); err != nil {
			return nil, err
		}
	}

	if includeNames {
		encoded, err := m.Encode()
		if err != nil {
			return nil, err
		}
		hs.Write(encoded)
	}

	digest := hs.Sum(nil)
	state.finish(digest)
	return digest, nil
}

// hashFile feeds one file into hs. Every full or final partial chunk counts
// as chunkSize bytes of progress.
func (h *Hasher) hashFile(ctx context.Context, path string, hs io.Writer, buffer []byte, state *State) error {
	reader, err := h.backend.Open(ctx, path)
	if err != nil {
		return models.WrapPathError("open", path, err)
	}
	if h.readerWrapper != nil {
		reader = h.readerWrapper(ctx, reader)
	}
	defer reader.Close()

	for {
		// Check context cancellation
		select {
		case <-ctx.Done():
			return models.ErrCancelled
		default:
		}

		n, err := io.ReadFull(reader, buffer)
		if n > 0 {
			hs.Write(buffer[:n])
			state.addChunk()
		}
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil
		}
		if err != nil {
			return models.WrapPathError("read", path, err)
		}
	}
}
