package manifest

import (
	"context"

	"github.com/sdejongh/hashcompare/pkg/storage"
)

// Estimate is the size of an input as seen by the hasher
type Estimate struct {
	// Files is the number of regular files
	Files int

	// TotalBytes is the sum of the sizes of every regular file
	TotalBytes int64

	// ChunkedBytes is the byte count the hasher will account for, each file
	// rounded up to a whole number of chunks
	ChunkedBytes int64
}

// EstimateSize computes the total size of root using the same inclusion
// rules as Build, so a size mismatch always implies a digest mismatch.
func EstimateSize(ctx context.Context, backend storage.Backend, root string, chunkSize int) (*Estimate, error) {
	entries, err := walk(ctx, backend, root)
	if err != nil {
		return nil, err
	}

	est := &Estimate{Files: len(entries)}
	for _, e := range entries {
		est.TotalBytes += e.size
		est.ChunkedBytes += ChunkedSize(e.size, chunkSize)
	}

	return est, nil
}

// ChunkedSize rounds size up to a multiple of chunkSize
func ChunkedSize(size int64, chunkSize int) int64 {
	if chunkSize <= 0 || size <= 0 {
		return 0
	}
	chunk := int64(chunkSize)
	return (size + chunk - 1) / chunk * chunk
}
