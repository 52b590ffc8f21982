package ratelimit

import (
	"context"
	"io"
)

// ReadCloser limits reads from an underlying io.ReadCloser
type ReadCloser struct {
	ctx     context.Context
	rc      io.ReadCloser
	limiter *Limiter
}

// NewReadCloser wraps rc, or returns it unchanged when limiter is nil
func NewReadCloser(ctx context.Context, rc io.ReadCloser, limiter *Limiter) io.ReadCloser {
	if limiter == nil {
		return rc
	}
	return &ReadCloser{ctx: ctx, rc: rc, limiter: limiter}
}

// Read waits for bandwidth before reading. A cancelled context surfaces as its error.
func (r *ReadCloser) Read(p []byte) (int, error) {
	want := int64(len(p))
	if want > r.limiter.bucketSize {
		want = r.limiter.bucketSize
	}

	if err := r.limiter.Wait(r.ctx, want); err != nil {
		return 0, err
	}

	n, err := r.rc.Read(p[:want])
	r.limiter.refund(want - int64(n))
	return n, err
}

// Close closes the underlying reader
func (r *ReadCloser) Close() error {
	return r.rc.Close()
}

// Wrapper returns a reader wrapper applying limiter to every reader, or nil
// when limiter is nil
func Wrapper(limiter *Limiter) func(ctx context.Context, rc io.ReadCloser) io.ReadCloser {
	if limiter == nil {
		return nil
	}
	return func(ctx context.Context, rc io.ReadCloser) io.ReadCloser {
		return NewReadCloser(ctx, rc, limiter)
	}
}
