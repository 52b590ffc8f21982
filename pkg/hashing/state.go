package hashing

import (
	"sync/atomic"

	"github.com/sdejongh/hashcompare/pkg/models"
)

// State tracks one hashing task. It is written only by the Hasher running
// the task; observers may read it concurrently without locking.
type State struct {
	algorithm string
	chunkSize int

	expectedTotal  atomic.Int64
	bytesProcessed atomic.Int64
	complete       atomic.Bool

	// digest is written once, before complete is set
	digest []byte
}

// NewState creates the state of a task hashing with algorithm in chunkSize chunks
func NewState(algorithm string, chunkSize int) *State {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &State{algorithm: algorithm, chunkSize: chunkSize}
}

// Algorithm returns the hash algorithm name
func (s *State) Algorithm() string { return s.algorithm }

// ChunkSize returns the read chunk size in bytes
func (s *State) ChunkSize() int { return s.chunkSize }

// SetExpectedTotal sets the progress denominator in chunk-granular bytes
func (s *State) SetExpectedTotal(n int64) { s.expectedTotal.Store(n) }

// ExpectedTotal returns the progress denominator, 0 when unknown
func (s *State) ExpectedTotal() int64 { return s.expectedTotal.Load() }

// BytesProcessed returns the chunk-granular count of bytes hashed so far
func (s *State) BytesProcessed() int64 { return s.bytesProcessed.Load() }

// Complete reports whether the digest is available
func (s *State) Complete() bool { return s.complete.Load() }

// Digest returns the final digest, or nil until the task completes
func (s *State) Digest() []byte {
	if !s.complete.Load() {
		return nil
	}
	return s.digest
}

// Progress returns a point-in-time view of the task
func (s *State) Progress() models.SideProgress {
	p := models.SideProgress{
		BytesProcessed: s.BytesProcessed(),
		ExpectedTotal:  s.ExpectedTotal(),
		Complete:       s.Complete(),
	}
	if p.ExpectedTotal > 0 {
		p.Known = true
		p.Percent = int(p.BytesProcessed * 100 / p.ExpectedTotal)
		if p.Percent > 100 {
			p.Percent = 100
		}
	}
	return p
}

func (s *State) addChunk() {
	s.bytesProcessed.Add(int64(s.chunkSize))
}

func (s *State) finish(digest []byte) {
	s.digest = digest
	s.complete.Store(true)
}
