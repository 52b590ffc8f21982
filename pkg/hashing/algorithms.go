package hashing

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"
	"sort"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/zeebo/blake3"
	"github.com/zeebo/xxh3"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/blake2s"
	"golang.org/x/crypto/sha3"

	"github.com/sdejongh/hashcompare/pkg/models"
)

// Constructor returns a fresh hash state
type Constructor func() hash.Hash

// DefaultPreference is the order in which a default algorithm is chosen:
// the fastest first, then the historical default, then the legacy fallback.
var DefaultPreference = []string{"blake3", "sha256", "md5"}

// Registry maps algorithm names to constructors
type Registry struct {
	mu         sync.RWMutex
	algorithms map[string]Constructor
	preference []string
}

// NewRegistry creates an empty registry using the given default preference order
func NewRegistry(preference ...string) *Registry {
	return &Registry{
		algorithms: make(map[string]Constructor),
		preference: preference,
	}
}

// Register adds or replaces an algorithm
func (r *Registry) Register(name string, c Constructor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.algorithms[normalize(name)] = c
}

// Available returns the registered algorithm names, sorted
func (r *Registry) Available() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.algorithms))
	for name := range r.algorithms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether name is registered
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.algorithms[normalize(name)]
	return ok
}

// New returns a fresh hash state for name
func (r *Registry) New(name string) (hash.Hash, error) {
	r.mu.RLock()
	c, ok := r.algorithms[normalize(name)]
	r.mu.RUnlock()

	if !ok {
		return nil, r.unavailable(name)
	}
	return c(), nil
}

// Recommended returns the first algorithm of the preference order that is registered
func (r *Registry) Recommended() (string, error) {
	for _, name := range r.preference {
		if r.Has(name) {
			return normalize(name), nil
		}
	}
	return "", &models.ConfigurationError{
		Message:   fmt.Sprintf("none of the default hash algorithms is available (tried %s)", strings.Join(r.preference, ", ")),
		Available: r.Available(),
	}
}

// Resolve returns the algorithm to use for a request. An empty name selects
// the recommended default.
func (r *Registry) Resolve(name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return r.Recommended()
	}
	if !r.Has(name) {
		return "", r.unavailable(name)
	}
	return normalize(name), nil
}

func (r *Registry) unavailable(name string) error {
	return &models.ConfigurationError{
		Message:   fmt.Sprintf("hash algorithm %q is not available", name),
		Available: r.Available(),
	}
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Default is the registry of every algorithm built into the binary
var Default = newDefaultRegistry()

// Available returns the algorithms of the default registry, sorted
func Available() []string {
	return Default.Available()
}

// Recommended returns the default algorithm of the default registry
func Recommended() (string, error) {
	return Default.Recommended()
}

func newDefaultRegistry() *Registry {
	r := NewRegistry(DefaultPreference...)

	r.Register("md5", md5.New)
	r.Register("sha1", sha1.New)
	r.Register("sha224", sha256.New224)
	r.Register("sha256", sha256.New)
	r.Register("sha384", sha512.New384)
	r.Register("sha512", sha512.New)
	r.Register("sha512_224", sha512.New512_224)
	r.Register("sha512_256", sha512.New512_256)
	r.Register("sha3_224", sha3.New224)
	r.Register("sha3_256", sha3.New256)
	r.Register("sha3_384", sha3.New384)
	r.Register("sha3_512", sha3.New512)
	r.Register("shake_128", func() hash.Hash { return sha3.NewShake128() })
	r.Register("shake_256", func() hash.Hash { return sha3.NewShake256() })
	r.Register("blake2b", mustKeyless(blake2b.New512))
	r.Register("blake2s", mustKeyless(blake2s.New256))
	r.Register("blake3", func() hash.Hash { return blake3.New() })
	r.Register("xxh64", func() hash.Hash { return xxhash.New() })
	r.Register("xxh3_64", func() hash.Hash { return xxh3.New() })
	r.Register("xxh3_128", func() hash.Hash { return xxh3128{xxh3.New()} })

	return r
}

// mustKeyless adapts a keyed BLAKE2 constructor; it never fails without a key
func mustKeyless(newKeyed func(key []byte) (hash.Hash, error)) Constructor {
	return func() hash.Hash {
		h, err := newKeyed(nil)
		if err != nil {
			panic(err)
		}
		return h
	}
}

// xxh3128 exposes the 128-bit XXH3 variant through hash.Hash
type xxh3128 struct {
	*xxh3.Hasher
}

func (h xxh3128) Size() int { return 16 }

func (h xxh3128) Sum(b []byte) []byte {
	sum := h.Sum128().Bytes()
	return append(b, sum[:]...)
}
