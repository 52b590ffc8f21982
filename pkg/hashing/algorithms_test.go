package hashing

import (
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdejongh/hashcompare/pkg/models"
)

func TestDefaultRegistrySizes(t *testing.T) {
	tests := []struct {
		name string
		size int
	}{
		{"md5", 16},
		{"sha1", 20},
		{"sha224", 28},
		{"sha256", 32},
		{"sha384", 48},
		{"sha512", 64},
		{"sha512_224", 28},
		{"sha512_256", 32},
		{"sha3_224", 28},
		{"sha3_256", 32},
		{"sha3_384", 48},
		{"sha3_512", 64},
		{"shake_128", 32},
		{"shake_256", 64},
		{"blake2b", 64},
		{"blake2s", 32},
		{"blake3", 32},
		{"xxh64", 8},
		{"xxh3_64", 8},
		{"xxh3_128", 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := Default.New(tt.name)
			require.NoError(t, err)
			h.Write([]byte("hello"))
			assert.Len(t, h.Sum(nil), tt.size)
		})
	}

	assert.Len(t, Available(), len(tests))
}

func TestKnownDigests(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"md5", "5d41402abc4b2a76b9719d911017c592"},
		{"sha1", "aaf4c61ddcc5e8a2dabede0f3b482cd9aea9434d"},
		{"sha256", "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"},
	}

	for _, tt := range tests {
		h, err := Default.New(tt.name)
		require.NoError(t, err)
		h.Write([]byte("hello"))
		assert.Equal(t, tt.want, hex.EncodeToString(h.Sum(nil)), tt.name)
	}
}

func TestAvailableSorted(t *testing.T) {
	names := Available()
	assert.True(t, sort.StringsAreSorted(names))
	assert.Contains(t, names, "sha256")
	assert.Contains(t, names, "blake3")
}

func TestRecommended(t *testing.T) {
	name, err := Recommended()
	require.NoError(t, err)
	assert.Equal(t, "blake3", name)

	t.Run("FallsBackInOrder", func(t *testing.T) {
		r := NewRegistry(DefaultPreference...)
		r.Register("md5", md5.New)
		name, err := r.Recommended()
		require.NoError(t, err)
		assert.Equal(t, "md5", name)
	})

	t.Run("NothingPreferred", func(t *testing.T) {
		r := NewRegistry(DefaultPreference...)
		r.Register("custom", md5.New)
		_, err := r.Recommended()

		var cfgErr *models.ConfigurationError
		require.True(t, errors.As(err, &cfgErr))
		assert.Equal(t, []string{"custom"}, cfgErr.Available)
	})
}

func TestResolve(t *testing.T) {
	r := NewRegistry("sha256")
	r.Register("sha256", sha256.New)
	r.Register("md5", md5.New)

	name, err := r.Resolve("")
	require.NoError(t, err)
	assert.Equal(t, "sha256", name)

	name, err = r.Resolve(" MD5 ")
	require.NoError(t, err)
	assert.Equal(t, "md5", name)

	_, err = r.Resolve("nope")
	var cfgErr *models.ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, []string{"md5", "sha256"}, cfgErr.Available)
	assert.Contains(t, err.Error(), "md5, sha256")
	assert.Equal(t, models.KindConfiguration, models.ErrorKind(err))

	_, err = r.New("nope")
	assert.Error(t, err)
}
