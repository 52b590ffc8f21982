// Package manifest canonicalizes a file or directory input into a sorted
// list of relative file paths, and estimates its total size.
package manifest

import (
	"bytes"
	"context"
	"encoding/json"
	"sort"

	"github.com/sdejongh/hashcompare/pkg/storage"
)

// Manifest is the sorted list of relative paths of every regular file in an
// input. Paths always use '/' so manifests are comparable across platforms.
type Manifest []string

// Build walks root and returns its manifest. A regular file yields its base
// name; a directory yields the relative path of every regular file beneath it.
func Build(ctx context.Context, backend storage.Backend, root string) (Manifest, error) {
	entries, err := walk(ctx, backend, root)
	if err != nil {
		return nil, err
	}

	m := make(Manifest, 0, len(entries))
	for _, e := range entries {
		m = append(m, e.rel)
	}
	sort.Strings(m)

	return m, nil
}

// Encode returns the manifest as a UTF-8 JSON array
func (m Manifest) Encode() ([]byte, error) {
	paths := []string(m)
	if paths == nil {
		paths = []string{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(paths); err != nil {
		return nil, err
	}

	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Equal reports whether two manifests list the same paths
func (m Manifest) Equal(other Manifest) bool {
	if len(m) != len(other) {
		return false
	}
	for i := range m {
		if m[i] != other[i] {
			return false
		}
	}
	return true
}
