package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with args in an isolated home directory
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("NO_COLOR", "1")

	var out bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		full := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0644))
	}
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return -1
}

func TestCompareCommand(t *testing.T) {
	base := t.TempDir()
	writeTree(t, base, map[string]string{
		"A/x.txt":   "hello",
		"B/x.txt":   "hello",
		"C/y.txt":   "hello",
		"D/x.txt":   "hello world",
		"one/a.bin": "payload",
		"two/b.bin": "payload",
	})
	path := func(rel string) string { return filepath.Join(base, rel) }

	t.Run("Identical", func(t *testing.T) {
		out, err := execute(t, "compare", path("A"), path("B"))
		require.NoError(t, err)
		assert.Contains(t, out, "Identical")
		assert.Contains(t, out, "algorithm: blake3")
	})

	t.Run("DifferentNames", func(t *testing.T) {
		out, err := execute(t, "compare", "-a", "sha256", path("A"), path("C"))
		assert.Equal(t, 1, exitCode(err))
		assert.Contains(t, out, "digests differ")
	})

	t.Run("DifferentSizes", func(t *testing.T) {
		out, err := execute(t, "compare", path("A"), path("D"))
		assert.Equal(t, 1, exitCode(err))
		assert.Contains(t, out, "total sizes differ")
	})

	t.Run("IgnoreNames", func(t *testing.T) {
		_, err := execute(t, "compare", "--ignore-names", path("one/a.bin"), path("two/b.bin"))
		assert.NoError(t, err)

		_, err = execute(t, "compare", path("one/a.bin"), path("two/b.bin"))
		assert.Equal(t, 1, exitCode(err))
	})

	t.Run("KindMismatch", func(t *testing.T) {
		out, err := execute(t, "compare", path("A"), path("B/x.txt"))
		assert.Equal(t, 2, exitCode(err))
		assert.Contains(t, out, "comparison not completed")
	})

	t.Run("UnknownAlgorithm", func(t *testing.T) {
		out, err := execute(t, "compare", "-o", "json", "-a", "not-a-real-algorithm", path("A"), path("B"))
		assert.Equal(t, 2, exitCode(err))

		var doc map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(out), &doc))
		assert.Equal(t, "configuration", doc["error_kind"])
		assert.Contains(t, doc["error"], "sha256")
	})

	t.Run("JSON", func(t *testing.T) {
		out, err := execute(t, "compare", "--output", "json", "--bandwidth", "100MiB", path("A"), path("B"))
		require.NoError(t, err)

		var doc map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(out), &doc))
		assert.Equal(t, "identical", doc["verdict"])
		assert.NotEmpty(t, doc["id"])
		assert.Equal(t, doc["digest_one"], doc["digest_two"])
	})

	t.Run("Quiet", func(t *testing.T) {
		out, err := execute(t, "-q", "compare", path("A"), path("B"))
		require.NoError(t, err)
		assert.Empty(t, out)
	})

	t.Run("BadBandwidth", func(t *testing.T) {
		_, err := execute(t, "compare", "--bandwidth", "fast", path("A"), path("B"))
		assert.Error(t, err)
		assert.Equal(t, -1, exitCode(err))
	})

	t.Run("WrongArgCount", func(t *testing.T) {
		_, err := execute(t, "compare", path("A"))
		assert.Error(t, err)
	})
}

func TestAlgorithmsCommand(t *testing.T) {
	out, err := execute(t, "algorithms")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Contains(t, lines, "blake3 (recommended)")
	assert.Contains(t, lines, "sha256")

	out, err = execute(t, "algorithms", "--recommended")
	require.NoError(t, err)
	assert.Equal(t, "blake3\n", out)
}

func TestConfigCommands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hashcompare.yaml")

	out, err := execute(t, "--config", path, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, path)

	_, err = execute(t, "--config", path, "config", "init")
	assert.Error(t, err, "init must not overwrite without --force")

	out, err = execute(t, "--config", path, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "size_check: true")
	assert.Contains(t, out, "progress_interval: 250ms")
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, Version+"\n", out)
}
