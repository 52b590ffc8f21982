package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"testing"
)

// newTestTree creates files under a fresh temp dir and returns its path
func newTestTree(t *testing.T, files map[string][]byte) string {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "hashcompare-storage-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	for path, content := range files {
		fullPath := filepath.Join(tempDir, path)
		if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
			t.Fatalf("failed to create dir: %v", err)
		}
		if err := os.WriteFile(fullPath, content, 0644); err != nil {
			t.Fatalf("failed to create file: %v", err)
		}
	}

	return tempDir
}

// TestLocalStat tests the Stat method
func TestLocalStat(t *testing.T) {
	tempDir := newTestTree(t, map[string][]byte{"file.txt": []byte("hello")})
	local := NewLocal()
	defer local.Close()

	ctx := context.Background()

	t.Run("RegularFile", func(t *testing.T) {
		info, err := local.Stat(ctx, filepath.Join(tempDir, "file.txt"))
		if err != nil {
			t.Fatalf("Stat() error = %v", err)
		}
		if !info.IsRegular() {
			t.Error("IsRegular() should be true for a file")
		}
		if info.Size != 5 {
			t.Errorf("Size = %d, want 5", info.Size)
		}
		if info.Name != "file.txt" {
			t.Errorf("Name = %s, want file.txt", info.Name)
		}
	})

	t.Run("Directory", func(t *testing.T) {
		info, err := local.Stat(ctx, tempDir)
		if err != nil {
			t.Fatalf("Stat() error = %v", err)
		}
		if !info.IsDir() {
			t.Error("IsDir() should be true for a directory")
		}
	})

	t.Run("NonExistent", func(t *testing.T) {
		_, err := local.Stat(ctx, filepath.Join(tempDir, "missing"))
		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("Stat() error = %v, want fs.ErrNotExist", err)
		}
	})
}

// TestLocalReadDir tests the ReadDir method
func TestLocalReadDir(t *testing.T) {
	tempDir := newTestTree(t, map[string][]byte{
		"file1.txt":        []byte("content1"),
		"file2.txt":        []byte("content2"),
		"subdir/file3.txt": []byte("content3"),
	})
	local := NewLocal()
	ctx := context.Background()

	t.Run("DirectChildrenOnly", func(t *testing.T) {
		entries, err := local.ReadDir(ctx, tempDir)
		if err != nil {
			t.Fatalf("ReadDir() error = %v", err)
		}

		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name)
		}
		sort.Strings(names)

		want := []string{"file1.txt", "file2.txt", "subdir"}
		if len(names) != len(want) {
			t.Fatalf("ReadDir() returned %v, want %v", names, want)
		}
		for i := range want {
			if names[i] != want[i] {
				t.Errorf("entry %d = %s, want %s", i, names[i], want[i])
			}
		}
	})

	t.Run("SymlinkNotFollowed", func(t *testing.T) {
		link := filepath.Join(tempDir, "link.txt")
		if err := os.Symlink(filepath.Join(tempDir, "file1.txt"), link); err != nil {
			t.Skipf("symlinks not supported: %v", err)
		}
		defer os.Remove(link)

		entries, err := local.ReadDir(ctx, tempDir)
		if err != nil {
			t.Fatalf("ReadDir() error = %v", err)
		}
		for _, e := range entries {
			if e.Name == "link.txt" && e.IsRegular() {
				t.Error("symlink entry should not be reported as a regular file")
			}
		}
	})

	t.Run("ContextCancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := local.ReadDir(ctx, tempDir)
		if !errors.Is(err, context.Canceled) {
			t.Errorf("ReadDir() error = %v, want context.Canceled", err)
		}
	})

	t.Run("NonExistent", func(t *testing.T) {
		_, err := local.ReadDir(ctx, filepath.Join(tempDir, "missing"))
		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("ReadDir() error = %v, want fs.ErrNotExist", err)
		}
	})
}

// TestLocalOpen tests the Open method
func TestLocalOpen(t *testing.T) {
	content := []byte("test content for reading")
	tempDir := newTestTree(t, map[string][]byte{"test.txt": content})
	local := NewLocal()
	ctx := context.Background()

	t.Run("ReadExistingFile", func(t *testing.T) {
		reader, err := local.Open(ctx, filepath.Join(tempDir, "test.txt"))
		if err != nil {
			t.Fatalf("Open() error = %v", err)
		}
		defer reader.Close()

		data, err := io.ReadAll(reader)
		if err != nil {
			t.Fatalf("ReadAll() error = %v", err)
		}

		if !bytes.Equal(data, content) {
			t.Errorf("Open() content = %s, want %s", string(data), string(content))
		}
	})

	t.Run("ReadNonExistentFile", func(t *testing.T) {
		_, err := local.Open(ctx, filepath.Join(tempDir, "nonexistent.txt"))
		if err == nil {
			t.Error("Open() should fail for non-existent file")
		}
	})
}
