// Package platform resolves user-supplied input paths for the current OS.
package platform

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
)

// NormalizePath cleans a path for the current platform, keeping UNC prefixes on Windows
func NormalizePath(path string) string {
	normalized := filepath.Clean(path)

	if runtime.GOOS == "windows" {
		if strings.HasPrefix(path, "\\\\") && !strings.HasPrefix(normalized, "\\\\") {
			normalized = "\\\\" + normalized
		}
	}

	return normalized
}

// IsUNCPath checks if a path is a UNC path (Windows network share)
func IsUNCPath(path string) bool {
	if runtime.GOOS != "windows" {
		return false
	}
	return strings.HasPrefix(path, "\\\\") || strings.HasPrefix(path, "//")
}

// IsAbsolute checks if a path is absolute
func IsAbsolute(path string) bool {
	if IsUNCPath(path) {
		return true
	}
	return filepath.IsAbs(path)
}

// ResolveInput turns a command-line input into an absolute, normalized path
func ResolveInput(path string) (string, error) {
	if err := ValidatePath(path); err != nil {
		return "", err
	}

	if !IsAbsolute(path) {
		abs, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("failed to resolve %s: %w", path, err)
		}
		path = abs
	}

	return NormalizePath(path), nil
}

// ValidatePath checks if a path is valid for the current platform
func ValidatePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return &PathError{Path: path, Message: "path is empty"}
	}

	if strings.ContainsRune(path, 0) {
		return &PathError{Path: path, Message: "path contains a NUL byte"}
	}

	if runtime.GOOS == "windows" {
		// Skip the volume so "C:" is not mistaken for an invalid colon
		rest := path[len(filepath.VolumeName(path)):]
		for _, char := range []string{"<", ">", ":", "\"", "|", "?", "*"} {
			if strings.Contains(rest, char) {
				return &PathError{Path: path, Message: "path contains invalid character: " + char}
			}
		}
	}

	return nil
}

// PathError represents a path validation error
type PathError struct {
	Path    string
	Message string
}

func (e *PathError) Error() string {
	return "invalid path '" + e.Path + "': " + e.Message
}
