package models

import (
	"time"
)

// ComparisonRequest describes one comparison between two inputs.
// It is built once per comparison and never modified afterwards.
type ComparisonRequest struct {
	// ID identifies the comparison in logs and reports
	ID string

	// InputOne and InputTwo are the paths being compared, each a regular
	// file or a directory
	InputOne string
	InputTwo string

	// Algorithm is the hash algorithm name; empty selects the recommended default
	Algorithm string

	// IgnoreNames excludes file names from the digest. Only legal when both
	// inputs are regular files.
	IgnoreNames bool

	CreatedAt time.Time
}

// Validate checks that the request is structurally complete.
// Filesystem checks happen in the comparator.
func (r *ComparisonRequest) Validate() error {
	if r.InputOne == "" {
		return &ValidationError{Field: "InputOne", Message: "first input path is required"}
	}
	if r.InputTwo == "" {
		return &ValidationError{Field: "InputTwo", Message: "second input path is required"}
	}
	return nil
}

// InputKind is the filesystem kind of an input
type InputKind string

const (
	// KindFile is a regular file
	KindFile InputKind = "file"
	// KindDirectory is a directory tree
	KindDirectory InputKind = "directory"
	// KindOther is anything else (device, socket, FIFO)
	KindOther InputKind = "other"
)
