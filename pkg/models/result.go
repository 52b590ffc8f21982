package models

import (
	"encoding/hex"
	"time"
)

// Verdict is the tri-state outcome of a comparison
type Verdict string

const (
	// VerdictIdentical means both inputs hash to the same digest
	VerdictIdentical Verdict = "identical"
	// VerdictDifferent means the inputs provably differ
	VerdictDifferent Verdict = "different"
	// VerdictError means no answer could be produced
	VerdictError Verdict = "error"
)

// ComparisonResult is the terminal outcome of a ComparisonRequest
type ComparisonResult struct {
	RequestID string
	InputOne  string
	InputTwo  string

	Verdict Verdict

	// Reason explains the verdict in one short sentence
	Reason string

	// Err is set when Verdict is VerdictError
	Err error

	// Algorithm actually used, empty if resolution failed
	Algorithm string

	// Digests are only populated when both hashes completed
	DigestOne []byte
	DigestTwo []byte

	// Sizes are -1 when not computed
	SizeOne int64
	SizeTwo int64

	StartTime time.Time
	Duration  time.Duration
}

// Identical reports whether the inputs were found identical
func (r *ComparisonResult) Identical() bool {
	return r.Verdict == VerdictIdentical
}

// DigestOneHex returns the first digest hex encoded
func (r *ComparisonResult) DigestOneHex() string {
	return hex.EncodeToString(r.DigestOne)
}

// DigestTwoHex returns the second digest hex encoded
func (r *ComparisonResult) DigestTwoHex() string {
	return hex.EncodeToString(r.DigestTwo)
}

// ExitCode returns the process exit code for the result
func (r *ComparisonResult) ExitCode() int {
	switch r.Verdict {
	case VerdictIdentical:
		return 0
	case VerdictDifferent:
		return 1
	case VerdictError:
		if ErrorKind(r.Err) == KindCancelled {
			return 3
		}
		return 2
	default:
		return 2
	}
}
