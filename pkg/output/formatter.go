// Package output renders comparison results and live progress for the CLI.
package output

import (
	"fmt"
	"io"

	"github.com/sdejongh/hashcompare/pkg/models"
)

// Formatter renders the outcome of a comparison
type Formatter interface {
	// Result writes the final result
	Result(result *models.ComparisonResult) error

	// Name returns the formatter name
	Name() string
}

// Options controls formatter construction
type Options struct {
	Format string // "human" or "json"
	Quiet  bool
	Color  bool
}

// New returns the formatter for opts.Format writing to w
func New(w io.Writer, opts Options) (Formatter, error) {
	switch opts.Format {
	case "", "human":
		return NewHumanFormatter(w, opts.Quiet, opts.Color), nil
	case "json":
		return NewJSONFormatter(w), nil
	default:
		return nil, &models.ValidationError{
			Field:   "output",
			Message: fmt.Sprintf("unknown format %q (valid: human, json)", opts.Format),
		}
	}
}

// userMessage is the sentence shown to end users for a result
func userMessage(r *models.ComparisonResult) string {
	switch r.Verdict {
	case models.VerdictIdentical:
		return "inputs are identical"
	case models.VerdictDifferent:
		return "inputs are not identical"
	default:
		if models.ErrorKind(r.Err) == models.KindCancelled {
			return "comparison cancelled"
		}
		return "an error occurred; comparison not completed"
	}
}
