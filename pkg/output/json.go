package output

import (
	"encoding/json"
	"io"

	"github.com/sdejongh/hashcompare/pkg/models"
)

// JSONFormatter formats output as JSON for automation and scripting
type JSONFormatter struct {
	writer io.Writer
}

// JSONResult is the JSON document written for one comparison
type JSONResult struct {
	ID         string `json:"id"`
	InputOne   string `json:"input_one"`
	InputTwo   string `json:"input_two"`
	Verdict    string `json:"verdict"`
	Identical  bool   `json:"identical"`
	Message    string `json:"message"`
	Reason     string `json:"reason,omitempty"`
	Algorithm  string `json:"algorithm,omitempty"`
	DigestOne  string `json:"digest_one,omitempty"`
	DigestTwo  string `json:"digest_two,omitempty"`
	SizeOne    *int64 `json:"size_one,omitempty"`
	SizeTwo    *int64 `json:"size_two,omitempty"`
	Duration   string `json:"duration"`
	DurationMs int64  `json:"duration_ms"`
	Error      string `json:"error,omitempty"`
	ErrorKind  string `json:"error_kind,omitempty"`
	ExitCode   int    `json:"exit_code"`
}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter(w io.Writer) *JSONFormatter {
	return &JSONFormatter{writer: w}
}

// Result writes one indented JSON object
func (f *JSONFormatter) Result(r *models.ComparisonResult) error {
	doc := JSONResult{
		ID:         r.RequestID,
		InputOne:   r.InputOne,
		InputTwo:   r.InputTwo,
		Verdict:    string(r.Verdict),
		Identical:  r.Identical(),
		Message:    userMessage(r),
		Reason:     r.Reason,
		Algorithm:  r.Algorithm,
		Duration:   r.Duration.String(),
		DurationMs: r.Duration.Milliseconds(),
		ExitCode:   r.ExitCode(),
	}
	if len(r.DigestOne) > 0 {
		doc.DigestOne = r.DigestOneHex()
		doc.DigestTwo = r.DigestTwoHex()
	}
	if r.SizeOne >= 0 {
		size := r.SizeOne
		doc.SizeOne = &size
	}
	if r.SizeTwo >= 0 {
		size := r.SizeTwo
		doc.SizeTwo = &size
	}
	if r.Err != nil {
		doc.Error = r.Err.Error()
		doc.ErrorKind = models.ErrorKind(r.Err)
	}

	enc := json.NewEncoder(f.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// Name returns the formatter name
func (f *JSONFormatter) Name() string {
	return "json"
}
