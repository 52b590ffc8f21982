package output

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"github.com/sdejongh/hashcompare/pkg/models"
)

// HumanFormatter formats output in human-readable format
type HumanFormatter struct {
	writer io.Writer
	quiet  bool

	ok    *color.Color
	bad   *color.Color
	fail  *color.Color
	faint *color.Color
}

// NewHumanFormatter creates a new human-readable formatter. In quiet mode
// only errors are written.
func NewHumanFormatter(w io.Writer, quiet, useColor bool) *HumanFormatter {
	f := &HumanFormatter{
		writer: w,
		quiet:  quiet,
		ok:     color.New(color.FgGreen, color.Bold),
		bad:    color.New(color.FgYellow, color.Bold),
		fail:   color.New(color.FgRed, color.Bold),
		faint:  color.New(color.Faint),
	}
	for _, c := range []*color.Color{f.ok, f.bad, f.fail, f.faint} {
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return f
}

// Result writes the verdict and, unless quiet, the details
func (f *HumanFormatter) Result(r *models.ComparisonResult) error {
	if f.quiet && r.Verdict != models.VerdictError {
		return nil
	}

	switch r.Verdict {
	case models.VerdictIdentical:
		fmt.Fprintf(f.writer, "%s %s\n", f.ok.Sprint("✓ Identical:"), userMessage(r))
	case models.VerdictDifferent:
		fmt.Fprintf(f.writer, "%s %s (%s)\n", f.bad.Sprint("✗ Different:"), userMessage(r), r.Reason)
	default:
		fmt.Fprintf(f.writer, "%s %s\n", f.fail.Sprint("! Error:"), userMessage(r))
		if r.Err != nil {
			fmt.Fprintf(f.writer, "  %v\n", r.Err)
		}
		return nil
	}

	fmt.Fprintf(f.writer, "  %s %s\n", f.faint.Sprint("one:      "), r.InputOne)
	fmt.Fprintf(f.writer, "  %s %s\n", f.faint.Sprint("two:      "), r.InputTwo)
	if r.Algorithm != "" {
		fmt.Fprintf(f.writer, "  %s %s\n", f.faint.Sprint("algorithm:"), r.Algorithm)
	}
	if r.SizeOne >= 0 && r.SizeTwo >= 0 {
		fmt.Fprintf(f.writer, "  %s %s / %s\n", f.faint.Sprint("size:     "),
			humanize.IBytes(uint64(r.SizeOne)), humanize.IBytes(uint64(r.SizeTwo)))
	}
	if len(r.DigestOne) > 0 {
		fmt.Fprintf(f.writer, "  %s %s\n", f.faint.Sprint("digest 1: "), r.DigestOneHex())
		fmt.Fprintf(f.writer, "  %s %s\n", f.faint.Sprint("digest 2: "), r.DigestTwoHex())
	}
	fmt.Fprintf(f.writer, "  %s %s\n", f.faint.Sprint("duration: "), r.Duration.Round(time.Millisecond))

	return nil
}

// Name returns the formatter name
func (f *HumanFormatter) Name() string {
	return "human"
}
