package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdejongh/hashcompare/pkg/models"
)

func identicalResult() *models.ComparisonResult {
	return &models.ComparisonResult{
		RequestID: "req-1",
		InputOne:  "/a",
		InputTwo:  "/b",
		Verdict:   models.VerdictIdentical,
		Reason:    "digests match",
		Algorithm: "sha256",
		DigestOne: []byte{0xab, 0xcd},
		DigestTwo: []byte{0xab, 0xcd},
		SizeOne:   2048,
		SizeTwo:   2048,
		Duration:  1500 * time.Millisecond,
	}
}

func TestNewFormatter(t *testing.T) {
	var buf bytes.Buffer

	f, err := New(&buf, Options{})
	require.NoError(t, err)
	assert.Equal(t, "human", f.Name())

	f, err = New(&buf, Options{Format: "json"})
	require.NoError(t, err)
	assert.Equal(t, "json", f.Name())

	_, err = New(&buf, Options{Format: "xml"})
	var vErr *models.ValidationError
	assert.True(t, errors.As(err, &vErr))
}

func TestHumanFormatter(t *testing.T) {
	t.Run("Identical", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewHumanFormatter(&buf, false, false).Result(identicalResult()))

		out := buf.String()
		assert.True(t, strings.HasPrefix(out, "✓ Identical: inputs are identical\n"), out)
		assert.Contains(t, out, "algorithm: sha256")
		assert.Contains(t, out, "2.0 KiB / 2.0 KiB")
		assert.Contains(t, out, "digest 1:  abcd")
		assert.Contains(t, out, "duration:  1.5s")
	})

	t.Run("Different", func(t *testing.T) {
		r := &models.ComparisonResult{Verdict: models.VerdictDifferent, Reason: "file names differ", SizeOne: -1, SizeTwo: -1}
		var buf bytes.Buffer
		require.NoError(t, NewHumanFormatter(&buf, false, false).Result(r))

		out := buf.String()
		assert.Contains(t, out, "✗ Different: inputs are not identical (file names differ)")
		assert.NotContains(t, out, "size:")
		assert.NotContains(t, out, "digest")
	})

	t.Run("Error", func(t *testing.T) {
		r := &models.ComparisonResult{Verdict: models.VerdictError, Err: &models.NotFoundError{Path: "/x"}}
		var buf bytes.Buffer
		require.NoError(t, NewHumanFormatter(&buf, true, false).Result(r))

		out := buf.String()
		assert.Contains(t, out, "! Error: an error occurred; comparison not completed")
		assert.Contains(t, out, "path does not exist: /x")
	})

	t.Run("QuietSuppressesVerdicts", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewHumanFormatter(&buf, true, false).Result(identicalResult()))
		assert.Empty(t, buf.String())
	})

	t.Run("Cancelled", func(t *testing.T) {
		r := &models.ComparisonResult{Verdict: models.VerdictError, Err: models.ErrCancelled}
		var buf bytes.Buffer
		require.NoError(t, NewHumanFormatter(&buf, false, false).Result(r))
		assert.Contains(t, buf.String(), "comparison cancelled")
	})
}

func TestJSONFormatter(t *testing.T) {
	t.Run("Identical", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewJSONFormatter(&buf).Result(identicalResult()))

		var doc JSONResult
		require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
		assert.Equal(t, "req-1", doc.ID)
		assert.Equal(t, "identical", doc.Verdict)
		assert.True(t, doc.Identical)
		assert.Equal(t, "abcd", doc.DigestOne)
		require.NotNil(t, doc.SizeOne)
		assert.Equal(t, int64(2048), *doc.SizeOne)
		assert.Equal(t, int64(1500), doc.DurationMs)
		assert.Equal(t, 0, doc.ExitCode)
		assert.Empty(t, doc.Error)
	})

	t.Run("Error", func(t *testing.T) {
		r := &models.ComparisonResult{
			Verdict: models.VerdictError,
			Err:     &models.ConfigurationError{Message: "hash algorithm \"x\" is not available", Available: []string{"md5"}},
			SizeOne: -1,
			SizeTwo: -1,
		}
		var buf bytes.Buffer
		require.NoError(t, NewJSONFormatter(&buf).Result(r))

		var doc map[string]interface{}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
		assert.Equal(t, "configuration", doc["error_kind"])
		assert.Equal(t, float64(2), doc["exit_code"])
		assert.NotContains(t, doc, "size_one")
		assert.NotContains(t, doc, "digest_one")
	})
}

func TestProgressBarsObserve(t *testing.T) {
	bars := NewProgressBars("one", "two")

	bars.Observe(models.ProgressSnapshot{
		One: models.SideProgress{BytesProcessed: 50, ExpectedTotal: 100, Percent: 50, Known: true},
		Two: models.SideProgress{BytesProcessed: 10},
	})
	assert.Equal(t, int64(100), bars.one.Total())
	assert.Equal(t, int64(50), bars.one.Current())
	assert.Equal(t, int64(0), bars.two.Total())
	assert.Equal(t, int64(10), bars.two.Current())

	// Never past the denominator
	bars.Observe(models.ProgressSnapshot{
		One: models.SideProgress{BytesProcessed: 150, ExpectedTotal: 100, Known: true},
	})
	assert.Equal(t, int64(100), bars.one.Current())

	// Stop without Start only finishes the bars
	require.NoError(t, bars.Stop())
	assert.True(t, bars.one.IsFinished())
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, IsTerminal(&bytes.Buffer{}))
}
