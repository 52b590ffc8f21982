// Package compare decides whether two inputs, each a file or a directory
// tree, have identical content.
package compare

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sdejongh/hashcompare/pkg/hashing"
	"github.com/sdejongh/hashcompare/pkg/logging"
	"github.com/sdejongh/hashcompare/pkg/manifest"
	"github.com/sdejongh/hashcompare/pkg/models"
	"github.com/sdejongh/hashcompare/pkg/progress"
	"github.com/sdejongh/hashcompare/pkg/storage"
)

// Comparator runs dual-input comparisons over a storage backend
type Comparator struct {
	backend          storage.Backend
	registry         *hashing.Registry
	chunkSize        int
	sizeCheck        bool
	readerWrapper    hashing.ReaderWrapper
	logger           logging.Logger
	observer         progress.Observer
	progressInterval time.Duration
}

// Option configures a Comparator
type Option func(*Comparator)

// WithChunkSize sets the hashing read size
func WithChunkSize(n int) Option {
	return func(c *Comparator) { c.chunkSize = n }
}

// WithSizeCheck toggles the total size pre-filter (on by default)
func WithSizeCheck(enabled bool) Option {
	return func(c *Comparator) { c.sizeCheck = enabled }
}

// WithRegistry selects the algorithm registry
func WithRegistry(r *hashing.Registry) Option {
	return func(c *Comparator) { c.registry = r }
}

// WithReaderWrapper wraps every file reader (e.g., for rate limiting)
func WithReaderWrapper(w hashing.ReaderWrapper) Option {
	return func(c *Comparator) { c.readerWrapper = w }
}

// WithLogger sets the logger
func WithLogger(l logging.Logger) Option {
	return func(c *Comparator) { c.logger = l }
}

// WithProgress registers an observer polled every interval while hashing
func WithProgress(observer progress.Observer, interval time.Duration) Option {
	return func(c *Comparator) {
		c.observer = observer
		c.progressInterval = interval
	}
}

// New creates a comparator
func New(backend storage.Backend, opts ...Option) *Comparator {
	c := &Comparator{
		backend:   backend,
		registry:  hashing.Default,
		chunkSize: hashing.DefaultChunkSize,
		sizeCheck: true,
		logger:    logging.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compare produces exactly one result for req. It never returns nil; every
// failure is reported as a VerdictError result carrying the typed error.
func (c *Comparator) Compare(ctx context.Context, req *models.ComparisonRequest) *models.ComparisonResult {
	result := &models.ComparisonResult{
		RequestID: req.ID,
		InputOne:  req.InputOne,
		InputTwo:  req.InputTwo,
		SizeOne:   -1,
		SizeTwo:   -1,
		StartTime: time.Now(),
	}

	log := c.logger.WithFields(logging.Fields{"comparison_id": req.ID})
	log.Info(ctx, "Comparison started", logging.Fields{
		"input_one":    req.InputOne,
		"input_two":    req.InputTwo,
		"algorithm":    req.Algorithm,
		"ignore_names": req.IgnoreNames,
	})

	c.run(ctx, req, result, log)
	result.Duration = time.Since(result.StartTime)

	if result.Verdict == models.VerdictError {
		log.Error(ctx, "Comparison failed", result.Err, logging.Fields{
			"kind":     models.ErrorKind(result.Err),
			"duration": result.Duration.String(),
		})
	} else {
		log.Info(ctx, "Comparison finished", logging.Fields{
			"verdict":   string(result.Verdict),
			"reason":    result.Reason,
			"algorithm": result.Algorithm,
			"duration":  result.Duration.String(),
		})
	}
	return result
}

func (c *Comparator) run(ctx context.Context, req *models.ComparisonRequest, result *models.ComparisonResult, log logging.Logger) {
	kind, err := c.validate(ctx, req)
	if err != nil {
		fail(result, err, "invalid comparison request")
		return
	}

	algorithm, err := c.registry.Resolve(req.Algorithm)
	if err != nil {
		fail(result, err, "no usable hash algorithm")
		return
	}
	result.Algorithm = algorithm

	if kind == models.KindFile && !req.IgnoreNames {
		if filepath.Base(req.InputOne) != filepath.Base(req.InputTwo) {
			result.Verdict = models.VerdictDifferent
			result.Reason = "file names differ"
			return
		}
	}

	one, err := manifest.EstimateSize(ctx, c.backend, req.InputOne, c.chunkSize)
	if err != nil {
		fail(result, err, "an error occurred determining file size")
		return
	}
	two, err := manifest.EstimateSize(ctx, c.backend, req.InputTwo, c.chunkSize)
	if err != nil {
		fail(result, err, "an error occurred determining file size")
		return
	}
	result.SizeOne = one.TotalBytes
	result.SizeTwo = two.TotalBytes

	if c.sizeCheck && one.TotalBytes != two.TotalBytes {
		result.Verdict = models.VerdictDifferent
		result.Reason = "total sizes differ"
		return
	}

	log.Debug(ctx, "Hashing inputs", logging.Fields{
		"algorithm":  algorithm,
		"files_one":  one.Files,
		"files_two":  two.Files,
		"chunk_size": c.chunkSize,
	})

	digestOne, digestTwo, err := c.hashBoth(ctx, req, algorithm, one, two)
	if err != nil {
		fail(result, err, "an error occurred while hashing")
		return
	}
	result.DigestOne = digestOne
	result.DigestTwo = digestTwo

	if string(digestOne) == string(digestTwo) {
		result.Verdict = models.VerdictIdentical
		result.Reason = "digests match"
	} else {
		result.Verdict = models.VerdictDifferent
		result.Reason = "digests differ"
	}
}

// validate checks the request against the filesystem and returns the common input kind
func (c *Comparator) validate(ctx context.Context, req *models.ComparisonRequest) (models.InputKind, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	if filepath.Clean(req.InputOne) == filepath.Clean(req.InputTwo) {
		return "", &models.ValidationError{
			Field:   "InputTwo",
			Message: "both inputs are the same path",
		}
	}

	kindOne, err := c.kindOf(ctx, req.InputOne)
	if err != nil {
		return "", err
	}
	kindTwo, err := c.kindOf(ctx, req.InputTwo)
	if err != nil {
		return "", err
	}

	if kindOne == models.KindOther || kindTwo == models.KindOther {
		return "", &models.ValidationError{
			Field:   "Input",
			Message: "inputs must be regular files or directories",
		}
	}
	if kindOne != kindTwo {
		return "", &models.ValidationError{
			Field:   "Input",
			Message: fmt.Sprintf("cannot compare a %s with a %s", kindOne, kindTwo),
		}
	}

	if req.IgnoreNames && kindOne != models.KindFile {
		return "", &models.ValidationError{
			Field:   "IgnoreNames",
			Message: "ignoring names is only allowed when both inputs are files",
		}
	}

	return kindOne, nil
}

func (c *Comparator) kindOf(ctx context.Context, path string) (models.InputKind, error) {
	info, err := c.backend.Stat(ctx, path)
	if err != nil {
		return "", models.WrapPathError("stat", path, err)
	}
	switch {
	case info.IsRegular():
		return models.KindFile, nil
	case info.IsDir():
		return models.KindDirectory, nil
	default:
		return models.KindOther, nil
	}
}

// hashBoth hashes both inputs concurrently. The first failure cancels the other task.
func (c *Comparator) hashBoth(ctx context.Context, req *models.ComparisonRequest, algorithm string, one, two *manifest.Estimate) ([]byte, []byte, error) {
	hasher := hashing.NewHasher(c.backend, c.registry, c.chunkSize)
	hasher.SetReaderWrapper(c.readerWrapper)

	stateOne := hasher.NewState(algorithm)
	stateOne.SetExpectedTotal(one.ChunkedBytes)
	stateTwo := hasher.NewState(algorithm)
	stateTwo.SetExpectedTotal(two.ChunkedBytes)

	monitorCtx, stopMonitor := context.WithCancel(ctx)
	monitorDone := make(chan bool, 1)
	go func() {
		monitorDone <- progress.NewMonitor(c.progressInterval, c.observer).Run(monitorCtx, stateOne, stateTwo)
	}()

	includeNames := !req.IgnoreNames
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := hasher.Hash(gctx, req.InputOne, stateOne, includeNames)
		return err
	})
	g.Go(func() error {
		_, err := hasher.Hash(gctx, req.InputTwo, stateTwo, includeNames)
		return err
	})
	err := g.Wait()

	stopMonitor()
	reportedFinal := <-monitorDone

	if err != nil {
		return nil, nil, err
	}

	// A task that did not complete has no digest; treat it as aborted
	if !stateOne.Complete() || !stateTwo.Complete() {
		return nil, nil, models.ErrCancelled
	}

	if c.observer != nil && !reportedFinal {
		c.observer(progress.Snapshot(stateOne, stateTwo))
	}
	return stateOne.Digest(), stateTwo.Digest(), nil
}

func fail(result *models.ComparisonResult, err error, reason string) {
	result.Verdict = models.VerdictError
	result.Err = err
	result.Reason = reason
}
