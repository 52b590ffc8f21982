package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/sdejongh/hashcompare/internal/platform"
	"github.com/sdejongh/hashcompare/pkg/compare"
	"github.com/sdejongh/hashcompare/pkg/config"
	"github.com/sdejongh/hashcompare/pkg/logging"
	"github.com/sdejongh/hashcompare/pkg/models"
	"github.com/sdejongh/hashcompare/pkg/output"
	"github.com/sdejongh/hashcompare/pkg/ratelimit"
	"github.com/sdejongh/hashcompare/pkg/storage"
)

// CompareFlags holds compare command flags
type CompareFlags struct {
	Algorithm   string
	IgnoreNames bool
	NoSizeCheck bool
	Output      string
	Progress    bool
	NoColor     bool
	ChunkSize   int
	Bandwidth   string
	// Logging flags
	LogFile   string
	LogFormat string
	LogLevel  string
}

var compareFlags CompareFlags

// NewCompareCommand creates the compare command
func NewCompareCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare <input-one> <input-two>",
		Short: "Check whether two files or directories have identical content",
		Long: `Compare two inputs, each a regular file or a directory tree, by hashing
their content. Directories are hashed in sorted path order together with their
relative file names, so the result does not depend on directory listing order.

Exit status: 0 identical, 1 different, 2 error, 3 cancelled.`,
		Args: cobra.ExactArgs(2),
		RunE: runCompare,
	}

	cmd.Flags().StringVarP(&compareFlags.Algorithm, "algorithm", "a", "", "hash algorithm (default: recommended, see 'algorithms')")
	cmd.Flags().BoolVarP(&compareFlags.IgnoreNames, "ignore-names", "n", false, "compare file content only, ignoring names (files only)")
	cmd.Flags().BoolVar(&compareFlags.NoSizeCheck, "no-size-check", false, "hash even when total sizes differ")
	cmd.Flags().StringVarP(&compareFlags.Output, "output", "o", "", "output format: human, json")
	cmd.Flags().BoolVar(&compareFlags.Progress, "progress", true, "show progress bars on a terminal")
	cmd.Flags().BoolVar(&compareFlags.NoColor, "no-color", false, "disable colored output")
	cmd.Flags().IntVar(&compareFlags.ChunkSize, "chunk-size", 0, "read chunk size in bytes")
	cmd.Flags().StringVarP(&compareFlags.Bandwidth, "bandwidth", "b", "", "bandwidth limit (e.g., \"10MB\", \"1GiB\")")

	// Logging flags
	cmd.Flags().StringVar(&compareFlags.LogFile, "log-file", "", "write logs to file (enables logging)")
	cmd.Flags().StringVar(&compareFlags.LogFormat, "log-format", "", "log format: text, json")
	cmd.Flags().StringVar(&compareFlags.LogLevel, "log-level", "", "log level: debug, info, warn, error")

	return cmd
}

func runCompare(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// Load configuration
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Override config with command-line flags
	applyCompareFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	inputOne, err := platform.ResolveInput(args[0])
	if err != nil {
		return err
	}
	inputTwo, err := platform.ResolveInput(args[1])
	if err != nil {
		return err
	}

	formatter, err := output.New(cmd.OutOrStdout(), output.Options{
		Format: cfg.Output.Format,
		Quiet:  cfg.Output.Quiet,
		Color:  cfg.Output.Color,
	})
	if err != nil {
		return err
	}

	logger, err := createLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Close()

	bandwidth, _ := cfg.BandwidthBytes()
	backend := storage.NewLocal()
	defer backend.Close()

	opts := []compare.Option{
		compare.WithChunkSize(cfg.Performance.ChunkSize),
		compare.WithSizeCheck(cfg.Compare.SizeCheck),
		compare.WithReaderWrapper(ratelimit.Wrapper(ratelimit.NewLimiter(bandwidth))),
		compare.WithLogger(logger),
	}

	var bars *output.ProgressBars
	errOut := cmd.ErrOrStderr()
	if cfg.Output.Progress && !cfg.Output.Quiet && cfg.Output.Format == "human" && output.IsTerminal(errOut) {
		bars = output.NewProgressBars(args[0], args[1])
		if err := bars.Start(errOut); err != nil {
			logger.Warn(ctx, "Progress bars unavailable", logging.Fields{"error": err.Error()})
			bars = nil
		} else {
			opts = append(opts, compare.WithProgress(bars.Observe, cfg.Output.ProgressInterval))
		}
	}

	req := &models.ComparisonRequest{
		ID:          uuid.New().String(),
		InputOne:    inputOne,
		InputTwo:    inputTwo,
		Algorithm:   cfg.Compare.Algorithm,
		IgnoreNames: compareFlags.IgnoreNames,
		CreatedAt:   time.Now(),
	}

	result := compare.New(backend, opts...).Compare(ctx, req)

	if bars != nil {
		bars.Stop()
	}

	if err := formatter.Result(result); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}

	if code := result.ExitCode(); code != 0 {
		return &ExitError{Code: code}
	}
	return nil
}

// applyCompareFlags overrides config values with explicitly set command-line flags
func applyCompareFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()

	if flags.Changed("algorithm") {
		cfg.Compare.Algorithm = compareFlags.Algorithm
	}
	if compareFlags.NoSizeCheck {
		cfg.Compare.SizeCheck = false
	}
	if flags.Changed("chunk-size") {
		cfg.Performance.ChunkSize = compareFlags.ChunkSize
	}
	if flags.Changed("bandwidth") {
		cfg.Performance.BandwidthLimit = compareFlags.Bandwidth
	}
	if flags.Changed("output") {
		cfg.Output.Format = compareFlags.Output
	}
	if flags.Changed("progress") {
		cfg.Output.Progress = compareFlags.Progress
	}
	if compareFlags.NoColor || os.Getenv("NO_COLOR") != "" {
		cfg.Output.Color = false
	}

	if compareFlags.LogFile != "" {
		cfg.Logging.Enabled = true
		cfg.Logging.File = compareFlags.LogFile
	}
	if compareFlags.LogFormat != "" {
		cfg.Logging.Format = compareFlags.LogFormat
	}
	if compareFlags.LogLevel != "" {
		cfg.Logging.Level = compareFlags.LogLevel
	}

	// Disable progress in quiet mode
	if globalFlags.Quiet {
		cfg.Output.Progress = false
		cfg.Output.Quiet = true
	}

	// Verbose mode logs debug entries to stderr
	if globalFlags.Verbose {
		cfg.Logging.Enabled = true
		cfg.Logging.Level = "debug"
	}
}

// createLogger creates a logger based on configuration
func createLogger(cfg *config.Config) (logging.Logger, error) {
	if !cfg.Logging.Enabled {
		return logging.NewNullLogger(), nil
	}

	maxSize, err := cfg.LogMaxSizeBytes()
	if err != nil {
		return nil, err
	}

	return logging.New(logging.Options{
		Format:     logging.Format(cfg.Logging.Format),
		Level:      logging.ParseLevel(cfg.Logging.Level),
		File:       cfg.Logging.File,
		MaxSize:    maxSize,
		MaxBackups: cfg.Logging.MaxBackups,
	}, os.Stderr)
}
