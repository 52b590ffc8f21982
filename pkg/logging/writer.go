package logging

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// Format represents the log output format
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// Options configures a WriterLogger
type Options struct {
	Format Format
	Level  Level

	// File is the log file path; empty writes to the fallback writer
	File string
	// MaxSize is the size in bytes that triggers rotation (0 = never)
	MaxSize int64
	// MaxBackups is how many rotated files are kept
	MaxBackups int
}

// sink is the destination shared by a logger and every logger derived from it
type sink struct {
	mu     sync.Mutex
	w      io.Writer
	file   *os.File
	path   string
	size   int64
	opts   Options
	closed bool
}

// WriterLogger writes one line per entry, JSON or text
type WriterLogger struct {
	sink   *sink
	fields Fields
	now    func() time.Time
}

// New returns a logger for opts. Without a file, entries go to fallback
// (typically stderr).
func New(opts Options, fallback io.Writer) (*WriterLogger, error) {
	if opts.Format == "" {
		opts.Format = FormatJSON
	}
	if opts.File == "" {
		return NewWriterLogger(fallback, opts), nil
	}

	if err := os.MkdirAll(filepath.Dir(opts.File), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	file, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to stat log file: %w", err)
	}

	return &WriterLogger{
		sink: &sink{w: file, file: file, path: opts.File, size: info.Size(), opts: opts},
		now:  time.Now,
	}, nil
}

// NewWriterLogger logs to w without rotation
func NewWriterLogger(w io.Writer, opts Options) *WriterLogger {
	if opts.Format == "" {
		opts.Format = FormatJSON
	}
	return &WriterLogger{
		sink: &sink{w: w, opts: opts},
		now:  time.Now,
	}
}

// Debug logs a debug message
func (l *WriterLogger) Debug(ctx context.Context, msg string, fields Fields) {
	l.log(DebugLevel, msg, nil, fields)
}

// Info logs an info message
func (l *WriterLogger) Info(ctx context.Context, msg string, fields Fields) {
	l.log(InfoLevel, msg, nil, fields)
}

// Warn logs a warning message
func (l *WriterLogger) Warn(ctx context.Context, msg string, fields Fields) {
	l.log(WarnLevel, msg, nil, fields)
}

// Error logs an error message
func (l *WriterLogger) Error(ctx context.Context, msg string, err error, fields Fields) {
	l.log(ErrorLevel, msg, err, fields)
}

// WithFields returns a logger sharing this logger's output with additional fields
func (l *WriterLogger) WithFields(fields Fields) Logger {
	return &WriterLogger{
		sink:   l.sink,
		fields: merge(l.fields, fields),
		now:    l.now,
	}
}

// Close closes the log file, if any. Derived loggers share the file.
func (l *WriterLogger) Close() error {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()

	l.sink.closed = true
	if l.sink.file != nil {
		err := l.sink.file.Close()
		l.sink.file = nil
		return err
	}
	return nil
}

func (l *WriterLogger) log(level Level, msg string, err error, fields Fields) {
	if level < l.sink.opts.Level {
		return
	}

	all := merge(l.fields, fields)
	ts := l.now().UTC()

	var line []byte
	if l.sink.opts.Format == FormatText {
		line = formatText(ts, level, msg, err, all)
	} else {
		var jsonErr error
		line, jsonErr = formatJSON(ts, level, msg, err, all)
		if jsonErr != nil {
			return
		}
	}

	l.sink.write(line)
}

func (s *sink) write(line []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	if s.file != nil && s.opts.MaxSize > 0 && s.size >= s.opts.MaxSize {
		s.rotate()
	}

	n, _ := s.w.Write(line)
	s.size += int64(n)
}

// rotate shifts file.N to file.N+1, keeping at most MaxBackups; must be called with mu held
func (s *sink) rotate() {
	s.file.Close()

	for i := s.opts.MaxBackups - 1; i >= 1; i-- {
		os.Rename(fmt.Sprintf("%s.%d", s.path, i), fmt.Sprintf("%s.%d", s.path, i+1))
	}
	if s.opts.MaxBackups > 0 {
		os.Rename(s.path, s.path+".1")
	} else {
		os.Remove(s.path)
	}

	file, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		s.file = nil
		s.w = io.Discard
		return
	}
	s.file = file
	s.w = file
	s.size = 0
}

func formatJSON(ts time.Time, level Level, msg string, err error, fields Fields) ([]byte, error) {
	entry := make(map[string]interface{}, len(fields)+4)
	for k, v := range fields {
		entry[k] = v
	}
	entry["timestamp"] = ts.Format(time.RFC3339)
	entry["level"] = level.String()
	entry["message"] = msg
	if err != nil {
		entry["error"] = err.Error()
	}

	data, jsonErr := json.Marshal(entry)
	if jsonErr != nil {
		return nil, jsonErr
	}
	return append(data, '\n'), nil
}

func formatText(ts time.Time, level Level, msg string, err error, fields Fields) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "%s [%s] %s", ts.Format("2006-01-02T15:04:05.000Z"), level, msg)
	if err != nil {
		fmt.Fprintf(&b, " error=%q", err.Error())
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, fields[k])
	}
	b.WriteByte('\n')
	return []byte(b.String())
}

func merge(base, extra Fields) Fields {
	out := make(Fields, len(base)+len(extra))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}
