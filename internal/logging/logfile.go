package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DefaultFilePrefix names log files written by mashupctl.
const DefaultFilePrefix = "mashupctl"

// LogConfig holds configuration for structured log output.
type LogConfig struct {
	Format        string // "human" (default), "text" or "json"
	Level         string // "DEBUG", "INFO" (default), "WARN", "ERROR"
	Output        string // "-" (default) for stderr, "none" to disable, "auto" for a generated file, or a path
	Dir           string // Log directory (default: $MASHUP_DIR/logs)
	Prefix        string // File name prefix (default: mashupctl)
	RetentionDays int    // Days to retain generated log files (0 keeps everything)
}

func (c *LogConfig) prefix() string {
	if c.Prefix == "" {
		return DefaultFilePrefix
	}
	return c.Prefix
}

// LogFile is the destination chosen by a LogConfig.
type LogFile struct {
	Path   string // empty unless writing to a file
	file   *os.File
	writer io.Writer
}

// NewLogFile opens the output described by cfg. Generated files are named
// <prefix>-YYYYMMDD-HHMMSS-mmm.log inside cfg.Dir; relative paths resolve
// against cfg.Dir as well.
func NewLogFile(cfg *LogConfig) (*LogFile, error) {
	var p string
	switch out := strings.ToLower(cfg.Output); out {
	case "", "-":
		return &LogFile{writer: os.Stderr}, nil
	case "none":
		return &LogFile{writer: io.Discard}, nil
	case "auto":
		p = filepath.Join(cfg.Dir, GenerateLogFilename(cfg.prefix(), time.Now().UTC()))
	default:
		p = cfg.Output
		if !filepath.IsAbs(p) {
			p = filepath.Join(cfg.Dir, p)
		}
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return nil, fmt.Errorf("creating log directory %q: %w", filepath.Dir(p), err)
	}
	f, err := os.OpenFile(p, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file %q: %w", p, err)
	}
	return &LogFile{Path: p, file: f, writer: f}, nil
}

// Writer returns the io.Writer for log output.
func (lf *LogFile) Writer() io.Writer {
	return lf.writer
}

// Close closes the log file if one was opened.
func (lf *LogFile) Close() error {
	if lf.file != nil {
		return lf.file.Close()
	}
	return nil
}

// GenerateLogFilename returns <prefix>-YYYYMMDD-HHMMSS-mmm.log for t (UTC expected).
func GenerateLogFilename(prefix string, t time.Time) string {
	return fmt.Sprintf("%s-%s-%03d.log", prefix, t.Format("20060102-150405"), t.Nanosecond()/1_000_000)
}

// CleanupOldLogFiles removes <prefix>-*.log files in dir whose modification
// time is older than retentionDays. Files that cannot be removed are skipped.
func CleanupOldLogFiles(dir, prefix string, retentionDays int) error {
	if retentionDays <= 0 {
		return nil
	}
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading log directory %q: %w", dir, err)
	}
	cutoff := time.Now().AddDate(0, 0, -retentionDays)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, prefix+"-") || !strings.HasSuffix(name, ".log") {
			continue
		}
		info, err := entry.Info()
		if err != nil || !info.ModTime().Before(cutoff) {
			continue
		}
		_ = os.Remove(filepath.Join(dir, name))
	}
	return nil
}
