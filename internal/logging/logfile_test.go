package logging

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestGenerateLogFilename(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		time   time.Time
		want   string
	}{
		{
			name:   "milliseconds truncated",
			prefix: "mashupctl",
			time:   time.Date(2025, 6, 15, 12, 30, 45, 456789000, time.UTC),
			want:   "mashupctl-20250615-123045-456.log",
		},
		{
			name:   "midnight custom prefix",
			prefix: "wc",
			time:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			want:   "wc-20250101-000000-000.log",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GenerateLogFilename(tt.prefix, tt.time); got != tt.want {
				t.Errorf("GenerateLogFilename() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewLogFile_Outputs(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name       string
		output     string
		wantWriter io.Writer
		wantPath   string
	}{
		{name: "default is stderr", output: "", wantWriter: os.Stderr},
		{name: "dash is stderr", output: "-", wantWriter: os.Stderr},
		{name: "none discards", output: "none", wantWriter: io.Discard},
		{name: "relative path", output: "rel.log", wantPath: filepath.Join(dir, "rel.log")},
		{name: "absolute path", output: filepath.Join(dir, "abs.log"), wantPath: filepath.Join(dir, "abs.log")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lf, err := NewLogFile(&LogConfig{Output: tt.output, Dir: dir})
			if err != nil {
				t.Fatalf("NewLogFile() error = %v", err)
			}
			defer lf.Close()
			if lf.Path != tt.wantPath {
				t.Errorf("Path = %q, want %q", lf.Path, tt.wantPath)
			}
			if tt.wantWriter != nil && lf.Writer() != tt.wantWriter {
				t.Errorf("Writer() = %v, want %v", lf.Writer(), tt.wantWriter)
			}
		})
	}
}

func TestNewLogFile_Auto(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	lf, err := NewLogFile(&LogConfig{Output: "auto", Dir: dir})
	if err != nil {
		t.Fatalf("NewLogFile() error = %v", err)
	}
	defer lf.Close()
	if filepath.Dir(lf.Path) != dir {
		t.Fatalf("Path = %q, want inside %q", lf.Path, dir)
	}
	if _, err := os.Stat(lf.Path); err != nil {
		t.Fatalf("log file not created: %v", err)
	}
}

func TestCleanupOldLogFiles(t *testing.T) {
	dir := t.TempDir()
	old := time.Now().AddDate(0, 0, -10)
	write := func(name string, mtime time.Time) string {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte(name), 0o644); err != nil {
			t.Fatal(err)
		}
		if err := os.Chtimes(p, mtime, mtime); err != nil {
			t.Fatal(err)
		}
		return p
	}
	stale := write("mashupctl-20251201-120000-000.log", old)
	fresh := write("mashupctl-20251210-120000-000.log", time.Now())
	foreign := write("other.log", old)

	if err := CleanupOldLogFiles(dir, "mashupctl", 7); err != nil {
		t.Fatalf("CleanupOldLogFiles() error = %v", err)
	}
	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Errorf("stale file kept: %s", stale)
	}
	for _, p := range []string{fresh, foreign} {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("file removed: %s", p)
		}
	}
	if err := CleanupOldLogFiles(filepath.Join(dir, "missing"), "mashupctl", 7); err != nil {
		t.Errorf("missing dir error = %v", err)
	}
}
