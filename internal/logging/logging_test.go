package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestNewWithWriter_Formats(t *testing.T) {
	for _, format := range []string{"", "human", "text", "json"} {
		var buf bytes.Buffer
		l, err := NewWithWriter(format, slog.LevelInfo, &buf)
		if err != nil {
			t.Fatalf("NewWithWriter(%q) error = %v", format, err)
		}
		l.Debug(context.Background(), "hidden")
		l.With("op", "create").Info(context.Background(), "shown", "id", "42")
		out := buf.String()
		if strings.Contains(out, "hidden") || !strings.Contains(out, "shown") || !strings.Contains(out, "42") {
			t.Errorf("format %q output = %q", format, out)
		}
		if format == "json" {
			var m map[string]any
			if err := json.Unmarshal(buf.Bytes(), &m); err != nil || m["op"] != "create" {
				t.Errorf("json output = %q, err = %v", out, err)
			}
		}
	}
	if _, err := NewWithWriter("xml", slog.LevelInfo, &bytes.Buffer{}); err == nil {
		t.Errorf("expected error for unsupported format")
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{"": slog.LevelInfo, "debug": slog.LevelDebug, "WARN": slog.LevelWarn, "Error": slog.LevelError}
	for in, want := range cases {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Errorf("ParseLevel(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Errorf("expected error for unknown level")
	}
}

func TestInterpolate(t *testing.T) {
	got := Interpolate("Error creating a workspace: %(errorMsg)s. (%(missing)s)", map[string]string{"errorMsg": "Conflict"})
	want := "Error creating a workspace: Conflict. (%(missing)s)"
	if got != want {
		t.Errorf("Interpolate() = %q, want %q", got, want)
	}
}

func TestFormatAndLog(t *testing.T) {
	var buf bytes.Buffer
	l, _ := NewWithWriter("json", slog.LevelInfo, &buf)
	ctx := WithLogger(context.Background(), l)
	msg := FormatAndLog(ctx, "Error merging the mashup: %(errorMsg)s.", map[string]string{"errorMsg": "boom"}, "status", 500)
	if msg != "Error merging the mashup: boom." {
		t.Fatalf("FormatAndLog() = %q", msg)
	}
	var m map[string]any
	if err := json.Unmarshal(buf.Bytes(), &m); err != nil {
		t.Fatalf("log output %q: %v", buf.String(), err)
	}
	if m["level"] != "ERROR" || m["msg"] != msg {
		t.Errorf("logged %v", m)
	}
}

func TestFromContext_Default(t *testing.T) {
	if FromContext(context.Background()) == nil {
		t.Fatal("FromContext() returned nil")
	}
}
