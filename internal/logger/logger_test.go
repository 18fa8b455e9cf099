package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"off", LevelOff, false},
		{"QUIET", LevelOff, false},
		{"", LevelNormal, false},
		{"normal", LevelNormal, false},
		{"debug", LevelVerbose, false},
		{" verbose ", LevelVerbose, false},
		{"loud", LevelNormal, true},
	}

	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseLevel(%q) error = %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("ParseLevel(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestLevelsFilterOutput(t *testing.T) {
	var buf bytes.Buffer
	log := New(LevelNormal, &buf)

	log.Debug("hidden %d", 1)
	log.Info("shown %d", 2)
	log.Warn("careful")
	log.Error("broken")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug line leaked at normal level: %q", out)
	}
	for _, want := range []string{"[INF] ", "shown 2", "[WRN] ", "[ERR] "} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output %q", want, out)
		}
	}

	buf.Reset()
	log.SetLevel(LevelVerbose)
	log.Debug("visible")
	if !strings.Contains(buf.String(), "[DBG] ") {
		t.Fatalf("expected debug output, got %q", buf.String())
	}

	buf.Reset()
	log.SetLevel(LevelOff)
	log.Error("silent")
	if buf.Len() != 0 {
		t.Fatalf("expected no output when off, got %q", buf.String())
	}
	if log.GetLevel() != LevelOff {
		t.Fatalf("expected level off, got %s", log.GetLevel())
	}
}

func TestOpenOutput(t *testing.T) {
	w, closeFn, err := OpenOutput("stderr")
	if err != nil || w != os.Stderr {
		t.Fatalf("expected stderr, got %v (%v)", w, err)
	}
	closeFn()

	path := filepath.Join(t.TempDir(), "logs", "stepcook.log")
	w, closeFn, err = OpenOutput(path)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	New(LevelNormal, w).Info("hello file")
	if err := closeFn(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "hello file") {
		t.Fatalf("expected log line in file, got %q", data)
	}
}
