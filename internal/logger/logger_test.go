package logger

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewDebugModeWritesToStdout(t *testing.T) {
	l := New("debug", Options{})
	if l == nil {
		t.Fatal("expected logger in debug mode")
	}
	l.Sugar().Debugw("debug_probe", "k", "v")
}

func TestNewFileModeCreatesLogFile(t *testing.T) {
	dir := t.TempDir()
	l := New("release", Options{Dir: dir, Filename: "test.log"})
	if l == nil {
		t.Fatal("expected logger in release mode")
	}
	l.Sugar().Infow("file_probe", "k", "v")
	_ = l.Sync()

	if _, err := os.Stat(filepath.Join(dir, "test.log")); err != nil {
		t.Fatalf("expected log file to exist: %v", err)
	}
}

func TestZFallsBackWhenUninitialized(t *testing.T) {
	saved := L
	L = nil
	defer func() { L = saved }()

	if Z() == nil {
		t.Fatal("expected fallback logger")
	}
}
