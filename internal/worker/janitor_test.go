package worker

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestSweep(t *testing.T) {
	dir := t.TempDir()

	stale := filepath.Join(dir, "old12345678.m4a")
	fresh := filepath.Join(dir, "new12345678.m4a")
	for _, p := range []string{stale, fresh} {
		if err := os.WriteFile(p, []byte("audio"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	old := time.Now().Add(-2 * time.Hour)
	if err := os.Chtimes(stale, old, old); err != nil {
		t.Fatal(err)
	}

	j := NewJanitor(dir, time.Hour, time.Minute, nil)
	removed, err := j.Sweep()
	if err != nil {
		t.Fatalf("Sweep() error = %v", err)
	}
	if removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}
	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Error("stale file still present")
	}
	if _, err := os.Stat(fresh); err != nil {
		t.Error("fresh file was removed")
	}
}

func TestSweepMissingDir(t *testing.T) {
	j := NewJanitor(filepath.Join(t.TempDir(), "does-not-exist"), time.Hour, time.Minute, nil)
	removed, err := j.Sweep()
	if err != nil {
		t.Fatalf("Sweep() error = %v", err)
	}
	if removed != 0 {
		t.Errorf("removed = %d, want 0", removed)
	}
}
