// Package worker runs background maintenance. The only job here is the audio
// janitor: downloaded audio files are only needed while a request is in
// flight, so anything old in the audio dir is disposable.
package worker

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

// Janitor periodically deletes stale downloaded audio files.
type Janitor struct {
	dir      string
	maxAge   time.Duration
	interval time.Duration
	logger   *zap.Logger
}

// NewJanitor creates an audio janitor for dir.
func NewJanitor(dir string, maxAge, interval time.Duration, logger *zap.Logger) *Janitor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Janitor{dir: dir, maxAge: maxAge, interval: interval, logger: logger}
}

// Run sweeps on an interval until ctx is done.
func (j *Janitor) Run(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			j.logger.Info("audio janitor stopping")
			return
		case <-ticker.C:
			removed, err := j.Sweep()
			if err != nil {
				j.logger.Warn("audio sweep failed", zap.Error(err))
				continue
			}
			if removed > 0 {
				j.logger.Info("audio sweep", zap.Int("removed", removed))
			}
		}
	}
}

// Sweep deletes files older than maxAge and reports how many went. A missing
// audio dir just means nothing was ever downloaded.
func (j *Janitor) Sweep() (int, error) {
	entries, err := os.ReadDir(j.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}

	cutoff := time.Now().Add(-j.maxAge)
	removed := 0
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		path := filepath.Join(j.dir, e.Name())
		if err := os.Remove(path); err != nil {
			j.logger.Warn("remove stale audio failed", zap.String("path", path), zap.Error(err))
			continue
		}
		removed++
	}
	return removed, nil
}
