// Package youtube adapts the external video source: id extraction, metadata,
// caption tracks and audio downloads. Everything that talks to YouTube goes
// through yt-dlp or the Data API; callers only see plain values and errors.
package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	ytapi "google.golang.org/api/youtube/v3"

	"github.com/vidbrief/backend/config"
)

const watchURL = "https://youtube.com/watch?v=%s"

// Client shells out to yt-dlp and, when a Data API key is configured, queries
// the YouTube Data API for metadata.
type Client struct {
	bin      string
	audioDir string
	timeout  time.Duration
	api      *ytapi.Service // nil without an API key
	logger   *zap.Logger
}

// NewClient creates a video source client. The Data API service is only set
// up when an API key is configured; metadata falls back to yt-dlp otherwise.
func NewClient(ctx context.Context, cfg config.YouTubeConfig, logger *zap.Logger) (*Client, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &Client{
		bin:      cfg.YtDlpPath,
		audioDir: cfg.AudioDir,
		timeout:  time.Duration(cfg.CallTimeoutSec) * time.Second,
		logger:   logger,
	}

	if cfg.APIKey != "" {
		svc, err := ytapi.NewService(ctx, option.WithAPIKey(cfg.APIKey))
		if err != nil {
			return nil, fmt.Errorf("youtube data api: %w", err)
		}
		c.api = svc
		logger.Info("youtube data api enabled")
	}

	return c, nil
}

// videoDump is the slice of yt-dlp's -J output this service cares about.
type videoDump struct {
	Title             string                    `json:"title"`
	Duration          float64                   `json:"duration"`
	UploadDate        string                    `json:"upload_date"` // YYYYMMDD
	Subtitles         map[string][]captionTrack `json:"subtitles"`
	AutomaticCaptions map[string][]captionTrack `json:"automatic_captions"`
}

type captionTrack struct {
	Ext  string `json:"ext"`
	URL  string `json:"url"`
	Name string `json:"name"`
}

// dump runs `yt-dlp -J --skip-download` and decodes the JSON line from the
// mixed output (yt-dlp prints warnings on their own lines).
func (c *Client) dump(ctx context.Context, videoID string) (*videoDump, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	args := []string{"-J", "--skip-download", "--no-warnings", fmt.Sprintf(watchURL, videoID)}
	cmd := exec.CommandContext(ctx, c.bin, args...)
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("yt-dlp dump: %w", err)
	}

	var jsonLine string
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "{") {
			jsonLine = line
			break
		}
	}
	if jsonLine == "" {
		return nil, fmt.Errorf("yt-dlp dump: no JSON in output")
	}

	var d videoDump
	if err := json.Unmarshal([]byte(jsonLine), &d); err != nil {
		return nil, fmt.Errorf("yt-dlp dump: decode: %w", err)
	}
	return &d, nil
}

// DownloadAudio fetches the audio track to <audioDir>/<videoID>.m4a. The path
// is keyed by video id so concurrent requests for different videos never
// collide, and a repeat request reuses the file.
func (c *Client) DownloadAudio(ctx context.Context, videoID string) (string, error) {
	if err := os.MkdirAll(c.audioDir, 0o755); err != nil {
		return "", fmt.Errorf("create audio dir: %w", err)
	}

	outPath := filepath.Join(c.audioDir, videoID+".m4a")
	if _, err := os.Stat(outPath); err == nil {
		c.logger.Debug("audio already downloaded", zap.String("video_id", videoID))
		return outPath, nil
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	args := []string{
		"-f", "bestaudio[ext=m4a]/bestaudio",
		"-o", outPath,
		"--no-progress",
		"--no-warnings",
		fmt.Sprintf(watchURL, videoID),
	}
	cmd := exec.CommandContext(ctx, c.bin, args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("yt-dlp audio: %w, output: %s", err, string(out))
	}

	if _, err := os.Stat(outPath); err != nil {
		return "", fmt.Errorf("yt-dlp audio: no output file: %w", err)
	}

	c.logger.Info("audio downloaded", zap.String("video_id", videoID), zap.String("path", outPath))
	return outPath, nil
}
