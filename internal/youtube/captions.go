package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// captionMaxBytes bounds the caption track body read into memory.
const captionMaxBytes = 10_000_000

// Captions fetches the best available caption track and concatenates it into
// one string. Manual tracks are preferred over automatic ones, English over
// other languages. A missing, unfetchable or whitespace-only track is an
// error; the caller falls back to audio transcription.
func (c *Client) Captions(ctx context.Context, videoID string) (string, error) {
	d, err := c.dump(ctx, videoID)
	if err != nil {
		return "", err
	}

	track, ok := pickTrack(d.Subtitles)
	if !ok {
		track, ok = pickTrack(d.AutomaticCaptions)
	}
	if !ok {
		return "", fmt.Errorf("no caption track for %s", videoID)
	}

	body, err := c.fetchTrack(ctx, track.URL)
	if err != nil {
		return "", fmt.Errorf("fetch caption track: %w", err)
	}

	text, err := parseJSON3(body)
	if err != nil {
		return "", err
	}
	if text == "" {
		return "", fmt.Errorf("empty caption track for %s", videoID)
	}

	c.logger.Info("captions fetched", zap.String("video_id", videoID), zap.Int("chars", len(text)))
	return text, nil
}

// pickTrack selects a json3 track, preferring English.
func pickTrack(tracks map[string][]captionTrack) (captionTrack, bool) {
	for _, lang := range []string{"en", "en-US", "en-GB"} {
		if t, ok := json3Track(tracks[lang]); ok {
			return t, true
		}
	}
	for _, list := range tracks {
		if t, ok := json3Track(list); ok {
			return t, true
		}
	}
	return captionTrack{}, false
}

func json3Track(list []captionTrack) (captionTrack, bool) {
	for _, t := range list {
		if t.Ext == "json3" && t.URL != "" {
			return t, true
		}
	}
	return captionTrack{}, false
}

func (c *Client) fetchTrack(ctx context.Context, url string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected http status %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, captionMaxBytes))
	if err != nil {
		return nil, err
	}
	return body, nil
}

// json3 caption wire format: a list of timed events, each holding utf8 text
// segments. Only the text matters here; timing fields are ignored.
type rawJSON3 struct {
	Events []rawEvent `json:"events"`
}

type rawEvent struct {
	Segs []rawSeg `json:"segs"`
}

type rawSeg struct {
	Utf8 string `json:"utf8"`
}

// parseJSON3 decodes a json3 caption blob and joins the segment text with
// single spaces.
func parseJSON3(b []byte) (string, error) {
	var raw rawJSON3
	if err := json.Unmarshal(b, &raw); err != nil {
		return "", fmt.Errorf("parse json3: %w", err)
	}

	var parts []string
	for _, ev := range raw.Events {
		for _, seg := range ev.Segs {
			if t := strings.TrimSpace(seg.Utf8); t != "" {
				parts = append(parts, t)
			}
		}
	}
	return strings.Join(parts, " "), nil
}
