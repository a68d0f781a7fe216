package youtube

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

const unknownField = "unknown"

// Metadata describes a video for display alongside its summary.
type Metadata struct {
	Title           string
	DurationSeconds int64
	UploadDate      string // YYYY-MM-DD or "unknown"
}

// UnknownMetadata is the placeholder used when the metadata fetch fails;
// summaries still render without it.
func UnknownMetadata() Metadata {
	return Metadata{Title: unknownField, UploadDate: unknownField}
}

// Metadata fetches title, duration and upload date. The Data API is used when
// configured; otherwise the yt-dlp dump supplies the same fields.
func (c *Client) Metadata(ctx context.Context, videoID string) (Metadata, error) {
	if c.api != nil {
		md, err := c.apiMetadata(videoID)
		if err == nil {
			return md, nil
		}
		c.logger.Warn("data api metadata failed, falling back to yt-dlp", zap.Error(err))
	}
	return c.dumpMetadata(ctx, videoID)
}

func (c *Client) apiMetadata(videoID string) (Metadata, error) {
	resp, err := c.api.Videos.List([]string{"snippet", "contentDetails"}).Id(videoID).Do()
	if err != nil {
		return Metadata{}, fmt.Errorf("videos.list: %w", err)
	}
	if len(resp.Items) == 0 {
		return Metadata{}, fmt.Errorf("video %s not found", videoID)
	}

	item := resp.Items[0]
	md := UnknownMetadata()
	if item.Snippet != nil {
		if item.Snippet.Title != "" {
			md.Title = item.Snippet.Title
		}
		// PublishedAt is RFC3339; the date part is all we show.
		if len(item.Snippet.PublishedAt) >= 10 {
			md.UploadDate = item.Snippet.PublishedAt[:10]
		}
	}
	if item.ContentDetails != nil {
		md.DurationSeconds = parseISO8601Duration(item.ContentDetails.Duration)
	}
	return md, nil
}

func (c *Client) dumpMetadata(ctx context.Context, videoID string) (Metadata, error) {
	d, err := c.dump(ctx, videoID)
	if err != nil {
		return Metadata{}, err
	}

	md := UnknownMetadata()
	if d.Title != "" {
		md.Title = d.Title
	}
	if d.Duration > 0 {
		md.DurationSeconds = int64(d.Duration)
	}
	if date := formatUploadDate(d.UploadDate); date != "" {
		md.UploadDate = date
	}
	return md, nil
}

// formatUploadDate converts yt-dlp's YYYYMMDD form to YYYY-MM-DD.
func formatUploadDate(s string) string {
	if len(s) != 8 {
		return ""
	}
	return s[:4] + "-" + s[4:6] + "-" + s[6:]
}

// parseISO8601Duration converts Data API durations like PT1H2M3S to seconds.
// Malformed input yields 0.
func parseISO8601Duration(s string) int64 {
	s = strings.TrimPrefix(s, "P")
	s = strings.TrimPrefix(s, "T")
	if s == "" {
		return 0
	}

	var total int64
	var num strings.Builder
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			num.WriteRune(r)
		case r == 'T':
			num.Reset()
		default:
			n, err := strconv.ParseInt(num.String(), 10, 64)
			if err != nil {
				return 0
			}
			num.Reset()
			switch r {
			case 'D':
				total += n * 86400
			case 'H':
				total += n * 3600
			case 'M':
				total += n * 60
			case 'S':
				total += n
			default:
				return 0
			}
		}
	}
	return total
}
