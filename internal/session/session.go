// Package session stores the per-session record linking a produced transcript
// to later follow-up questions. Records are overwritten on each successful
// summarize call and expire with the session.
package session

import "context"

// Record is the state kept between a summarize call and follow-up questions.
type Record struct {
	VideoID         string `json:"video_id"`
	Title           string `json:"title"`
	DurationSeconds int64  `json:"duration_seconds"`
	UploadDate      string `json:"upload_date"`
	Transcript      string `json:"transcript"`
	Summary         string `json:"summary"`
}

// Store persists session records. Get returns (nil, nil) for an absent or
// expired session.
type Store interface {
	Save(ctx context.Context, sessionID string, rec Record) error
	Get(ctx context.Context, sessionID string) (*Record, error)
}
