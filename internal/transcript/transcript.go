// Package transcript acquires a transcript for a video: captions when they
// exist, audio download plus speech-to-text when they don't. Captions are
// cheap and exact; transcription is slow and lossy, so the two paths run in
// that fixed order and never in parallel.
package transcript

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Source tags where a transcript came from, for diagnostics.
type Source string

const (
	SourceCaptions Source = "captions"
	SourceSpeech   Source = "speech"
)

// Transcript is the concatenated text of a video's audio content.
type Transcript struct {
	Text   string
	Source Source
}

// Stage failures. Handlers branch on these to name the failing stage.
var (
	ErrAudioDownload = errors.New("audio download failed")
	ErrTranscription = errors.New("transcription failed")
)

// CaptionFetcher obtains pre-existing caption text for a video.
type CaptionFetcher interface {
	Captions(ctx context.Context, videoID string) (string, error)
}

// AudioDownloader fetches a video's audio track to local storage.
type AudioDownloader interface {
	DownloadAudio(ctx context.Context, videoID string) (string, error)
}

// SpeechToText transcribes an audio file.
type SpeechToText interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}

// Pipeline runs the ordered caption -> audio -> speech-to-text fallback.
type Pipeline struct {
	captions CaptionFetcher
	audio    AudioDownloader
	speech   SpeechToText
	logger   *zap.Logger
}

// NewPipeline wires the three adapters together.
func NewPipeline(captions CaptionFetcher, audio AudioDownloader, speech SpeechToText, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{captions: captions, audio: audio, speech: speech, logger: logger}
}

// Acquire returns a transcript or a terminal stage failure. Any caption
// failure, whatever its cause, folds into "no captions" and triggers the
// audio path. An empty transcript is a failure at every stage; an empty
// caption track falls through to transcription.
func (p *Pipeline) Acquire(ctx context.Context, videoID string) (Transcript, error) {
	text, err := p.captions.Captions(ctx, videoID)
	if err == nil && strings.TrimSpace(text) != "" {
		p.logger.Info("transcript from captions", zap.String("video_id", videoID))
		return Transcript{Text: text, Source: SourceCaptions}, nil
	}
	if err != nil {
		p.logger.Info("no captions, falling back to audio", zap.String("video_id", videoID), zap.Error(err))
	} else {
		p.logger.Info("empty caption track, falling back to audio", zap.String("video_id", videoID))
	}

	audioPath, err := p.audio.DownloadAudio(ctx, videoID)
	if err != nil {
		return Transcript{}, fmt.Errorf("%w: %v", ErrAudioDownload, err)
	}

	text, err = p.speech.Transcribe(ctx, audioPath)
	if err != nil {
		return Transcript{}, fmt.Errorf("%w: %v", ErrTranscription, err)
	}
	if strings.TrimSpace(text) == "" {
		return Transcript{}, fmt.Errorf("%w: empty transcription", ErrTranscription)
	}

	p.logger.Info("transcript from audio", zap.String("video_id", videoID), zap.String("audio_path", audioPath))
	return Transcript{Text: text, Source: SourceSpeech}, nil
}
