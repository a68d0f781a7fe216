// Package summaries serves the web surface: the input form, the summarize
// endpoint and follow-up questions against the stored transcript.
package summaries

import (
	"context"
	"errors"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vidbrief/backend/internal/llm"
	"github.com/vidbrief/backend/internal/session"
	"github.com/vidbrief/backend/internal/transcript"
	"github.com/vidbrief/backend/internal/youtube"
	"github.com/vidbrief/backend/pkg/render"
)

// sessionCookie names the anonymous session id cookie.
const sessionCookie = "vb_session"

// sessionCookieMaxAge keeps the cookie a bit past the record TTL; an expired
// record simply reads back as absent.
const sessionCookieMaxAge = 24 * 60 * 60

// TranscriptAcquirer runs the caption/audio/speech pipeline.
type TranscriptAcquirer interface {
	Acquire(ctx context.Context, videoID string) (transcript.Transcript, error)
}

// MetadataFetcher fetches display metadata for a video.
type MetadataFetcher interface {
	Metadata(ctx context.Context, videoID string) (youtube.Metadata, error)
}

// Handler handles the summarize and ask endpoints.
type Handler struct {
	transcripts TranscriptAcquirer
	metadata    MetadataFetcher
	provider    llm.Provider
	sessions    session.Store
	logger      *zap.Logger
	testMode    bool
}

// NewHandler creates the web handler.
func NewHandler(transcripts TranscriptAcquirer, metadata MetadataFetcher, provider llm.Provider, sessions session.Store, logger *zap.Logger, testMode bool) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		transcripts: transcripts,
		metadata:    metadata,
		provider:    provider,
		sessions:    sessions,
		logger:      logger,
		testMode:    testMode,
	}
}

// Home handles GET / (the input form).
func (h *Handler) Home(c *gin.Context) {
	render.Page(c, http.StatusOK, "index.html", gin.H{})
}

// Summarize handles POST /summarize: validate the URL, acquire a transcript,
// summarize it, persist the session record and render the result. Stage
// failures come back as 400-equivalent pages naming the stage; anything
// unexpected is caught here and turned into a generic 500 page.
func (h *Handler) Summarize(c *gin.Context) {
	defer h.guard(c)

	if h.testMode {
		h.summarizeCanned(c)
		return
	}

	rawURL := c.PostForm("youtube_url")
	videoID, ok := youtube.ExtractVideoID(rawURL)
	if !ok {
		render.BadRequest(c, "Invalid YouTube URL")
		return
	}

	ctx := c.Request.Context()

	// Metadata is display-only; a failed fetch must not block the summary.
	meta, err := h.metadata.Metadata(ctx, videoID)
	if err != nil {
		h.logger.Warn("metadata fetch failed", zap.String("video_id", videoID), zap.Error(err))
		meta = youtube.UnknownMetadata()
	}

	tr, err := h.transcripts.Acquire(ctx, videoID)
	if err != nil {
		h.logger.Warn("transcript pipeline failed", zap.String("video_id", videoID), zap.Error(err))
		switch {
		case errors.Is(err, transcript.ErrAudioDownload):
			render.BadRequest(c, "Failed to download audio")
		case errors.Is(err, transcript.ErrTranscription):
			render.BadRequest(c, "Failed to transcribe audio")
		default:
			render.BadRequest(c, "Failed to fetch a transcript for this video")
		}
		return
	}

	summary, err := h.provider.Summarize(ctx, tr.Text)
	if err != nil || strings.TrimSpace(summary) == "" {
		h.logger.Error("summarization failed", zap.String("video_id", videoID), zap.Error(err))
		render.BadRequest(c, "Failed to generate summary")
		return
	}

	rec := session.Record{
		VideoID:         videoID,
		Title:           meta.Title,
		DurationSeconds: meta.DurationSeconds,
		UploadDate:      meta.UploadDate,
		Transcript:      tr.Text,
		Summary:         summary,
	}
	sid := h.sessionID(c)
	if err := h.sessions.Save(ctx, sid, rec); err != nil {
		// The summary is still worth showing; only follow-ups are lost.
		h.logger.Error("session save failed", zap.Error(err))
	}

	render.Page(c, http.StatusOK, "summary.html", gin.H{
		"summary":           summary,
		"video_id":          videoID,
		"video_title":       meta.Title,
		"video_length":      meta.DurationSeconds,
		"upload_date":       meta.UploadDate,
		"transcript_source": string(tr.Source),
	})
}

// Ask handles POST /ask: answer a follow-up question from the stored
// transcript. Without a stored transcript it fails before any model call.
func (h *Handler) Ask(c *gin.Context) {
	defer h.guard(c)

	ctx := c.Request.Context()
	rec := h.loadRecord(c)
	if rec == nil || rec.Transcript == "" {
		render.BadRequest(c, "No transcript found. Please start over.")
		return
	}

	question := strings.TrimSpace(c.PostForm("question"))
	if question == "" {
		render.BadRequest(c, "Question is required")
		return
	}

	answer, err := h.provider.Answer(ctx, question, rec.Transcript)
	if err != nil || strings.TrimSpace(answer) == "" {
		h.logger.Error("answer generation failed", zap.String("video_id", rec.VideoID), zap.Error(err))
		render.BadRequest(c, "Failed to generate answer")
		return
	}

	render.Page(c, http.StatusOK, "summary.html", gin.H{
		"summary":      rec.Summary,
		"answer":       answer,
		"question":     question,
		"video_id":     rec.VideoID,
		"video_title":  rec.Title,
		"video_length": rec.DurationSeconds,
		"upload_date":  rec.UploadDate,
	})
}

// summarizeCanned serves the fixed test-mode response: no network calls, no
// token usage, but the session record is still written so /ask works.
func (h *Handler) summarizeCanned(c *gin.Context) {
	rec := session.Record{
		VideoID:    "test",
		Title:      "Test video",
		UploadDate: "unknown",
		Transcript: llm.CannedTranscript,
		Summary:    llm.CannedSummary,
	}
	sid := h.sessionID(c)
	if err := h.sessions.Save(c.Request.Context(), sid, rec); err != nil {
		h.logger.Error("session save failed", zap.Error(err))
	}

	render.Page(c, http.StatusOK, "summary.html", gin.H{
		"summary":     rec.Summary,
		"video_id":    rec.VideoID,
		"video_title": rec.Title,
		"upload_date": rec.UploadDate,
		"tokens_used": 0,
	})
}

// sessionID returns the caller's session id, issuing a cookie when absent.
func (h *Handler) sessionID(c *gin.Context) string {
	if sid, err := c.Cookie(sessionCookie); err == nil && sid != "" {
		return sid
	}
	sid := uuid.New().String()
	c.SetCookie(sessionCookie, sid, sessionCookieMaxAge, "/", "", false, true)
	return sid
}

func (h *Handler) loadRecord(c *gin.Context) *session.Record {
	sid, err := c.Cookie(sessionCookie)
	if err != nil || sid == "" {
		return nil
	}
	rec, err := h.sessions.Get(c.Request.Context(), sid)
	if err != nil {
		h.logger.Error("session load failed", zap.Error(err))
		return nil
	}
	return rec
}

// guard is the last-resort catch for this surface: panics are logged with
// their stack and the client only ever sees the generic error page.
func (h *Handler) guard(c *gin.Context) {
	if r := recover(); r != nil {
		h.logger.Error("handler panic",
			zap.Any("panic", r),
			zap.ByteString("stack", debug.Stack()),
		)
		if !c.Writer.Written() {
			render.Internal(c)
		}
		c.Abort()
	}
}
