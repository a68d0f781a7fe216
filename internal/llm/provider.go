// Package llm abstracts the language model backends used for summarization,
// follow-up answers and audio transcription. One backend is instantiated at
// startup and shared for the process lifetime.
package llm

import (
	"context"
	"regexp"
	"strings"
)

// Provider is the capability surface every backend must expose.
type Provider interface {
	// Summarize produces a structured summary of a transcript.
	Summarize(ctx context.Context, text string) (string, error)
	// Answer answers a question strictly from the transcript.
	Answer(ctx context.Context, question, transcript string) (string, error)
	// Transcribe converts an audio file into text.
	Transcribe(ctx context.Context, audioPath string) (string, error)
}

const summarizePrompt = `You are a YouTube video summarizer. Follow these rules:
1. Start with a 1-sentence overview.
2. List 3-5 key points as bullet points.
3. Highlight technical terms or tools mentioned, if significant.
4. If multiple speakers, note their roles.
5. Avoid speculation; only use transcript content.`

const answerPrompt = `Answer the user's question using this transcript.
Rules:
1. If the answer isn't in the transcript, say "I don't know."
2. Be concise (1-2 sentences).
3. Format technical terms in **bold**.
Transcript:
`

const (
	// transcriptLimit bounds the transcript prefix sent with questions so the
	// prompt stays inside backend context limits.
	transcriptLimit = 3000
	// summaryMaxTokens bounds summary length.
	summaryMaxTokens = 1024
	// temperature favors faithful output over creative output.
	temperature = 0.3
)

var newlineRuns = regexp.MustCompile(`\n+`)

// cleanResponse trims the generated text and collapses newline runs.
func cleanResponse(s string) string {
	return newlineRuns.ReplaceAllString(strings.TrimSpace(s), "\n")
}

// clipTranscript returns at most transcriptLimit characters of the transcript.
func clipTranscript(s string) string {
	if len(s) > transcriptLimit {
		return s[:transcriptLimit]
	}
	return s
}
