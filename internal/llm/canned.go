package llm

import "context"

// Canned responses served in test mode. No network calls, zero token usage.
const (
	CannedTranscript = "This is a canned transcript used when the service runs in test mode."
	CannedSummary    = "Test summary.\n- Canned key point one.\n- Canned key point two."
	CannedAnswer     = "I don't know."
)

// Canned is a Provider that returns fixed responses. It stands in for a real
// backend when TEST_MODE is enabled.
type Canned struct{}

func (Canned) Summarize(ctx context.Context, text string) (string, error) {
	return CannedSummary, nil
}

func (Canned) Answer(ctx context.Context, question, transcript string) (string, error) {
	return CannedAnswer, nil
}

func (Canned) Transcribe(ctx context.Context, audioPath string) (string, error) {
	return CannedTranscript, nil
}
