package llm

import (
	"context"
	"fmt"
	"os"

	"google.golang.org/genai"
)

const defaultGoogleModel = "gemini-1.5-flash"

const transcribeInstruction = "Transcribe the contents of this audio file. Capture all spoken words accurately."

// Google backs the provider capability with the Gemini API. Text generation
// and transcription both go through GenerateContent; audio is sent inline.
type Google struct {
	apiKey string
	model  string
}

// NewGoogle creates a Gemini-backed provider.
func NewGoogle(apiKey, model string) *Google {
	if model == "" {
		model = defaultGoogleModel
	}
	return &Google{apiKey: apiKey, model: model}
}

func (g *Google) Summarize(ctx context.Context, text string) (string, error) {
	prompt := fmt.Sprintf("%s\n\nHere is the transcript to summarize: %s. Keep your summary concise and to the point.", summarizePrompt, text)
	out, err := g.generate(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini summarize: %w", err)
	}
	return out, nil
}

func (g *Google) Answer(ctx context.Context, question, transcript string) (string, error) {
	prompt := fmt.Sprintf("%s%s\n\nQuestion: %s", answerPrompt, clipTranscript(transcript), question)
	out, err := g.generate(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini answer: %w", err)
	}
	return out, nil
}

func (g *Google) Transcribe(ctx context.Context, audioPath string) (string, error) {
	data, err := os.ReadFile(audioPath)
	if err != nil {
		return "", fmt.Errorf("gemini transcribe: read audio: %w", err)
	}

	parts := []*genai.Part{
		genai.NewPartFromText(transcribeInstruction),
		genai.NewPartFromBytes(data, "audio/mp4"),
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}
	out, err := g.generate(ctx, contents)
	if err != nil {
		return "", fmt.Errorf("gemini transcribe: %w", err)
	}
	return out, nil
}

// generate runs one GenerateContent call and assembles the candidate text.
func (g *Google) generate(ctx context.Context, contents []*genai.Content) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  g.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", fmt.Errorf("create client: %w", err)
	}

	result, err := client.Models.GenerateContent(ctx, g.model, contents, &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](temperature),
		MaxOutputTokens: summaryMaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return "", fmt.Errorf("empty response")
	}

	var text string
	for _, part := range result.Candidates[0].Content.Parts {
		if part.Text != "" {
			text += part.Text
		}
	}
	if text == "" {
		return "", fmt.Errorf("empty response")
	}

	return cleanResponse(text), nil
}
