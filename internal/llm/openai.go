package llm

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

const defaultOpenAIModel = "gpt-4o-mini"

// OpenAI backs the provider capability with OpenAI chat completions and
// whisper transcription.
type OpenAI struct {
	client *openai.Client
	model  string
}

// NewOpenAI creates an OpenAI-backed provider.
func NewOpenAI(apiKey, model string) *OpenAI {
	if model == "" {
		model = defaultOpenAIModel
	}
	return &OpenAI{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

func (o *OpenAI) Summarize(ctx context.Context, text string) (string, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: summarizePrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf("Here is the transcript to summarize: %s. Keep your summary concise and to the point.", text),
			},
		},
		Temperature: temperature,
		MaxTokens:   summaryMaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("openai summarize: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai summarize: empty response")
	}

	return cleanResponse(resp.Choices[len(resp.Choices)-1].Message.Content), nil
}

func (o *OpenAI) Answer(ctx context.Context, question, transcript string) (string, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: answerPrompt + clipTranscript(transcript),
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: question,
			},
		},
		Temperature: temperature,
	})
	if err != nil {
		return "", fmt.Errorf("openai answer: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai answer: empty response")
	}

	return cleanResponse(resp.Choices[len(resp.Choices)-1].Message.Content), nil
}

func (o *OpenAI) Transcribe(ctx context.Context, audioPath string) (string, error) {
	resp, err := o.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    openai.Whisper1,
		FilePath: audioPath,
	})
	if err != nil {
		return "", fmt.Errorf("openai transcribe: %w", err)
	}

	return cleanResponse(resp.Text), nil
}
