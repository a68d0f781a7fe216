package llm

import (
	"fmt"
	"strings"

	"github.com/vidbrief/backend/config"
)

// New instantiates the configured backend. An unknown provider name is a
// startup error, not a per-request one. In test mode the canned backend is
// returned regardless of configuration.
func New(cfg config.LLMConfig, testMode bool) (Provider, error) {
	if testMode {
		return Canned{}, nil
	}

	switch strings.ToLower(cfg.Provider) {
	case "openai":
		return NewOpenAI(cfg.OpenAIKey, cfg.Model), nil
	case "google", "gemini":
		return NewGoogle(cfg.GoogleKey, cfg.Model), nil
	default:
		return nil, fmt.Errorf("unsupported llm provider: %q", cfg.Provider)
	}
}

// Ensure all backends satisfy the interface.
var (
	_ Provider = (*OpenAI)(nil)
	_ Provider = (*Google)(nil)
	_ Provider = Canned{}
)
