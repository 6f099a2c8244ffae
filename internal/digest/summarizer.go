package digest

import (
	"context"
	"errors"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const summarizerSystemPrompt = "You write one short, neutral paragraph summarizing the " +
	"day's movement of a retail investor's stock watchlist. Mention only the supplied " +
	"symbols. No advice, no predictions."

const defaultSummarizerModel = openai.ChatModelGPT4oMini

// Summarizer turns digest lines into a short natural-language market summary.
type Summarizer struct {
	client *openai.Client
	model  openai.ChatModel
}

// SummarizerOption customises the summarizer.
type SummarizerOption func(*Summarizer)

// WithModel overrides the completion model.
func WithModel(model string) SummarizerOption {
	return func(s *Summarizer) {
		if model != "" {
			s.model = openai.ChatModel(model)
		}
	}
}

// WithOpenAIClient injects a pre-configured client, primarily for testing.
func WithOpenAIClient(client *openai.Client) SummarizerOption {
	return func(s *Summarizer) {
		if client != nil {
			s.client = client
		}
	}
}

// NewSummarizer constructs a summarizer using the given API key.
// Returns nil when the key is empty so callers can wire it optionally.
func NewSummarizer(apiKey string, opts ...SummarizerOption) *Summarizer {
	s := &Summarizer{model: defaultSummarizerModel}
	for _, opt := range opts {
		opt(s)
	}
	if s.client == nil {
		if strings.TrimSpace(apiKey) == "" {
			return nil
		}
		client := openai.NewClient(option.WithAPIKey(apiKey))
		s.client = &client
	}
	return s
}

// Summarize produces a one-paragraph summary of the digest lines.
func (s *Summarizer) Summarize(ctx context.Context, lines []string) (string, error) {
	if len(lines) == 0 {
		return "", errors.New("digest: nothing to summarize")
	}

	completion, err := s.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: s.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(summarizerSystemPrompt),
			openai.UserMessage(strings.Join(lines, "\n")),
		},
	})
	if err != nil {
		return "", err
	}
	if len(completion.Choices) == 0 {
		return "", errors.New("digest: completion returned no choices")
	}
	return strings.TrimSpace(completion.Choices[0].Message.Content), nil
}
