// Package explain turns a selected snippet into a short model-written explanation.
package explain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/at-ishikawa/quickexplain/internal/inference"
)

const (
	// FallbackNoChoices is returned when the upstream reply carries no choices
	FallbackNoChoices = "⚠️ The AI could not generate an explanation right now. Please try again."
	// FallbackNoContent is returned when the first choice has no message content
	FallbackNoContent = "⚠️ No explanation was returned by the model."

	DefaultTemperature = 0.3
)

var ErrEmptyText = errors.New("text is required")

// Request is a snippet selected by the user plus optional surrounding text
type Request struct {
	Text    string `json:"text" validate:"required"`
	Context string `json:"context"`
}

type Result struct {
	Explanation string `json:"explanation"`
}

type Service struct {
	client      inference.Client
	temperature float64
	logger      *slog.Logger
}

func NewService(client inference.Client, temperature float64, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		client:      client,
		temperature: temperature,
		logger:      logger,
	}
}

// Explain asks the model about req.Text. A reply that cannot be used is turned into
// one of the fallback explanations; only an unreachable upstream or an empty text
// returns an error. Whitespace is a valid selection and is sent as is.
func (s *Service) Explain(ctx context.Context, req Request) (Result, error) {
	if req.Text == "" {
		return Result{}, ErrEmptyText
	}

	completion, err := s.client.Complete(ctx, inference.ChatRequest{
		Messages: []inference.Message{
			{Role: inference.RoleSystem, Content: systemPrompt},
			{Role: inference.RoleUser, Content: BuildPrompt(req.Text, req.Context)},
		},
		Temperature: s.temperature,
	})
	if err != nil {
		return Result{}, fmt.Errorf("client.Complete > %w", err)
	}

	switch completion.Kind {
	case inference.CompletionMissingChoices:
		s.logger.WarnContext(ctx, "upstream returned no choices",
			"status", completion.StatusCode,
			"response", completion.Raw,
		)
	case inference.CompletionMissingContent:
		s.logger.WarnContext(ctx, "upstream message has no content",
			"status", completion.StatusCode,
			"response", completion.Raw,
		)
	}

	return Result{Explanation: Explanation(completion)}, nil
}

// Explanation maps a decoded completion to the text shown to the user.
func Explanation(completion inference.Completion) string {
	switch completion.Kind {
	case inference.CompletionOK:
		if completion.Content != "" {
			return completion.Content
		}
		return FallbackNoContent
	case inference.CompletionMissingContent:
		return FallbackNoContent
	default:
		return FallbackNoChoices
	}
}
