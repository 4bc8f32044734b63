package inference

import (
	"context"
	"errors"
)

//go:generate mockgen -source=interface.go -destination=../mocks/inference/mock_client.go -package=mock_inference

// ErrUpstreamUnavailable is returned when the completion API could not be reached at all
// (connection refused, timeout, TLS failure).
var ErrUpstreamUnavailable = errors.New("upstream completion API unavailable")

// Client interface defines the methods for chat completion calls
type Client interface {
	Complete(ctx context.Context, request ChatRequest) (Completion, error)
}

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// ChatRequest holds a conversation to send to the model
type ChatRequest struct {
	Messages    []Message
	Temperature float64
}
