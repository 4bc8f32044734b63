package openrouter

import (
	"context"
	"fmt"
	"log/slog"

	"resty.dev/v3"

	"github.com/at-ishikawa/quickexplain/internal/config"
	"github.com/at-ishikawa/quickexplain/internal/inference"
)

type Client struct {
	httpClient    *resty.Client
	model         string
	logger        *slog.Logger
	debugPayloads bool
}

// NewClient builds a chat completion client for the OpenRouter API.
// debugPayloads enables logging of every raw response body at debug level.
func NewClient(cfg config.OpenRouterConfig, logger *slog.Logger, debugPayloads bool) *Client {
	if logger == nil {
		logger = slog.Default()
	}

	client := resty.New()
	client.SetBaseURL(cfg.BaseURL)
	client.SetTimeout(cfg.Timeout())
	client.SetHeader("Authorization", "Bearer "+cfg.APIKey)
	client.SetHeader("Content-Type", "application/json")
	// attribution headers shown on the OpenRouter dashboard
	client.SetHeader("HTTP-Referer", cfg.Referer)
	client.SetHeader("X-Title", cfg.Title)

	return &Client{
		httpClient:    client,
		model:         cfg.Model,
		logger:        logger,
		debugPayloads: debugPayloads,
	}
}

func (client *Client) Close() error {
	return client.httpClient.Close()
}

// GetModel returns the model name configured for this client
func (client *Client) GetModel() string {
	return client.model
}

type ChatCompletionRequest struct {
	Model       string              `json:"model"`
	Messages    []inference.Message `json:"messages"`
	Temperature float64             `json:"temperature"`
}

// Complete implements the inference.Client interface.
// Only transport failures are returned as errors; any HTTP response, including a
// non-2xx one, is decoded into a Completion.
func (client *Client) Complete(
	ctx context.Context,
	request inference.ChatRequest,
) (inference.Completion, error) {
	requestBody := ChatCompletionRequest{
		Model:       client.model,
		Messages:    request.Messages,
		Temperature: request.Temperature,
	}

	response, err := client.httpClient.R().
		SetContext(ctx).
		SetBody(requestBody).
		Post("/chat/completions")
	if err != nil {
		return inference.Completion{}, fmt.Errorf("%w: httpClient.Post > %w", inference.ErrUpstreamUnavailable, err)
	}

	body := response.String()
	if client.debugPayloads {
		client.logger.DebugContext(ctx, "openrouter raw response",
			"status", response.StatusCode(),
			"body", body,
		)
	}
	if response.IsError() {
		client.logger.WarnContext(ctx, "openrouter returned an error status",
			"status", response.StatusCode(),
		)
	}

	completion := inference.ParseCompletion([]byte(body))
	completion.StatusCode = response.StatusCode()
	return completion, nil
}
