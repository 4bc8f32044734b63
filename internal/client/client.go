// Package client calls a running relay the same way the browser extension does.
package client

import (
	"context"
	"fmt"
	"time"

	"resty.dev/v3"

	"github.com/at-ishikawa/quickexplain/internal/explain"
)

type Client struct {
	httpClient *resty.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	httpClient := resty.New()
	httpClient.SetBaseURL(baseURL)
	httpClient.SetTimeout(timeout)
	httpClient.SetHeader("Content-Type", "application/json")
	return &Client{httpClient: httpClient}
}

func (client *Client) Close() error {
	return client.httpClient.Close()
}

// errorBody is either a rejection ({"error": ...}) or a fallback sent with a 5xx ({"explanation": ...})
type errorBody struct {
	Error       string `json:"error"`
	Explanation string `json:"explanation"`
}

// Explain posts the snippet to /explain. A non-2xx status is returned as an error,
// unless the relay still answered with an explanation.
func (client *Client) Explain(ctx context.Context, req explain.Request) (explain.Result, error) {
	var result explain.Result
	var failure errorBody
	response, err := client.httpClient.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&result).
		SetError(&failure).
		Post("/explain")
	if err != nil {
		return explain.Result{}, fmt.Errorf("httpClient.Post > %w", err)
	}
	if response.IsError() {
		if failure.Explanation != "" {
			return explain.Result{Explanation: failure.Explanation}, nil
		}
		if failure.Error != "" {
			return explain.Result{}, fmt.Errorf("response error %d: %s", response.StatusCode(), failure.Error)
		}
		return explain.Result{}, fmt.Errorf("response error %d: %s", response.StatusCode(), response.String())
	}
	return result, nil
}
