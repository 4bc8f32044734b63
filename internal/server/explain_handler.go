// Package server provides the HTTP handlers for the explain relay.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/at-ishikawa/quickexplain/internal/explain"
	"github.com/at-ishikawa/quickexplain/internal/inference"
)

const maxRequestBytes = 64 << 10

// Explainer produces an explanation for a selected snippet
type Explainer interface {
	Explain(ctx context.Context, req explain.Request) (explain.Result, error)
}

type errorResponse struct {
	Error string `json:"error"`
}

type ExplainHandler struct {
	explainer Explainer
	validate  *validator.Validate
	logger    *slog.Logger
}

func NewExplainHandler(explainer Explainer, logger *slog.Logger) *ExplainHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExplainHandler{
		explainer: explainer,
		validate:  validator.New(),
		logger:    logger,
	}
}

// Explain handles POST /explain.
// Every response to a well-formed request carries an explanation, including a 502
// when the upstream could not be reached.
func (h *ExplainHandler) Explain(w http.ResponseWriter, r *http.Request) {
	var req explain.Request
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	if err := decoder.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "request body must be a JSON object with a text field"})
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "text is required"})
		return
	}

	result, err := h.explainer.Explain(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, explain.ErrEmptyText):
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		case errors.Is(err, inference.ErrUpstreamUnavailable):
			h.logger.ErrorContext(r.Context(), "upstream request failed", "error", err)
			writeJSON(w, http.StatusBadGateway, explain.Result{Explanation: explain.FallbackNoChoices})
		default:
			h.logger.ErrorContext(r.Context(), "explain failed", "error", err)
			writeJSON(w, http.StatusInternalServerError, explain.Result{Explanation: explain.FallbackNoChoices})
		}
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Health handles GET /healthz.
func (h *ExplainHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
