package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/boddenberg/simple-hello-mcp-go/internal/domain"

	"go.uber.org/zap"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// decodeProcessRequest reads exactly one JSON object from the body.
// An absent body, `null`, non-object JSON, a non-string query or trailing
// data all fail with *domain.ErrMalformedRequest.
func decodeProcessRequest(r *http.Request, maxBody int64) (*domain.ProcessRequest, error) {
	dec := json.NewDecoder(r.Body)

	var tooLarge *http.MaxBytesError
	var req *domain.ProcessRequest
	if err := dec.Decode(&req); err != nil {
		switch {
		case errors.As(err, &tooLarge):
			return nil, &domain.ErrPayloadTooLarge{Limit: maxBody}
		case errors.Is(err, io.EOF):
			return nil, &domain.ErrMalformedRequest{Reason: "body is required"}
		default:
			return nil, &domain.ErrMalformedRequest{Reason: "invalid JSON", Err: err}
		}
	}
	if req == nil {
		return nil, &domain.ErrMalformedRequest{Reason: "expected a JSON object"}
	}
	_, err := dec.Token()
	switch {
	case errors.Is(err, io.EOF):
	case errors.As(err, &tooLarge):
		return nil, &domain.ErrPayloadTooLarge{Limit: maxBody}
	default:
		return nil, &domain.ErrMalformedRequest{Reason: "unexpected data after JSON object"}
	}
	return req, nil
}

// handleServiceError maps domain errors to HTTP responses.
func handleServiceError(w http.ResponseWriter, err error, logger *zap.Logger) {
	var malformed *domain.ErrMalformedRequest
	var tooLarge *domain.ErrPayloadTooLarge

	switch {
	case errors.As(err, &malformed):
		logger.Debug("malformed request", zap.String("error", err.Error()))
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &tooLarge):
		logger.Warn("payload too large", zap.Int64("limit", tooLarge.Limit))
		writeError(w, http.StatusRequestEntityTooLarge, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		// Client is gone; nobody reads the response.
		logger.Debug("request abandoned", zap.Error(err))
	default:
		logger.Error("unhandled error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
