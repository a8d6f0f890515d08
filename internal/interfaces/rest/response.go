package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/DanielPopoola/shelter-fetch/internal/core/domain"
)

const (
	CodeInvalidRequest      = "INVALID_REQUEST"
	CodeNotFound            = "NOT_FOUND"
	CodeUpstreamError       = "UPSTREAM_ERROR"
	CodeUpstreamUnavailable = "UPSTREAM_UNAVAILABLE"
	CodeUpstreamInvalid     = "UPSTREAM_INVALID_RESPONSE"
	CodeTimeout             = "TIMEOUT"
	CodeInternal            = "INTERNAL_ERROR"
	CodeClientClosed        = "CLIENT_CLOSED_REQUEST"
)

// StatusClientClosedRequest is the non-standard status recorded when the
// caller disconnects before the page is ready.
const StatusClientClosedRequest = 499

type Response struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(Response{Success: true, Data: data})
}

// WriteError maps fetch errors to HTTP responses. The backend's 404 passes
// through; any other backend failure is a bad gateway.
func WriteError(w http.ResponseWriter, err error, logger *slog.Logger) {
	if err == nil {
		err = errors.New("unknown error")
	}
	status, code := ToHTTPStatus(err)
	message := err.Error()
	if status >= http.StatusInternalServerError {
		if logger != nil {
			logger.Error("request failed", "status", status, "code", code, "error", err)
		}
		if status == http.StatusInternalServerError {
			message = "internal server error"
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Success: false,
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	})
}

func ToHTTPStatus(err error) (int, string) {
	var (
		invalid   *domain.InvalidRequestError
		httpErr   *domain.HTTPError
		netErr    *domain.NetworkError
		decodeErr *domain.DecodeError
	)
	switch {
	case errors.Is(err, context.Canceled):
		return StatusClientClosedRequest, CodeClientClosed
	case errors.As(err, &invalid):
		return http.StatusBadRequest, CodeInvalidRequest
	case errors.As(err, &httpErr):
		if httpErr.Status == http.StatusNotFound {
			return http.StatusNotFound, CodeNotFound
		}
		return http.StatusBadGateway, CodeUpstreamError
	case errors.As(err, &netErr):
		if errors.Is(netErr.Err, context.DeadlineExceeded) {
			return http.StatusGatewayTimeout, CodeTimeout
		}
		return http.StatusBadGateway, CodeUpstreamUnavailable
	case errors.As(err, &decodeErr):
		return http.StatusBadGateway, CodeUpstreamInvalid
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, CodeTimeout
	default:
		return http.StatusInternalServerError, CodeInternal
	}
}
