package http

import (
	"encoding/json"
	"net/http"

	"toolrental/internal/domain"
	"toolrental/internal/logger"
)

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

const (
	codeInvalidRequest ErrorCode = "invalid_request"
	codeRateLimited    ErrorCode = "rate_limited"
	codeInternal       ErrorCode = "internal"
)

// ErrorCode is the machine readable code of an error response
type ErrorCode string

// statusFor maps an input error kind to its HTTP status
func statusFor(kind domain.ErrorKind) int {
	switch kind {
	case domain.ErrorKindToolNotFound:
		return http.StatusNotFound
	case domain.ErrorKindDuplicateTool:
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

// writeError renders err as a JSON error body. Input errors keep their message;
// anything else is logged and reported as an internal error.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	kind, ok := domain.KindOf(err)
	if !ok {
		logger.ErrorContext(r.Context(), "Request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeErrorCode(w, http.StatusInternalServerError, codeInternal, "internal server error")
		return
	}
	writeErrorCode(w, statusFor(kind), ErrorCode(kind), err.Error())
}

func writeErrorCode(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, errorBody{Error: errorDetail{Code: string(code), Message: message}})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Warn("Failed to encode response", "error", err)
	}
}
