package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/abhisek/mathbuddy/internal/session"
)

// Error codes returned in the "error" field of failed responses.
const (
	codeMissingCredential = "missing_credential"
	codeNoActiveProblem   = "no_active_problem"
	codeEmptyAnswer       = "empty_answer"
	codeOracleError       = "oracle_error"
	codeInvalidRequest    = "invalid_request"
	codeInvalidCredential = "invalid_credential"
)

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("failed to encode response", "error", err)
	}
}

// Error writes a JSON error response.
func Error(w http.ResponseWriter, status int, code, message string) {
	JSON(w, status, errorBody{Error: code, Message: message})
}

// sessionError maps controller errors to HTTP responses.
func sessionError(w http.ResponseWriter, err error) {
	msg := session.UserMessage(err)

	var oe *session.OracleError
	switch {
	case errors.Is(err, session.ErrMissingCredential):
		Error(w, http.StatusUnauthorized, codeMissingCredential, msg)
	case errors.Is(err, session.ErrNoActiveProblem):
		Error(w, http.StatusConflict, codeNoActiveProblem, msg)
	case errors.Is(err, session.ErrEmptyAnswer):
		Error(w, http.StatusBadRequest, codeEmptyAnswer, msg)
	case errors.As(err, &oe):
		slog.Warn("oracle call failed", "error", oe.Message)
		Error(w, http.StatusBadGateway, codeOracleError, oe.Message)
	default:
		slog.Error("unexpected session error", "error", err)
		Error(w, http.StatusInternalServerError, "internal_error", "something went wrong")
	}
}
