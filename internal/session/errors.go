package session

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingCredential is returned by every oracle operation while no
	// API key is configured.
	ErrMissingCredential = errors.New("no API key configured")

	// ErrNoActiveProblem is returned by GetHint, CheckAnswer and
	// ExplainSolution before a problem has been generated.
	ErrNoActiveProblem = errors.New("no active problem")

	// ErrEmptyAnswer is returned by CheckAnswer for a blank answer.
	ErrEmptyAnswer = errors.New("answer is empty")
)

// OracleError wraps a failed oracle call. Message carries the underlying
// error text verbatim.
type OracleError struct {
	Message string
	Err     error
}

func (e *OracleError) Error() string {
	return fmt.Sprintf("oracle error: %s", e.Message)
}

func (e *OracleError) Unwrap() error { return e.Err }

func oracleError(err error) *OracleError {
	return &OracleError{Message: err.Error(), Err: err}
}

// UserMessage renders err as the short sentence shown to the student.
func UserMessage(err error) string {
	var oe *OracleError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMissingCredential):
		return "Please enter your API key in the settings to begin!"
	case errors.Is(err, ErrNoActiveProblem):
		return "Generate a problem first!"
	case errors.Is(err, ErrEmptyAnswer):
		return "Please type an answer first!"
	case errors.As(err, &oe):
		return "Oops! Error: " + oe.Message
	}
	return "Error: " + err.Error()
}
