package practice

import (
	"time"

	"github.com/abhisek/mathbuddy/internal/session"
)

// problemReadyMsg carries a freshly generated problem.
type problemReadyMsg struct {
	Problem string
	Err     error
}

type hintReadyMsg struct {
	Hint string
	Err  error
}

// checkDoneMsg carries the oracle's judgment of the submitted answer.
type checkDoneMsg struct {
	Feedback session.Feedback
	Err      error
}

type explainReadyMsg struct {
	Explanation string
	Err         error
}

// spinnerTickMsg animates the busy indicator while an oracle call runs.
type spinnerTickMsg time.Time
