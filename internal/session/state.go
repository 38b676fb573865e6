package session

import "github.com/abhisek/mathbuddy/internal/tutor"

// Session is one student's in-memory practice state.
// Score never exceeds TotalAttempts.
type Session struct {
	Score          int       `json:"score"`
	TotalAttempts  int       `json:"total_attempts"`
	CurrentProblem string    `json:"current_problem,omitempty"`
	LastFeedback   *Feedback `json:"last_feedback,omitempty"`
}

// Feedback is the oracle's judgment of the most recent answer.
type Feedback struct {
	Answer  string        `json:"answer"`
	Text    string        `json:"feedback"`
	Verdict tutor.Verdict `json:"verdict"`
}

// HasProblem reports whether a problem is active.
func (s Session) HasProblem() bool {
	return s.CurrentProblem != ""
}

// Percentage returns Score as a percentage of TotalAttempts rounded to the
// nearest whole number, or 0 before the first attempt.
func (s Session) Percentage() int {
	if s.TotalAttempts == 0 {
		return 0
	}
	return (s.Score*200 + s.TotalAttempts) / (2 * s.TotalAttempts)
}

// Snapshot is a read-only copy of a controller's state.
type Snapshot struct {
	Session       Session        `json:"session"`
	Settings      tutor.Settings `json:"settings"`
	HasCredential bool           `json:"has_credential"`
	Model         string         `json:"model,omitempty"`
}
