package session

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/abhisek/mathbuddy/internal/llm"
	"github.com/abhisek/mathbuddy/internal/tutor"
)

// Connector builds an oracle provider for an API key.
type Connector func(ctx context.Context, apiKey string) (llm.Provider, error)

// Options configures a Controller.
type Options struct {
	Settings tutor.Settings

	// Connector is used by SetCredential. Without one, SetCredential
	// only accepts an empty key.
	Connector Connector

	// Provider pre-configures the oracle, e.g. from a discovered key.
	Provider llm.Provider

	// Classifier overrides the default affirmation word list.
	Classifier *tutor.Classifier

	// Timeout bounds each oracle call, retries included. Zero means the
	// caller's context alone applies.
	Timeout time.Duration

	MaxTokens   int
	Temperature float64
}

// Controller owns one Session and runs the practice operations against the
// oracle. State changes are applied only after a successful oracle call.
type Controller struct {
	mu       sync.Mutex
	session  Session
	settings tutor.Settings
	provider llm.Provider

	connect  Connector
	classify func(string) tutor.Verdict
	timeout  time.Duration
	complete llm.CompleteOptions
}

// New creates a Controller with a fresh Session.
func New(opts Options) *Controller {
	settings := opts.Settings
	if settings == (tutor.Settings{}) {
		settings = tutor.DefaultSettings()
	}

	classify := tutor.ClassifyVerdict
	if opts.Classifier != nil {
		classify = opts.Classifier.Classify
	}

	return &Controller{
		settings: settings,
		provider: opts.Provider,
		connect:  opts.Connector,
		classify: classify,
		timeout:  opts.Timeout,
		complete: llm.CompleteOptions{
			MaxTokens:   opts.MaxTokens,
			Temperature: opts.Temperature,
		},
	}
}

// GenerateProblem asks the oracle for a new problem and makes it current.
func (c *Controller) GenerateProblem(ctx context.Context) (string, error) {
	c.mu.Lock()
	p, settings := c.provider, c.settings
	c.mu.Unlock()

	if p == nil {
		return "", ErrMissingCredential
	}

	text, err := c.ask(ctx, p, llm.PurposeProblem, tutor.ProblemPrompt(settings))
	if err != nil {
		return "", err
	}

	c.mu.Lock()
	c.session.CurrentProblem = text
	c.session.LastFeedback = nil
	c.mu.Unlock()

	return text, nil
}

// GetHint asks for one hint on the current problem.
func (c *Controller) GetHint(ctx context.Context) (string, error) {
	p, grade, problem, err := c.active()
	if err != nil {
		return "", err
	}
	return c.ask(ctx, p, llm.PurposeHint, tutor.HintPrompt(grade, problem))
}

// CheckAnswer has the oracle judge answer against the current problem.
// Every judged answer counts as an attempt; Score grows only on Correct.
func (c *Controller) CheckAnswer(ctx context.Context, answer string) (Feedback, error) {
	p, grade, problem, err := c.active()
	if err != nil {
		return Feedback{}, err
	}

	answer = strings.TrimSpace(answer)
	if answer == "" {
		return Feedback{}, ErrEmptyAnswer
	}

	text, err := c.ask(ctx, p, llm.PurposeCheck, tutor.CheckPrompt(grade, problem, answer))
	if err != nil {
		return Feedback{}, err
	}

	fb := Feedback{Answer: answer, Text: text, Verdict: c.classify(text)}

	c.mu.Lock()
	c.session.TotalAttempts++
	if fb.Verdict == tutor.Correct {
		c.session.Score++
	}
	c.session.LastFeedback = &fb
	c.mu.Unlock()

	return fb, nil
}

// ExplainSolution asks for a step-by-step explanation of the current problem.
func (c *Controller) ExplainSolution(ctx context.Context) (string, error) {
	p, grade, problem, err := c.active()
	if err != nil {
		return "", err
	}
	return c.ask(ctx, p, llm.PurposeExplain, tutor.ExplainPrompt(grade, problem))
}

// ResetProgress zeroes the score. The current problem is kept.
func (c *Controller) ResetProgress() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session.Score = 0
	c.session.TotalAttempts = 0
}

// Configure replaces the practice settings. Labels are accepted and
// stored as their canonical values.
func (c *Controller) Configure(s tutor.Settings) error {
	s, err := s.Normalize()
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.settings = s
	return nil
}

// Settings returns the current practice settings.
func (c *Controller) Settings() tutor.Settings {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.settings
}

// SetCredential connects the oracle with apiKey. An empty key disconnects.
// On failure the previous provider stays in place.
func (c *Controller) SetCredential(ctx context.Context, apiKey string) error {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		c.mu.Lock()
		c.provider = nil
		c.mu.Unlock()
		return nil
	}
	if c.connect == nil {
		return fmt.Errorf("set credential: no connector configured")
	}

	p, err := c.connect(ctx, apiKey)
	if err != nil {
		return fmt.Errorf("set credential: %w", err)
	}

	c.mu.Lock()
	c.provider = p
	c.mu.Unlock()
	return nil
}

// HasCredential reports whether an oracle is configured.
func (c *Controller) HasCredential() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.provider != nil
}

// Snapshot returns a copy of the session, settings and credential status.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := Snapshot{
		Session:       c.session,
		Settings:      c.settings,
		HasCredential: c.provider != nil,
	}
	if c.session.LastFeedback != nil {
		fb := *c.session.LastFeedback
		snap.Session.LastFeedback = &fb
	}
	if c.provider != nil {
		snap.Model = c.provider.ModelID()
	}
	return snap
}

// active returns what the problem-bound operations need, checking the
// credential before the problem.
func (c *Controller) active() (llm.Provider, tutor.GradeLevel, string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.provider == nil {
		return nil, "", "", ErrMissingCredential
	}
	if !c.session.HasProblem() {
		return nil, "", "", ErrNoActiveProblem
	}
	return c.provider, c.settings.Grade, c.session.CurrentProblem, nil
}

func (c *Controller) ask(ctx context.Context, p llm.Provider, purpose, prompt string) (string, error) {
	ctx = llm.WithPurpose(ctx, purpose)
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	text, err := llm.Complete(ctx, p, prompt, c.complete)
	if err != nil {
		return "", oracleError(err)
	}
	return text, nil
}
