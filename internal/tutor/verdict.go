package tutor

import "strings"

// Verdict is the judged outcome of an answer check.
type Verdict int

const (
	Incorrect Verdict = iota
	Correct
)

func (v Verdict) String() string {
	if v == Correct {
		return "correct"
	}
	return "incorrect"
}

func (v Verdict) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

var affirmationWords = []string{
	"correct", "right", "yes", "perfect", "excellent", "great job", "amazing", "wonderful",
}

// AffirmationWords returns the words that mark feedback as correct.
func AffirmationWords() []string {
	return append([]string(nil), affirmationWords...)
}

// Classifier decides a Verdict from free-text feedback by substring match.
// Negations are not understood: "incorrect" contains "correct".
type Classifier struct {
	words []string
}

// NewClassifier returns a Classifier matching any of words, case-insensitively.
func NewClassifier(words ...string) *Classifier {
	lowered := make([]string, 0, len(words))
	for _, w := range words {
		if w = strings.ToLower(strings.TrimSpace(w)); w != "" {
			lowered = append(lowered, w)
		}
	}
	return &Classifier{words: lowered}
}

// Classify returns Correct if feedback contains any affirmation word.
func (c *Classifier) Classify(feedback string) Verdict {
	text := strings.ToLower(feedback)
	for _, w := range c.words {
		if strings.Contains(text, w) {
			return Correct
		}
	}
	return Incorrect
}

var defaultClassifier = NewClassifier(affirmationWords...)

// ClassifyVerdict applies the default affirmation word list to feedback.
func ClassifyVerdict(feedback string) Verdict {
	return defaultClassifier.Classify(feedback)
}
