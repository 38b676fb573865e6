package llm

import (
	"context"
	"strings"
	"sync"
)

type demoProblem struct {
	text    string
	hint    string
	answer  string
	explain string
}

var demoProblems = []demoProblem{
	{
		text:    "What is 3 + 4?",
		hint:    "Start at 3 and count up 4 more on your fingers.",
		answer:  "7",
		explain: "1. Imagine you have 3 apples 🍎\n2. A friend gives you 4 more\n3. Count them all: 3, 4, 5, 6, 7\n4. You have 7 apples! 🎉",
	},
	{
		text:    "Sam has 10 stickers and gives away 3. How many stickers does Sam have left?",
		hint:    "Take 3 away from 10 by counting backwards.",
		answer:  "7",
		explain: "1. Sam starts with 10 stickers ⭐\n2. Giving away means taking away, so we subtract\n3. Count back 3 from 10: 9, 8, 7\n4. Sam has 7 stickers left! 🎉",
	},
	{
		text:    "What is 5 x 2?",
		hint:    "Think of 2 groups with 5 in each group.",
		answer:  "10",
		explain: "1. Multiplying means equal groups\n2. Make 2 groups of 5 dots\n3. Count all the dots: 5 + 5\n4. That makes 10! 🎉",
	},
}

// DemoProvider is the offline backend selected by the "mock" provider. It
// serves a fixed set of problems and judges answers locally, so every
// practice action works without a key or network.
type DemoProvider struct {
	mu   sync.Mutex
	next int
}

// NewDemoProvider creates a DemoProvider starting at the first problem.
func NewDemoProvider() *DemoProvider {
	return &DemoProvider{}
}

func (d *DemoProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	var prompt string
	if n := len(req.Messages); n > 0 {
		prompt = req.Messages[n-1].Content
	}

	var text string
	switch PurposeFrom(ctx) {
	case PurposeProblem:
		text = d.nextProblem().text
	case PurposeHint:
		text = demoProblemIn(prompt).hint
	case PurposeCheck:
		text = demoFeedback(prompt)
	case PurposeExplain:
		text = demoProblemIn(prompt).explain
	default:
		text = "Let's practice some math together! 🎉"
	}

	return &Response{
		Content: text,
		Usage: Usage{
			InputTokens:  len(strings.Fields(prompt)),
			OutputTokens: len(strings.Fields(text)),
			TotalTokens:  len(strings.Fields(prompt)) + len(strings.Fields(text)),
		},
		Model:      "mock",
		StopReason: StopEnd,
	}, nil
}

func (d *DemoProvider) ModelID() string {
	return "mock"
}

func (d *DemoProvider) nextProblem() demoProblem {
	d.mu.Lock()
	defer d.mu.Unlock()
	p := demoProblems[d.next%len(demoProblems)]
	d.next++
	return p
}

// demoProblemIn finds the demo problem quoted in prompt.
func demoProblemIn(prompt string) demoProblem {
	for _, p := range demoProblems {
		if strings.Contains(prompt, p.text) {
			return p
		}
	}
	return demoProblems[0]
}

// demoFeedback compares the first word after the prompt's last "answer:"
// with the expected answer.
func demoFeedback(prompt string) string {
	p := demoProblemIn(prompt)

	answer := ""
	if i := strings.LastIndex(strings.ToLower(prompt), "answer:"); i >= 0 {
		line, _, _ := strings.Cut(prompt[i+len("answer:"):], "\n")
		if f := strings.Fields(line); len(f) > 0 {
			answer = strings.TrimRight(f[0], ".!")
		}
	}

	if answer == p.answer {
		return "Great job! 🎉 " + p.answer + " is correct!"
	}
	return "Not quite. " + p.hint + " Try again! 💪"
}
