package tutor

import (
	"fmt"
	"strings"
)

// GradeLevel identifies the student's school grade.
type GradeLevel string

const (
	GradeKindergarten GradeLevel = "kindergarten"
	Grade1            GradeLevel = "1st-grade"
	Grade2            GradeLevel = "2nd-grade"
	Grade3            GradeLevel = "3rd-grade"
	Grade4            GradeLevel = "4th-grade"
	Grade5            GradeLevel = "5th-grade"
)

// ProblemType identifies what kind of math is practiced.
type ProblemType string

const (
	TypeAddition       ProblemType = "addition"
	TypeSubtraction    ProblemType = "subtraction"
	TypeMultiplication ProblemType = "multiplication"
	TypeDivision       ProblemType = "division"
	TypeMixed          ProblemType = "mixed-operations"
	TypeWordProblems   ProblemType = "word-problems"
	TypeFractions      ProblemType = "fractions"
)

// Difficulty scales the numbers and steps in generated problems.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Option pairs a slug with its display label.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

var (
	gradeLabels = []Option{
		{string(GradeKindergarten), "Kindergarten"},
		{string(Grade1), "1st Grade"},
		{string(Grade2), "2nd Grade"},
		{string(Grade3), "3rd Grade"},
		{string(Grade4), "4th Grade"},
		{string(Grade5), "5th Grade"},
	}
	typeLabels = []Option{
		{string(TypeAddition), "Addition"},
		{string(TypeSubtraction), "Subtraction"},
		{string(TypeMultiplication), "Multiplication"},
		{string(TypeDivision), "Division"},
		{string(TypeMixed), "Mixed Operations"},
		{string(TypeWordProblems), "Word Problems"},
		{string(TypeFractions), "Fractions"},
	}
	difficultyLabels = []Option{
		{string(DifficultyEasy), "Easy"},
		{string(DifficultyMedium), "Medium"},
		{string(DifficultyHard), "Hard"},
	}
)

// GradeOptions returns the grade levels in display order.
func GradeOptions() []Option { return append([]Option(nil), gradeLabels...) }

// ProblemTypeOptions returns the problem types in display order.
func ProblemTypeOptions() []Option { return append([]Option(nil), typeLabels...) }

// DifficultyOptions returns the difficulties in display order.
func DifficultyOptions() []Option { return append([]Option(nil), difficultyLabels...) }

func (g GradeLevel) Label() string  { return labelOf(gradeLabels, string(g)) }
func (p ProblemType) Label() string { return labelOf(typeLabels, string(p)) }
func (d Difficulty) Label() string  { return labelOf(difficultyLabels, string(d)) }

func (g GradeLevel) String() string  { return g.Label() }
func (p ProblemType) String() string { return p.Label() }
func (d Difficulty) String() string  { return d.Label() }

// ParseGradeLevel accepts a slug ("3rd-grade") or a label ("3rd Grade"),
// case-insensitively.
func ParseGradeLevel(s string) (GradeLevel, error) {
	v, err := parseOption(gradeLabels, s)
	if err != nil {
		return "", fmt.Errorf("grade level: %w", err)
	}
	return GradeLevel(v), nil
}

// ParseProblemType accepts a slug ("word-problems") or a label
// ("Word Problems"), case-insensitively.
func ParseProblemType(s string) (ProblemType, error) {
	v, err := parseOption(typeLabels, s)
	if err != nil {
		return "", fmt.Errorf("problem type: %w", err)
	}
	return ProblemType(v), nil
}

// ParseDifficulty accepts "easy"/"Easy" and so on.
func ParseDifficulty(s string) (Difficulty, error) {
	v, err := parseOption(difficultyLabels, s)
	if err != nil {
		return "", fmt.Errorf("difficulty: %w", err)
	}
	return Difficulty(v), nil
}

func (g *GradeLevel) UnmarshalText(b []byte) error {
	v, err := ParseGradeLevel(string(b))
	*g = v
	return err
}

func (p *ProblemType) UnmarshalText(b []byte) error {
	v, err := ParseProblemType(string(b))
	*p = v
	return err
}

func (d *Difficulty) UnmarshalText(b []byte) error {
	v, err := ParseDifficulty(string(b))
	*d = v
	return err
}

// Settings is the practice configuration chosen by the student.
type Settings struct {
	Grade       GradeLevel  `json:"grade"`
	ProblemType ProblemType `json:"problem_type"`
	Difficulty  Difficulty  `json:"difficulty"`
}

// DefaultSettings returns the first option of every list.
func DefaultSettings() Settings {
	return Settings{
		Grade:       GradeKindergarten,
		ProblemType: TypeAddition,
		Difficulty:  DifficultyEasy,
	}
}

// Validate reports whether every field holds a known value.
func (s Settings) Validate() error {
	_, err := s.Normalize()
	return err
}

// Normalize returns s with every field replaced by its canonical slug, so
// labels and odd casing compare equal to the constants.
func (s Settings) Normalize() (Settings, error) {
	var (
		out Settings
		err error
	)
	if out.Grade, err = ParseGradeLevel(string(s.Grade)); err != nil {
		return s, err
	}
	if out.ProblemType, err = ParseProblemType(string(s.ProblemType)); err != nil {
		return s, err
	}
	if out.Difficulty, err = ParseDifficulty(string(s.Difficulty)); err != nil {
		return s, err
	}
	return out, nil
}

func labelOf(opts []Option, value string) string {
	for _, o := range opts {
		if o.Value == value {
			return o.Label
		}
	}
	return value
}

func parseOption(opts []Option, s string) (string, error) {
	s = strings.TrimSpace(s)
	for _, o := range opts {
		if strings.EqualFold(s, o.Value) || strings.EqualFold(s, o.Label) {
			return o.Value, nil
		}
	}
	return "", fmt.Errorf("unknown value %q", s)
}
