package tutor

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	assert.Equal(t, GradeKindergarten, s.Grade)
	assert.Equal(t, TypeAddition, s.ProblemType)
	assert.Equal(t, DifficultyEasy, s.Difficulty)
	assert.NoError(t, s.Validate())
}

func TestParseGradeLevel(t *testing.T) {
	tests := []struct {
		in   string
		want GradeLevel
	}{
		{"3rd Grade", Grade3},
		{"3rd-grade", Grade3},
		{"3RD GRADE", Grade3},
		{"  kindergarten ", GradeKindergarten},
		{"5th Grade", Grade5},
	}
	for _, tt := range tests {
		got, err := ParseGradeLevel(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseGradeLevel("6th Grade")
	assert.Error(t, err)
}

func TestParseProblemTypeAndDifficulty(t *testing.T) {
	pt, err := ParseProblemType("Word Problems")
	require.NoError(t, err)
	assert.Equal(t, TypeWordProblems, pt)

	pt, err = ParseProblemType("mixed-operations")
	require.NoError(t, err)
	assert.Equal(t, TypeMixed, pt)

	_, err = ParseProblemType("calculus")
	assert.Error(t, err)

	d, err := ParseDifficulty("HARD")
	require.NoError(t, err)
	assert.Equal(t, DifficultyHard, d)

	_, err = ParseDifficulty("impossible")
	assert.Error(t, err)
}

func TestLabels(t *testing.T) {
	assert.Equal(t, "Kindergarten", GradeKindergarten.Label())
	assert.Equal(t, "Mixed Operations", TypeMixed.Label())
	assert.Equal(t, "Medium", DifficultyMedium.String())
	assert.Len(t, GradeOptions(), 6)
	assert.Len(t, ProblemTypeOptions(), 7)
	assert.Len(t, DifficultyOptions(), 3)
}

func TestSettingsJSONAcceptsLabels(t *testing.T) {
	var s Settings
	err := json.Unmarshal([]byte(`{"grade":"2nd Grade","problem_type":"Fractions","difficulty":"medium"}`), &s)
	require.NoError(t, err)
	assert.Equal(t, Settings{Grade: Grade2, ProblemType: TypeFractions, Difficulty: DifficultyMedium}, s)

	err = json.Unmarshal([]byte(`{"grade":"college"}`), &s)
	assert.Error(t, err)
}

func TestSettingsValidate(t *testing.T) {
	s := DefaultSettings()
	s.Difficulty = "nightmare"
	assert.Error(t, s.Validate())
}

func TestSettingsNormalize(t *testing.T) {
	s, err := Settings{Grade: "3RD GRADE", ProblemType: "Mixed Operations", Difficulty: " HARD "}.Normalize()
	require.NoError(t, err)
	assert.Equal(t, Settings{Grade: Grade3, ProblemType: TypeMixed, Difficulty: DifficultyHard}, s)
	assert.Equal(t, "3rd Grade", s.Grade.Label())

	_, err = Settings{Grade: Grade1, ProblemType: "calculus", Difficulty: DifficultyEasy}.Normalize()
	assert.ErrorContains(t, err, "problem type")
}
