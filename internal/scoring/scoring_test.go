package scoring

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/compass/internal/bank"
)

func econ(id, weight int) bank.Question {
	return bank.Question{ID: id, Text: "e", Axis: bank.AxisEconomic, Weight: weight, Specificity: 1}
}

func social(id, weight int) bank.Question {
	return bank.Question{ID: id, Text: "s", Axis: bank.AxisSocial, Weight: weight, Specificity: 1}
}

func TestCompute_EmptyAxesScoreZero(t *testing.T) {
	scope := []bank.Question{econ(1, 1), social(2, 1)}

	s := Compute(nil, scope)
	assert.Equal(t, Scores{}, s)

	s = Compute([]bank.Answer{{QuestionID: 1, Value: 2}}, scope)
	assert.Equal(t, 100.0, s.Economic)
	assert.Equal(t, 0.0, s.Social, "axis with no answers must score exactly 0")
}

func TestCompute_Extremes(t *testing.T) {
	tests := []struct {
		name   string
		weight int
		value  int
		want   float64
	}{
		{"agree with right-weighted", 1, 2, 100},
		{"disagree with right-weighted", 1, -2, -100},
		{"agree with left-weighted", -1, 2, -100},
		{"disagree with left-weighted", -1, -2, 100},
		{"neutral", 1, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scope := []bank.Question{econ(1, tt.weight), econ(2, tt.weight), econ(3, tt.weight)}
			answers := []bank.Answer{
				{QuestionID: 1, Value: tt.value},
				{QuestionID: 2, Value: tt.value},
				{QuestionID: 3, Value: tt.value},
			}
			s := Compute(answers, scope)
			assert.Equal(t, tt.want, s.Economic)
		})
	}
}

func TestCompute_MixedAnswers(t *testing.T) {
	scope := []bank.Question{econ(1, 1), econ(2, -1), social(3, 1), social(4, -1)}
	answers := []bank.Answer{
		{QuestionID: 1, Value: 1},  // +1
		{QuestionID: 2, Value: 2},  // -2
		{QuestionID: 3, Value: -1}, // -1
		{QuestionID: 4, Value: -2}, // +2
	}

	s := Compute(answers, scope)
	assert.InDelta(t, -25.0, s.Economic, 1e-9) // -1 / 4 * 100
	assert.InDelta(t, 25.0, s.Social, 1e-9)    // +1 / 4 * 100
}

func TestCompute_IgnoresAnswersOutOfScope(t *testing.T) {
	scope := []bank.Question{econ(1, 1)}
	answers := []bank.Answer{
		{QuestionID: 1, Value: 1},
		{QuestionID: 99, Value: -2},
	}
	s := Compute(answers, scope)
	assert.Equal(t, 50.0, s.Economic)
	assert.Equal(t, 0.0, s.Social)
}

func TestCompute_AlwaysWithinBounds(t *testing.T) {
	scope := []bank.Question{econ(1, 1), econ(2, -1), econ(3, 1), social(4, 1), social(5, -1)}
	values := []int{-2, -1, 0, 1, 2}

	for _, v1 := range values {
		for _, v2 := range values {
			for _, v3 := range values {
				answers := []bank.Answer{
					{QuestionID: 1, Value: v1},
					{QuestionID: 2, Value: v2},
					{QuestionID: 3, Value: v3},
					{QuestionID: 4, Value: v1},
					{QuestionID: 5, Value: v3},
				}
				s := Compute(answers, scope)
				require.GreaterOrEqual(t, s.Economic, -100.0)
				require.LessOrEqual(t, s.Economic, 100.0)
				require.GreaterOrEqual(t, s.Social, -100.0)
				require.LessOrEqual(t, s.Social, 100.0)
			}
		}
	}
}

func TestCompute_Deterministic(t *testing.T) {
	b := bank.Default()
	answers := []bank.Answer{{QuestionID: 1, Value: 2}, {QuestionID: 3, Value: -1}, {QuestionID: 6, Value: 1}}
	first := Compute(answers, b.All())
	for range 5 {
		assert.Equal(t, first, Compute(answers, b.All()))
	}
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 100.0, Clamp(150))
	assert.Equal(t, -100.0, Clamp(-100.5))
	assert.Equal(t, 42.5, Clamp(42.5))
}

func TestClassify(t *testing.T) {
	tests := []struct {
		econ, social float64
		want         bank.Quadrant
	}{
		{-10, 10, bank.AuthLeft},
		{10, 10, bank.AuthRight},
		{-10, -10, bank.LibLeft},
		{10, -10, bank.LibRight},
		// Ties go to Left and Libertarian.
		{0, 0, bank.LibLeft},
		{0, 10, bank.AuthLeft},
		{10, 0, bank.LibRight},
		{0, -10, bank.LibLeft},
		{100, 100, bank.AuthRight},
	}
	for _, tt := range tests {
		got := Classify(Scores{Economic: tt.econ, Social: tt.social})
		assert.Equal(t, tt.want, got, "Classify(%v, %v)", tt.econ, tt.social)
	}
}

func TestCheck(t *testing.T) {
	scope := []bank.Question{econ(1, 1), social(2, 1)}

	require.NoError(t, Check([]bank.Answer{{QuestionID: 1, Value: 2}}, scope))

	err := Check([]bank.Answer{{QuestionID: 7, Value: 0}}, scope)
	var missing *MissingQuestionError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, 7, missing.QuestionID)

	err = Check([]bank.Answer{{QuestionID: 2, Value: 5}}, scope)
	assert.True(t, errors.Is(err, bank.ErrInvalidAnswer))
}
