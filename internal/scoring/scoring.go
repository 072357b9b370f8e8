// Package scoring turns Likert answers into economic and social axis scores.
package scoring

import (
	"fmt"

	"github.com/abhisek/compass/internal/bank"
)

// MaxScore is the magnitude bound of each axis score.
const MaxScore = 100.0

// Scores is a position on the two-axis plane, each axis in [-100, 100].
// Economic: negative Left, positive Right. Social: negative Libertarian,
// positive Authoritarian.
type Scores struct {
	Economic float64
	Social   float64
}

// Compute scores answers against the questions in scope. For each axis the
// raw sum of value·weight over answered questions on that axis is divided
// by the maximum attainable magnitude (count·2) and scaled to ±100. An axis
// with no answered questions scores exactly 0. Answers whose question is not
// in scope are ignored.
func Compute(answers []bank.Answer, scope []bank.Question) Scores {
	byID := make(map[int]bank.Question, len(scope))
	for _, q := range scope {
		byID[q.ID] = q
	}

	var raw [2]float64
	var count [2]int
	for _, a := range answers {
		q, ok := byID[a.QuestionID]
		if !ok {
			continue
		}
		i := axisIndex(q.Axis)
		raw[i] += float64(a.Value * q.Weight)
		count[i]++
	}

	return Scores{
		Economic: normalize(raw[0], count[0]),
		Social:   normalize(raw[1], count[1]),
	}
}

func axisIndex(a bank.Axis) int {
	if a == bank.AxisSocial {
		return 1
	}
	return 0
}

func normalize(raw float64, count int) float64 {
	if count == 0 {
		return 0
	}
	return Clamp(raw / float64(count*bank.MaxAnswer) * MaxScore)
}

// Clamp bounds v to [-100, 100].
func Clamp(v float64) float64 {
	return max(-MaxScore, min(MaxScore, v))
}

// Classify maps a position to exactly one quadrant. Ties go to the lesser
// side: a zero economic score counts as Left and a zero social score counts
// as Libertarian, so the origin classifies as LibLeft.
func Classify(s Scores) bank.Quadrant {
	switch {
	case s.Economic <= 0 && s.Social > 0:
		return bank.AuthLeft
	case s.Economic > 0 && s.Social > 0:
		return bank.AuthRight
	case s.Economic <= 0 && s.Social <= 0:
		return bank.LibLeft
	default:
		return bank.LibRight
	}
}

// MissingQuestionError reports an answer that references a question
// outside the scoring scope.
type MissingQuestionError struct {
	QuestionID int
}

func (e *MissingQuestionError) Error() string {
	return fmt.Sprintf("answer references question %d which is not in scope", e.QuestionID)
}

// Check verifies that every answer refers to a question in scope and
// carries a value in the Likert range. Compute itself never fails; Check is
// the strict form used where a dangling reference indicates corrupt state.
func Check(answers []bank.Answer, scope []bank.Question) error {
	inScope := make(map[int]bool, len(scope))
	for _, q := range scope {
		inScope[q.ID] = true
	}
	for _, a := range answers {
		if !inScope[a.QuestionID] {
			return &MissingQuestionError{QuestionID: a.QuestionID}
		}
		if err := bank.ValidateValue(a.Value); err != nil {
			return fmt.Errorf("question %d: %w", a.QuestionID, err)
		}
	}
	return nil
}
