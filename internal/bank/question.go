package bank

import (
	"errors"
	"fmt"
)

// Axis is one of the two independent ideological dimensions.
type Axis string

const (
	AxisEconomic Axis = "economic" // Left ↔ Right
	AxisSocial   Axis = "social"   // Libertarian ↔ Authoritarian
)

// AllAxes returns both axes in display order.
func AllAxes() []Axis {
	return []Axis{AxisEconomic, AxisSocial}
}

// Quadrant is a region of the two-axis plane. The empty value marks a
// general-purpose question with no quadrant affinity.
type Quadrant string

const (
	QuadrantNone Quadrant = ""
	AuthLeft     Quadrant = "AuthLeft"
	AuthRight    Quadrant = "AuthRight"
	LibLeft      Quadrant = "LibLeft"
	LibRight     Quadrant = "LibRight"
)

// AllQuadrants returns the four quadrants in display order.
func AllQuadrants() []Quadrant {
	return []Quadrant{AuthLeft, AuthRight, LibLeft, LibRight}
}

// DisplayName returns a human-readable name for a quadrant.
func (q Quadrant) DisplayName() string {
	switch q {
	case AuthLeft:
		return "Authoritarian Left"
	case AuthRight:
		return "Authoritarian Right"
	case LibLeft:
		return "Libertarian Left"
	case LibRight:
		return "Libertarian Right"
	case QuadrantNone:
		return "General"
	default:
		return string(q)
	}
}

// Valid reports whether q is one of the four quadrants or untagged.
func (q Quadrant) Valid() bool {
	switch q {
	case QuadrantNone, AuthLeft, AuthRight, LibLeft, LibRight:
		return true
	}
	return false
}

// Specificity bounds. 1 is broad, 5 is highly specific.
const (
	MinSpecificity = 1
	MaxSpecificity = 5
)

// Question is a single scored statement in the bank.
type Question struct {
	ID          int      `yaml:"id" json:"id"`
	Text        string   `yaml:"text" json:"text"`
	Explanation string   `yaml:"explanation,omitempty" json:"explanation,omitempty"`
	Axis        Axis     `yaml:"axis" json:"axis"`
	Weight      int      `yaml:"weight" json:"weight"` // +1 Right/Authoritarian, -1 Left/Libertarian
	Specificity int      `yaml:"specificity" json:"specificity"`
	Quadrant    Quadrant `yaml:"quadrant,omitempty" json:"quadrant,omitempty"`
}

// Tagged reports whether the question carries a quadrant affinity.
func (q Question) Tagged() bool {
	return q.Quadrant != QuadrantNone
}

// Answer is a respondent's Likert response to one question.
type Answer struct {
	QuestionID int
	Value      int
}

// Answer value range: -2 strongly disagree, +2 strongly agree.
const (
	MinAnswer = -2
	MaxAnswer = 2
)

// ErrInvalidAnswer is returned for answer values outside [MinAnswer, MaxAnswer].
var ErrInvalidAnswer = errors.New("invalid answer value")

// ValidateValue rejects answer values outside the Likert range.
func ValidateValue(v int) error {
	if v < MinAnswer || v > MaxAnswer {
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrInvalidAnswer, v, MinAnswer, MaxAnswer)
	}
	return nil
}

// Choice pairs an answer value with its display label.
type Choice struct {
	Value int
	Label string
}

// Scale returns the five answer choices from disagree to agree.
func Scale() []Choice {
	return []Choice{
		{Value: -2, Label: "Disagree"},
		{Value: -1, Label: "Sometimes Disagree"},
		{Value: 0, Label: "Neutral"},
		{Value: 1, Label: "Sometimes Agree"},
		{Value: 2, Label: "Agree"},
	}
}

// Label returns the display label for an answer value.
func Label(v int) string {
	for _, c := range Scale() {
		if c.Value == v {
			return c.Label
		}
	}
	return fmt.Sprintf("%d", v)
}
