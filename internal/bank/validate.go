package bank

import (
	"fmt"
	"strings"
)

// validateQuestions performs all structural checks on the given question set.
// Returns a combined error describing all problems found, or nil if valid.
func validateQuestions(questions []Question) error {
	var errs []string

	if len(questions) == 0 {
		errs = append(errs, "bank has no questions")
	}

	seen := make(map[int]bool, len(questions))
	for i, q := range questions {
		if q.ID <= 0 {
			errs = append(errs, fmt.Sprintf("question #%d: id must be positive, got %d", i, q.ID))
		}
		if seen[q.ID] {
			errs = append(errs, fmt.Sprintf("duplicate question ID: %d", q.ID))
		}
		seen[q.ID] = true

		if strings.TrimSpace(q.Text) == "" {
			errs = append(errs, fmt.Sprintf("question %d: empty text", q.ID))
		}
		if q.Axis != AxisEconomic && q.Axis != AxisSocial {
			errs = append(errs, fmt.Sprintf("question %d: unknown axis %q", q.ID, q.Axis))
		}
		if q.Weight != 1 && q.Weight != -1 {
			errs = append(errs, fmt.Sprintf("question %d: weight must be +1 or -1, got %d", q.ID, q.Weight))
		}
		if q.Specificity < MinSpecificity || q.Specificity > MaxSpecificity {
			errs = append(errs, fmt.Sprintf("question %d: specificity %d out of range [%d, %d]",
				q.ID, q.Specificity, MinSpecificity, MaxSpecificity))
		}
		if !q.Quadrant.Valid() {
			errs = append(errs, fmt.Sprintf("question %d: unknown quadrant %q", q.ID, q.Quadrant))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("question bank validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

// openingSize is the number of specificity-1 questions a survey opens with.
const openingSize = 8

// validateCoverage checks that a survey can run its full course: every
// specificity level has questions and the opening batch can be filled.
func validateCoverage(questions []Question) error {
	counts := make(map[int]int, MaxSpecificity)
	for _, q := range questions {
		counts[q.Specificity]++
	}

	var errs []string
	for s := MinSpecificity; s <= MaxSpecificity; s++ {
		if counts[s] == 0 {
			errs = append(errs, fmt.Sprintf("no questions at specificity %d", s))
		}
	}
	if n := counts[MinSpecificity]; n < openingSize {
		errs = append(errs, fmt.Sprintf("need at least %d specificity-%d questions, have %d", openingSize, MinSpecificity, n))
	}

	if len(errs) > 0 {
		return fmt.Errorf("question bank coverage:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

// Validate checks the embedded bank for structural problems and coverage.
func Validate() error {
	if err := validateQuestions(def.questions); err != nil {
		return err
	}
	if err := validateCoverage(def.questions); err != nil {
		return err
	}
	return validateVersion(def.version)
}
