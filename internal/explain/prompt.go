package explain

import (
	"fmt"
	"strings"

	"github.com/abhisek/compass/internal/bank"
)

const systemPrompt = `You write short help text for a political compass survey. Respondents rate each statement from "Disagree" to "Agree" and may ask why a statement is included.

Rules:
- Write one sentence that says what the statement probes.
- Stay neutral. Never suggest which answer is better and never name parties or politicians.
- Address the respondent as "you".`

func userMessage(q bank.Question, examples []bank.Question) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Statement: %q\n", q.Text)
	fmt.Fprintf(&b, "Axis: %s\n", q.Axis)
	if q.Tagged() {
		fmt.Fprintf(&b, "Leaning: %s\n", q.Quadrant.DisplayName())
	}

	if len(examples) > 0 {
		b.WriteString("\nMatch the tone of these existing explanations:\n")
		for _, ex := range examples {
			fmt.Fprintf(&b, "- %q → %s\n", ex.Text, ex.Explanation)
		}
	}
	return b.String()
}

// styleExamples picks up to n explained questions on the same axis as q,
// in catalog order.
func styleExamples(b *bank.Bank, q bank.Question, n int) []bank.Question {
	var out []bank.Question
	for _, c := range b.All() {
		if len(out) == n {
			break
		}
		if c.ID != q.ID && c.Axis == q.Axis && c.Explanation != "" {
			out = append(out, c)
		}
	}
	return out
}
