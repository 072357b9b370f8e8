// Package selector picks the next batch of survey questions, steering later
// batches toward the quadrant the respondent's answers currently point at.
package selector

import (
	"github.com/abhisek/compass/internal/bank"
	"github.com/abhisek/compass/internal/scoring"
)

// Batch is the result of a selection round.
type Batch struct {
	Questions   []bank.Question
	Quadrant    bank.Quadrant  // classified position the batch steers toward
	Specificity int            // target specificity of the round
	Scores      scoring.Scores // scores the classification was based on
}

// Exhausted reports whether the bank could not fill the batch.
func (b Batch) Exhausted(batchSize int) bool {
	return len(b.Questions) < batchSize
}

// IDs returns the selected question IDs in batch order.
func (b Batch) IDs() []int {
	ids := make([]int, len(b.Questions))
	for i, q := range b.Questions {
		ids[i] = q.ID
	}
	return ids
}

// Selector draws batches from a question bank. It holds no state beyond the
// read-only bank: the same inputs always yield the same batch.
type Selector struct {
	bank *bank.Bank
}

// New creates a Selector over the given bank.
func New(b *bank.Bank) *Selector {
	return &Selector{bank: b}
}

// Initial returns the opening batch: the first batchSize specificity-1
// questions in catalog order. No adaptation happens before any answers exist.
func (s *Selector) Initial(batchSize int) []bank.Question {
	qs := s.bank.BySpecificity(bank.MinSpecificity)
	if len(qs) > batchSize {
		qs = qs[:batchSize]
	}
	return qs
}

// NextBatch selects up to batchSize unasked questions at specificity
// batchNumber+1. Candidates matching the respondent's current quadrant come
// first, then untagged questions, then any remaining question at the target
// specificity. Scores are computed over the asked questions only. A result
// shorter than batchSize means the bank is exhausted at that specificity.
func (s *Selector) NextBatch(batchNumber int, answers []bank.Answer, asked map[int]bool, batchSize int) Batch {
	scores := scoring.Compute(answers, s.bank.Scope(asked))
	quadrant := scoring.Classify(scores)
	target := batchNumber + 1

	candidates := s.bank.Filter(func(q bank.Question) bool {
		return !asked[q.ID] && q.Specificity == target
	})

	// Relaxation tiers; tiers overlap and are deduplicated below.
	tiers := []func(bank.Question) bool{
		func(q bank.Question) bool { return q.Quadrant == quadrant },
		func(q bank.Question) bool { return !q.Tagged() },
		func(bank.Question) bool { return true },
	}

	var picked []bank.Question
	for _, match := range tiers {
		if len(picked) >= batchSize {
			break
		}
		for _, q := range candidates {
			if match(q) {
				picked = append(picked, q)
			}
		}
	}

	return Batch{
		Questions:   truncate(dedupe(picked), batchSize),
		Quadrant:    quadrant,
		Specificity: target,
		Scores:      scores,
	}
}

// dedupe removes repeated IDs, keeping the first occurrence.
func dedupe(qs []bank.Question) []bank.Question {
	seen := make(map[int]bool, len(qs))
	out := make([]bank.Question, 0, len(qs))
	for _, q := range qs {
		if seen[q.ID] {
			continue
		}
		seen[q.ID] = true
		out = append(out, q)
	}
	return out
}

func truncate(qs []bank.Question, n int) []bank.Question {
	if n < 0 {
		n = 0
	}
	if len(qs) > n {
		return qs[:n]
	}
	return qs
}
