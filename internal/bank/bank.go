package bank

import (
	"fmt"
	"slices"
)

// Bank is an immutable, indexed question catalog. Catalog order is the
// declaration order of the source data and is preserved by every accessor.
type Bank struct {
	version       string
	questions     []Question
	byID          map[int]int // id → index into questions
	bySpecificity map[int][]Question
}

// New validates questions and builds an indexed Bank.
func New(version string, questions []Question) (*Bank, error) {
	if err := validateQuestions(questions); err != nil {
		return nil, err
	}
	if err := validateVersion(version); err != nil {
		return nil, err
	}
	return build(version, questions), nil
}

// build constructs the indices. Callers must validate first.
func build(version string, questions []Question) *Bank {
	b := &Bank{
		version:       version,
		questions:     slices.Clone(questions),
		byID:          make(map[int]int, len(questions)),
		bySpecificity: make(map[int][]Question),
	}
	for i, q := range b.questions {
		b.byID[q.ID] = i
		b.bySpecificity[q.Specificity] = append(b.bySpecificity[q.Specificity], q)
	}
	return b
}

// Version returns the semver version of the bank data.
func (b *Bank) Version() string {
	return b.version
}

// Len returns the number of questions in the bank.
func (b *Bank) Len() int {
	return len(b.questions)
}

// All returns every question in catalog order.
func (b *Bank) All() []Question {
	return slices.Clone(b.questions)
}

// Get returns the question with the given ID.
func (b *Bank) Get(id int) (Question, error) {
	i, ok := b.byID[id]
	if !ok {
		return Question{}, fmt.Errorf("question not found: %d", id)
	}
	return b.questions[i], nil
}

// Has reports whether the bank contains a question with the given ID.
func (b *Bank) Has(id int) bool {
	_, ok := b.byID[id]
	return ok
}

// BySpecificity returns questions at the given specificity in catalog order.
func (b *Bank) BySpecificity(n int) []Question {
	return slices.Clone(b.bySpecificity[n])
}

// Scope returns the questions whose IDs are in ids, in catalog order.
func (b *Bank) Scope(ids map[int]bool) []Question {
	out := make([]Question, 0, len(ids))
	for _, q := range b.questions {
		if ids[q.ID] {
			out = append(out, q)
		}
	}
	return out
}

// Filter returns questions matching pred in catalog order.
func (b *Bank) Filter(pred func(Question) bool) []Question {
	var out []Question
	for _, q := range b.questions {
		if pred(q) {
			out = append(out, q)
		}
	}
	return out
}
