package quiz

import (
	"slices"
	"time"

	"github.com/abhisek/compass/internal/bank"
	"github.com/abhisek/compass/internal/ideology"
	"github.com/abhisek/compass/internal/scoring"
	"github.com/abhisek/compass/internal/selector"
)

// Phase represents the current phase of a survey run.
type Phase int

const (
	PhaseAwaitingFirstBatch Phase = iota // Created, opening batch not yet drawn
	PhaseAnswering                       // Serving questions
	PhaseFinished                        // Result available
)

// String returns a lowercase label for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseAwaitingFirstBatch:
		return "awaiting"
	case PhaseAnswering:
		return "answering"
	case PhaseFinished:
		return "finished"
	}
	return "unknown"
}

// Snapshot is the respondent's position after a given number of questions.
type Snapshot struct {
	Economic       float64 `json:"economic"`
	Social         float64 `json:"social"`
	QuestionNumber int     `json:"question_number"`
}

func snapshotOf(s scoring.Scores, questionNumber int) Snapshot {
	return Snapshot{Economic: s.Economic, Social: s.Social, QuestionNumber: questionNumber}
}

// Result is the outcome of a finished run.
type Result struct {
	Scores   scoring.Scores
	Quadrant bank.Quadrant
	Ideology ideology.Ideology
	History  []Snapshot
}

// State is the runtime state of a single survey run. It is owned by one
// respondent and mutated only through Engine.
type State struct {
	// SessionID is the UUID for this run.
	SessionID string

	// Phase is the current phase.
	Phase Phase

	// Questions is the asked sequence, in the order questions were served.
	Questions []bank.Question

	// Asked holds the IDs in Questions.
	Asked map[int]bool

	// Answers holds at most one answer per question, last write wins.
	Answers []bank.Answer

	// Position is the index into Questions of the question being shown.
	Position int

	// BatchNumber is the number of adaptive selections made so far.
	BatchNumber int

	// LastBatch is the most recent adaptive selection, nil before the first.
	LastBatch *selector.Batch

	// Exhausted is set once a selection came back short. No further
	// selections are made after that.
	Exhausted bool

	// History is the score trajectory: one snapshot per batch boundary plus
	// the final one.
	History []Snapshot

	// Result is set when the run finishes.
	Result *Result

	// StartedAt is when the run began.
	StartedAt time.Time
}

func newState(sessionID string) *State {
	return &State{
		SessionID: sessionID,
		Phase:     PhaseAwaitingFirstBatch,
		Asked:     make(map[int]bool),
		StartedAt: time.Now(),
	}
}

func (s *State) appendQuestions(qs []bank.Question) {
	for _, q := range qs {
		s.Questions = append(s.Questions, q)
		s.Asked[q.ID] = true
	}
}

// upsert records an answer, replacing any earlier answer to the same question.
func (s *State) upsert(a bank.Answer) {
	s.Answers = slices.DeleteFunc(s.Answers, func(x bank.Answer) bool {
		return x.QuestionID == a.QuestionID
	})
	s.Answers = append(s.Answers, a)
}

// AnswerFor returns the recorded answer value for a question.
func (s *State) AnswerFor(questionID int) (int, bool) {
	for _, a := range s.Answers {
		if a.QuestionID == questionID {
			return a.Value, true
		}
	}
	return 0, false
}

// Answered returns the number of distinct questions answered.
func (s *State) Answered() int {
	return len(s.Answers)
}

// AskedIDs returns the asked question IDs in serving order.
func (s *State) AskedIDs() []int {
	ids := make([]int, len(s.Questions))
	for i, q := range s.Questions {
		ids[i] = q.ID
	}
	return ids
}
