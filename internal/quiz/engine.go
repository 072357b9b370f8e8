// Package quiz drives a survey run: it serves the opening batch, records
// answers, adapts each following batch to the respondent's position and
// resolves the final ideology.
package quiz

import (
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/abhisek/compass/internal/bank"
	"github.com/abhisek/compass/internal/ideology"
	"github.com/abhisek/compass/internal/scoring"
	"github.com/abhisek/compass/internal/selector"
)

// FinalizeMessage is shown to the respondent when results cannot be computed.
const FinalizeMessage = "An error occurred while calculating your results. Please try again."

var (
	// ErrNoOpeningQuestions is returned by Start when the bank has no
	// specificity-1 questions.
	ErrNoOpeningQuestions = errors.New("question bank has no opening questions")

	// ErrNotAnswering is returned when an answer arrives outside the
	// answering phase.
	ErrNotAnswering = errors.New("survey is not accepting answers")
)

// FinalizeError wraps a failure while computing the final result. It is
// recoverable: the caller discards the run and returns to the start screen.
type FinalizeError struct {
	Err error
}

func (e *FinalizeError) Error() string {
	return fmt.Sprintf("finalize: %v", e.Err)
}

func (e *FinalizeError) Unwrap() error { return e.Err }

// UserMessage returns the text shown to the respondent.
func (e *FinalizeError) UserMessage() string { return FinalizeMessage }

// StepKind describes what an answer caused.
type StepKind int

const (
	StepNext     StepKind = iota // Moved to the next question in the current batch
	StepBatch                    // Crossed a batch boundary and appended a new batch
	StepFinished                 // Run finished, Result is set
)

// Step reports the effect of a single answer.
type Step struct {
	Kind     StepKind
	Question bank.Question // the question that was answered
	Value    int

	// Snapshot is set when a batch boundary was crossed.
	Snapshot *Snapshot

	// Batch is the selection made at the boundary. It may be empty when
	// the run finished early.
	Batch *selector.Batch

	// Result is set when Kind is StepFinished.
	Result *Result
}

// Engine runs surveys over a read-only bank and ideology catalog. An Engine
// holds no per-run state and may be shared.
type Engine struct {
	bank     *bank.Bank
	selector *selector.Selector
	catalog  *ideology.Catalog
	cfg      Config
}

// NewEngine creates an Engine.
func NewEngine(b *bank.Bank, catalog *ideology.Catalog, cfg Config) (*Engine, error) {
	if b == nil {
		return nil, errors.New("quiz: nil question bank")
	}
	if catalog == nil {
		return nil, errors.New("quiz: nil ideology catalog")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("quiz: %w", err)
	}
	return &Engine{
		bank:     b,
		selector: selector.New(b),
		catalog:  catalog,
		cfg:      cfg,
	}, nil
}

// NewDefaultEngine returns an Engine over the embedded bank and catalog.
func NewDefaultEngine() *Engine {
	e, err := NewEngine(bank.Default(), ideology.Standard(), DefaultConfig())
	if err != nil {
		panic(err)
	}
	return e
}

// Config returns the engine configuration.
func (e *Engine) Config() Config { return e.cfg }

// Bank returns the engine's question bank.
func (e *Engine) Bank() *bank.Bank { return e.bank }

// Start begins a new run with the opening batch. Retaking the survey is
// simply calling Start again and discarding the previous state.
func (e *Engine) Start() (*State, error) {
	state := newState(uuid.New().String())

	opening := e.selector.Initial(min(e.cfg.BatchSize, e.cfg.TotalQuestions))
	if len(opening) == 0 {
		return nil, ErrNoOpeningQuestions
	}
	state.appendQuestions(opening)
	state.Exhausted = len(opening) < e.cfg.BatchSize
	state.Phase = PhaseAnswering
	return state, nil
}

// Answer records value for the current question and advances the run.
//
// At a batch boundary below the total the current scores are snapshotted
// and the next batch is selected. A selection shorter than the batch size
// is served and then the run ends; an empty selection ends the run at once.
// Reaching the configured total also ends the run.
func (e *Engine) Answer(state *State, value int) (Step, error) {
	if state == nil || state.Phase != PhaseAnswering {
		return Step{}, ErrNotAnswering
	}
	if err := bank.ValidateValue(value); err != nil {
		return Step{}, err
	}

	q := state.Questions[state.Position]
	state.upsert(bank.Answer{QuestionID: q.ID, Value: value})
	step := Step{Kind: StepNext, Question: q, Value: value}

	answered := state.Position + 1
	switch {
	case answered >= e.cfg.TotalQuestions:
		return e.finish(state, step)
	case answered < len(state.Questions):
		state.Position++
		return step, nil
	case state.Exhausted:
		return e.finish(state, step)
	}

	// Batch boundary.
	snap := snapshotOf(scoring.Compute(state.Answers, state.Questions[:answered]), answered)
	state.History = append(state.History, snap)
	step.Snapshot = &snap

	state.BatchNumber++
	batch := e.selector.NextBatch(state.BatchNumber, state.Answers, state.Asked, e.cfg.BatchSize)
	if remaining := e.cfg.TotalQuestions - answered; len(batch.Questions) > remaining {
		batch.Questions = batch.Questions[:remaining]
	}
	state.LastBatch = &batch
	step.Batch = &batch

	if len(batch.Questions) == 0 {
		return e.finish(state, step)
	}

	state.appendQuestions(batch.Questions)
	state.Exhausted = batch.Exhausted(e.cfg.BatchSize)
	state.Position++
	step.Kind = StepBatch
	return step, nil
}

func (e *Engine) finish(state *State, step Step) (Step, error) {
	res, err := e.Finalize(state)
	if err != nil {
		return step, err
	}
	step.Kind = StepFinished
	step.Result = res
	return step, nil
}

// Finalize computes the final scores over the asked questions, appends the
// final snapshot and resolves the ideology. On failure the state is left
// unfinished and a *FinalizeError is returned.
func (e *Engine) Finalize(state *State) (*Result, error) {
	if state == nil {
		return nil, &FinalizeError{Err: errors.New("no survey state")}
	}
	if err := scoring.Check(state.Answers, state.Questions); err != nil {
		return nil, &FinalizeError{Err: err}
	}

	scores := scoring.Compute(state.Answers, state.Questions)
	history := append(slices.Clone(state.History), snapshotOf(scores, len(state.Questions)))

	res := &Result{
		Scores:   scores,
		Quadrant: scoring.Classify(scores),
		Ideology: e.catalog.Resolve(scores.Economic, scores.Social),
		History:  history,
	}
	state.History = history
	state.Result = res
	state.Phase = PhaseFinished
	return res, nil
}

// Current returns the question being shown.
func (e *Engine) Current(state *State) (bank.Question, bool) {
	if state == nil || state.Phase != PhaseAnswering || state.Position >= len(state.Questions) {
		return bank.Question{}, false
	}
	return state.Questions[state.Position], true
}

// QuestionNumber returns the 1-based number of the question being shown.
func (e *Engine) QuestionNumber(state *State) int {
	if state == nil {
		return 0
	}
	if state.Phase == PhaseFinished {
		return len(state.Questions)
	}
	return state.Position + 1
}

// Progress returns how far through the configured total the run is, in [0, 1].
func (e *Engine) Progress(state *State) float64 {
	if state == nil {
		return 0
	}
	if state.Phase == PhaseFinished {
		return 1
	}
	return min(1, float64(e.QuestionNumber(state))/float64(e.cfg.TotalQuestions))
}
