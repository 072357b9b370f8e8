package quiz

import (
	"context"

	tea "charm.land/bubbletea/v2"

	qz "github.com/abhisek/compass/internal/quiz"
	"github.com/abhisek/compass/internal/store"
)

// record returns a command that runs write against the event log. A nil
// repo disables recording.
func (s *QuizScreen) record(event string, write func(ctx context.Context, repo store.EventRepo) error) tea.Cmd {
	if s.repo == nil {
		return nil
	}
	repo := s.repo
	return func() tea.Msg {
		return recordedMsg{Event: event, Err: write(context.Background(), repo)}
	}
}

func (s *QuizScreen) recordLifecycle(action, message string) tea.Cmd {
	data := store.QuizEventData{
		SessionID:     s.state.SessionID,
		Action:        action,
		BankVersion:   s.engine.Bank().Version(),
		QuestionCount: len(s.state.Questions),
		Message:       message,
	}
	return s.record("quiz_"+action, func(ctx context.Context, repo store.EventRepo) error {
		return repo.AppendQuizEvent(ctx, data)
	})
}

func (s *QuizScreen) recordAnswer(step qz.Step, position int) tea.Cmd {
	data := store.AnswerEventData{
		SessionID:   s.state.SessionID,
		QuestionID:  step.Question.ID,
		Axis:        string(step.Question.Axis),
		Specificity: step.Question.Specificity,
		Position:    position,
		Value:       step.Value,
	}
	return s.record("answer", func(ctx context.Context, repo store.EventRepo) error {
		return repo.AppendAnswer(ctx, data)
	})
}

func (s *QuizScreen) recordBatch(step qz.Step) tea.Cmd {
	if step.Batch == nil || step.Snapshot == nil {
		return nil
	}
	data := store.BatchEventData{
		SessionID:   s.state.SessionID,
		BatchNumber: s.state.BatchNumber,
		Specificity: step.Batch.Specificity,
		Quadrant:    string(step.Batch.Quadrant),
		Economic:    step.Snapshot.Economic,
		Social:      step.Snapshot.Social,
		QuestionIDs: step.Batch.IDs(),
		Exhausted:   step.Batch.Exhausted(s.engine.Config().BatchSize),
	}
	return s.record("batch", func(ctx context.Context, repo store.EventRepo) error {
		return repo.AppendBatch(ctx, data)
	})
}

func (s *QuizScreen) recordResult(res *qz.Result) tea.Cmd {
	history := make([]store.SnapshotPoint, len(res.History))
	for i, h := range res.History {
		history[i] = store.SnapshotPoint{Economic: h.Economic, Social: h.Social, QuestionNumber: h.QuestionNumber}
	}
	data := store.ResultEventData{
		SessionID:     s.state.SessionID,
		Economic:      res.Scores.Economic,
		Social:        res.Scores.Social,
		Quadrant:      string(res.Quadrant),
		Ideology:      res.Ideology.Name,
		QuestionCount: len(s.state.Questions),
		BankVersion:   s.engine.Bank().Version(),
		History:       history,
	}
	return s.record("result", func(ctx context.Context, repo store.EventRepo) error {
		return repo.AppendResult(ctx, data)
	})
}
