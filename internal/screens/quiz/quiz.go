// Package quiz is the survey screen: it serves questions from a quiz.Engine,
// collects Likert answers and records the run in the event log.
package quiz

import (
	"errors"
	"fmt"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/compass/internal/bank"
	qz "github.com/abhisek/compass/internal/quiz"
	"github.com/abhisek/compass/internal/router"
	"github.com/abhisek/compass/internal/screen"
	"github.com/abhisek/compass/internal/screens/result"
	"github.com/abhisek/compass/internal/store"
	"github.com/abhisek/compass/internal/ui/components"
	"github.com/abhisek/compass/internal/ui/layout"
)

type keyMap struct {
	Explain key.Binding
	Quit    key.Binding
	Confirm key.Binding
	Cancel  key.Binding
}

var keys = keyMap{
	Explain: key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "Why?")),
	Quit:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("Esc", "Quit")),
	Confirm: key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("Y", "End survey")),
	Cancel:  key.NewBinding(key.WithKeys("n", "N", "esc"), key.WithHelp("N", "Keep going")),
}

// QuizScreen implements screen.Screen for an active survey run.
type QuizScreen struct {
	engine *qz.Engine
	repo   store.EventRepo
	log    *zap.Logger

	state       *qz.State
	likert      components.Likert
	showExplain bool
	confirmQuit bool
	steering    string // note about the latest adaptive batch
	errMsg      string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.StatusProvider = (*QuizScreen)(nil)

// New creates a QuizScreen. repo and log may be nil.
func New(engine *qz.Engine, repo store.EventRepo, log *zap.Logger) *QuizScreen {
	if log == nil {
		log = zap.NewNop()
	}
	return &QuizScreen{
		engine: engine,
		repo:   repo,
		log:    log,
		likert: components.NewLikert(),
	}
}

func (s *QuizScreen) Init() tea.Cmd {
	engine := s.engine
	return func() tea.Msg {
		state, err := engine.Start()
		return startedMsg{State: state, Err: err}
	}
}

func (s *QuizScreen) Title() string {
	return "Survey"
}

// Status shows how far into the run the respondent is.
func (s *QuizScreen) Status() string {
	if s.state == nil {
		return ""
	}
	return fmt.Sprintf("Question %d of %d  ", s.engine.QuestionNumber(s.state), s.engine.Config().TotalQuestions)
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	if s.confirmQuit {
		return hints(keys.Confirm, keys.Cancel)
	}
	out := []layout.KeyHint{
		{Key: "1-5", Description: "Answer"},
		{Key: "←→", Description: "Choose"},
		{Key: "Enter", Description: "Submit"},
	}
	if q, ok := s.current(); ok && q.Explanation != "" {
		out = append(out, hints(keys.Explain)...)
	}
	return append(out, hints(keys.Quit)...)
}

func hints(bindings ...key.Binding) []layout.KeyHint {
	out := make([]layout.KeyHint, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		out = append(out, layout.KeyHint{Key: h.Key, Description: h.Desc})
	}
	return out
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case startedMsg:
		return s.handleStarted(msg)

	case recordedMsg:
		if msg.Err != nil {
			s.log.Warn("failed to record quiz event", zap.String("event", msg.Event), zap.Error(msg.Err))
		}
		return s, nil

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *QuizScreen) handleStarted(msg startedMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.log.Error("failed to start survey", zap.Error(msg.Err))
		s.errMsg = msg.Err.Error()
		return s, nil
	}
	s.state = msg.State
	s.log.Info("survey started",
		zap.String("session_id", s.state.SessionID),
		zap.String("bank_version", s.engine.Bank().Version()))
	return s, s.recordLifecycle(store.ActionStart, "")
}

func (s *QuizScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	if s.state == nil {
		if s.errMsg != "" && key.Matches(msg, keys.Quit) {
			return s, screen.Home(s.errMsg)
		}
		return s, nil
	}

	if s.confirmQuit {
		switch {
		case key.Matches(msg, keys.Confirm):
			s.log.Info("survey abandoned",
				zap.String("session_id", s.state.SessionID),
				zap.Int("answered", s.state.Answered()))
			return s, tea.Sequence(s.recordLifecycle(store.ActionAbort, ""), screen.Home(""))
		case key.Matches(msg, keys.Cancel):
			s.confirmQuit = false
		}
		return s, nil
	}

	switch {
	case key.Matches(msg, keys.Quit):
		s.confirmQuit = true
		return s, nil
	case key.Matches(msg, keys.Explain):
		if q, ok := s.current(); ok && q.Explanation != "" {
			s.showExplain = !s.showExplain
		}
		return s, nil
	}

	s.likert, _ = s.likert.Update(msg)
	if !s.likert.Submitted {
		return s, nil
	}
	return s.submit(s.likert.Value())
}

// submit feeds an answer to the engine and records what it caused.
func (s *QuizScreen) submit(value int) (screen.Screen, tea.Cmd) {
	position := s.state.Position
	step, err := s.engine.Answer(s.state, value)
	if err != nil {
		var ferr *qz.FinalizeError
		if errors.As(err, &ferr) {
			s.log.Error("failed to finalize survey",
				zap.String("session_id", s.state.SessionID),
				zap.Error(err))
			return s, tea.Sequence(
				s.recordAnswer(step, position),
				s.recordLifecycle(store.ActionError, err.Error()),
				screen.Home(ferr.UserMessage()),
			)
		}
		s.errMsg = err.Error()
		s.likert = components.NewLikert()
		return s, nil
	}

	cmds := []tea.Cmd{s.recordAnswer(step, position), s.recordBatch(step)}
	s.likert = components.NewLikert()
	s.showExplain = false

	switch step.Kind {
	case qz.StepBatch:
		s.steering = fmt.Sprintf("Now asking more specific questions for the %s quadrant",
			step.Batch.Quadrant.DisplayName())
		s.log.Debug("adaptive batch selected",
			zap.String("session_id", s.state.SessionID),
			zap.Int("batch", s.state.BatchNumber),
			zap.String("quadrant", string(step.Batch.Quadrant)),
			zap.Ints("question_ids", step.Batch.IDs()))
	case qz.StepFinished:
		s.log.Info("survey finished",
			zap.String("session_id", s.state.SessionID),
			zap.Int("questions", len(s.state.Questions)),
			zap.String("ideology", step.Result.Ideology.Name))
		next := result.New(step.Result)
		cmds = append(cmds,
			s.recordResult(step.Result),
			s.recordLifecycle(store.ActionFinish, ""),
			func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} },
		)
	}
	return s, tea.Sequence(cmds...)
}

func (s *QuizScreen) current() (bank.Question, bool) {
	return s.engine.Current(s.state)
}
