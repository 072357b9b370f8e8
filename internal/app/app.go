// Package app wires the screens into the root Bubble Tea model.
package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/compass/internal/quiz"
	"github.com/abhisek/compass/internal/router"
	"github.com/abhisek/compass/internal/screen"
	"github.com/abhisek/compass/internal/screens/home"
	quizscreen "github.com/abhisek/compass/internal/screens/quiz"
	"github.com/abhisek/compass/internal/screens/welcome"
	"github.com/abhisek/compass/internal/store"
	"github.com/abhisek/compass/internal/ui/layout"
)

// Options holds the dependencies of the TUI.
type Options struct {
	Engine *quiz.Engine
	Repo   store.EventRepo // optional; nil disables the event log
	Log    *zap.Logger     // optional
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	opts   Options
	router *router.Router
	width  int
	height int
}

// newAppModel creates a new AppModel starting on the welcome screen.
func newAppModel(opts Options) AppModel {
	if opts.Engine == nil {
		opts.Engine = quiz.NewDefaultEngine()
	}
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	m := AppModel{opts: opts}
	m.router = router.New(welcome.New(func() screen.Screen { return m.home("") }))
	return m
}

func (m AppModel) home(errMsg string) screen.Screen {
	return home.New(m.opts.Repo, m.opts.Engine.Bank().Version(), errMsg)
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case screen.HomeMsg:
		return m, m.router.Reset(m.home(msg.Err))

	case screen.StartQuizMsg:
		// Home stays underneath so the stack is never empty.
		resetCmd := m.router.Reset(m.home(""))
		quizCmd := m.router.Push(quizscreen.New(m.opts.Engine, m.opts.Repo, m.opts.Log))
		return m, tea.Batch(resetCmd, quizCmd)
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.render())
	return v
}

// render draws the full frame for the current terminal size.
func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	var title, status string
	if active != nil {
		title = active.Title()
		if sp, ok := active.(screen.StatusProvider); ok {
			status = sp.Status()
		}
	}

	header := layout.RenderHeader(title, status, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	contentHeight := max(0, m.height-lipgloss.Height(header)-lipgloss.Height(footer))
	content := m.router.View(m.width, contentHeight)

	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if kp, ok := active.(screen.KeyHintProvider); ok {
		return append(kp.KeyHints(), layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "any key", Description: "Continue"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
