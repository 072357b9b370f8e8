// Package home is the start screen: it offers a new survey run, the
// result history and quitting, and shows the most recent result.
package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/compass/internal/bank"
	"github.com/abhisek/compass/internal/router"
	"github.com/abhisek/compass/internal/screen"
	"github.com/abhisek/compass/internal/screens/history"
	"github.com/abhisek/compass/internal/screens/welcome"
	"github.com/abhisek/compass/internal/store"
	"github.com/abhisek/compass/internal/ui/components"
	"github.com/abhisek/compass/internal/ui/layout"
	"github.com/abhisek/compass/internal/ui/theme"
)

type lastResultMsg struct {
	Record *store.ResultRecord
}

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	repo   store.EventRepo
	menu   components.Menu
	errMsg string
	last   *store.ResultRecord
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a HomeScreen. History compares results against bankVersion.
// errMsg, when set, is shown above the menu; it carries failures from a
// previous run back to the respondent.
func New(repo store.EventRepo, bankVersion, errMsg string) *HomeScreen {
	items := []components.MenuItem{
		{Label: "Start survey", Description: "40 statements, about 5 minutes", Action: func() tea.Cmd {
			return screen.StartQuiz
		}},
		{Label: "History", Disabled: repo == nil, Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: history.New(repo, bankVersion)}
			}
		}},
		{Label: "Quit", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		repo:   repo,
		menu:   components.NewMenu(items),
		errMsg: errMsg,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	if h.repo == nil {
		return nil
	}
	repo := h.repo
	return func() tea.Msg {
		records, err := repo.QueryResults(context.Background(), store.QueryOpts{Limit: 1})
		if err != nil || len(records) == 0 {
			return lastResultMsg{}
		}
		return lastResultMsg{Record: &records[0]}
	}
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(lastResultMsg); ok {
		h.last = msg.Record
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	sections := []string{welcome.RenderBanner(width), ""}

	if h.errMsg != "" {
		sections = append(sections, theme.ErrorText.Render(h.errMsg), "")
	}
	if h.last != nil {
		sections = append(sections, renderLast(h.last), "")
	}
	sections = append(sections, theme.Card.Render(strings.TrimRight(h.menu.View(), "\n")))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, sections...))
}

func renderLast(r *store.ResultRecord) string {
	q := bank.Quadrant(r.Quadrant)
	name := lipgloss.NewStyle().Foreground(theme.QuadrantColor(q)).Bold(true).Render(r.Ideology)
	return theme.Hint.Render("Last result: ") + name +
		theme.Hint.Render(fmt.Sprintf("  (%+.2f, %+.2f) %s", r.Economic, r.Social, r.Timestamp.Format("Jan 02")))
}
