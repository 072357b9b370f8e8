// Package result shows the outcome of a finished survey run.
package result

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/compass/internal/quiz"
	"github.com/abhisek/compass/internal/screen"
	"github.com/abhisek/compass/internal/ui/components"
	"github.com/abhisek/compass/internal/ui/layout"
	"github.com/abhisek/compass/internal/ui/theme"
)

type keyMap struct {
	Retake key.Binding
	Home   key.Binding
}

var keys = keyMap{
	Retake: key.NewBinding(key.WithKeys("r", "R"), key.WithHelp("R", "Retake")),
	Home:   key.NewBinding(key.WithKeys("esc", "h", "enter"), key.WithHelp("Esc", "Home")),
}

// ResultScreen displays the resolved ideology, the final scores and the
// score trajectory on a compass chart.
type ResultScreen struct {
	result *quiz.Result
}

var _ screen.Screen = (*ResultScreen)(nil)
var _ screen.KeyHintProvider = (*ResultScreen)(nil)

// New creates a ResultScreen for res.
func New(res *quiz.Result) *ResultScreen {
	return &ResultScreen{result: res}
}

func (s *ResultScreen) Init() tea.Cmd {
	return nil
}

func (s *ResultScreen) Title() string {
	return "Your Results"
}

func (s *ResultScreen) KeyHints() []layout.KeyHint {
	out := make([]layout.KeyHint, 0, 2)
	for _, b := range []key.Binding{keys.Retake, keys.Home} {
		h := b.Help()
		out = append(out, layout.KeyHint{Key: h.Key, Description: h.Desc})
	}
	return out
}

func (s *ResultScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}
	switch {
	case key.Matches(kmsg, keys.Retake):
		return s, screen.StartQuiz
	case key.Matches(kmsg, keys.Home):
		return s, screen.Home("")
	}
	return s, nil
}

// Chart builds the compass chart for the run: every batch boundary snapshot
// as a numbered trail point and the final position as the marker.
func Chart(res *quiz.Result, width, height int) components.Compass {
	c := components.NewCompass(width, height)
	if n := len(res.History); n > 0 {
		for _, h := range res.History[:n-1] {
			c.Trail = append(c.Trail, components.ChartPoint{Economic: h.Economic, Social: h.Social})
		}
	}
	c.Final = &components.ChartPoint{Economic: res.Scores.Economic, Social: res.Scores.Social}
	return c
}

func (s *ResultScreen) View(width, height int) string {
	res := s.result
	if res == nil {
		return ""
	}

	textWidth := min(max(30, width/2-4), 60)
	if layout.IsCompactWidth(width) {
		textWidth = min(max(30, width-8), 72)
	}
	text := lipgloss.NewStyle().Width(textWidth)

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.QuadrantColor(res.Quadrant)).
		Bold(true).
		Render(res.Ideology.Name))
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render(res.Quadrant.DisplayName()))
	b.WriteString("\n\n")
	b.WriteString(text.Foreground(theme.Text).Render(res.Ideology.Description))
	b.WriteString("\n\n")
	b.WriteString(theme.Label.Render("Economic ") + theme.Body.Render(fmt.Sprintf("%.2f", res.Scores.Economic)) +
		"   " + theme.Label.Render("Social ") + theme.Body.Render(fmt.Sprintf("%.2f", res.Scores.Social)))
	b.WriteString("\n\n")

	country := res.Ideology.Country
	b.WriteString(theme.Label.Render(fmt.Sprintf("Country spotlight: %s %s", country.Flag, country.Name)))
	b.WriteString("\n")
	b.WriteString(text.Foreground(theme.TextDim).Render(country.Reasoning))
	b.WriteString("\n\n")

	party := res.Ideology.USParty
	b.WriteString(theme.Label.Render("Closest US party: " + string(party.Party)))
	b.WriteString("\n")
	b.WriteString(text.Foreground(theme.TextDim).Render(party.Reasoning))
	b.WriteString("\n")
	b.WriteString(text.Foreground(theme.TextDim).Italic(true).Render("Where you may differ: " + party.Disagreements))

	info := b.String()

	if layout.IsCompactWidth(width) {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, "\n"+info)
	}

	chartHeight := min(max(7, height-6), 21)
	chart := Chart(res, chartHeight*2+1, chartHeight).View()
	body := lipgloss.JoinHorizontal(lipgloss.Top, theme.Card.Render(chart), "  ", info)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}
