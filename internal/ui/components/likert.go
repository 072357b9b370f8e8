package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/compass/internal/bank"
	"github.com/abhisek/compass/internal/ui/theme"
)

// Likert is a five-point agreement selector over bank.Scale. Choices are
// picked with the arrow keys and enter, or directly with 1-5.
type Likert struct {
	Choices   []bank.Choice
	Selected  int
	Submitted bool
}

// NewLikert creates a Likert selector with the neutral choice highlighted.
func NewLikert() Likert {
	choices := bank.Scale()
	l := Likert{Choices: choices}
	for i, c := range choices {
		if c.Value == 0 {
			l.Selected = i
		}
	}
	return l
}

// NewLikertAt creates a Likert selector with value highlighted, used when
// a question is shown again with a recorded answer.
func NewLikertAt(value int) Likert {
	l := NewLikert()
	for i, c := range l.Choices {
		if c.Value == value {
			l.Selected = i
		}
	}
	return l
}

// Init returns nil.
func (l Likert) Init() tea.Cmd {
	return nil
}

// Update handles keyboard navigation and selection.
func (l Likert) Update(msg tea.Msg) (Likert, tea.Cmd) {
	if l.Submitted {
		return l, nil
	}

	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return l, nil
	}

	switch key := kmsg.String(); key {
	case "left", "h", "up", "k":
		if l.Selected > 0 {
			l.Selected--
		}
	case "right", "l", "down", "j":
		if l.Selected < len(l.Choices)-1 {
			l.Selected++
		}
	case "1", "2", "3", "4", "5":
		idx := int(key[0] - '1')
		if idx < len(l.Choices) {
			l.Selected = idx
			l.Submitted = true
		}
	case "enter", "space":
		l.Submitted = true
	}

	return l, nil
}

// Value returns the answer value of the highlighted choice.
func (l Likert) Value() int {
	return l.Choices[l.Selected].Value
}

// View renders the choices one per line.
func (l Likert) View() string {
	var b strings.Builder
	for i, c := range l.Choices {
		prefix := "  "
		if i == l.Selected {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%d  %s", prefix, i+1, c.Label)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		switch {
		case i == l.Selected && l.Submitted:
			style = lipgloss.NewStyle().Foreground(theme.Success).Bold(true)
		case i == l.Selected:
			style = theme.Selected
		case l.Submitted:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
