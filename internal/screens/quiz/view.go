package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/compass/internal/ui/components"
	"github.com/abhisek/compass/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	if s.errMsg != "" && s.state == nil {
		return renderCentered(width, height, theme.ErrorText.Render("Could not start the survey: "+s.errMsg)+
			"\n\n"+theme.Hint.Render("press Esc to return home"))
	}
	if s.state == nil {
		return renderCentered(width, height, theme.Hint.Render("Preparing questions..."))
	}
	if s.confirmQuit {
		return renderCentered(width, height, theme.Card.Render(
			theme.Label.Render("End this survey?")+"\n\n"+
				theme.Body.Render(fmt.Sprintf("You have answered %d questions. Progress will be lost.", s.state.Answered()))))
	}
	return s.renderQuestion(width, height)
}

func (s *QuizScreen) renderQuestion(width, height int) string {
	q, ok := s.current()
	if !ok {
		return renderCentered(width, height, theme.Hint.Render("Calculating your results..."))
	}

	textWidth := min(max(20, width-8), 72)
	var b strings.Builder

	bar := components.NewProgressBar(
		fmt.Sprintf("Question %d of %d", s.engine.QuestionNumber(s.state), s.engine.Config().TotalQuestions),
		s.engine.Progress(s.state), true, textWidth)
	b.WriteString(bar.View())
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(textWidth).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render(q.Text))
	b.WriteString("\n\n")

	switch {
	case s.showExplain:
		b.WriteString(lipgloss.NewStyle().
			Width(textWidth).
			Align(lipgloss.Center).
			Foreground(theme.Secondary).
			Render(q.Explanation))
		b.WriteString("\n\n")
	case q.Explanation != "":
		b.WriteString(theme.Hint.Render("press ? to see why this is asked"))
		b.WriteString("\n\n")
	}

	b.WriteString(s.likert.View())

	if s.steering != "" {
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render(s.steering))
	}
	if s.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(theme.ErrorText.Render(s.errMsg))
	}

	return renderCentered(width, height, b.String())
}

func renderCentered(width, height int, content string) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
