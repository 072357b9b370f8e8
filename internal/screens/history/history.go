// Package history lists finished survey results from the event log.
package history

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/compass/internal/bank"
	"github.com/abhisek/compass/internal/router"
	"github.com/abhisek/compass/internal/screen"
	"github.com/abhisek/compass/internal/store"
	"github.com/abhisek/compass/internal/ui/layout"
	"github.com/abhisek/compass/internal/ui/theme"
)

// PageSize is the number of results loaded.
const PageSize = 50

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Back   key.Binding
}

var keys = keyMap{
	Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑↓", "Navigate")),
	Down:   key.NewBinding(key.WithKeys("down", "j")),
	Toggle: key.NewBinding(key.WithKeys("enter"), key.WithHelp("Enter", "Batches")),
	Back:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("Esc", "Back")),
}

type resultsLoadedMsg struct {
	Results []store.ResultRecord
	Err     error
}

type batchesLoadedMsg struct {
	SessionID string
	Batches   []store.BatchRecord
	Err       error
}

// HistoryScreen displays past results. Results recorded against a bank
// whose major version differs from the current one are flagged, since
// their scores are not comparable.
type HistoryScreen struct {
	repo        store.EventRepo
	bankVersion string
	results     []store.ResultRecord
	batches     map[string][]store.BatchRecord
	selected    int
	expanded    map[int]bool
	loaded      bool
	errMsg      string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a HistoryScreen comparing results against bankVersion.
func New(repo store.EventRepo, bankVersion string) *HistoryScreen {
	return &HistoryScreen{
		repo:        repo,
		bankVersion: bankVersion,
		batches:     make(map[string][]store.BatchRecord),
		expanded:    make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.repo
	return func() tea.Msg {
		results, err := repo.QueryResults(context.Background(), store.QueryOpts{Limit: PageSize})
		return resultsLoadedMsg{Results: results, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	hints := make([]layout.KeyHint, 0, 3)
	for _, b := range []key.Binding{keys.Toggle, keys.Up, keys.Back} {
		h := b.Help()
		hints = append(hints, layout.KeyHint{Key: h.Key, Description: h.Desc})
	}
	return hints
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case resultsLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.results = msg.Results
		}
		s.loaded = true
		return s, nil

	case batchesLoadedMsg:
		if msg.Err == nil {
			s.batches[msg.SessionID] = msg.Batches
		}
		return s, nil

	case tea.KeyPressMsg:
		switch {
		case key.Matches(msg, keys.Back):
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case key.Matches(msg, keys.Up):
			if s.selected > 0 {
				s.selected--
			}
		case key.Matches(msg, keys.Down):
			if s.selected < len(s.results)-1 {
				s.selected++
			}
		case key.Matches(msg, keys.Toggle):
			return s, s.toggle()
		}
	}
	return s, nil
}

// toggle expands the selected result, loading its batches on first use.
func (s *HistoryScreen) toggle() tea.Cmd {
	if s.selected >= len(s.results) {
		return nil
	}
	s.expanded[s.selected] = !s.expanded[s.selected]

	sessionID := s.results[s.selected].SessionID
	if _, ok := s.batches[sessionID]; ok || !s.expanded[s.selected] {
		return nil
	}
	repo := s.repo
	return func() tea.Msg {
		batches, err := repo.QueryBatches(context.Background(), sessionID)
		return batchesLoadedMsg{SessionID: sessionID, Batches: batches, Err: err}
	}
}

func (s *HistoryScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	if s.errMsg != "" {
		return center.Foreground(theme.Error).Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return center.Foreground(theme.TextDim).Render("\n\n  Loading history...")
	}
	if len(s.results) == 0 {
		return center.Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No results yet. Take the survey!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, r := range s.results {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s  %-22s %-10s econ %+7.2f  social %+7.2f  %2d questions",
			prefix, r.Timestamp.Format("Jan 02, 2006"), r.Ideology, r.Quadrant,
			r.Economic, r.Social, r.QuestionCount)
		if !bank.Comparable(r.BankVersion, s.bankVersion) {
			line += "  " + versionLabel(r.BankVersion)
		}

		style := lipgloss.NewStyle().Foreground(theme.QuadrantColor(bank.Quadrant(r.Quadrant)))
		if i == s.selected {
			style = style.Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			b.WriteString(s.renderBatches(r.SessionID, width))
		}
	}

	return b.String()
}

func (s *HistoryScreen) renderBatches(sessionID string, width int) string {
	batches, ok := s.batches[sessionID]
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	var lines []string
	switch {
	case !ok:
		lines = append(lines, "    Loading batches...")
	case len(batches) == 0:
		lines = append(lines, "    No adaptive batches recorded")
	default:
		for _, bt := range batches {
			line := fmt.Sprintf("    Batch %d  at (%+.2f, %+.2f) toward %s, specificity %d, %d questions",
				bt.BatchNumber, bt.Economic, bt.Social, bt.Quadrant, bt.Specificity, len(bt.QuestionIDs))
			if bt.Exhausted {
				line += ", bank exhausted"
			}
			lines = append(lines, line)
		}
	}

	var b strings.Builder
	for _, l := range lines {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, dim.Render(l)))
		b.WriteString("\n")
	}
	return b.String()
}

func versionLabel(v string) string {
	if v == "" {
		return "(unknown bank)"
	}
	return fmt.Sprintf("(bank %s, not comparable)", v)
}
