package result

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/compass/internal/bank"
	"github.com/abhisek/compass/internal/ideology"
	"github.com/abhisek/compass/internal/quiz"
	"github.com/abhisek/compass/internal/scoring"
	"github.com/abhisek/compass/internal/screen"
)

func testResult() *quiz.Result {
	scores := scoring.Scores{Economic: -62.5, Social: -41.25}
	return &quiz.Result{
		Scores:   scores,
		Quadrant: scoring.Classify(scores),
		Ideology: ideology.Resolve(scores.Economic, scores.Social),
		History: []quiz.Snapshot{
			{Economic: -50, Social: -25, QuestionNumber: 8},
			{Economic: -60, Social: -40, QuestionNumber: 16},
			{Economic: -62.5, Social: -41.25, QuestionNumber: 40},
		},
	}
}

func TestViewShowsOutcome(t *testing.T) {
	res := testResult()
	view := New(res).View(140, 40)

	for _, want := range []string{
		res.Ideology.Name,
		"-62.50",
		"-41.25",
		bank.LibLeft.DisplayName(),
		res.Ideology.Country.Name,
		string(res.Ideology.USParty.Party),
	} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestCompactViewOmitsChart(t *testing.T) {
	view := New(testResult()).View(80, 30)
	if strings.Contains(view, "◆") {
		t.Error("compact view should not draw the chart")
	}
}

func TestChartTrail(t *testing.T) {
	c := Chart(testResult(), 21, 11)
	if len(c.Trail) != 2 {
		t.Fatalf("trail has %d points, want 2", len(c.Trail))
	}
	if c.Final == nil || c.Final.Economic != -62.5 {
		t.Errorf("final = %+v, want economic -62.5", c.Final)
	}
}

func TestRetakeAndHome(t *testing.T) {
	s := New(testResult())

	_, cmd := s.Update(tea.KeyPressMsg{Code: 'r', Text: "r"})
	if cmd == nil {
		t.Fatal("r should retake")
	}
	if _, ok := cmd().(screen.StartQuizMsg); !ok {
		t.Errorf("expected StartQuizMsg, got %T", cmd())
	}

	_, cmd = s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("esc should go home")
	}
	msg, ok := cmd().(screen.HomeMsg)
	if !ok || msg.Err != "" {
		t.Errorf("expected HomeMsg without error, got %#v", cmd())
	}
}
