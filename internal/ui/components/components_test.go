package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func press(code rune, text string) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code, Text: text}
}

func TestLikertStartsNeutral(t *testing.T) {
	l := NewLikert()
	if l.Value() != 0 {
		t.Errorf("initial value = %d, want 0", l.Value())
	}
	if l.Submitted {
		t.Error("new selector should not be submitted")
	}
}

func TestLikertDigitSubmits(t *testing.T) {
	l := NewLikert()
	l, _ = l.Update(press('1', "1"))
	if !l.Submitted {
		t.Fatal("digit should submit")
	}
	if l.Value() != -2 {
		t.Errorf("value = %d, want -2", l.Value())
	}

	// Further keys are ignored once submitted.
	l, _ = l.Update(press('5', "5"))
	if l.Value() != -2 {
		t.Errorf("value changed after submit: %d", l.Value())
	}
}

func TestLikertArrowsAndEnter(t *testing.T) {
	l := NewLikert()
	l, _ = l.Update(press(tea.KeyRight, ""))
	l, _ = l.Update(press(tea.KeyRight, ""))
	l, _ = l.Update(press(tea.KeyRight, "")) // clamps at the last choice
	if l.Submitted {
		t.Fatal("arrows should not submit")
	}
	l, _ = l.Update(press(tea.KeyEnter, ""))
	if !l.Submitted || l.Value() != 2 {
		t.Errorf("submitted=%v value=%d, want true 2", l.Submitted, l.Value())
	}
}

func TestLikertAt(t *testing.T) {
	l := NewLikertAt(1)
	if l.Value() != 1 {
		t.Errorf("value = %d, want 1", l.Value())
	}
	if !strings.Contains(l.View(), "Sometimes Agree") {
		t.Error("view should list the choices")
	}
}

func TestCompassCell(t *testing.T) {
	c := Compass{Width: 21, Height: 11}
	tests := []struct {
		name             string
		econ, social     float64
		wantCol, wantRow int
	}{
		{"origin", 0, 0, 10, 5},
		{"auth left corner", -100, 100, 0, 0},
		{"lib right corner", 100, -100, 20, 10},
		{"clamped", 150, -150, 20, 10},
		{"auth right", 50, 50, 15, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			col, row := c.Cell(tt.econ, tt.social)
			if col != tt.wantCol || row != tt.wantRow {
				t.Errorf("Cell(%v, %v) = (%d, %d), want (%d, %d)",
					tt.econ, tt.social, col, row, tt.wantCol, tt.wantRow)
			}
		})
	}
}

func TestNewCompassOddSize(t *testing.T) {
	c := NewCompass(40, 4)
	if c.Width != 39 || c.Height != 7 {
		t.Errorf("size = %dx%d, want 39x7", c.Width, c.Height)
	}
}

func TestCompassViewMarkers(t *testing.T) {
	c := NewCompass(21, 11)
	c.Trail = []ChartPoint{{Economic: -50, Social: 50}, {Economic: -40, Social: 40}}
	c.Final = &ChartPoint{Economic: 60, Social: -60}

	view := c.View()
	for _, want := range []string{"1", "2", markerFinal, markerOrigin, "AuthLeft", "LibRight"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestMenuSkipsDisabled(t *testing.T) {
	called := ""
	m := NewMenu([]MenuItem{
		{Label: "Off", Disabled: true},
		{Label: "Start", Action: func() tea.Cmd { called = "start"; return nil }},
		{Label: "Later", Disabled: true},
		{Label: "Quit", Action: func() tea.Cmd { called = "quit"; return nil }},
	})
	if m.Selected != 1 {
		t.Fatalf("initial selection = %d, want 1", m.Selected)
	}

	m, _ = m.Update(press(tea.KeyDown, ""))
	if m.Selected != 3 {
		t.Errorf("down selection = %d, want 3", m.Selected)
	}
	m, _ = m.Update(press(tea.KeyDown, ""))
	if m.Selected != 3 {
		t.Errorf("selection moved past the end: %d", m.Selected)
	}

	m.Update(press(tea.KeyEnter, ""))
	if called != "quit" {
		t.Errorf("action = %q, want quit", called)
	}
}
