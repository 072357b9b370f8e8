package components

import (
	"math"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/compass/internal/bank"
	"github.com/abhisek/compass/internal/scoring"
	"github.com/abhisek/compass/internal/ui/theme"
)

// ChartPoint is a position on the compass plane.
type ChartPoint struct {
	Economic float64
	Social   float64
}

// Compass renders the two-axis plane as a text grid. Economic runs left to
// right, social runs from authoritarian at the top to libertarian at the
// bottom. Trail points are numbered in order and the final position is
// drawn as a diamond on top of everything else.
type Compass struct {
	Width  int // grid columns, odd so the axes sit on a cell
	Height int // grid rows, odd for the same reason
	Trail  []ChartPoint
	Final  *ChartPoint
}

const (
	markerOrigin = "○"
	markerFinal  = "◆"
	markerMany   = "•"
)

// NewCompass creates a chart of roughly the given size.
func NewCompass(width, height int) Compass {
	return Compass{Width: oddAtLeast(width, 11), Height: oddAtLeast(height, 7)}
}

func oddAtLeast(n, floor int) int {
	n = max(n, floor)
	if n%2 == 0 {
		n--
	}
	return n
}

// Cell maps a position to its grid column and row. Scores outside the
// axis range are clamped onto the border.
func (c Compass) Cell(econ, social float64) (col, row int) {
	econ = scoring.Clamp(econ)
	social = scoring.Clamp(social)
	col = int(math.Round((econ + scoring.MaxScore) / (2 * scoring.MaxScore) * float64(c.Width-1)))
	row = int(math.Round((scoring.MaxScore - social) / (2 * scoring.MaxScore) * float64(c.Height-1)))
	return col, row
}

// View renders the chart with quadrant labels above and below it.
func (c Compass) View() string {
	axis := lipgloss.NewStyle().Foreground(theme.Border)
	trail := lipgloss.NewStyle().Foreground(theme.Accent)

	cells := make([][]string, c.Height)
	midCol, midRow := c.Width/2, c.Height/2
	for r := range cells {
		cells[r] = make([]string, c.Width)
		for col := range cells[r] {
			switch {
			case r == midRow && col == midCol:
				cells[r][col] = axis.Render(markerOrigin)
			case r == midRow:
				cells[r][col] = axis.Render("─")
			case col == midCol:
				cells[r][col] = axis.Render("│")
			default:
				cells[r][col] = c.quadrantStyle(col, r).Render("·")
			}
		}
	}

	for i, p := range c.Trail {
		col, row := c.Cell(p.Economic, p.Social)
		mark := markerMany
		if i < 9 {
			mark = strconv.Itoa(i + 1)
		}
		cells[row][col] = trail.Render(mark)
	}
	if c.Final != nil {
		col, row := c.Cell(c.Final.Economic, c.Final.Social)
		q := scoring.Classify(scoring.Scores{Economic: c.Final.Economic, Social: c.Final.Social})
		cells[row][col] = lipgloss.NewStyle().Foreground(theme.QuadrantColor(q)).Bold(true).Render(markerFinal)
	}

	var b strings.Builder
	b.WriteString(c.labelRow(bank.AuthLeft, bank.AuthRight))
	b.WriteString("\n")
	for _, row := range cells {
		b.WriteString(strings.Join(row, ""))
		b.WriteString("\n")
	}
	b.WriteString(c.labelRow(bank.LibLeft, bank.LibRight))
	return b.String()
}

func (c Compass) quadrantStyle(col, row int) lipgloss.Style {
	left := col < c.Width/2
	top := row < c.Height/2
	var q bank.Quadrant
	switch {
	case top && left:
		q = bank.AuthLeft
	case top:
		q = bank.AuthRight
	case left:
		q = bank.LibLeft
	default:
		q = bank.LibRight
	}
	return lipgloss.NewStyle().Foreground(theme.QuadrantColor(q)).Faint(true)
}

func (c Compass) labelRow(left, right bank.Quadrant) string {
	l, r := string(left), string(right)
	gap := max(1, c.Width-len(l)-len(r))
	return lipgloss.NewStyle().Foreground(theme.QuadrantColor(left)).Render(l) +
		strings.Repeat(" ", gap) +
		lipgloss.NewStyle().Foreground(theme.QuadrantColor(right)).Render(r)
}
