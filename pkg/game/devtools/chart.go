package devtools

import (
	"strings"

	"github.com/gookit/color"

	"spaceescape/pkg/engine/world"
	"spaceescape/pkg/game/state"
)

// Chart colours, after the legend of the ship map
var (
	ColorCurrent    = color.Style{color.FgBlue, color.OpBold}
	ColorAccessible = color.Style{color.FgGreen}
	ColorLocked     = color.Style{color.FgRed}
	ColorExplored   = color.Style{color.FgGray}
	ColorUnknown    = color.Style{color.FgDefault}
	ColorAdversary  = color.Style{color.FgMagenta, color.OpBold}
)

const (
	maxCellWidth = 12
	minCellWidth = 1
)

// ChartOptions controls how the ship chart is drawn
type ChartOptions struct {
	// Reveal shows every room by name instead of the player's view
	Reveal bool
	// Color wraps cells in terminal colours
	Color bool
	// Width is the terminal width the chart must fit
	Width int
}

// stateSymbol returns the single-character symbol for a display state
func stateSymbol(s world.DisplayState) rune {
	switch s {
	case world.StateCurrent:
		return '@'
	case world.StateAccessible:
		return '+'
	case world.StateLocked:
		return 'x'
	case world.StateExplored:
		return 'o'
	default:
		return '?'
	}
}

func stateStyle(s world.DisplayState) color.Style {
	switch s {
	case world.StateCurrent:
		return ColorCurrent
	case world.StateAccessible:
		return ColorAccessible
	case world.StateLocked:
		return ColorLocked
	case world.StateExplored:
		return ColorExplored
	default:
		return ColorUnknown
	}
}

// cellWidth fits side cells and their separators into width
func cellWidth(width, side int) int {
	if side <= 0 {
		return minCellWidth
	}
	w := width/side - 1
	if w > maxCellWidth {
		w = maxCellWidth
	}
	if w < minCellWidth {
		w = minCellWidth
	}
	return w
}

// cellLabel returns the text shown for a room, without colour
func cellLabel(g *state.Game, r *world.Room, width int, reveal bool) string {
	if !r.IsOccupied() {
		return strings.Repeat(" ", width)
	}
	chart := g.Player.Chart()
	st := chart.State(r)

	label := string(stateSymbol(st))
	switch {
	case r == g.Player.Location():
		label = "@"
	case reveal && r == g.Adversary.Location():
		label = "!"
	case width > 1 && (reveal || chart.Visited(r)):
		label = r.Name()
	}
	return fit(label, width)
}

func fit(s string, width int) string {
	runes := []rune(s)
	if len(runes) > width {
		return string(runes[:width])
	}
	return s + strings.Repeat(" ", width-len(runes))
}

// RenderChart draws the grid with north at the top, one line per row
func RenderChart(g *state.Game, opts ChartOptions) string {
	side := g.Grid.Side()
	width := cellWidth(opts.Width, side)
	chart := g.Player.Chart()

	var b strings.Builder
	for y := side - 1; y >= 0; y-- {
		for x := 0; x < side; x++ {
			if x > 0 {
				b.WriteByte(' ')
			}
			r := g.Grid.Cell(x, y)
			label := cellLabel(g, r, width, opts.Reveal)
			if !opts.Color || !r.IsOccupied() {
				b.WriteString(label)
				continue
			}
			style := stateStyle(chart.State(r))
			if opts.Reveal && r == g.Adversary.Location() {
				style = ColorAdversary
			}
			b.WriteString(style.Sprint(label))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Legend describes the chart symbols
func Legend() string {
	return "@ = current  + = accessible  x = locked  o = explored  ? = unknown  ! = adversary"
}
