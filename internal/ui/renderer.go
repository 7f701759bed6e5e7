package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/forageband/internal/robot"
	"github.com/samdwyer/forageband/internal/sim"
	"github.com/samdwyer/forageband/internal/world"
)

// Renderer draws simulation snapshots to the screen: the map on top,
// a status line, then the recent event feed.
type Renderer struct {
	screen *Screen
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Render draws one snapshot and the event feed.
func (r *Renderer) Render(snap sim.Snapshot, feed []string) {
	r.screen.Clear()

	for y, row := range snap.Grid {
		for x, cell := range row {
			r.screen.SetContent(x, y, cell.Rune(), r.cellStyle(cell))
		}
	}

	// Robots draw over terrain.
	for _, rb := range snap.Robots {
		r.screen.SetContent(rb.Pos.X, rb.Pos.Y, rb.Role.Rune(), r.robotStyle(rb.Role))
	}

	statusY := len(snap.Grid)
	status := fmt.Sprintf("base M:%d E:%d  reports:%d  [q to quit]",
		snap.BaseInventory[world.Mineral],
		snap.BaseInventory[world.Energy],
		len(snap.Reports),
	)
	r.renderLine(status, statusY, tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true))

	for i, line := range feed {
		r.renderLine(line, statusY+1+i, tcell.StyleDefault.Foreground(tcell.ColorGray))
	}

	r.screen.Show()
}

// cellStyle returns the style for a terrain cell.
func (r *Renderer) cellStyle(cell world.Cell) tcell.Style {
	switch cell.Kind {
	case world.CellObstacle:
		return tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	case world.CellBase:
		return tcell.StyleDefault.Foreground(tcell.ColorBlue).Bold(true)
	case world.CellResource:
		return tcell.StyleDefault.Foreground(tcell.ColorYellow)
	default:
		return tcell.StyleDefault.Foreground(tcell.ColorGray)
	}
}

// robotStyle returns the style for a robot marker.
func (r *Renderer) robotStyle(role robot.Role) tcell.Style {
	switch role {
	case robot.RoleExplorer:
		return tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	case robot.RoleMiner:
		return tcell.StyleDefault.Foreground(tcell.ColorPurple).Bold(true)
	default:
		return tcell.StyleDefault
	}
}

// renderLine writes a single text line starting at column zero.
func (r *Renderer) renderLine(msg string, y int, style tcell.Style) {
	for i, ch := range msg {
		r.screen.SetContent(i, y, ch, style)
	}
}
