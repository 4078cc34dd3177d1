// Package ui paints the supervisor screen: the live terminal pane, the
// change-log sidebar, the diff view shown while a decision is pending, and
// the status bar. It draws onto a tcell screen from render-ready state
// snapshots and never touches shared mutable state itself.
package ui

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/AVBharath10/ai-tui/internal/review"
	"github.com/AVBharath10/ai-tui/internal/term"
	"github.com/AVBharath10/ai-tui/internal/watch"
)

// sidebarWidth is the fixed width of the change-log panel.
const sidebarWidth = 34

// State is everything the painter needs for one frame. It is assembled by
// the coordinator each tick and read-only here.
type State struct {
	// Screen is the emulator snapshot for the terminal pane.
	Screen *term.Snapshot

	// Mode is the approval workflow state.
	Mode review.State

	// Head is the pending change under review, nil when Idle.
	Head *review.PendingChange

	// Entries is the bounded change log, newest first.
	Entries []review.FileChange

	// QueueLen is the number of queued decisions including the head.
	QueueLen int

	// Now anchors relative timestamps in the sidebar.
	Now time.Time
}

// Painter draws frames onto a tcell screen.
type Painter struct {
	screen tcell.Screen
	theme  Theme

	showSidebar bool
	diffScroll  int
}

// NewPainter creates a painter over screen with the given theme.
func NewPainter(screen tcell.Screen, theme Theme) *Painter {
	return &Painter{
		screen:      screen,
		theme:       theme,
		showSidebar: true,
	}
}

// Theme returns the active theme.
func (p *Painter) Theme() Theme {
	return p.theme
}

// CycleTheme switches to the next palette and returns its name.
func (p *Painter) CycleTheme() string {
	p.theme = NewTheme(p.theme.Variant.Cycle())
	return p.theme.Variant.Name()
}

// ToggleSidebar flips sidebar visibility. The terminal pane geometry
// changes with it, so callers should re-check TermSize afterwards.
func (p *Painter) ToggleSidebar() {
	p.showSidebar = !p.showSidebar
}

// ScrollDiff moves the diff view by delta lines (negative scrolls up).
func (p *Painter) ScrollDiff(delta int) {
	p.diffScroll += delta
	if p.diffScroll < 0 {
		p.diffScroll = 0
	}
}

// ResetDiffScroll rewinds the diff view to the top, called when the head
// of the queue changes.
func (p *Painter) ResetDiffScroll() {
	p.diffScroll = 0
}

// TermSize returns the geometry of the terminal pane under the current
// layout, which is also the pty geometry.
func (p *Painter) TermSize() (rows, cols int) {
	width, height := p.screen.Size()
	return p.paneSize(width, height)
}

func (p *Painter) paneSize(width, height int) (rows, cols int) {
	cols = width
	if p.showSidebar && width > sidebarWidth*2 {
		cols = width - sidebarWidth
	}
	rows = height - 1 // status bar
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}
	return rows, cols
}

// Draw renders one frame and flushes it to the display.
func (p *Painter) Draw(state *State) {
	width, height := p.screen.Size()
	if width <= 0 || height <= 0 {
		return
	}
	p.screen.Fill(' ', tcell.StyleDefault.Background(p.theme.BgPrimary))

	paneRows, paneCols := p.paneSize(width, height)

	if state.Mode == review.Reviewing && state.Head != nil {
		p.screen.HideCursor()
		p.drawDiff(0, 0, paneCols, paneRows, state.Head, state.QueueLen)
	} else {
		p.drawTerminal(0, 0, paneCols, paneRows, state.Screen)
	}

	if p.showSidebar && paneCols < width {
		p.drawSidebar(paneCols, 0, width-paneCols, paneRows, state)
	}

	p.drawStatusBar(height-1, width, state)
	p.screen.Show()
}

// drawTerminal paints the emulator grid and places the hardware cursor.
func (p *Painter) drawTerminal(x, y, w, h int, snap *term.Snapshot) {
	if snap == nil {
		p.screen.HideCursor()
		return
	}
	for row := 0; row < snap.Rows && row < h; row++ {
		for col := 0; col < snap.Cols && col < w; col++ {
			cell := snap.Cells[row][col]
			style := tcell.StyleDefault.
				Foreground(p.cellColor(cell.FG, p.theme.TextMain)).
				Background(p.cellColor(cell.BG, p.theme.BgPrimary))
			r := cell.Rune
			if r == 0 {
				r = ' '
			}
			p.screen.SetContent(x+col, y+row, r, nil, style)
		}
	}
	if snap.Cursor.Visible && snap.Cursor.Row < h && snap.Cursor.Col < w {
		p.screen.ShowCursor(x+snap.Cursor.Col, y+snap.Cursor.Row)
	} else {
		p.screen.HideCursor()
	}
}

// cellColor maps an emulator color to a concrete display color.
func (p *Painter) cellColor(c term.Color, def tcell.Color) tcell.Color {
	switch {
	case c == term.ColorDefaultFG || c == term.ColorDefaultBG:
		return def
	case c < 256:
		return tcell.PaletteColor(int(c))
	default:
		return tcell.NewHexColor(int32(c))
	}
}

// drawSidebar paints the change log panel.
func (p *Painter) drawSidebar(x, y, w, h int, state *State) {
	border := tcell.StyleDefault.Foreground(p.theme.BorderDim).Background(p.theme.BgPrimary)
	p.drawBox(x, y, w, h, " Active Monitoring ", border)

	inner := w - 2
	row := y + 1
	for i, entry := range state.Entries {
		if row >= y+h-1 {
			break
		}

		color := p.theme.StatusWarning
		switch entry.Op {
		case watch.OpCreate:
			color = p.theme.StatusSuccess
		case watch.OpRemove:
			color = p.theme.StatusError
		}

		age := state.Now.Sub(entry.Timestamp)
		stamp := entry.Timestamp.Format("15:04")
		if age < time.Minute {
			stamp = fmt.Sprintf("%ds", int(age.Seconds()))
		}

		line := fmt.Sprintf("%4s %s %s", stamp, entry.Op.Symbol(), entry.Name)
		style := tcell.StyleDefault.Foreground(color).Background(p.theme.BgPrimary)
		marker := " "
		if i == 0 && state.Mode == review.Reviewing {
			style = style.Background(p.theme.Highlight()).Bold(true)
			marker = "▎"
		}
		p.setString(x+1, row, marker+truncate(line, inner-1), style)
		row++
	}
}

// drawDiff paints the pending change's unified diff with per-line coloring.
func (p *Painter) drawDiff(x, y, w, h int, head *review.PendingChange, queueLen int) {
	border := tcell.StyleDefault.Foreground(p.theme.StatusInfo).Background(p.theme.BgPrimary)
	p.drawBox(x, y, w, h, " Diff View ", border)

	inner := w - 2
	row := y + 1

	title := fmt.Sprintf("File: %s", head.Name)
	p.setString(x+1, row, truncate(title, inner), tcell.StyleDefault.
		Foreground(p.theme.TextMain).Background(p.theme.BgPrimary).Bold(true))
	row += 2

	lines := splitLines(head.Diff)
	if p.diffScroll > len(lines)-1 && len(lines) > 0 {
		p.diffScroll = len(lines) - 1
	}
	for _, line := range lines[min(p.diffScroll, len(lines)):] {
		if row >= y+h-2 {
			break
		}
		color := p.theme.TextMuted
		switch {
		case len(line) > 0 && line[0] == '+':
			color = p.theme.StatusSuccess
		case len(line) > 0 && line[0] == '-':
			color = p.theme.StatusError
		case len(line) > 0 && line[0] == '@':
			color = p.theme.StatusInfo
		}
		p.setString(x+1, row, truncate(line, inner), tcell.StyleDefault.
			Foreground(color).Background(p.theme.BgPrimary))
		row++
	}

	hint := "[y] accept   [n] reject"
	if queueLen > 1 {
		hint = fmt.Sprintf("[y] accept   [n] reject   (%d more queued)", queueLen-1)
	}
	p.setString(x+1, y+h-2, truncate(hint, inner), tcell.StyleDefault.
		Foreground(p.theme.BorderFocus).Background(p.theme.BgPrimary).Bold(true))
}

// drawStatusBar paints the bottom bar with counters and key hints.
func (p *Painter) drawStatusBar(y, width int, state *State) {
	var created, modified, removed int
	for _, entry := range state.Entries {
		switch entry.Op {
		case watch.OpCreate:
			created++
		case watch.OpModify:
			modified++
		case watch.OpRemove:
			removed++
		}
	}

	mode := ""
	if state.Mode == review.Reviewing {
		mode = fmt.Sprintf("  REVIEWING %d  |", state.QueueLen)
	}
	text := fmt.Sprintf(
		"  ai-tui%s  Theme: %s (Ctrl+T)  |  Total: %d  +%d ~%d -%d  |  Ctrl+B: Sidebar  Ctrl+L: Clear  Ctrl+Q: Quit",
		mode, p.theme.Variant.Name(), len(state.Entries), created, modified, removed,
	)

	style := tcell.StyleDefault.Foreground(p.theme.TextMain).Background(p.theme.BorderDim)
	for x := 0; x < width; x++ {
		p.screen.SetContent(x, y, ' ', nil, style)
	}
	p.setString(0, y, truncate(text, width), style)
}

// drawBox draws a single-line border with a title.
func (p *Painter) drawBox(x, y, w, h int, title string, style tcell.Style) {
	if w < 2 || h < 2 {
		return
	}
	for col := x + 1; col < x+w-1; col++ {
		p.screen.SetContent(col, y, tcell.RuneHLine, nil, style)
		p.screen.SetContent(col, y+h-1, tcell.RuneHLine, nil, style)
	}
	for row := y + 1; row < y+h-1; row++ {
		p.screen.SetContent(x, row, tcell.RuneVLine, nil, style)
		p.screen.SetContent(x+w-1, row, tcell.RuneVLine, nil, style)
	}
	p.screen.SetContent(x, y, tcell.RuneULCorner, nil, style)
	p.screen.SetContent(x+w-1, y, tcell.RuneURCorner, nil, style)
	p.screen.SetContent(x, y+h-1, tcell.RuneLLCorner, nil, style)
	p.screen.SetContent(x+w-1, y+h-1, tcell.RuneLRCorner, nil, style)
	p.setString(x+1, y, truncate(title, w-2), style)
}

// setString writes a string left to right, one cell per cluster.
func (p *Painter) setString(x, y int, s string, style tcell.Style) {
	col := x
	for _, r := range s {
		p.screen.SetContent(col, y, r, nil, style)
		col++
	}
}
