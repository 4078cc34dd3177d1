// Package term adapts the vt10x terminal emulation engine for rendering.
// The emulator consumes the raw byte stream from the pty session and exposes
// a grid snapshot the painter can draw without touching vt10x types.
//
// An Emulator is created at a fixed geometry and replaced wholesale on
// resize; scroll-back is deliberately discarded when that happens.
package term

import (
	"github.com/tuzig/vt10x"
)

// Color is a terminal cell color: an indexed palette entry, a packed
// 24-bit RGB value, or one of the default markers.
type Color uint32

// Default color markers. The painter substitutes theme colors for these.
const (
	ColorDefaultFG Color = 1<<24 + iota
	ColorDefaultBG
)

// RGB reports whether the color carries a packed 24-bit value rather than
// a palette index.
func (c Color) RGB() bool {
	return c < 1<<24 && c > 255
}

// Cell is one rendered screen cell.
type Cell struct {
	Rune rune
	FG   Color
	BG   Color
}

// Cursor is the emulator cursor position and visibility.
type Cursor struct {
	Row     int
	Col     int
	Visible bool
}

// Snapshot is a render-ready copy of the screen state.
type Snapshot struct {
	Rows   int
	Cols   int
	Cells  [][]Cell // Cells[row][col]
	Cursor Cursor
}

// Emulator wraps a vt10x terminal at a fixed geometry.
type Emulator struct {
	vt   vt10x.Terminal
	rows int
	cols int
}

// New creates an emulator with the given geometry.
func New(rows, cols int) *Emulator {
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}
	return &Emulator{
		vt:   vt10x.New(vt10x.WithSize(cols, rows)),
		rows: rows,
		cols: cols,
	}
}

// Size returns the emulator geometry.
func (e *Emulator) Size() (rows, cols int) {
	return e.rows, e.cols
}

// Feed parses a chunk of process output.
func (e *Emulator) Feed(p []byte) {
	_, _ = e.vt.Write(p)
}

// Snapshot copies the current screen grid and cursor. The copy is detached
// from the emulator and safe to hand to the painter.
func (e *Emulator) Snapshot() *Snapshot {
	e.vt.Lock()
	defer e.vt.Unlock()

	snap := &Snapshot{
		Rows:  e.rows,
		Cols:  e.cols,
		Cells: make([][]Cell, e.rows),
	}
	for row := 0; row < e.rows; row++ {
		line := make([]Cell, e.cols)
		for col := 0; col < e.cols; col++ {
			glyph := e.vt.Cell(col, row)
			line[col] = Cell{
				Rune: glyph.Char,
				FG:   convertColor(glyph.FG, ColorDefaultFG),
				BG:   convertColor(glyph.BG, ColorDefaultBG),
			}
		}
		snap.Cells[row] = line
	}

	cursor := e.vt.Cursor()
	snap.Cursor = Cursor{
		Row:     cursor.Y,
		Col:     cursor.X,
		Visible: e.vt.CursorVisible(),
	}
	return snap
}

// convertColor maps a vt10x color onto a Color, folding every default
// variant (including the cursor default) onto the given marker.
func convertColor(c vt10x.Color, def Color) Color {
	if c >= vt10x.DefaultFG {
		return def
	}
	return Color(c)
}
