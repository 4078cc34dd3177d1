package app

import (
	"github.com/gdamore/tcell/v2"
)

// Arrow key escape sequences forwarded to the child terminal.
var (
	seqUp    = []byte{0x1b, '[', 'A'}
	seqDown  = []byte{0x1b, '[', 'B'}
	seqRight = []byte{0x1b, '[', 'C'}
	seqLeft  = []byte{0x1b, '[', 'D'}
)

// encodeKey translates a key event into the bytes the child process
// expects on its terminal input. It returns nil for keys with no mapping.
//
// The mappings are fixed: Enter sends CR, Backspace sends DEL (what shells
// expect from a modern terminal), arrows send the standard ANSI sequences,
// and any other control chord is forwarded as its control byte.
func encodeKey(ev *tcell.EventKey) []byte {
	switch ev.Key() {
	case tcell.KeyRune:
		return []byte(string(ev.Rune()))
	case tcell.KeyEnter:
		return []byte{0x0d}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return []byte{0x7f}
	case tcell.KeyTab:
		return []byte{0x09}
	case tcell.KeyEscape:
		return []byte{0x1b}
	case tcell.KeyUp:
		return seqUp
	case tcell.KeyDown:
		return seqDown
	case tcell.KeyRight:
		return seqRight
	case tcell.KeyLeft:
		return seqLeft
	case tcell.KeyDelete:
		return []byte{0x1b, '[', '3', '~'}
	default:
		// Control chords map onto their ASCII control bytes in tcell
		// (Ctrl+C is 0x03, Ctrl+D is 0x04, and so on).
		if k := ev.Key(); k >= 1 && k <= 26 {
			return []byte{byte(k)}
		}
		return nil
	}
}
