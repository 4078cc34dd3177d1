package app

import (
	"bytes"
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestEncodeKeyMappings(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want []byte
	}{
		{"printable rune", tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone), []byte("a")},
		{"unicode rune", tcell.NewEventKey(tcell.KeyRune, 'é', tcell.ModNone), []byte("é")},
		{"enter sends CR", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), []byte{0x0d}},
		{"backspace sends DEL", tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), []byte{0x7f}},
		{"tab", tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone), []byte{0x09}},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), []byte{0x1b}},
		{"ctrl-c", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), []byte{0x03}},
		{"ctrl-d", tcell.NewEventKey(tcell.KeyCtrlD, 0, tcell.ModCtrl), []byte{0x04}},
		{"up arrow", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), []byte("\x1b[A")},
		{"down arrow", tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone), []byte("\x1b[B")},
		{"right arrow", tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone), []byte("\x1b[C")},
		{"left arrow", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), []byte("\x1b[D")},
		{"function key unmapped", tcell.NewEventKey(tcell.KeyF1, 0, tcell.ModNone), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := encodeKey(tt.ev); !bytes.Equal(got, tt.want) {
				t.Errorf("encodeKey() = %q, want %q", got, tt.want)
			}
		})
	}
}
