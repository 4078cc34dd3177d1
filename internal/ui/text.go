package ui

import (
	"strings"

	"github.com/rivo/uniseg"
)

// truncate cuts s to at most max display columns, measuring grapheme
// cluster widths so wide runes and combining marks do not overflow panels.
func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	var b strings.Builder
	width := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		w := g.Width()
		if width+w > max {
			break
		}
		b.WriteString(g.Str())
		width += w
	}
	return b.String()
}

// splitLines splits diff text into display lines, dropping a single
// trailing empty line from the final newline.
func splitLines(s string) []string {
	lines := strings.Split(s, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return lines
}
