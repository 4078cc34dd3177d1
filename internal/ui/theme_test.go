package ui

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/AVBharath10/ai-tui/internal/review"
	"github.com/AVBharath10/ai-tui/internal/term"
	"github.com/AVBharath10/ai-tui/internal/watch"
)

func TestVariantCycleCoversAll(t *testing.T) {
	seen := map[Variant]bool{}
	v := VariantZinc
	for i := 0; i < 4; i++ {
		if seen[v] {
			t.Fatalf("variant %v repeated before full rotation", v)
		}
		seen[v] = true
		v = v.Cycle()
	}
	if v != VariantZinc {
		t.Errorf("cycle did not return to start, got %v", v)
	}
}

func TestParseVariant(t *testing.T) {
	tests := []struct {
		in   string
		want Variant
	}{
		{"zinc", VariantZinc},
		{"Nord", VariantNord},
		{"CYBERPUNK", VariantCyberpunk},
		{"solarized-dark", VariantSolarizedDark},
		{"nonsense", VariantZinc},
		{"", VariantZinc},
	}
	for _, tt := range tests {
		if got := ParseVariant(tt.in); got != tt.want {
			t.Errorf("ParseVariant(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestThemePalettesDistinct(t *testing.T) {
	zinc := NewTheme(VariantZinc)
	nord := NewTheme(VariantNord)
	if zinc.BgPrimary == nord.BgPrimary {
		t.Error("zinc and nord share a primary background")
	}
	if zinc.Variant != VariantZinc || nord.Variant != VariantNord {
		t.Error("theme variant not recorded")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"hello", 10, "hello"},
		{"hello", 3, "hel"},
		{"hello", 0, ""},
		{"日本語", 4, "日本"}, // wide runes count two columns
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.max); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}

func TestPainterDrawSmoke(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	defer screen.Fini()
	screen.SetSize(100, 30)

	p := NewPainter(screen, NewTheme(VariantZinc))

	emu := term.New(24, 60)
	emu.Feed([]byte("agent output"))

	state := &State{
		Screen: emu.Snapshot(),
		Mode:   review.Idle,
		Entries: []review.FileChange{
			{Name: "main.go", Op: watch.OpModify, Timestamp: time.Now()},
		},
		Now: time.Now(),
	}
	p.Draw(state)

	// Switch to reviewing with a head diff; must not panic and must redraw.
	state.Mode = review.Reviewing
	state.QueueLen = 2
	state.Head = &review.PendingChange{
		Name: "main.go",
		Op:   watch.OpModify,
		Old:  "a\n",
		New:  "b\n",
		Diff: "--- a/main.go\n+++ b/main.go\n@@ -1 +1 @@\n-a\n+b\n",
	}
	p.Draw(state)

	p.ToggleSidebar()
	p.CycleTheme()
	p.ScrollDiff(3)
	p.Draw(state)
}

func TestTermSizeAccountsForSidebar(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	defer screen.Fini()
	screen.SetSize(120, 40)

	p := NewPainter(screen, NewTheme(VariantZinc))
	rows, cols := p.TermSize()
	if rows != 39 {
		t.Errorf("rows = %d, want 39 (status bar reserved)", rows)
	}
	if cols != 120-sidebarWidth {
		t.Errorf("cols = %d, want %d", cols, 120-sidebarWidth)
	}

	p.ToggleSidebar()
	_, cols = p.TermSize()
	if cols != 120 {
		t.Errorf("cols with sidebar hidden = %d, want 120", cols)
	}
}
