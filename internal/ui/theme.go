package ui

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Variant identifies a color theme.
type Variant int

const (
	VariantZinc Variant = iota
	VariantNord
	VariantCyberpunk
	VariantSolarizedDark
)

// Cycle returns the next theme in rotation.
func (v Variant) Cycle() Variant {
	switch v {
	case VariantZinc:
		return VariantNord
	case VariantNord:
		return VariantCyberpunk
	case VariantCyberpunk:
		return VariantSolarizedDark
	default:
		return VariantZinc
	}
}

// Name returns the display name of the variant.
func (v Variant) Name() string {
	switch v {
	case VariantZinc:
		return "Zinc"
	case VariantNord:
		return "Nord"
	case VariantCyberpunk:
		return "Cyberpunk"
	case VariantSolarizedDark:
		return "Solarized Dark"
	default:
		return "Unknown"
	}
}

// ParseVariant maps a config string onto a Variant, defaulting to Zinc.
func ParseVariant(s string) Variant {
	switch strings.ToLower(s) {
	case "nord":
		return VariantNord
	case "cyberpunk":
		return VariantCyberpunk
	case "solarized", "solarized-dark", "solarizeddark":
		return VariantSolarizedDark
	default:
		return VariantZinc
	}
}

// Theme is a resolved color palette.
type Theme struct {
	Variant Variant

	BgPrimary   tcell.Color
	BgSecondary tcell.Color

	TextMain  tcell.Color
	TextMuted tcell.Color

	BorderFocus tcell.Color
	BorderDim   tcell.Color

	StatusSuccess tcell.Color
	StatusWarning tcell.Color
	StatusError   tcell.Color
	StatusInfo    tcell.Color
}

// NewTheme builds the palette for a variant.
func NewTheme(v Variant) Theme {
	switch v {
	case VariantNord:
		return Theme{
			Variant:       v,
			BgPrimary:     tcell.NewRGBColor(46, 52, 64),
			BgSecondary:   tcell.NewRGBColor(59, 66, 82),
			TextMain:      tcell.NewRGBColor(236, 239, 244),
			TextMuted:     tcell.NewRGBColor(216, 222, 233),
			BorderFocus:   tcell.NewRGBColor(136, 192, 208),
			BorderDim:     tcell.NewRGBColor(76, 86, 106),
			StatusSuccess: tcell.NewRGBColor(163, 190, 140),
			StatusWarning: tcell.NewRGBColor(235, 203, 139),
			StatusError:   tcell.NewRGBColor(191, 97, 106),
			StatusInfo:    tcell.NewRGBColor(94, 129, 172),
		}
	case VariantCyberpunk:
		return Theme{
			Variant:       v,
			BgPrimary:     tcell.NewRGBColor(10, 10, 15),
			BgSecondary:   tcell.NewRGBColor(30, 30, 40),
			TextMain:      tcell.NewRGBColor(255, 0, 255),
			TextMuted:     tcell.NewRGBColor(0, 255, 255),
			BorderFocus:   tcell.NewRGBColor(255, 255, 0),
			BorderDim:     tcell.NewRGBColor(100, 0, 100),
			StatusSuccess: tcell.NewRGBColor(0, 255, 100),
			StatusWarning: tcell.NewRGBColor(255, 150, 0),
			StatusError:   tcell.NewRGBColor(255, 0, 50),
			StatusInfo:    tcell.NewRGBColor(0, 200, 255),
		}
	case VariantSolarizedDark:
		return Theme{
			Variant:       v,
			BgPrimary:     tcell.NewRGBColor(0, 43, 54),
			BgSecondary:   tcell.NewRGBColor(7, 54, 66),
			TextMain:      tcell.NewRGBColor(131, 148, 150),
			TextMuted:     tcell.NewRGBColor(88, 110, 117),
			BorderFocus:   tcell.NewRGBColor(42, 161, 152),
			BorderDim:     tcell.NewRGBColor(7, 54, 66),
			StatusSuccess: tcell.NewRGBColor(133, 153, 0),
			StatusWarning: tcell.NewRGBColor(181, 137, 0),
			StatusError:   tcell.NewRGBColor(220, 50, 47),
			StatusInfo:    tcell.NewRGBColor(38, 139, 210),
		}
	default:
		return Theme{
			Variant:       VariantZinc,
			BgPrimary:     tcell.NewRGBColor(9, 9, 11),
			BgSecondary:   tcell.NewRGBColor(24, 24, 27),
			TextMain:      tcell.NewRGBColor(244, 244, 245),
			TextMuted:     tcell.NewRGBColor(161, 161, 170),
			BorderFocus:   tcell.NewRGBColor(63, 63, 70),
			BorderDim:     tcell.NewRGBColor(39, 39, 42),
			StatusSuccess: tcell.NewRGBColor(34, 197, 94),
			StatusWarning: tcell.NewRGBColor(234, 179, 8),
			StatusError:   tcell.NewRGBColor(239, 68, 68),
			StatusInfo:    tcell.NewRGBColor(59, 130, 246),
		}
	}
}

// Highlight returns the background used for the head-of-queue row in the
// sidebar: the secondary background pulled toward the focus border so it
// reads as selected on every palette.
func (t Theme) Highlight() tcell.Color {
	return blend(t.BgSecondary, t.BorderFocus, 0.25)
}

// blend mixes two colors in Lab space.
func blend(a, b tcell.Color, f float64) tcell.Color {
	ar, ag, ab := a.TrueColor().RGB()
	br, bg, bb := b.TrueColor().RGB()
	ca := colorful.Color{R: float64(ar) / 255, G: float64(ag) / 255, B: float64(ab) / 255}
	cb := colorful.Color{R: float64(br) / 255, G: float64(bg) / 255, B: float64(bb) / 255}
	m := ca.BlendLab(cb, f).Clamped()
	return tcell.NewRGBColor(int32(m.R*255), int32(m.G*255), int32(m.B*255))
}
