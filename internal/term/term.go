// Package term renders score bars and color-coded score bands for the CLI.
// Color is only applied when the output is a terminal.
package term

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// Band buckets a similarity score for presentation.
type Band int

const (
	BandPoor Band = iota
	BandFair
	BandGood
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiYellow = "\x1b[33m"
	ansiGreen  = "\x1b[32m"
)

// BandFor maps a score in [0,1] to its presentation band.
func BandFor(score float64) Band {
	switch {
	case score >= 0.8:
		return BandGood
	case score >= 0.6:
		return BandFair
	default:
		return BandPoor
	}
}

func (b Band) String() string {
	switch b {
	case BandGood:
		return "good"
	case BandFair:
		return "fair"
	default:
		return "poor"
	}
}

// Bar renders a fixed-width score bar, e.g. "[########--------] 0.52".
func Bar(score float64, width int) string {
	if width <= 0 {
		width = 20
	}
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	filled := int(score*float64(width) + 0.5)
	var b strings.Builder
	b.WriteByte('[')
	b.WriteString(strings.Repeat("#", filled))
	b.WriteString(strings.Repeat("-", width-filled))
	b.WriteByte(']')
	return fmt.Sprintf("%s %.3f", b.String(), score)
}

// Colorize wraps s in the ANSI color of the band when enabled.
func Colorize(s string, band Band, enabled bool) string {
	if !enabled {
		return s
	}
	switch band {
	case BandGood:
		return ansiGreen + s + ansiReset
	case BandFair:
		return ansiYellow + s + ansiReset
	default:
		return ansiRed + s + ansiReset
	}
}

// IsTerminal reports whether f is an interactive terminal.
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
