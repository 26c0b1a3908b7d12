package tui

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

// DefaultTabWidth is used when a non-positive tab width is configured
const DefaultTabWidth = 8

// Sanitize makes a source line safe to print: ANSI escape sequences are
// stripped, tabs expanded to tabWidth stops, other control characters and
// invalid UTF-8 dropped
func Sanitize(line string, tabWidth int) string {
	if tabWidth <= 0 {
		tabWidth = DefaultTabWidth
	}
	s := line
	if strings.IndexByte(s, 0x1b) >= 0 || strings.ContainsRune(s, '\u009b') {
		s = ansi.Strip(s)
	}

	var sb strings.Builder
	sb.Grow(len(s))
	col := 0
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		i += size
		switch {
		case r == '\t':
			n := tabWidth - col%tabWidth
			sb.WriteString(strings.Repeat(" ", n))
			col += n
		case r == utf8.RuneError && size == 1:
			// invalid byte
		case r < 0x20 || r == 0x7f || (r >= 0x80 && r < 0xa0):
			// control
		default:
			w := runewidth.RuneWidth(r)
			if w == 0 && col == 0 {
				// leading combining mark has nothing to attach to
				continue
			}
			sb.WriteRune(r)
			col += w
		}
	}
	return sb.String()
}

// CellWidth returns the display width of s in terminal cells
func CellWidth(s string) int {
	return runewidth.StringWidth(s)
}

// Clip returns the part of s visible in a window of width cells starting
// skip cells in. A wide rune cut by either edge is replaced by spaces
func Clip(s string, skip, width int) string {
	if width <= 0 {
		return ""
	}
	var sb strings.Builder
	col := 0
	end := skip + width
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		next := col + w
		switch {
		case next <= skip:
		case col < skip:
			// straddles left edge
			sb.WriteString(strings.Repeat(" ", next-skip))
		case next > end:
			sb.WriteString(strings.Repeat(" ", end-col))
			return sb.String()
		default:
			sb.WriteRune(r)
		}
		col = next
		if col >= end {
			break
		}
	}
	return sb.String()
}

// Truncate shortens s to at most width cells with a … suffix
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}

// TruncateLeft shortens s to at most width cells, keeping the end with a … prefix
func TruncateLeft(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.TruncateLeft(s, runewidth.StringWidth(s)-width+1, "…")
}

// PadRight pads s with spaces to width cells
func PadRight(s string, width int) string {
	if n := width - runewidth.StringWidth(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}
