package tui

import (
	"strconv"
	"strings"
)

// StatusLine is the bottom summary row of the pager
type StatusLine struct {
	Source   string
	Line     int // 1-based first visible line, 0 when empty
	Total    int // lines passing the filter
	Lines    int // lines in the source
	Filter   string
	Follow   bool
	Error    string // transient fault indicator
	Message  string
	Excluded int // number of exclude patterns in effect
}

// Right returns the position summary shown at the right edge
func (s *StatusLine) Right() string {
	var sb strings.Builder
	if s.Follow {
		sb.WriteString("FOLLOW  ")
	}
	sb.WriteString(strconv.Itoa(s.Line))
	sb.WriteByte('/')
	sb.WriteString(strconv.Itoa(s.Total))
	if s.Total != s.Lines {
		sb.WriteString(" of ")
		sb.WriteString(strconv.Itoa(s.Lines))
	}
	sb.WriteByte(' ')
	return sb.String()
}

// Left returns the source and filter summary
func (s *StatusLine) Left() string {
	var sb strings.Builder
	sb.WriteByte(' ')
	sb.WriteString(s.Source)
	if s.Filter != "" {
		sb.WriteString("  /")
		sb.WriteString(s.Filter)
	}
	if s.Excluded > 0 {
		sb.WriteString("  -")
		sb.WriteString(strconv.Itoa(s.Excluded))
	}
	if s.Message != "" {
		sb.WriteString("  ")
		sb.WriteString(s.Message)
	}
	return sb.String()
}

// Render draws the status row at y
func (s *StatusLine) Render(r Renderer, y, width int, theme *Theme) {
	if theme == nil {
		theme = &DefaultTheme
	}
	r.MoveTo(0, y)
	r.SetStyle(theme.Status)
	r.ClearToEOL()
	if width <= 0 {
		return
	}

	right := s.Right()
	rw := CellWidth(right)
	if rw >= width {
		r.Print(TruncateLeft(right, width))
		return
	}

	leftWidth := width - rw
	left := s.Left()
	if s.Error != "" {
		errText := " ! " + s.Error + " "
		if ew := CellWidth(errText); ew < leftWidth {
			r.Print(PadRight(Truncate(left, leftWidth-ew), leftWidth-ew))
			r.SetStyle(theme.Error)
			r.Print(errText)
			r.SetStyle(theme.Status)
		} else {
			r.SetStyle(theme.Error)
			r.Print(PadRight(Truncate(errText, leftWidth), leftWidth))
			r.SetStyle(theme.Status)
		}
	} else {
		r.Print(PadRight(Truncate(left, leftWidth), leftWidth))
	}
	r.Print(right)
}
