package terminal

import (
	"bufio"
	"io"
)

// Output queues terminal commands and writes them in one Flush.
// Coordinates are 0-indexed cells; margins and regions use [top, bottom) rows.
// Not safe for concurrent use; owned by the main loop
type Output struct {
	writer    *bufio.Writer
	colorMode ColorMode

	style      Style
	styleValid bool
}

// NewOutput creates an output buffer over w
func NewOutput(w io.Writer, colorMode ColorMode) *Output {
	return &Output{
		writer:    bufio.NewWriterSize(w, 131072), // 128KB buffer
		colorMode: colorMode,
	}
}

// ColorMode returns the color capability used for encoding
func (o *Output) ColorMode() ColorMode {
	return o.colorMode
}

// MoveTo positions the cursor
func (o *Output) MoveTo(x, y int) {
	writeCSI2(o.writer, y+1, x+1, 'H')
}

// ClearLine erases the whole cursor row
func (o *Output) ClearLine() {
	o.writer.Write(csiClearLine)
}

// ClearToEOL erases from the cursor to the end of the row
func (o *Output) ClearToEOL() {
	o.writer.Write(csiClearToEOL)
}

// ClearScreen erases the display and homes the cursor
func (o *Output) ClearScreen() {
	o.writer.Write(csiClearScreen)
}

// InsertChars inserts n blank cells at the cursor, shifting the row right
func (o *Output) InsertChars(n int) {
	if n > 0 {
		writeCSI1(o.writer, n, '@')
	}
}

// DeleteChars deletes n cells at the cursor, shifting the row left
func (o *Output) DeleteChars(n int) {
	if n > 0 {
		writeCSI1(o.writer, n, 'P')
	}
}

// SetStyle switches the SGR state, emitting nothing when it is unchanged
func (o *Output) SetStyle(s Style) {
	if o.styleValid && s == o.style {
		return
	}
	writeStyle(o.writer, s, o.colorMode)
	o.style = s
	o.styleValid = true
}

// ResetStyle restores default attributes
func (o *Output) ResetStyle() {
	o.writer.Write(csiSGR0)
	o.style = Style{}
	o.styleValid = true
}

// SetScrollMargins restricts scrolling to rows [top, bottom)
func (o *Output) SetScrollMargins(top, bottom int) {
	writeCSI2(o.writer, top+1, bottom, 'r')
}

// ResetScrollMargins restores full-screen scrolling
func (o *Output) ResetScrollMargins() {
	o.writer.Write(csiResetMargins)
}

// ShiftRegion moves the content of rows [top, bottom) by n rows: positive n
// scrolls content up (exposing rows at the bottom), negative scrolls down.
// Margins are reset afterwards and the cursor position is undefined
func (o *Output) ShiftRegion(top, bottom, n int) {
	if n == 0 || bottom <= top {
		return
	}
	o.SetScrollMargins(top, bottom)
	if n > 0 {
		writeCSI1(o.writer, n, 'S')
	} else {
		writeCSI1(o.writer, -n, 'T')
	}
	o.ResetScrollMargins()
}

// Print writes text at the cursor in the current style
func (o *Output) Print(s string) {
	o.writer.WriteString(s)
}

// ShowCursor makes the cursor visible
func (o *Output) ShowCursor() {
	o.writer.Write(csiCursorShow)
}

// HideCursor makes the cursor invisible
func (o *Output) HideCursor() {
	o.writer.Write(csiCursorHide)
}

// EnterAltScreen switches to the alternate screen buffer
func (o *Output) EnterAltScreen() {
	o.writer.Write(csiAltScreenEnter)
}

// ExitAltScreen returns to the primary screen buffer
func (o *Output) ExitAltScreen() {
	o.writer.Write(csiAltScreenExit)
}

// SetAutoWrap toggles DECAWM
func (o *Output) SetAutoWrap(on bool) {
	if on {
		o.writer.Write(csiAutoWrapOn)
	} else {
		o.writer.Write(csiAutoWrapOff)
	}
}

// Pending returns the number of queued bytes
func (o *Output) Pending() int {
	return o.writer.Buffered()
}

// Flush writes all queued commands. Nothing is written when the queue is empty
func (o *Output) Flush() error {
	if o.writer.Buffered() == 0 {
		return nil
	}
	return o.writer.Flush()
}

// invalidateStyle forgets the known SGR state so the next SetStyle is emitted
func (o *Output) invalidateStyle() {
	o.styleValid = false
}
