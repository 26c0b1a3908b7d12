package terminal

import (
	"bufio"
)

// Pre-allocated ANSI sequence fragments
var (
	csi     = []byte("\x1b[")
	csiRIS  = []byte("\x1bc") // Reset to Initial State (emergency)
	csiSGR0 = []byte("\x1b[0m")

	// Erase
	csiClearScreen = []byte("\x1b[2J\x1b[H")
	csiClearLine   = []byte("\x1b[2K")
	csiClearToEOL  = []byte("\x1b[K")

	// Cursor control
	csiCursorHide = []byte("\x1b[?25l")
	csiCursorShow = []byte("\x1b[?25h")

	// Screen modes
	csiAltScreenEnter = []byte("\x1b[?1049h")
	csiAltScreenExit  = []byte("\x1b[?1049l")
	// DECAWM: Auto-Wrap Mode
	// ?7l disables wrapping (cursor sticks at right edge), preventing scroll when writing to bottom-right corner
	csiAutoWrapOn  = []byte("\x1b[?7h")
	csiAutoWrapOff = []byte("\x1b[?7l")

	// DECSTBM with no parameters restores full-screen margins
	csiResetMargins = []byte("\x1b[r")
)

// writeInt writes a non-negative integer without allocation
func writeInt(w *bufio.Writer, n int) {
	if n < 0 {
		n = 0
	}
	if n < 10 {
		w.WriteByte(byte(n) + '0')
		return
	}
	if n < 100 {
		w.WriteByte(byte(n/10) + '0')
		w.WriteByte(byte(n%10) + '0')
		return
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte(n%10) + '0'
		n /= 10
	}
	w.Write(buf[i:])
}

// writeCSI1 writes CSI n <final>
func writeCSI1(w *bufio.Writer, n int, final byte) {
	w.Write(csi)
	writeInt(w, n)
	w.WriteByte(final)
}

// writeCSI2 writes CSI a ; b <final>
func writeCSI2(w *bufio.Writer, a, b int, final byte) {
	w.Write(csi)
	writeInt(w, a)
	w.WriteByte(';')
	writeInt(w, b)
	w.WriteByte(final)
}

// writeColor writes the SGR parameters for one color; base is 30 (fg) or 40 (bg)
func writeColor(w *bufio.Writer, c Color, base int, mode ColorMode) {
	w.WriteByte(';')
	switch {
	case c.IsDefault():
		writeInt(w, base+9)
	case c.IsRGB() && mode == ColorModeTrueColor:
		r, g, b := c.RGB()
		writeInt(w, base+8)
		w.WriteString(";2;")
		writeInt(w, int(r))
		w.WriteByte(';')
		writeInt(w, int(g))
		w.WriteByte(';')
		writeInt(w, int(b))
	default:
		writeInt(w, base+8)
		w.WriteString(";5;")
		writeInt(w, int(c.Index()))
	}
}

// sgrAttrCodes in bit order of Attr
var sgrAttrCodes = [...]byte{'1', '2', '3', '4', '5', '7'}

// writeStyle writes a full SGR sequence: reset, attributes, fg, bg
func writeStyle(w *bufio.Writer, s Style, mode ColorMode) {
	w.Write(csi)
	w.WriteByte('0')
	for i, code := range sgrAttrCodes {
		if s.Attrs&(1<<i) != 0 {
			w.WriteByte(';')
			w.WriteByte(code)
		}
	}
	if !s.Fg.IsDefault() {
		writeColor(w, s.Fg, 30, mode)
	}
	if !s.Bg.IsDefault() {
		writeColor(w, s.Bg, 40, mode)
	}
	w.WriteByte('m')
}
