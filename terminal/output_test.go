package terminal

import (
	"bytes"
	"testing"
)

// countingWriter records each Write call
type countingWriter struct {
	bytes.Buffer
	writes int
}

func (w *countingWriter) Write(p []byte) (int, error) {
	w.writes++
	return w.Buffer.Write(p)
}

func TestOutputSequences(t *testing.T) {
	tests := []struct {
		name string
		fn   func(o *Output)
		want string
	}{
		{"move", func(o *Output) { o.MoveTo(4, 2) }, "\x1b[3;5H"},
		{"move large", func(o *Output) { o.MoveTo(1199, 0) }, "\x1b[1;1200H"},
		{"clear line", func(o *Output) { o.ClearLine() }, "\x1b[2K"},
		{"clear eol", func(o *Output) { o.ClearToEOL() }, "\x1b[K"},
		{"insert", func(o *Output) { o.InsertChars(3) }, "\x1b[3@"},
		{"delete", func(o *Output) { o.DeleteChars(2) }, "\x1b[2P"},
		{"insert zero", func(o *Output) { o.InsertChars(0) }, ""},
		{"margins", func(o *Output) { o.SetScrollMargins(1, 10) }, "\x1b[2;10r"},
		{"shift up", func(o *Output) { o.ShiftRegion(0, 5, 2) }, "\x1b[1;5r\x1b[2S\x1b[r"},
		{"shift down", func(o *Output) { o.ShiftRegion(2, 8, -3) }, "\x1b[3;8r\x1b[3T\x1b[r"},
		{"shift none", func(o *Output) { o.ShiftRegion(0, 5, 0) }, ""},
		{"style", func(o *Output) {
			o.SetStyle(Style{Fg: PaletteColor(196), Bg: RGBColor(0, 0, 0), Attrs: AttrBold | AttrReverse})
		}, "\x1b[0;1;7;38;5;196;48;5;16m"},
		{"style coalesced", func(o *Output) {
			o.SetStyle(Style{Attrs: AttrBold})
			o.SetStyle(Style{Attrs: AttrBold})
		}, "\x1b[0;1m"},
		{"print", func(o *Output) { o.Print("héllo") }, "héllo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			o := NewOutput(&buf, ColorMode256)
			tt.fn(o)
			if err := o.Flush(); err != nil {
				t.Fatal(err)
			}
			if got := buf.String(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOutputTrueColor(t *testing.T) {
	var buf bytes.Buffer
	o := NewOutput(&buf, ColorModeTrueColor)
	o.SetStyle(Style{Fg: RGBColor(10, 20, 30)})
	o.Flush()
	if got, want := buf.String(), "\x1b[0;38;2;10;20;30m"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

// TestOutputFlushSingleWrite checks batching and the empty no-op
func TestOutputFlushSingleWrite(t *testing.T) {
	w := &countingWriter{}
	o := NewOutput(w, ColorMode256)

	if err := o.Flush(); err != nil {
		t.Fatal(err)
	}
	if w.writes != 0 {
		t.Errorf("Expected no write on empty flush, got %d", w.writes)
	}

	for y := 0; y < 50; y++ {
		o.MoveTo(0, y)
		o.ClearToEOL()
		o.Print("line")
	}
	if o.Pending() == 0 {
		t.Fatal("Expected pending bytes before flush")
	}
	o.Flush()
	if w.writes != 1 {
		t.Errorf("Expected 1 write, got %d", w.writes)
	}
	if o.Pending() != 0 {
		t.Errorf("Expected nothing pending after flush, got %d", o.Pending())
	}
}

func TestRGBTo256(t *testing.T) {
	tests := []struct {
		r, g, b uint8
		want    uint8
	}{
		{0, 0, 0, 16},
		{255, 255, 255, 231},
		{255, 0, 0, 196},
		{0, 0, 255, 21},
		{128, 128, 128, 244},
	}
	for _, tt := range tests {
		if got := RGBColor(tt.r, tt.g, tt.b).Index(); got != tt.want {
			t.Errorf("RGB(%d,%d,%d) -> %d, want %d", tt.r, tt.g, tt.b, got, tt.want)
		}
	}
}
