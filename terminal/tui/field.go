package tui

import "unicode"

// isWordChar reports word-constituent runes for word motion and deletion
func isWordChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// FieldState is the editable text behind a LineInput. Cursor and Scroll
// are rune indices; Cursor sits before Text[Cursor]
type FieldState struct {
	Text   []rune
	Cursor int
	Scroll int // first visible rune
}

// Value returns the text
func (f *FieldState) Value() string {
	return string(f.Text)
}

// SetValue replaces the text and puts the cursor at the end
func (f *FieldState) SetValue(s string) {
	f.Text = []rune(s)
	f.Cursor = len(f.Text)
	f.Scroll = 0
}

// Insert adds r before the cursor
func (f *FieldState) Insert(r rune) {
	f.Text = append(f.Text, 0)
	copy(f.Text[f.Cursor+1:], f.Text[f.Cursor:])
	f.Text[f.Cursor] = r
	f.Cursor++
}

// DeleteBackward removes the rune before the cursor
func (f *FieldState) DeleteBackward() bool {
	if f.Cursor == 0 {
		return false
	}
	f.Text = append(f.Text[:f.Cursor-1], f.Text[f.Cursor:]...)
	f.Cursor--
	return true
}

// DeleteForward removes the rune under the cursor
func (f *FieldState) DeleteForward() bool {
	if f.Cursor >= len(f.Text) {
		return false
	}
	f.Text = append(f.Text[:f.Cursor], f.Text[f.Cursor+1:]...)
	return true
}

// DeleteWordBackward removes the separators and the word before the cursor
func (f *FieldState) DeleteWordBackward() bool {
	if f.Cursor == 0 {
		return false
	}
	start := f.wordLeft(f.Cursor)
	f.Text = append(f.Text[:start], f.Text[f.Cursor:]...)
	f.Cursor = start
	return true
}

// DeleteToStart removes everything before the cursor
func (f *FieldState) DeleteToStart() bool {
	if f.Cursor == 0 {
		return false
	}
	f.Text = append(f.Text[:0], f.Text[f.Cursor:]...)
	f.Cursor = 0
	f.Scroll = 0
	return true
}

// DeleteToEnd removes everything from the cursor on
func (f *FieldState) DeleteToEnd() bool {
	if f.Cursor >= len(f.Text) {
		return false
	}
	f.Text = f.Text[:f.Cursor]
	return true
}

func (f *FieldState) MoveLeft() {
	if f.Cursor > 0 {
		f.Cursor--
	}
}

func (f *FieldState) MoveRight() {
	if f.Cursor < len(f.Text) {
		f.Cursor++
	}
}

// MoveWordLeft moves to the start of the previous word
func (f *FieldState) MoveWordLeft() {
	f.Cursor = f.wordLeft(f.Cursor)
}

// MoveWordRight moves past the current word and the separators after it
func (f *FieldState) MoveWordRight() {
	i := f.Cursor
	for i < len(f.Text) && isWordChar(f.Text[i]) {
		i++
	}
	for i < len(f.Text) && !isWordChar(f.Text[i]) {
		i++
	}
	f.Cursor = i
}

// wordLeft skips separators then word runes backwards from i
func (f *FieldState) wordLeft(i int) int {
	for i > 0 && !isWordChar(f.Text[i-1]) {
		i--
	}
	for i > 0 && isWordChar(f.Text[i-1]) {
		i--
	}
	return i
}

// AdjustScroll keeps the cursor inside a window width runes wide
func (f *FieldState) AdjustScroll(width int) {
	if width <= 0 {
		return
	}
	if f.Cursor < f.Scroll {
		f.Scroll = f.Cursor
	}
	if f.Cursor >= f.Scroll+width {
		f.Scroll = f.Cursor - width + 1
	}
	f.Scroll = max(f.Scroll, 0)
}
