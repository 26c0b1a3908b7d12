package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func fieldAt(text string, cursor int) *FieldState {
	f := &FieldState{}
	f.SetValue(text)
	f.Cursor = cursor
	return f
}

func TestFieldInsertAndDelete(t *testing.T) {
	f := fieldAt("ac", 1)
	f.Insert('b')
	assert.Equal(t, "abc", f.Value())
	assert.Equal(t, 2, f.Cursor)

	assert.True(t, f.DeleteForward())
	assert.Equal(t, "ab", f.Value())
	assert.False(t, f.DeleteForward(), "nothing under the cursor")

	assert.True(t, f.DeleteBackward())
	assert.Equal(t, "a", f.Value())
	assert.Equal(t, 1, f.Cursor)

	f.Cursor = 0
	assert.False(t, f.DeleteBackward())
	assert.False(t, f.DeleteToStart())
	assert.True(t, f.DeleteToEnd())
	assert.Empty(t, f.Value())
	assert.False(t, f.DeleteToEnd())
}

func TestFieldInsertKeepsTail(t *testing.T) {
	f := fieldAt("xyz", 0)
	f.Insert('1')
	f.Insert('2')
	assert.Equal(t, "12xyz", f.Value())
	assert.Equal(t, 2, f.Cursor)
}

func TestFieldDeleteWordBackward(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		cursor int
		want   string
		at     int
	}{
		{"word", "foo bar", 7, "foo ", 4},
		{"trailing separators", "foo bar  ", 9, "foo ", 4},
		{"mid word", "foo barbaz", 7, "foo baz", 4},
		{"only separators", "(( ", 3, "", 0},
		{"regexp punctuation", "level=err.*", 11, "level=", 6},
		{"underscore is word", "a my_key", 8, "a ", 2},
	}
	for _, tt := range tests {
		f := fieldAt(tt.text, tt.cursor)
		assert.True(t, f.DeleteWordBackward(), tt.name)
		assert.Equal(t, tt.want, f.Value(), tt.name)
		assert.Equal(t, tt.at, f.Cursor, tt.name)
	}

	f := fieldAt("abc", 0)
	assert.False(t, f.DeleteWordBackward())
	assert.Equal(t, "abc", f.Value())
}

func TestFieldWordMotion(t *testing.T) {
	f := fieldAt("foo  bar_1 .baz", 0)

	f.MoveWordRight()
	assert.Equal(t, 5, f.Cursor)
	f.MoveWordRight()
	assert.Equal(t, 12, f.Cursor)
	f.MoveWordRight()
	assert.Equal(t, 15, f.Cursor)
	f.MoveWordRight()
	assert.Equal(t, 15, f.Cursor, "stays at end")

	f.MoveWordLeft()
	assert.Equal(t, 12, f.Cursor)
	f.MoveWordLeft()
	assert.Equal(t, 5, f.Cursor)
	f.MoveWordLeft()
	assert.Equal(t, 0, f.Cursor)
	f.MoveWordLeft()
	assert.Equal(t, 0, f.Cursor, "stays at start")

	f.MoveLeft()
	assert.Equal(t, 0, f.Cursor)
	f.Cursor = len(f.Text)
	f.MoveRight()
	assert.Equal(t, 15, f.Cursor)
}

func TestFieldAdjustScroll(t *testing.T) {
	f := fieldAt("0123456789", 10)
	f.AdjustScroll(4)
	assert.Equal(t, 7, f.Scroll, "cursor in the last column")

	f.Cursor = 2
	f.AdjustScroll(4)
	assert.Equal(t, 2, f.Scroll)

	f.AdjustScroll(0)
	assert.Equal(t, 2, f.Scroll, "zero width leaves scroll alone")

	f.Cursor = 0
	assert.False(t, f.DeleteToStart())
	f.Cursor = 5
	assert.True(t, f.DeleteToStart())
	assert.Equal(t, "56789", f.Value())
	assert.Zero(t, f.Scroll)
}
