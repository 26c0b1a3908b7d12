package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		tab  int
		want string
	}{
		{"plain", "hello", 8, "hello"},
		{"sgr", "\x1b[1;31mERROR\x1b[0m done", 8, "ERROR done"},
		{"osc", "\x1b]0;title\x07text", 8, "text"},
		{"tab stops", "a\tb", 4, "a   b"},
		{"tab at stop", "abcd\te", 4, "abcd    e"},
		{"default tab", "\tx", 0, "        x"},
		{"controls", "a\rb\x00c\x7fd", 8, "abcd"},
		{"bell", "ding\x07", 8, "ding"},
		{"invalid utf8", "a\xffb", 8, "ab"},
		{"unicode kept", "héllo 世界", 8, "héllo 世界"},
		{"tab after wide", "世\tx", 4, "世  x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.in, tt.tab))
		})
	}
}

func TestClip(t *testing.T) {
	assert.Equal(t, "abc", Clip("abcdef", 0, 3))
	assert.Equal(t, "cde", Clip("abcdef", 2, 3))
	assert.Equal(t, "", Clip("abc", 5, 3))
	assert.Equal(t, "", Clip("abc", 0, 0))
	// Wide rune straddling either edge becomes spaces
	assert.Equal(t, " b", Clip("世b", 1, 3))
	assert.Equal(t, "a ", Clip("a世", 0, 2))
	assert.Equal(t, "a世", Clip("a世b", 0, 3))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abc", 3))
	assert.Equal(t, "ab…", Truncate("abcdef", 3))
	assert.Equal(t, "…ef", TruncateLeft("abcdef", 3))
	assert.Equal(t, "ab  ", PadRight("ab", 4))
}
