package pager

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/logpager/terminal"
)

func TestKeyMapDefaults(t *testing.T) {
	km, err := NewKeyMap(nil)
	require.NoError(t, err)

	tests := []struct {
		ev   terminal.Event
		want Action
	}{
		{terminal.CharEvent{Char: 'q'}, ActionQuit},
		{terminal.CharEvent{Char: 'c', Mod: terminal.ModCtrl}, ActionQuit},
		{terminal.KeyEvent{Key: terminal.KeyDown}, ActionDown},
		{terminal.KeyEvent{Key: terminal.KeyEnter}, ActionDown},
		{terminal.CharEvent{Char: ' '}, ActionPageDown},
		{terminal.CharEvent{Char: 'G'}, ActionBottom},
		{terminal.CharEvent{Char: 'g'}, ActionTop},
		{terminal.CharEvent{Char: '\\'}, ActionClearFilter},
		{terminal.CharEvent{Char: 'F'}, ActionFollow},
		{terminal.CharEvent{Char: 'l', Mod: terminal.ModCtrl}, ActionRedraw},
	}
	for _, tt := range tests {
		got, ok := km.Lookup(tt.ev)
		assert.True(t, ok, tt.ev.String())
		assert.Equal(t, tt.want, got, tt.ev.String())
	}

	_, ok := km.Lookup(terminal.CharEvent{Char: 'z'})
	assert.False(t, ok)
	_, ok = km.Lookup(terminal.KeyEvent{Key: terminal.KeyDown, Mod: terminal.ModShift})
	assert.False(t, ok)
}

func TestKeyMapOverrides(t *testing.T) {
	km, err := NewKeyMap(map[string][]string{"quit": {"x", "alt_q"}})
	require.NoError(t, err)

	_, ok := km.Lookup(terminal.CharEvent{Char: 'q'})
	assert.False(t, ok, "override replaces the defaults")
	got, ok := km.Lookup(terminal.CharEvent{Char: 'q', Mod: terminal.ModAlt})
	assert.True(t, ok)
	assert.Equal(t, ActionQuit, got)
	assert.Equal(t, []string{"x", "alt_q"}, km.Keys(ActionQuit))
}

func TestKeyMapRejectsBadConfig(t *testing.T) {
	_, err := NewKeyMap(map[string][]string{"launch": {"x"}})
	assert.ErrorContains(t, err, "unknown action")

	_, err = NewKeyMap(map[string][]string{"quit": {"hyper_q"}})
	assert.ErrorContains(t, err, "keys.quit")
}
