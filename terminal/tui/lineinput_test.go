package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/logpager/terminal"
)

type postRecorder struct {
	events []InputEvent
}

func (p *postRecorder) post(ev terminal.Event) {
	if app, ok := ev.(terminal.AppEvent); ok {
		if ie, ok := app.Payload.(InputEvent); ok {
			p.events = append(p.events, ie)
		}
	}
}

func batchOf(evs ...terminal.Event) *terminal.Batch {
	b := terminal.NewBatch(len(evs))
	for _, ev := range evs {
		b.Add(ev)
	}
	return b
}

func chars(s string) []terminal.Event {
	evs := make([]terminal.Event, 0, len(s))
	for _, c := range s {
		evs = append(evs, terminal.CharEvent{Char: c})
	}
	return evs
}

func TestLineInputTypingPostsChanges(t *testing.T) {
	rec := &postRecorder{}
	in := NewLineInput("filter", "/", rec.post)
	in.Activate("")

	b := batchOf(chars("err")...)
	in.Handle(b)

	assert.Equal(t, "err", in.Value())
	assert.Equal(t, 0, b.Unclaimed())
	require.Len(t, rec.events, 3)
	assert.Equal(t, InputEvent{Source: "filter", Action: InputChanged, Text: "e"}, rec.events[0])
	assert.Equal(t, "err", rec.events[2].Text)
}

func TestLineInputEditing(t *testing.T) {
	rec := &postRecorder{}
	in := NewLineInput("filter", "/", rec.post)
	in.Activate("foo bar")

	in.Handle(batchOf(
		terminal.KeyEvent{Key: terminal.KeyBackspace},
		terminal.KeyEvent{Key: terminal.KeyHome},
		terminal.CharEvent{Char: 'x'},
		terminal.KeyEvent{Key: terminal.KeyEnd},
		terminal.KeyEvent{Key: terminal.KeyLeft},
		terminal.KeyEvent{Key: terminal.KeyDelete},
	))
	assert.Equal(t, "xfoo b", in.Value())

	in.Handle(batchOf(terminal.CharEvent{Char: 'w', Mod: terminal.ModCtrl}))
	assert.Equal(t, "xfoo ", in.Value())

	in.Handle(batchOf(terminal.CharEvent{Char: 'u', Mod: terminal.ModCtrl}))
	assert.Equal(t, "", in.Value())
	assert.Equal(t, 0, in.Cursor())

	// Cursor moves alone post nothing
	n := len(rec.events)
	in.Handle(batchOf(terminal.KeyEvent{Key: terminal.KeyLeft}))
	assert.Len(t, rec.events, n)
}

func TestLineInputCommitStopsClaiming(t *testing.T) {
	rec := &postRecorder{}
	in := NewLineInput("filter", "/", rec.post)
	in.Activate("x")

	b := batchOf(terminal.KeyEvent{Key: terminal.KeyEnter}, terminal.CharEvent{Char: 'j'})
	in.Handle(b)

	assert.False(t, in.Active())
	assert.Equal(t, 1, b.Unclaimed(), "keys after Enter belong to the next handler")
	require.Len(t, rec.events, 1)
	assert.Equal(t, InputCommitted, rec.events[0].Action)
	assert.Equal(t, "x", rec.events[0].Text)
}

func TestLineInputCancelAndFallThrough(t *testing.T) {
	rec := &postRecorder{}
	in := NewLineInput("filter", "/", rec.post)
	in.Activate("abc")

	b := batchOf(
		terminal.KeyEvent{Key: terminal.KeyPageDown},
		terminal.CharEvent{Char: 'c', Mod: terminal.ModCtrl},
		terminal.KeyEvent{Key: terminal.KeyEscape},
	)
	in.Handle(b)

	assert.Equal(t, 2, b.Unclaimed())
	require.Len(t, rec.events, 1)
	assert.Equal(t, InputCancelled, rec.events[0].Action)
}

func TestLineInputInactiveIgnores(t *testing.T) {
	in := NewLineInput("filter", "/", nil)
	b := batchOf(chars("abc")...)
	in.Handle(b)
	assert.Equal(t, 3, b.Unclaimed())
}

func TestStatusLineRender(t *testing.T) {
	r := &fakeRenderer{}
	s := &StatusLine{Source: "app.log", Line: 5, Total: 10, Lines: 40, Filter: "err", Follow: true}
	assert.Equal(t, "FOLLOW  5/10 of 40 ", s.Right())
	assert.Equal(t, " app.log  /err", s.Left())

	s.Render(r, 9, 40, nil)
	printed := r.printed()
	require.NotEmpty(t, printed)

	s.Error = "watch failed"
	r.reset()
	s.Render(r, 9, 60, nil)
	assert.Contains(t, r.printed()[1], "! watch failed")
}
