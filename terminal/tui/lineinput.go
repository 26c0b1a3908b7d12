package tui

import (
	"fmt"

	"github.com/lixenwraith/logpager/terminal"
)

// InputAction classifies a LineInput notification
type InputAction uint8

const (
	InputChanged InputAction = iota
	InputCommitted
	InputCancelled
)

func (a InputAction) String() string {
	switch a {
	case InputChanged:
		return "changed"
	case InputCommitted:
		return "committed"
	case InputCancelled:
		return "cancelled"
	}
	return fmt.Sprintf("action(%d)", uint8(a))
}

// InputEvent is the AppEvent payload posted by a LineInput
type InputEvent struct {
	Source string // LineInput name
	Action InputAction
	Text   string
}

func (e InputEvent) String() string {
	return fmt.Sprintf("%s %s %q", e.Source, e.Action, e.Text)
}

// LineInput is a single-line editor driven by an event batch. While active
// it claims the keys it understands and posts InputEvents for edits,
// Enter and Escape; everything else is left for later handlers
type LineInput struct {
	Name   string
	Prompt string

	field  FieldState
	active bool
	post   func(terminal.Event)
}

// NewLineInput creates an inactive input that reports through post
func NewLineInput(name, prompt string, post func(terminal.Event)) *LineInput {
	return &LineInput{Name: name, Prompt: prompt, post: post}
}

// Activate starts editing with initial text
func (l *LineInput) Activate(initial string) {
	l.field.SetValue(initial)
	l.active = true
}

// Deactivate stops editing without posting
func (l *LineInput) Deactivate() {
	l.active = false
}

// Active reports whether the input is taking keys
func (l *LineInput) Active() bool {
	return l.active
}

// Value returns the current text
func (l *LineInput) Value() string {
	return l.field.Value()
}

// Cursor returns the cursor index in runes
func (l *LineInput) Cursor() int {
	return l.field.Cursor
}

// Handle claims the batch items the input consumes
func (l *LineInput) Handle(b *terminal.Batch) {
	for it := range b.All() {
		if !l.active {
			return
		}
		consumed, edited := l.handleEvent(it.Event)
		if !consumed {
			continue
		}
		it.Claim()
		if edited {
			l.notify(InputChanged)
		}
	}
}

// handleEvent applies one event to the field
func (l *LineInput) handleEvent(ev terminal.Event) (consumed, edited bool) {
	f := &l.field
	switch e := ev.(type) {
	case terminal.CharEvent:
		switch {
		case e.Mod == terminal.ModNone && e.Char >= 0x20 && e.Char < 0x7f:
			f.Insert(e.Char)
			return true, true
		case e.Mod == terminal.ModCtrl:
			switch e.Char {
			case 'u':
				return true, f.DeleteToStart()
			case 'k':
				return true, f.DeleteToEnd()
			case 'w':
				return true, f.DeleteWordBackward()
			case 'a':
				f.Cursor = 0
				return true, false
			case 'e':
				f.Cursor = len(f.Text)
				return true, false
			}
		case e.Mod == terminal.ModAlt:
			switch e.Char {
			case 'b':
				f.MoveWordLeft()
				return true, false
			case 'f':
				f.MoveWordRight()
				return true, false
			}
		}

	case terminal.KeyEvent:
		switch e.Key {
		case terminal.KeyBackspace:
			if e.Mod&terminal.ModAlt != 0 {
				return true, f.DeleteWordBackward()
			}
			return true, f.DeleteBackward()
		case terminal.KeyDelete:
			return true, f.DeleteForward()
		case terminal.KeyLeft:
			if e.Mod&terminal.ModCtrl != 0 {
				f.MoveWordLeft()
			} else {
				f.MoveLeft()
			}
			return true, false
		case terminal.KeyRight:
			if e.Mod&terminal.ModCtrl != 0 {
				f.MoveWordRight()
			} else {
				f.MoveRight()
			}
			return true, false
		case terminal.KeyHome:
			f.Cursor = 0
			return true, false
		case terminal.KeyEnd:
			f.Cursor = len(f.Text)
			return true, false
		case terminal.KeyEnter:
			l.active = false
			l.notify(InputCommitted)
			return true, false
		case terminal.KeyEscape:
			l.active = false
			l.notify(InputCancelled)
			return true, false
		}
	}
	return false, false
}

func (l *LineInput) notify(action InputAction) {
	if l.post != nil {
		l.post(terminal.AppEvent{Payload: InputEvent{Source: l.Name, Action: action, Text: l.field.Value()}})
	}
}

// Render draws the prompt and text on row y, the cursor shown in reverse video
func (l *LineInput) Render(r Renderer, y, width int, style terminal.Style) {
	r.MoveTo(0, y)
	r.SetStyle(style)
	r.ClearToEOL()
	if width <= 0 {
		return
	}

	prompt := Truncate(l.Prompt, width)
	r.Print(prompt)
	avail := width - CellWidth(prompt) - 1
	if avail <= 0 {
		return
	}

	f := &l.field
	f.AdjustScroll(avail)
	end := min(len(f.Text), f.Scroll+avail)
	before := string(f.Text[f.Scroll:f.Cursor])
	r.Print(before)

	cursorStyle := style
	cursorStyle.Attrs ^= terminal.AttrReverse
	r.SetStyle(cursorStyle)
	if f.Cursor < len(f.Text) {
		r.Print(string(f.Text[f.Cursor]))
		r.SetStyle(style)
		if f.Cursor+1 < end {
			r.Print(string(f.Text[f.Cursor+1 : end]))
		}
	} else {
		r.Print(" ")
		r.SetStyle(style)
	}
}
