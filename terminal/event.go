package terminal

import (
	"fmt"
	"strconv"
)

// Event is a decoded terminal or application occurrence.
// The set of variants is closed: KeyEvent, CharEvent, ResizeEvent,
// SignalEvent, ErrorEvent and AppEvent
type Event interface {
	isEvent()
	String() string
}

// KeyEvent is a named key press
type KeyEvent struct {
	Key Key
	Mod Modifier
}

// CharEvent is a character key press. Control bytes without a named key
// arrive verbatim with Mod unset
type CharEvent struct {
	Char rune
	Mod  Modifier
}

// ResizeEvent reports new terminal dimensions in cells
type ResizeEvent struct {
	Width  int
	Height int
}

// SignalEvent reports a delivered termination-class process signal
type SignalEvent struct {
	Signal Signal
}

// ErrorEvent carries a fault captured on a worker goroutine
type ErrorEvent struct {
	Err error
}

// AppEvent carries an application-defined payload posted back into the
// event stream
type AppEvent struct {
	Payload any
}

func (KeyEvent) isEvent()    {}
func (CharEvent) isEvent()   {}
func (ResizeEvent) isEvent() {}
func (SignalEvent) isEvent() {}
func (ErrorEvent) isEvent()  {}
func (AppEvent) isEvent()    {}

func (e KeyEvent) String() string {
	return "key:" + e.Mod.String() + e.Key.String()
}

func (e CharEvent) String() string {
	if e.Char < 0x20 || e.Char == 0x7f {
		return fmt.Sprintf("char:%s0x%02x", e.Mod, e.Char)
	}
	return "char:" + e.Mod.String() + strconv.QuoteRune(e.Char)
}

func (e ResizeEvent) String() string {
	return fmt.Sprintf("resize:%dx%d", e.Width, e.Height)
}

func (e SignalEvent) String() string {
	return "signal:" + e.Signal.String()
}

func (e ErrorEvent) String() string {
	if e.Err == nil {
		return "error:<nil>"
	}
	return "error:" + e.Err.Error()
}

func (e AppEvent) String() string {
	return fmt.Sprintf("app:%v", e.Payload)
}

// Signal identifies a termination-class signal by its POSIX number
type Signal int

const (
	SignalHangup    Signal = 1
	SignalInterrupt Signal = 2
	SignalQuit      Signal = 3
	SignalTerminate Signal = 15
)

// ExitCode returns the conventional shell exit status for death by this signal
func (s Signal) ExitCode() int {
	return 128 + int(s)
}

func (s Signal) String() string {
	switch s {
	case SignalHangup:
		return "SIGHUP"
	case SignalInterrupt:
		return "SIGINT"
	case SignalQuit:
		return "SIGQUIT"
	case SignalTerminate:
		return "SIGTERM"
	}
	return "signal(" + strconv.Itoa(int(s)) + ")"
}

// ExitCode returns the exit status for a process terminated by this event's signal
func (e SignalEvent) ExitCode() int {
	return e.Signal.ExitCode()
}

// withMod returns a copy of a key or char event with extra modifiers set
func withMod(ev Event, mod Modifier) Event {
	switch e := ev.(type) {
	case KeyEvent:
		e.Mod |= mod
		return e
	case CharEvent:
		e.Mod |= mod
		return e
	}
	return ev
}
