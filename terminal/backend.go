package terminal

import (
	"errors"
	"fmt"
	"io"
)

// ErrReadCanceled is returned by Backend.Read after CancelRead
var ErrReadCanceled = errors.New("terminal: read canceled")

// Backend abstracts the terminal device: raw mode, size, byte I/O and
// resize notification
type Backend interface {
	// Init enters raw mode. Returns ErrNotTerminal when no interactive device is available
	Init() error
	// Fini restores the device mode captured by Init
	Fini() error

	// Size returns current terminal dimensions in cells
	Size() (width, height int)

	// Write writes raw bytes to the terminal output
	io.Writer

	// Read blocks until input is available and returns a chunk owned by the caller.
	// Returns ErrReadCanceled after CancelRead and io.EOF when input is closed
	Read() ([]byte, error)

	// CancelRead unblocks a pending Read. Reports whether cancellation succeeded
	CancelRead() bool

	// SetResizeHandler registers a callback for terminal resize events
	SetResizeHandler(handler func(width, height int))
}

// Backend names accepted by NewBackend
const (
	BackendNative = "native"
	BackendTcell  = "tcell"
)

// NewBackend creates a backend by name; empty selects the native backend
func NewBackend(name string) (Backend, error) {
	switch name {
	case "", BackendNative:
		return newNativeBackend(), nil
	case BackendTcell:
		return newTcellBackend(), nil
	}
	return nil, fmt.Errorf("unknown terminal backend %q", name)
}
