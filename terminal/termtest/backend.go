// Package termtest provides an in-memory terminal backend for tests.
package termtest

import (
	"bytes"
	"io"
	"sync"

	"github.com/lixenwraith/logpager/terminal"
)

// Backend is a scriptable terminal.Backend. Input is supplied with Type,
// output is captured and readable with Output
type Backend struct {
	// NotInteractive makes Init fail like a redirected device
	NotInteractive bool

	mu       sync.Mutex
	width    int
	height   int
	out      bytes.Buffer
	raw      bool
	inited   int
	finied   int
	onResize func(w, h int)

	input    chan []byte
	cancel   chan struct{}
	canceled bool
}

// New creates a backend reporting the given size
func New(width, height int) *Backend {
	return &Backend{
		width:  width,
		height: height,
		input:  make(chan []byte, 64),
		cancel: make(chan struct{}),
	}
}

func (b *Backend) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.NotInteractive {
		return terminal.ErrNotTerminal
	}
	b.raw = true
	b.inited++
	return nil
}

func (b *Backend) Fini() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.raw = false
	b.finied++
	return nil
}

func (b *Backend) Size() (int, int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.width, b.height
}

func (b *Backend) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.out.Write(p)
}

func (b *Backend) Read() ([]byte, error) {
	select {
	case chunk, ok := <-b.input:
		if !ok {
			return nil, io.EOF
		}
		return chunk, nil
	case <-b.cancel:
		return nil, terminal.ErrReadCanceled
	}
}

func (b *Backend) CancelRead() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.canceled {
		b.canceled = true
		close(b.cancel)
	}
	return true
}

func (b *Backend) SetResizeHandler(handler func(w, h int)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.onResize = handler
}

// Type delivers one input chunk to the reader
func (b *Backend) Type(s string) {
	b.input <- []byte(s)
}

// CloseInput ends the input stream with EOF
func (b *Backend) CloseInput() {
	close(b.input)
}

// Resize changes the reported size and fires the resize handler
func (b *Backend) Resize(w, h int) {
	b.mu.Lock()
	b.width, b.height = w, h
	handler := b.onResize
	b.mu.Unlock()
	if handler != nil {
		handler(w, h)
	}
}

// Output returns everything written so far
func (b *Backend) Output() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.out.String()
}

// ResetOutput discards captured output
func (b *Backend) ResetOutput() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.out.Reset()
}

// Raw reports whether the backend is in raw mode
func (b *Backend) Raw() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.raw
}

// Calls returns how many times Init and Fini ran
func (b *Backend) Calls() (inits, finis int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.inited, b.finied
}
