//go:build unix

package terminal

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"
)

// tcellBackend uses tcell's Tty for device handling: /dev/tty raw mode,
// SIGWINCH and drain-based read cancellation. tty is set once by Init and
// never cleared, so the reader may use it without locking
type tcellBackend struct {
	open     func() (tcell.Tty, error)
	tty      tcell.Tty
	buf      []byte
	draining atomic.Bool
	stopped  atomic.Bool
}

func newTcellBackend() Backend {
	return newTcellBackendWith(tcell.NewDevTty)
}

func newTcellBackendWith(open func() (tcell.Tty, error)) *tcellBackend {
	return &tcellBackend{open: open, buf: make([]byte, 4096)}
}

func (b *tcellBackend) Init() error {
	tty, err := b.open()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNotTerminal, err)
	}
	if err := tty.Start(); err != nil {
		tty.Close()
		return fmt.Errorf("start tty: %w", err)
	}
	b.tty = tty
	return nil
}

func (b *tcellBackend) Fini() error {
	if b.tty == nil || !b.stopped.CompareAndSwap(false, true) {
		return nil
	}
	b.tty.NotifyResize(nil)
	b.draining.Store(true)
	var errs []error
	errs = append(errs, b.tty.Drain())
	errs = append(errs, b.tty.Stop())
	// Stop already released the device; the close error is expected
	b.tty.Close()
	return errors.Join(errs...)
}

func (b *tcellBackend) Size() (int, int) {
	if b.tty == nil || b.stopped.Load() {
		return 80, 24
	}
	ws, err := b.tty.WindowSize()
	if err != nil || ws.Width <= 0 || ws.Height <= 0 {
		return 80, 24
	}
	return ws.Width, ws.Height
}

func (b *tcellBackend) Write(p []byte) (int, error) {
	return b.tty.Write(p)
}

func (b *tcellBackend) Read() ([]byte, error) {
	if b.draining.Load() {
		return nil, ErrReadCanceled
	}
	n, err := b.tty.Read(b.buf)
	if n > 0 {
		ret := make([]byte, n)
		copy(ret, b.buf[:n])
		return ret, nil
	}
	switch {
	case b.draining.Load(), errors.Is(err, os.ErrDeadlineExceeded):
		return nil, ErrReadCanceled
	case err != nil:
		return nil, err
	}
	return nil, io.EOF
}

// CancelRead drains the tty, which makes a pending Read return immediately
func (b *tcellBackend) CancelRead() bool {
	if b.tty == nil || b.stopped.Load() {
		return false
	}
	b.draining.Store(true)
	return b.tty.Drain() == nil
}

func (b *tcellBackend) SetResizeHandler(handler func(width, height int)) {
	b.tty.NotifyResize(func() {
		if b.stopped.Load() {
			return
		}
		w, h := b.Size()
		handler(w, h)
	})
}
