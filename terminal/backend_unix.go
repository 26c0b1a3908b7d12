//go:build unix

package terminal

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/muesli/cancelreader"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// nativeBackend drives the controlling terminal directly through termios
// and ioctl. When stdin is redirected (piped logs) it reads keys from /dev/tty
type nativeBackend struct {
	in      *os.File
	out     *os.File
	tty     *os.File // opened /dev/tty, nil when stdin/stdout are used
	inFd    int
	outFd   int
	oldTerm *term.State
	reader  cancelreader.CancelReader
	buf     []byte

	resizeMu     sync.Mutex
	resizeStopCh chan struct{}
	resizeDoneCh chan struct{}
}

func newNativeBackend() Backend {
	return &nativeBackend{buf: make([]byte, 4096)}
}

func (b *nativeBackend) Init() error {
	b.in, b.out = os.Stdin, os.Stdout
	if !term.IsTerminal(int(b.in.Fd())) || !term.IsTerminal(int(b.out.Fd())) {
		tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrNotTerminal, err)
		}
		b.tty = tty
		if !term.IsTerminal(int(b.in.Fd())) {
			b.in = tty
		}
		if !term.IsTerminal(int(b.out.Fd())) {
			b.out = tty
		}
	}
	b.inFd = int(b.in.Fd())
	b.outFd = int(b.out.Fd())
	if !term.IsTerminal(b.inFd) {
		b.closeTTY()
		return ErrNotTerminal
	}

	old, err := term.MakeRaw(b.inFd)
	if err != nil {
		b.closeTTY()
		return fmt.Errorf("enter raw mode: %w", err)
	}
	b.oldTerm = old

	reader, err := cancelreader.NewReader(b.in)
	if err != nil {
		term.Restore(b.inFd, old)
		b.closeTTY()
		return fmt.Errorf("input reader: %w", err)
	}
	b.reader = reader
	return nil
}

func (b *nativeBackend) Fini() error {
	b.resizeMu.Lock()
	if b.resizeStopCh != nil {
		close(b.resizeStopCh)
		<-b.resizeDoneCh
		b.resizeStopCh = nil
	}
	b.resizeMu.Unlock()

	var errs []error
	if b.reader != nil {
		b.reader.Cancel()
		errs = append(errs, b.reader.Close())
	}
	if b.oldTerm != nil {
		errs = append(errs, term.Restore(b.inFd, b.oldTerm))
		b.oldTerm = nil
	}
	b.closeTTY()
	return errors.Join(errs...)
}

func (b *nativeBackend) closeTTY() {
	if b.tty != nil {
		b.tty.Close()
		b.tty = nil
	}
}

func (b *nativeBackend) Size() (int, int) {
	return getTerminalSize(b.outFd)
}

func (b *nativeBackend) Write(p []byte) (int, error) {
	return b.out.Write(p)
}

func (b *nativeBackend) Read() ([]byte, error) {
	for {
		n, err := b.reader.Read(b.buf)
		if err != nil {
			if errors.Is(err, cancelreader.ErrCanceled) {
				return nil, ErrReadCanceled
			}
			if errors.Is(err, syscall.EINTR) || errors.Is(err, syscall.EAGAIN) {
				continue
			}
			return nil, err
		}
		if n == 0 {
			return nil, io.EOF
		}
		ret := make([]byte, n)
		copy(ret, b.buf[:n])
		return ret, nil
	}
}

func (b *nativeBackend) CancelRead() bool {
	if b.reader == nil {
		return false
	}
	return b.reader.Cancel()
}

func (b *nativeBackend) SetResizeHandler(handler func(width, height int)) {
	b.resizeMu.Lock()
	defer b.resizeMu.Unlock()
	if b.resizeStopCh != nil {
		close(b.resizeStopCh)
		<-b.resizeDoneCh
	}
	stopCh := make(chan struct{})
	doneCh := make(chan struct{})
	b.resizeStopCh, b.resizeDoneCh = stopCh, doneCh

	go func() {
		defer close(doneCh)
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGWINCH)
		defer signal.Stop(sigCh)

		for {
			select {
			case <-stopCh:
				return
			case <-sigCh:
				w, h := b.Size()
				handler(w, h)
			}
		}
	}()
}

// getTerminalSize returns the terminal size for a given fd
func getTerminalSize(fd int) (int, int) {
	ws, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ)
	if err != nil || ws.Col == 0 || ws.Row == 0 {
		return 80, 24 // Fallback
	}
	return int(ws.Col), int(ws.Row)
}
