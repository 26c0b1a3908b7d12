package terminal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/lixenwraith/logpager/queue"
)

// SessionState tracks the Screen lifecycle: Created -> Engaged -> Disengaged
type SessionState int32

const (
	StateCreated SessionState = iota
	StateEngaged
	StateDisengaged
)

func (s SessionState) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateEngaged:
		return "engaged"
	case StateDisengaged:
		return "disengaged"
	}
	return fmt.Sprintf("state(%d)", int32(s))
}

// activeSessions enforces one engaged Screen per process
var activeSessions atomic.Int32

// workerStopTimeout bounds the wait for workers during Disengage
const workerStopTimeout = 100 * time.Millisecond

// ScreenOptions configures NewScreen. Zero values select defaults
type ScreenOptions struct {
	Backend       Backend       // nil selects the native backend
	Table         *MappingTable // nil selects DefaultMappingTable
	EscapeTimeout time.Duration // non-positive selects DefaultEscapeTimeout
	ColorMode     ColorMode
}

// Screen owns the terminal for the duration of a session: raw mode, the
// alternate buffer, the input workers and the output stream.
// Thread-Safety:
//   - Post, Ready, Size, State: any goroutine
//   - Poll, Output, Disengage: main loop only
type Screen struct {
	backend Backend
	output  *Output
	decoder *Decoder

	raw    *queue.Queue[[]byte]
	events *queue.Queue[Event]

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	sigCh chan os.Signal
	state atomic.Int32
}

// NewScreen engages the terminal and starts the input workers.
// Returns ErrSessionActive if another Screen is engaged and ErrNotTerminal
// when the device is not interactive
func NewScreen(opts ScreenOptions) (*Screen, error) {
	if !activeSessions.CompareAndSwap(0, 1) {
		return nil, ErrSessionActive
	}

	backend := opts.Backend
	if backend == nil {
		backend = newNativeBackend()
	}

	s := &Screen{
		backend: backend,
		output:  NewOutput(backend, opts.ColorMode),
		decoder: NewDecoder(opts.Table, opts.EscapeTimeout),
		raw:     queue.New[[]byte](),
		events:  queue.New[Event](),
		sigCh:   make(chan os.Signal, 4),
	}

	if err := backend.Init(); err != nil {
		activeSessions.Store(0)
		return nil, fmt.Errorf("engage terminal: %w", err)
	}

	s.ctx, s.cancel = context.WithCancel(context.Background())

	backend.SetResizeHandler(func(w, h int) {
		if w > 0 && h > 0 {
			s.events.Push(ResizeEvent{Width: w, Height: h})
		}
	})
	signal.Notify(s.sigCh, syscall.SIGHUP, syscall.SIGINT, syscall.SIGQUIT, syscall.SIGTERM)

	o := s.output
	o.EnterAltScreen()
	o.HideCursor()
	o.SetAutoWrap(false)
	o.ResetStyle()
	o.ClearScreen()
	if err := o.Flush(); err != nil {
		s.teardown()
		activeSessions.Store(0)
		return nil, fmt.Errorf("engage terminal: %w", err)
	}

	s.wg.Add(3)
	go s.readLoop()
	go s.decodeLoop()
	go s.signalLoop()

	s.state.Store(int32(StateEngaged))
	return s, nil
}

// Disengage restores the terminal and stops the workers.
// Calling it on a Screen that is not engaged is a programming fault
func (s *Screen) Disengage() error {
	if !s.state.CompareAndSwap(int32(StateEngaged), int32(StateDisengaged)) {
		panic(ErrNotEngaged)
	}
	defer activeSessions.Store(0)

	err := s.teardown()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(workerStopTimeout):
		// Reader stuck on a non-cancelable read; it exits on next input or process exit
	}
	return err
}

// teardown reverses engagement in order
func (s *Screen) teardown() error {
	s.cancel()
	s.backend.CancelRead()

	o := s.output
	o.ResetStyle()
	o.ResetScrollMargins()
	o.ClearScreen()
	o.ExitAltScreen()
	o.ShowCursor()
	// Re-enable auto-wrap after leaving the alternate buffer so the main buffer has it
	o.SetAutoWrap(true)
	flushErr := o.Flush()

	finiErr := s.backend.Fini()
	signal.Stop(s.sigCh)
	return errors.Join(flushErr, finiErr)
}

// State returns the lifecycle state
func (s *Screen) State() SessionState {
	return SessionState(s.state.Load())
}

// Ready is signalled when events are waiting to be polled
func (s *Screen) Ready() <-chan struct{} {
	return s.events.Ready()
}

// Poll moves every queued event into b, in arrival order
func (s *Screen) Poll(b *Batch) int {
	evs := s.events.Consume()
	for _, ev := range evs {
		b.Add(ev)
	}
	return len(evs)
}

// Post enqueues an application event; it is delivered in a later batch
func (s *Screen) Post(ev Event) {
	s.events.Push(ev)
}

// Output returns the command buffer for the session
func (s *Screen) Output() *Output {
	return s.output
}

// Size returns current terminal dimensions
func (s *Screen) Size() (int, int) {
	return s.backend.Size()
}

// Sync forgets cached output state after an external disturbance so the
// next frame re-emits styles
func (s *Screen) Sync() {
	s.output.invalidateStyle()
	s.output.ResetScrollMargins()
	s.output.ClearScreen()
}

// readLoop is the raw reader worker: blocking device reads, one chunk per push
func (s *Screen) readLoop() {
	defer s.wg.Done()
	defer s.recoverWorker("reader")

	for {
		chunk, err := s.backend.Read()
		if err != nil {
			if s.ctx.Err() != nil || errors.Is(err, ErrReadCanceled) {
				return
			}
			if errors.Is(err, io.EOF) {
				err = ErrInputClosed
			}
			s.events.Push(ErrorEvent{Err: fmt.Errorf("read terminal: %w", err)})
			return
		}
		if len(chunk) > 0 {
			s.raw.Push(chunk)
		}
	}
}

func (s *Screen) decodeLoop() {
	defer s.wg.Done()
	s.decoder.Run(s.ctx, s.raw, s.events)
}

// signalLoop translates termination-class signals into events
func (s *Screen) signalLoop() {
	defer s.wg.Done()
	defer s.recoverWorker("signal")

	for {
		select {
		case <-s.ctx.Done():
			return
		case sig := <-s.sigCh:
			if n, ok := sig.(syscall.Signal); ok {
				s.events.Push(SignalEvent{Signal: Signal(n)})
			}
		}
	}
}

func (s *Screen) recoverWorker(name string) {
	if r := recover(); r != nil {
		s.events.Push(ErrorEvent{Err: fmt.Errorf("%s worker panic: %v\n%s", name, r, debug.Stack())})
	}
}

// EmergencyReset attempts to restore terminal to sane state
// Call this from panic recovery if Disengage cannot be called normally
func EmergencyReset(w io.Writer) {
	w.Write(csiResetMargins)
	w.Write(csiCursorShow)
	w.Write(csiAltScreenExit)
	w.Write(csiSGR0)
	w.Write(csiAutoWrapOn)
	w.Write(csiRIS)

	if f, ok := w.(*os.File); ok {
		f.Sync()
	}

	// Escape sequences alone don't restore termios
	resetTerminalMode()
}
