// Package pager is the interactive log viewer: it drains terminal event
// batches, runs them through the handler chain, applies new log lines and
// renders one frame per batch.
package pager

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"

	"pkt.systems/pslog"

	"github.com/lixenwraith/logpager/logsource"
	"github.com/lixenwraith/logpager/queue"
	"github.com/lixenwraith/logpager/terminal"
	"github.com/lixenwraith/logpager/terminal/tui"
)

// filterInput names the filter LineInput in posted InputEvents
const filterInput = "filter"

// ErrPanic wraps a fault recovered from the main loop
var ErrPanic = errors.New("pager: panic")

// Exit codes besides the 128+signal codes of SignalEvent
const (
	ExitOK    = 0
	ExitFatal = 1
)

// Screen is the part of terminal.Screen the pager drives
type Screen interface {
	Ready() <-chan struct{}
	Poll(b *terminal.Batch) int
	Post(ev terminal.Event)
	Output() *terminal.Output
	Size() (int, int)
	Sync()
}

// Options configures an App
type Options struct {
	Store    *logsource.Store
	Chain    *logsource.Chain // excludes and initial include; nil shows everything
	Updates  *queue.Queue[logsource.Update]
	Keys     *KeyMap
	Theme    tui.Theme
	TabWidth int
	Follow   bool
}

// App is the pager main loop state. All fields are owned by Run
type App struct {
	screen  Screen
	out     *terminal.Output
	log     pslog.Logger
	store   *logsource.Store
	view    *logsource.Filtered
	updates *queue.Queue[logsource.Update]
	keys    *KeyMap
	theme   tui.Theme

	scroll *tui.ScrollView
	input  *tui.LineInput
	status tui.StatusLine
	batch  *terminal.Batch

	width, height int
	follow        bool
	savedFilter   string // filter text when editing began

	lastStatus  tui.StatusLine
	statusDirty bool
	inputDirty  bool

	done     bool
	exitCode int
	fatal    error
}

// New creates an App over an engaged screen
func New(screen Screen, opts Options) (*App, error) {
	if opts.Store == nil {
		return nil, errors.New("pager: nil store")
	}
	if opts.Updates == nil {
		opts.Updates = queue.New[logsource.Update]()
	}
	if opts.Keys == nil {
		km, err := NewKeyMap(nil)
		if err != nil {
			return nil, err
		}
		opts.Keys = km
	}
	if opts.Chain == nil {
		opts.Chain, _ = logsource.NewChain("", nil)
	}

	a := &App{
		screen:  screen,
		out:     screen.Output(),
		store:   opts.Store,
		view:    logsource.NewFiltered(opts.Store, opts.Chain),
		updates: opts.Updates,
		keys:    opts.Keys,
		theme:   opts.Theme,
		batch:   terminal.NewBatch(64),
		follow:  opts.Follow,
	}
	a.scroll = tui.NewScrollView(a.out, a.view, opts.TabWidth, &a.theme)
	a.input = tui.NewLineInput(filterInput, "/", screen.Post)
	return a, nil
}

// Run processes batches until quit, an unhandled signal, a fatal error or
// ctx cancellation. It returns the process exit code and the fatal error, if any.
// A panic in a handler is returned as an ErrPanic error with the stack so the
// caller can restore the terminal before reporting it
func (a *App) Run(ctx context.Context) (code int, err error) {
	defer func() {
		if r := recover(); r != nil {
			code = ExitFatal
			err = fmt.Errorf("%w: %v\n%s", ErrPanic, r, debug.Stack())
			pslog.Ctx(ctx).Error("pager crashed", "panic", fmt.Sprint(r))
		}
	}()
	a.start(ctx)
	for !a.done {
		select {
		case <-ctx.Done():
			// Pick up a signal that raced the cancellation
			a.step()
			if !a.done {
				a.log.Debug("pager cancelled", "err", context.Cause(ctx))
				return ExitOK, nil
			}
		case <-a.screen.Ready():
			a.step()
		case <-a.updates.Ready():
			a.step()
		}
	}
	a.log.Info("pager stopped", "code", a.exitCode, "err", a.fatal)
	return a.exitCode, a.fatal
}

// start lays out and draws the first frame
func (a *App) start(ctx context.Context) {
	a.log = pslog.Ctx(ctx)
	w, h := a.screen.Size()
	a.resize(w, h)
	a.log.Info("pager started", "source", a.store.Name(), "lines", a.store.Len(), "width", w, "height", h)
	a.render()
}

// step runs one batch through the handlers in priority order and renders
func (a *App) step() {
	a.batch.Clear()
	a.screen.Poll(a.batch)

	a.handleGlobal()
	if a.done {
		return
	}
	if a.input.Active() {
		if a.batch.Unclaimed() > 0 {
			a.inputDirty = true
		}
		a.input.Handle(a.batch)
		if !a.input.Active() {
			a.statusDirty = true
		}
	}
	a.handleAppEvents()
	a.handleNavigation()
	if a.done {
		return
	}
	a.applyUpdates()

	for it := range a.batch.All() {
		a.log.Trace("event unhandled", "event", it.Event.String())
	}
	a.render()
}

// exit ends the loop with code
func (a *App) exit(code int) {
	a.done = true
	a.exitCode = code
}

// fail ends the loop on an unrecoverable error
func (a *App) fail(err error) {
	a.fatal = err
	a.exit(ExitFatal)
}

// isFatal reports errors that end the session
func isFatal(err error) bool {
	return errors.Is(err, terminal.ErrUnsupportedInput) || errors.Is(err, terminal.ErrInputClosed)
}

// handleGlobal claims signals, resizes and worker faults
func (a *App) handleGlobal() {
	for it := range a.batch.All() {
		switch e := it.Event.(type) {
		case terminal.SignalEvent:
			it.Claim()
			a.log.Info("signal received", "signal", e.Signal.String())
			a.exit(e.ExitCode())
			return
		case terminal.ResizeEvent:
			it.Claim()
			a.resize(e.Width, e.Height)
		case terminal.ErrorEvent:
			it.Claim()
			if isFatal(e.Err) {
				a.log.Error("terminal fault", "err", e.Err)
				a.fail(e.Err)
				return
			}
			a.log.Warn("worker fault", "err", e.Err)
			a.setError(e.Err.Error())
		}
	}
}

// handleAppEvents applies filter input notifications. Only the last edit
// of a batch is filtered on
func (a *App) handleAppEvents() {
	var (
		text    string
		pending bool
	)
	for it := range a.batch.All() {
		app, ok := it.Event.(terminal.AppEvent)
		if !ok {
			continue
		}
		ie, ok := app.Payload.(tui.InputEvent)
		if !ok || ie.Source != filterInput {
			continue
		}
		it.Claim()
		a.statusDirty = true
		pending = true
		switch ie.Action {
		case tui.InputChanged, tui.InputCommitted:
			text = ie.Text
		case tui.InputCancelled:
			text = a.savedFilter
		}
	}
	if pending {
		a.applyFilter(text)
	}
}

// applyFilter switches the include pattern, keeping the top line in place
// when it is still visible
func (a *App) applyFilter(text string) {
	cur := a.view.Chain()
	if text == cur.Pattern() {
		a.setError("")
		return
	}
	chain, err := cur.WithInclude(text)
	if err != nil {
		a.setError(err.Error())
		return
	}
	a.setError("")

	anchor := 0
	if a.view.Len() > 0 {
		anchor = a.view.SourceIndex(a.scroll.ScrollY())
	}
	a.view.SetChain(chain)
	a.scroll.SourceChanged()
	if a.follow {
		a.scroll.End()
	} else {
		a.scroll.ScrollToY(a.view.IndexOf(anchor))
	}
	a.log.Debug("filter applied", "pattern", text, "visible", a.view.Len())
}

// handleNavigation claims keys bound to browsing actions
func (a *App) handleNavigation() {
	for it := range a.batch.All() {
		action, ok := a.keys.Lookup(it.Event)
		if !ok {
			continue
		}
		it.Claim()
		a.do(action)
		if a.done {
			return
		}
		if a.input.Active() {
			// Keys typed after the filter key belong to the input
			a.input.Handle(a.batch)
		}
	}
}

// do runs one browsing action
func (a *App) do(action Action) {
	if a.status.Error != "" {
		a.setError("")
	}
	s := a.scroll
	switch action {
	case ActionQuit:
		a.exit(ExitOK)
		return
	case ActionDown:
		s.ScrollBy(1)
	case ActionUp:
		s.ScrollBy(-1)
	case ActionPageDown:
		s.PageDown()
	case ActionPageUp:
		s.PageUp()
	case ActionHalfDown:
		s.HalfPageDown()
	case ActionHalfUp:
		s.HalfPageUp()
	case ActionTop:
		s.Home()
	case ActionBottom:
		s.End()
	case ActionLeft:
		s.ScrollToX(s.ScrollX() - tui.PageDelta(a.width))
	case ActionRight:
		s.ScrollToX(s.ScrollX() + tui.PageDelta(a.width))
	case ActionFilter:
		a.savedFilter = a.view.Chain().Pattern()
		a.input.Activate(a.savedFilter)
		a.inputDirty = true
	case ActionClearFilter:
		a.applyFilter("")
	case ActionFollow:
		a.follow = !a.follow
		if a.follow {
			s.End()
		}
	case ActionRedraw:
		a.screen.Sync()
		s.Invalidate()
		a.statusDirty = true
		a.inputDirty = true
	}
	if a.follow && !s.AtEnd() {
		a.follow = false
	}
}

// applyUpdates moves producer output into the store. The main loop is the
// only writer of the store
func (a *App) applyUpdates() {
	ups := a.updates.Consume()
	if len(ups) == 0 {
		return
	}
	reset := false
	for _, u := range ups {
		if u.Err != nil {
			a.setError(u.Err.Error())
			continue
		}
		if u.Reset {
			a.store.Reset()
			reset = true
		}
		a.store.Append(u.Lines...)
	}

	if reset {
		a.log.Info("source truncated", "lines", a.store.Len())
		a.view.Rebuild()
		a.scroll.SourceChanged()
	} else {
		oldLen := a.view.Len()
		if a.view.Extend() > 0 {
			a.scroll.LinesAppended(oldLen)
		}
	}
	if a.follow {
		a.scroll.End()
	}
	a.statusDirty = true
}

func (a *App) setError(msg string) {
	if a.status.Error != msg {
		a.status.Error = msg
		a.statusDirty = true
	}
}

// resize lays out the view above a one-row status line
func (a *App) resize(w, h int) {
	a.width, a.height = w, h
	a.out.ClearScreen()
	a.scroll.SetBounds(tui.Bounds{Width: w, Top: 0, Bottom: max(h-1, 0)})
	if a.follow {
		a.scroll.End()
	}
	a.statusDirty = true
	a.inputDirty = true
}

// render draws what changed and flushes once
func (a *App) render() {
	a.scroll.Render()

	if a.height > 0 {
		row := a.height - 1
		if a.input.Active() {
			if a.inputDirty {
				a.input.Render(a.out, row, a.width, a.theme.Filter)
			}
		} else {
			a.fillStatus()
			if a.statusDirty || a.status != a.lastStatus {
				a.status.Render(a.out, row, a.width, &a.theme)
				a.lastStatus = a.status
			}
		}
	}
	a.statusDirty = false
	a.inputDirty = false

	if err := a.out.Flush(); err != nil {
		a.log.Error("flush failed", "err", err)
		a.fail(err)
	}
}

// fillStatus refreshes the status fields from the view
func (a *App) fillStatus() {
	st := &a.status
	st.Source = a.store.Name()
	st.Total = a.view.Len()
	st.Lines = a.store.Len()
	st.Line = 0
	if st.Total > 0 {
		st.Line = a.scroll.ScrollY() + 1
	}
	chain := a.view.Chain()
	st.Filter = chain.Pattern()
	st.Excluded = chain.Excludes()
	st.Follow = a.follow
}
