package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"
	"pkt.systems/pslog"

	"github.com/lixenwraith/logpager/config"
	"github.com/lixenwraith/logpager/logsource"
	"github.com/lixenwraith/logpager/logx"
	"github.com/lixenwraith/logpager/pager"
	"github.com/lixenwraith/logpager/queue"
	"github.com/lixenwraith/logpager/terminal"
	"github.com/lixenwraith/logpager/terminal/tui"
)

// runOptions are the root command inputs that are not config keys
type runOptions struct {
	configPath string
	filter     string
	path       string
}

var errNoInput = errors.New("no input: pass a file or pipe data to stdin")

// source is an opened log: the initial lines and the producer feeding updates
type source struct {
	store *logsource.Store
	run   func(ctx context.Context) error
}

// openSource loads path, or stdin when path is empty
func openSource(path string, stdin *os.File, updates *queue.Queue[logsource.Update]) (source, error) {
	if path == "" || path == "-" {
		if term.IsTerminal(int(stdin.Fd())) {
			return source{}, errNoInput
		}
		stream := logsource.NewStream(stdin, updates)
		return source{store: logsource.NewStore("stdin"), run: stream.Run}, nil
	}

	store, offset, err := logsource.LoadFile(path)
	if err != nil {
		return source{}, err
	}
	follower := logsource.NewFollower(path, offset, updates)
	return source{store: store, run: follower.Run}, nil
}

// run executes one pager session and returns its exit code
func run(cmd *cobra.Command, opts runOptions) (int, error) {
	cfg, err := config.Load(opts.configPath, cmd.Flags())
	if err != nil {
		return pager.ExitFatal, err
	}

	logPath := cfg.Log.File
	if logPath == "" {
		if logPath, err = logx.DefaultPath(); err != nil {
			return pager.ExitFatal, err
		}
	}
	logger, closer, err := logx.Open(logPath, cfg.Log.Level)
	if err != nil {
		return pager.ExitFatal, err
	}
	defer closer.Close()
	// Terminal signals reach the pager as events; psi cancellation is not used
	ctx := logx.Install(context.WithoutCancel(cmd.Context()), logger)

	updates := queue.New[logsource.Update]()
	src, err := openSource(opts.path, os.Stdin, updates)
	if err != nil {
		return pager.ExitFatal, err
	}
	chain, err := logsource.NewChain(opts.filter, cfg.Filter.Exclude)
	if err != nil {
		return pager.ExitFatal, err
	}
	keys, err := pager.NewKeyMap(cfg.Keys)
	if err != nil {
		return pager.ExitFatal, err
	}
	theme, err := cfg.Colors.Apply(tui.DefaultTheme)
	if err != nil {
		return pager.ExitFatal, err
	}
	backend, err := terminal.NewBackend(cfg.Terminal.Backend)
	if err != nil {
		return pager.ExitFatal, err
	}

	scr, err := terminal.NewScreen(terminal.ScreenOptions{
		Backend:       backend,
		EscapeTimeout: cfg.Terminal.EscapeTimeout,
		ColorMode:     cfg.ColorMode(),
	})
	if err != nil {
		return pager.ExitFatal, err
	}

	app, err := pager.New(scr, pager.Options{
		Store:    src.store,
		Chain:    chain,
		Updates:  updates,
		Keys:     keys,
		Theme:    theme,
		TabWidth: cfg.View.TabWidth,
		Follow:   cfg.View.Follow,
	})
	if err != nil {
		scr.Disengage()
		return pager.ExitFatal, err
	}

	code, runErr := session(ctx, app, src.run, updates)
	return teardown(ctx, scr, code, runErr)
}

// disengager is the part of terminal.Screen teardown needs
type disengager interface {
	Disengage() error
}

// teardown restores the terminal and folds a restore failure into the result
func teardown(ctx context.Context, scr disengager, code int, runErr error) (int, error) {
	if err := scr.Disengage(); err != nil {
		pslog.Ctx(ctx).Warn("terminal restore failed", "err", err)
		runErr = errors.Join(runErr, err)
	}
	if runErr != nil {
		return max(code, pager.ExitFatal), runErr
	}
	return code, nil
}

// session runs the producer and the pager together until the pager stops.
// Panics on either side come back as errors so the caller still tears down
func session(ctx context.Context, app *pager.App, produce func(context.Context) error, updates *queue.Queue[logsource.Update]) (int, error) {
	g, gctx := errgroup.WithContext(ctx)
	pctx, stop := context.WithCancel(gctx)
	defer stop()

	g.Go(func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("source panic: %v\n%s", r, debug.Stack())
			}
		}()
		// Producer faults are shown in the status line, not fatal
		if err := produce(pctx); err != nil {
			pslog.Ctx(ctx).Warn("source stopped", "err", err)
			updates.Push(logsource.Update{Err: err})
		}
		return nil
	})

	var code int
	g.Go(func() error {
		defer stop()
		var err error
		code, err = app.Run(gctx)
		return err
	})

	err := g.Wait()
	if err != nil {
		code = max(code, pager.ExitFatal)
	}
	return code, err
}

// writeFatal prints err the way the shell user expects after teardown
func writeFatal(w io.Writer, err error) {
	fmt.Fprintf(w, "logpager: %v\n", err)
}
