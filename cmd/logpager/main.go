package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"
	"pkt.systems/psi"

	"github.com/lixenwraith/logpager/logx"
	"github.com/lixenwraith/logpager/terminal"
	"github.com/lixenwraith/logpager/terminal/tui"
)

func main() {
	psi.Run(submain)
}

func submain(ctx context.Context) (code int) {
	// Panic Recovery: restore the terminal before the trace is printed
	defer func() {
		if r := recover(); r != nil {
			terminal.EmergencyReset(os.Stdout)
			fmt.Fprintf(os.Stderr, "\r\n\x1b[31mlogpager crashed: %v\x1b[0m\r\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
			code = 1
		}
	}()

	var exit exitCode
	root := newRootCmd(&exit)
	root.SetArgs(os.Args[1:])
	if err := root.ExecuteContext(ctx); err != nil {
		writeFatal(os.Stderr, err)
		if exit == 0 {
			return 1
		}
	}
	return int(exit)
}

// exitCode carries the pager's exit status out of cobra
type exitCode int

func newRootCmd(exit *exitCode) *cobra.Command {
	var opts runOptions
	root := &cobra.Command{
		Use:           "logpager [file]",
		Short:         "Terminal log pager with live filtering",
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.path = args[0]
			}
			code, err := run(cmd, opts)
			*exit = exitCode(code)
			return err
		},
	}

	f := root.Flags()
	f.StringVarP(&opts.configPath, "config", "c", "", "config file (default $XDG_CONFIG_HOME/logpager/config.toml)")
	f.StringVarP(&opts.filter, "filter", "e", "", "initial include pattern")
	f.String("backend", terminal.BackendNative, "terminal backend: native or tcell")
	f.Duration("escape-timeout", terminal.DefaultEscapeTimeout, "wait for the rest of an escape sequence")
	f.String("color", "auto", "color mode: auto, 256 or truecolor")
	f.Int("tab-width", tui.DefaultTabWidth, "tab stop width")
	f.BoolP("follow", "f", false, "start at the end and keep following new lines")
	f.StringSlice("exclude", nil, "hide lines matching pattern (repeatable)")
	f.String("log-file", "", "diagnostic log file, or - to disable")
	f.String("log-level", "info", "diagnostic log level: "+strings.Join(logx.Levels, ", "))

	root.AddCommand(newKeysCmd())
	root.AddCommand(newVersionCmd())
	return root
}
