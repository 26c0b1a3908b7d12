package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/logpager/config"
	"github.com/lixenwraith/logpager/pager"
	"github.com/lixenwraith/logpager/terminal"
)

func newKeysCmd() *cobra.Command {
	var (
		configPath string
		names      bool
	)
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "List key bindings, or the key names usable in [keys]",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if names {
				return writeKeyNames(cmd.OutOrStdout())
			}
			cfg, err := config.Load(configPath, nil)
			if err != nil {
				return err
			}
			km, err := pager.NewKeyMap(cfg.Keys)
			if err != nil {
				return err
			}
			return writeBindings(cmd.OutOrStdout(), km)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "config file")
	cmd.Flags().BoolVar(&names, "names", false, "list key names instead of bindings")
	return cmd
}

// writeBindings prints one action per line with its keys
func writeBindings(w io.Writer, km *pager.KeyMap) error {
	for _, a := range pager.Actions {
		if _, err := fmt.Fprintf(w, "%-14s %s\n", a, strings.Join(km.Keys(a), " ")); err != nil {
			return err
		}
	}
	return nil
}

func writeKeyNames(w io.Writer) error {
	for _, name := range terminal.KeyNames() {
		if _, err := fmt.Fprintln(w, name); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "\nmodifiers: ctrl_ alt_ shift_ (e.g. ctrl_c, alt_page_down)")
	return err
}
