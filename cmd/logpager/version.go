package main

import (
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"
)

const defaultModule = "github.com/lixenwraith/logpager"

// buildVersion is set via -ldflags "-X main.buildVersion=..."
var buildVersion = ""

// version returns the ldflags version, then the module version from build info
func version() (module, v string) {
	module, v = defaultModule, "v0.0.0-unknown"
	info, ok := debug.ReadBuildInfo()
	if ok {
		if p := strings.TrimSpace(info.Main.Path); p != "" {
			module = p
		}
		if mv := strings.TrimSpace(info.Main.Version); mv != "" && mv != "(devel)" {
			v = mv
		}
	}
	if b := strings.TrimSpace(buildVersion); b != "" {
		v = b
	}
	return module, strings.TrimSuffix(v, "+dirty")
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			module, v := version()
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", module, v)
			return err
		},
	}
}
