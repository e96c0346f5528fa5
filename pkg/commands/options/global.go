package options

import (
	"github.com/spf13/cobra"
)

// GlobalOptions apply to every command.
type GlobalOptions struct {
	// Mode overrides the configured build mode when set.
	Mode    string
	Verbose bool
}

func AddGlobalArgs(cmd *cobra.Command, o *GlobalOptions) {
	cmd.PersistentFlags().StringVar(&o.Mode, "mode", "",
		"Build mode, debug or release. Defaults to the configured mode.")
	cmd.PersistentFlags().BoolVarP(&o.Verbose, "verbose", "v", false,
		"Log debug output to stderr when no log file is configured.")
}
