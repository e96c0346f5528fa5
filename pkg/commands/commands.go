package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/navigation/pkg/commands/options"
)

var (
	output = &options.OutputOptions{}
	global = &options.GlobalOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "navigation",
		Short: options.Wrap80("A profile screen, its login and its friends, on the command line."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	options.AddOutputArg(cmd, output)
	options.AddGlobalArgs(cmd, global)
	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addUI(topLevel)
	addProfile(topLevel)
	addLogin(topLevel)
	addFeed(topLevel)
	addRequest(topLevel)
	addUsers(topLevel)
	addInfo(topLevel)
	addMCP(topLevel)
	addVersion(topLevel)
	addUpgrade(topLevel)
	addCompletions(topLevel)
}
