package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/navigation/pkg/commands/options"
	"tableflip.dev/navigation/pkg/runner/load"
)

func addProfile(topLevel *cobra.Command) {
	lo := &options.LoginOptions{}
	var (
		status string
		save   bool
	)

	cmd := &cobra.Command{
		Use:   "profile [login]",
		Short: "load a profile and print every state it goes through",
		Example: `
navigation profile admin
navigation profile --login admin --status "На встрече" --save
navigation profile admin --json
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			e, err := loadEnv(false)
			if err != nil {
				return output.HandleError(err)
			}
			defer e.close()

			login := lo.Login
			if len(args) == 1 {
				login = args[0]
			}
			if login == "" {
				login = e.settings.Login
			}
			if login == "" {
				return output.HandleError(errors.New("a login is required"))
			}
			l := load.Load{
				Service: e.service,
				Login:   login,
				Status:  status,
				Save:    save,
				JSON:    output.JSON,
				Out:     cmd.OutOrStdout(),
			}
			return output.HandleError(l.Do(cmd.Context()))
		},
	}

	options.AddLoginArg(cmd, lo, "")
	_ = cmd.RegisterFlagCompletionFunc("login", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return loginCompletions(cmd, toComplete), cobra.ShellCompDirectiveNoFileComp
	})
	cmd.Flags().StringVar(&status, "status", "", "Apply a status change once the profile has loaded.")
	cmd.Flags().BoolVar(&save, "save", false, "Store --status in the user directory too.")
	topLevel.AddCommand(cmd)
}
