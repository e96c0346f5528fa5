package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/navigation/pkg/commands/options"
	"tableflip.dev/navigation/pkg/runner/login"
	"tableflip.dev/navigation/pkg/snake"
)

func addLogin(topLevel *cobra.Command) {
	co := &options.CredentialOptions{}
	i := &options.InteractiveOptions{}

	cmd := &cobra.Command{
		Use:   "login",
		Short: "check a login and password",
		Example: `
navigation login --login admin --password 12345
navigation login -i
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			e, err := loadEnv(false)
			if err != nil {
				return output.HandleError(err)
			}
			defer e.close()

			l := login.Login{
				Service:  e.service,
				Login:    co.Login,
				Password: co.Password,
				Out:      cmd.OutOrStdout(),
			}
			if i.Interactive && l.NeedsPrompt() {
				l.Prompt = &snake.Prompter{In: cmd.InOrStdin(), Out: cmd.OutOrStdout()}
			}
			return output.HandleError(l.Do(cmd.Context()))
		},
	}

	options.AddCredentialArgs(cmd, co, "")
	options.InteractiveArgs(cmd, i)
	topLevel.AddCommand(cmd)
}
