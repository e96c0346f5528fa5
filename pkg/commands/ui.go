package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/navigation/pkg/commands/options"
	"tableflip.dev/navigation/pkg/runner/ui"
)

func addUI(topLevel *cobra.Command) {
	lo := &options.LoginOptions{}

	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the text-based user interface",
		Example: `
navigation ui
navigation ui --login admin --mode release
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(true)
			if err != nil {
				return err
			}
			defer e.close()
			login := lo.Login
			if login == "" {
				login = e.settings.Login
			}
			i := ui.UI{Service: e.service, Login: login}
			return i.Do(cmd.Context())
		},
	}

	options.AddLoginArg(cmd, lo, "")
	topLevel.AddCommand(cmd)
}
