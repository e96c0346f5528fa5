package commands

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/navigation/pkg/store"
)

func addCompletions(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generates bash completion scripts",
		Long: `To load completion run

. <(navigation completion)

To configure your bash shell to load completions for each session add to your bashrc

# ~/.bashrc or ~/.profile
. <(navigation completion)
`,
		Run: func(cmd *cobra.Command, args []string) {
			_ = topLevel.GenBashCompletion(os.Stdout)
		},
	}

	topLevel.AddCommand(cmd)
}

func loginCompletions(cmd *cobra.Command, toComplete string) []string {
	p, err := store.Load(nil)
	if err != nil {
		return nil
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	var logins []string
	for _, u := range p.List(ctx) {
		if strings.HasPrefix(strings.ToLower(u.Login), strings.ToLower(toComplete)) {
			logins = append(logins, u.Login)
		}
	}
	return logins
}
