package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/navigation/pkg/runner/feed"
	"tableflip.dev/navigation/pkg/snake"
)

func addFeed(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "feed",
		Short: "guess the secret word",
		Example: `
navigation feed
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			f := feed.Feed{
				Guesser: feed.PromptGuesser(snake.Prompter{In: cmd.InOrStdin(), Out: cmd.OutOrStdout()}),
				Out:     cmd.OutOrStdout(),
			}
			return output.HandleError(f.Do(cmd.Context()))
		},
	}

	topLevel.AddCommand(cmd)
}
