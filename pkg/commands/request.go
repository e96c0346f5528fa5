package commands

import (
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/navigation/pkg/commands/options"
	"tableflip.dev/navigation/pkg/network"
	"tableflip.dev/navigation/pkg/runner/request"
	"tableflip.dev/navigation/pkg/snake"
)

func addRequest(topLevel *cobra.Command) {
	i := &options.InteractiveOptions{}
	var timeout time.Duration

	kinds := make([]string, 0, len(network.Resources()))
	for _, r := range network.Resources() {
		kinds = append(kinds, r.Kind.String())
	}

	cmd := &cobra.Command{
		Use:   "request [people|starships|planets]",
		Short: "fetch a Star Wars API resource, a random one by default",
		Example: `
navigation request
navigation request planets
navigation request -i
`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: kinds,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			r := request.Request{
				Client: &http.Client{Timeout: timeout},
				JSON:   output.JSON,
				Out:    cmd.OutOrStdout(),
			}
			if len(args) == 1 {
				r.Kind = args[0]
			} else if i.Interactive {
				labels := make([]string, 0, len(network.Resources()))
				for _, res := range network.Resources() {
					labels = append(labels, res.Description())
				}
				p := snake.Prompter{In: cmd.InOrStdin(), Out: cmd.OutOrStdout()}
				idx, err := p.Select("Ресурс", labels)
				if err != nil {
					return output.HandleError(err)
				}
				r.Kind = kinds[idx]
			}
			return output.HandleError(r.Do(cmd.Context()))
		},
	}

	options.InteractiveArgs(cmd, i)
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "HTTP request timeout.")
	topLevel.AddCommand(cmd)
}
