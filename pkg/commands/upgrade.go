package commands

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"
)

const installPath = "tableflip.dev/navigation/cmd/navigation"

func addUpgrade(topLevel *cobra.Command) {
	ref := "latest"
	cmd := &cobra.Command{
		Use:   "upgrade",
		Short: "Upgrade the navigation cli.",
		Example: `
navigation upgrade
navigation upgrade --ref v0.2.0
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			ex := exec.CommandContext(cmd.Context(), "go", "install", installPath+"@"+ref)
			var stderr bytes.Buffer
			ex.Stderr = &stderr
			if err := ex.Run(); err != nil {
				if msg := strings.TrimSpace(stderr.String()); msg != "" {
					err = fmt.Errorf("%w: %s", err, msg)
				}
				return output.HandleError(err)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), ex.String())
			return nil
		},
	}

	cmd.Flags().StringVar(&ref, "ref", ref, "Version, tag or commit to install.")
	topLevel.AddCommand(cmd)
}
