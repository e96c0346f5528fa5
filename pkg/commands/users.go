package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/navigation/pkg/profile"
	"tableflip.dev/navigation/pkg/runner/users"
)

func addUsers(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "manage the user directory",
		Example: `
navigation users list
navigation users add petr --name "Пётр Петров" --status "В сети"
navigation users status petr "На встрече"
navigation users rm petr
navigation users watch
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addUsersList(cmd)
	addUsersAdd(cmd)
	addUsersStatus(cmd)
	addUsersRemove(cmd)
	addUsersWatch(cmd)
	topLevel.AddCommand(cmd)
}

// withUsers loads the environment and hands a users runner to fn.
func withUsers(cmd *cobra.Command, fn func(ctx context.Context, u *users.Users) error) error {
	cmd.SilenceUsage = true
	e, err := loadEnv(false)
	if err != nil {
		return output.HandleError(err)
	}
	defer e.close()
	u := &users.Users{Service: e.service, JSON: output.JSON, Out: cmd.OutOrStdout()}
	return output.HandleError(fn(cmd.Context(), u))
}

func addUsersList(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "list every user record",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withUsers(cmd, func(ctx context.Context, u *users.Users) error {
				return u.List(ctx)
			})
		},
	}
	topLevel.AddCommand(cmd)
}

func addUsersAdd(topLevel *cobra.Command) {
	var name, avatar, status string

	cmd := &cobra.Command{
		Use:   "add <login>",
		Short: "add or replace a user record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withUsers(cmd, func(ctx context.Context, u *users.Users) error {
				fullName := name
				if fullName == "" {
					fullName = args[0]
				}
				return u.Add(ctx, profile.User{
					Login:    args[0],
					FullName: fullName,
					Avatar:   profile.Image(avatar),
					Status:   status,
				})
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Full name. Defaults to the login.")
	cmd.Flags().StringVar(&avatar, "avatar", "avatar_placeholder", "Avatar image name.")
	cmd.Flags().StringVar(&status, "status", "", `Status text. Defaults to "Online".`)
	topLevel.AddCommand(cmd)
}

func addUsersStatus(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "status <login> <status>",
		Short: "change the stored status of a user",
		Long: `Change the stored status of a user. An open profile for that login in
"navigation ui" picks the change up while it runs.`,
		Args: cobra.ExactArgs(2),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return loginCompletions(cmd, toComplete), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return withUsers(cmd, func(ctx context.Context, u *users.Users) error {
				return u.Status(ctx, args[0], args[1])
			})
		},
	}
	topLevel.AddCommand(cmd)
}

func addUsersRemove(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "rm <login>",
		Aliases: []string{"remove", "delete"},
		Short:   "remove a user record",
		Args:    cobra.ExactArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return loginCompletions(cmd, toComplete), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return withUsers(cmd, func(ctx context.Context, u *users.Users) error {
				return u.Remove(ctx, args[0])
			})
		},
	}
	topLevel.AddCommand(cmd)
}

func addUsersWatch(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "print changes to the user directory as they happen",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withUsers(cmd, func(ctx context.Context, u *users.Users) error {
				return u.Watch(ctx)
			})
		},
	}
	topLevel.AddCommand(cmd)
}
