package options

import (
	"github.com/spf13/cobra"
)

// LoginOptions names the user a command acts on.
type LoginOptions struct {
	Login string
}

func AddLoginArg(cmd *cobra.Command, o *LoginOptions, def string) {
	cmd.Flags().StringVarP(&o.Login, "login", "l", def,
		"User login.")
}

// CredentialOptions is a login and password pair.
type CredentialOptions struct {
	LoginOptions
	Password string
}

func AddCredentialArgs(cmd *cobra.Command, o *CredentialOptions, def string) {
	AddLoginArg(cmd, &o.LoginOptions, def)
	cmd.Flags().StringVarP(&o.Password, "password", "p", "",
		"Password. Prompted for with --interactive when empty.")
}
