package cli

import (
	"github.com/spf13/cobra"
)

// NewLoginCommand creates the login command.
func NewLoginCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "login <identifier>",
		Short: "Mark the session authenticated",
		Long: `Mark the session authenticated under the given identifier and
record a login history entry. Any non-empty identifier is accepted; the
flag is a convenience for the storefront, not a security boundary.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := NewApp(rootOpts)
			if err != nil {
				return err
			}
			defer app.Close()
			out := app.Renderer(rootOpts, cmd.OutOrStdout())

			if err := app.Auth.Login(app.Session, args[0]); err != nil {
				return WrapExitError(ExitFailure, "login", err)
			}
			out.Notify("logged in as " + args[0])
			return nil
		},
	}
}

// NewLogoutCommand creates the logout command.
func NewLogoutCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the session's auth flag",
		Long: `Clear the auth flag and display name and record a logout history
entry. The cart and favorites survive logout.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := NewApp(rootOpts)
			if err != nil {
				return err
			}
			defer app.Close()
			out := app.Renderer(rootOpts, cmd.OutOrStdout())

			app.Auth.Logout(app.Session)
			out.Notify("logged out")
			return nil
		},
	}
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "history",
		Short:         "Show the auth history in append order",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := NewApp(rootOpts)
			if err != nil {
				return err
			}
			defer app.Close()
			out := app.Renderer(rootOpts, cmd.OutOrStdout())

			out.RenderHistory(app.Session.History)
			return nil
		},
	}
}
