package cli

import (
	"github.com/spf13/cobra"
)

// NewFavCommand creates the fav command group.
func NewFavCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fav",
		Short: "Manage favorites",
	}
	cmd.AddCommand(newFavAddCommand(rootOpts))
	cmd.AddCommand(newFavListCommand(rootOpts))
	return cmd
}

func newFavAddCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "add <id-or-name>",
		Short:         "Record a book as a favorite",
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

			if err := requireAuth(app, out); err != nil {
				return err
			}
			b, err := app.ResolveBook(args[0])
			if err != nil {
				return WrapExitError(ExitFailure, "add favorite", err)
			}
			app.Cart.AddFavorite(app.Session, b)
			out.Notify("favorited " + b.Name)
			return nil
		},
	}
}

func newFavListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "list",
		Short:         "Show favorites in add order",
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

			out.RenderFavorites(app.Session.FavoriteList())
			return nil
		},
	}
}
