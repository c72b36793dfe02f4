package cli

import (
	"github.com/spf13/cobra"

	"github.com/peizhen/bookfair/internal/cart"
)

// NewCartCommand creates the cart command group.
func NewCartCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Inspect and mutate the cart",
		Long: `Inspect and mutate the cart. Mutations require a logged-in
session; the cart itself survives logout.

Example:
  bookfair --db ./session.db cart add 三体
  bookfair --db ./session.db cart show
  bookfair --db ./session.db cart checkout`,
	}

	cmd.AddCommand(newCartAddCommand(rootOpts))
	cmd.AddCommand(newCartRemoveCommand(rootOpts))
	cmd.AddCommand(newCartIncCommand(rootOpts))
	cmd.AddCommand(newCartDecCommand(rootOpts))
	cmd.AddCommand(newCartClearCommand(rootOpts))
	cmd.AddCommand(newCartShowCommand(rootOpts))
	cmd.AddCommand(newCartCheckoutCommand(rootOpts))

	return cmd
}

// requireAuth gates cart mutations on a logged-in session, mirroring the
// storefront rule that anonymous visitors browse but do not buy.
func requireAuth(app *App, out *OutputFormatter) error {
	if app.Session.Authenticated {
		return nil
	}
	out.Notify("please log in first")
	return NewExitError(ExitFailure, "not logged in")
}

func newCartAddCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "add <id-or-name>",
		Short:         "Add one copy of a book to the cart",
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
				return WrapExitError(ExitFailure, "add to cart", err)
			}
			if !b.InStock {
				out.Notify(b.Name + " is out of stock")
				return NewExitError(ExitFailure, "book out of stock")
			}
			count, err := app.Cart.AddToCart(app.Session, b)
			if err != nil {
				return WrapExitError(ExitFailure, "add to cart", err)
			}
			out.RenderCartBadge(count)
			return nil
		},
	}
}

func newCartRemoveCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "remove <id-or-name>",
		Short:         "Remove a book's line from the cart",
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
				return WrapExitError(ExitFailure, "remove from cart", err)
			}
			out.RenderCartBadge(app.Cart.RemoveFromCart(app.Session, b.ID))
			return nil
		},
	}
}

func newCartIncCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "inc <id-or-name>",
		Short:         "Raise a cart line's quantity by one",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuantityStep(rootOpts, cmd, args[0], true)
		},
	}
}

func newCartDecCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "dec <id-or-name>",
		Short:         "Lower a cart line's quantity by one, removing it at zero",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuantityStep(rootOpts, cmd, args[0], false)
		},
	}
}

func runQuantityStep(rootOpts *RootOptions, cmd *cobra.Command, ref string, up bool) error {
	app, err := NewApp(rootOpts)
	if err != nil {
		return err
	}
	defer app.Close()
	out := app.Renderer(rootOpts, cmd.OutOrStdout())

	if err := requireAuth(app, out); err != nil {
		return err
	}
	b, err := app.ResolveBook(ref)
	if err != nil {
		return WrapExitError(ExitFailure, "adjust quantity", err)
	}
	if up {
		app.Cart.IncrementQuantity(app.Session, b.ID)
	} else {
		app.Cart.DecrementQuantity(app.Session, b.ID)
	}
	out.RenderCartBadge(app.Session.LineCount())
	return nil
}

func newCartClearCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "clear",
		Short:         "Empty the cart",
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

			if err := requireAuth(app, out); err != nil {
				return err
			}
			app.Cart.ClearCart(app.Session)
			out.RenderCartBadge(0)
			return nil
		},
	}
}

func newCartShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "show",
		Short:         "Show cart lines and the running total",
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

			out.RenderCart(app.Session.Lines(), app.Cart.Total(app.Session))
			return nil
		},
	}
}

func newCartCheckoutCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "checkout",
		Short:         "Settle the cart total and empty the cart",
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

			if err := requireAuth(app, out); err != nil {
				return err
			}
			total, err := app.Cart.Checkout(app.Session)
			if err != nil {
				if err == cart.ErrEmptyCart {
					out.Notify("cart is empty")
					return NewExitError(ExitFailure, "cart is empty")
				}
				return WrapExitError(ExitFailure, "checkout", err)
			}
			out.Notify("checked out ¥" + total.StringFixed(2))
			return nil
		},
	}
}
