package cli

import (
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/peizhen/bookfair/internal/query"
)

// ListOptions holds flags for the list command.
type ListOptions struct {
	*RootOptions
	Keyword     string
	Sort        string
	InStockOnly bool
	Random      int
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog entries through the query pipeline",
		Long: `List catalog entries, optionally filtered by keyword and stock
and ordered by a sort mode. Filtering runs before search, search before
sort; ties keep catalog order.

Example:
  bookfair list --keyword 三体
  bookfair list --sort priceAsc --in-stock
  bookfair list --random 4`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Keyword, "keyword", "", "substring to match against name, author, category, and intro")
	cmd.Flags().StringVar(&opts.Sort, "sort", "default", "sort mode (default|priceAsc|priceDesc|rating)")
	cmd.Flags().BoolVar(&opts.InStockOnly, "in-stock", false, "only show in-stock entries")
	cmd.Flags().IntVar(&opts.Random, "random", 0, "show N random displayable entries instead of the full pipeline")

	return cmd
}

func runList(opts *ListOptions, cmd *cobra.Command) error {
	app, err := NewApp(opts.RootOptions)
	if err != nil {
		return err
	}
	defer app.Close()
	out := app.Renderer(opts.RootOptions, cmd.OutOrStdout())

	if opts.Random > 0 {
		rng := rand.New(rand.NewSource(time.Now().UnixNano()))
		out.RenderResults(query.RandomPick(app.Catalog.All(), opts.Random, rng))
		return nil
	}

	mode, verr := query.ParseSortMode(opts.Sort)
	if verr != nil {
		out.Notify(verr.Error() + ", using default order")
	}
	results := query.Run(app.Catalog.All(), query.Filter{
		Keyword:     opts.Keyword,
		Sort:        mode,
		InStockOnly: opts.InStockOnly,
	})
	if len(results) == 0 && opts.Keyword != "" {
		out.Notify("no books match " + opts.Keyword)
		return nil
	}
	out.RenderResults(results)
	return nil
}
