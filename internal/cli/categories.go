package cli

import (
	"github.com/spf13/cobra"
)

// NewCategoriesCommand creates the categories command.
func NewCategoriesCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "categories",
		Short:         "Show per-category book counts",
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

			out.RenderCategories(app.Catalog.Categories())
			return nil
		},
	}
}
