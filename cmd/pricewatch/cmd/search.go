package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/marketwatch/pricewatch/internal/views"
)

func searchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search the catalog and compare best prices",
		Long: "Search products by name, brand, model code, or GTIN and show\n" +
			"each match with its best total price across marketplaces.",
		Example: `  pricewatch search "갤럭시 S24"
  pricewatch search SM-S921N --output json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newEnv()
			if err != nil {
				return err
			}

			term := strings.Join(args, " ")
			view := views.NewSearchView(env.client, env.cache)

			res := view.Run(cmd.Context(), progressWriter(), term)
			if res.Err != nil {
				env.log.Error("search failed", "query", term, "error", res.Err)
			}
			if jsonOutput() {
				return outputJSON(os.Stdout, res.Data)
			}
			return view.Render(os.Stdout, term, res)
		},
	}
}
