package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/marketwatch/pricewatch/internal/views"
)

func productCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "product <id>",
		Short: "Show a product with its offers and price history",
		Long: "Show one product's detail: every live offer sorted by total\n" +
			"price and the price history of the cheapest offer as a chart.",
		Example: `  pricewatch product 42
  pricewatch product 42 --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid product id %q: expected a positive integer", args[0])
			}

			env, err := newEnv()
			if err != nil {
				return err
			}

			view := views.NewProductView(env.client, env.cache)

			res := view.Run(cmd.Context(), progressWriter(), id)
			if res.Err != nil {
				env.log.Error("product detail failed", "product_id", id, "error", res.Err)
			}
			if jsonOutput() {
				return outputJSON(os.Stdout, res.Data)
			}
			return view.Render(os.Stdout, id, res)
		},
	}
}
