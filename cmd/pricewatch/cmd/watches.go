package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/marketwatch/pricewatch/internal/views"
	"github.com/marketwatch/pricewatch/pkg/format"
)

func watchesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watches",
		Short: "Manage price-target watches",
		Long: "List, add, update, and delete price-target watches. A watch\n" +
			"pairs a product with a target price; when the best total price\n" +
			"drops to the target or below, the list marks it as reached.",
	}

	cmd.AddCommand(watchesListCmd())
	cmd.AddCommand(watchesAddCmd())
	cmd.AddCommand(watchesSetCmd())
	cmd.AddCommand(watchesDeleteCmd())

	return cmd
}

func newWatchListView(env *env) *views.WatchListView {
	return views.NewWatchListView(env.client, env.cache, env.cfg.User.ID)
}

func watchesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Short:   "List your watches",
		Example: `  pricewatch watches list`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := newEnv()
			if err != nil {
				return err
			}

			view := newWatchListView(env)
			res := view.Run(cmd.Context(), progressWriter())
			if res.Err != nil {
				env.log.Error("listing watches failed", "user_id", env.cfg.User.ID, "error", res.Err)
			}
			if jsonOutput() {
				return outputJSON(os.Stdout, res.Data)
			}
			return view.Render(os.Stdout, res)
		},
	}
}

func watchesAddCmd() *cobra.Command {
	var (
		productID int
		target    float64
	)

	cmd := &cobra.Command{
		Use:     "add",
		Short:   "Add a watch for a product at a target price",
		Example: `  pricewatch watches add --product 42 --target 990000`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if productID <= 0 {
				return fmt.Errorf("--product must be a positive product id")
			}
			if target <= 0 {
				return fmt.Errorf("--target must be a positive price")
			}

			env, err := newEnv()
			if err != nil {
				return err
			}

			view := newWatchListView(env)
			watch, err := view.Create(cmd.Context(), productID, target)
			if err != nil {
				return fmt.Errorf("creating watch: %w", err)
			}

			if jsonOutput() {
				return outputJSON(os.Stdout, watch)
			}
			fmt.Printf("모니터링 등록: %s, 목표가 %s (watch %d)\n",
				watch.Product.DisplayName(), format.Price(watch.TargetPrice), watch.ID)
			return nil
		},
	}

	cmd.Flags().IntVar(&productID, "product", 0, "product id to watch")
	cmd.Flags().Float64Var(&target, "target", 0, "target total price in KRW")
	cobra.CheckErr(cmd.MarkFlagRequired("product"))
	cobra.CheckErr(cmd.MarkFlagRequired("target"))

	return cmd
}

func watchesSetCmd() *cobra.Command {
	var (
		target float64
		active bool
	)

	cmd := &cobra.Command{
		Use:   "set <id>",
		Short: "Update a watch's target price or active flag",
		Example: `  pricewatch watches set 3 --target 950000
  pricewatch watches set 3 --active=false`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid watch id %q: expected a positive integer", args[0])
			}
			if !cmd.Flags().Changed("target") && !cmd.Flags().Changed("active") {
				return fmt.Errorf("nothing to update: pass --target and/or --active")
			}

			env, err := newEnv()
			if err != nil {
				return err
			}

			view := newWatchListView(env)
			ctx := cmd.Context()

			if cmd.Flags().Changed("target") {
				if target <= 0 {
					return fmt.Errorf("--target must be a positive price")
				}
				if _, err := view.SetTarget(ctx, id, target); err != nil {
					return fmt.Errorf("updating target price: %w", err)
				}
			}
			if cmd.Flags().Changed("active") {
				if _, err := view.SetActive(ctx, id, active); err != nil {
					return fmt.Errorf("updating active flag: %w", err)
				}
			}

			res := view.Run(ctx, progressWriter())
			if jsonOutput() {
				return outputJSON(os.Stdout, res.Data)
			}
			return view.Render(os.Stdout, res)
		},
	}

	cmd.Flags().Float64Var(&target, "target", 0, "new target total price in KRW")
	cmd.Flags().BoolVar(&active, "active", true, "enable or disable the watch")

	return cmd
}

func watchesDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "delete <id>",
		Short:   "Delete a watch",
		Example: `  pricewatch watches delete 3 --yes`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid watch id %q: expected a positive integer", args[0])
			}

			if !yes {
				fmt.Printf("watch %d 을(를) 삭제할까요? [y/N]: ", id)
				line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if answer := strings.ToLower(strings.TrimSpace(line)); answer != "y" && answer != "yes" {
					fmt.Println("취소했습니다.")
					return nil
				}
			}

			env, err := newEnv()
			if err != nil {
				return err
			}

			view := newWatchListView(env)
			if err := view.Delete(cmd.Context(), id); err != nil {
				return fmt.Errorf("deleting watch %d: %w", id, err)
			}

			fmt.Printf("watch %d 삭제 완료\n", id)
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "skip the confirmation prompt")

	return cmd
}
