// Package cmd implements the pricewatch CLI commands.
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	apiclient "github.com/marketwatch/pricewatch/internal/api/client"
	"github.com/marketwatch/pricewatch/internal/config"
	"github.com/marketwatch/pricewatch/internal/metrics"
	"github.com/marketwatch/pricewatch/internal/query"
	"github.com/marketwatch/pricewatch/pkg/logger"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "pricewatch",
		Short: "CLI client for the marketwatch price-comparison API",
		Long: "pricewatch is a command-line client for the marketwatch price\n" +
			"comparison service. It searches the catalog, shows product detail\n" +
			"with offers and price history, and manages price-target watches.",
	}
)

// Root returns the root cobra command for documentation generation.
func Root() *cobra.Command {
	return rootCmd
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().
		StringVar(&cfgFile, "config", "", "config file (default $HOME/.pricewatch.yaml)")
	rootCmd.PersistentFlags().
		String("server", "http://localhost:8000", "API server URL")
	rootCmd.PersistentFlags().
		String("output", "table", "output format (table, json)")
	rootCmd.PersistentFlags().
		Int("user", 1, "acting user id for watch operations")

	cobra.CheckErr(viper.BindPFlag("api.base_url", rootCmd.PersistentFlags().Lookup("server")))
	cobra.CheckErr(viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output")))
	cobra.CheckErr(viper.BindPFlag("user.id", rootCmd.PersistentFlags().Lookup("user")))

	rootCmd.AddCommand(searchCmd())
	rootCmd.AddCommand(productCmd())
	rootCmd.AddCommand(watchesCmd())
}

func initConfig() {
	config.SetDefaults(viper.GetViper())

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".pricewatch")
	}

	viper.SetEnvPrefix("PRICEWATCH")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// env bundles the per-invocation application wiring: config, logger, API
// client, and one query cache shared by every view in this process.
type env struct {
	cfg    *config.Config
	log    *slog.Logger
	client *apiclient.Client
	cache  *query.Cache
}

func newEnv() (*env, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, err
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	client := apiclient.New(cfg.API.BaseURL,
		apiclient.WithLogger(log),
		apiclient.WithLimiter(apiclient.NewLimiter(cfg.API.RatePerSecond, cfg.API.RateBurst)),
	)
	cache := query.NewCache(
		query.WithStaleness(cfg.Cache.Staleness),
		query.WithSize(cfg.Cache.Size),
		query.WithMetrics(metrics.New()),
		query.WithLogger(log),
	)

	return &env{cfg: cfg, log: log, client: client, cache: cache}, nil
}

func jsonOutput() bool {
	return viper.GetString("output") == "json"
}

// progressWriter is where loading indicators go; suppressed in JSON mode
// so machine output stays clean.
func progressWriter() io.Writer {
	if jsonOutput() {
		return io.Discard
	}
	return os.Stderr
}
