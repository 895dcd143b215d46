package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/repositories"
	"storefront/internal/seed"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "storefront",
		Short: "Online store backend: catalog, cart, checkout and orders",
		Long: `storefront serves the shop API: product browsing, a session cart,
account login, checkout with shipping fees, order history and reviews.

Running it without a subcommand starts the HTTP server.`,
		SilenceUsage: true,
		RunE:         runServe,
	}

	rootCmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE:  runServe,
	})

	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the demo product catalog",
		Long: `Insert the demo catalog when the product table is empty.
Use --force to insert it again regardless.`,
		RunE: runSeed,
	}
	seedCmd.Flags().Bool("force", false, "seed even if products already exist")
	rootCmd.AddCommand(seedCmd)

	return rootCmd
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	setupLogging(cfg.LogLevel)
	return cfg, nil
}

func setupLogging(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	app, err := newApplication(cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return app.Run(ctx)
}

func runSeed(cmd *cobra.Command, _ []string) error {
	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := database.Open(databaseOptions(cfg))
	if err != nil {
		return err
	}
	defer database.Close(db)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	inserted, err := seed.Products(ctx, repositories.NewGORMProductRepository(db), force)
	if err != nil {
		return err
	}
	log.Info().Int("inserted", inserted).Msg("seeding finished")
	return nil
}
