package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jkoster/webfolio/internal/config"
	"github.com/jkoster/webfolio/internal/observability"
	"github.com/jkoster/webfolio/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history <session-id>",
	Short: "Show the action history of a stored session",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistory,
}

var (
	historyDBURL  string
	historyConfig string
)

func init() {
	historyCmd.Flags().StringVar(&historyDBURL, "db-url", "", "PostgreSQL URL (overrides DATABASE_URL)")
	historyCmd.Flags().StringVarP(&historyConfig, "config", "c", "", "Path to JSON config file")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(_ *cobra.Command, args []string) error {
	cfg, err := resolveConfig(config.Config{
		DatabaseURL: databaseURL(historyDBURL),
	}, historyConfig)
	if err != nil {
		return err
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("a database is required (--db-url or DATABASE_URL)")
	}

	id, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid session ID %q: %w", args[0], err)
	}

	ctx := context.Background()
	db, err := store.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	entries, err := db.History(ctx, id)
	if err != nil {
		return err
	}
	observability.NewPrinter(os.Stdout).PrintHistory(entries)
	return nil
}
