package main

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"github.com/flashlearn/flashlearn/internal/card"
	"github.com/flashlearn/flashlearn/internal/config"
	"github.com/flashlearn/flashlearn/internal/database"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the database tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// openDatabase applies the migrations
			return withDatabase(cmd.Context(), func(cfg *config.Config, db *sqlx.DB) error {
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "Migrated the %s database\n", cfg.Database.Driver)
				return err
			})
		},
	}
}

func newSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert a starter set into an empty database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(cmd.Context(), func(cfg *config.Config, db *sqlx.DB) error {
				inserted, err := database.Seed(cmd.Context(), card.NewDBRepository(db))
				if err != nil {
					return err
				}
				if !inserted {
					_, err = fmt.Fprintln(cmd.OutOrStdout(), "The database already has sets, nothing to seed")
					return err
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "Added the set %q\n", database.StarterSetName)
				return err
			})
		},
	}
}
