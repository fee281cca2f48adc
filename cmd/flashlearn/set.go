package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"github.com/flashlearn/flashlearn/internal/card"
	"github.com/flashlearn/flashlearn/internal/config"
	"github.com/flashlearn/flashlearn/internal/learning"
	"github.com/flashlearn/flashlearn/internal/statistics"
)

func newSetCommand() *cobra.Command {
	setCommand := &cobra.Command{
		Use:   "set",
		Short: "Manage study sets",
	}

	setCommand.AddCommand(
		newSetListCommand(),
		newSetCreateCommand(),
		newSetRenameCommand(),
		newSetDeleteCommand(),
		newSetStatsCommand(),
		newSetResetCommand(),
	)
	return setCommand
}

func newSetListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the study sets, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(cmd.Context(), func(cfg *config.Config, db *sqlx.DB) error {
				sets, err := card.NewDBRepository(db).ListSets(cmd.Context())
				if err != nil {
					return err
				}
				return printSets(cmd.OutOrStdout(), sets)
			})
		},
	}
}

func printSets(w io.Writer, sets []card.Set) error {
	if len(sets) == 0 {
		_, err := fmt.Fprintln(w, "No sets found. Create one with `set create` or `import`.")
		return err
	}
	for _, set := range sets {
		if _, err := fmt.Fprintf(w, "%d\t%s\t%d cards\n", set.ID, set.Name, set.CardCount); err != nil {
			return err
		}
	}
	return nil
}

func newSetCreateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "create <name>",
		Short: "Create an empty study set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(args[0])
			return withDatabase(cmd.Context(), func(cfg *config.Config, db *sqlx.DB) error {
				setID, err := card.NewDBRepository(db).CreateSet(cmd.Context(), name, nil)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "Created the set %d: %s\n", setID, name)
				return err
			})
		},
	}
}

func newSetRenameCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <set id> <name>",
		Short: "Rename a study set",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			setID, err := parseID("set id", args[0])
			if err != nil {
				return err
			}
			name := strings.TrimSpace(args[1])
			return withDatabase(cmd.Context(), func(cfg *config.Config, db *sqlx.DB) error {
				if err := card.NewDBRepository(db).RenameSet(cmd.Context(), setID, name); err != nil {
					return err
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "Renamed the set %d to %s\n", setID, name)
				return err
			})
		},
	}
}

func newSetDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <set id>",
		Short: "Delete a study set with its cards and progress",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			setID, err := parseID("set id", args[0])
			if err != nil {
				return err
			}
			return withDatabase(cmd.Context(), func(cfg *config.Config, db *sqlx.DB) error {
				if err := card.NewDBRepository(db).DeleteSet(cmd.Context(), setID); err != nil {
					return err
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "Deleted the set %d\n", setID)
				return err
			})
		},
	}
}

func newSetStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats <set id>",
		Short: "Show how many cards of a set are new, learning, mastered and due",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			setID, err := parseID("set id", args[0])
			if err != nil {
				return err
			}
			return withDatabase(cmd.Context(), func(cfg *config.Config, db *sqlx.DB) error {
				set, err := card.NewDBRepository(db).GetSet(cmd.Context(), setID)
				if err != nil {
					return err
				}
				repo := learning.NewDBRepository(db,
					learning.WithMasteredIntervalDays(cfg.Learning.MasteredIntervalDays),
				)
				stats, err := repo.SetStatistics(cmd.Context(), setID)
				if err != nil {
					return err
				}
				return printStatistics(cmd.OutOrStdout(), *set, stats)
			})
		},
	}
}

func printStatistics(w io.Writer, set card.Set, stats statistics.SetStatistics) error {
	_, err := fmt.Fprintf(w, "%s\n  total:    %d\n  new:      %d\n  learning: %d\n  mastered: %d\n  due:      %d\n",
		set.Name, stats.Total, stats.New, stats.Learning, stats.Mastered, stats.Due)
	return err
}

func newSetResetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reset <set id>",
		Short: "Forget the learning progress of every card in a set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			setID, err := parseID("set id", args[0])
			if err != nil {
				return err
			}
			return withDatabase(cmd.Context(), func(cfg *config.Config, db *sqlx.DB) error {
				if _, err := card.NewDBRepository(db).GetSet(cmd.Context(), setID); err != nil {
					return err
				}
				removed, err := learning.NewDBRepository(db).ResetProgress(cmd.Context(), setID)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "Reset the progress of %d cards\n", removed)
				return err
			})
		},
	}
}
