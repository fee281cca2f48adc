package main

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/flashlearn/flashlearn/internal/card"
	"github.com/flashlearn/flashlearn/internal/cli"
	"github.com/flashlearn/flashlearn/internal/config"
	"github.com/flashlearn/flashlearn/internal/learning"
)

type ModeFlag learning.Mode

// Set implements pflag.Value.
func (m *ModeFlag) Set(v string) error {
	mode, err := learning.ParseMode(v)
	if err != nil {
		return err
	}
	*m = ModeFlag(mode)
	return nil
}

// String implements pflag.Value.
func (m *ModeFlag) String() string {
	if m == nil {
		return ""
	}
	return string(*m)
}

// Type implements pflag.Value.
func (m *ModeFlag) Type() string {
	return "ModeFlag"
}

var (
	_ pflag.Value = (*ModeFlag)(nil)
)

func newLearnCommand() *cobra.Command {
	var (
		modeFlag ModeFlag
		limit    int
		seed     uint64
	)
	command := &cobra.Command{
		Use:   "learn <set id>",
		Short: "Review the cards of a set with spaced repetition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			setID, err := parseID("set id", args[0])
			if err != nil {
				return err
			}

			return withDatabase(cmd.Context(), func(cfg *config.Config, db *sqlx.DB) error {
				mode := learning.Mode(modeFlag)
				if mode == "" {
					if mode, err = learning.ParseMode(cfg.Learning.DefaultMode); err != nil {
						return err
					}
				}
				if !cmd.Flags().Changed("limit") {
					limit = cfg.Learning.DefaultLimit
				}
				strategy, err := learning.StrategyFor(mode)
				if err != nil {
					return err
				}

				set, err := card.NewDBRepository(db).GetSet(cmd.Context(), setID)
				if err != nil {
					return err
				}

				repoOptions := []learning.Option{
					learning.WithMasteredIntervalDays(cfg.Learning.MasteredIntervalDays),
				}
				quizOptions := []cli.Option{
					cli.WithIO(cmd.InOrStdin(), cmd.OutOrStdout()),
				}
				if cmd.Flags().Changed("seed") {
					repoOptions = append(repoOptions, learning.WithRand(rand.New(rand.NewPCG(seed, seed))))
					quizOptions = append(quizOptions, cli.WithRand(rand.New(rand.NewPCG(seed, seed+1))))
				}

				session := learning.NewSession(learning.NewDBRepository(db, repoOptions...))
				if err := session.Start(cmd.Context(), setID, strategy, limit); err != nil {
					if errors.Is(err, learning.ErrEmptySession) {
						_, err = fmt.Fprintf(cmd.OutOrStdout(), "Nothing to learn in %s right now\n", set.Name)
						return err
					}
					return err
				}

				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "Learning %s: %d cards (%s)\n\n", set.Name, session.InitialCount(), mode); err != nil {
					return err
				}
				return cli.NewLearningQuizCLI(session, quizOptions...).Run(cmd.Context())
			})
		},
	}

	flags := command.Flags()
	flags.Var(&modeFlag, "mode", "Card selection. Options: due, random (default from the config)")
	flags.IntVarP(&limit, "limit", "n", 0, "maximum number of cards (default from the config)")
	flags.Uint64Var(&seed, "seed", 0, "seed for the random card order and choices")
	return command
}
