package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"github.com/flashlearn/flashlearn/internal/card"
	"github.com/flashlearn/flashlearn/internal/config"
)

func newCardCommand() *cobra.Command {
	cardCommand := &cobra.Command{
		Use:   "card",
		Short: "Manage the cards of a study set",
	}

	cardCommand.AddCommand(
		newCardListCommand(),
		newCardAddCommand(),
		newCardDeleteCommand(),
	)
	return cardCommand
}

func newCardListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list <set id>",
		Short: "List the cards of a set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			setID, err := parseID("set id", args[0])
			if err != nil {
				return err
			}
			return withDatabase(cmd.Context(), func(cfg *config.Config, db *sqlx.DB) error {
				repo := card.NewDBRepository(db)
				if _, err := repo.GetSet(cmd.Context(), setID); err != nil {
					return err
				}
				cards, err := repo.ListCards(cmd.Context(), setID)
				if err != nil {
					return err
				}
				return printCards(cmd.OutOrStdout(), cards)
			})
		},
	}
}

func printCards(w io.Writer, cards []card.Card) error {
	if len(cards) == 0 {
		_, err := fmt.Fprintln(w, "The set has no cards")
		return err
	}
	for _, c := range cards {
		line := fmt.Sprintf("%d\t%s\t%s\t%s", c.ID, c.AnswerKind, c.QuestionText(), c.CorrectAnswer)
		if c.IsChoiceCard() {
			line += fmt.Sprintf("\t(wrong: %s)", strings.Join(c.WrongAnswers, ", "))
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func newCardAddCommand() *cobra.Command {
	var (
		question     string
		answer       string
		wrongAnswers []string
		kind         string
		mediaType    string
	)
	command := &cobra.Command{
		Use:   "add <set id>",
		Short: "Add a card to a set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			setID, err := parseID("set id", args[0])
			if err != nil {
				return err
			}
			answerKind, err := card.ParseAnswerKind(kind)
			if err != nil {
				return err
			}
			media, err := card.ParseMediaType(mediaType)
			if err != nil {
				return err
			}
			draft := card.Draft{
				Question:      question,
				MediaType:     media,
				CorrectAnswer: answer,
				WrongAnswers:  wrongAnswers,
				AnswerKind:    answerKind,
			}

			return withDatabase(cmd.Context(), func(cfg *config.Config, db *sqlx.DB) error {
				cardID, err := card.NewDBRepository(db).AddCard(cmd.Context(), setID, draft)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "Added the card %d to the set %d\n", cardID, setID)
				return err
			})
		},
	}

	flags := command.Flags()
	flags.StringVarP(&question, "question", "q", "", "question text, or the media path for image and sound cards")
	flags.StringVarP(&answer, "answer", "a", "", "correct answer")
	flags.StringSliceVarP(&wrongAnswers, "wrong", "w", nil, "wrong answers shown as choices, up to 3")
	flags.StringVar(&kind, "kind", "", "answer kind. Options: flashcard, text_choice, sound_choice, image_choice, input")
	flags.StringVar(&mediaType, "media", "", "question media type. Options: text, image, sound")
	_ = command.MarkFlagRequired("question")
	_ = command.MarkFlagRequired("answer")
	return command
}

func newCardDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <card id>",
		Short: "Delete a card with its progress",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cardID, err := parseID("card id", args[0])
			if err != nil {
				return err
			}
			return withDatabase(cmd.Context(), func(cfg *config.Config, db *sqlx.DB) error {
				if err := card.NewDBRepository(db).DeleteCard(cmd.Context(), cardID); err != nil {
					return err
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "Deleted the card %d\n", cardID)
				return err
			})
		},
	}
}
