package database

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/flashlearn/flashlearn/internal/card"
)

// StarterSetName is the name of the set inserted into an empty database
const StarterSetName = "English Basics"

var starterCards = []card.Draft{
	{Question: "Dog", CorrectAnswer: "Pies"},
	{Question: "Colour of the sky?", CorrectAnswer: "Blue", WrongAnswers: []string{"Red", "Green", "Yellow"}, AnswerKind: card.TextChoice},
	{Question: "'Chicken' in Polish is...", CorrectAnswer: "Kurczak", WrongAnswers: []string{"Indyk", "Kaczka", "Gęś"}, AnswerKind: card.TextChoice},
	{Question: "'Trousers' in Polish is...", CorrectAnswer: "Spodnie", WrongAnswers: []string{"Krótkie spodenki", "Buty", "Piżama"}, AnswerKind: card.TextChoice},
	{Question: "Largest planet of the Solar System", CorrectAnswer: "Jupiter", AnswerKind: card.Input},
}

// Seed inserts the starter set when there are no sets yet. It reports whether anything was inserted.
func Seed(ctx context.Context, repo card.Repository) (bool, error) {
	sets, err := repo.ListSets(ctx)
	if err != nil {
		return false, fmt.Errorf("repo.ListSets() > %w", err)
	}
	if len(sets) > 0 {
		return false, nil
	}

	setID, err := repo.CreateSet(ctx, StarterSetName, starterCards)
	if err != nil {
		return false, fmt.Errorf("repo.CreateSet() > %w", err)
	}
	slog.Default().Info("seeded starter set", slog.Int64("set_id", setID), slog.Int("cards", len(starterCards)))
	return true, nil
}
