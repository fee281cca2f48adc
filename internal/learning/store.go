package learning

import (
	"context"

	"github.com/flashlearn/flashlearn/internal/card"
	"github.com/flashlearn/flashlearn/internal/sm2"
)

//go:generate mockgen -source=store.go -destination=../mocks/learning/mock_store.go -package=mock_learning

// CardSource provides the queries behind the selection strategies
type CardSource interface {
	// GetDueCards returns cards never reviewed or due today, nulls first then by review date
	GetDueCards(ctx context.Context, setID int64, limit int) ([]card.Card, error)
	// GetRandomCards returns up to limit distinct cards in random order
	GetRandomCards(ctx context.Context, setID int64, limit int) ([]card.Card, error)
}

// ProgressStore reads and writes the scheduling state of cards
type ProgressStore interface {
	// GetCardProgress returns sm2.DefaultProgress for a card without a record
	GetCardProgress(ctx context.Context, cardID int64) (sm2.Progress, error)
	// UpdateCardProgress inserts or replaces the record of a card
	UpdateCardProgress(ctx context.Context, cardID int64, progress sm2.Progress, nextReviewDate string) error
	// CalculateNextDate returns today plus daysFromNow as YYYY-MM-DD
	CalculateNextDate(daysFromNow int) string
}

// Store is everything a Session needs from persistence
type Store interface {
	CardSource
	ProgressStore
}
