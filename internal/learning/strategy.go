package learning

import (
	"context"
	"fmt"

	"github.com/flashlearn/flashlearn/internal/card"
)

// Strategy decides which cards enter a session
type Strategy interface {
	SelectCards(ctx context.Context, src CardSource, setID int64, limit int) ([]card.Card, error)
}

// DueStrategy selects cards that were never reviewed or are due for review
type DueStrategy struct{}

func (DueStrategy) SelectCards(ctx context.Context, src CardSource, setID int64, limit int) ([]card.Card, error) {
	cards, err := src.GetDueCards(ctx, setID, limit)
	if err != nil {
		return nil, fmt.Errorf("src.GetDueCards() > %w", err)
	}
	return cards, nil
}

// RandomStrategy selects a random sample of the set regardless of progress
type RandomStrategy struct{}

func (RandomStrategy) SelectCards(ctx context.Context, src CardSource, setID int64, limit int) ([]card.Card, error) {
	cards, err := src.GetRandomCards(ctx, setID, limit)
	if err != nil {
		return nil, fmt.Errorf("src.GetRandomCards() > %w", err)
	}
	return cards, nil
}

var (
	_ Strategy = DueStrategy{}
	_ Strategy = RandomStrategy{}
)

// Mode names a selection strategy
type Mode string

const (
	ModeDue    Mode = "due"
	ModeRandom Mode = "random"
)

// ParseMode validates a mode name
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeDue, ModeRandom:
		return Mode(s), nil
	}
	return "", fmt.Errorf("invalid mode %q, valid values are %q or %q", s, ModeDue, ModeRandom)
}

// StrategyFor returns the strategy for a mode
func StrategyFor(mode Mode) (Strategy, error) {
	switch mode {
	case ModeDue:
		return DueStrategy{}, nil
	case ModeRandom:
		return RandomStrategy{}, nil
	}
	return nil, fmt.Errorf("invalid mode %q", mode)
}
