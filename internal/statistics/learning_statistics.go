// Package statistics classifies the cards of a set by how far they have been learned.
package statistics

import (
	"github.com/flashlearn/flashlearn/internal/sm2"
)

// DefaultMasteredIntervalDays is the interval from which a card counts as mastered
const DefaultMasteredIntervalDays = 21

// Stage is the learning stage of a single card
type Stage int

const (
	StageNew Stage = iota
	StageLearning
	StageMastered
)

func (s Stage) String() string {
	switch s {
	case StageNew:
		return "new"
	case StageLearning:
		return "learning"
	case StageMastered:
		return "mastered"
	}
	return "unknown"
}

// CardState is the stored scheduling state of one card.
// Reviewed is false when the card has no progress record.
type CardState struct {
	CardID         int64
	Reviewed       bool
	Progress       sm2.Progress
	NextReviewDate string
}

// SetStatistics holds the counts for one set
type SetStatistics struct {
	Total    int
	New      int
	Learning int
	Mastered int
	// Due counts cards that are new or whose review date is today or earlier
	Due int
}

// Classify returns the learning stage of a card.
// A card without a record or without a successful repetition is new.
func Classify(state CardState, masteredIntervalDays int) Stage {
	if !state.Reviewed || state.Progress.Repetitions == 0 {
		return StageNew
	}
	if state.Progress.IntervalDays >= masteredIntervalDays {
		return StageMastered
	}
	return StageLearning
}

// IsDue reports whether the card would be selected for a due review on today (YYYY-MM-DD)
func IsDue(state CardState, today string) bool {
	return !state.Reviewed || state.NextReviewDate == "" || state.NextReviewDate <= today
}

// Calculate aggregates the states of one set.
// A non-positive masteredIntervalDays falls back to DefaultMasteredIntervalDays.
func Calculate(states []CardState, today string, masteredIntervalDays int) SetStatistics {
	if masteredIntervalDays <= 0 {
		masteredIntervalDays = DefaultMasteredIntervalDays
	}

	stats := SetStatistics{Total: len(states)}
	for _, state := range states {
		switch Classify(state, masteredIntervalDays) {
		case StageNew:
			stats.New++
		case StageLearning:
			stats.Learning++
		case StageMastered:
			stats.Mastered++
		}
		if IsDue(state, today) {
			stats.Due++
		}
	}
	return stats
}
