package learning

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/flashlearn/flashlearn/internal/card"
	"github.com/flashlearn/flashlearn/internal/sm2"
)

// State is the lifecycle state of a Session
type State int

const (
	// StateEmpty is a session that was never started or selected no cards
	StateEmpty State = iota
	// StatePresenting has a current card waiting for a grade
	StatePresenting
	// StateGraded has a graded current card waiting for Next
	StateGraded
	// StateFinished has shown every queued card
	StateFinished
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StatePresenting:
		return "presenting"
	case StateGraded:
		return "graded"
	case StateFinished:
		return "finished"
	}
	return "unknown"
}

// Summary counts the grades submitted during a session
type Summary struct {
	Reviewed int
	Passed   int
	Failed   int
}

// Session runs one review pass over a set.
// Cards are presented from a FIFO queue and a failed card goes back to its tail.
// A Session is not safe for concurrent use.
type Session struct {
	store  Store
	logger *slog.Logger

	queue        []card.Card
	current      *card.Card
	initialCount int
	state        State
	summary      Summary
}

type SessionOption func(*Session)

func WithLogger(logger *slog.Logger) SessionOption {
	return func(s *Session) {
		s.logger = logger
	}
}

// NewSession creates an empty session backed by store
func NewSession(store Store, opts ...SessionOption) *Session {
	s := &Session{
		store:  store,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start selects the cards of a set with strategy and moves to the first one.
// It returns ErrEmptySession when the strategy selects nothing.
func (s *Session) Start(ctx context.Context, setID int64, strategy Strategy, limit int) error {
	if strategy == nil {
		return ErrNoStrategy
	}

	cards, err := strategy.SelectCards(ctx, s.store, setID, limit)
	if err != nil {
		return fmt.Errorf("strategy.SelectCards() > %w", err)
	}

	s.queue = append([]card.Card(nil), cards...)
	s.initialCount = len(s.queue)
	s.current = nil
	s.summary = Summary{}
	s.state = StateEmpty
	if s.initialCount == 0 {
		return ErrEmptySession
	}

	s.logger.Debug("start a learning session",
		slog.Int64("set_id", setID),
		slog.Int("cards", s.initialCount),
	)
	s.Next()
	return nil
}

// Next moves the head of the queue into the current slot.
// It returns false and clears the current card when the queue is empty.
func (s *Session) Next() bool {
	if len(s.queue) == 0 {
		s.current = nil
		if s.initialCount > 0 {
			s.state = StateFinished
		}
		return false
	}

	next := s.queue[0]
	s.queue = s.queue[1:]
	s.current = &next
	s.state = StatePresenting
	return true
}

// Current returns the card being presented
func (s *Session) Current() (card.Card, error) {
	if s.current == nil {
		return card.Card{}, ErrNoActiveCard
	}
	return *s.current, nil
}

// SubmitGrade records a grade for the current card.
// A failing grade puts the card back at the end of the queue. The session does not advance.
func (s *Session) SubmitGrade(ctx context.Context, grade int) error {
	if s.current == nil {
		return ErrNoActiveCard
	}
	if s.state == StateGraded {
		return ErrAlreadyGraded
	}
	if !sm2.IsValidGrade(grade) {
		return fmt.Errorf("%w: %d", ErrInvalidGrade, grade)
	}

	current := *s.current
	progress, err := s.store.GetCardProgress(ctx, current.ID)
	if err != nil {
		return fmt.Errorf("store.GetCardProgress() > %w", err)
	}

	updated := sm2.Calculate(grade, progress)
	nextReviewDate := s.store.CalculateNextDate(updated.IntervalDays)
	if err := s.store.UpdateCardProgress(ctx, current.ID, updated, nextReviewDate); err != nil {
		s.logger.Warn("failed to save the learning progress",
			slog.Int64("card_id", current.ID),
			slog.Int("grade", grade),
			slog.Any("error", err),
		)
	}

	s.summary.Reviewed++
	if sm2.IsPassing(grade) {
		s.summary.Passed++
	} else {
		s.summary.Failed++
		s.queue = append(s.queue, current)
	}
	s.state = StateGraded

	s.logger.Debug("graded a card",
		slog.Int64("card_id", current.ID),
		slog.Int("grade", grade),
		slog.Int("interval_days", updated.IntervalDays),
		slog.String("next_review_date", nextReviewDate),
	)
	return nil
}

// Progress returns the completed fraction of the session.
// It can go down after a failed grade re-enqueues a card.
func (s *Session) Progress() float64 {
	if s.initialCount == 0 {
		return 0
	}
	return 1 - float64(len(s.queue))/float64(s.initialCount)
}

// Remaining returns the number of cards waiting in the queue
func (s *Session) Remaining() int {
	return len(s.queue)
}

func (s *Session) InitialCount() int {
	return s.initialCount
}

func (s *Session) State() State {
	return s.state
}

func (s *Session) Summary() Summary {
	return s.summary
}
