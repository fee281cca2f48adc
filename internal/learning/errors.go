package learning

import "errors"

var (
	// ErrEmptySession is returned by Start when the strategy selected no cards.
	// It is distinct from a session that ended because every card was reviewed.
	ErrEmptySession = errors.New("no cards to learn")
	// ErrNoActiveCard is returned when there is no card being presented
	ErrNoActiveCard = errors.New("no active card")
	// ErrNoStrategy is returned by Start without a selection strategy
	ErrNoStrategy   = errors.New("selection strategy must not be nil")
	ErrInvalidGrade = errors.New("grade must be between 0 and 5")
	// ErrAlreadyGraded is returned when the current card was graded and Next was not called yet
	ErrAlreadyGraded = errors.New("current card is already graded")
)
