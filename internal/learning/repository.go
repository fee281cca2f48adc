// Package learning provides review sessions, card selection strategies and progress persistence.
package learning

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/flashlearn/flashlearn/internal/card"
	"github.com/flashlearn/flashlearn/internal/sm2"
	"github.com/flashlearn/flashlearn/internal/statistics"
)

// DBRepository implements Store using sqlx.
type DBRepository struct {
	db                   *sqlx.DB
	now                  func() time.Time
	rng                  *rand.Rand
	masteredIntervalDays int
}

type Option func(*DBRepository)

// WithClock replaces time.Now for computing today's date
func WithClock(now func() time.Time) Option {
	return func(r *DBRepository) {
		r.now = now
	}
}

// WithRand sets the random source used to sample cards
func WithRand(rng *rand.Rand) Option {
	return func(r *DBRepository) {
		r.rng = rng
	}
}

// WithMasteredIntervalDays sets the interval from which a card counts as mastered
func WithMasteredIntervalDays(days int) Option {
	return func(r *DBRepository) {
		r.masteredIntervalDays = days
	}
}

// NewDBRepository creates a new DBRepository.
func NewDBRepository(db *sqlx.DB, opts ...Option) *DBRepository {
	r := &DBRepository{
		db:                   db,
		now:                  time.Now,
		masteredIntervalDays: statistics.DefaultMasteredIntervalDays,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var _ Store = (*DBRepository)(nil)

func (r *DBRepository) today() string {
	return r.now().Format(time.DateOnly)
}

// CalculateNextDate returns today plus daysFromNow as YYYY-MM-DD.
func (r *DBRepository) CalculateNextDate(daysFromNow int) string {
	return r.now().AddDate(0, 0, daysFromNow).Format(time.DateOnly)
}

// GetCardProgress returns the progress of a card, or the default progress if it has no record.
func (r *DBRepository) GetCardProgress(ctx context.Context, cardID int64) (sm2.Progress, error) {
	var progress sm2.Progress
	err := r.db.GetContext(ctx, &progress,
		"SELECT interval_days, repetitions, easiness_factor FROM learning_progress WHERE card_id = ?", cardID)
	if errors.Is(err, sql.ErrNoRows) {
		return sm2.DefaultProgress(), nil
	}
	if err != nil {
		return sm2.Progress{}, fmt.Errorf("db.GetContext(learning_progress) > %w", err)
	}
	return progress, nil
}

// UpdateCardProgress inserts or replaces the progress of a card.
func (r *DBRepository) UpdateCardProgress(ctx context.Context, cardID int64, progress sm2.Progress, nextReviewDate string) error {
	query := `INSERT INTO learning_progress (card_id, interval_days, repetitions, easiness_factor, next_review_date)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(card_id) DO UPDATE SET
			interval_days = excluded.interval_days,
			repetitions = excluded.repetitions,
			easiness_factor = excluded.easiness_factor,
			next_review_date = excluded.next_review_date`
	if r.db.DriverName() == "mysql" {
		query = `INSERT INTO learning_progress (card_id, interval_days, repetitions, easiness_factor, next_review_date)
		VALUES (?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			interval_days = VALUES(interval_days),
			repetitions = VALUES(repetitions),
			easiness_factor = VALUES(easiness_factor),
			next_review_date = VALUES(next_review_date)`
	}

	if _, err := r.db.ExecContext(ctx, query,
		cardID, progress.IntervalDays, progress.Repetitions, progress.EasinessFactor, nextReviewDate); err != nil {
		return fmt.Errorf("db.ExecContext(upsert learning_progress) > %w", err)
	}
	return nil
}

// GetDueCards returns cards of a set that were never reviewed or whose review date is today or earlier.
// Never reviewed cards come first, then the oldest review date.
func (r *DBRepository) GetDueCards(ctx context.Context, setID int64, limit int) ([]card.Card, error) {
	if limit <= 0 {
		return nil, nil
	}

	var rows []card.Row
	if err := r.db.SelectContext(ctx, &rows,
		`SELECT `+card.Columns+`
		FROM cards c LEFT JOIN learning_progress p ON p.card_id = c.id
		WHERE c.set_id = ? AND (p.next_review_date IS NULL OR p.next_review_date <= ?)
		ORDER BY (p.next_review_date IS NOT NULL), p.next_review_date, c.id
		LIMIT ?`,
		setID, r.today(), limit); err != nil {
		return nil, fmt.Errorf("db.SelectContext(due cards) > %w", err)
	}
	return card.FromRows(rows)
}

// GetRandomCards returns up to limit distinct cards of a set in random order.
func (r *DBRepository) GetRandomCards(ctx context.Context, setID int64, limit int) ([]card.Card, error) {
	if limit <= 0 {
		return nil, nil
	}

	var rows []card.Row
	if err := r.db.SelectContext(ctx, &rows,
		"SELECT "+card.Columns+" FROM cards c WHERE c.set_id = ? ORDER BY c.id", setID); err != nil {
		return nil, fmt.Errorf("db.SelectContext(cards) > %w", err)
	}

	var perm []int
	if r.rng == nil {
		perm = rand.Perm(len(rows))
	} else {
		perm = r.rng.Perm(len(rows))
	}
	if len(perm) > limit {
		perm = perm[:limit]
	}

	sample := make([]card.Row, 0, len(perm))
	for _, i := range perm {
		sample = append(sample, rows[i])
	}
	return card.FromRows(sample)
}

// ResetProgress deletes the progress of every card in a set and returns how many records were removed.
func (r *DBRepository) ResetProgress(ctx context.Context, setID int64) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM learning_progress WHERE card_id IN (SELECT id FROM cards WHERE set_id = ?)", setID)
	if err != nil {
		return 0, fmt.Errorf("db.ExecContext(delete learning_progress) > %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("result.RowsAffected() > %w", err)
	}
	return n, nil
}

// FindProgressBySet returns every card of a set with its progress record, if any.
func (r *DBRepository) FindProgressBySet(ctx context.Context, setID int64) ([]CardProgress, error) {
	var rows []CardProgress
	if err := r.db.SelectContext(ctx, &rows,
		`SELECT c.id AS card_id, p.interval_days, p.repetitions, p.easiness_factor, p.next_review_date,
			(p.card_id IS NOT NULL) AS has_progress
		FROM cards c LEFT JOIN learning_progress p ON p.card_id = c.id
		WHERE c.set_id = ?
		ORDER BY c.id`, setID); err != nil {
		return nil, fmt.Errorf("db.SelectContext(progress by set) > %w", err)
	}
	return rows, nil
}

// SetStatistics counts new, learning, mastered and due cards of a set.
func (r *DBRepository) SetStatistics(ctx context.Context, setID int64) (statistics.SetStatistics, error) {
	rows, err := r.FindProgressBySet(ctx, setID)
	if err != nil {
		return statistics.SetStatistics{}, err
	}
	states := make([]statistics.CardState, 0, len(rows))
	for _, row := range rows {
		states = append(states, row.State())
	}
	return statistics.Calculate(states, r.today(), r.masteredIntervalDays), nil
}
