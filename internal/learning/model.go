package learning

import (
	"database/sql"

	"github.com/flashlearn/flashlearn/internal/sm2"
	"github.com/flashlearn/flashlearn/internal/statistics"
)

// CardProgress is a card joined with its optional progress record
type CardProgress struct {
	CardID         int64           `db:"card_id"`
	IntervalDays   sql.NullInt64   `db:"interval_days"`
	Repetitions    sql.NullInt64   `db:"repetitions"`
	EasinessFactor sql.NullFloat64 `db:"easiness_factor"`
	NextReviewDate sql.NullString  `db:"next_review_date"`
	HasProgress    bool            `db:"has_progress"`
}

// State converts the row for statistics
func (p CardProgress) State() statistics.CardState {
	if !p.HasProgress {
		return statistics.CardState{CardID: p.CardID}
	}
	progress := sm2.DefaultProgress()
	if p.IntervalDays.Valid {
		progress.IntervalDays = int(p.IntervalDays.Int64)
	}
	if p.Repetitions.Valid {
		progress.Repetitions = int(p.Repetitions.Int64)
	}
	if p.EasinessFactor.Valid {
		progress.EasinessFactor = p.EasinessFactor.Float64
	}
	return statistics.CardState{
		CardID:         p.CardID,
		Reviewed:       true,
		Progress:       progress,
		NextReviewDate: p.NextReviewDate.String,
	}
}
