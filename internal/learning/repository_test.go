package learning

import (
	"context"
	"errors"
	"math/rand/v2"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flashlearn/flashlearn/internal/card"
	"github.com/flashlearn/flashlearn/internal/sm2"
	"github.com/flashlearn/flashlearn/internal/statistics"
	"github.com/flashlearn/flashlearn/internal/testutil"
)

var testToday = time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)

func fixedClock() time.Time {
	return testToday
}

func TestDBRepository_GetCardProgress(t *testing.T) {
	query := regexp.QuoteMeta("SELECT interval_days, repetitions, easiness_factor FROM learning_progress WHERE card_id = ?")

	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		want      sm2.Progress
		wantErr   bool
	}{
		{
			name: "stored progress",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(query).WithArgs(int64(4)).
					WillReturnRows(sqlmock.NewRows([]string{"interval_days", "repetitions", "easiness_factor"}).AddRow(6, 2, 2.36))
			},
			want: sm2.Progress{IntervalDays: 6, Repetitions: 2, EasinessFactor: 2.36},
		},
		{
			name: "no record returns the default progress",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(query).WithArgs(int64(4)).
					WillReturnRows(sqlmock.NewRows([]string{"interval_days", "repetitions", "easiness_factor"}))
			},
			want: sm2.DefaultProgress(),
		},
		{
			name: "db error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(query).WithArgs(int64(4)).WillReturnError(errors.New("connection refused"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			repo := NewDBRepository(sqlx.NewDb(db, "sqlite"))
			tt.setupMock(mock)

			got, err := repo.GetCardProgress(context.Background(), 4)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDBRepository_UpdateCardProgress(t *testing.T) {
	progress := sm2.Progress{IntervalDays: 6, Repetitions: 2, EasinessFactor: 2.5}

	tests := []struct {
		name       string
		driver     string
		wantClause string
		execErr    error
		wantErr    bool
	}{
		{name: "sqlite upsert", driver: "sqlite", wantClause: "ON CONFLICT(card_id) DO UPDATE SET"},
		{name: "mysql upsert", driver: "mysql", wantClause: "ON DUPLICATE KEY UPDATE"},
		{name: "db error", driver: "sqlite", wantClause: "ON CONFLICT", execErr: errors.New("disk full"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			expect := mock.ExpectExec("INSERT INTO learning_progress .*"+regexp.QuoteMeta(tt.wantClause)).
				WithArgs(int64(9), 6, 2, 2.5, "2025-03-16")
			if tt.execErr != nil {
				expect.WillReturnError(tt.execErr)
			} else {
				expect.WillReturnResult(sqlmock.NewResult(0, 1))
			}

			repo := NewDBRepository(sqlx.NewDb(db, tt.driver))
			err = repo.UpdateCardProgress(context.Background(), 9, progress, "2025-03-16")
			if tt.wantErr {
				assert.ErrorContains(t, err, "disk full")
				return
			}
			require.NoError(t, err)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDBRepository_CalculateNextDate(t *testing.T) {
	repo := NewDBRepository(nil, WithClock(fixedClock))

	tests := []struct {
		days int
		want string
	}{
		{days: 0, want: "2025-03-10"},
		{days: 1, want: "2025-03-11"},
		{days: 6, want: "2025-03-16"},
		{days: 30, want: "2025-04-09"},
		{days: 365, want: "2026-03-10"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, repo.CalculateNextDate(tt.days))
	}
}

func TestDBRepository_GetDueCards(t *testing.T) {
	db := testutil.OpenTestDB(t)
	ctx := context.Background()
	repo := NewDBRepository(db, WithClock(fixedClock))

	setID, ids := testutil.CreateSet(t, db, "Planets", testutil.TextDrafts("Mercury", "Venus", "Earth", "Mars")...)
	otherSetID, otherIDs := testutil.CreateSet(t, db, "Colours", testutil.TextDrafts("Red")...)

	past, future, today, unseen := ids[0], ids[1], ids[3], ids[2]
	require.NoError(t, repo.UpdateCardProgress(ctx, past, sm2.Progress{IntervalDays: 1, Repetitions: 1, EasinessFactor: 2.5}, "2025-03-05"))
	require.NoError(t, repo.UpdateCardProgress(ctx, future, sm2.Progress{IntervalDays: 6, Repetitions: 2, EasinessFactor: 2.5}, "2025-03-20"))
	require.NoError(t, repo.UpdateCardProgress(ctx, today, sm2.Progress{IntervalDays: 1, Repetitions: 1, EasinessFactor: 2.5}, "2025-03-10"))

	tests := []struct {
		name  string
		setID int64
		limit int
		want  []int64
	}{
		{name: "never reviewed first, then by review date", setID: setID, limit: 10, want: []int64{unseen, past, today}},
		{name: "capped at limit", setID: setID, limit: 2, want: []int64{unseen, past}},
		{name: "zero limit", setID: setID, limit: 0, want: nil},
		{name: "other set", setID: otherSetID, limit: 10, want: otherIDs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.GetDueCards(ctx, tt.setID, tt.limit)
			require.NoError(t, err)
			assert.Equal(t, tt.want, cardIDs(got))
		})
	}
}

func TestDBRepository_GetRandomCards(t *testing.T) {
	db := testutil.OpenTestDB(t)
	ctx := context.Background()

	setID, ids := testutil.CreateSet(t, db, "Planets", testutil.TextDrafts("Mercury", "Venus", "Earth", "Mars", "Jupiter")...)
	testutil.CreateSet(t, db, "Colours", testutil.TextDrafts("Red", "Blue")...)

	t.Run("distinct cards of the set up to limit", func(t *testing.T) {
		repo := NewDBRepository(db, WithRand(rand.New(rand.NewPCG(1, 2))))
		got, err := repo.GetRandomCards(ctx, setID, 3)
		require.NoError(t, err)

		gotIDs := cardIDs(got)
		require.Len(t, gotIDs, 3)
		seen := map[int64]bool{}
		for _, id := range gotIDs {
			assert.Contains(t, ids, id)
			assert.False(t, seen[id], "card %d selected twice", id)
			seen[id] = true
		}
	})

	t.Run("limit larger than the set", func(t *testing.T) {
		repo := NewDBRepository(db)
		got, err := repo.GetRandomCards(ctx, setID, 50)
		require.NoError(t, err)
		assert.ElementsMatch(t, ids, cardIDs(got))
	})

	t.Run("same seed replays the same sample", func(t *testing.T) {
		first, err := NewDBRepository(db, WithRand(rand.New(rand.NewPCG(7, 7)))).GetRandomCards(ctx, setID, 5)
		require.NoError(t, err)
		second, err := NewDBRepository(db, WithRand(rand.New(rand.NewPCG(7, 7)))).GetRandomCards(ctx, setID, 5)
		require.NoError(t, err)
		assert.Equal(t, cardIDs(first), cardIDs(second))
	})

	t.Run("zero limit", func(t *testing.T) {
		got, err := NewDBRepository(db).GetRandomCards(ctx, setID, 0)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestDBRepository_ResetProgress(t *testing.T) {
	db := testutil.OpenTestDB(t)
	ctx := context.Background()
	repo := NewDBRepository(db, WithClock(fixedClock))

	setID, ids := testutil.CreateSet(t, db, "Planets", testutil.TextDrafts("Mercury", "Venus")...)
	_, otherIDs := testutil.CreateSet(t, db, "Colours", testutil.TextDrafts("Red")...)

	reviewed := sm2.Progress{IntervalDays: 6, Repetitions: 2, EasinessFactor: 2.6}
	for _, id := range append(ids, otherIDs...) {
		require.NoError(t, repo.UpdateCardProgress(ctx, id, reviewed, "2025-03-16"))
	}

	n, err := repo.ResetProgress(ctx, setID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	got, err := repo.GetCardProgress(ctx, ids[0])
	require.NoError(t, err)
	assert.Equal(t, sm2.DefaultProgress(), got)

	got, err = repo.GetCardProgress(ctx, otherIDs[0])
	require.NoError(t, err)
	assert.Equal(t, reviewed, got)
}

func TestDBRepository_SetStatistics(t *testing.T) {
	db := testutil.OpenTestDB(t)
	ctx := context.Background()

	setID, ids := testutil.CreateSet(t, db, "Planets", testutil.TextDrafts("Mercury", "Venus", "Earth", "Mars")...)
	repo := NewDBRepository(db, WithClock(fixedClock))

	// ids[0] has no record
	require.NoError(t, repo.UpdateCardProgress(ctx, ids[1], sm2.Progress{IntervalDays: 1, Repetitions: 0, EasinessFactor: 2.5}, "2025-03-10"))
	require.NoError(t, repo.UpdateCardProgress(ctx, ids[2], sm2.Progress{IntervalDays: 6, Repetitions: 2, EasinessFactor: 2.5}, "2025-03-01"))
	require.NoError(t, repo.UpdateCardProgress(ctx, ids[3], sm2.Progress{IntervalDays: 30, Repetitions: 5, EasinessFactor: 2.7}, "2025-04-01"))

	got, err := repo.SetStatistics(ctx, setID)
	require.NoError(t, err)
	assert.Equal(t, statistics.SetStatistics{Total: 4, New: 2, Learning: 1, Mastered: 1, Due: 3}, got)

	got, err = NewDBRepository(db, WithClock(fixedClock), WithMasteredIntervalDays(5)).SetStatistics(ctx, setID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Mastered)
	assert.Equal(t, 0, got.Learning)
}

func TestDBRepository_SessionRoundTrip(t *testing.T) {
	db := testutil.OpenTestDB(t)
	ctx := context.Background()
	repo := NewDBRepository(db, WithClock(fixedClock))
	setID, ids := testutil.CreateSet(t, db, "Planets", testutil.TextDrafts("Mercury", "Venus")...)

	session := NewSession(repo)
	require.NoError(t, session.Start(ctx, setID, DueStrategy{}, 10))
	for session.State() != StateFinished {
		require.NoError(t, session.SubmitGrade(ctx, 5))
		session.Next()
	}

	due, err := repo.GetDueCards(ctx, setID, 10)
	require.NoError(t, err)
	assert.Empty(t, due)

	for _, id := range ids {
		got, err := repo.GetCardProgress(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, 1, got.IntervalDays)
		assert.Equal(t, 1, got.Repetitions)
	}
}

func cardIDs(cards []card.Card) []int64 {
	if len(cards) == 0 {
		return nil
	}
	ids := make([]int64, 0, len(cards))
	for _, c := range cards {
		ids = append(ids, c.ID)
	}
	return ids
}

func TestCardProgress_State(t *testing.T) {
	tests := []struct {
		name string
		row  CardProgress
		want statistics.CardState
	}{
		{
			name: "no record",
			row:  CardProgress{CardID: 1},
			want: statistics.CardState{CardID: 1},
		},
		{
			name: "with record",
			row: CardProgress{
				CardID:         2,
				IntervalDays:   sqlNullInt(6),
				Repetitions:    sqlNullInt(2),
				EasinessFactor: sqlNullFloat(2.36),
				NextReviewDate: sqlNullString("2025-03-16"),
				HasProgress:    true,
			},
			want: statistics.CardState{
				CardID:         2,
				Reviewed:       true,
				Progress:       sm2.Progress{IntervalDays: 6, Repetitions: 2, EasinessFactor: 2.36},
				NextReviewDate: "2025-03-16",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.row.State())
		})
	}
}
