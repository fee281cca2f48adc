package learning

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/flashlearn/flashlearn/internal/card"
	mock_learning "github.com/flashlearn/flashlearn/internal/mocks/learning"
	"github.com/flashlearn/flashlearn/internal/sm2"
)

type stubStrategy struct {
	cards []card.Card
	err   error
	calls int
}

func (s *stubStrategy) SelectCards(_ context.Context, _ CardSource, _ int64, _ int) ([]card.Card, error) {
	s.calls++
	return s.cards, s.err
}

func newTestCard(id int64, answer string) card.Card {
	return card.Card{
		ID:            id,
		SetID:         1,
		Question:      card.TextQuestion{Text: "question " + answer},
		CorrectAnswer: answer,
		AnswerKind:    card.Flashcard,
	}
}

func expectGrade(store *mock_learning.MockStore, cardID int64, current sm2.Progress, grade int) {
	updated := sm2.Calculate(grade, current)
	store.EXPECT().GetCardProgress(gomock.Any(), cardID).Return(current, nil)
	store.EXPECT().CalculateNextDate(updated.IntervalDays).Return("2025-01-02")
	store.EXPECT().UpdateCardProgress(gomock.Any(), cardID, updated, "2025-01-02").Return(nil)
}

func TestSession_Start(t *testing.T) {
	a := newTestCard(1, "Jupiter")
	b := newTestCard(2, "Mars")

	tests := []struct {
		name          string
		strategy      Strategy
		wantErr       error
		wantCurrent   *card.Card
		wantRemaining int
		wantState     State
	}{
		{
			name:          "moves to the first selected card",
			strategy:      &stubStrategy{cards: []card.Card{a, b}},
			wantCurrent:   &a,
			wantRemaining: 1,
			wantState:     StatePresenting,
		},
		{
			name:      "no strategy",
			strategy:  nil,
			wantErr:   ErrNoStrategy,
			wantState: StateEmpty,
		},
		{
			name:      "no cards selected",
			strategy:  &stubStrategy{cards: []card.Card{}},
			wantErr:   ErrEmptySession,
			wantState: StateEmpty,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			session := NewSession(mock_learning.NewMockStore(ctrl))

			err := session.Start(context.Background(), 1, tt.strategy, 10)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}

			assert.Equal(t, tt.wantState, session.State())
			assert.Equal(t, tt.wantRemaining, session.Remaining())
			got, err := session.Current()
			if tt.wantCurrent == nil {
				assert.ErrorIs(t, err, ErrNoActiveCard)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantCurrent.ID, got.ID)
		})
	}
}

func TestSession_Start_SelectionErrorKeepsState(t *testing.T) {
	ctrl := gomock.NewController(t)
	session := NewSession(mock_learning.NewMockStore(ctrl))
	require.NoError(t, session.Start(context.Background(), 1, &stubStrategy{cards: []card.Card{newTestCard(1, "a")}}, 10))

	err := session.Start(context.Background(), 1, &stubStrategy{err: errors.New("connection refused")}, 10)
	assert.ErrorContains(t, err, "connection refused")

	got, err := session.Current()
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.ID)
	assert.Equal(t, 1, session.InitialCount())
}

func TestSession_Start_NoStrategyKeepsState(t *testing.T) {
	ctrl := gomock.NewController(t)
	session := NewSession(mock_learning.NewMockStore(ctrl))
	require.NoError(t, session.Start(context.Background(), 1, &stubStrategy{cards: []card.Card{newTestCard(1, "a"), newTestCard(2, "b")}}, 10))

	assert.ErrorIs(t, session.Start(context.Background(), 1, nil, 10), ErrNoStrategy)
	assert.Equal(t, 2, session.InitialCount())
	assert.Equal(t, 1, session.Remaining())
	assert.Equal(t, StatePresenting, session.State())
}

func TestSession_Start_PassesStoreToStrategy(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mock_learning.NewMockStore(ctrl)
	store.EXPECT().GetDueCards(gomock.Any(), int64(7), 5).Return([]card.Card{newTestCard(3, "c")}, nil)

	session := NewSession(store)
	require.NoError(t, session.Start(context.Background(), 7, DueStrategy{}, 5))

	got, err := session.Current()
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.ID)
}

func TestSession_Next(t *testing.T) {
	ctrl := gomock.NewController(t)
	session := NewSession(mock_learning.NewMockStore(ctrl))

	assert.False(t, session.Next())
	assert.Equal(t, StateEmpty, session.State())

	require.NoError(t, session.Start(context.Background(), 1, &stubStrategy{cards: []card.Card{newTestCard(1, "a"), newTestCard(2, "b")}}, 10))
	assert.True(t, session.Next())
	got, err := session.Current()
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.ID)

	assert.False(t, session.Next())
	assert.Equal(t, StateFinished, session.State())
	_, err = session.Current()
	assert.ErrorIs(t, err, ErrNoActiveCard)
}

func TestSession_SubmitGrade_RequeueOnFail(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mock_learning.NewMockStore(ctrl)
	a := newTestCard(1, "Jupiter")

	session := NewSession(store)
	require.NoError(t, session.Start(context.Background(), 1, &stubStrategy{cards: []card.Card{a}}, 10))

	first := sm2.DefaultProgress()
	expectGrade(store, a.ID, first, 1)
	require.NoError(t, session.SubmitGrade(context.Background(), 1))
	assert.Equal(t, 1, session.Remaining())
	assert.Equal(t, StateGraded, session.State())

	require.True(t, session.Next())
	got, err := session.Current()
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)

	expectGrade(store, a.ID, sm2.Calculate(1, first), 2)
	require.NoError(t, session.SubmitGrade(context.Background(), 2))
	require.True(t, session.Next())
	got, err = session.Current()
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)
}

func TestSession_SubmitGrade_PassBoundary(t *testing.T) {
	tests := []struct {
		name          string
		grade         int
		wantRemaining int
	}{
		{name: "grade 3 passes", grade: 3, wantRemaining: 0},
		{name: "grade 2 fails", grade: 2, wantRemaining: 1},
		{name: "grade 0 fails", grade: 0, wantRemaining: 1},
		{name: "grade 5 passes", grade: 5, wantRemaining: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			store := mock_learning.NewMockStore(ctrl)
			a := newTestCard(1, "a")
			session := NewSession(store)
			require.NoError(t, session.Start(context.Background(), 1, &stubStrategy{cards: []card.Card{a}}, 10))

			expectGrade(store, a.ID, sm2.DefaultProgress(), tt.grade)
			require.NoError(t, session.SubmitGrade(context.Background(), tt.grade))
			assert.Equal(t, tt.wantRemaining, session.Remaining())
		})
	}
}

func TestSession_SubmitGrade_Errors(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mock_learning.NewMockStore(ctrl)
	session := NewSession(store)

	assert.ErrorIs(t, session.SubmitGrade(context.Background(), 5), ErrNoActiveCard)

	a := newTestCard(1, "a")
	require.NoError(t, session.Start(context.Background(), 1, &stubStrategy{cards: []card.Card{a}}, 10))

	assert.ErrorIs(t, session.SubmitGrade(context.Background(), 6), ErrInvalidGrade)
	assert.ErrorIs(t, session.SubmitGrade(context.Background(), -1), ErrInvalidGrade)

	store.EXPECT().GetCardProgress(gomock.Any(), a.ID).Return(sm2.Progress{}, errors.New("connection refused"))
	assert.ErrorContains(t, session.SubmitGrade(context.Background(), 5), "connection refused")
	assert.Equal(t, StatePresenting, session.State())
	assert.Equal(t, 0, session.Summary().Reviewed)

	expectGrade(store, a.ID, sm2.DefaultProgress(), 5)
	require.NoError(t, session.SubmitGrade(context.Background(), 5))
	assert.ErrorIs(t, session.SubmitGrade(context.Background(), 5), ErrAlreadyGraded)
}

func TestSession_SubmitGrade_WriteFailureIsBestEffort(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mock_learning.NewMockStore(ctrl)
	a := newTestCard(1, "a")

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	session := NewSession(store, WithLogger(logger))
	require.NoError(t, session.Start(context.Background(), 1, &stubStrategy{cards: []card.Card{a}}, 10))

	store.EXPECT().GetCardProgress(gomock.Any(), a.ID).Return(sm2.DefaultProgress(), nil)
	store.EXPECT().CalculateNextDate(1).Return("2025-01-02")
	store.EXPECT().UpdateCardProgress(gomock.Any(), a.ID, gomock.Any(), "2025-01-02").Return(errors.New("disk full"))

	require.NoError(t, session.SubmitGrade(context.Background(), 1))
	assert.Equal(t, 1, session.Remaining())
	assert.True(t, session.Next())
	assert.Contains(t, logs.String(), "failed to save the learning progress")
	assert.Contains(t, logs.String(), "disk full")
}

func TestSession_Progress(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mock_learning.NewMockStore(ctrl)
	a := newTestCard(1, "a")
	b := newTestCard(2, "b")

	session := NewSession(store)
	assert.Equal(t, 0.0, session.Progress())

	require.NoError(t, session.Start(context.Background(), 1, &stubStrategy{cards: []card.Card{a, b}}, 10))
	assert.InDelta(t, 0.5, session.Progress(), 1e-9)

	expectGrade(store, a.ID, sm2.DefaultProgress(), 5)
	require.NoError(t, session.SubmitGrade(context.Background(), 5))
	afterA := session.Progress()

	require.True(t, session.Next())
	beforeB := session.Progress()
	assert.InDelta(t, 1.0, beforeB, 1e-9)

	expectGrade(store, b.ID, sm2.DefaultProgress(), 1)
	require.NoError(t, session.SubmitGrade(context.Background(), 1))
	afterB := session.Progress()
	assert.Less(t, afterB, beforeB)
	assert.LessOrEqual(t, afterB, afterA)

	require.True(t, session.Next())
	expectGrade(store, b.ID, sm2.Calculate(1, sm2.DefaultProgress()), 4)
	require.NoError(t, session.SubmitGrade(context.Background(), 4))
	assert.InDelta(t, 1.0, session.Progress(), 1e-9)
	assert.False(t, session.Next())

	assert.Equal(t, Summary{Reviewed: 3, Passed: 2, Failed: 1}, session.Summary())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "empty", StateEmpty.String())
	assert.Equal(t, "presenting", StatePresenting.String())
	assert.Equal(t, "graded", StateGraded.String())
	assert.Equal(t, "finished", StateFinished.String())
	assert.Equal(t, "unknown", State(42).String())
}
