package sm2

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculate(t *testing.T) {
	tests := []struct {
		name    string
		grade   int
		current Progress
		want    Progress
	}{
		{
			name:    "first pass schedules one day",
			grade:   5,
			current: DefaultProgress(),
			want:    Progress{IntervalDays: 1, Repetitions: 1, EasinessFactor: 2.6},
		},
		{
			name:    "second pass schedules six days",
			grade:   4,
			current: Progress{IntervalDays: 1, Repetitions: 1, EasinessFactor: 2.5},
			want:    Progress{IntervalDays: 6, Repetitions: 2, EasinessFactor: 2.5},
		},
		{
			name:    "later pass multiplies by easiness and rounds up",
			grade:   4,
			current: Progress{IntervalDays: 6, Repetitions: 2, EasinessFactor: 2.5},
			want:    Progress{IntervalDays: 15, Repetitions: 3, EasinessFactor: 2.5},
		},
		{
			name:    "fractional interval is rounded up",
			grade:   5,
			current: Progress{IntervalDays: 7, Repetitions: 3, EasinessFactor: 1.3},
			want:    Progress{IntervalDays: 10, Repetitions: 4, EasinessFactor: 1.4},
		},
		{
			name:    "grade 3 passes and lowers easiness",
			grade:   3,
			current: Progress{IntervalDays: 6, Repetitions: 2, EasinessFactor: 2.5},
			want:    Progress{IntervalDays: 15, Repetitions: 3, EasinessFactor: 2.36},
		},
		{
			name:    "grade 2 fails and keeps easiness",
			grade:   2,
			current: Progress{IntervalDays: 15, Repetitions: 3, EasinessFactor: 2.36},
			want:    Progress{IntervalDays: 1, Repetitions: 0, EasinessFactor: 2.36},
		},
		{
			name:    "grade 0 on a new card",
			grade:   0,
			current: DefaultProgress(),
			want:    Progress{IntervalDays: 1, Repetitions: 0, EasinessFactor: 2.5},
		},
		{
			name:    "easiness is floored",
			grade:   3,
			current: Progress{IntervalDays: 10, Repetitions: 4, EasinessFactor: 1.35},
			want:    Progress{IntervalDays: 14, Repetitions: 5, EasinessFactor: 1.3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Calculate(tt.grade, tt.current)
			assert.Equal(t, tt.want.IntervalDays, got.IntervalDays)
			assert.Equal(t, tt.want.Repetitions, got.Repetitions)
			assert.InDelta(t, tt.want.EasinessFactor, got.EasinessFactor, 1e-9)
		})
	}
}

func TestCalculate_IsDeterministic(t *testing.T) {
	current := Progress{IntervalDays: 6, Repetitions: 2, EasinessFactor: 2.2}
	for grade := MinGrade; grade <= MaxGrade; grade++ {
		first := Calculate(grade, current)
		for i := 0; i < 5; i++ {
			assert.Equal(t, first, Calculate(grade, current))
		}
	}
}

func TestCalculate_FirstTwoRepetitions(t *testing.T) {
	progress := DefaultProgress()

	progress = Calculate(5, progress)
	assert.Equal(t, 1, progress.IntervalDays)

	progress = Calculate(5, progress)
	assert.Equal(t, 6, progress.IntervalDays)
}

func TestCalculate_EasinessNeverBelowMinimum(t *testing.T) {
	grades := []int{3, 0, 3, 1, 3, 3, 2, 3, 4, 3, 3, 0, 3, 3, 3, 5, 3, 3, 3, 3}
	progress := DefaultProgress()
	for _, grade := range grades {
		progress = Calculate(grade, progress)
		assert.GreaterOrEqual(t, progress.EasinessFactor, MinEasinessFactor)
	}
	assert.InDelta(t, MinEasinessFactor, progress.EasinessFactor, 1e-9)
}

func TestIsPassing(t *testing.T) {
	tests := []struct {
		grade int
		want  bool
	}{
		{grade: 0, want: false},
		{grade: 2, want: false},
		{grade: 3, want: true},
		{grade: 5, want: true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsPassing(tt.grade), "grade %d", tt.grade)
	}
}

func TestIsValidGrade(t *testing.T) {
	assert.True(t, IsValidGrade(0))
	assert.True(t, IsValidGrade(5))
	assert.False(t, IsValidGrade(-1))
	assert.False(t, IsValidGrade(6))
}
