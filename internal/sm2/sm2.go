// Package sm2 implements the SuperMemo-2 interval and easiness calculation.
package sm2

import "math"

const (
	DefaultEasinessFactor = 2.5
	MinEasinessFactor     = 1.3

	// PassingGrade is the lowest grade that counts as a successful recall.
	PassingGrade = 3
	MinGrade     = 0
	MaxGrade     = 5
)

// Progress is the scheduling state of a single card
type Progress struct {
	IntervalDays   int     `db:"interval_days" json:"interval_days" yaml:"interval_days"`
	Repetitions    int     `db:"repetitions" json:"repetitions" yaml:"repetitions"`
	EasinessFactor float64 `db:"easiness_factor" json:"easiness_factor" yaml:"easiness_factor"`
}

// DefaultProgress returns the state of a card that was never reviewed
func DefaultProgress() Progress {
	return Progress{
		IntervalDays:   0,
		Repetitions:    0,
		EasinessFactor: DefaultEasinessFactor,
	}
}

// IsPassing reports whether the grade takes the successful-recall branch
func IsPassing(grade int) bool {
	return grade >= PassingGrade
}

// IsValidGrade reports whether the grade is within 0..5
func IsValidGrade(grade int) bool {
	return grade >= MinGrade && grade <= MaxGrade
}

// Calculate returns the progress after a review graded with quality q.
// On a pass: interval = 1, 6, then ceil(lastInterval * EF); EF is adjusted by the
// standard SM-2 delta and floored at MinEasinessFactor.
// On a fail: repetitions and interval reset, EF is kept.
func Calculate(grade int, current Progress) Progress {
	if !IsPassing(grade) {
		return Progress{
			IntervalDays:   1,
			Repetitions:    0,
			EasinessFactor: current.EasinessFactor,
		}
	}

	return Progress{
		IntervalDays:   nextInterval(current),
		Repetitions:    current.Repetitions + 1,
		EasinessFactor: UpdateEasinessFactor(current.EasinessFactor, grade),
	}
}

func nextInterval(current Progress) int {
	switch current.Repetitions {
	case 0:
		return 1
	case 1:
		return 6
	default:
		return int(math.Ceil(float64(current.IntervalDays) * current.EasinessFactor))
	}
}

// UpdateEasinessFactor calculates new EF based on quality grade
func UpdateEasinessFactor(ef float64, quality int) float64 {
	q := float64(quality)
	delta := 0.1 - (5-q)*(0.08+(5-q)*0.02)
	return math.Max(ef+delta, MinEasinessFactor)
}
