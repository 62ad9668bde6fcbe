package rating

import (
	"errors"
	"math"
	"time"

	"github.com/classmate-ai/backend/internal/models"
)

// ErrClockSkew is returned when the evaluation instant predates the user's
// last recorded attempt. Streak arithmetic is undefined for backwards time,
// so the attempt is rejected instead of computing a negative day gap.
var ErrClockSkew = errors.New("attempt timestamp earlier than last recorded attempt")

// ExpectedScore returns the probability that a user rated userRating answers
// a problem rated problemRating correctly, on the standard logistic curve.
// The result is strictly between 0 and 1 for finite inputs.
func ExpectedScore(userRating, problemRating int) float64 {
	return 1.0 / (1.0 + math.Pow(10, float64(problemRating-userRating)/400.0))
}

// KFactor returns the maximum rating swing per attempt, tiered so established
// high performers move slowly.
func KFactor(userRating int) int {
	if userRating >= 2000 {
		return 10
	}
	if userRating >= 1400 {
		return 20
	}
	return 40
}

// NewRating computes the updated subject rating after one attempt. Rounding
// is math.Round: half away from zero, so deltas are reproducible.
func NewRating(userRating, problemRating int, correct bool) int {
	expected := ExpectedScore(userRating, problemRating)
	actual := 0.0
	if correct {
		actual = 1.0
	}
	k := float64(KFactor(userRating))
	return int(math.Round(float64(userRating) + k*(actual-expected)))
}

// TotalRating is the rounded mean of the three subject ratings.
func TotalRating(math3, physics, programming int) int {
	return int(math.Round(float64(math3+physics+programming) / 3.0))
}

// NextStreak advances the consecutive-day counter. Days are UTC calendar
// days: an attempt on the day after the last one extends the streak, a second
// attempt on the same day leaves it alone, and a gap of two or more days
// resets it to 1.
func NextStreak(streakDays int, lastSolvedAt *time.Time, now time.Time) int {
	if lastSolvedAt == nil {
		return 1
	}
	switch daysBetween(*lastSolvedAt, now) {
	case 0:
		return streakDays
	case 1:
		return streakDays + 1
	default:
		return 1
	}
}

// daysBetween counts UTC calendar-day boundaries crossed between from and to.
func daysBetween(from, to time.Time) int {
	fromDay := from.UTC().Truncate(24 * time.Hour)
	toDay := to.UTC().Truncate(24 * time.Hour)
	return int(toDay.Sub(fromDay).Hours() / 24)
}

// Evaluate applies one attempt outcome to a user's rating state. It is a pure
// function: the input state is not mutated, no clock is read, and identical
// inputs always produce identical outputs. Callers supply wall-clock time for
// now and are responsible for lazily creating state via the store's defaults
// before calling.
//
// The returned state has the attempted subject's rating updated, the total
// recomputed as the rounded mean of all three subjects, the streak advanced
// on UTC day boundaries, SolvedCount incremented (it counts evaluated
// attempts, correct or not), and LastSolvedAt set to now.
func Evaluate(state models.UserRatingState, subject models.Subject, problemRating int, isCorrect bool, now time.Time) (models.UserRatingState, models.AttemptDelta, error) {
	if state.LastSolvedAt != nil && now.Before(*state.LastSolvedAt) {
		return models.UserRatingState{}, models.AttemptDelta{}, ErrClockSkew
	}

	before := state.SubjectRating(subject)
	after := NewRating(before, problemRating, isCorrect)

	next := state
	next.SetSubjectRating(subject, after)
	next.TotalRating = TotalRating(next.MathRating, next.PhysicsRating, next.ProgrammingRating)
	next.StreakDays = NextStreak(state.StreakDays, state.LastSolvedAt, now)
	next.SolvedCount = state.SolvedCount + 1
	next.LastSolvedAt = &now

	delta := models.AttemptDelta{
		Subject:      subject,
		IsCorrect:    isCorrect,
		RatingBefore: before,
		RatingAfter:  after,
		Delta:        after - before,
		AttemptedAt:  now,
	}
	return next, delta, nil
}
