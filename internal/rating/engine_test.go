package rating

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/classmate-ai/backend/internal/models"
)

var day1 = time.Date(2026, 3, 1, 14, 30, 0, 0, time.UTC)

func freshState() models.UserRatingState {
	return models.DefaultRatingState()
}

func TestExpectedScore(t *testing.T) {
	// Equal ratings → exactly 50%
	if got := ExpectedScore(1200, 1200); got != 0.5 {
		t.Errorf("ExpectedScore(1200, 1200) = %f, want 0.5", got)
	}

	// 400-point underdog → 1/11
	got := ExpectedScore(1200, 1600)
	if math.Abs(got-1.0/11.0) > 1e-9 {
		t.Errorf("ExpectedScore(1200, 1600) = %f, want %f", got, 1.0/11.0)
	}

	// Strictly inside (0, 1) even at extreme gaps
	for _, pair := range [][2]int{{800, 2400}, {2400, 800}, {0, 4000}, {4000, 0}} {
		e := ExpectedScore(pair[0], pair[1])
		if e <= 0 || e >= 1 {
			t.Errorf("ExpectedScore(%d, %d) = %f, want strictly in (0, 1)", pair[0], pair[1], e)
		}
	}
}

func TestKFactorBoundaries(t *testing.T) {
	tests := []struct {
		rating int
		want   int
	}{
		{800, 40},
		{1399, 40},
		{1400, 20},
		{1999, 20},
		{2000, 10},
		{2400, 10},
	}
	for _, tt := range tests {
		if got := KFactor(tt.rating); got != tt.want {
			t.Errorf("KFactor(%d) = %d, want %d", tt.rating, got, tt.want)
		}
	}
}

func TestNewRatingDirection(t *testing.T) {
	// Correct against a harder problem always gains
	if got := NewRating(1200, 1600, true); got <= 1200 {
		t.Errorf("NewRating(1200, 1600, correct) = %d, want > 1200", got)
	}
	// Wrong against an easier problem always loses
	if got := NewRating(1600, 1200, false); got >= 1600 {
		t.Errorf("NewRating(1600, 1200, wrong) = %d, want < 1600", got)
	}
	// Even rating, correct → gain of K/2
	if got := NewRating(1200, 1200, true); got != 1220 {
		t.Errorf("NewRating(1200, 1200, correct) = %d, want 1220", got)
	}
}

func TestEvaluateEvenMatchCorrect(t *testing.T) {
	// 1200 vs 1200 correct: E=0.5, K=40, delta=+20, total=round(3620/3)=1207
	state, delta, err := Evaluate(freshState(), models.SubjectMath, 1200, true, day1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if delta.Delta != 20 || delta.RatingBefore != 1200 || delta.RatingAfter != 1220 {
		t.Errorf("delta = %+v, want before=1200 after=1220 delta=20", delta)
	}
	if state.MathRating != 1220 {
		t.Errorf("math rating = %d, want 1220", state.MathRating)
	}
	if state.PhysicsRating != 1200 || state.ProgrammingRating != 1200 {
		t.Errorf("untouched subjects changed: physics=%d programming=%d", state.PhysicsRating, state.ProgrammingRating)
	}
	if state.TotalRating != 1207 {
		t.Errorf("total rating = %d, want 1207", state.TotalRating)
	}
	if state.StreakDays != 1 {
		t.Errorf("streak = %d, want 1", state.StreakDays)
	}
	if state.SolvedCount != 1 {
		t.Errorf("solved count = %d, want 1", state.SolvedCount)
	}
	if state.LastSolvedAt == nil || !state.LastSolvedAt.Equal(day1) {
		t.Errorf("last solved at = %v, want %v", state.LastSolvedAt, day1)
	}
}

func TestEvaluateUnderdogLoss(t *testing.T) {
	// 1200 vs 1600 wrong: E=1/11, delta=round(40*(0-1/11))=-4, total=round(3596/3)=1199
	state, delta, err := Evaluate(freshState(), models.SubjectProgramming, 1600, false, day1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if delta.Delta != -4 || delta.RatingAfter != 1196 {
		t.Errorf("delta = %+v, want after=1196 delta=-4", delta)
	}
	if state.ProgrammingRating != 1196 {
		t.Errorf("programming rating = %d, want 1196", state.ProgrammingRating)
	}
	if state.TotalRating != 1199 {
		t.Errorf("total rating = %d, want 1199", state.TotalRating)
	}
}

func TestEvaluateTotalInvariant(t *testing.T) {
	state := freshState()
	now := day1
	cases := []struct {
		subject models.Subject
		rating  int
		correct bool
	}{
		{models.SubjectMath, 1450, true},
		{models.SubjectPhysics, 900, false},
		{models.SubjectProgramming, 2100, true},
		{models.SubjectMath, 1300, false},
		{models.SubjectPhysics, 1800, true},
	}

	for i, c := range cases {
		var err error
		state, _, err = Evaluate(state, c.subject, c.rating, c.correct, now)
		if err != nil {
			t.Fatalf("step %d: unexpected error: %v", i, err)
		}
		want := int(math.Round(float64(state.MathRating+state.PhysicsRating+state.ProgrammingRating) / 3.0))
		if state.TotalRating != want {
			t.Errorf("step %d: total = %d, want %d", i, state.TotalRating, want)
		}
		if state.SolvedCount != i+1 {
			t.Errorf("step %d: solved count = %d, want %d", i, state.SolvedCount, i+1)
		}
		now = now.Add(time.Hour)
	}
}

func TestEvaluateStreakTransitions(t *testing.T) {
	state := freshState()

	// First ever attempt
	state, _, _ = Evaluate(state, models.SubjectMath, 1200, true, day1)
	if state.StreakDays != 1 {
		t.Fatalf("first attempt: streak = %d, want 1", state.StreakDays)
	}

	// Second attempt same calendar day: unchanged
	state, _, _ = Evaluate(state, models.SubjectMath, 1200, false, day1.Add(4*time.Hour))
	if state.StreakDays != 1 {
		t.Errorf("same day: streak = %d, want 1", state.StreakDays)
	}

	// Next calendar day: increments
	state, _, _ = Evaluate(state, models.SubjectPhysics, 1300, true, day1.AddDate(0, 0, 1))
	if state.StreakDays != 2 {
		t.Errorf("next day: streak = %d, want 2", state.StreakDays)
	}

	// Two-day gap: resets to 1
	state, _, _ = Evaluate(state, models.SubjectMath, 1200, true, day1.AddDate(0, 0, 3))
	if state.StreakDays != 1 {
		t.Errorf("after gap: streak = %d, want 1", state.StreakDays)
	}
}

func TestEvaluateDayBoundary(t *testing.T) {
	// 23:50 one day to 00:10 the next is consecutive, not same-day
	lateNight := time.Date(2026, 3, 1, 23, 50, 0, 0, time.UTC)
	earlyNext := time.Date(2026, 3, 2, 0, 10, 0, 0, time.UTC)

	state, _, _ := Evaluate(freshState(), models.SubjectMath, 1200, true, lateNight)
	state, _, _ = Evaluate(state, models.SubjectMath, 1200, true, earlyNext)
	if state.StreakDays != 2 {
		t.Errorf("streak across midnight = %d, want 2", state.StreakDays)
	}
}

func TestEvaluateRejectsBackwardsTime(t *testing.T) {
	state, _, err := Evaluate(freshState(), models.SubjectMath, 1200, true, day1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, _, err = Evaluate(state, models.SubjectMath, 1200, true, day1.Add(-time.Hour))
	if !errors.Is(err, ErrClockSkew) {
		t.Errorf("backwards now: err = %v, want ErrClockSkew", err)
	}
}

func TestEvaluateDeterministic(t *testing.T) {
	start := freshState()
	s1, d1, _ := Evaluate(start, models.SubjectPhysics, 1500, true, day1)
	s2, d2, _ := Evaluate(start, models.SubjectPhysics, 1500, true, day1)

	if s1.PhysicsRating != s2.PhysicsRating || s1.TotalRating != s2.TotalRating ||
		s1.StreakDays != s2.StreakDays || s1.SolvedCount != s2.SolvedCount {
		t.Errorf("states differ: %+v vs %+v", s1, s2)
	}
	if d1 != d2 {
		t.Errorf("deltas differ: %+v vs %+v", d1, d2)
	}
	// Input untouched
	if start.PhysicsRating != 1200 || start.SolvedCount != 0 || start.LastSolvedAt != nil {
		t.Errorf("input state mutated: %+v", start)
	}
}

func TestEvaluateHighRatedMovesSlowly(t *testing.T) {
	state := freshState()
	state.MathRating = 2200
	state.TotalRating = TotalRating(2200, 1200, 1200)

	next, delta, err := Evaluate(state, models.SubjectMath, 2200, true, day1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// K=10, even match → +5
	if delta.Delta != 5 {
		t.Errorf("delta = %d, want 5", delta.Delta)
	}
	if next.MathRating != 2205 {
		t.Errorf("math rating = %d, want 2205", next.MathRating)
	}
}
