package models

import "time"

// DefaultRating is the baseline assigned to a subject that has never been
// attempted.
const DefaultRating = 1200

// UserRatingState is one user's complete rating record. TotalRating is always
// the rounded mean of the three subject ratings; it is recomputed on every
// update, never patched incrementally.
type UserRatingState struct {
	MathRating        int        `json:"math_rating"`
	PhysicsRating     int        `json:"physics_rating"`
	ProgrammingRating int        `json:"programming_rating"`
	TotalRating       int        `json:"total_rating"`
	StreakDays        int        `json:"streak_days"`
	SolvedCount       int        `json:"solved_count"`
	LastSolvedAt      *time.Time `json:"last_solved_at,omitempty"`
}

// DefaultRatingState returns the record created the first time a user is seen.
func DefaultRatingState() UserRatingState {
	return UserRatingState{
		MathRating:        DefaultRating,
		PhysicsRating:     DefaultRating,
		ProgrammingRating: DefaultRating,
		TotalRating:       DefaultRating,
	}
}

// SubjectRating returns the rating slot for the given subject.
func (s UserRatingState) SubjectRating(subject Subject) int {
	switch subject {
	case SubjectMath:
		return s.MathRating
	case SubjectPhysics:
		return s.PhysicsRating
	case SubjectProgramming:
		return s.ProgrammingRating
	}
	return DefaultRating
}

// SetSubjectRating writes the rating slot for the given subject, leaving the
// other two untouched.
func (s *UserRatingState) SetSubjectRating(subject Subject, rating int) {
	switch subject {
	case SubjectMath:
		s.MathRating = rating
	case SubjectPhysics:
		s.PhysicsRating = rating
	case SubjectProgramming:
		s.ProgrammingRating = rating
	}
}

// AttemptDelta is the immutable per-attempt record the engine emits: the
// rating movement for the attempted subject only.
type AttemptDelta struct {
	Subject      Subject   `json:"subject"`
	IsCorrect    bool      `json:"is_correct"`
	RatingBefore int       `json:"rating_before"`
	RatingAfter  int       `json:"rating_after"`
	Delta        int       `json:"delta"`
	AttemptedAt  time.Time `json:"attempted_at"`
}

// Attempt is a persisted problem_attempts row.
type Attempt struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	ProblemID    int64     `json:"problem_id"`
	Subject      Subject   `json:"subject"`
	IsCorrect    bool      `json:"is_correct"`
	UserAnswer   string    `json:"user_answer"`
	RatingBefore int       `json:"rating_before"`
	RatingAfter  int       `json:"rating_after"`
	Delta        int       `json:"delta"`
	CreatedAt    time.Time `json:"created_at"`
}

// ── API Request/Response Types ───────────────────────────

type SubmitAttemptRequest struct {
	Answer string `json:"answer"`
}

type SubmitAttemptResponse struct {
	Correct       bool `json:"correct"`
	RatingBefore  int  `json:"rating_before"`
	RatingAfter   int  `json:"rating_after"`
	Delta         int  `json:"delta"`
	SubjectRating int  `json:"subject_rating"`
	TotalRating   int  `json:"total_rating"`
	StreakDays    int  `json:"streak_days"`
	SolvedCount   int  `json:"solved_count"`
}
