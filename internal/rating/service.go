package rating

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/classmate-ai/backend/internal/models"
)

var (
	ErrProblemNotFound = errors.New("problem not found")
	// ErrNoAnswer means the problem has no stored correct answer yet, so a
	// verdict cannot be computed.
	ErrNoAnswer = errors.New("problem has no correct answer set")
)

// ProblemGetter is the slice of the problem store the rating service needs.
type ProblemGetter interface {
	GetProblem(ctx context.Context, problemID int64) (*models.Problem, error)
}

type Service struct {
	store    *Store
	problems ProblemGetter
}

func NewService(store *Store, problems ProblemGetter) *Service {
	return &Service{store: store, problems: problems}
}

// submitRetries bounds the optimistic-concurrency loop. Two simultaneous
// submissions by the same user race on read-modify-write of the rating row;
// the loser re-reads and re-evaluates.
const submitRetries = 3

// SubmitAttempt evaluates one answer submission end to end: verdict, rating
// update, streak advance, and the append-only attempt record. State and log
// are written atomically; on any failure neither is modified.
func (s *Service) SubmitAttempt(ctx context.Context, userID, problemID int64, answer string) (*models.SubmitAttemptResponse, error) {
	problem, err := s.problems.GetProblem(ctx, problemID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProblemNotFound
		}
		return nil, fmt.Errorf("fetch problem: %w", err)
	}
	if !problem.HasAnswer() {
		return nil, ErrNoAnswer
	}

	isCorrect := AnswersMatch(answer, *problem.CorrectAnswer)

	for attempt := 0; attempt < submitRetries; attempt++ {
		state, version, err := s.store.GetOrCreate(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("load rating state: %w", err)
		}

		next, delta, err := Evaluate(state, problem.Subject, problem.Rating, isCorrect, time.Now().UTC())
		if err != nil {
			return nil, err
		}

		err = s.store.SaveAttempt(ctx, userID, problemID, next, delta, answer, version)
		if errors.Is(err, ErrVersionConflict) {
			log.Printf("[rating] submit conflict for user %d, retrying (attempt %d)", userID, attempt+1)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("save attempt: %w", err)
		}

		return &models.SubmitAttemptResponse{
			Correct:       isCorrect,
			RatingBefore:  delta.RatingBefore,
			RatingAfter:   delta.RatingAfter,
			Delta:         delta.Delta,
			SubjectRating: delta.RatingAfter,
			TotalRating:   next.TotalRating,
			StreakDays:    next.StreakDays,
			SolvedCount:   next.SolvedCount,
		}, nil
	}

	return nil, ErrVersionConflict
}

// RecentAttempts returns the caller's latest evaluated attempts.
func (s *Service) RecentAttempts(ctx context.Context, userID int64, limit int) ([]models.Attempt, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.store.RecentAttempts(ctx, userID, limit)
}
