package rating

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/classmate-ai/backend/internal/models"
)

// ErrVersionConflict means a concurrent attempt updated the same user's
// ratings between our read and write. Callers re-read and re-evaluate.
var ErrVersionConflict = errors.New("user rating state was modified concurrently")

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// GetOrCreate returns the user's rating state and its row version, inserting
// the default record on first access.
func (s *Store) GetOrCreate(ctx context.Context, userID int64) (models.UserRatingState, int64, error) {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO user_ratings (user_id) VALUES ($1)
		 ON CONFLICT (user_id) DO NOTHING`,
		userID,
	)
	if err != nil {
		return models.UserRatingState{}, 0, fmt.Errorf("upsert user rating: %w", err)
	}

	var state models.UserRatingState
	var version int64
	err = s.db.QueryRowContext(ctx,
		`SELECT math_rating, physics_rating, programming_rating, total_rating,
		        streak_days, solved_count, last_solved_at, version
		 FROM user_ratings WHERE user_id = $1`,
		userID,
	).Scan(&state.MathRating, &state.PhysicsRating, &state.ProgrammingRating,
		&state.TotalRating, &state.StreakDays, &state.SolvedCount,
		&state.LastSolvedAt, &version)
	if err != nil {
		return models.UserRatingState{}, 0, fmt.Errorf("get user rating: %w", err)
	}
	return state, version, nil
}

// Get returns the state without creating it; sql.ErrNoRows when absent.
func (s *Store) Get(ctx context.Context, userID int64) (models.UserRatingState, error) {
	var state models.UserRatingState
	err := s.db.QueryRowContext(ctx,
		`SELECT math_rating, physics_rating, programming_rating, total_rating,
		        streak_days, solved_count, last_solved_at
		 FROM user_ratings WHERE user_id = $1`,
		userID,
	).Scan(&state.MathRating, &state.PhysicsRating, &state.ProgrammingRating,
		&state.TotalRating, &state.StreakDays, &state.SolvedCount, &state.LastSolvedAt)
	if err != nil {
		return models.UserRatingState{}, err
	}
	return state, nil
}

// SaveAttempt persists the updated rating state and appends the attempt
// record in a single transaction. The UPDATE is conditional on the version
// read alongside the state; if another writer got there first nothing is
// written and ErrVersionConflict is returned, so a failed submission leaves
// both the ratings row and the attempt log untouched.
func (s *Store) SaveAttempt(ctx context.Context, userID, problemID int64, state models.UserRatingState, delta models.AttemptDelta, userAnswer string, expectedVersion int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE user_ratings SET
		    math_rating = $2, physics_rating = $3, programming_rating = $4,
		    total_rating = $5, streak_days = $6, solved_count = $7,
		    last_solved_at = $8, version = version + 1, updated_at = NOW()
		 WHERE user_id = $1 AND version = $9`,
		userID, state.MathRating, state.PhysicsRating, state.ProgrammingRating,
		state.TotalRating, state.StreakDays, state.SolvedCount,
		state.LastSolvedAt, expectedVersion,
	)
	if err != nil {
		return fmt.Errorf("update user rating: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrVersionConflict
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO problem_attempts
		 (user_id, problem_id, subject, is_correct, user_answer,
		  rating_before, rating_after, delta, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		userID, problemID, delta.Subject, delta.IsCorrect, userAnswer,
		delta.RatingBefore, delta.RatingAfter, delta.Delta, delta.AttemptedAt,
	)
	if err != nil {
		return fmt.Errorf("insert attempt: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit attempt: %w", err)
	}
	return nil
}

// RecentAttempts returns the user's newest attempts, most recent first.
func (s *Store) RecentAttempts(ctx context.Context, userID int64, limit int) ([]models.Attempt, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, problem_id, subject, is_correct, user_answer,
		        rating_before, rating_after, delta, created_at
		 FROM problem_attempts
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	defer rows.Close()

	var attempts []models.Attempt
	for rows.Next() {
		var a models.Attempt
		if err := rows.Scan(&a.ID, &a.UserID, &a.ProblemID, &a.Subject,
			&a.IsCorrect, &a.UserAnswer, &a.RatingBefore, &a.RatingAfter,
			&a.Delta, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		attempts = append(attempts, a)
	}
	return attempts, rows.Err()
}
