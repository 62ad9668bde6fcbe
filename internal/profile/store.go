package profile

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/classmate-ai/backend/internal/models"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// AttemptStats aggregates the user's attempt history for the profile card.
func (s *Store) AttemptStats(ctx context.Context, userID int64) (models.ProfileStats, error) {
	var stats models.ProfileStats
	err := s.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE a.is_correct),
			EXISTS (
				SELECT 1 FROM problem_attempts ha
				JOIN problems hp ON hp.id = ha.problem_id
				WHERE ha.user_id = $1 AND ha.is_correct AND hp.difficulty = 'hard'
			)
		FROM problem_attempts a
		WHERE a.user_id = $1`,
		userID,
	).Scan(&stats.TotalAttempts, &stats.CorrectAttempts, &stats.HardSolved)
	if err != nil {
		return stats, fmt.Errorf("query attempt stats: %w", err)
	}

	if stats.TotalAttempts > 0 {
		stats.Accuracy = float64(stats.CorrectAttempts) / float64(stats.TotalAttempts)
	}
	return stats, nil
}

// RatingHistory returns the user's rating trajectory, oldest first, optionally
// filtered to one subject.
func (s *Store) RatingHistory(ctx context.Context, userID int64, subject *models.Subject, limit int) ([]models.RatingPoint, error) {
	query := `
		SELECT subject, rating_after, delta, created_at
		FROM problem_attempts
		WHERE user_id = $1`
	args := []interface{}{userID}

	if subject != nil {
		query += fmt.Sprintf(" AND subject = $%d", len(args)+1)
		args = append(args, *subject)
	}
	query += fmt.Sprintf(" ORDER BY created_at ASC LIMIT $%d", len(args)+1)
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query rating history: %w", err)
	}
	defer rows.Close()

	var points []models.RatingPoint
	for rows.Next() {
		var p models.RatingPoint
		if err := rows.Scan(&p.Subject, &p.RatingAfter, &p.Delta, &p.AttemptedAt); err != nil {
			return nil, fmt.Errorf("scan rating point: %w", err)
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

const leaderboardCols = `
	u.id, u.username,
	r.total_rating, r.math_rating, r.physics_rating, r.programming_rating,
	r.streak_days, r.solved_count`

// Leaderboard returns the top users by total rating. Ties share the order the
// database returns; rank is the row position.
func (s *Store) Leaderboard(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+leaderboardCols+`
		FROM user_ratings r
		JOIN users u ON u.id = r.user_id
		ORDER BY r.total_rating DESC, r.solved_count DESC, u.id ASC
		LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []models.LeaderboardEntry
	for rows.Next() {
		var e models.LeaderboardEntry
		if err := rows.Scan(
			&e.UserID, &e.Username,
			&e.TotalRating, &e.MathRating, &e.PhysicsRating, &e.ProgrammingRating,
			&e.StreakDays, &e.SolvedCount,
		); err != nil {
			return nil, fmt.Errorf("scan leaderboard entry: %w", err)
		}
		e.Rank = len(entries) + 1
		e.Level = LevelForRating(e.TotalRating)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// UserRank returns the user's own leaderboard entry with their global rank,
// or nil if they have no rating row yet.
func (s *Store) UserRank(ctx context.Context, userID int64) (*models.LeaderboardEntry, error) {
	var e models.LeaderboardEntry
	err := s.db.QueryRowContext(ctx, `
		SELECT rank, id, username, total_rating, math_rating, physics_rating,
		       programming_rating, streak_days, solved_count
		FROM (
			SELECT `+leaderboardCols+`,
				ROW_NUMBER() OVER (ORDER BY r.total_rating DESC, r.solved_count DESC, u.id ASC) AS rank
			FROM user_ratings r
			JOIN users u ON u.id = r.user_id
		) ranked
		WHERE id = $1`,
		userID,
	).Scan(
		&e.Rank, &e.UserID, &e.Username,
		&e.TotalRating, &e.MathRating, &e.PhysicsRating, &e.ProgrammingRating,
		&e.StreakDays, &e.SolvedCount,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query user rank: %w", err)
	}

	e.Level = LevelForRating(e.TotalRating)
	e.IsCurrentUser = true
	return &e, nil
}

// GetUser loads the account row for the profile response.
func (s *Store) GetUser(ctx context.Context, userID int64) (*models.User, error) {
	var u models.User
	err := s.db.QueryRowContext(ctx, `
		SELECT id, email, name, username, created_at
		FROM users
		WHERE id = $1`,
		userID,
	).Scan(&u.ID, &u.Email, &u.Name, &u.Username, &u.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("query user: %w", err)
	}
	return &u, nil
}
