package tutor

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

// RecordQuery appends one tutor interaction to the user's history.
func (s *Store) RecordQuery(ctx context.Context, userID int64, subject models.Subject, problemText, finalAnswer string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO user_recent_queries (user_id, subject, problem_text, final_answer)
		VALUES ($1, $2, $3, $4)`,
		userID, subject, problemText, finalAnswer,
	)
	if err != nil {
		return fmt.Errorf("record query: %w", err)
	}
	return nil
}

// RecentQueries returns the user's latest tutor interactions, newest first.
func (s *Store) RecentQueries(ctx context.Context, userID int64, limit int) ([]models.RecentQuery, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, subject, problem_text, COALESCE(final_answer, ''), created_at
		FROM user_recent_queries
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query recent queries: %w", err)
	}
	defer rows.Close()

	var queries []models.RecentQuery
	for rows.Next() {
		var q models.RecentQuery
		if err := rows.Scan(&q.ID, &q.UserID, &q.Subject, &q.ProblemText, &q.FinalAnswer, &q.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan recent query: %w", err)
		}
		queries = append(queries, q)
	}
	return queries, rows.Err()
}
