package problems

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

const problemCols = `id, subject, title, statement, difficulty, rating, correct_answer, source, created_by, created_at`

// GetProblem returns one problem by id; sql.ErrNoRows when absent.
func (s *Store) GetProblem(ctx context.Context, problemID int64) (*models.Problem, error) {
	var p models.Problem
	err := s.db.QueryRowContext(ctx,
		`SELECT `+problemCols+` FROM problems WHERE id = $1`,
		problemID,
	).Scan(&p.ID, &p.Subject, &p.Title, &p.Statement, &p.Difficulty, &p.Rating,
		&p.CorrectAnswer, &p.Source, &p.CreatedBy, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListProblems returns problems newest first, optionally filtered by subject
// and difficulty.
func (s *Store) ListProblems(ctx context.Context, subject *models.Subject, difficulty *models.Difficulty, limit, offset int) ([]models.Problem, error) {
	query := `SELECT ` + problemCols + ` FROM problems WHERE 1=1`
	args := []interface{}{}

	if subject != nil {
		args = append(args, *subject)
		query += fmt.Sprintf(" AND subject = $%d", len(args))
	}
	if difficulty != nil {
		args = append(args, *difficulty)
		query += fmt.Sprintf(" AND difficulty = $%d", len(args))
	}
	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", len(args))
	args = append(args, offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list problems: %w", err)
	}
	defer rows.Close()

	var problems []models.Problem
	for rows.Next() {
		var p models.Problem
		if err := rows.Scan(&p.ID, &p.Subject, &p.Title, &p.Statement, &p.Difficulty,
			&p.Rating, &p.CorrectAnswer, &p.Source, &p.CreatedBy, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan problem: %w", err)
		}
		problems = append(problems, p)
	}
	return problems, rows.Err()
}

// CreateProblem inserts a problem and returns it with id and timestamp filled.
func (s *Store) CreateProblem(ctx context.Context, p *models.Problem) (*models.Problem, error) {
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO problems (subject, title, statement, difficulty, rating, correct_answer, source, created_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at`,
		p.Subject, p.Title, p.Statement, p.Difficulty, p.Rating, p.CorrectAnswer, p.Source, p.CreatedBy,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create problem: %w", err)
	}
	return p, nil
}

// UnansweredProblems returns problems that still lack a correct answer, oldest
// first, capped at limit.
func (s *Store) UnansweredProblems(ctx context.Context, limit int) ([]models.Problem, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+problemCols+` FROM problems
		 WHERE correct_answer IS NULL
		 ORDER BY created_at ASC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list unanswered problems: %w", err)
	}
	defer rows.Close()

	var problems []models.Problem
	for rows.Next() {
		var p models.Problem
		if err := rows.Scan(&p.ID, &p.Subject, &p.Title, &p.Statement, &p.Difficulty,
			&p.Rating, &p.CorrectAnswer, &p.Source, &p.CreatedBy, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan problem: %w", err)
		}
		problems = append(problems, p)
	}
	return problems, rows.Err()
}

// SetCorrectAnswer fills in a problem's answer if it is still missing.
func (s *Store) SetCorrectAnswer(ctx context.Context, problemID int64, answer string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE problems SET correct_answer = $1 WHERE id = $2 AND correct_answer IS NULL`,
		answer, problemID,
	)
	if err != nil {
		return fmt.Errorf("set correct answer: %w", err)
	}
	return nil
}
