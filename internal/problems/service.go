package problems

import (
	"context"
	"strings"

	"github.com/classmate-ai/backend/internal/models"
)

type Service struct {
	store  *Store
	solver AnswerSolver
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

// SetSolver attaches the answer backend. The tutor service is built after
// this one, so the solver arrives in a second wiring step.
func (s *Service) SetSolver(solver AnswerSolver) {
	s.solver = solver
}

func (s *Service) GetProblem(ctx context.Context, problemID int64) (*models.Problem, error) {
	return s.store.GetProblem(ctx, problemID)
}

func (s *Service) ListProblems(ctx context.Context, subject *models.Subject, difficulty *models.Difficulty, limit, offset int) ([]models.Problem, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.store.ListProblems(ctx, subject, difficulty, limit, offset)
}

// CreateProblem stores a new problem. A missing rating is assigned at random
// within the difficulty's band; a missing title falls back to a statement
// prefix.
func (s *Service) CreateProblem(ctx context.Context, userID int64, req models.CreateProblemRequest, source models.ProblemSource) (*models.Problem, error) {
	rating := 0
	if req.Rating != nil {
		rating = *req.Rating
	}
	if rating == 0 {
		rating = AssignRating(req.Difficulty)
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = TitleFromStatement(req.Statement)
	}

	p := &models.Problem{
		Subject:       req.Subject,
		Title:         title,
		Statement:     req.Statement,
		Difficulty:    req.Difficulty,
		Rating:        rating,
		CorrectAnswer: req.CorrectAnswer,
		Source:        source,
		CreatedBy:     &userID,
	}
	return s.store.CreateProblem(ctx, p)
}

// TitleFromStatement derives a short display title from a problem statement.
func TitleFromStatement(statement string) string {
	title := strings.Join(strings.Fields(statement), " ")
	runes := []rune(title)
	if len(runes) > 100 {
		return string(runes[:100])
	}
	return title
}
