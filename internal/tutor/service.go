package tutor

import (
	"context"
	"fmt"
	"log"

	"github.com/classmate-ai/backend/internal/models"
	"github.com/classmate-ai/backend/internal/problems"
	"github.com/classmate-ai/backend/internal/rating"
)

type Service struct {
	llm      LLMClient
	store    *Store
	problems *problems.Service
	ratings  *rating.Service
}

func NewService(llm LLMClient, store *Store, problemSvc *problems.Service, ratingSvc *rating.Service) *Service {
	return &Service{llm: llm, store: store, problems: problemSvc, ratings: ratingSvc}
}

// Explain produces a structured step-by-step solution for the given problem
// and records the interaction in the user's history.
func (s *Service) Explain(ctx context.Context, userID int64, req models.ExplainRequest) (*models.Explanation, error) {
	raw, err := s.llm.Complete(ctx, ExplainSystemPrompt(req.Subject), BuildExplainUserPrompt(req.ProblemText))
	if err != nil {
		return nil, fmt.Errorf("explain: %w", err)
	}

	exp, err := ParseExplanation(raw)
	if err != nil {
		return nil, fmt.Errorf("parse explanation: %w", err)
	}

	// History is best-effort: a failed insert shouldn't cost the student
	// the explanation they already paid tokens for.
	if err := s.store.RecordQuery(ctx, userID, req.Subject, req.ProblemText, exp.FinalAnswer); err != nil {
		log.Printf("WARN: failed to record tutor query for user %d: %v", userID, err)
	}

	return exp, nil
}

// Similar generates four practice problems matching the original's concepts
// and difficulty.
func (s *Service) Similar(ctx context.Context, req models.SimilarRequest) (*models.SimilarResponse, error) {
	raw, err := s.llm.Complete(ctx, SimilarSystemPrompt(req.Subject), BuildSimilarUserPrompt(req.ProblemText))
	if err != nil {
		return nil, fmt.Errorf("similar: %w", err)
	}

	resp, err := ParseSimilar(raw)
	if err != nil {
		return nil, fmt.Errorf("parse similar problems: %w", err)
	}
	return resp, nil
}

// MarkSolved converts a finished tutor session into rated progress: the
// statement is stored as an AI-sourced problem with the tutor's final answer,
// then a correct attempt is submitted against it so ratings, streak, and the
// attempt log all advance through the one evaluation path.
func (s *Service) MarkSolved(ctx context.Context, userID int64, req models.MarkSolvedRequest) (*models.MarkSolvedResponse, error) {
	difficulty := req.Difficulty
	if !models.ValidDifficulties[difficulty] {
		difficulty = models.DifficultyMedium
	}

	problem, err := s.problems.CreateProblem(ctx, userID, models.CreateProblemRequest{
		Subject:       req.Subject,
		Title:         req.Title,
		Statement:     req.ProblemText,
		Difficulty:    difficulty,
		CorrectAnswer: &req.FinalAnswer,
	}, models.SourceAI)
	if err != nil {
		return nil, fmt.Errorf("create solved problem: %w", err)
	}

	attempt, err := s.ratings.SubmitAttempt(ctx, userID, problem.ID, req.FinalAnswer)
	if err != nil {
		return nil, fmt.Errorf("submit solved attempt: %w", err)
	}

	return &models.MarkSolvedResponse{
		ProblemID: problem.ID,
		Attempt:   *attempt,
	}, nil
}

// RecentQueries returns the caller's latest tutor history.
func (s *Service) RecentQueries(ctx context.Context, userID int64, limit int) ([]models.RecentQuery, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.store.RecentQueries(ctx, userID, limit)
}

// SolveAnswer asks the model for a bare final answer to a problem statement.
// The problem service's answer backfill runs on this.
func (s *Service) SolveAnswer(ctx context.Context, statement string) (string, error) {
	raw, err := s.llm.Complete(ctx, SolveSystemPrompt(), BuildSolveUserPrompt(statement))
	if err != nil {
		return "", fmt.Errorf("solve answer: %w", err)
	}
	return CleanAnswer(raw), nil
}
