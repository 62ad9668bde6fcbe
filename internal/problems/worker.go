package problems

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/classmate-ai/backend/internal/models"
)

// AnswerSolver produces a bare final answer for a problem statement. The
// tutor's LLM service satisfies this.
type AnswerSolver interface {
	SolveAnswer(ctx context.Context, statement string) (string, error)
}

// fill-answers batch limits; the per-problem pause keeps us under the AI
// gateway's rate limit.
const (
	fillBatchSize = 100
	fillPause     = 500 * time.Millisecond
)

// FillAnswers finds problems without a stored correct answer and asks the AI
// for one, problem by problem. Individual failures are logged and skipped so
// one bad statement doesn't stall the batch.
func (s *Service) FillAnswers(ctx context.Context) (*models.FillAnswersResponse, error) {
	if s.solver == nil {
		return nil, fmt.Errorf("no answer solver configured")
	}

	pending, err := s.store.UnansweredProblems(ctx, fillBatchSize)
	if err != nil {
		return nil, fmt.Errorf("fetch unanswered problems: %w", err)
	}

	if len(pending) == 0 {
		return &models.FillAnswersResponse{Message: "All problems already have answers"}, nil
	}

	log.Printf("[problems] filling answers for %d problems", len(pending))

	succeeded := 0
	failed := 0
	for i, p := range pending {
		if ctx.Err() != nil {
			break
		}
		answer, err := s.solver.SolveAnswer(ctx, p.Statement)
		if err != nil || answer == "" {
			log.Printf("WARN: failed to solve problem %d: %v", p.ID, err)
			failed++
			continue
		}
		if err := s.store.SetCorrectAnswer(ctx, p.ID, answer); err != nil {
			log.Printf("WARN: failed to store answer for problem %d: %v", p.ID, err)
			failed++
			continue
		}
		succeeded++

		if i < len(pending)-1 {
			time.Sleep(fillPause)
		}
	}

	return &models.FillAnswersResponse{
		Processed: len(pending),
		Succeeded: succeeded,
		Failed:    failed,
		Message:   fmt.Sprintf("Processed %d problems (%d succeeded, %d failed)", len(pending), succeeded, failed),
	}, nil
}

// StartFillAnswersWorker periodically backfills missing answers so manually
// seeded problems become attemptable without an admin call.
func (s *Service) StartFillAnswersWorker(ctx context.Context) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	log.Println("[problems] Fill-answers worker started")

	for {
		select {
		case <-ctx.Done():
			log.Println("[problems] Fill-answers worker shutting down")
			return
		case <-ticker.C:
			if _, err := s.FillAnswers(ctx); err != nil {
				log.Printf("[problems] fill-answers run failed: %v", err)
			}
		}
	}
}
