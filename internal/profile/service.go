package profile

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/classmate-ai/backend/internal/models"
	"github.com/classmate-ai/backend/internal/rating"
)

type Service struct {
	store   *Store
	ratings *rating.Store
}

func NewService(store *Store, ratings *rating.Store) *Service {
	return &Service{store: store, ratings: ratings}
}

// Profile assembles the full profile view: account, ratings, tier, badges,
// and attempt stats. Users who have never attempted anything get the default
// rating state rather than an error.
func (s *Service) Profile(ctx context.Context, userID int64) (*models.ProfileResponse, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}

	state, err := s.ratings.Get(ctx, userID)
	if errors.Is(err, sql.ErrNoRows) {
		state = models.DefaultRatingState()
	} else if err != nil {
		return nil, fmt.Errorf("load rating state: %w", err)
	}

	stats, err := s.store.AttemptStats(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load attempt stats: %w", err)
	}

	return &models.ProfileResponse{
		User:         *user,
		Ratings:      state,
		Level:        LevelForRating(state.TotalRating),
		Achievements: Achievements(state, stats.HardSolved),
		Stats:        stats,
	}, nil
}

// RatingHistory returns the subject-filtered rating trajectory for charts.
func (s *Service) RatingHistory(ctx context.Context, userID int64, subject *models.Subject, limit int) ([]models.RatingPoint, error) {
	if limit <= 0 || limit > 500 {
		limit = 200
	}
	return s.store.RatingHistory(ctx, userID, subject, limit)
}

// Leaderboard returns the top entries with the caller marked, appending the
// caller's own ranked entry when they fall outside the top.
func (s *Service) Leaderboard(ctx context.Context, userID int64, limit int) (*models.LeaderboardResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 25
	}

	entries, err := s.store.Leaderboard(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("load leaderboard: %w", err)
	}

	resp := &models.LeaderboardResponse{Entries: entries}
	for i := range resp.Entries {
		if resp.Entries[i].UserID == userID {
			resp.Entries[i].IsCurrentUser = true
			return resp, nil
		}
	}

	current, err := s.store.UserRank(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load user rank: %w", err)
	}
	resp.CurrentUser = current
	return resp, nil
}
