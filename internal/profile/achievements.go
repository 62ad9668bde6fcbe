package profile

import "github.com/classmate-ai/backend/internal/models"

// Achievements computes the fixed badge set from the user's current state.
// Badges are derived on read, never stored, so they can't drift from the
// rating record.
func Achievements(state models.UserRatingState, hardSolved bool) []models.Achievement {
	return []models.Achievement{
		{
			ID:          "first_solve",
			Name:        "First Solve",
			Description: "Solved your first problem",
			Unlocked:    state.SolvedCount >= 1,
		},
		{
			ID:          "streak_5",
			Name:        "5-Day Streak",
			Description: "Maintained a 5-day solving streak",
			Unlocked:    state.StreakDays >= 5,
		},
		{
			ID:          "rated_1300",
			Name:        "Rated 1300+",
			Description: "Achieved a rating of 1300 or higher",
			Unlocked:    state.TotalRating >= 1300,
		},
		{
			ID:          "hard_solver",
			Name:        "Hard Problem Solver",
			Description: "Successfully solved a hard problem",
			Unlocked:    hardSolved,
		},
	}
}
