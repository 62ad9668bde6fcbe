package profile

import (
	"testing"

	"github.com/classmate-ai/backend/internal/models"
)

func unlockedSet(achievements []models.Achievement) map[string]bool {
	set := make(map[string]bool)
	for _, a := range achievements {
		if a.Unlocked {
			set[a.ID] = true
		}
	}
	return set
}

func TestAchievementsNewUser(t *testing.T) {
	achievements := Achievements(models.DefaultRatingState(), false)

	if len(achievements) != 4 {
		t.Fatalf("expected 4 achievements, got %d", len(achievements))
	}
	if got := unlockedSet(achievements); len(got) != 0 {
		t.Errorf("expected no unlocked achievements for a new user, got %v", got)
	}
}

func TestAchievementsThresholds(t *testing.T) {
	tests := []struct {
		name       string
		state      models.UserRatingState
		hardSolved bool
		want       map[string]bool
	}{
		{
			name:  "first solve only",
			state: models.UserRatingState{TotalRating: 1200, SolvedCount: 1},
			want:  map[string]bool{"first_solve": true},
		},
		{
			name:  "streak just under threshold",
			state: models.UserRatingState{TotalRating: 1200, SolvedCount: 10, StreakDays: 4},
			want:  map[string]bool{"first_solve": true},
		},
		{
			name:  "streak at threshold",
			state: models.UserRatingState{TotalRating: 1200, SolvedCount: 10, StreakDays: 5},
			want:  map[string]bool{"first_solve": true, "streak_5": true},
		},
		{
			name:  "rating at threshold",
			state: models.UserRatingState{TotalRating: 1300, SolvedCount: 20},
			want:  map[string]bool{"first_solve": true, "rated_1300": true},
		},
		{
			name:       "hard solver",
			state:      models.UserRatingState{TotalRating: 1250, SolvedCount: 5},
			hardSolved: true,
			want:       map[string]bool{"first_solve": true, "hard_solver": true},
		},
		{
			name:       "all unlocked",
			state:      models.UserRatingState{TotalRating: 1450, SolvedCount: 40, StreakDays: 9},
			hardSolved: true,
			want:       map[string]bool{"first_solve": true, "streak_5": true, "rated_1300": true, "hard_solver": true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := unlockedSet(Achievements(tt.state, tt.hardSolved))
			if len(got) != len(tt.want) {
				t.Fatalf("unlocked = %v, want %v", got, tt.want)
			}
			for id := range tt.want {
				if !got[id] {
					t.Errorf("expected %s to be unlocked", id)
				}
			}
		})
	}
}
