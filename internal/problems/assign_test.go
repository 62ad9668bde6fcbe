package problems

import (
	"testing"

	"github.com/classmate-ai/backend/internal/models"
)

func TestAssignRatingBands(t *testing.T) {
	tests := []struct {
		difficulty models.Difficulty
		min, max   int
	}{
		{models.DifficultyEasy, 800, 1199},
		{models.DifficultyMedium, 1400, 1799},
		{models.DifficultyHard, 1900, 2399},
	}

	for _, tt := range tests {
		for i := 0; i < 200; i++ {
			got := AssignRating(tt.difficulty)
			if got < tt.min || got > tt.max {
				t.Fatalf("AssignRating(%s) = %d, want in [%d, %d]", tt.difficulty, got, tt.min, tt.max)
			}
		}
	}
}

func TestAssignRatingUnknownDifficultyDefaultsToMedium(t *testing.T) {
	got := AssignRating(models.Difficulty("weird"))
	if got < 1400 || got > 1799 {
		t.Errorf("AssignRating(unknown) = %d, want medium band [1400, 1799]", got)
	}
}
