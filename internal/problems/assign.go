package problems

import (
	"math/rand"

	"github.com/classmate-ai/backend/internal/models"
)

// Rating bands per difficulty, on the same Elo scale user ratings live on.
const (
	easyRatingMin    = 800
	easyRatingSpan   = 400
	mediumRatingMin  = 1400
	mediumRatingSpan = 400
	hardRatingMin    = 1900
	hardRatingSpan   = 500
)

// AssignRating picks a problem rating at random within the band for its
// difficulty: easy 800-1199, medium 1400-1799, hard 1900-2399.
func AssignRating(difficulty models.Difficulty) int {
	switch difficulty {
	case models.DifficultyEasy:
		return easyRatingMin + rand.Intn(easyRatingSpan)
	case models.DifficultyHard:
		return hardRatingMin + rand.Intn(hardRatingSpan)
	default:
		return mediumRatingMin + rand.Intn(mediumRatingSpan)
	}
}
