package profile

// Level names in ascending order of rating.
const (
	LevelBronze   = "Bronze"
	LevelSilver   = "Silver"
	LevelGold     = "Gold"
	LevelPlatinum = "Platinum"
	LevelDiamond  = "Diamond"
)

// LevelForRating maps a total rating to a display tier.
func LevelForRating(totalRating int) string {
	switch {
	case totalRating < 1200:
		return LevelBronze
	case totalRating < 1400:
		return LevelSilver
	case totalRating < 1600:
		return LevelGold
	case totalRating < 1900:
		return LevelPlatinum
	default:
		return LevelDiamond
	}
}
