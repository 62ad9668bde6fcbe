package profile

import "testing"

func TestLevelForRating(t *testing.T) {
	tests := []struct {
		rating int
		want   string
	}{
		{800, LevelBronze},
		{1199, LevelBronze},
		{1200, LevelSilver},
		{1399, LevelSilver},
		{1400, LevelGold},
		{1599, LevelGold},
		{1600, LevelPlatinum},
		{1899, LevelPlatinum},
		{1900, LevelDiamond},
		{2400, LevelDiamond},
	}

	for _, tt := range tests {
		if got := LevelForRating(tt.rating); got != tt.want {
			t.Errorf("LevelForRating(%d) = %q, want %q", tt.rating, got, tt.want)
		}
	}
}
