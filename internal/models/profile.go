package models

import "time"

// ── Profile Types ────────────────────────────────────────

type ProfileResponse struct {
	User         User            `json:"user"`
	Ratings      UserRatingState `json:"ratings"`
	Level        string          `json:"level"`
	Achievements []Achievement   `json:"achievements"`
	Stats        ProfileStats    `json:"stats"`
}

type Achievement struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Unlocked    bool   `json:"unlocked"`
}

type ProfileStats struct {
	TotalAttempts   int     `json:"total_attempts"`
	CorrectAttempts int     `json:"correct_attempts"`
	Accuracy        float64 `json:"accuracy"`
	HardSolved      bool    `json:"hard_solved"`
}

// RatingPoint is one sample of a user's rating trajectory, fed to the
// profile chart.
type RatingPoint struct {
	Subject     Subject   `json:"subject"`
	RatingAfter int       `json:"rating_after"`
	Delta       int       `json:"delta"`
	AttemptedAt time.Time `json:"attempted_at"`
}

// ── Leaderboard Types ────────────────────────────────────

type LeaderboardEntry struct {
	Rank              int    `json:"rank"`
	UserID            int64  `json:"user_id"`
	Username          string `json:"username"`
	TotalRating       int    `json:"total_rating"`
	MathRating        int    `json:"math_rating"`
	PhysicsRating     int    `json:"physics_rating"`
	ProgrammingRating int    `json:"programming_rating"`
	StreakDays        int    `json:"streak_days"`
	SolvedCount       int    `json:"solved_count"`
	Level             string `json:"level"`
	IsCurrentUser     bool   `json:"is_current_user,omitempty"`
}

type LeaderboardResponse struct {
	Entries     []LeaderboardEntry `json:"entries"`
	CurrentUser *LeaderboardEntry  `json:"current_user,omitempty"`
}
