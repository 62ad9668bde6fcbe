package models

import "time"

// ── Tutor Request/Response Types ─────────────────────────

type ExplainRequest struct {
	Subject     Subject `json:"subject"`
	ProblemText string  `json:"problem_text"`
}

// Explanation is the structured step-by-step solution the AI returns.
type Explanation struct {
	SimplifiedProblem string     `json:"simplified_problem"`
	Steps             []string   `json:"steps"`
	FinalAnswer       string     `json:"final_answer"`
	Difficulty        Difficulty `json:"difficulty,omitempty"`
}

type SimilarRequest struct {
	Subject     Subject `json:"subject"`
	ProblemText string  `json:"problem_text"`
}

type SimilarProblem struct {
	Problem string `json:"problem"`
	Answer  string `json:"answer"`
}

type SimilarResponse struct {
	Problems []SimilarProblem `json:"problems"`
}

// MarkSolvedRequest records a tutor session as a solved problem: the statement
// becomes an AI-sourced problem and a correct attempt is submitted for it.
type MarkSolvedRequest struct {
	Subject     Subject    `json:"subject"`
	ProblemText string     `json:"problem_text"`
	Title       string     `json:"title"`
	FinalAnswer string     `json:"final_answer"`
	Difficulty  Difficulty `json:"difficulty,omitempty"`
}

type MarkSolvedResponse struct {
	ProblemID int64                 `json:"problem_id"`
	Attempt   SubmitAttemptResponse `json:"attempt"`
}

// RecentQuery is a row of the caller's tutor history.
type RecentQuery struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Subject     Subject   `json:"subject"`
	ProblemText string    `json:"problem_text"`
	FinalAnswer string    `json:"final_answer,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
