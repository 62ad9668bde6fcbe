package models

import "time"

type Subject string

const (
	SubjectMath        Subject = "math"
	SubjectPhysics     Subject = "physics"
	SubjectProgramming Subject = "programming"
)

var ValidSubjects = map[Subject]bool{
	SubjectMath:        true,
	SubjectPhysics:     true,
	SubjectProgramming: true,
}

// AllSubjects returns the subjects in display order.
func AllSubjects() []Subject {
	return []Subject{SubjectMath, SubjectPhysics, SubjectProgramming}
}

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

var ValidDifficulties = map[Difficulty]bool{
	DifficultyEasy:   true,
	DifficultyMedium: true,
	DifficultyHard:   true,
}

type ProblemSource string

const (
	SourceAI     ProblemSource = "ai"
	SourceManual ProblemSource = "manual"
)

type Problem struct {
	ID         int64      `json:"id"`
	Subject    Subject    `json:"subject"`
	Title      string     `json:"title"`
	Statement  string     `json:"statement"`
	Difficulty Difficulty `json:"difficulty"`
	Rating     int        `json:"rating"`
	// CorrectAnswer is never serialized to clients; the verdict is computed
	// server-side on submission.
	CorrectAnswer *string       `json:"-"`
	Source        ProblemSource `json:"source"`
	CreatedBy     *int64        `json:"created_by,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
}

// HasAnswer reports whether the problem can be attempted for rating.
func (p *Problem) HasAnswer() bool {
	return p.CorrectAnswer != nil && *p.CorrectAnswer != ""
}

type CreateProblemRequest struct {
	Subject       Subject    `json:"subject"`
	Title         string     `json:"title"`
	Statement     string     `json:"statement"`
	Difficulty    Difficulty `json:"difficulty"`
	Rating        *int       `json:"rating,omitempty"`
	CorrectAnswer *string    `json:"correct_answer,omitempty"`
}

type FillAnswersResponse struct {
	Processed int    `json:"processed"`
	Succeeded int    `json:"succeeded"`
	Failed    int    `json:"failed"`
	Message   string `json:"message"`
}
