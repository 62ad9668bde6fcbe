package tutor

import (
	"strings"
	"testing"
)

const validExplanationJSON = `{
	"simplified_problem": "Find the value of x in the equation 2x + 4 = 10.",
	"steps": ["Step 1: Subtract 4 from both sides to get 2x = 6.", "Step 2: Divide both sides by 2."],
	"final_answer": "x = 3"
}`

func TestParseExplanation_ValidJSON(t *testing.T) {
	exp, err := ParseExplanation(validExplanationJSON)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if exp.SimplifiedProblem == "" {
		t.Error("expected simplified_problem to be set")
	}
	if len(exp.Steps) != 2 {
		t.Errorf("expected 2 steps, got %d", len(exp.Steps))
	}
	if exp.FinalAnswer != "x = 3" {
		t.Errorf("expected final answer %q, got %q", "x = 3", exp.FinalAnswer)
	}
}

func TestParseExplanation_CodeFences(t *testing.T) {
	input := "```json\n" + validExplanationJSON + "\n```"

	exp, err := ParseExplanation(input)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if exp.FinalAnswer != "x = 3" {
		t.Errorf("expected final answer %q, got %q", "x = 3", exp.FinalAnswer)
	}
}

func TestParseExplanation_PlainTextFallback(t *testing.T) {
	input := "First, subtract 4 from both sides.\n\nThen divide by 2 to get x = 3."

	exp, err := ParseExplanation(input)
	if err != nil {
		t.Fatalf("expected fallback, got error: %v", err)
	}

	if len(exp.Steps) != 2 {
		t.Fatalf("expected 2 fallback steps, got %d", len(exp.Steps))
	}
	if !strings.HasPrefix(exp.Steps[0], "1. ") {
		t.Errorf("expected numbered fallback step, got %q", exp.Steps[0])
	}
	if exp.FinalAnswer == "" {
		t.Error("expected fallback final answer to be set")
	}
}

func TestParseExplanation_EmptyJSON(t *testing.T) {
	if _, err := ParseExplanation(`{}`); err == nil {
		t.Error("expected error for explanation with no content")
	}
}

func validSimilarJSON() string {
	return `{"problems":[
		{"problem": "Solve 3x + 1 = 10.", "answer": "3"},
		{"problem": "Solve 5x - 5 = 20.", "answer": "5"},
		{"problem": "Solve 2x + 8 = 14.", "answer": "3"},
		{"problem": "Solve 4x - 2 = 10.", "answer": "3"}
	]}`
}

func TestParseSimilar_ValidJSON(t *testing.T) {
	resp, err := ParseSimilar(validSimilarJSON())
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(resp.Problems) != 4 {
		t.Fatalf("expected 4 problems, got %d", len(resp.Problems))
	}
	for i, p := range resp.Problems {
		if p.Problem == "" || p.Answer == "" {
			t.Errorf("problem %d: missing statement or answer", i+1)
		}
	}
}

func TestParseSimilar_WrongCount(t *testing.T) {
	input := `{"problems":[{"problem": "Solve x + 1 = 2.", "answer": "1"}]}`

	if _, err := ParseSimilar(input); err == nil {
		t.Error("expected error for fewer than 4 problems")
	}
}

func TestParseSimilar_InvalidJSON(t *testing.T) {
	if _, err := ParseSimilar("Sure! Here are four problems:"); err == nil {
		t.Error("expected error for non-JSON response")
	}
}

func TestParseSimilar_EmptyAnswer(t *testing.T) {
	input := `{"problems":[
		{"problem": "Solve 3x + 1 = 10.", "answer": "3"},
		{"problem": "Solve 5x - 5 = 20.", "answer": ""},
		{"problem": "Solve 2x + 8 = 14.", "answer": "3"},
		{"problem": "Solve 4x - 2 = 10.", "answer": "3"}
	]}`

	if _, err := ParseSimilar(input); err == nil {
		t.Error("expected error for empty answer")
	}
}

func TestCleanAnswer(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"42", "42"},
		{"Answer: 42", "42"},
		{"The answer is 42.", "42"},
		{"the answer is: x = 3", "x = 3"},
		{"Result: 7", "7"},
		{"  3.14  ", "3.14"},
	}

	for _, tt := range tests {
		if got := CleanAnswer(tt.input); got != tt.want {
			t.Errorf("CleanAnswer(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
