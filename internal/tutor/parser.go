package tutor

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/classmate-ai/backend/internal/models"
)

// ParseExplanation decodes the model's explanation JSON. If the response is
// not valid JSON the raw text is repackaged into numbered steps so the
// student still gets something readable.
func ParseExplanation(responseBody string) (*models.Explanation, error) {
	cleaned := stripCodeFences(responseBody)

	var exp models.Explanation
	if err := json.Unmarshal([]byte(cleaned), &exp); err != nil {
		return fallbackExplanation(responseBody), nil
	}

	if exp.SimplifiedProblem == "" && len(exp.Steps) == 0 && exp.FinalAnswer == "" {
		return nil, fmt.Errorf("explanation response has no content")
	}
	return &exp, nil
}

func fallbackExplanation(raw string) *models.Explanation {
	var steps []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		steps = append(steps, fmt.Sprintf("%d. %s", len(steps)+1, line))
	}
	return &models.Explanation{
		Steps:       steps,
		FinalAnswer: "See steps above for the complete solution.",
	}
}

// ParseSimilar decodes the similar-problems JSON and checks shape: exactly
// four problems, each with a statement and an answer.
func ParseSimilar(responseBody string) (*models.SimilarResponse, error) {
	cleaned := stripCodeFences(responseBody)

	var resp models.SimilarResponse
	if err := json.Unmarshal([]byte(cleaned), &resp); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	if len(resp.Problems) != 4 {
		return nil, fmt.Errorf("expected 4 similar problems, got %d", len(resp.Problems))
	}
	for i, p := range resp.Problems {
		if strings.TrimSpace(p.Problem) == "" {
			return nil, fmt.Errorf("similar problem %d has empty statement", i+1)
		}
		if strings.TrimSpace(p.Answer) == "" {
			return nil, fmt.Errorf("similar problem %d has empty answer", i+1)
		}
	}
	return &resp, nil
}

// CleanAnswer strips the lead-in phrasing models add despite instructions
// ("Answer: 42." becomes "42").
func CleanAnswer(raw string) string {
	answer := strings.TrimSpace(raw)
	for _, prefix := range []string{"Answer:", "The answer is:", "The answer is", "Result:", "Result"} {
		if len(answer) > len(prefix) && strings.EqualFold(answer[:len(prefix)], prefix) {
			answer = strings.TrimSpace(answer[len(prefix):])
			break
		}
	}
	answer = strings.TrimSuffix(answer, ".")
	return strings.TrimSpace(answer)
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimSpace(s)
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSpace(s)
	}
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSuffix(s, "```")
		s = strings.TrimSpace(s)
	}
	return s
}
