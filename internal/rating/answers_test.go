package rating

import "testing"

func TestNormalizeAnswer(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  42  ", "42"},
		{"X = 7", "x = 7"},
		{"The   Answer\tIs  Yes", "the answer is yes"},
		{"3,14", "3.14"},
		{"1,5 m/s", "1.5 m/s"},
		{"apples, oranges", "apples, oranges"}, // list comma, not decimal
		{",5", ",5"},                           // leading comma untouched
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizeAnswer(tt.in); got != tt.want {
			t.Errorf("NormalizeAnswer(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestAnswersMatch(t *testing.T) {
	tests := []struct {
		submitted string
		expected  string
		want      bool
	}{
		{"42", "42", true},
		{"  42 ", "42", true},
		{"3,14", "3.14", true},
		{"X=7", "x=7", true},
		{"Yes", "no", false},
		{"3.141", "3.14", false},
	}

	for _, tt := range tests {
		if got := AnswersMatch(tt.submitted, tt.expected); got != tt.want {
			t.Errorf("AnswersMatch(%q, %q) = %v, want %v", tt.submitted, tt.expected, got, tt.want)
		}
	}
}
