package domain

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestQuizDecodesLegacyJSON(t *testing.T) {
	raw := `{
		"id": "week-1",
		"title": "Week 1",
		"timeLimit": 20,
		"attemptsAllowed": 3,
		"questions": [
			{"id": "q1", "questionType": "MultipleChoice", "options": ["a", "b"], "correctAnswer": "a", "points": 10},
			{"id": "q2", "questionType": "MultipleSelect", "options": ["a", "b", "c"], "correctAnswer": ["a", "c"], "points": 20}
		]
	}`
	var q Quiz
	if err := json.Unmarshal([]byte(raw), &q); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if err := q.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if q.Questions[0].Type != SingleChoice || q.Questions[0].CorrectAnswer.Value() != "a" {
		t.Fatalf("unexpected first question %+v", q.Questions[0])
	}
	if !q.Questions[1].CorrectAnswer.SetEqual(MultiAnswer("c", "a")) {
		t.Fatalf("unexpected multi answer %v", q.Questions[1].CorrectAnswer)
	}
	if q.TotalPoints() != 30 || *q.TimeLimitMinutes != 20 || *q.AttemptsAllowed != 3 {
		t.Fatalf("unexpected quiz policy %+v", q)
	}

	data, err := json.Marshal(q)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var again Quiz
	if err := json.Unmarshal(data, &again); err != nil {
		t.Fatalf("unmarshal again: %v", err)
	}
	if !again.Questions[1].CorrectAnswer.IsMulti() || again.Questions[0].CorrectAnswer.IsMulti() {
		t.Fatalf("answer shapes lost in round trip: %s", data)
	}
}

func TestQuizValidate(t *testing.T) {
	base := func() Quiz {
		return Quiz{ID: "q", Questions: []Question{
			{ID: "q1", Type: TrueFalse, CorrectAnswer: SingleAnswer("True"), Points: 1},
		}}
	}
	tests := []struct {
		name   string
		mutate func(*Quiz)
	}{
		{name: "duplicate id", mutate: func(q *Quiz) { q.Questions = append(q.Questions, q.Questions[0]) }},
		{name: "zero points", mutate: func(q *Quiz) { q.Questions[0].Points = 0 }},
		{name: "missing id", mutate: func(q *Quiz) { q.Questions[0].ID = "" }},
		{name: "set answer for true/false", mutate: func(q *Quiz) { q.Questions[0].CorrectAnswer = MultiAnswer("True") }},
		{name: "single answer for multi-select", mutate: func(q *Quiz) { q.Questions[0].Type = MultipleSelect }},
		{name: "unknown type", mutate: func(q *Quiz) { q.Questions[0].Type = "Essay" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := base()
			tt.mutate(&q)
			if err := q.Validate(); !errors.Is(err, ErrInvalidQuestion) {
				t.Fatalf("expected invalid question, got %v", err)
			}
		})
	}
	if err := base().Validate(); err != nil {
		t.Fatalf("expected valid quiz, got %v", err)
	}
}

func TestForStudentStripsAnswerKeys(t *testing.T) {
	q := Quiz{ID: "q", Questions: []Question{
		{ID: "q1", Type: TrueFalse, CorrectAnswer: SingleAnswer("True"), Points: 1, Explanation: "because"},
	}}
	view := q.ForStudent()
	if !view.Questions[0].CorrectAnswer.IsZero() || view.Questions[0].Explanation != "" {
		t.Fatalf("answer key leaked: %+v", view.Questions[0])
	}
	if q.Questions[0].CorrectAnswer.Value() != "True" {
		t.Fatalf("original quiz was modified")
	}
}

func TestAnswerFromValue(t *testing.T) {
	tests := []struct {
		name  string
		in    any
		multi bool
		zero  bool
		err   bool
	}{
		{name: "nil", in: nil, zero: true},
		{name: "string", in: "a"},
		{name: "yaml bool", in: true},
		{name: "list", in: []any{"a", "b"}, multi: true},
		{name: "empty list", in: []any{}, multi: true, zero: true},
		{name: "list of numbers", in: []any{1}, err: true},
		{name: "number", in: 4, err: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := AnswerFromValue(tt.in)
			if tt.err {
				if !errors.Is(err, ErrAnswerTypeMismatch) {
					t.Fatalf("expected mismatch, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error %v", err)
			}
			if a.IsMulti() != tt.multi || a.IsZero() != tt.zero {
				t.Fatalf("unexpected answer %+v", a)
			}
		})
	}
}

func TestNewScoredItemAndWeights(t *testing.T) {
	if _, err := NewScoredItem("Quizzes", 1, 1); !errors.Is(err, ErrInvalidCategory) {
		t.Fatalf("expected invalid category, got %v", err)
	}
	if _, err := NewScoredItem("Quiz", -1, 1); !errors.Is(err, ErrInvalidScore) {
		t.Fatalf("expected invalid score, got %v", err)
	}
	if _, err := NewScoredItem("Quiz", 1, 0); !errors.Is(err, ErrInvalidScore) {
		t.Fatalf("expected invalid score for zero possible, got %v", err)
	}
	item, err := NewScoredItem("RealWorld", 8, 10)
	if err != nil || item.Category != CategoryRealWorld {
		t.Fatalf("unexpected item %+v (%v)", item, err)
	}

	if _, err := NewCategoryWeights(40, -1, 20, 10); !errors.Is(err, ErrInvalidWeight) {
		t.Fatalf("expected invalid weight, got %v", err)
	}
	if DefaultCategoryWeights.For(CategoryQuiz) != 30 || DefaultCategoryWeights.For("Other") != 0 {
		t.Fatalf("unexpected weight lookup")
	}
}
