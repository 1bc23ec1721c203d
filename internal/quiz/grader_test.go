package quiz

import (
	"errors"
	"testing"
	"time"

	"github.com/sithvalentine/wealth-builder-mvp/internal/domain"
)

func intPtr(v int) *int { return &v }

func sampleQuiz() domain.Quiz {
	return domain.Quiz{
		ID:               "quiz-1",
		Title:            "Money basics",
		TimeLimitMinutes: intPtr(20),
		AttemptsAllowed:  intPtr(2),
		Questions: []domain.Question{
			{
				ID:            "q1",
				Type:          domain.SingleChoice,
				Options:       []string{"Medium of exchange", "Source of happiness"},
				CorrectAnswer: domain.SingleAnswer("Source of happiness"),
				Points:        10,
			},
			{
				ID:            "q2",
				Type:          domain.TrueFalse,
				Options:       []string{"True", "False"},
				CorrectAnswer: domain.SingleAnswer("False"),
				Points:        10,
			},
			{
				ID:            "q3",
				Type:          domain.MultipleSelect,
				Options:       []string{"A", "B", "C"},
				CorrectAnswer: domain.MultiAnswer("A", "B"),
				Points:        20,
			},
		},
	}
}

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func TestStartNumbersAttemptsAndEnforcesLimit(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 9, 2, 10, 0, 0, 0, time.UTC)}
	g := NewGraderWithClock(clock.now)

	attempt, err := g.Start(sampleQuiz(), "enr-1", 1)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if attempt.AttemptNumber != 2 || !attempt.StartedAt.Equal(clock.t) || attempt.Status() != domain.AttemptStarted {
		t.Fatalf("unexpected attempt %+v", attempt)
	}
	if attempt.PossiblePoints != 40 {
		t.Fatalf("expected 40 possible points, got %v", attempt.PossiblePoints)
	}

	if _, err := g.Start(sampleQuiz(), "enr-1", 2); !errors.Is(err, domain.ErrAttemptLimitExceeded) {
		t.Fatalf("expected attempt limit error, got %v", err)
	}

	unlimited := sampleQuiz()
	unlimited.AttemptsAllowed = nil
	if _, err := g.Start(unlimited, "enr-1", 50); err != nil {
		t.Fatalf("expected unlimited attempts, got %v", err)
	}
}

func TestSubmitGradesEachQuestionType(t *testing.T) {
	tests := []struct {
		name    string
		answers map[string]domain.Answer
		earned  float64
	}{
		{
			name: "all correct, set order ignored",
			answers: map[string]domain.Answer{
				"q1": domain.SingleAnswer("Source of happiness"),
				"q2": domain.SingleAnswer("False"),
				"q3": domain.MultiAnswer("B", "A"),
			},
			earned: 40,
		},
		{
			name: "missing selection earns nothing",
			answers: map[string]domain.Answer{
				"q3": domain.MultiAnswer("A"),
			},
			earned: 0,
		},
		{
			name: "extra selection earns nothing",
			answers: map[string]domain.Answer{
				"q1": domain.SingleAnswer("Source of happiness"),
				"q3": domain.MultiAnswer("A", "B", "C"),
			},
			earned: 10,
		},
		{
			name: "case sensitive single choice",
			answers: map[string]domain.Answer{
				"q2": domain.SingleAnswer("false"),
			},
			earned: 0,
		},
		{
			name:    "no answers at all",
			answers: nil,
			earned:  0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := &fakeClock{t: time.Date(2024, 9, 2, 10, 0, 0, 0, time.UTC)}
			g := NewGraderWithClock(clock.now)
			attempt, err := g.Start(sampleQuiz(), "enr-1", 0)
			if err != nil {
				t.Fatalf("start: %v", err)
			}
			clock.t = clock.t.Add(5 * time.Minute)

			sub, err := g.Submit(sampleQuiz(), attempt, tt.answers)
			if err != nil {
				t.Fatalf("submit: %v", err)
			}
			if sub.Attempt.EarnedPoints != tt.earned {
				t.Fatalf("expected %v points, got %v", tt.earned, sub.Attempt.EarnedPoints)
			}
			if want := 100 * tt.earned / 40; sub.Attempt.Score != want {
				t.Fatalf("expected score %v, got %v", want, sub.Attempt.Score)
			}
			if sub.Attempt.Status() != domain.AttemptSubmitted || !sub.Attempt.SubmittedAt.Equal(clock.t) {
				t.Fatalf("expected submitted attempt, got %+v", sub.Attempt)
			}
			if len(sub.Results) != 3 {
				t.Fatalf("expected a result per question, got %d", len(sub.Results))
			}
			if sub.Item.Category != domain.CategoryQuiz || sub.Item.EarnedPoints != tt.earned || sub.Item.PossiblePoints != 40 {
				t.Fatalf("unexpected scored item %+v", sub.Item)
			}
			if attempt.SubmittedAt != nil {
				t.Fatalf("input attempt was mutated")
			}
		})
	}
}

func TestSubmitReviewRecord(t *testing.T) {
	g := NewGrader()
	q := sampleQuiz()
	q.TimeLimitMinutes = nil
	attempt, _ := g.Start(q, "enr-1", 0)

	sub, err := g.Submit(q, attempt, map[string]domain.Answer{"q3": domain.MultiAnswer("A")})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	res := sub.Results["q3"]
	if res.IsCorrect || res.PointsEarned != 0 || res.PossiblePoints != 20 {
		t.Fatalf("unexpected result %+v", res)
	}
	if !res.CorrectAnswer.SetEqual(domain.MultiAnswer("A", "B")) {
		t.Fatalf("expected correct answer in review, got %v", res.CorrectAnswer)
	}
	if res.StudentAnswer.String() != "[A]" {
		t.Fatalf("expected student answer in review, got %v", res.StudentAnswer)
	}

	reviewed, err := Review(sub.Attempt)
	if err != nil || len(reviewed) != 3 {
		t.Fatalf("review: %v (%d results)", err, len(reviewed))
	}
	if _, err := Review(attempt); !errors.Is(err, domain.ErrNotSubmitted) {
		t.Fatalf("expected not submitted, got %v", err)
	}
}

func TestSubmitTimeLimit(t *testing.T) {
	start := time.Date(2024, 9, 2, 10, 0, 0, 0, time.UTC)
	clock := &fakeClock{t: start}
	g := NewGraderWithClock(clock.now)
	attempt, err := g.Start(sampleQuiz(), "enr-1", 0)
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	clock.t = start.Add(21 * time.Minute)
	if _, err := g.Submit(sampleQuiz(), attempt, nil); !errors.Is(err, domain.ErrTimeLimitExceeded) {
		t.Fatalf("expected time limit error, got %v", err)
	}
	if attempt.Status() != domain.AttemptStarted {
		t.Fatalf("attempt must remain unsubmitted")
	}

	clock.t = start.Add(19 * time.Minute)
	if _, err := g.Submit(sampleQuiz(), attempt, nil); err != nil {
		t.Fatalf("expected submission within limit, got %v", err)
	}

	clock.t = start.Add(20 * time.Minute)
	if _, err := g.Submit(sampleQuiz(), attempt, nil); err != nil {
		t.Fatalf("expected submission at the limit, got %v", err)
	}
}

func TestSubmitRejectsSubmittedAttempt(t *testing.T) {
	g := NewGrader()
	q := sampleQuiz()
	q.TimeLimitMinutes = nil
	attempt, _ := g.Start(q, "enr-1", 0)
	sub, err := g.Submit(q, attempt, nil)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := g.Submit(q, sub.Attempt, nil); !errors.Is(err, domain.ErrAlreadySubmitted) {
		t.Fatalf("expected already submitted, got %v", err)
	}
}

func TestSubmitRejectsAnswerShapeMismatch(t *testing.T) {
	g := NewGrader()
	q := sampleQuiz()
	q.TimeLimitMinutes = nil
	attempt, _ := g.Start(q, "enr-1", 0)

	if _, err := g.Submit(q, attempt, map[string]domain.Answer{"q3": domain.SingleAnswer("A")}); !errors.Is(err, domain.ErrAnswerTypeMismatch) {
		t.Fatalf("expected mismatch for multi-select, got %v", err)
	}
	if _, err := g.Submit(q, attempt, map[string]domain.Answer{"q1": domain.MultiAnswer("Source of happiness")}); !errors.Is(err, domain.ErrAnswerTypeMismatch) {
		t.Fatalf("expected mismatch for single choice, got %v", err)
	}
}

func TestSubmitZeroPointQuiz(t *testing.T) {
	g := NewGrader()
	empty := domain.Quiz{ID: "empty"}
	attempt, _ := g.Start(empty, "enr-1", 0)
	sub, err := g.Submit(empty, attempt, nil)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if sub.Attempt.Score != 0 {
		t.Fatalf("expected score 0, got %v", sub.Attempt.Score)
	}
}
