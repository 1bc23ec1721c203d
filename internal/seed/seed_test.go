package seed

import (
	"context"
	"testing"

	"github.com/sithvalentine/wealth-builder-mvp/internal/domain"
)

type recordingSaver struct {
	saved []string
}

func (r *recordingSaver) SaveQuiz(_ context.Context, q domain.Quiz) error {
	r.saved = append(r.saved, q.ID)
	return nil
}

func TestBundledWeekOneQuiz(t *testing.T) {
	quizzes, err := QuizMap()
	if err != nil {
		t.Fatalf("load bundled quizzes: %v", err)
	}
	q, ok := quizzes["week-1"]
	if !ok {
		t.Fatalf("week-1 quiz missing")
	}
	if len(q.Questions) != 8 || q.TotalPoints() != 100 {
		t.Fatalf("unexpected week-1 quiz: %d questions, %v points", len(q.Questions), q.TotalPoints())
	}
	if *q.TimeLimitMinutes != 20 || *q.AttemptsAllowed != 3 {
		t.Fatalf("unexpected policy %+v", q)
	}
	if q.Questions[0].Type != domain.SingleChoice {
		t.Fatalf("legacy MultipleChoice should decode as single choice, got %s", q.Questions[0].Type)
	}
	if !q.Questions[3].CorrectAnswer.SetEqual(domain.MultiAnswer("Bitcoin", "Credit cards", "Mobile payment apps")) {
		t.Fatalf("unexpected multi-select key %v", q.Questions[3].CorrectAnswer)
	}

	saver := &recordingSaver{}
	if _, err := SaveQuizzes(context.Background(), saver); err != nil {
		t.Fatalf("save quizzes: %v", err)
	}
	if len(saver.saved) != len(quizzes) {
		t.Fatalf("expected %d saved, got %v", len(quizzes), saver.saved)
	}
}
