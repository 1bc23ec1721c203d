package app_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/sithvalentine/wealth-builder-mvp/internal/app"
	"github.com/sithvalentine/wealth-builder-mvp/internal/domain"
	"github.com/sithvalentine/wealth-builder-mvp/internal/infra/memory"
)

type testEnv struct {
	store      *memory.Store
	quizzes    *app.QuizService
	gradebook  *app.GradebookService
	budgets    *app.BudgetService
	wealth     *app.WealthService
	class      domain.Class
	enrollment domain.Enrollment
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	quizRepo := memory.NewQuizRepository(memory.NewStaticQuizLoader(map[string]domain.Quiz{
		"quiz-1": sampleQuiz(),
	}), time.Minute)

	env := &testEnv{
		store:     store,
		quizzes:   app.NewQuizService(quizRepo, store, store, memory.NewSubmissionLock(), nil),
		gradebook: app.NewGradebookService(store, store, domain.DefaultCategoryWeights, nil),
		budgets:   app.NewBudgetService(store, store, nil),
		wealth:    app.NewWealthService(store, store, nil),
	}
	class, err := env.gradebook.CreateClass(ctx, "Period 1", nil)
	if err != nil {
		t.Fatalf("create class: %v", err)
	}
	enrollment, err := env.gradebook.Enroll(ctx, class.ID, "student-1")
	if err != nil {
		t.Fatalf("enroll: %v", err)
	}
	env.class, env.enrollment = class, enrollment
	return env
}

// withAttempts builds a quiz service over a different attempt repository.
func (env *testEnv) withAttempts(attempts app.AttemptRepository) *app.QuizService {
	quizRepo := memory.NewQuizRepository(memory.NewStaticQuizLoader(map[string]domain.Quiz{
		"quiz-1": sampleQuiz(),
	}), time.Minute)
	return app.NewQuizService(quizRepo, attempts, env.store, memory.NewSubmissionLock(), nil)
}

// slowAttempts delays history reads so concurrent starts overlap.
type slowAttempts struct {
	*memory.Store
}

func (s slowAttempts) ListAttempts(ctx context.Context, quizID, enrollmentID string) ([]domain.QuizAttempt, error) {
	time.Sleep(5 * time.Millisecond)
	return s.Store.ListAttempts(ctx, quizID, enrollmentID)
}

// failingSubmit refuses the first SubmitAttempt call.
type failingSubmit struct {
	*memory.Store
	mu     sync.Mutex
	failed bool
}

func (f *failingSubmit) SubmitAttempt(ctx context.Context, attempt domain.QuizAttempt, grade domain.ScoredItem) error {
	f.mu.Lock()
	if !f.failed {
		f.failed = true
		f.mu.Unlock()
		return errors.New("db down")
	}
	f.mu.Unlock()
	return f.Store.SubmitAttempt(ctx, attempt, grade)
}

func TestStartSubmitAndReview(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	attempt, err := env.quizzes.Start(ctx, "quiz-1", env.enrollment.ID)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if attempt.AttemptNumber != 1 || attempt.ID == "" || attempt.PossiblePoints != 30 {
		t.Fatalf("unexpected attempt %+v", attempt)
	}

	if _, err := env.quizzes.Review(ctx, attempt.ID, env.enrollment.ID); !errors.Is(err, domain.ErrNotSubmitted) {
		t.Fatalf("expected not submitted before grading, got %v", err)
	}

	sub, err := env.quizzes.Submit(ctx, attempt.ID, env.enrollment.ID, map[string]domain.Answer{
		"q1": domain.SingleAnswer("Needs"),
		"q2": domain.MultiAnswer("Rent", "Food"),
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if sub.Attempt.EarnedPoints != 10 || sub.Attempt.Score < 33.33 || sub.Attempt.Score > 33.34 {
		t.Fatalf("unexpected grading %+v", sub.Attempt)
	}
	if sub.Results["q2"].IsCorrect {
		t.Fatalf("partial multi-select must not be correct")
	}

	// the emitted quiz grade lands in the gradebook
	report, err := env.gradebook.EnrollmentReport(ctx, env.enrollment.ID)
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if report.WeightedGrade < 33.33 || report.WeightedGrade > 33.34 {
		t.Fatalf("expected quiz-only grade of 33.3, got %v", report.WeightedGrade)
	}

	reviewed, err := env.quizzes.Review(ctx, attempt.ID, env.enrollment.ID)
	if err != nil {
		t.Fatalf("review: %v", err)
	}
	if reviewed.Results["q1"].Explanation != "Half of income." || !reviewed.Results["q1"].IsCorrect {
		t.Fatalf("unexpected review %+v", reviewed.Results["q1"])
	}
	if _, err := env.quizzes.Review(ctx, attempt.ID, "someone-else"); !errors.Is(err, domain.ErrAttemptNotFound) {
		t.Fatalf("expected other enrollments to be refused, got %v", err)
	}

	if _, err := env.quizzes.Submit(ctx, attempt.ID, env.enrollment.ID, nil); !errors.Is(err, domain.ErrAlreadySubmitted) {
		t.Fatalf("expected already submitted, got %v", err)
	}
	grades, _ := env.store.ListGrades(ctx, env.enrollment.ID)
	if len(grades) != 1 || grades[0].Source != "quiz-1" {
		t.Fatalf("expected exactly one quiz grade, got %+v", grades)
	}
}

func TestAttemptLimitAndOverview(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	scores := []map[string]domain.Answer{
		{"q1": domain.SingleAnswer("Needs"), "q2": domain.MultiAnswer("Rent", "Food", "Utilities")},
		{"q1": domain.SingleAnswer("Wants")},
	}
	for _, answers := range scores {
		a, err := env.quizzes.Start(ctx, "quiz-1", env.enrollment.ID)
		if err != nil {
			t.Fatalf("start: %v", err)
		}
		if _, err := env.quizzes.Submit(ctx, a.ID, env.enrollment.ID, answers); err != nil {
			t.Fatalf("submit: %v", err)
		}
	}
	if _, err := env.quizzes.Start(ctx, "quiz-1", env.enrollment.ID); !errors.Is(err, domain.ErrAttemptLimitExceeded) {
		t.Fatalf("expected attempt limit, got %v", err)
	}

	overview, err := env.quizzes.Overview(ctx, "quiz-1", env.enrollment.ID)
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if overview.AttemptsUsed != 2 || *overview.AttemptsRemaining != 0 || *overview.BestScore != 100 {
		t.Fatalf("unexpected overview %+v", overview)
	}
	if overview.RecentAttempts[0].AttemptNumber != 2 || overview.RecentAttempts[0].Results != nil {
		t.Fatalf("recent attempts should be newest first without results: %+v", overview.RecentAttempts)
	}
	if !overview.Quiz.Questions[0].CorrectAnswer.IsZero() {
		t.Fatalf("overview leaked answer key")
	}
}

func TestSubmitRejectsMismatchAndLateSubmission(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	now := time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC)
	env.quizzes.SetClock(func() time.Time { return now })

	a, err := env.quizzes.Start(ctx, "quiz-1", env.enrollment.ID)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := env.quizzes.Submit(ctx, a.ID, env.enrollment.ID, map[string]domain.Answer{"q2": domain.SingleAnswer("Rent")}); !errors.Is(err, domain.ErrAnswerTypeMismatch) {
		t.Fatalf("expected mismatch, got %v", err)
	}

	now = now.Add(11 * time.Minute)
	if _, err := env.quizzes.Submit(ctx, a.ID, env.enrollment.ID, nil); !errors.Is(err, domain.ErrTimeLimitExceeded) {
		t.Fatalf("expected time limit, got %v", err)
	}
	// refused submissions leave the attempt open and ungraded
	stored, _ := env.store.GetAttempt(ctx, a.ID)
	if stored.Status() != domain.AttemptStarted {
		t.Fatalf("expected attempt still open")
	}
	if grades, _ := env.store.ListGrades(ctx, env.enrollment.ID); len(grades) != 0 {
		t.Fatalf("expected no grade, got %+v", grades)
	}
}

func TestConcurrentSubmitGradesOnce(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	a, err := env.quizzes.Start(ctx, "quiz-1", env.enrollment.ID)
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.quizzes.Submit(ctx, a.ID, env.enrollment.ID, map[string]domain.Answer{"q1": domain.SingleAnswer("Needs")})
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
				return
			}
			if !errors.Is(err, domain.ErrAlreadySubmitted) && !errors.Is(err, domain.ErrSubmissionInProgress) {
				t.Errorf("unexpected error %v", err)
			}
		}()
	}
	wg.Wait()

	if succeeded != 1 {
		t.Fatalf("expected exactly one successful submission, got %d", succeeded)
	}
	if grades, _ := env.store.ListGrades(ctx, env.enrollment.ID); len(grades) != 1 {
		t.Fatalf("expected one grade, got %d", len(grades))
	}
}

func TestConcurrentStartHonoursAttemptLimit(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	quizzes := env.withAttempts(slowAttempts{env.store})

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := quizzes.Start(ctx, "quiz-1", env.enrollment.ID)
			if err != nil && !errors.Is(err, domain.ErrAttemptLimitExceeded) {
				t.Errorf("unexpected error %v", err)
			}
		}()
	}
	wg.Wait()

	attempts, _ := env.store.ListAttempts(ctx, "quiz-1", env.enrollment.ID)
	if len(attempts) != 2 || attempts[0].AttemptNumber != 1 || attempts[1].AttemptNumber != 2 {
		t.Fatalf("expected attempts 1 and 2 only, got %+v", attempts)
	}
}

func TestFailedSubmitLeavesAttemptOpen(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	quizzes := env.withAttempts(&failingSubmit{Store: env.store})

	a, err := quizzes.Start(ctx, "quiz-1", env.enrollment.ID)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	answers := map[string]domain.Answer{"q1": domain.SingleAnswer("Needs")}
	if _, err := quizzes.Submit(ctx, a.ID, env.enrollment.ID, answers); err == nil {
		t.Fatalf("expected storage error")
	}
	stored, _ := env.store.GetAttempt(ctx, a.ID)
	if stored.Status() != domain.AttemptStarted {
		t.Fatalf("expected attempt still open after failed write")
	}
	if grades, _ := env.store.ListGrades(ctx, env.enrollment.ID); len(grades) != 0 {
		t.Fatalf("expected no grade after failed write, got %+v", grades)
	}

	if _, err := quizzes.Submit(ctx, a.ID, env.enrollment.ID, answers); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if grades, _ := env.store.ListGrades(ctx, env.enrollment.ID); len(grades) != 1 {
		t.Fatalf("expected one grade after retry, got %d", len(grades))
	}
}

func TestSubmitRefusesOtherEnrollment(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	other, err := env.gradebook.Enroll(ctx, env.class.ID, "student-2")
	if err != nil {
		t.Fatalf("enroll: %v", err)
	}
	a, err := env.quizzes.Start(ctx, "quiz-1", env.enrollment.ID)
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	if _, err := env.quizzes.Submit(ctx, a.ID, other.ID, nil); !errors.Is(err, domain.ErrAttemptNotFound) {
		t.Fatalf("expected attempt not found for another enrollment, got %v", err)
	}
	stored, _ := env.store.GetAttempt(ctx, a.ID)
	if stored.Status() != domain.AttemptStarted {
		t.Fatalf("attempt must stay open")
	}
}

func TestStartRequiresKnownEnrollmentAndQuiz(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	if _, err := env.quizzes.Start(ctx, "quiz-1", "ghost"); !errors.Is(err, domain.ErrEnrollmentNotFound) {
		t.Fatalf("expected enrollment not found, got %v", err)
	}
	if _, err := env.quizzes.Start(ctx, "quiz-9", env.enrollment.ID); !errors.Is(err, domain.ErrQuizNotFound) {
		t.Fatalf("expected quiz not found, got %v", err)
	}
	if _, err := env.quizzes.Submit(ctx, "ghost", env.enrollment.ID, nil); !errors.Is(err, domain.ErrAttemptNotFound) {
		t.Fatalf("expected attempt not found, got %v", err)
	}
}

func sampleQuiz() domain.Quiz {
	limit, attempts := 10, 2
	return domain.Quiz{
		ID:               "quiz-1",
		Title:            "Needs and wants",
		TimeLimitMinutes: &limit,
		AttemptsAllowed:  &attempts,
		Questions: []domain.Question{
			{
				ID:            "q1",
				Prompt:        "Which bucket gets 50% of income?",
				Type:          domain.SingleChoice,
				Options:       []string{"Needs", "Wants", "Savings"},
				CorrectAnswer: domain.SingleAnswer("Needs"),
				Points:        10,
				Explanation:   "Half of income.",
			},
			{
				ID:            "q2",
				Prompt:        "Select every need.",
				Type:          domain.MultipleSelect,
				Options:       []string{"Rent", "Food", "Utilities", "Concert tickets"},
				CorrectAnswer: domain.MultiAnswer("Rent", "Food", "Utilities"),
				Points:        20,
			},
		},
	}
}
