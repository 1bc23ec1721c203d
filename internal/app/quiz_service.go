package app

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/sithvalentine/wealth-builder-mvp/internal/domain"
	"github.com/sithvalentine/wealth-builder-mvp/internal/logger"
	"github.com/sithvalentine/wealth-builder-mvp/internal/quiz"
)

const (
	// recentAttemptLimit caps the attempts listed in a quiz overview.
	recentAttemptLimit = 5
	// startRetries bounds how often Start renumbers after losing a race.
	startRetries = 5
)

// QuizService contains the quiz taking use cases.
type QuizService struct {
	quizzes  QuizRepository
	attempts AttemptRepository
	roster   RosterRepository
	lock     SubmissionLock
	grader   *quiz.Grader
	log      *logger.Logger
}

func NewQuizService(quizzes QuizRepository, attempts AttemptRepository, roster RosterRepository, lock SubmissionLock, log *logger.Logger) *QuizService {
	if log == nil {
		log = logger.Nop()
	}
	return &QuizService{
		quizzes:  quizzes,
		attempts: attempts,
		roster:   roster,
		lock:     lock,
		grader:   quiz.NewGrader(),
		log:      log.With("service", "quiz"),
	}
}

// SetClock is test-only for deterministic timestamps.
func (s *QuizService) SetClock(now func() time.Time) {
	s.grader = quiz.NewGraderWithClock(now)
}

// QuizOverview is what a student sees before starting an attempt.
type QuizOverview struct {
	Quiz              domain.Quiz          `json:"quiz"`
	AttemptsUsed      int                  `json:"attemptsUsed"`
	AttemptsRemaining *int                 `json:"attemptsRemaining,omitempty"`
	BestScore         *float64             `json:"bestScore,omitempty"`
	RecentAttempts    []domain.QuizAttempt `json:"recentAttempts"`
}

// Overview returns the quiz without answer keys plus the student's attempt history.
func (s *QuizService) Overview(ctx context.Context, quizID, enrollmentID string) (QuizOverview, error) {
	q, err := s.quizzes.GetQuiz(ctx, quizID)
	if err != nil {
		return QuizOverview{}, err
	}
	history, err := s.attempts.ListAttempts(ctx, quizID, enrollmentID)
	if err != nil {
		return QuizOverview{}, fmt.Errorf("list attempts: %w", err)
	}

	out := QuizOverview{Quiz: q.ForStudent(), AttemptsUsed: len(history)}
	if q.AttemptsAllowed != nil {
		remaining := *q.AttemptsAllowed - len(history)
		if remaining < 0 {
			remaining = 0
		}
		out.AttemptsRemaining = &remaining
	}
	for _, a := range history {
		if a.SubmittedAt == nil {
			continue
		}
		if out.BestScore == nil || a.Score > *out.BestScore {
			score := a.Score
			out.BestScore = &score
		}
	}

	recent := append([]domain.QuizAttempt(nil), history...)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].AttemptNumber > recent[j].AttemptNumber
	})
	if len(recent) > recentAttemptLimit {
		recent = recent[:recentAttemptLimit]
	}
	for i := range recent {
		// answers and results are only exposed through Review
		recent[i].Answers = nil
		recent[i].Results = nil
	}
	out.RecentAttempts = recent
	return out, nil
}

// Start opens a new attempt if the student has attempts left. Concurrent
// starts race on the attempt number; the loser re-reads the history so the
// attempt limit still holds.
func (s *QuizService) Start(ctx context.Context, quizID, enrollmentID string) (domain.QuizAttempt, error) {
	if _, err := s.roster.GetEnrollment(ctx, enrollmentID); err != nil {
		return domain.QuizAttempt{}, err
	}
	q, err := s.quizzes.GetQuiz(ctx, quizID)
	if err != nil {
		return domain.QuizAttempt{}, err
	}

	for try := 0; ; try++ {
		history, err := s.attempts.ListAttempts(ctx, quizID, enrollmentID)
		if err != nil {
			return domain.QuizAttempt{}, fmt.Errorf("list attempts: %w", err)
		}
		attempt, err := s.grader.Start(q, enrollmentID, len(history))
		if err != nil {
			return domain.QuizAttempt{}, err
		}
		attempt.ID = uuid.NewString()
		err = s.attempts.CreateAttempt(ctx, attempt)
		if errors.Is(err, domain.ErrAttemptConflict) && try < startRetries {
			s.log.Debug("attempt number taken, retrying", "quiz", quizID, "enrollment", enrollmentID, "number", attempt.AttemptNumber)
			continue
		}
		if err != nil {
			return domain.QuizAttempt{}, fmt.Errorf("create attempt: %w", err)
		}
		s.log.Info("attempt started", "attempt", attempt.ID, "quiz", quizID, "enrollment", enrollmentID, "number", attempt.AttemptNumber)
		return attempt, nil
	}
}

// Submit grades an open attempt of the given enrollment and stores the result
// together with the quiz grade.
func (s *QuizService) Submit(ctx context.Context, attemptID, enrollmentID string, answers map[string]domain.Answer) (quiz.Submission, error) {
	ok, err := s.lock.Acquire(ctx, attemptID)
	if err != nil {
		return quiz.Submission{}, fmt.Errorf("acquire submission lock: %w", err)
	}
	if !ok {
		return quiz.Submission{}, domain.ErrSubmissionInProgress
	}
	defer func() {
		if err := s.lock.Release(context.WithoutCancel(ctx), attemptID); err != nil {
			s.log.Warn("release submission lock", "attempt", attemptID, "error", err)
		}
	}()

	attempt, err := s.attempts.GetAttempt(ctx, attemptID)
	if err != nil {
		return quiz.Submission{}, err
	}
	if attempt.EnrollmentID != enrollmentID {
		return quiz.Submission{}, domain.ErrAttemptNotFound
	}
	q, err := s.quizzes.GetQuiz(ctx, attempt.QuizID)
	if err != nil {
		return quiz.Submission{}, err
	}

	sub, err := s.grader.Submit(q, attempt, answers)
	if err != nil {
		return quiz.Submission{}, err
	}
	sub.Item.ID = uuid.NewString()
	if err := s.attempts.SubmitAttempt(ctx, sub.Attempt, sub.Item); err != nil {
		if !errors.Is(err, domain.ErrAlreadySubmitted) {
			s.log.Error("store submission", "attempt", attemptID, "error", err)
		}
		return quiz.Submission{}, fmt.Errorf("store submission: %w", err)
	}
	s.log.Info("attempt submitted", "attempt", attemptID, "quiz", q.ID, "score", sub.Attempt.Score)
	return sub, nil
}

// Review returns a submitted attempt of the given enrollment.
func (s *QuizService) Review(ctx context.Context, attemptID, enrollmentID string) (domain.QuizAttempt, error) {
	attempt, err := s.attempts.GetAttempt(ctx, attemptID)
	if err != nil {
		return domain.QuizAttempt{}, err
	}
	if attempt.EnrollmentID != enrollmentID {
		return domain.QuizAttempt{}, domain.ErrAttemptNotFound
	}
	if _, err := quiz.Review(attempt); err != nil {
		return domain.QuizAttempt{}, err
	}
	return attempt, nil
}
