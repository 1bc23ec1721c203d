package app

import (
	"context"
	"time"

	"github.com/sithvalentine/wealth-builder-mvp/internal/domain"
)

// QuizRepository loads quiz content (from cache/backing store).
type QuizRepository interface {
	GetQuiz(ctx context.Context, quizID string) (domain.Quiz, error)
}

// AttemptRepository persists quiz attempts.
type AttemptRepository interface {
	// CreateAttempt returns domain.ErrAttemptConflict when the enrollment
	// already has an attempt with the same number on the quiz.
	CreateAttempt(ctx context.Context, attempt domain.QuizAttempt) error
	GetAttempt(ctx context.Context, attemptID string) (domain.QuizAttempt, error)
	// ListAttempts returns the attempts of one enrollment on one quiz, oldest first.
	ListAttempts(ctx context.Context, quizID, enrollmentID string) ([]domain.QuizAttempt, error)
	// SubmitAttempt stores the graded attempt and its quiz grade together, or
	// neither. It returns domain.ErrAlreadySubmitted if the attempt is closed.
	SubmitAttempt(ctx context.Context, attempt domain.QuizAttempt, grade domain.ScoredItem) error
}

// GradeRepository stores scored items. Items are append-only.
type GradeRepository interface {
	RecordGrade(ctx context.Context, item domain.ScoredItem) error
	ListGrades(ctx context.Context, enrollmentID string) ([]domain.ScoredItem, error)
}

// RosterRepository stores classes and enrollments.
type RosterRepository interface {
	SaveClass(ctx context.Context, class domain.Class) error
	GetClass(ctx context.Context, classID string) (domain.Class, error)
	SaveEnrollment(ctx context.Context, enrollment domain.Enrollment) error
	GetEnrollment(ctx context.Context, enrollmentID string) (domain.Enrollment, error)
	ListEnrollments(ctx context.Context, classID string) ([]domain.Enrollment, error)
}

// BudgetRepository stores budget entries.
type BudgetRepository interface {
	SaveBudget(ctx context.Context, entry domain.BudgetEntry) error
	GetBudget(ctx context.Context, entryID string) (domain.BudgetEntry, error)
	// ListBudgets returns entries newest first.
	ListBudgets(ctx context.Context, enrollmentID string) ([]domain.BudgetEntry, error)
	DeleteBudget(ctx context.Context, entryID string) error
}

// WealthRepository stores net-worth snapshots.
type WealthRepository interface {
	SaveSnapshot(ctx context.Context, snapshot domain.WealthSnapshot) error
	GetSnapshot(ctx context.Context, snapshotID string) (domain.WealthSnapshot, error)
	// ListSnapshots returns snapshots dated within [from, to], oldest first.
	// A zero bound is open.
	ListSnapshots(ctx context.Context, enrollmentID string, from, to time.Time) ([]domain.WealthSnapshot, error)
	DeleteSnapshot(ctx context.Context, snapshotID string) error
}

// SubmissionLock serialises submissions of the same attempt across processes.
type SubmissionLock interface {
	// Acquire reports false when another holder has the lock.
	Acquire(ctx context.Context, attemptID string) (bool, error)
	Release(ctx context.Context, attemptID string) error
}
