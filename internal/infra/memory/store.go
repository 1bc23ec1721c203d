package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/sithvalentine/wealth-builder-mvp/internal/domain"
)

// Store is an in-memory implementation of the app repositories. It is used
// by tests and by the "memory" store driver.
type Store struct {
	mu          sync.RWMutex
	classes     map[string]domain.Class
	enrollments map[string]domain.Enrollment
	grades      map[string][]domain.ScoredItem
	attempts    map[string]domain.QuizAttempt
	budgets     map[string]domain.BudgetEntry
	snapshots   map[string]domain.WealthSnapshot
}

func NewStore() *Store {
	return &Store{
		classes:     make(map[string]domain.Class),
		enrollments: make(map[string]domain.Enrollment),
		grades:      make(map[string][]domain.ScoredItem),
		attempts:    make(map[string]domain.QuizAttempt),
		budgets:     make(map[string]domain.BudgetEntry),
		snapshots:   make(map[string]domain.WealthSnapshot),
	}
}

func (s *Store) SaveClass(_ context.Context, class domain.Class) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.classes[class.ID] = class
	return nil
}

func (s *Store) GetClass(_ context.Context, classID string) (domain.Class, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	class, ok := s.classes[classID]
	if !ok {
		return domain.Class{}, domain.ErrClassNotFound
	}
	return class, nil
}

func (s *Store) SaveEnrollment(_ context.Context, e domain.Enrollment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.classes[e.ClassID]; !ok {
		return domain.ErrClassNotFound
	}
	s.enrollments[e.ID] = e
	return nil
}

func (s *Store) GetEnrollment(_ context.Context, enrollmentID string) (domain.Enrollment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.enrollments[enrollmentID]
	if !ok {
		return domain.Enrollment{}, domain.ErrEnrollmentNotFound
	}
	return e, nil
}

func (s *Store) ListEnrollments(_ context.Context, classID string) ([]domain.Enrollment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Enrollment
	for _, e := range s.enrollments {
		if e.ClassID == classID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StudentID < out[j].StudentID })
	return out, nil
}

func (s *Store) RecordGrade(_ context.Context, item domain.ScoredItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.grades[item.EnrollmentID] = append(s.grades[item.EnrollmentID], item)
	return nil
}

func (s *Store) ListGrades(_ context.Context, enrollmentID string) ([]domain.ScoredItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.ScoredItem(nil), s.grades[enrollmentID]...), nil
}

func (s *Store) CreateAttempt(_ context.Context, attempt domain.QuizAttempt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.attempts {
		if a.QuizID == attempt.QuizID && a.EnrollmentID == attempt.EnrollmentID && a.AttemptNumber == attempt.AttemptNumber {
			return domain.ErrAttemptConflict
		}
	}
	s.attempts[attempt.ID] = cloneAttempt(attempt)
	return nil
}

func (s *Store) GetAttempt(_ context.Context, attemptID string) (domain.QuizAttempt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.attempts[attemptID]
	if !ok {
		return domain.QuizAttempt{}, domain.ErrAttemptNotFound
	}
	return cloneAttempt(a), nil
}

func (s *Store) ListAttempts(_ context.Context, quizID, enrollmentID string) ([]domain.QuizAttempt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.QuizAttempt
	for _, a := range s.attempts {
		if a.QuizID == quizID && a.EnrollmentID == enrollmentID {
			out = append(out, cloneAttempt(a))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AttemptNumber < out[j].AttemptNumber })
	return out, nil
}

func (s *Store) SubmitAttempt(_ context.Context, attempt domain.QuizAttempt, grade domain.ScoredItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.attempts[attempt.ID]
	if !ok {
		return domain.ErrAttemptNotFound
	}
	if stored.SubmittedAt != nil {
		return domain.ErrAlreadySubmitted
	}
	s.attempts[attempt.ID] = cloneAttempt(attempt)
	s.grades[grade.EnrollmentID] = append(s.grades[grade.EnrollmentID], grade)
	return nil
}

func (s *Store) SaveBudget(_ context.Context, entry domain.BudgetEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.budgets[entry.ID] = entry
	return nil
}

func (s *Store) GetBudget(_ context.Context, entryID string) (domain.BudgetEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.budgets[entryID]
	if !ok {
		return domain.BudgetEntry{}, domain.ErrBudgetNotFound
	}
	return e, nil
}

func (s *Store) ListBudgets(_ context.Context, enrollmentID string) ([]domain.BudgetEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.BudgetEntry
	for _, e := range s.budgets {
		if e.EnrollmentID == enrollmentID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *Store) DeleteBudget(_ context.Context, entryID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.budgets[entryID]; !ok {
		return domain.ErrBudgetNotFound
	}
	delete(s.budgets, entryID)
	return nil
}

func (s *Store) SaveSnapshot(_ context.Context, snap domain.WealthSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots[snap.ID] = snap
	return nil
}

func (s *Store) GetSnapshot(_ context.Context, snapshotID string) (domain.WealthSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.snapshots[snapshotID]
	if !ok {
		return domain.WealthSnapshot{}, domain.ErrSnapshotNotFound
	}
	return snap, nil
}

func (s *Store) ListSnapshots(_ context.Context, enrollmentID string, from, to time.Time) ([]domain.WealthSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.WealthSnapshot
	for _, snap := range s.snapshots {
		if snap.EnrollmentID != enrollmentID {
			continue
		}
		if !from.IsZero() && snap.RecordDate.Before(from) {
			continue
		}
		if !to.IsZero() && snap.RecordDate.After(to) {
			continue
		}
		out = append(out, snap)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].RecordDate.Before(out[j].RecordDate) })
	return out, nil
}

func (s *Store) DeleteSnapshot(_ context.Context, snapshotID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.snapshots[snapshotID]; !ok {
		return domain.ErrSnapshotNotFound
	}
	delete(s.snapshots, snapshotID)
	return nil
}

func cloneAttempt(a domain.QuizAttempt) domain.QuizAttempt {
	if a.Answers != nil {
		answers := make(map[string]domain.Answer, len(a.Answers))
		for k, v := range a.Answers {
			answers[k] = v
		}
		a.Answers = answers
	}
	if a.Results != nil {
		results := make(map[string]domain.QuestionResult, len(a.Results))
		for k, v := range a.Results {
			results[k] = v
		}
		a.Results = results
	}
	return a
}
