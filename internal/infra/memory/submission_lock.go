package memory

import (
	"context"
	"sync"
)

// SubmissionLock is a process-local app.SubmissionLock.
type SubmissionLock struct {
	mu   sync.Mutex
	held map[string]struct{}
}

func NewSubmissionLock() *SubmissionLock {
	return &SubmissionLock{held: make(map[string]struct{})}
}

func (l *SubmissionLock) Acquire(_ context.Context, attemptID string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.held[attemptID]; ok {
		return false, nil
	}
	l.held[attemptID] = struct{}{}
	return true, nil
}

func (l *SubmissionLock) Release(_ context.Context, attemptID string) error {
	l.mu.Lock()
	delete(l.held, attemptID)
	l.mu.Unlock()
	return nil
}
