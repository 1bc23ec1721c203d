package redis

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// releaseScript deletes the lock only if it still carries our token, so a
// holder whose lock expired cannot release someone else's.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// SubmissionLock is an app.SubmissionLock shared across processes through
// SET NX with a TTL.
type SubmissionLock struct {
	client *redis.Client
	ttl    time.Duration

	mu     sync.Mutex
	tokens map[string]string
}

func NewSubmissionLock(client *redis.Client, ttl time.Duration) *SubmissionLock {
	return &SubmissionLock{client: client, ttl: ttl, tokens: make(map[string]string)}
}

func (l *SubmissionLock) Acquire(ctx context.Context, attemptID string) (bool, error) {
	token := uuid.NewString()
	ok, err := l.client.SetNX(ctx, l.key(attemptID), token, l.ttl).Result()
	if err != nil || !ok {
		return false, err
	}
	l.mu.Lock()
	l.tokens[attemptID] = token
	l.mu.Unlock()
	return true, nil
}

func (l *SubmissionLock) Release(ctx context.Context, attemptID string) error {
	l.mu.Lock()
	token, ok := l.tokens[attemptID]
	delete(l.tokens, attemptID)
	l.mu.Unlock()
	if !ok {
		return nil
	}
	return releaseScript.Run(ctx, l.client, []string{l.key(attemptID)}, token).Err()
}

func (l *SubmissionLock) key(attemptID string) string {
	return "quiz:attempt:" + attemptID + ":submit"
}
