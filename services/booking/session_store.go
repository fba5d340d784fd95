package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"parkslot/models"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const (
	sessionKeyPrefix = "bookingSession:"
	submitKeyPrefix  = "bookingSubmit:"
)

// redisSessionStore keeps sessions as JSON with a sliding TTL.
type redisSessionStore struct {
	client     *redis.Client
	sessionTTL time.Duration
	lockTTL    time.Duration
}

func NewRedisSessionStore(client *redis.Client, sessionTTL, lockTTL time.Duration) SessionStore {
	if sessionTTL <= 0 {
		sessionTTL = 30 * time.Minute
	}
	if lockTTL <= 0 {
		lockTTL = 2 * time.Minute
	}
	return &redisSessionStore{client: client, sessionTTL: sessionTTL, lockTTL: lockTTL}
}

func (s *redisSessionStore) Save(ctx context.Context, session models.BookingSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal booking session: %w", err)
	}
	if err := s.client.Set(ctx, sessionKeyPrefix+session.SessionID, data, s.sessionTTL).Err(); err != nil {
		return fmt.Errorf("failed to store booking session: %w", err)
	}
	return nil
}

func (s *redisSessionStore) Load(ctx context.Context, sessionID string) (*models.BookingSession, error) {
	data, err := s.client.Get(ctx, sessionKeyPrefix+sessionID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load booking session: %w", err)
	}
	var session models.BookingSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal booking session: %w", err)
	}
	return &session, nil
}

func (s *redisSessionStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, sessionKeyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("failed to delete booking session: %w", err)
	}
	return nil
}

// releaseSubmitLock deletes the lock key only when it still holds our token.
var releaseSubmitLock = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// AcquireSubmitLock reports false when another submit holds the lock.
func (s *redisSessionStore) AcquireSubmitLock(ctx context.Context, sessionID string) (string, bool, error) {
	token := uuid.NewString()
	ok, err := s.client.SetNX(ctx, submitKeyPrefix+sessionID, token, s.lockTTL).Result()
	if err != nil {
		return "", false, fmt.Errorf("failed to acquire submit lock: %w", err)
	}
	if !ok {
		return "", false, nil
	}
	return token, true, nil
}

// ReleaseSubmitLock leaves a lock taken by a later submit untouched.
func (s *redisSessionStore) ReleaseSubmitLock(ctx context.Context, sessionID, token string) error {
	if err := releaseSubmitLock.Run(ctx, s.client, []string{submitKeyPrefix + sessionID}, token).Err(); err != nil {
		return fmt.Errorf("failed to release submit lock: %w", err)
	}
	return nil
}
