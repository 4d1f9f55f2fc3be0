package sessions

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const guestSessionKeyPrefix = "guest_session:"

// GuestSessionStore tracks liveness of anonymous visitor sessions in a
// fast-lookup store. Touch refreshes last-seen, Cleanup removes
// sessions idle past the threshold.
type GuestSessionStore interface {
	Touch(ctx context.Context, sessionID string) error
	Delete(ctx context.Context, sessionID string) error
	Cleanup(ctx context.Context) (int, error)
}

type RedisGuestStore struct {
	client *redis.Client
	maxAge time.Duration
}

func NewRedisGuestStore(client *redis.Client, maxAge time.Duration) *RedisGuestStore {
	return &RedisGuestStore{
		client: client,
		maxAge: maxAge,
	}
}

func guestSessionKey(sessionID string) string {
	return guestSessionKeyPrefix + sessionID
}

// Touch writes the current time as the session's last-seen value. The
// key TTL doubles as a backstop: even if Cleanup never runs, redis
// evicts the record on its own.
func (s *RedisGuestStore) Touch(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	now := strconv.FormatInt(time.Now().Unix(), 10)
	if err := s.client.Set(ctx, guestSessionKey(sessionID), now, s.maxAge).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (s *RedisGuestStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, guestSessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

// Cleanup scans all guest session records and removes those whose
// last-seen is older than the configured max age. Returns the number of
// sessions removed.
func (s *RedisGuestStore) Cleanup(ctx context.Context) (int, error) {
	cutoff := time.Now().Add(-s.maxAge).Unix()
	removed := 0

	iter := s.client.Scan(ctx, 0, guestSessionKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()

		raw, err := s.client.Get(ctx, key).Result()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return removed, fmt.Errorf("redis get failed for %s: %w", key, err)
		}

		lastSeen, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || lastSeen < cutoff {
			if delErr := s.client.Del(ctx, key).Err(); delErr != nil {
				return removed, fmt.Errorf("redis delete failed for %s: %w", key, delErr)
			}
			removed++
		}
	}
	if err := iter.Err(); err != nil {
		return removed, fmt.Errorf("redis scan failed: %w", err)
	}

	return removed, nil
}
