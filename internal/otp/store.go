package otp

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNotFound is returned when no challenge matches an (email, code) pair.
var ErrNotFound = errors.New("challenge not found")

// Store persists challenges. Saving never touches previously issued
// challenges for the same email.
type Store interface {
	Save(ctx context.Context, challenge Challenge) error
	Find(ctx context.Context, email, code string) (Challenge, error)
	Update(ctx context.Context, challenge Challenge) error
}

const challengeKeyPrefix = "otp:v1:"

// RedisStore keeps challenges in Redis, one key per (email, code) pair.
// Keys expire at twice the validity window: a recently expired code can
// still be reported as expired rather than unknown, and Redis handles the
// purge the data model otherwise never performs.
type RedisStore struct {
	client    *redis.Client
	retention time.Duration
}

// NewRedisStore builds a Redis-backed challenge store. window is the
// challenge validity period; keys are retained for twice that.
func NewRedisStore(client *redis.Client, window time.Duration) *RedisStore {
	return &RedisStore{client: client, retention: 2 * window}
}

func challengeKey(email, code string) string {
	return challengeKeyPrefix + strings.ToLower(email) + ":" + code
}

// Save writes a new challenge under its own key.
func (s *RedisStore) Save(ctx context.Context, challenge Challenge) error {
	payload, err := json.Marshal(challenge)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, challengeKey(challenge.Email, challenge.Code), payload, s.retention).Err()
}

// Find fetches the challenge for the (email, code) pair.
func (s *RedisStore) Find(ctx context.Context, email, code string) (Challenge, error) {
	raw, err := s.client.Get(ctx, challengeKey(email, code)).Result()
	if err == redis.Nil {
		return Challenge{}, ErrNotFound
	}
	if err != nil {
		return Challenge{}, err
	}
	var challenge Challenge
	if err := json.Unmarshal([]byte(raw), &challenge); err != nil {
		return Challenge{}, err
	}
	return challenge, nil
}

// Update rewrites the challenge in place, restarting the retention clock so
// a verified challenge keeps its own completion window.
func (s *RedisStore) Update(ctx context.Context, challenge Challenge) error {
	payload, err := json.Marshal(challenge)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, challengeKey(challenge.Email, challenge.Code), payload, s.retention).Err()
}
