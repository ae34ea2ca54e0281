package otp

import (
	"context"
	"strings"
	"sync"
)

type memoryStore struct {
	mu         sync.RWMutex
	challenges map[string]Challenge
}

// NewMemoryStore builds an in-memory challenge store for testing.
func NewMemoryStore() Store {
	return &memoryStore{challenges: make(map[string]Challenge)}
}

func memoryKey(email, code string) string {
	return strings.ToLower(email) + "\x00" + code
}

func (s *memoryStore) Save(_ context.Context, challenge Challenge) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.challenges[memoryKey(challenge.Email, challenge.Code)] = challenge
	return nil
}

func (s *memoryStore) Find(_ context.Context, email, code string) (Challenge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	challenge, ok := s.challenges[memoryKey(email, code)]
	if !ok {
		return Challenge{}, ErrNotFound
	}
	return challenge, nil
}

func (s *memoryStore) Update(_ context.Context, challenge Challenge) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := memoryKey(challenge.Email, challenge.Code)
	if _, ok := s.challenges[key]; !ok {
		return ErrNotFound
	}
	s.challenges[key] = challenge
	return nil
}
