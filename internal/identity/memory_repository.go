package identity

import (
	"context"
	"strings"
	"sync"
)

type memoryRepository struct {
	mu    sync.RWMutex
	users map[string]User // keyed by lowercased email
}

// NewMemoryRepository builds an in-memory user store for testing.
func NewMemoryRepository() Repository {
	return &memoryRepository{users: make(map[string]User)}
}

func (r *memoryRepository) Create(_ context.Context, user User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := strings.ToLower(user.Email)
	if _, exists := r.users[key]; exists {
		return ErrEmailTaken
	}
	user.Email = key
	r.users[key] = user
	return nil
}

func (r *memoryRepository) FindByEmail(_ context.Context, email string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[strings.ToLower(email)]
	if !ok {
		return User{}, ErrNotFound
	}
	return user, nil
}

func (r *memoryRepository) FindByID(_ context.Context, id string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if user.ID == id {
			return user, nil
		}
	}
	return User{}, ErrNotFound
}

func (r *memoryRepository) SuperAdminExists(_ context.Context) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if user.IsSuperAdmin {
			return true, nil
		}
	}
	return false, nil
}

func (r *memoryRepository) UpdatePasswordHash(_ context.Context, id string, hash []byte) error {
	return r.mutate(id, func(user *User) {
		user.PasswordHash = hash
	})
}

func (r *memoryRepository) AssignRole(_ context.Context, id, roleID string) error {
	return r.mutate(id, func(user *User) {
		user.RoleID = roleID
	})
}

func (r *memoryRepository) SetActive(_ context.Context, id string, active bool) error {
	return r.mutate(id, func(user *User) {
		user.IsActive = active
	})
}

func (r *memoryRepository) UpdateName(_ context.Context, id, name string) error {
	return r.mutate(id, func(user *User) {
		user.Name = name
	})
}

func (r *memoryRepository) mutate(id string, fn func(*User)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, user := range r.users {
		if user.ID == id {
			fn(&user)
			r.users[key] = user
			return nil
		}
	}
	return ErrNotFound
}
