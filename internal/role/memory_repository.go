package role

import (
	"context"
	"sort"
	"sync"
)

type memoryRepository struct {
	mu    sync.RWMutex
	roles map[string]Role
}

// NewMemoryRepository builds an in-memory role store for testing.
func NewMemoryRepository() Repository {
	return &memoryRepository{roles: make(map[string]Role)}
}

func (r *memoryRepository) Create(_ context.Context, role Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.roles {
		if existing.Name == role.Name {
			return ErrNameTaken
		}
	}
	r.roles[role.ID] = role
	return nil
}

func (r *memoryRepository) FindByID(_ context.Context, id string) (Role, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	role, ok := r.roles[id]
	if !ok {
		return Role{}, ErrNotFound
	}
	return role, nil
}

func (r *memoryRepository) FindByName(_ context.Context, name string) (Role, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, role := range r.roles {
		if role.Name == name {
			return role, nil
		}
	}
	return Role{}, ErrNotFound
}

func (r *memoryRepository) List(_ context.Context) ([]Role, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	roles := make([]Role, 0, len(r.roles))
	for _, role := range r.roles {
		roles = append(roles, role)
	}
	sort.Slice(roles, func(i, j int) bool { return roles[i].Name < roles[j].Name })
	return roles, nil
}

func (r *memoryRepository) Update(_ context.Context, role Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.roles[role.ID]; !ok {
		return ErrNotFound
	}
	r.roles[role.ID] = role
	return nil
}

func (r *memoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.roles[id]; !ok {
		return ErrNotFound
	}
	delete(r.roles, id)
	return nil
}
