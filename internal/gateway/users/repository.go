package users

import (
	"context"
	"errors"
	"strings"
	"sync"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
)

type Repository interface {
	Create(ctx context.Context, u User) error
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	Update(ctx context.Context, u User) error
}

// MemoryRepository keeps users in process memory. Emails are matched
// case-insensitively.
type MemoryRepository struct {
	mu      sync.RWMutex
	byID    map[string]User
	byEmail map[string]string
}

var _ Repository = (*MemoryRepository)(nil)

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID:    make(map[string]User),
		byEmail: make(map[string]string),
	}
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *MemoryRepository) Create(_ context.Context, u User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[emailKey(u.Email)]; ok {
		return ErrAlreadyExists
	}
	if _, ok := r.byID[u.ID]; ok {
		return ErrAlreadyExists
	}

	r.byID[u.ID] = u
	r.byEmail[emailKey(u.Email)] = u.ID
	return nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

func (r *MemoryRepository) GetByEmail(ctx context.Context, email string) (User, error) {
	r.mu.RLock()
	id, ok := r.byEmail[emailKey(email)]
	r.mu.RUnlock()

	if !ok {
		return User{}, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

// Update replaces the user with u.ID. Changing the email re-indexes it.
func (r *MemoryRepository) Update(_ context.Context, u User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	old, ok := r.byID[u.ID]
	if !ok {
		return ErrNotFound
	}

	if emailKey(old.Email) != emailKey(u.Email) {
		if _, taken := r.byEmail[emailKey(u.Email)]; taken {
			return ErrAlreadyExists
		}
		delete(r.byEmail, emailKey(old.Email))
		r.byEmail[emailKey(u.Email)] = u.ID
	}

	r.byID[u.ID] = u
	return nil
}
