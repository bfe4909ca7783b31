package repository

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/sentinel-defense/backend/internal/model"
)

// MemUserRepository keeps operators in memory, indexed by username.
type MemUserRepository struct {
	mu         sync.RWMutex
	nextID     int64
	byID       map[int64]*model.Operator
	byUsername map[string]int64
}

// NewMemUserRepository returns an empty operator store.
func NewMemUserRepository() *MemUserRepository {
	return &MemUserRepository{
		nextID:     1,
		byID:       make(map[int64]*model.Operator),
		byUsername: make(map[string]int64),
	}
}

var _ UserRepository = (*MemUserRepository)(nil)

// Create stores op and populates op.ID and op.CreatedAt.
// Usernames are compared case-insensitively; a duplicate yields ErrConflict.
func (r *MemUserRepository) Create(ctx context.Context, op *model.Operator) error {
	key := strings.ToLower(strings.TrimSpace(op.Username))
	if key == "" {
		return ErrConflict
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byUsername[key]; exists {
		return ErrConflict
	}
	op.ID = r.nextID
	op.CreatedAt = time.Now().UTC()
	r.nextID++

	cp := *op
	r.byID[op.ID] = &cp
	r.byUsername[key] = op.ID
	return nil
}

// FindByUsername returns the operator with the given username or ErrNotFound.
func (r *MemUserRepository) FindByUsername(ctx context.Context, username string) (*model.Operator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byUsername[strings.ToLower(strings.TrimSpace(username))]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *r.byID[id]
	return &cp, nil
}
