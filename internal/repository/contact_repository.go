package repository

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/sentinel-defense/backend/internal/model"
)

// ContactRepository defines the persistence interface for contact submissions.
type ContactRepository interface {
	DB
	// Create assigns ID and SubmittedAt and stores the submission.
	Create(ctx context.Context, sub *model.ContactSubmission) error
	// List returns every submission, most recent first.
	List(ctx context.Context) ([]*model.ContactSubmission, error)
}

// MemContactRepository is an in-process ContactRepository. Records live
// until the process exits.
type MemContactRepository struct {
	mu          sync.Mutex
	nextID      int64
	submissions map[int64]*model.ContactSubmission
	now         func() time.Time
}

// NewMemContactRepository returns an empty store whose first id is 1.
func NewMemContactRepository() *MemContactRepository {
	return &MemContactRepository{
		nextID:      1,
		submissions: make(map[int64]*model.ContactSubmission),
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Ensure MemContactRepository implements ContactRepository at compile time.
var _ ContactRepository = (*MemContactRepository)(nil)

// Ping always succeeds; the store has no connection to lose.
func (r *MemContactRepository) Ping(ctx context.Context) error {
	return ctx.Err()
}

// Create stores a copy of sub and writes the assigned ID and SubmittedAt
// back into sub. The id counter and the map are updated together under mu,
// so no two calls share an id and a listed record always has its timestamp.
func (r *MemContactRepository) Create(ctx context.Context, sub *model.ContactSubmission) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	sub.ID = r.nextID
	sub.SubmittedAt = r.now()
	r.nextID++
	r.submissions[sub.ID] = sub.Clone()
	return nil
}

// List returns a snapshot ordered by SubmittedAt descending. Equal
// timestamps fall back to ID descending, so later inserts come first.
func (r *MemContactRepository) List(ctx context.Context) ([]*model.ContactSubmission, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	out := make([]*model.ContactSubmission, 0, len(r.submissions))
	for _, s := range r.submissions {
		out = append(out, s.Clone())
	}
	r.mu.Unlock()

	slices.SortFunc(out, func(a, b *model.ContactSubmission) int {
		if c := b.SubmittedAt.Compare(a.SubmittedAt); c != 0 {
			return c
		}
		switch {
		case a.ID > b.ID:
			return -1
		case a.ID < b.ID:
			return 1
		}
		return 0
	})
	return out, nil
}

// Count returns how many submissions have been stored.
func (r *MemContactRepository) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.submissions)
}
