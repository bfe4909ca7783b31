package repository

import (
	"context"

	"github.com/sentinel-defense/backend/internal/model"
)

// DB reports whether the backing store is reachable.
type DB interface {
	Ping(ctx context.Context) error
}

// UserRepository persists site operators.
type UserRepository interface {
	Create(ctx context.Context, op *model.Operator) error
	FindByUsername(ctx context.Context, username string) (*model.Operator, error)
}
