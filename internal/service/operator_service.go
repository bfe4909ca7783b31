package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sentinel-defense/backend/internal/model"
	"github.com/sentinel-defense/backend/internal/repository"
)

// OperatorService manages the staff accounts allowed to read submissions.
type OperatorService interface {
	GetOrCreate(ctx context.Context, username string) (*model.Operator, error)
	// Seed creates every listed operator that does not exist yet.
	Seed(ctx context.Context, usernames []string) error
	// IsOperator reports whether username names a registered operator.
	IsOperator(ctx context.Context, username string) (bool, error)
}

// OperatorServiceImpl is the OperatorService implementation.
type OperatorServiceImpl struct {
	userRepo repository.UserRepository
}

// NewOperatorService creates an OperatorService backed by userRepo.
func NewOperatorService(userRepo repository.UserRepository) OperatorService {
	return &OperatorServiceImpl{userRepo: userRepo}
}

// GetOrCreate returns the operator named username, creating it if needed.
func (s *OperatorServiceImpl) GetOrCreate(ctx context.Context, username string) (*model.Operator, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, errors.New("operator username is required")
	}

	op, err := s.userRepo.FindByUsername(ctx, username)
	if err == nil {
		return op, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("find operator: %w", err)
	}

	op = &model.Operator{Username: username}
	if err := s.userRepo.Create(ctx, op); err != nil {
		slog.Error("create operator failed", "username", username, "error", err)
		return nil, fmt.Errorf("create operator: %w", err)
	}
	slog.Info("operator created", "operator_id", op.ID, "username", op.Username)
	return op, nil
}

func (s *OperatorServiceImpl) Seed(ctx context.Context, usernames []string) error {
	for _, name := range usernames {
		if strings.TrimSpace(name) == "" {
			continue
		}
		if _, err := s.GetOrCreate(ctx, name); err != nil {
			return err
		}
	}
	return nil
}

func (s *OperatorServiceImpl) IsOperator(ctx context.Context, username string) (bool, error) {
	_, err := s.userRepo.FindByUsername(ctx, username)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, repository.ErrNotFound):
		return false, nil
	default:
		return false, fmt.Errorf("find operator: %w", err)
	}
}
