package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sentinel-defense/backend/internal/model"
	"github.com/sentinel-defense/backend/internal/repository"
)

// contactServiceImpl is the production implementation of ContactService.
type contactServiceImpl struct {
	repo repository.ContactRepository
}

// NewContactService creates a ContactService backed by the given repository.
func NewContactService(repo repository.ContactRepository) ContactService {
	return &contactServiceImpl{repo: repo}
}

// Submit validates the payload outside any lock, then hands the record to
// the repository, which assigns ID and SubmittedAt.
func (s *contactServiceImpl) Submit(ctx context.Context, payload any) (*model.ContactSubmission, error) {
	in, verr := ValidateContact(payload)
	if verr != nil {
		slog.Debug("contact submission rejected", "fields", len(verr.Fields))
		return nil, verr
	}

	sub := in.Submission()
	if err := s.repo.Create(ctx, sub); err != nil {
		return nil, fmt.Errorf("store contact submission: %w", err)
	}

	attrs := []any{"id", sub.ID, "interest", sub.Interest, "confidential", sub.Confidential}
	if !sub.Confidential {
		attrs = append(attrs, "organization", sub.Organization)
	}
	slog.Info("contact submission stored", attrs...)
	return sub, nil
}

// ListAll returns all submissions ordered by SubmittedAt descending.
// An empty store yields an empty slice, never nil.
func (s *contactServiceImpl) ListAll(ctx context.Context) ([]*model.ContactSubmission, error) {
	subs, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list contact submissions: %w", err)
	}
	if subs == nil {
		subs = []*model.ContactSubmission{}
	}
	return subs, nil
}
