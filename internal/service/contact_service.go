package service

import (
	"context"

	"github.com/sentinel-defense/backend/internal/model"
)

// ContactService defines the business logic for contact form submissions.
type ContactService interface {
	// Submit validates payload (a decoded JSON body) and stores it. On
	// validation failure the error is a *ValidationError listing every
	// failing field and nothing is stored.
	Submit(ctx context.Context, payload any) (*model.ContactSubmission, error)

	// ListAll returns every stored submission, most recent first.
	ListAll(ctx context.Context) ([]*model.ContactSubmission, error)
}
