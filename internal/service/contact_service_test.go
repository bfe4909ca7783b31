package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/sentinel-defense/backend/internal/model"
	"github.com/sentinel-defense/backend/internal/repository"
)

// ---------------------------------------------------------------------------
// mockContactRepository is an in-memory stub for testing.
// ---------------------------------------------------------------------------

type mockContactRepository struct {
	createFunc func(ctx context.Context, sub *model.ContactSubmission) error
	listFunc   func(ctx context.Context) ([]*model.ContactSubmission, error)
}

func (m *mockContactRepository) Ping(ctx context.Context) error { return nil }

func (m *mockContactRepository) Create(ctx context.Context, sub *model.ContactSubmission) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, sub)
	}
	return nil
}

func (m *mockContactRepository) List(ctx context.Context) ([]*model.ContactSubmission, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return nil, nil
}

func validPayload() map[string]any {
	return map[string]any{
		"name":         "Jo",
		"organization": "Ab",
		"email":        "jo@x.com",
		"interest":     "server",
		"message":      "need this soon please",
	}
}

// ---------------------------------------------------------------------------
// Submit tests
// ---------------------------------------------------------------------------

func TestContactService_Submit_DefaultsAndFirstID(t *testing.T) {
	svc := NewContactService(repository.NewMemContactRepository())

	sub, err := svc.Submit(context.Background(), validPayload())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sub.ID != 1 {
		t.Errorf("expected id=1, got %d", sub.ID)
	}
	if sub.Phone != nil {
		t.Errorf("expected phone=nil, got %q", *sub.Phone)
	}
	if sub.Confidential {
		t.Error("expected confidential=false")
	}
	if sub.SubmittedAt.IsZero() {
		t.Error("expected SubmittedAt to be set")
	}
	if sub.Name != "Jo" || sub.Organization != "Ab" || sub.Email != "jo@x.com" ||
		sub.Interest != "server" || sub.Message != "need this soon please" {
		t.Errorf("fields not copied verbatim: %+v", sub)
	}
}

func TestContactService_Submit_CopiesOptionalFields(t *testing.T) {
	var saved *model.ContactSubmission
	mock := &mockContactRepository{
		createFunc: func(ctx context.Context, sub *model.ContactSubmission) error {
			sub.ID = 9
			saved = sub
			return nil
		},
	}
	svc := NewContactService(mock)

	p := validPayload()
	p["phone"] = "+1 555 0100"
	p["confidential"] = true
	if _, err := svc.Submit(context.Background(), p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved == nil {
		t.Fatal("expected Create to be called")
	}
	if saved.Phone == nil || *saved.Phone != "+1 555 0100" {
		t.Errorf("expected phone to be copied, got %v", saved.Phone)
	}
	if !saved.Confidential {
		t.Error("expected confidential=true")
	}
}

func TestContactService_Submit_EmptyPhoneBecomesNil(t *testing.T) {
	svc := NewContactService(repository.NewMemContactRepository())

	p := validPayload()
	p["phone"] = ""
	p["confidential"] = nil
	sub, err := svc.Submit(context.Background(), p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sub.Phone != nil {
		t.Errorf("expected empty phone to normalize to nil, got %q", *sub.Phone)
	}
	if sub.Confidential {
		t.Error("expected null confidential to default to false")
	}
}

func TestContactService_Submit_ValidationErrorNotStored(t *testing.T) {
	called := false
	mock := &mockContactRepository{
		createFunc: func(ctx context.Context, sub *model.ContactSubmission) error {
			called = true
			return nil
		},
	}
	svc := NewContactService(mock)

	_, err := svc.Submit(context.Background(), map[string]any{
		"name":         "J",
		"organization": "Ab",
		"email":        "bad",
		"interest":     "",
		"message":      "hi",
	})

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	for _, field := range []string{"name", "email", "interest", "message"} {
		if !verr.Has(field) {
			t.Errorf("expected %s in field errors: %v", field, verr.Fields)
		}
	}
	if verr.Has("organization") {
		t.Error("organization is valid and should not be reported")
	}
	if called {
		t.Error("Create must not be called when validation fails")
	}
}

func TestContactService_Submit_RepositoryError(t *testing.T) {
	mock := &mockContactRepository{
		createFunc: func(ctx context.Context, sub *model.ContactSubmission) error {
			return errors.New("out of space")
		},
	}
	svc := NewContactService(mock)

	_, err := svc.Submit(context.Background(), validPayload())
	if err == nil {
		t.Fatal("expected error from repository, got nil")
	}
	var verr *ValidationError
	if errors.As(err, &verr) {
		t.Error("repository failure must not be reported as a validation error")
	}
}

func TestContactService_Submit_ConcurrentDistinctIDs(t *testing.T) {
	repo := repository.NewMemContactRepository()
	svc := NewContactService(repo)
	ctx := context.Background()

	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		ids []int64
	)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sub, err := svc.Submit(ctx, validPayload())
			if err != nil {
				t.Errorf("Submit: %v", err)
				return
			}
			mu.Lock()
			ids = append(ids, sub.ID)
			mu.Unlock()
		}()
	}
	wg.Wait()

	if len(ids) != 2 {
		t.Fatalf("expected 2 ids, got %d", len(ids))
	}
	diff := ids[0] - ids[1]
	if diff != 1 && diff != -1 {
		t.Errorf("expected ids to differ by 1, got %v", ids)
	}

	list, err := svc.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(list) != 2 {
		t.Errorf("expected both submissions listed, got %d", len(list))
	}
}

// ---------------------------------------------------------------------------
// ListAll tests
// ---------------------------------------------------------------------------

func TestContactService_ListAll_EmptyBeforeSubmit(t *testing.T) {
	svc := NewContactService(repository.NewMemContactRepository())

	list, err := svc.ListAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if list == nil || len(list) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", list)
	}
}

func TestContactService_ListAll_NilFromRepository(t *testing.T) {
	svc := NewContactService(&mockContactRepository{})

	list, err := svc.ListAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if list == nil {
		t.Error("expected nil repository result to become an empty slice")
	}
}

func TestContactService_ListAll_ReadAfterWrite(t *testing.T) {
	svc := NewContactService(repository.NewMemContactRepository())
	ctx := context.Background()

	sub, err := svc.Submit(ctx, validPayload())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	list, err := svc.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	found := false
	for _, s := range list {
		if s.ID == sub.ID {
			found = true
		}
	}
	if !found {
		t.Errorf("expected id=%d in listing", sub.ID)
	}
}

func TestContactService_ListAll_OrderIsNonIncreasing(t *testing.T) {
	svc := NewContactService(repository.NewMemContactRepository())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := svc.Submit(ctx, validPayload()); err != nil {
			t.Fatalf("Submit: %v", err)
		}
		time.Sleep(2 * time.Millisecond)
	}

	list, _ := svc.ListAll(ctx)
	for i := 1; i < len(list); i++ {
		if list[i].SubmittedAt.After(list[i-1].SubmittedAt) {
			t.Errorf("position %d newer than position %d", i, i-1)
		}
	}
	if list[0].ID != 3 || list[2].ID != 1 {
		t.Errorf("expected newest (id=3) first and oldest (id=1) last, got %d..%d", list[0].ID, list[2].ID)
	}
}

func TestContactService_ListAll_RepositoryError(t *testing.T) {
	mock := &mockContactRepository{
		listFunc: func(ctx context.Context) ([]*model.ContactSubmission, error) {
			return nil, errors.New("read failed")
		},
	}
	svc := NewContactService(mock)

	if _, err := svc.ListAll(context.Background()); err == nil {
		t.Error("expected error from repository, got nil")
	}
}
