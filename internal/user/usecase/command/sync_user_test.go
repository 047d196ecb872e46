package command

import (
	"context"
	"testing"

	"github.com/mahir/lifelessons/internal/user/domain"
)

type mockUserRepo struct {
	createFn        func(ctx context.Context, user *domain.User) error
	findBySubjectFn func(ctx context.Context, subject string) (*domain.User, error)
}

func (m *mockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.createFn(ctx, user)
}
func (m *mockUserRepo) FindBySubject(ctx context.Context, subject string) (*domain.User, error) {
	return m.findBySubjectFn(ctx, subject)
}
func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return nil, domain.ErrNotFound
}
func (m *mockUserRepo) GrantPremium(ctx context.Context, subject string) error { return nil }
func (m *mockUserRepo) IsPremium(ctx context.Context, subject string) (bool, error) {
	return false, nil
}

func TestSyncUser_FirstContactCreates(t *testing.T) {
	repo := &mockUserRepo{
		findBySubjectFn: func(ctx context.Context, subject string) (*domain.User, error) {
			return nil, domain.ErrNotFound
		},
		createFn: func(ctx context.Context, user *domain.User) error {
			if user.Role != domain.RoleUser {
				t.Errorf("role = %q, want %q", user.Role, domain.RoleUser)
			}
			if user.IsPremium {
				t.Error("new users must not start premium")
			}
			return nil
		},
	}

	h := NewSyncUserHandler(repo)
	result, err := h.Handle(context.Background(), SyncUserCommand{
		Subject: "subject-1",
		Email:   "alice@example.com",
		Name:    "Alice",
	})
	if err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}
	if !result.Created {
		t.Error("expected created=true on first contact")
	}
	if result.User.SubjectID != "subject-1" {
		t.Errorf("subject = %q", result.User.SubjectID)
	}
}

func TestSyncUser_ExistingIdentityUntouched(t *testing.T) {
	existing := &domain.User{SubjectID: "subject-1", Email: "alice@example.com", Role: domain.RoleAdmin, IsPremium: true}
	repo := &mockUserRepo{
		findBySubjectFn: func(ctx context.Context, subject string) (*domain.User, error) {
			return existing, nil
		},
		createFn: func(ctx context.Context, user *domain.User) error {
			t.Error("create must not be called for an existing identity")
			return nil
		},
	}

	h := NewSyncUserHandler(repo)
	result, err := h.Handle(context.Background(), SyncUserCommand{
		Subject: "subject-1",
		Email:   "alice@example.com",
		Name:    "Alice Updated",
	})
	if err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}
	if result.Created {
		t.Error("expected created=false for existing identity")
	}
	if result.User != existing {
		t.Error("expected the existing record returned unchanged")
	}
}

func TestSyncUser_CreateRaceResolvesToWinner(t *testing.T) {
	winner := &domain.User{SubjectID: "subject-1", Email: "alice@example.com"}
	lookups := 0
	repo := &mockUserRepo{
		findBySubjectFn: func(ctx context.Context, subject string) (*domain.User, error) {
			lookups++
			if lookups == 1 {
				return nil, domain.ErrNotFound
			}
			return winner, nil
		},
		createFn: func(ctx context.Context, user *domain.User) error {
			return domain.ErrDuplicateUser
		},
	}

	h := NewSyncUserHandler(repo)
	result, err := h.Handle(context.Background(), SyncUserCommand{
		Subject: "subject-1",
		Email:   "alice@example.com",
	})
	if err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}
	if result.Created {
		t.Error("lost create race must report created=false")
	}
	if result.User != winner {
		t.Error("expected the winner's record")
	}
}

func TestSyncUser_Validation(t *testing.T) {
	h := NewSyncUserHandler(&mockUserRepo{})

	if _, err := h.Handle(context.Background(), SyncUserCommand{Email: "a@b.c"}); err == nil {
		t.Error("expected error for missing subject")
	}
	if _, err := h.Handle(context.Background(), SyncUserCommand{Subject: "s"}); err == nil {
		t.Error("expected error for missing email")
	}
}
