package query

import (
	"context"
	"errors"
	"testing"

	"github.com/mahir/lifelessons/internal/lesson/domain"
	userdomain "github.com/mahir/lifelessons/internal/user/domain"
)

type mockLessonRepo struct {
	findByIDFn func(ctx context.Context, id uint) (*domain.Lesson, error)
}

func (m *mockLessonRepo) Create(ctx context.Context, lesson *domain.Lesson) error { return nil }
func (m *mockLessonRepo) FindByID(ctx context.Context, id uint) (*domain.Lesson, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockLessonRepo) FindAll(ctx context.Context, limit, offset int) ([]domain.Lesson, error) {
	return nil, nil
}
func (m *mockLessonRepo) FindByIDs(ctx context.Context, ids []uint) ([]domain.Lesson, error) {
	return nil, nil
}
func (m *mockLessonRepo) Delete(ctx context.Context, id uint) error { return nil }
func (m *mockLessonRepo) ToggleLike(ctx context.Context, lessonID uint, subject string) (bool, error) {
	return false, nil
}
func (m *mockLessonRepo) ToggleFavorite(ctx context.Context, lessonID uint, subject string) (bool, error) {
	return false, nil
}
func (m *mockLessonRepo) IsFavorited(ctx context.Context, lessonID uint, subject string) (bool, error) {
	return false, nil
}
func (m *mockLessonRepo) FindFavoritesBySubject(ctx context.Context, subject string, limit, offset int) ([]domain.Lesson, error) {
	return nil, nil
}
func (m *mockLessonRepo) FindCounterDrift(ctx context.Context) ([]domain.CounterDrift, error) {
	return nil, nil
}

type mockUserRepo struct {
	isPremiumFn func(ctx context.Context, subject string) (bool, error)
}

func (m *mockUserRepo) Create(ctx context.Context, user *userdomain.User) error { return nil }
func (m *mockUserRepo) FindBySubject(ctx context.Context, subject string) (*userdomain.User, error) {
	return nil, userdomain.ErrNotFound
}
func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*userdomain.User, error) {
	return nil, userdomain.ErrNotFound
}
func (m *mockUserRepo) GrantPremium(ctx context.Context, subject string) error { return nil }
func (m *mockUserRepo) IsPremium(ctx context.Context, subject string) (bool, error) {
	return m.isPremiumFn(ctx, subject)
}

func premiumLesson() *domain.Lesson {
	return &domain.Lesson{ID: 1, Title: "advanced", IsPremium: true, CreatorSubject: "creator"}
}

func TestGetLesson_PremiumGate(t *testing.T) {
	repo := &mockLessonRepo{
		findByIDFn: func(ctx context.Context, id uint) (*domain.Lesson, error) {
			return premiumLesson(), nil
		},
	}

	tests := []struct {
		name      string
		caller    string
		role      string
		isPremium bool
		wantErr   error
	}{
		{name: "premium subscriber passes", caller: "sub-1", isPremium: true},
		{name: "free user rejected", caller: "free-1", isPremium: false, wantErr: ErrPremiumRequired},
		{name: "creator always passes", caller: "creator", isPremium: false},
		{name: "admin always passes", caller: "admin-1", role: userdomain.RoleAdmin, isPremium: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := &mockUserRepo{
				isPremiumFn: func(ctx context.Context, subject string) (bool, error) {
					return tt.isPremium, nil
				},
			}
			h := NewGetLessonHandler(repo, users)
			_, err := h.Handle(context.Background(), GetLessonQuery{LessonID: 1, Caller: tt.caller, Role: tt.role})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestGetLesson_FreeLessonNeedsNoEntitlement(t *testing.T) {
	repo := &mockLessonRepo{
		findByIDFn: func(ctx context.Context, id uint) (*domain.Lesson, error) {
			return &domain.Lesson{ID: 2, Title: "basics"}, nil
		},
	}
	users := &mockUserRepo{
		isPremiumFn: func(ctx context.Context, subject string) (bool, error) {
			t.Error("entitlement check must not run for free lessons")
			return false, nil
		},
	}

	h := NewGetLessonHandler(repo, users)
	lesson, err := h.Handle(context.Background(), GetLessonQuery{LessonID: 2, Caller: "free-1"})
	if err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}
	if lesson.Title != "basics" {
		t.Errorf("title = %q", lesson.Title)
	}
}

func TestGetLesson_NotFound(t *testing.T) {
	repo := &mockLessonRepo{
		findByIDFn: func(ctx context.Context, id uint) (*domain.Lesson, error) {
			return nil, domain.ErrNotFound
		},
	}
	h := NewGetLessonHandler(repo, &mockUserRepo{})
	if _, err := h.Handle(context.Background(), GetLessonQuery{LessonID: 7, Caller: "x"}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
