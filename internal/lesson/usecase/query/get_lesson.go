package query

import (
	"context"
	"errors"
	"fmt"

	"github.com/mahir/lifelessons/internal/lesson/domain"
	userdomain "github.com/mahir/lifelessons/internal/user/domain"
)

// ErrPremiumRequired is returned when a premium lesson is requested by a
// caller without the entitlement.
var ErrPremiumRequired = errors.New("premium entitlement required")

// GetLessonQuery represents the query to read one lesson
type GetLessonQuery struct {
	LessonID uint
	Caller   string
	Role     string
}

// GetLessonHandler handles the get lesson query
type GetLessonHandler struct {
	repo  domain.LessonRepository
	users userdomain.UserRepository
}

// NewGetLessonHandler creates a new get lesson handler
func NewGetLessonHandler(repo domain.LessonRepository, users userdomain.UserRepository) *GetLessonHandler {
	return &GetLessonHandler{repo: repo, users: users}
}

// Handle executes the get lesson query. Premium lessons are gated on the
// caller's entitlement; the creator and admins always pass.
func (h *GetLessonHandler) Handle(ctx context.Context, q GetLessonQuery) (*domain.Lesson, error) {
	if q.LessonID == 0 {
		return nil, fmt.Errorf("lesson id is required")
	}

	lesson, err := h.repo.FindByID(ctx, q.LessonID)
	if err != nil {
		return nil, err
	}

	if lesson.IsPremium && q.Role != userdomain.RoleAdmin && lesson.CreatorSubject != q.Caller {
		premium, err := h.users.IsPremium(ctx, q.Caller)
		if err != nil {
			return nil, fmt.Errorf("failed to check entitlement: %w", err)
		}
		if !premium {
			return nil, ErrPremiumRequired
		}
	}

	return lesson, nil
}
