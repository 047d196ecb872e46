package query

import (
	"context"
	"fmt"

	"github.com/mahir/lifelessons/internal/lesson/domain"
)

// CheckFavoriteQuery asks whether the caller has favorited a lesson.
type CheckFavoriteQuery struct {
	LessonID uint
	Subject  string
}

// CheckFavoriteHandler handles the favorite existence check
type CheckFavoriteHandler struct {
	repo domain.LessonRepository
}

// NewCheckFavoriteHandler creates a new check favorite handler
func NewCheckFavoriteHandler(repo domain.LessonRepository) *CheckFavoriteHandler {
	return &CheckFavoriteHandler{repo: repo}
}

// Handle executes the favorite existence check. Pure read, no mutation.
func (h *CheckFavoriteHandler) Handle(ctx context.Context, q CheckFavoriteQuery) (bool, error) {
	if q.LessonID == 0 {
		return false, fmt.Errorf("lesson id is required")
	}
	if q.Subject == "" {
		return false, fmt.Errorf("subject is required")
	}
	return h.repo.IsFavorited(ctx, q.LessonID, q.Subject)
}
