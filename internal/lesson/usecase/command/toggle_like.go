package command

import (
	"context"
	"fmt"

	"github.com/mahir/lifelessons/internal/lesson/domain"
)

// ToggleLikeCommand flips the caller's membership in a lesson's likes set.
type ToggleLikeCommand struct {
	LessonID uint
	Subject  string
}

// ToggleLikeHandler handles the like toggle command
type ToggleLikeHandler struct {
	repo domain.LessonRepository
}

// NewToggleLikeHandler creates a new toggle like handler
func NewToggleLikeHandler(repo domain.LessonRepository) *ToggleLikeHandler {
	return &ToggleLikeHandler{repo: repo}
}

// Handle executes the toggle and returns the new like state for the caller.
// The repository applies membership change and counter adjustment as one
// atomic update, so the handler has nothing to compensate for.
func (h *ToggleLikeHandler) Handle(ctx context.Context, cmd ToggleLikeCommand) (bool, error) {
	if cmd.LessonID == 0 {
		return false, fmt.Errorf("lesson id is required")
	}
	if cmd.Subject == "" {
		return false, fmt.Errorf("subject is required")
	}
	liked, err := h.repo.ToggleLike(ctx, cmd.LessonID, cmd.Subject)
	if err != nil {
		return false, fmt.Errorf("failed to toggle like: %w", err)
	}
	return liked, nil
}
