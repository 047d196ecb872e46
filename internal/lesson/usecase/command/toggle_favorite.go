package command

import (
	"context"
	"fmt"

	"github.com/mahir/lifelessons/internal/lesson/domain"
)

// ToggleFavoriteCommand flips the caller's Favorite row for a lesson.
type ToggleFavoriteCommand struct {
	LessonID uint
	Subject  string
}

// ToggleFavoriteHandler handles the favorite toggle command
type ToggleFavoriteHandler struct {
	repo domain.LessonRepository
}

// NewToggleFavoriteHandler creates a new toggle favorite handler
func NewToggleFavoriteHandler(repo domain.LessonRepository) *ToggleFavoriteHandler {
	return &ToggleFavoriteHandler{repo: repo}
}

// Handle executes the toggle and returns the new favorite state.
func (h *ToggleFavoriteHandler) Handle(ctx context.Context, cmd ToggleFavoriteCommand) (bool, error) {
	if cmd.LessonID == 0 {
		return false, fmt.Errorf("lesson id is required")
	}
	if cmd.Subject == "" {
		return false, fmt.Errorf("subject is required")
	}
	favorited, err := h.repo.ToggleFavorite(ctx, cmd.LessonID, cmd.Subject)
	if err != nil {
		return false, fmt.Errorf("failed to toggle favorite: %w", err)
	}
	return favorited, nil
}
