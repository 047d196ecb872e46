package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/mahir/lifelessons/internal/lesson/domain"
)

// ErrNotOwner is returned when a caller deletes a lesson they do not own.
var ErrNotOwner = errors.New("not the lesson owner")

// DeleteLessonCommand represents the command to delete a lesson
type DeleteLessonCommand struct {
	LessonID uint
	Caller   string
	IsAdmin  bool
}

// DeleteLessonHandler handles the delete lesson command
type DeleteLessonHandler struct {
	repo domain.LessonRepository
}

// NewDeleteLessonHandler creates a new delete lesson handler
func NewDeleteLessonHandler(repo domain.LessonRepository) *DeleteLessonHandler {
	return &DeleteLessonHandler{repo: repo}
}

// Handle executes the delete lesson command. Only the creator or an admin
// may delete; ownership is checked before any mutation.
func (h *DeleteLessonHandler) Handle(ctx context.Context, cmd DeleteLessonCommand) error {
	if cmd.LessonID == 0 {
		return fmt.Errorf("lesson id is required")
	}

	lesson, err := h.repo.FindByID(ctx, cmd.LessonID)
	if err != nil {
		return err
	}
	if !cmd.IsAdmin && lesson.CreatorSubject != cmd.Caller {
		return ErrNotOwner
	}

	return h.repo.Delete(ctx, cmd.LessonID)
}
