package command

import (
	"context"
	"fmt"

	"github.com/mahir/lifelessons/internal/lesson/domain"
)

// CreateLessonCommand represents the command to create a lesson
type CreateLessonCommand struct {
	Title          string
	Description    string
	Category       string
	ImageURL       string
	IsPremium      bool
	CreatorSubject string
}

// CreateLessonHandler handles the create lesson command
type CreateLessonHandler struct {
	repo domain.LessonRepository
}

// NewCreateLessonHandler creates a new create lesson handler
func NewCreateLessonHandler(repo domain.LessonRepository) *CreateLessonHandler {
	return &CreateLessonHandler{repo: repo}
}

// Handle executes the create lesson command
func (h *CreateLessonHandler) Handle(ctx context.Context, cmd CreateLessonCommand) (*domain.Lesson, error) {
	if cmd.Title == "" {
		return nil, fmt.Errorf("title is required")
	}
	if cmd.CreatorSubject == "" {
		return nil, fmt.Errorf("creator is required")
	}

	lesson := &domain.Lesson{
		Title:          cmd.Title,
		Description:    cmd.Description,
		Category:       cmd.Category,
		ImageURL:       cmd.ImageURL,
		IsPremium:      cmd.IsPremium,
		CreatorSubject: cmd.CreatorSubject,
		Likes:          []string{},
	}

	if err := h.repo.Create(ctx, lesson); err != nil {
		return nil, fmt.Errorf("failed to create lesson: %w", err)
	}
	return lesson, nil
}
