package query

import (
	"context"

	"github.com/mahir/lifelessons/internal/lesson/domain"
)

// ListLessonsQuery represents the public lesson listing
type ListLessonsQuery struct {
	Limit  int
	Offset int
}

// ListLessonsHandler handles the lesson listing query
type ListLessonsHandler struct {
	repo domain.LessonRepository
}

// NewListLessonsHandler creates a new list lessons handler
func NewListLessonsHandler(repo domain.LessonRepository) *ListLessonsHandler {
	return &ListLessonsHandler{repo: repo}
}

// Handle executes the lesson listing query
func (h *ListLessonsHandler) Handle(ctx context.Context, q ListLessonsQuery) ([]domain.Lesson, error) {
	limit := q.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset := q.Offset
	if offset < 0 {
		offset = 0
	}
	return h.repo.FindAll(ctx, limit, offset)
}
