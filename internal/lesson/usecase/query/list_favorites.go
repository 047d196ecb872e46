package query

import (
	"context"
	"fmt"

	"github.com/mahir/lifelessons/internal/lesson/domain"
)

// ListFavoritesQuery lists the lessons the caller has favorited.
type ListFavoritesQuery struct {
	Subject string
	Limit   int
	Offset  int
}

// ListFavoritesHandler handles the favorites listing query
type ListFavoritesHandler struct {
	repo domain.LessonRepository
}

// NewListFavoritesHandler creates a new list favorites handler
func NewListFavoritesHandler(repo domain.LessonRepository) *ListFavoritesHandler {
	return &ListFavoritesHandler{repo: repo}
}

// Handle executes the favorites listing query
func (h *ListFavoritesHandler) Handle(ctx context.Context, q ListFavoritesQuery) ([]domain.Lesson, error) {
	if q.Subject == "" {
		return nil, fmt.Errorf("subject is required")
	}
	limit := q.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset := q.Offset
	if offset < 0 {
		offset = 0
	}
	return h.repo.FindFavoritesBySubject(ctx, q.Subject, limit, offset)
}
