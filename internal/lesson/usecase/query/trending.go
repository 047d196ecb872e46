package query

import (
	"context"

	"github.com/mahir/lifelessons/internal/lesson/domain"
	"github.com/mahir/lifelessons/internal/trending"
)

// TrendingQuery asks for the highest-engagement lessons.
type TrendingQuery struct {
	Limit int
}

// TrendingHandler handles the trending lessons query
type TrendingHandler struct {
	repo   domain.LessonRepository
	ranker *trending.Ranker
}

// NewTrendingHandler creates a new trending handler
func NewTrendingHandler(repo domain.LessonRepository, ranker *trending.Ranker) *TrendingHandler {
	return &TrendingHandler{repo: repo, ranker: ranker}
}

// Handle reads the ranking from Redis and loads the lessons, preserving the
// ranking order. Lessons deleted since their last engagement simply drop out.
func (h *TrendingHandler) Handle(ctx context.Context, q TrendingQuery) ([]domain.Lesson, error) {
	limit := q.Limit
	if limit <= 0 || limit > 50 {
		limit = 10
	}

	ids, err := h.ranker.Top(ctx, limit)
	if err != nil {
		return nil, err
	}

	lessons, err := h.repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[uint]domain.Lesson, len(lessons))
	for _, l := range lessons {
		byID[l.ID] = l
	}
	ordered := make([]domain.Lesson, 0, len(lessons))
	for _, id := range ids {
		if l, ok := byID[id]; ok {
			ordered = append(ordered, l)
		}
	}
	return ordered, nil
}
