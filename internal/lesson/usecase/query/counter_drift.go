package query

import (
	"context"

	"github.com/mahir/lifelessons/internal/lesson/domain"
)

// CounterDriftHandler handles the consistency report query. Drift between a
// counter and its membership source is reported, never repaired here: the
// recount is an out-of-band maintenance action.
type CounterDriftHandler struct {
	repo domain.LessonRepository
}

// NewCounterDriftHandler creates a new counter drift handler
func NewCounterDriftHandler(repo domain.LessonRepository) *CounterDriftHandler {
	return &CounterDriftHandler{repo: repo}
}

// Handle executes the consistency report query
func (h *CounterDriftHandler) Handle(ctx context.Context) ([]domain.CounterDrift, error) {
	return h.repo.FindCounterDrift(ctx)
}
