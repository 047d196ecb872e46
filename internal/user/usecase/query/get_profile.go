package query

import (
	"context"
	"fmt"

	"github.com/mahir/lifelessons/internal/user/domain"
)

// GetProfileQuery represents the query for the caller's own profile
type GetProfileQuery struct {
	Subject string
}

// GetProfileHandler handles the profile query
type GetProfileHandler struct {
	repo domain.UserRepository
}

// NewGetProfileHandler creates a new profile handler
func NewGetProfileHandler(repo domain.UserRepository) *GetProfileHandler {
	return &GetProfileHandler{repo: repo}
}

// Handle executes the profile query
func (h *GetProfileHandler) Handle(ctx context.Context, q GetProfileQuery) (*domain.User, error) {
	if q.Subject == "" {
		return nil, fmt.Errorf("subject is required")
	}
	return h.repo.FindBySubject(ctx, q.Subject)
}
