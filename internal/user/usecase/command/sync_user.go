package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/mahir/lifelessons/internal/user/domain"
)

// SyncUserCommand creates the local user record for a verified identity on
// first contact. Identity fields come from the verified token, never from the
// request body.
type SyncUserCommand struct {
	Subject  string
	Email    string
	Name     string
	PhotoURL string
}

// SyncUserResult reports whether the sync created a new record.
type SyncUserResult struct {
	User    *domain.User `json:"user"`
	Created bool         `json:"created"`
}

// SyncUserHandler handles the user sync command
type SyncUserHandler struct {
	repo domain.UserRepository
}

// NewSyncUserHandler creates a new sync user handler
func NewSyncUserHandler(repo domain.UserRepository) *SyncUserHandler {
	return &SyncUserHandler{repo: repo}
}

// Handle executes the sync. Create-once semantics: an existing identity is
// returned untouched, and a raced create resolves through the unique subject
// index by re-reading the winner's row.
func (h *SyncUserHandler) Handle(ctx context.Context, cmd SyncUserCommand) (*SyncUserResult, error) {
	if cmd.Subject == "" {
		return nil, fmt.Errorf("subject is required")
	}
	if cmd.Email == "" {
		return nil, fmt.Errorf("email is required")
	}

	existing, err := h.repo.FindBySubject(ctx, cmd.Subject)
	if err == nil {
		return &SyncUserResult{User: existing, Created: false}, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	user := &domain.User{
		SubjectID: cmd.Subject,
		Email:     cmd.Email,
		Name:      cmd.Name,
		PhotoURL:  cmd.PhotoURL,
		Role:      domain.RoleUser,
		IsPremium: false,
	}

	if err := h.repo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateUser) {
			winner, findErr := h.repo.FindBySubject(ctx, cmd.Subject)
			if findErr != nil {
				return nil, fmt.Errorf("failed to load existing user: %w", findErr)
			}
			return &SyncUserResult{User: winner, Created: false}, nil
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &SyncUserResult{User: user, Created: true}, nil
}
