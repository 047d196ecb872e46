package domain

import (
	"context"
	"errors"
	"time"
)

// Role tags
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// ErrNotFound is returned when the referenced user does not exist.
var ErrNotFound = errors.New("user not found")

// ErrDuplicateUser is returned when a sync races with another create for the
// same identity and loses on the unique index.
var ErrDuplicateUser = errors.New("user already exists")

// User represents a synced identity. SubjectID is the opaque subject assigned
// by the external identity provider; users are created once per identity on
// first sync and never deleted in the normal flow.
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	SubjectID string    `json:"subject_id" gorm:"uniqueIndex;not null"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	Name      string    `json:"name"`
	PhotoURL  string    `json:"photo_url"`
	Role      string    `json:"role" gorm:"not null;default:'user'"`
	IsPremium bool      `json:"is_premium" gorm:"not null;default:false"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name
func (User) TableName() string {
	return "users"
}

// IsAdmin checks if user has admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// UserRepository defines the contract for user data access
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindBySubject(ctx context.Context, subject string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	// GrantPremium sets the premium flag for the identity. Setting an already
	// set flag is a no-op, which is what makes reconciliation retries safe.
	GrantPremium(ctx context.Context, subject string) error
	IsPremium(ctx context.Context, subject string) (bool, error)
}
