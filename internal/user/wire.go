//go:build wireinject
// +build wireinject

package user

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/mahir/lifelessons/internal/user/delivery/http"
	"github.com/mahir/lifelessons/internal/user/domain"
	"github.com/mahir/lifelessons/internal/user/repository"
	"github.com/mahir/lifelessons/internal/user/usecase/command"
	"github.com/mahir/lifelessons/internal/user/usecase/query"
)

// ProvideUserRepository provides the user repository wrapped with tracing
func ProvideUserRepository(db *gorm.DB) domain.UserRepository {
	return repository.NewTracingUserRepository(repository.NewGormUserRepository(db))
}

// Command Handlers Providers
func ProvideSyncUserHandler(repo domain.UserRepository) *command.SyncUserHandler {
	return command.NewSyncUserHandler(repo)
}

// Query Handlers Providers
func ProvideGetProfileHandler(repo domain.UserRepository) *query.GetProfileHandler {
	return query.NewGetProfileHandler(repo)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideUserRepository,
)

var HandlerSet = wire.NewSet(
	ProvideSyncUserHandler,
	ProvideGetProfileHandler,
)

// InitializeHTTPHandler initializes HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB) (*http.UserHandler, error) {
	wire.Build(
		RepositorySet,
		HandlerSet,
		http.NewUserHandler,
	)
	return nil, nil
}
