//go:build wireinject
// +build wireinject

package lesson

import (
	"github.com/google/wire"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/mahir/lifelessons/internal/lesson/delivery/http"
	"github.com/mahir/lifelessons/internal/lesson/domain"
	"github.com/mahir/lifelessons/internal/lesson/repository"
	"github.com/mahir/lifelessons/internal/lesson/usecase/command"
	"github.com/mahir/lifelessons/internal/lesson/usecase/query"
	"github.com/mahir/lifelessons/internal/trending"
	userdomain "github.com/mahir/lifelessons/internal/user/domain"
	userrepository "github.com/mahir/lifelessons/internal/user/repository"
	"github.com/mahir/lifelessons/kafka"
)

// ProvideLessonRepository provides the lesson repository wrapped with tracing
func ProvideLessonRepository(db *gorm.DB) domain.LessonRepository {
	return repository.NewTracingLessonRepository(repository.NewGormLessonRepository(db))
}

// ProvideUserRepository provides the user repository wrapped with tracing
func ProvideUserRepository(db *gorm.DB) userdomain.UserRepository {
	return userrepository.NewTracingUserRepository(userrepository.NewGormUserRepository(db))
}

// ProvideRanker provides the trending ranker
func ProvideRanker(client *redis.Client) *trending.Ranker {
	return trending.NewRanker(client)
}

// Command Handlers Providers
func ProvideCreateLessonHandler(repo domain.LessonRepository) *command.CreateLessonHandler {
	return command.NewCreateLessonHandler(repo)
}

func ProvideDeleteLessonHandler(repo domain.LessonRepository) *command.DeleteLessonHandler {
	return command.NewDeleteLessonHandler(repo)
}

func ProvideToggleLikeHandler(repo domain.LessonRepository) *command.ToggleLikeHandler {
	return command.NewToggleLikeHandler(repo)
}

func ProvideToggleFavoriteHandler(repo domain.LessonRepository) *command.ToggleFavoriteHandler {
	return command.NewToggleFavoriteHandler(repo)
}

// Query Handlers Providers
func ProvideGetLessonHandler(repo domain.LessonRepository, users userdomain.UserRepository) *query.GetLessonHandler {
	return query.NewGetLessonHandler(repo, users)
}

func ProvideListLessonsHandler(repo domain.LessonRepository) *query.ListLessonsHandler {
	return query.NewListLessonsHandler(repo)
}

func ProvideCheckFavoriteHandler(repo domain.LessonRepository) *query.CheckFavoriteHandler {
	return query.NewCheckFavoriteHandler(repo)
}

func ProvideListFavoritesHandler(repo domain.LessonRepository) *query.ListFavoritesHandler {
	return query.NewListFavoritesHandler(repo)
}

func ProvideTrendingHandler(repo domain.LessonRepository, ranker *trending.Ranker) *query.TrendingHandler {
	return query.NewTrendingHandler(repo, ranker)
}

func ProvideCounterDriftHandler(repo domain.LessonRepository) *query.CounterDriftHandler {
	return query.NewCounterDriftHandler(repo)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideLessonRepository,
	ProvideUserRepository,
)

var CommandHandlerSet = wire.NewSet(
	ProvideCreateLessonHandler,
	ProvideDeleteLessonHandler,
	ProvideToggleLikeHandler,
	ProvideToggleFavoriteHandler,
)

var QueryHandlerSet = wire.NewSet(
	ProvideGetLessonHandler,
	ProvideListLessonsHandler,
	ProvideCheckFavoriteHandler,
	ProvideListFavoritesHandler,
	ProvideTrendingHandler,
	ProvideCounterDriftHandler,
)

var AllHandlersSet = wire.NewSet(
	RepositorySet,
	ProvideRanker,
	CommandHandlerSet,
	QueryHandlerSet,
)

// InitializeHTTPHandler initializes HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB, redisClient *redis.Client, publisher *kafka.Publisher) (*http.LessonHandler, error) {
	wire.Build(
		AllHandlersSet,
		http.NewLessonHandler,
	)
	return nil, nil
}
