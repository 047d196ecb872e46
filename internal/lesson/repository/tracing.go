package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/mahir/lifelessons/internal/lesson/domain"
)

var tracer = otel.Tracer("lesson-repository")

// TracingLessonRepository decorates a LessonRepository with OpenTelemetry
// spans. Only the mutating engagement paths carry attributes; plain reads get
// bare spans.
type TracingLessonRepository struct {
	inner domain.LessonRepository
}

func NewTracingLessonRepository(inner domain.LessonRepository) *TracingLessonRepository {
	return &TracingLessonRepository{inner: inner}
}

func (r *TracingLessonRepository) Create(ctx context.Context, lesson *domain.Lesson) error {
	ctx, span := tracer.Start(ctx, "repository.lessons.Create")
	defer span.End()
	return record(span, r.inner.Create(ctx, lesson))
}

func (r *TracingLessonRepository) FindByID(ctx context.Context, id uint) (*domain.Lesson, error) {
	ctx, span := tracer.Start(ctx, "repository.lessons.FindByID")
	defer span.End()
	lesson, err := r.inner.FindByID(ctx, id)
	return lesson, record(span, err)
}

func (r *TracingLessonRepository) FindAll(ctx context.Context, limit, offset int) ([]domain.Lesson, error) {
	ctx, span := tracer.Start(ctx, "repository.lessons.FindAll")
	defer span.End()
	lessons, err := r.inner.FindAll(ctx, limit, offset)
	return lessons, record(span, err)
}

func (r *TracingLessonRepository) FindByIDs(ctx context.Context, ids []uint) ([]domain.Lesson, error) {
	ctx, span := tracer.Start(ctx, "repository.lessons.FindByIDs")
	defer span.End()
	lessons, err := r.inner.FindByIDs(ctx, ids)
	return lessons, record(span, err)
}

func (r *TracingLessonRepository) Delete(ctx context.Context, id uint) error {
	ctx, span := tracer.Start(ctx, "repository.lessons.Delete")
	defer span.End()
	return record(span, r.inner.Delete(ctx, id))
}

func (r *TracingLessonRepository) ToggleLike(ctx context.Context, lessonID uint, subject string) (bool, error) {
	ctx, span := tracer.Start(ctx, "repository.lessons.ToggleLike",
		trace.WithAttributes(
			attribute.Int("lesson.id", int(lessonID)),
			attribute.String("user.subject", subject),
		),
	)
	defer span.End()
	liked, err := r.inner.ToggleLike(ctx, lessonID, subject)
	if err == nil {
		span.SetAttributes(attribute.Bool("lesson.liked", liked))
	}
	return liked, record(span, err)
}

func (r *TracingLessonRepository) ToggleFavorite(ctx context.Context, lessonID uint, subject string) (bool, error) {
	ctx, span := tracer.Start(ctx, "repository.lessons.ToggleFavorite",
		trace.WithAttributes(
			attribute.Int("lesson.id", int(lessonID)),
			attribute.String("user.subject", subject),
		),
	)
	defer span.End()
	favorited, err := r.inner.ToggleFavorite(ctx, lessonID, subject)
	if err == nil {
		span.SetAttributes(attribute.Bool("lesson.favorited", favorited))
	}
	return favorited, record(span, err)
}

func (r *TracingLessonRepository) IsFavorited(ctx context.Context, lessonID uint, subject string) (bool, error) {
	ctx, span := tracer.Start(ctx, "repository.lessons.IsFavorited")
	defer span.End()
	favorited, err := r.inner.IsFavorited(ctx, lessonID, subject)
	return favorited, record(span, err)
}

func (r *TracingLessonRepository) FindFavoritesBySubject(ctx context.Context, subject string, limit, offset int) ([]domain.Lesson, error) {
	ctx, span := tracer.Start(ctx, "repository.lessons.FindFavoritesBySubject")
	defer span.End()
	lessons, err := r.inner.FindFavoritesBySubject(ctx, subject, limit, offset)
	return lessons, record(span, err)
}

func (r *TracingLessonRepository) FindCounterDrift(ctx context.Context) ([]domain.CounterDrift, error) {
	ctx, span := tracer.Start(ctx, "repository.lessons.FindCounterDrift")
	defer span.End()
	drift, err := r.inner.FindCounterDrift(ctx)
	if err == nil {
		span.SetAttributes(attribute.Int("lessons.drifted", len(drift)))
	}
	return drift, record(span, err)
}

func record(span trace.Span, err error) error {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}
