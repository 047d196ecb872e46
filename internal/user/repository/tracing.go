package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/mahir/lifelessons/internal/user/domain"
)

var tracer = otel.Tracer("user-repository")

// TracingUserRepository decorates a UserRepository with OpenTelemetry spans.
type TracingUserRepository struct {
	inner domain.UserRepository
}

func NewTracingUserRepository(inner domain.UserRepository) *TracingUserRepository {
	return &TracingUserRepository{inner: inner}
}

func (r *TracingUserRepository) Create(ctx context.Context, user *domain.User) error {
	ctx, span := tracer.Start(ctx, "repository.users.Create",
		trace.WithAttributes(attribute.String("user.subject", user.SubjectID)),
	)
	defer span.End()

	if err := r.inner.Create(ctx, user); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	span.SetAttributes(attribute.Int("user.id", int(user.ID)))
	return nil
}

func (r *TracingUserRepository) FindBySubject(ctx context.Context, subject string) (*domain.User, error) {
	ctx, span := tracer.Start(ctx, "repository.users.FindBySubject",
		trace.WithAttributes(attribute.String("user.subject", subject)),
	)
	defer span.End()

	user, err := r.inner.FindBySubject(ctx, subject)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return user, nil
}

func (r *TracingUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	ctx, span := tracer.Start(ctx, "repository.users.FindByEmail")
	defer span.End()

	user, err := r.inner.FindByEmail(ctx, email)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return user, nil
}

func (r *TracingUserRepository) GrantPremium(ctx context.Context, subject string) error {
	ctx, span := tracer.Start(ctx, "repository.users.GrantPremium",
		trace.WithAttributes(attribute.String("user.subject", subject)),
	)
	defer span.End()

	if err := r.inner.GrantPremium(ctx, subject); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

func (r *TracingUserRepository) IsPremium(ctx context.Context, subject string) (bool, error) {
	ctx, span := tracer.Start(ctx, "repository.users.IsPremium",
		trace.WithAttributes(attribute.String("user.subject", subject)),
	)
	defer span.End()

	premium, err := r.inner.IsPremium(ctx, subject)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return false, err
	}
	span.SetAttributes(attribute.Bool("user.premium", premium))
	return premium, nil
}
