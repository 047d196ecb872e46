package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/mahir/lifelessons/internal/user/domain"
)

type GormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.User{})
}

func (r *GormUserRepository) Create(ctx context.Context, user *domain.User) error {
	err := r.db.WithContext(ctx).Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrDuplicateUser
	}
	return err
}

func (r *GormUserRepository) FindBySubject(ctx context.Context, subject string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).Where("subject_id = ?", subject).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GrantPremium sets the premium flag. The write is idempotent: granting an
// already premium identity affects the row without changing state, so a
// reconciliation retry can always re-run it.
func (r *GormUserRepository) GrantPremium(ctx context.Context, subject string) error {
	res := r.db.WithContext(ctx).Model(&domain.User{}).
		Where("subject_id = ?", subject).
		UpdateColumn("is_premium", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *GormUserRepository) IsPremium(ctx context.Context, subject string) (bool, error) {
	user, err := r.FindBySubject(ctx, subject)
	if err != nil {
		return false, err
	}
	return user.IsPremium, nil
}
