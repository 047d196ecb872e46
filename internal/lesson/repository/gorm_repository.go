package repository

import (
	"context"
	"database/sql"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mahir/lifelessons/internal/lesson/domain"
)

type GormLessonRepository struct {
	db *gorm.DB
}

func NewGormLessonRepository(db *gorm.DB) *GormLessonRepository {
	return &GormLessonRepository{db: db}
}

func (r *GormLessonRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Lesson{}, &domain.Favorite{})
}

func (r *GormLessonRepository) Create(ctx context.Context, lesson *domain.Lesson) error {
	return r.db.WithContext(ctx).Create(lesson).Error
}

func (r *GormLessonRepository) FindByID(ctx context.Context, id uint) (*domain.Lesson, error) {
	var lesson domain.Lesson
	err := r.db.WithContext(ctx).First(&lesson, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &lesson, nil
}

func (r *GormLessonRepository) FindAll(ctx context.Context, limit, offset int) ([]domain.Lesson, error) {
	var lessons []domain.Lesson
	err := r.db.WithContext(ctx).
		Limit(limit).Offset(offset).
		Order("created_at DESC").
		Find(&lessons).Error
	return lessons, err
}

func (r *GormLessonRepository) FindByIDs(ctx context.Context, ids []uint) ([]domain.Lesson, error) {
	var lessons []domain.Lesson
	if len(ids) == 0 {
		return lessons, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&lessons).Error
	return lessons, err
}

func (r *GormLessonRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&domain.Lesson{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ToggleLike flips membership of subject in the likes set. Membership test,
// set mutation and counter adjustment are a single UPDATE statement, so
// concurrent toggles on the same lesson serialize on the row and the counter
// can never drift from the set cardinality. RETURNING evaluates against the
// new row version and yields the post-toggle state.
func (r *GormLessonRepository) ToggleLike(ctx context.Context, lessonID uint, subject string) (bool, error) {
	var row struct {
		Liked bool
	}
	res := r.db.WithContext(ctx).Raw(`
		UPDATE lessons
		   SET likes = CASE WHEN @subject::text = ANY(likes)
		                    THEN array_remove(likes, @subject::text)
		                    ELSE array_append(likes, @subject::text) END,
		       likes_count = likes_count + CASE WHEN @subject::text = ANY(likes) THEN -1 ELSE 1 END,
		       updated_at = NOW()
		 WHERE id = @id
		 RETURNING @subject::text = ANY(likes) AS liked`,
		sql.Named("subject", subject), sql.Named("id", lessonID),
	).Scan(&row)
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, domain.ErrNotFound
	}
	return row.Liked, nil
}

// ToggleFavorite flips the Favorite join row and the denormalized counter in
// one transaction. The insert uses ON CONFLICT DO NOTHING against the
// (subject, lesson) unique index: a concurrent first-favorite loser sees zero
// affected rows and returns the already-favorited outcome without a second
// increment.
func (r *GormLessonRepository) ToggleFavorite(ctx context.Context, lessonID uint, subject string) (bool, error) {
	var favorited bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("subject_id = ? AND lesson_id = ?", subject, lessonID).
			Delete(&domain.Favorite{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			favorited = false
			return adjustFavoritesCount(tx, lessonID, -1)
		}

		ins := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&domain.Favorite{SubjectID: subject, LessonID: lessonID})
		if ins.Error != nil {
			return ins.Error
		}
		favorited = true
		if ins.RowsAffected == 0 {
			// Lost the insert race. The join row exists, counted by the winner.
			return nil
		}
		return adjustFavoritesCount(tx, lessonID, 1)
	})
	if err != nil {
		return false, err
	}
	return favorited, nil
}

// adjustFavoritesCount applies the paired counter change. The counter is a
// cache over join-row presence, clamped at zero; a missing lesson rolls the
// whole toggle back.
func adjustFavoritesCount(tx *gorm.DB, lessonID uint, delta int) error {
	res := tx.Model(&domain.Lesson{}).
		Where("id = ?", lessonID).
		UpdateColumn("favorites_count", gorm.Expr("GREATEST(favorites_count + ?, 0)", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *GormLessonRepository) IsFavorited(ctx context.Context, lessonID uint, subject string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Favorite{}).
		Where("subject_id = ? AND lesson_id = ?", subject, lessonID).
		Count(&count).Error
	return count > 0, err
}

func (r *GormLessonRepository) FindFavoritesBySubject(ctx context.Context, subject string, limit, offset int) ([]domain.Lesson, error) {
	var lessons []domain.Lesson
	err := r.db.WithContext(ctx).
		Joins("JOIN favorites ON favorites.lesson_id = lessons.id").
		Where("favorites.subject_id = ?", subject).
		Order("favorites.created_at DESC").
		Limit(limit).Offset(offset).
		Find(&lessons).Error
	return lessons, err
}

// FindCounterDrift compares both denormalized counters against their source
// of truth in one pass. Read-only: repairs are an operator decision.
func (r *GormLessonRepository) FindCounterDrift(ctx context.Context) ([]domain.CounterDrift, error) {
	var drift []domain.CounterDrift
	err := r.db.WithContext(ctx).Raw(`
		SELECT l.id AS lesson_id,
		       l.likes_count,
		       cardinality(l.likes) AS actual_likes,
		       l.favorites_count,
		       COUNT(f.id)::int AS actual_favorites
		  FROM lessons l
		  LEFT JOIN favorites f ON f.lesson_id = l.id
		 GROUP BY l.id
		HAVING l.likes_count <> cardinality(l.likes)
		    OR l.favorites_count <> COUNT(f.id)`).
		Scan(&drift).Error
	return drift, err
}
